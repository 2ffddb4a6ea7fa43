package sim

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/penwyp/go-sticky-scroll/internal/config"
	"github.com/penwyp/go-sticky-scroll/internal/core/easing"
	"github.com/penwyp/go-sticky-scroll/internal/scroll"
	"github.com/penwyp/go-sticky-scroll/internal/snap"
	"gopkg.in/yaml.v3"
)

// Script actions
const (
	ActionSetup              = "setup"
	ActionEnable             = "enable"
	ActionDisable            = "disable"
	ActionScrollTo           = "scrollTo"
	ActionScrollBy           = "scrollBy"
	ActionResize             = "resize"
	ActionAnimateTo          = "animateTo"
	ActionAnimateToScene     = "animateToScene"
	ActionAnimateToSceneTime = "animateToSceneTime"
	ActionFocus              = "focus"
	ActionClearFocus         = "clearFocus"
	ActionSnap               = "snap"
	ActionDisableSnap        = "disableSnap"
)

// ErrInvalidScenario is returned for scenarios that cannot be run
var ErrInvalidScenario = errors.New("invalid scenario")

// DocumentSpec declares the scenes of a simulated document
type DocumentSpec struct {
	Current string      `yaml:"current,omitempty" json:"current,omitempty"`
	Scenes  []SceneSpec `yaml:"scenes" json:"scenes"`
}

// Step is one scripted input
type Step struct {
	At       scroll.Duration  `yaml:"at" json:"at"`
	Action   string           `yaml:"action" json:"action"`
	Y        float64          `yaml:"y,omitempty" json:"y,omitempty"`
	Progress float64          `yaml:"progress,omitempty" json:"progress,omitempty"`
	Scene    string           `yaml:"scene,omitempty" json:"scene,omitempty"`
	Time     float64          `yaml:"time,omitempty" json:"time,omitempty"`
	Height   float64          `yaml:"height,omitempty" json:"height,omitempty"`
	Duration *scroll.Duration `yaml:"duration,omitempty" json:"duration,omitempty"`
	Easing   easing.Kind      `yaml:"easing,omitempty" json:"easing,omitempty"`
	Offset   string           `yaml:"offset,omitempty" json:"offset,omitempty"`
	Resample bool             `yaml:"resample,omitempty" json:"resample,omitempty"`
	Points   []snap.PointSpec `yaml:"points,omitempty" json:"points,omitempty"`
}

// Scenario is a simulated document, its layout, controller options and a
// timed input script
type Scenario struct {
	Name     string       `yaml:"name" json:"name"`
	Document DocumentSpec `yaml:"document" json:"document"`
	Layout   Layout       `yaml:"layout" json:"layout"`
	Options  yaml.Node    `yaml:"options,omitempty" json:"-"`
	Script   []Step       `yaml:"script" json:"script"`

	// Extra time simulated after the last step
	Settle scroll.Duration `yaml:"settle,omitempty" json:"settle,omitempty"`
}

// ReadScenario reads a scenario from a YAML file
func ReadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a YAML scenario
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// WriteScenario writes a scenario to a YAML file
func WriteScenario(sc *Scenario, path string) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the scenario and sorts the script by time. Steps sharing a
// time keep their listed order.
func (sc *Scenario) Validate() error {
	if len(sc.Document.Scenes) == 0 {
		return fmt.Errorf("%w: document has no scenes", ErrInvalidScenario)
	}
	if sc.Layout.Viewport <= 0 {
		return fmt.Errorf("%w: layout.viewport must be positive", ErrInvalidScenario)
	}
	for i, st := range sc.Script {
		if st.At.Auto {
			return fmt.Errorf("%w: step %d: \"auto\" is not a step time", ErrInvalidScenario, i)
		}
		if !knownAction(st.Action) {
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScenario, i, st.Action)
		}
	}

	sort.SliceStable(sc.Script, func(i, j int) bool {
		return sc.Script[i].At.Value < sc.Script[j].At.Value
	})
	return nil
}

// ResolveOptions applies the scenario's options block on top of base
func (sc *Scenario) ResolveOptions(base config.Options) (config.Options, error) {
	out := base.Clone()
	if !sc.Options.IsZero() {
		if err := sc.Options.Decode(&out); err != nil {
			return config.Options{}, fmt.Errorf("failed to decode scenario options: %w", err)
		}
	}
	if err := out.Validate(); err != nil {
		return config.Options{}, err
	}
	return out, nil
}

func knownAction(action string) bool {
	switch action {
	case ActionSetup, ActionEnable, ActionDisable, ActionScrollTo, ActionScrollBy,
		ActionResize, ActionAnimateTo, ActionAnimateToScene, ActionAnimateToSceneTime,
		ActionFocus, ActionClearFocus, ActionSnap, ActionDisableSnap:
		return true
	}
	return false
}
