// Package config holds the integrator-facing options and the process-wide
// defaults every new controller starts from.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/core/constants"
	"github.com/penwyp/go-sticky-scroll/internal/core/easing"
	"github.com/penwyp/go-sticky-scroll/internal/scroll"
	"github.com/penwyp/go-sticky-scroll/internal/snap"
)

var (
	// ErrUnknownOption is returned when setting an option key that does not exist
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidValue is returned when an option value has the wrong type or range
	ErrInvalidValue = errors.New("invalid option value")
)

// Options configures a sticky scroll controller
type Options struct {
	// Scenes whose name starts with this marker are left out of the sequence
	IgnoreSceneSymbol string `yaml:"ignoreSceneSymbol" json:"ignoreSceneSymbol"`

	// Fallback scrollable height in pixels when no explicit height is given
	WrapperHeight float64 `yaml:"wrapperHeight" json:"wrapperHeight"`

	// Thousands of pixels per second, used for "auto" durations
	AutoScrollSpeed float64 `yaml:"autoScrollSpeed" json:"autoScrollSpeed"`

	// Force the scroll position back inside the focused scene
	SnapToBoundaries bool `yaml:"snapToBoundaries" json:"snapToBoundaries"`

	// CSS unit substituted for percentage sticky heights
	ViewportHeightUnit string `yaml:"viewportHeightUnit" json:"viewportHeightUnit"`

	// Snap engine defaults; SnapDelayMS is in milliseconds
	SnapPoints    []snap.PointSpec `yaml:"snapPoints" json:"snapPoints"`
	SnapTolerance snap.Tolerance   `yaml:"snapTolerance" json:"snapTolerance"`
	SnapDelayMS   float64          `yaml:"snapDelay" json:"snapDelay"`
	SnapDuration  scroll.Duration  `yaml:"snapDuration" json:"snapDuration"`
	SnapEasing    easing.Kind      `yaml:"snapEasing" json:"snapEasing"`

	// Delegate scrolling to the smooth-scroll backend
	UseSmoothScroll bool `yaml:"useSmoothScroll" json:"useSmoothScroll"`

	// Animation frames per second of the real-time run loop
	FrameRate float64 `yaml:"frameRate" json:"frameRate"`
}

// Builtin returns the compiled-in defaults
func Builtin() Options {
	return Options{
		IgnoreSceneSymbol:  constants.DefaultIgnoreSceneSymbol,
		WrapperHeight:      constants.DefaultWrapperHeight,
		AutoScrollSpeed:    constants.DefaultAutoScrollSpeed,
		SnapToBoundaries:   constants.DefaultSnapToBoundaries,
		ViewportHeightUnit: constants.DefaultViewportHeightUnit,
		SnapTolerance: snap.Tolerance{
			Before: constants.DefaultSnapToleranceBefore,
			After:  constants.DefaultSnapToleranceAfter,
		},
		SnapDelayMS:  float64(constants.DefaultSnapDelay / time.Millisecond),
		SnapDuration: scroll.Auto,
		SnapEasing:   easing.Kind(constants.DefaultSnapEasing),
		FrameRate:    constants.DefaultFrameRate,
	}
}

// SnapDelay returns the snap debounce delay
func (o Options) SnapDelay() time.Duration {
	return time.Duration(o.SnapDelayMS * float64(time.Millisecond))
}

// Clone returns a deep copy
func (o Options) Clone() Options {
	out := o
	if o.SnapPoints != nil {
		out.SnapPoints = make([]snap.PointSpec, len(o.SnapPoints))
		for i, p := range o.SnapPoints {
			if p.Tolerance != nil {
				t := *p.Tolerance
				p.Tolerance = &t
			}
			out.SnapPoints[i] = p
		}
	}
	return out
}

// Validate replaces out-of-range values with the builtin defaults
func (o *Options) Validate() error {
	def := Builtin()

	if o.WrapperHeight <= 0 {
		o.WrapperHeight = def.WrapperHeight
	}
	if o.AutoScrollSpeed <= 0 {
		o.AutoScrollSpeed = def.AutoScrollSpeed
	}
	if o.ViewportHeightUnit == "" {
		o.ViewportHeightUnit = def.ViewportHeightUnit
	}
	if o.SnapTolerance.Before < 0 {
		o.SnapTolerance.Before = def.SnapTolerance.Before
	}
	if o.SnapTolerance.After < 0 {
		o.SnapTolerance.After = def.SnapTolerance.After
	}
	if o.SnapDelayMS < 0 {
		o.SnapDelayMS = def.SnapDelayMS
	}
	if o.FrameRate <= 0 {
		o.FrameRate = def.FrameRate
	}

	kind, err := easing.Parse(string(o.SnapEasing))
	if err != nil {
		return fmt.Errorf("snapEasing: %w", err)
	}
	o.SnapEasing = kind
	return nil
}

// Set assigns one option by key. String values are parsed, so command-line
// "key=value" pairs can be applied directly.
func (o *Options) Set(key string, value any) error {
	switch key {
	case "ignoreSceneSymbol":
		return setString(&o.IgnoreSceneSymbol, key, value)
	case "viewportHeightUnit":
		return setString(&o.ViewportHeightUnit, key, value)
	case "wrapperHeight":
		return setFloat(&o.WrapperHeight, key, value)
	case "autoScrollSpeed":
		return setFloat(&o.AutoScrollSpeed, key, value)
	case "snapDelay":
		return setFloat(&o.SnapDelayMS, key, value)
	case "frameRate":
		return setFloat(&o.FrameRate, key, value)
	case "snapToBoundaries":
		return setBool(&o.SnapToBoundaries, key, value)
	case "useSmoothScroll":
		return setBool(&o.UseSmoothScroll, key, value)
	case "snapTolerance":
		return setTolerance(&o.SnapTolerance, key, value)
	case "snapEasing":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w for %s: %v", ErrInvalidValue, key, value)
		}
		kind, err := easing.Parse(s)
		if err != nil {
			return fmt.Errorf("%w for %s: %v", ErrInvalidValue, key, err)
		}
		o.SnapEasing = kind
		return nil
	case "snapDuration":
		return setDuration(&o.SnapDuration, key, value)
	case "snapPoints":
		points, ok := value.([]snap.PointSpec)
		if !ok {
			return fmt.Errorf("%w for %s: %T", ErrInvalidValue, key, value)
		}
		o.SnapPoints = append([]snap.PointSpec(nil), points...)
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownOption, key)
	}
}

// ApplyPairs applies "key=value" assignments in order
func (o *Options) ApplyPairs(pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("%w: expected key=value, got %q", ErrInvalidValue, pair)
		}
		if err := o.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

func setString(dst *string, key string, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w for %s: %v", ErrInvalidValue, key, value)
	}
	*dst = s
	return nil
}

func setFloat(dst *float64, key string, value any) error {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w for %s: %q", ErrInvalidValue, key, v)
		}
		f = parsed
	default:
		return fmt.Errorf("%w for %s: %T", ErrInvalidValue, key, value)
	}
	*dst = f
	return nil
}

func setBool(dst *bool, key string, value any) error {
	switch v := value.(type) {
	case bool:
		*dst = v
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w for %s: %q", ErrInvalidValue, key, v)
		}
		*dst = parsed
	default:
		return fmt.Errorf("%w for %s: %T", ErrInvalidValue, key, value)
	}
	return nil
}

// setTolerance accepts a Tolerance, a single number for both sides, or "before,after"
func setTolerance(dst *snap.Tolerance, key string, value any) error {
	switch v := value.(type) {
	case snap.Tolerance:
		*dst = v
		return nil
	case string:
		before, after, found := strings.Cut(v, ",")
		if !found {
			after = before
		}
		var t snap.Tolerance
		if err := setFloat(&t.Before, key, strings.TrimSpace(before)); err != nil {
			return err
		}
		if err := setFloat(&t.After, key, strings.TrimSpace(after)); err != nil {
			return err
		}
		*dst = t
		return nil
	default:
		var f float64
		if err := setFloat(&f, key, value); err != nil {
			return err
		}
		*dst = snap.Tolerance{Before: f, After: f}
		return nil
	}
}

func setDuration(dst *scroll.Duration, key string, value any) error {
	switch v := value.(type) {
	case scroll.Duration:
		*dst = v
	case string:
		d, err := scroll.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w for %s: %v", ErrInvalidValue, key, err)
		}
		*dst = d
	default:
		var secs float64
		if err := setFloat(&secs, key, value); err != nil {
			return err
		}
		if secs < 0 {
			return fmt.Errorf("%w for %s: negative duration", ErrInvalidValue, key)
		}
		*dst = scroll.Seconds(secs)
	}
	return nil
}
