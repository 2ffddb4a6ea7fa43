package sim

import (
	"fmt"

	"github.com/penwyp/go-sticky-scroll/internal/application/sticky"
	"github.com/penwyp/go-sticky-scroll/internal/config"
	"github.com/penwyp/go-sticky-scroll/internal/core/easing"
	"github.com/penwyp/go-sticky-scroll/internal/core/geometry"
	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
	"github.com/penwyp/go-sticky-scroll/internal/smooth"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// Host wires a simulated document and window to a controller on one scheduler
type Host struct {
	Scenario   *Scenario
	Options    config.Options
	Sched      runloop.Scheduler
	Doc        *Document
	Win        *Window
	Scroller   *smooth.Scroller
	Controller *sticky.Controller
	Trace      *Trace
}

// HostConfig configures NewHost
type HostConfig struct {
	Options    config.Options
	Callbacks  sticky.CallbackLookup
	TraceLimit int
}

// NewHost builds the document, window and controller for sc and runs setup.
// The controller is not enabled.
func NewHost(sc *Scenario, sched runloop.Scheduler, cfg HostConfig) (*Host, error) {
	opts, err := sc.ResolveOptions(cfg.Options)
	if err != nil {
		return nil, err
	}

	trace := NewTrace(sched, cfg.TraceLimit)

	layout := sc.Layout
	if layout.WrapperHeight <= 0 {
		layout.WrapperHeight = opts.WrapperHeight
	}

	// Create the host side
	win := NewWindow(sched, layout, opts.ViewportHeightUnit, trace)
	doc := NewDocument(sc.Document.Scenes, sc.Document.Current, trace)
	doc.AttachWindow(win)

	// Create the controller
	ctrlOpts := []sticky.Option{sticky.WithOptions(opts)}
	if cfg.Callbacks != nil {
		ctrlOpts = append(ctrlOpts, sticky.WithCallbacks(cfg.Callbacks))
	}
	var scroller *smooth.Scroller
	if opts.UseSmoothScroll {
		scroller = smooth.New(sched, win)
		ctrlOpts = append(ctrlOpts, sticky.WithBackend(scroller))
	}
	ctrl := sticky.New(doc, win, sched, ctrlOpts...)
	doc.OnSceneLoad = func(string) bool { return ctrl.HandleSceneLoad() }

	ctrl.Setup()
	util.LogDebugf("Host ready for scenario %q (%d scenes)", sc.Name, ctrl.Table().Len())

	return &Host{
		Scenario:   sc,
		Options:    opts,
		Sched:      sched,
		Doc:        doc,
		Win:        win,
		Scroller:   scroller,
		Controller: ctrl,
		Trace:      trace,
	}, nil
}

// Apply performs one scripted step
func (h *Host) Apply(st Step) error {
	h.Trace.Record(Event{Kind: KindAction, Detail: describe(st), ScrollY: h.Win.ScrollY()})

	c := h.Controller
	switch st.Action {
	case ActionSetup:
		c.Setup()
	case ActionEnable:
		height := st.Height
		if height <= 0 {
			height = h.Scenario.Layout.WrapperHeight
		}
		c.Enable(height)
	case ActionDisable:
		c.Disable()
	case ActionScrollTo:
		h.Win.SetScrollY(st.Y)
	case ActionScrollBy:
		h.Win.ScrollBy(st.Y)
	case ActionResize:
		h.Win.SetViewportHeight(st.Height)
	case ActionAnimateTo, ActionAnimateToScene, ActionAnimateToSceneTime:
		anim, err := h.animation(st)
		if err != nil {
			return err
		}
		switch st.Action {
		case ActionAnimateTo:
			c.AnimateTo(st.Progress, anim)
		case ActionAnimateToScene:
			c.AnimateToScene(st.Scene, anim)
		default:
			c.AnimateToSceneTime(st.Scene, st.Time, anim)
		}
	case ActionFocus:
		c.SetFocus(st.Scene, st.Resample)
	case ActionClearFocus:
		c.ClearFocus(st.Resample)
	case ActionSnap:
		anim, err := h.animation(st)
		if err != nil {
			return err
		}
		c.EnableSnapping(sticky.SnapSettings{
			Points:   st.Points,
			Duration: st.Duration,
			Easing:   anim.Easing,
		})
	case ActionDisableSnap:
		c.DisableSnapping()
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidScenario, st.Action)
	}
	return nil
}

// Reload replaces the document scenes and layout with those of sc and
// re-runs setup. The scheduler, trace, options and scroll position are kept.
func (h *Host) Reload(sc *Scenario) {
	h.Scenario = sc

	h.Doc.scenes = append([]SceneSpec(nil), sc.Document.Scenes...)
	for _, s := range sc.Document.Scenes {
		if _, ok := h.Doc.playing[s.Name]; !ok {
			h.Doc.playing[s.Name] = true
		}
	}
	if _, ok := h.Doc.find(h.Doc.current); !ok {
		h.Doc.current = sc.Document.Current
		if h.Doc.current == "" && len(sc.Document.Scenes) > 0 {
			h.Doc.current = sc.Document.Scenes[0].Name
		}
	}

	layout := sc.Layout
	if layout.WrapperHeight <= 0 {
		layout.WrapperHeight = h.Win.layout.WrapperHeight
	}
	if layout.StickyHeight == "" {
		layout.StickyHeight = "100%"
	}
	h.Win.layout = layout
	h.Win.resolveSticky()
	h.Win.clamp()

	h.Controller.Setup()
}

func (h *Host) animation(st Step) (sticky.Animation, error) {
	var anim sticky.Animation
	if st.Easing != "" {
		kind, err := easing.Parse(string(st.Easing))
		if err != nil {
			return sticky.Animation{}, err
		}
		anim.Easing = kind
	}
	if st.Duration != nil {
		anim.Duration = *st.Duration
	}
	if st.Offset != "" {
		offset, err := geometry.ParseOffset(st.Offset)
		if err != nil {
			return sticky.Animation{}, err
		}
		anim.Offset = offset
	}
	return anim, nil
}

func describe(st Step) string {
	switch st.Action {
	case ActionScrollTo, ActionScrollBy:
		return fmt.Sprintf("%s %.0f", st.Action, st.Y)
	case ActionResize, ActionEnable:
		return fmt.Sprintf("%s %.0f", st.Action, st.Height)
	case ActionAnimateTo:
		return fmt.Sprintf("%s %.4f", st.Action, st.Progress)
	case ActionAnimateToScene, ActionFocus:
		return fmt.Sprintf("%s %s", st.Action, st.Scene)
	case ActionAnimateToSceneTime:
		return fmt.Sprintf("%s %s@%gs", st.Action, st.Scene, st.Time)
	default:
		return st.Action
	}
}
