// Package sticky drives a host document's scene timelines from the scroll
// position of a sticky container.
package sticky

import (
	"math"
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/config"
	"github.com/penwyp/go-sticky-scroll/internal/core/constants"
	"github.com/penwyp/go-sticky-scroll/internal/core/easing"
	"github.com/penwyp/go-sticky-scroll/internal/core/geometry"
	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
	"github.com/penwyp/go-sticky-scroll/internal/core/scene"
	"github.com/penwyp/go-sticky-scroll/internal/scroll"
	"github.com/penwyp/go-sticky-scroll/internal/snap"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// boundaryTolerance is the distance in pixels within which a focused position
// counts as on the boundary. Scroll positions are rounded up to whole pixels,
// so a forced scroll to the end boundary can land just past it.
const boundaryTolerance = 1.0

// Controller is the per-document scroll state machine. It samples progress on
// every scroll event, resolves the target scene and time, applies focus
// clamping and pushes the result into the document once per animation frame.
//
// All methods must be called from the scheduler's thread.
type Controller struct {
	doc       Document
	win       Window
	sched     runloop.Scheduler
	options   config.Options
	backend   scroll.Backend
	callbacks CallbackLookup

	driver *scroll.Driver
	snap   *snap.Engine

	// Timeline state
	table          *scene.Table
	lastPercentage float64
	hasLast        bool
	setupRunning   bool
	ready          bool
	focus          string
	pending        []func()

	// Tracking state
	enabled  bool
	sampling bool
	frame    runloop.FrameID
	target   scene.Position
	applied  scene.Position
	hasApply bool
}

// Option configures a Controller
type Option func(*Controller)

// WithOptions replaces the snapshot of the global defaults
func WithOptions(o config.Options) Option {
	return func(c *Controller) { c.options = o.Clone() }
}

// WithBackend provides the smooth-scroll backend used when UseSmoothScroll is set
func WithBackend(b scroll.Backend) Option {
	return func(c *Controller) { c.backend = b }
}

// WithCallbacks registers user functions invoked on edge crossings
func WithCallbacks(l CallbackLookup) Option {
	return func(c *Controller) { c.callbacks = l }
}

// New creates a controller for doc rendered in win. Options default to a
// snapshot of config.Defaults taken now; later changes to the defaults do not
// affect this controller.
func New(doc Document, win Window, sched runloop.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		doc:     doc,
		win:     win,
		sched:   sched,
		options: config.Defaults(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.options.Validate(); err != nil {
		util.LogWarnf("Invalid sticky scroll options, using builtin defaults: %v", err)
		c.options = config.Builtin()
	}

	// Resolve the scroll backend
	if !c.options.UseSmoothScroll {
		c.backend = nil
	} else if c.backend == nil {
		util.LogWarn("Smooth scrolling requested but no smooth-scroll backend is available; using native scrolling")
	}

	driverOpts := []scroll.Option{
		scroll.WithAutoSpeed(c.options.AutoScrollSpeed),
		scroll.WithResample(c.OnScroll),
	}
	if c.backend != nil {
		driverOpts = append(driverOpts, scroll.WithBackend(c.backend))
	}
	c.driver = scroll.NewDriver(sched, win, driverOpts...)
	c.snap = snap.NewEngine(sched, c)
	c.snap.SetFilter(c.snapAllowed)

	return c
}

// Options returns the options this controller runs with
func (c *Controller) Options() config.Options {
	return c.options.Clone()
}

// Driver exposes the scroll driver
func (c *Controller) Driver() *scroll.Driver {
	return c.driver
}

// Enable attaches the scroll listener and samples once. A non-positive height
// falls back to the configured wrapper height. Calling Enable while enabled
// has no effect.
func (c *Controller) Enable(height float64) {
	if c.enabled {
		return
	}
	if height <= 0 {
		height = c.options.WrapperHeight
	}

	c.win.SetWrapperHeight(height)
	c.enabled = true

	if c.backend != nil {
		if native, ok := c.backend.(scroll.Listener); ok {
			c.win.AddScrollListener(native)
		}
		c.backend.On(constants.EventScroll, c)
	} else {
		c.win.AddScrollListener(c)
	}

	util.LogDebugf("Sticky scroll enabled (wrapper height %.0fpx)", height)
	c.sched.Post(c.OnScroll)
}

// Disable detaches the scroll listener and cancels the pending frame, snap and
// scroll animation.
// Calling Disable while disabled has no effect.
func (c *Controller) Disable() {
	if !c.enabled {
		return
	}
	c.enabled = false

	if c.backend != nil {
		c.backend.Off(constants.EventScroll, c)
		if native, ok := c.backend.(scroll.Listener); ok {
			c.win.RemoveScrollListener(native)
		}
	} else {
		c.win.RemoveScrollListener(c)
	}

	c.cancelFrame()
	c.snap.Cancel()
	c.driver.Stop()
	util.LogDebug("Sticky scroll disabled")
}

// Enabled reports whether scroll tracking is on
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Destroy disables tracking and snapping and drops deferred operations
func (c *Controller) Destroy() {
	c.Disable()
	c.snap.Disable()
	c.driver.Stop()
	c.pending = nil
}

// OnScroll processes one scroll sample. It implements scroll.Listener.
func (c *Controller) OnScroll() {
	if !c.enabled || !c.ready || c.sampling {
		return
	}
	c.sampling = true
	defer func() { c.sampling = false }()

	// Sample progress from the live layout
	progress := geometry.SampleProgress(c.win.StickyBox(), c.win.WrapperBox())

	// Snapping runs on its own timer
	c.snap.Sample(c.driver.Position())

	// Keep the scroll position inside the focused scene
	if c.focus != "" && c.options.SnapToBoundaries {
		if bound, outside := c.focusBound(progress); outside {
			y := c.win.Geometry().ScrollPositionFromProgress(bound)
			if math.Abs(y-c.driver.Position()) > boundaryTolerance {
				util.LogDebugf("Progress %.4f outside focused scene %q, forcing scroll to %.0f", progress, c.focus, y)
				c.driver.AnimateScrollTo(y, scroll.Instant, easing.Linear)
				return
			}
		}
	}

	pos, ok := c.table.SceneAndTimeFromProgress(progress)
	if !ok {
		return
	}
	pos = c.clampToFocus(pos)

	c.schedule(pos)
	c.notifyEdges(progress, pos)
}

// schedule stores pos as the target of the next frame. Samples arriving
// before that frame replace the target without requesting another frame.
func (c *Controller) schedule(pos scene.Position) {
	c.target = pos
	if c.frame != 0 {
		return
	}
	c.frame = c.sched.RequestFrame(c.apply)
}

func (c *Controller) apply(time.Time) {
	c.frame = 0
	pos := c.target

	if c.doc.CurrentSceneName() != pos.Name {
		c.doc.ShowScene(pos.Name)
	}
	c.doc.PauseTimeline(pos.Name)
	c.doc.SeekTimeline(pos.Time, pos.Name)

	c.applied = pos
	c.hasApply = true
}

func (c *Controller) cancelFrame() {
	if c.frame != 0 {
		c.sched.CancelFrame(c.frame)
		c.frame = 0
	}
}

// notifyEdges fires the edge behavior when progress reaches exactly 0 or 1
// and differs from the previous sample
func (c *Controller) notifyEdges(progress float64, pos scene.Position) {
	changed := !c.hasLast || c.lastPercentage != progress
	c.lastPercentage = progress
	c.hasLast = true
	if !changed {
		return
	}

	var edge string
	switch progress {
	case 0:
		edge = constants.EdgeBeforeStart
	case 1:
		edge = constants.EdgeAfterEnd
	default:
		return
	}

	util.LogDebugf("Edge %s reached in scene %q", edge, pos.Name)
	c.doc.TriggerBehavior(edge)
	if c.callbacks == nil {
		return
	}
	if fn, ok := c.callbacks.Callback(edge); ok {
		fn(c.doc, c.win, EdgeEvent{
			Type:     edge,
			Progress: progress,
			Scene:    pos.Name,
			Time:     pos.Time,
		})
	}
}
