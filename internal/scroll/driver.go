// Package scroll drives the scroll position: instant jumps and eased,
// time-bounded transitions, either frame by frame on the native viewport or
// delegated to a smooth-scroll backend.
package scroll

import (
	"math"
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/core/constants"
	"github.com/penwyp/go-sticky-scroll/internal/core/easing"
	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// Viewport is the native scrollable region
type Viewport interface {
	ScrollY() float64
	SetScrollY(y float64)
}

// Listener receives scroll notifications
type Listener interface {
	OnScroll()
}

// BackendOptions parameterize a delegated scroll
type BackendOptions struct {
	Immediate bool
	Duration  time.Duration
	Easing    easing.Func
}

// Backend is a smooth-scroll implementation that owns its own frame ticking
type Backend interface {
	On(event string, l Listener)
	Off(event string, l Listener)
	ScrollTo(position float64, opts BackendOptions)
	AnimatedScroll() float64
}

type animation struct {
	start    time.Time
	from     float64
	distance float64
	duration time.Duration
	ease     easing.Func
}

// Driver performs scroll transitions for one scrollable region. A new call
// supersedes any transition in flight.
type Driver struct {
	sched    runloop.Scheduler
	viewport Viewport
	backend  Backend
	speed    float64
	resample func()

	frame     runloop.FrameID
	anim      *animation
	busyUntil time.Time
}

// Option configures a Driver
type Option func(*Driver)

// WithBackend delegates transitions to a smooth-scroll backend
func WithBackend(b Backend) Option {
	return func(d *Driver) { d.backend = b }
}

// WithAutoSpeed sets the speed, in thousands of pixels per second, used for Auto durations
func WithAutoSpeed(speed float64) Option {
	return func(d *Driver) { d.speed = speed }
}

// WithResample registers the callback invoked after an immediate delegated
// scroll, which produces no native scroll event
func WithResample(fn func()) Option {
	return func(d *Driver) { d.resample = fn }
}

// NewDriver creates a driver for viewport
func NewDriver(sched runloop.Scheduler, viewport Viewport, opts ...Option) *Driver {
	d := &Driver{
		sched:    sched,
		viewport: viewport,
		speed:    constants.DefaultAutoScrollSpeed,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetBackend switches between delegated (non-nil) and native (nil) scrolling
func (d *Driver) SetBackend(b Backend) {
	d.Stop()
	d.backend = b
}

// Backend returns the delegated backend, if any
func (d *Driver) Backend() Backend {
	return d.backend
}

// SetResample replaces the resample callback
func (d *Driver) SetResample(fn func()) {
	d.resample = fn
}

// Position returns the current scroll position as seen by the active path
func (d *Driver) Position() float64 {
	if d.backend != nil {
		return d.backend.AnimatedScroll()
	}
	return d.viewport.ScrollY()
}

// ResolveDuration turns dur into a concrete length for a scroll to target
func (d *Driver) ResolveDuration(target float64, dur Duration) time.Duration {
	if !dur.Auto {
		if dur.Value < 0 {
			return 0
		}
		return dur.Value
	}

	speed := d.speed
	if speed <= 0 {
		speed = constants.DefaultAutoScrollSpeed
	}
	distance := math.Abs(target - d.Position())
	return time.Duration(distance / (speed * 1000) * float64(time.Second))
}

// AnimateScrollTo moves the scroll position to target over dur using kind
func (d *Driver) AnimateScrollTo(target float64, dur Duration, kind easing.Kind) {
	length := d.ResolveDuration(target, dur)
	d.cancelFrame()

	if d.backend != nil {
		d.delegate(target, length, kind)
		return
	}

	if length <= 0 {
		d.viewport.SetScrollY(target)
		return
	}

	from := d.viewport.ScrollY()
	d.anim = &animation{
		start:    d.sched.Now(),
		from:     from,
		distance: target - from,
		duration: length,
		ease:     kind.Func(),
	}
	util.LogDebugf("Animating scroll %.0f -> %.0f over %s (%s)", from, target, length, kind)
	d.frame = d.sched.RequestFrame(d.step)
}

// Animating reports whether a transition is in flight
func (d *Driver) Animating() bool {
	if d.backend != nil {
		return d.sched.Now().Before(d.busyUntil)
	}
	return d.anim != nil
}

// Stop abandons the transition in flight, leaving the position where it is
func (d *Driver) Stop() {
	if d.backend != nil && d.Animating() {
		d.backend.ScrollTo(d.backend.AnimatedScroll(), BackendOptions{Immediate: true})
	}
	d.cancelFrame()
	d.busyUntil = time.Time{}
}

func (d *Driver) delegate(target float64, length time.Duration, kind easing.Kind) {
	immediate := length <= 0
	d.backend.ScrollTo(target, BackendOptions{
		Immediate: immediate,
		Duration:  length,
		Easing:    kind.Func(),
	})

	if immediate {
		d.busyUntil = time.Time{}
		if d.resample != nil {
			d.sched.Post(d.resample)
		}
		return
	}
	d.busyUntil = d.sched.Now().Add(length)
}

func (d *Driver) step(now time.Time) {
	a := d.anim
	if a == nil {
		return
	}

	t := float64(now.Sub(a.start)) / float64(a.duration)
	if t >= 1 {
		d.frame = 0
		d.anim = nil
		d.viewport.SetScrollY(a.from + a.distance)
		return
	}

	d.viewport.SetScrollY(a.from + a.distance*a.ease(t))
	d.frame = d.sched.RequestFrame(d.step)
}

func (d *Driver) cancelFrame() {
	if d.frame != 0 {
		d.sched.CancelFrame(d.frame)
		d.frame = 0
	}
	d.anim = nil
}
