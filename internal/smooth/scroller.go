// Package smooth is a smooth-scroll backend: it owns the animated scroll
// position, ticks it forward on its own animation frames, and re-emits native
// scroll activity as "scroll" events.
package smooth

import (
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/core/constants"
	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
	"github.com/penwyp/go-sticky-scroll/internal/scroll"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// Scroller implements scroll.Backend on top of a native viewport
type Scroller struct {
	sched     runloop.Scheduler
	viewport  scroll.Viewport
	listeners map[string][]scroll.Listener

	animated  float64
	from      float64
	target    float64
	start     time.Time
	duration  time.Duration
	ease      func(float64) float64
	animating bool
	frame     runloop.FrameID
}

// New creates a scroller bound to viewport, starting at its current position
func New(sched runloop.Scheduler, viewport scroll.Viewport) *Scroller {
	return &Scroller{
		sched:     sched,
		viewport:  viewport,
		listeners: make(map[string][]scroll.Listener),
		animated:  viewport.ScrollY(),
		target:    viewport.ScrollY(),
	}
}

// On registers l for event. Registering the same listener twice is a no-op.
func (s *Scroller) On(event string, l scroll.Listener) {
	for _, existing := range s.listeners[event] {
		if existing == l {
			return
		}
	}
	s.listeners[event] = append(s.listeners[event], l)
}

// Off removes l from event
func (s *Scroller) Off(event string, l scroll.Listener) {
	list := s.listeners[event]
	for i, existing := range list {
		if existing == l {
			s.listeners[event] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for event
func (s *Scroller) ListenerCount(event string) int {
	return len(s.listeners[event])
}

// ScrollTo moves to position, immediately or animated over opts.Duration.
// Immediate scrolls emit no event.
func (s *Scroller) ScrollTo(position float64, opts scroll.BackendOptions) {
	if opts.Immediate || opts.Duration <= 0 {
		s.halt()
		s.animated = position
		s.target = position
		s.viewport.SetScrollY(position)
		return
	}

	ease := opts.Easing
	if ease == nil {
		ease = func(t float64) float64 { return t }
	}

	s.from = s.animated
	s.target = position
	s.start = s.sched.Now()
	s.duration = opts.Duration
	s.ease = ease
	if !s.animating {
		s.animating = true
		s.frame = s.sched.RequestFrame(s.Tick)
	}
	util.LogDebugf("Smooth scroll %.0f -> %.0f over %s", s.from, position, opts.Duration)
}

// AnimatedScroll returns the position the scroller is currently presenting
func (s *Scroller) AnimatedScroll() float64 {
	return s.animated
}

// IsScrolling reports whether an animation is in flight
func (s *Scroller) IsScrolling() bool {
	return s.animating
}

// Tick advances the animation to now and schedules the next frame while animating
func (s *Scroller) Tick(now time.Time) {
	s.frame = 0
	if !s.animating {
		return
	}

	t := float64(now.Sub(s.start)) / float64(s.duration)
	if t >= 1 {
		s.animated = s.target
		s.animating = false
	} else {
		s.animated = s.from + (s.target-s.from)*s.ease(t)
	}

	s.viewport.SetScrollY(s.animated)
	s.emit(constants.EventScroll)

	if s.animating {
		s.frame = s.sched.RequestFrame(s.Tick)
	}
}

// OnScroll follows native scrolling (wheel, keyboard) while no animation runs
// and forwards it to listeners
func (s *Scroller) OnScroll() {
	if s.animating {
		return
	}
	s.animated = s.viewport.ScrollY()
	s.target = s.animated
	s.emit(constants.EventScroll)
}

// Destroy stops animating and drops every listener
func (s *Scroller) Destroy() {
	s.halt()
	s.listeners = make(map[string][]scroll.Listener)
}

func (s *Scroller) halt() {
	if s.frame != 0 {
		s.sched.CancelFrame(s.frame)
		s.frame = 0
	}
	s.animating = false
}

func (s *Scroller) emit(event string) {
	list := make([]scroll.Listener, len(s.listeners[event]))
	copy(list, s.listeners[event])
	for _, l := range list {
		l.OnScroll()
	}
}
