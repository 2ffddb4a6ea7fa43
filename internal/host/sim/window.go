package sim

import (
	"math"

	"github.com/penwyp/go-sticky-scroll/internal/core/geometry"
	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
	"github.com/penwyp/go-sticky-scroll/internal/scroll"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// Layout describes the page geometry of a simulated window
type Layout struct {
	Viewport      float64 `yaml:"viewport" json:"viewport"`
	WrapperHeight float64 `yaml:"wrapperHeight" json:"wrapperHeight"`
	PaddingTop    float64 `yaml:"paddingTop" json:"paddingTop"`
	PaddingBottom float64 `yaml:"paddingBottom" json:"paddingBottom"`

	// CSS height of the sticky element; percentages become viewport units
	StickyHeight string `yaml:"stickyHeight" json:"stickyHeight"`
}

// Window is a simulated page holding a wrapper at the top of the document and
// a sticky element pinned to the top of the viewport inside it. Scroll events
// are dispatched as scheduler tasks, and only when the position changes.
type Window struct {
	sched  runloop.Scheduler
	trace  *Trace
	layout Layout
	unit   string
	sticky float64

	y         float64
	listeners []scroll.Listener
}

// NewWindow creates a window scrolled to the top. unit replaces percentages in
// the sticky height.
func NewWindow(sched runloop.Scheduler, layout Layout, unit string, trace *Trace) *Window {
	if layout.StickyHeight == "" {
		layout.StickyHeight = "100%"
	}
	w := &Window{
		sched:  sched,
		trace:  trace,
		layout: layout,
		unit:   unit,
	}
	w.resolveSticky()
	return w
}

// Layout returns the current layout
func (w *Window) Layout() Layout {
	return w.layout
}

// ScrollY returns the scroll position
func (w *Window) ScrollY() float64 {
	return w.y
}

// MaxScroll is the largest reachable scroll position
func (w *Window) MaxScroll() float64 {
	return math.Max(0, w.documentHeight()-w.layout.Viewport)
}

// SetScrollY scrolls to y, clamped to the document
func (w *Window) SetScrollY(y float64) {
	y = math.Max(0, math.Min(y, w.MaxScroll()))
	if y == w.y {
		return
	}
	w.y = y
	w.sched.Post(w.dispatch)
}

// ScrollBy scrolls by dy pixels
func (w *Window) ScrollBy(dy float64) {
	w.SetScrollY(w.y + dy)
}

// AddScrollListener subscribes l to scroll events
func (w *Window) AddScrollListener(l scroll.Listener) {
	w.listeners = append(w.listeners, l)
}

// RemoveScrollListener unsubscribes l
func (w *Window) RemoveScrollListener(l scroll.Listener) {
	for i, existing := range w.listeners {
		if existing == l {
			w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of scroll listeners
func (w *Window) ListenerCount() int {
	return len(w.listeners)
}

// SetWrapperHeight sets the wrapper content height
func (w *Window) SetWrapperHeight(px float64) {
	w.layout.WrapperHeight = px
	w.clamp()
}

// SetViewportHeight resizes the viewport. Like a browser resize it is
// followed by a scroll event.
func (w *Window) SetViewportHeight(px float64) {
	if px <= 0 || px == w.layout.Viewport {
		return
	}
	w.layout.Viewport = px
	w.resolveSticky()
	w.clamp()
	w.sched.Post(w.dispatch)
}

// Geometry returns the wrapper geometry. The sticky element takes the place
// of the viewport in the scrollable range.
func (w *Window) Geometry() geometry.Geometry {
	return geometry.Geometry{
		WrapperHeight:  w.layout.WrapperHeight,
		PaddingTop:     w.layout.PaddingTop,
		ViewportHeight: w.sticky,
	}
}

// WrapperBox returns the wrapper box relative to the viewport
func (w *Window) WrapperBox() geometry.Box {
	return geometry.Box{
		Top:           -w.y,
		Bottom:        w.documentHeight() - w.y,
		PaddingTop:    w.layout.PaddingTop,
		PaddingBottom: w.layout.PaddingBottom,
	}
}

// StickyBox returns the sticky element box relative to the viewport
func (w *Window) StickyBox() geometry.Box {
	contentTop := w.layout.PaddingTop - w.y
	contentBottom := contentTop + w.layout.WrapperHeight

	top := math.Max(0, contentTop)
	top = math.Min(top, contentBottom-w.sticky)
	return geometry.Box{Top: top, Bottom: top + w.sticky}
}

// StickyHeight returns the resolved sticky element height in pixels
func (w *Window) StickyHeight() float64 {
	return w.sticky
}

func (w *Window) documentHeight() float64 {
	return w.layout.PaddingTop + w.layout.WrapperHeight + w.layout.PaddingBottom
}

func (w *Window) resolveSticky() {
	css := geometry.SubstituteViewportUnit(w.layout.StickyHeight, w.unit)
	h, err := geometry.ParseLength(css, w.layout.Viewport)
	if err != nil {
		util.LogWarnf("Invalid sticky height %q, using the viewport height: %v", w.layout.StickyHeight, err)
		h = w.layout.Viewport
	}
	w.sticky = h
}

func (w *Window) clamp() {
	if w.y > w.MaxScroll() {
		w.y = w.MaxScroll()
	}
}

func (w *Window) dispatch() {
	w.trace.Record(Event{Kind: KindScroll, ScrollY: w.y})

	list := make([]scroll.Listener, len(w.listeners))
	copy(list, w.listeners)
	for _, l := range list {
		l.OnScroll()
	}
}
