package sticky

import (
	"testing"
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/config"
	"github.com/penwyp/go-sticky-scroll/internal/core/geometry"
	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
	"github.com/penwyp/go-sticky-scroll/internal/scroll"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type seek struct {
	scene string
	time  float64
}

type fakeDocument struct {
	names     []string
	durations map[string]float64
	current   string

	shows     []string
	pauses    []string
	seeks     []seek
	behaviors []string
	onShow    func(name string)
}

func newFakeDocument(current string, scenes ...any) *fakeDocument {
	d := &fakeDocument{durations: make(map[string]float64), current: current}
	for i := 0; i+1 < len(scenes); i += 2 {
		name := scenes[i].(string)
		d.names = append(d.names, name)
		d.durations[name] = float64(scenes[i+1].(int))
	}
	return d
}

func (d *fakeDocument) SceneNames() []string     { return d.names }
func (d *fakeDocument) CurrentSceneName() string { return d.current }

func (d *fakeDocument) ShowScene(name string) {
	d.current = name
	d.shows = append(d.shows, name)
	if d.onShow != nil {
		d.onShow(name)
	}
}

func (d *fakeDocument) TimelineDuration(name string) float64 { return d.durations[name] }
func (d *fakeDocument) SceneLayouts(name string) any          { return "layout-" + name }
func (d *fakeDocument) PauseTimeline(name string)            { d.pauses = append(d.pauses, name) }
func (d *fakeDocument) SeekTimeline(t float64, name string)  { d.seeks = append(d.seeks, seek{name, t}) }
func (d *fakeDocument) TriggerBehavior(name string)          { d.behaviors = append(d.behaviors, name) }

func (d *fakeDocument) lastSeek() (seek, bool) {
	if len(d.seeks) == 0 {
		return seek{}, false
	}
	return d.seeks[len(d.seeks)-1], true
}

func (d *fakeDocument) count(behavior string) int {
	n := 0
	for _, b := range d.behaviors {
		if b == behavior {
			n++
		}
	}
	return n
}

// fakeWindow lays out a wrapper at the top of the page holding a sticky
// element as tall as the viewport. Scroll events are dispatched as tasks and
// only when the position changes.
type fakeWindow struct {
	sched     runloop.Scheduler
	y         float64
	viewport  float64
	wrapper   float64
	padTop    float64
	padBottom float64
	listeners []scroll.Listener
	heights   []float64
}

func (w *fakeWindow) ScrollY() float64 { return w.y }

func (w *fakeWindow) SetScrollY(y float64) {
	maxY := w.padTop + w.wrapper + w.padBottom - w.viewport
	if y > maxY {
		y = maxY
	}
	if y < 0 {
		y = 0
	}
	if y == w.y {
		return
	}
	w.y = y
	w.sched.Post(w.dispatch)
}

func (w *fakeWindow) dispatch() {
	list := append([]scroll.Listener(nil), w.listeners...)
	for _, l := range list {
		l.OnScroll()
	}
}

func (w *fakeWindow) AddScrollListener(l scroll.Listener) {
	w.listeners = append(w.listeners, l)
}

func (w *fakeWindow) RemoveScrollListener(l scroll.Listener) {
	for i, existing := range w.listeners {
		if existing == l {
			w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
			return
		}
	}
}

func (w *fakeWindow) SetWrapperHeight(px float64) {
	w.wrapper = px
	w.heights = append(w.heights, px)
}

func (w *fakeWindow) Geometry() geometry.Geometry {
	return geometry.Geometry{WrapperHeight: w.wrapper, PaddingTop: w.padTop, ViewportHeight: w.viewport}
}

func (w *fakeWindow) WrapperBox() geometry.Box {
	return geometry.Box{
		Top:           -w.y,
		Bottom:        w.padTop + w.wrapper + w.padBottom - w.y,
		PaddingTop:    w.padTop,
		PaddingBottom: w.padBottom,
	}
}

func (w *fakeWindow) StickyBox() geometry.Box {
	contentTop := w.padTop - w.y
	contentBottom := contentTop + w.wrapper
	top := contentTop
	if top < 0 {
		top = 0
	}
	if top > contentBottom-w.viewport {
		top = contentBottom - w.viewport
	}
	return geometry.Box{Top: top, Bottom: top + w.viewport}
}

type harness struct {
	c     *Controller
	doc   *fakeDocument
	win   *fakeWindow
	sched *runloop.Manual
}

// newHarness builds a controller over scenes A:4 and B:6 in a viewport of
// 1000px and a wrapper of 11000px, so scroll position y maps to progress y/10000
func newHarness(t *testing.T, mutate func(o *config.Options), opts ...Option) *harness {
	t.Helper()

	o := config.Builtin()
	o.SnapToBoundaries = false
	if mutate != nil {
		mutate(&o)
	}

	sched := runloop.NewManual(epoch, 10*time.Millisecond)
	doc := newFakeDocument("A", "A", 4, "B", 6)
	win := &fakeWindow{sched: sched, viewport: 1000, wrapper: 11000}

	opts = append([]Option{WithOptions(o)}, opts...)
	return &harness{
		c:     New(doc, win, sched, opts...),
		doc:   doc,
		win:   win,
		sched: sched,
	}
}

// start runs setup, enables tracking and processes the initial sample
func (h *harness) start() {
	h.c.Setup()
	h.c.Enable(11000)
	h.sched.Drain()
	h.sched.Frame()
}

// scrollTo moves the window and renders the next frame
func (h *harness) scrollTo(y float64) {
	h.win.SetScrollY(y)
	h.sched.Drain()
	h.sched.Frame()
}
