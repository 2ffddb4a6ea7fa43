package sim

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/application/sticky"
	"github.com/penwyp/go-sticky-scroll/internal/config"
	"github.com/penwyp/go-sticky-scroll/internal/core/constants"
	"github.com/penwyp/go-sticky-scroll/internal/core/geometry"
	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const twoScenes = `
name: two scenes
document:
  scenes:
    - {name: intro, duration: 4}
    - {name: outro, duration: 6}
layout:
  viewport: 1000
  wrapperHeight: 11000
`

func mustParse(t *testing.T, yaml string) *Scenario {
	t.Helper()
	sc, err := ParseScenario([]byte(yaml))
	require.NoError(t, err)
	return sc
}

func lastOf(events []Event, kind string) (Event, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == kind {
			return events[i], true
		}
	}
	return Event{}, false
}

func TestReadScenario(t *testing.T) {
	sc, err := ReadScenario(filepath.Join("testdata", "snap.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "snap to the end of the intro", sc.Name)
	require.Len(t, sc.Document.Scenes, 3)
	assert.Equal(t, []string{"desktop"}, sc.Document.Scenes[0].Layouts)

	actions := make([]string, len(sc.Script))
	for i, st := range sc.Script {
		actions[i] = st.Action
	}
	assert.Equal(t, []string{ActionEnable, ActionSnap, ActionScrollTo}, actions, "script sorted by time, stable")

	opts, err := sc.ResolveOptions(config.Builtin())
	require.NoError(t, err)
	assert.False(t, opts.SnapToBoundaries)
	assert.Equal(t, 100*time.Millisecond, opts.SnapDuration.Value)
	require.Len(t, opts.SnapPoints, 1)
	assert.True(t, opts.SnapPoints[0].Time.End)
	assert.Equal(t, "--", opts.IgnoreSceneSymbol, "unset options keep the base")
}

func TestWriteScenarioRoundTrip(t *testing.T) {
	sc := mustParse(t, twoScenes+`
script:
  - {at: 0.5, action: animateToSceneTime, scene: outro, time: 2, duration: auto, offset: 10%}
`)
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteScenario(sc, path))

	back, err := ReadScenario(path)
	require.NoError(t, err)
	require.Len(t, back.Script, 1)
	assert.Equal(t, 500*time.Millisecond, back.Script[0].At.Value)
	require.NotNil(t, back.Script[0].Duration)
	assert.True(t, back.Script[0].Duration.Auto)
	assert.Equal(t, "10%", back.Script[0].Offset)
}

func TestParseScenarioErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no_scenes", "layout: {viewport: 100}"},
		{"no_viewport", "document: {scenes: [{name: a, duration: 1}]}"},
		{"unknown_action", twoScenes + "script: [{at: 0, action: jump}]"},
		{"auto_step_time", twoScenes + "script: [{at: auto, action: enable}]"},
		{"bad_yaml", "document: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := ParseScenario([]byte("layout: {viewport: 100}"))
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestRunSnapScenario(t *testing.T) {
	sc, err := ReadScenario(filepath.Join("testdata", "snap.yaml"))
	require.NoError(t, err)

	host, err := Run(sc, HostConfig{Options: config.Builtin()}, epoch)
	require.NoError(t, err)

	assert.Equal(t, 4000.0, host.Win.ScrollY())
	assert.Equal(t, 2, host.Controller.Table().Len(), "ignored scene left out")

	events := host.Trace.Events()
	seek, ok := lastOf(events, KindSeek)
	require.True(t, ok)
	assert.Equal(t, "outro", seek.Scene)
	assert.Equal(t, 0.0, seek.Time)
	assert.Equal(t, 4000.0, seek.ScrollY)

	// Setup shows every scene with scene-load handlers suppressed
	shows := host.Trace.Filter(KindShow)
	require.GreaterOrEqual(t, len(shows), 3)
	for _, e := range shows[:3] {
		assert.Equal(t, "load suppressed", e.Detail)
	}
	assert.Empty(t, shows[len(shows)-1].Detail)
}

func TestRunFocusScenario(t *testing.T) {
	sc := mustParse(t, twoScenes+`
options: {snapToBoundaries: true}
script:
  - {at: 0, action: enable}
  - {at: 0, action: focus, scene: intro}
  - {at: 100ms, action: scrollTo, y: 8000}
`)

	host, err := Run(sc, HostConfig{Options: config.Builtin()}, epoch)
	require.NoError(t, err)

	assert.Equal(t, 4000.0, host.Win.ScrollY())
	assert.Equal(t, "intro", host.Doc.CurrentSceneName())
	assert.Equal(t, 4.0, host.Doc.TimelinePosition("intro"))
	assert.False(t, host.Doc.Playing("intro"))
}

func TestRunEdgeScenario(t *testing.T) {
	sc := mustParse(t, twoScenes+`
script:
  - {at: 0, action: enable}
  - {at: 100ms, action: scrollTo, y: 20000}
  - {at: 200ms, action: scrollBy, y: 0}
  - {at: 300ms, action: animateTo, progress: 0, duration: 0}
`)

	var calls int
	host, err := Run(sc, HostConfig{
		Options: config.Builtin(),
		Callbacks: stickyCallbacks(constants.EdgeAfterEnd, func() {
			calls++
		}),
	}, epoch)
	require.NoError(t, err)

	behaviors := host.Trace.Filter(KindBehavior)
	var details []string
	for _, e := range behaviors {
		details = append(details, e.Detail)
	}
	assert.Equal(t, []string{constants.EdgeBeforeStart, constants.EdgeAfterEnd, constants.EdgeBeforeStart}, details)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0.0, host.Win.ScrollY())
}

func TestRunSmoothScenario(t *testing.T) {
	sc := mustParse(t, twoScenes+`
options: {useSmoothScroll: true, autoScrollSpeed: 10}
script:
  - {at: 0, action: enable}
  - {at: 0, action: animateToScene, scene: outro, duration: auto, easing: out}
`)

	host, err := Run(sc, HostConfig{Options: config.Builtin()}, epoch)
	require.NoError(t, err)

	require.NotNil(t, host.Scroller)
	assert.Equal(t, 4000.0, host.Win.ScrollY())
	assert.Equal(t, 4000.0, host.Scroller.AnimatedScroll())
	assert.Equal(t, "outro", host.Doc.CurrentSceneName())
}

func TestHostReload(t *testing.T) {
	sc := mustParse(t, twoScenes)
	sched := runloop.NewManual(epoch, 10*time.Millisecond)
	host, err := NewHost(sc, sched, HostConfig{Options: config.Builtin()})
	require.NoError(t, err)
	assert.Equal(t, 10.0, host.Controller.Table().TotalLength())

	next := mustParse(t, `
document:
  scenes:
    - {name: intro, duration: 4}
    - {name: middle, duration: 10}
    - {name: outro, duration: 6}
layout: {viewport: 500}
`)
	host.Reload(next)

	assert.Equal(t, 20.0, host.Controller.Table().TotalLength())
	assert.Equal(t, 500.0, host.Win.StickyHeight())
	assert.Equal(t, 11000.0, host.Win.Layout().WrapperHeight)
}

func TestWindow(t *testing.T) {
	sched := runloop.NewManual(epoch, 10*time.Millisecond)

	t.Run("sticky_height_uses_viewport_unit", func(t *testing.T) {
		w := NewWindow(sched, Layout{Viewport: 800, WrapperHeight: 4000, StickyHeight: "50%"}, "vh", nil)
		assert.Equal(t, 400.0, w.StickyHeight())
		assert.Equal(t, 400.0, w.Geometry().ViewportHeight)
	})

	t.Run("invalid_sticky_height_falls_back", func(t *testing.T) {
		w := NewWindow(sched, Layout{Viewport: 800, WrapperHeight: 4000, StickyHeight: "tall"}, "vh", nil)
		assert.Equal(t, 800.0, w.StickyHeight())
	})

	t.Run("scroll_is_clamped_and_dispatched_once", func(t *testing.T) {
		w := NewWindow(sched, Layout{Viewport: 1000, WrapperHeight: 5000, PaddingTop: 100, PaddingBottom: 100}, "vh", nil)
		l := &countingListener{}
		w.AddScrollListener(l)

		w.SetScrollY(99999)
		w.SetScrollY(99999)
		sched.Drain()

		assert.Equal(t, 4200.0, w.ScrollY())
		assert.Equal(t, 1, l.n)

		w.RemoveScrollListener(l)
		w.SetScrollY(0)
		sched.Drain()
		assert.Equal(t, 1, l.n)
	})

	t.Run("sticky_box_pins_inside_wrapper", func(t *testing.T) {
		w := NewWindow(sched, Layout{Viewport: 1000, WrapperHeight: 5000, PaddingTop: 100}, "vh", nil)

		assert.Equal(t, 100.0, w.StickyBox().Top, "not yet pinned")
		w.SetScrollY(2100)
		assert.Equal(t, 0.0, w.StickyBox().Top)
		w.SetScrollY(4100)
		assert.Equal(t, 0.0, w.StickyBox().Top)
		assert.Equal(t, 1.0, geometry.SampleProgress(w.StickyBox(), w.WrapperBox()))
		w.SetScrollY(2100)
		assert.Equal(t, 0.5, geometry.SampleProgress(w.StickyBox(), w.WrapperBox()))
	})

	t.Run("resize_dispatches_scroll", func(t *testing.T) {
		w := NewWindow(sched, Layout{Viewport: 1000, WrapperHeight: 5000}, "vh", nil)
		l := &countingListener{}
		w.AddScrollListener(l)

		w.SetViewportHeight(600)
		sched.Drain()

		assert.Equal(t, 1, l.n)
		assert.Equal(t, 600.0, w.StickyHeight())
	})
}

func stickyCallbacks(edge string, fn func()) sticky.CallbackMap {
	return sticky.CallbackMap{
		edge: func(sticky.Document, sticky.Window, sticky.EdgeEvent) { fn() },
	}
}

type countingListener struct{ n int }

func (l *countingListener) OnScroll() { l.n++ }
