package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-sticky-scroll/internal/application/sticky"
	"github.com/penwyp/go-sticky-scroll/internal/snap"
	"github.com/penwyp/go-sticky-scroll/internal/testing/vt"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

func testStatus() Status {
	return Status{
		Scenario: "demo",
		Snapshot: sticky.Snapshot{
			Ready:    true,
			Enabled:  true,
			ScrollY:  2000,
			Progress: 0.2,
			Scene:    "intro",
			Time:     2,
			Snap:     snap.Armed,
		},
		Scenes: []SceneBar{
			{Name: "intro", Start: 0, End: 0.4},
			{Name: "outro", Start: 0.4, End: 1},
		},
		Viewport: 1000,
		MaxY:     10000,
		Snapping: true,
	}
}

func TestLines(t *testing.T) {
	td := NewTerminalDisplay(&bytes.Buffer{})

	t.Run("status", func(t *testing.T) {
		out := strings.Join(td.Lines(testStatus()), "\n")

		assert.Contains(t, out, "Sticky Scroll - demo")
		assert.Contains(t, out, "2000 / 10000 px   viewport 1000 px")
		assert.Contains(t, out, " 20.00%")
		assert.Contains(t, out, "Scene     intro @ 2.000s")
		assert.Contains(t, out, "Focus     off   Snap armed")
		assert.Contains(t, out, "▶ intro")
		assert.Contains(t, out, "  outro")
		assert.NotContains(t, out, "watching")
	})

	t.Run("snapping_off_and_flags", func(t *testing.T) {
		s := testStatus()
		s.Snapping = false
		s.Snapshot.Focus = "outro"
		s.Snapshot.Animating = true
		s.Snapshot.Enabled = false
		s.Watching = true
		s.Reloads = 2
		s.Message = "reloaded"

		out := strings.Join(td.Lines(s), "\n")
		assert.Contains(t, out, "Focus     outro   Snap off  animating  disabled")
		assert.Contains(t, out, "watching (2 reloads)")
		assert.Contains(t, out, "reloaded")
	})

	t.Run("not_ready", func(t *testing.T) {
		s := testStatus()
		s.Snapshot.Ready = false

		lines := td.Lines(s)
		assert.Len(t, lines, 3)
		assert.Contains(t, lines[2], "Waiting")
	})

	t.Run("help", func(t *testing.T) {
		s := testStatus()
		s.ShowHelp = true
		s.Help = []string{"q   quit"}

		out := strings.Join(td.Lines(s), "\n")
		assert.Contains(t, out, "  q   quit")
		assert.NotContains(t, out, "Progress")
	})

	t.Run("narrow_terminal_truncates", func(t *testing.T) {
		narrow := NewTerminalDisplay(&bytes.Buffer{})
		narrow.SetWidth(20)

		for _, line := range narrow.Lines(testStatus())[1:] {
			assert.LessOrEqual(t, util.GetDisplayWidth(line), 20, line)
		}
	})
}

func TestSceneFill(t *testing.T) {
	sc := SceneBar{Start: 0.4, End: 0.8}

	assert.Equal(t, 0.0, sceneFill(0.2, sc))
	assert.InDelta(t, 0.5, sceneFill(0.6, sc), 1e-9)
	assert.Equal(t, 1.0, sceneFill(0.9, sc))

	empty := SceneBar{Start: 0.4, End: 0.4}
	assert.Equal(t, 0.0, sceneFill(0.3, empty))
	assert.Equal(t, 1.0, sceneFill(0.4, empty))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	td := NewTerminalDisplay(&buf)

	s := testStatus()
	require.NoError(t, td.Render(s))
	assert.True(t, strings.HasPrefix(buf.String(), util.ClearScreen+util.MoveCursorHome))

	t.Run("unchanged_status_writes_nothing", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, td.Render(s))
		assert.Empty(t, buf.String())
	})

	t.Run("only_changed_lines_are_rewritten", func(t *testing.T) {
		buf.Reset()
		s.Snapshot.Time = 3
		require.NoError(t, td.Render(s))

		out := buf.String()
		assert.NotContains(t, out, util.ClearScreen)
		assert.Contains(t, out, util.MoveCursor(5, 1)+util.ClearLine+"Scene     intro @ 3.000s")
		assert.Equal(t, 1, strings.Count(out, util.ClearLine))
	})

	t.Run("resize_redraws_everything", func(t *testing.T) {
		buf.Reset()
		td.SetWidth(100)
		require.NoError(t, td.Render(s))
		assert.True(t, strings.HasPrefix(buf.String(), util.ClearScreen))
	})
}

func TestAlternateScreen(t *testing.T) {
	var buf bytes.Buffer
	td := NewTerminalDisplay(&buf)

	td.EnterAlternateScreen()
	td.EnterAlternateScreen()
	assert.Equal(t, 1, strings.Count(buf.String(), util.AlternateScreen))

	td.ExitAlternateScreen()
	td.ExitAlternateScreen()
	assert.Equal(t, 1, strings.Count(buf.String(), util.NormalScreen))
}

func TestDifferentialRenderMatchesFullRender(t *testing.T) {
	screen := vt.NewScreen(30, 80)
	td := NewTerminalDisplay(screen)

	s := testStatus()
	require.NoError(t, td.Render(s))

	for _, y := range []float64{2500, 4000, 7300, 10000} {
		s.Snapshot.ScrollY = y
		s.Snapshot.Progress = y / 10000
		if y >= 4000 {
			s.Snapshot.Scene = "outro"
			s.Snapshot.Time = (s.Snapshot.Progress - 0.4) * 10
		}
		require.NoError(t, td.Render(s))
	}

	fresh := vt.NewScreen(30, 80)
	require.NoError(t, NewTerminalDisplay(fresh).Render(s))

	assert.Equal(t, fresh.Lines(), screen.Lines())
	assert.True(t, screen.ContainsText("▶ outro"))
	assert.Equal(t, "Sticky Scroll - demo", vt.StripANSI(screen.Line(0)))
}
