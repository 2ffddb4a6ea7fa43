package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-sticky-scroll/internal/core/geometry"
	"github.com/penwyp/go-sticky-scroll/internal/core/scene"
	"github.com/penwyp/go-sticky-scroll/internal/host/sim"
	"github.com/penwyp/go-sticky-scroll/internal/snap"
)

var testGeometry = geometry.Geometry{WrapperHeight: 11000, ViewportHeight: 1000}

func testTable() *scene.Table {
	return scene.NewTable([]scene.Info{
		{Name: "A", Duration: 4},
		{Name: "B", Duration: 6},
	})
}

func testEvents() []sim.Event {
	return []sim.Event{
		{At: 0, Kind: sim.KindAction, Detail: "setup"},
		{At: 10 * time.Millisecond, Kind: sim.KindScroll, ScrollY: 2000},
		{At: 20 * time.Millisecond, Kind: sim.KindSeek, Scene: "A", Time: 2, ScrollY: 2000},
		{At: 30 * time.Millisecond, Kind: sim.KindBehavior, Scene: "B", Time: 6, ScrollY: 10000, Detail: "after-end"},
		{At: 40 * time.Millisecond, Kind: sim.KindSeek, Scene: "B", Time: 6, ScrollY: 10000},
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		want    Formatter
		wantErr bool
	}{
		{"default_is_table", "", &TableFormatter{}, false},
		{"table", FormatTable, &TableFormatter{}, false},
		{"csv", FormatCSV, &CSVFormatter{}, false},
		{"json", FormatJSON, &JSONFormatter{}, false},
		{"unknown", "xml", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "xml")
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}

func TestTableFormatter(t *testing.T) {
	r := Report{
		Title:   "Scenes",
		Headers: []string{"Name", "Y"},
		Rows: [][]string{
			{"intro", "0"},
			{"場景", "12345"},
		},
		Numeric: []bool{false, true},
	}

	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Format(&buf, r))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Scenes", lines[0])
	assert.Equal(t, "┌───────┬───────┐", lines[1])
	assert.Equal(t, "│ Name  │ Y     │", lines[2])
	assert.Equal(t, "│ intro │     0 │", lines[4])
	// wide runes take two cells each
	assert.Equal(t, "│ 場景  │ 12345 │", lines[5])
}

func TestTableFormatterShortRows(t *testing.T) {
	r := Report{Headers: []string{"A", "B"}, Rows: [][]string{{"x"}}}

	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Format(&buf, r))
	assert.Contains(t, buf.String(), "│ x     │       │")
}

func TestCSVFormatter(t *testing.T) {
	r := Report{
		Headers: []string{"Scene", "Detail"},
		Rows:    [][]string{{"A", "a, b"}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter().Format(&buf, r))
	assert.Equal(t, "Scene,Detail\nA,\"a, b\"\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	t.Run("records", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter().Format(&buf, SceneReport("", testTable(), testGeometry)))

		var got []SceneRecord
		require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "B", got[1].Name)
		assert.InDelta(t, 0.4, got[1].StartProgress, 1e-9)
	})

	t.Run("rows_without_records", func(t *testing.T) {
		r := Report{Headers: []string{"k"}, Rows: [][]string{{"v"}}}

		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter().Format(&buf, r))

		var got []map[string]string
		require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, []map[string]string{{"k": "v"}}, got)
	})
}

func TestSceneReport(t *testing.T) {
	r := SceneReport("Scenes", testTable(), testGeometry)

	require.Len(t, r.Rows, 2)
	assert.Equal(t, []string{"1", "A", "4.00", "0.00", "0.00%", "40.00%", "0"}, r.Rows[0])
	assert.Equal(t, []string{"2", "B", "6.00", "4.00", "40.00%", "100.00%", "4000"}, r.Rows[1])
	assert.Len(t, r.Numeric, len(r.Headers))

	t.Run("empty_table", func(t *testing.T) {
		r := SceneReport("", scene.NewTable(nil), testGeometry)
		assert.Empty(t, r.Rows)
	})
}

func TestSnapReport(t *testing.T) {
	points := []snap.Point{
		{Scene: "A", Time: snap.End, Progress: 0.4, ScrollY: 4000, Tolerance: snap.Tolerance{Before: 100, After: 40}},
	}

	r := SnapReport("Snap points", points)

	require.Len(t, r.Rows, 1)
	assert.Equal(t, "A", r.Rows[0][0])
	assert.Equal(t, snap.End.String(), r.Rows[0][1])
	assert.Equal(t, []string{"40.00%", "4000", "100", "40"}, r.Rows[0][2:])
}

func TestTraceReport(t *testing.T) {
	r := TraceReport("Trace", testEvents())

	require.Len(t, r.Rows, 5)
	assert.Equal(t, []string{"0.000s", "action", "", "", "0", "setup"}, r.Rows[0])
	// time is only meaningful for timeline events
	assert.Equal(t, "", r.Rows[1][3])
	assert.Equal(t, "2.000", r.Rows[2][3])
	assert.Equal(t, "after-end", r.Rows[3][5])

	t.Run("nil_events_encode_as_empty_list", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter().Format(&buf, TraceReport("", nil)))
		assert.Equal(t, "[]\n", buf.String())
	})
}

func TestSummarize(t *testing.T) {
	s := Summarize("edges", testEvents())

	assert.Equal(t, "edges", s.Scenario)
	assert.Equal(t, 40*time.Millisecond, s.Elapsed)
	assert.Equal(t, map[string]int{"action": 1, "scroll": 1, "seek": 2, "behavior": 1}, s.Counts)
	assert.Equal(t, []string{"after-end"}, s.Edges)
	assert.Equal(t, "B", s.FinalScene)
	assert.Equal(t, 6.0, s.FinalTime)
	assert.Equal(t, 10000.0, s.FinalScrollY)
}

func TestSummaryFormatter(t *testing.T) {
	t.Run("with_events", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewSummaryFormatter().Format(&buf, Summarize("edges", testEvents())))

		out := buf.String()
		assert.Contains(t, out, "Sticky Scroll Simulation Summary")
		assert.Contains(t, out, "Scenario: edges")
		assert.Contains(t, out, "Elapsed: 0.040s")
		assert.Contains(t, out, "  seek:      2")
		assert.Contains(t, out, "Edges: after-end")
		assert.Contains(t, out, "Scene:    B @ 6.000s")
		assert.Contains(t, out, "Scroll Y: 10000")
		// kinds are listed alphabetically
		assert.Less(t, strings.Index(out, "action:"), strings.Index(out, "seek:"))
	})

	t.Run("no_events", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewSummaryFormatter().Format(&buf, Summarize("", nil)))
		assert.Contains(t, buf.String(), "No events recorded")
		assert.NotContains(t, buf.String(), "Final State")
	})
}
