package formatter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/core/geometry"
	"github.com/penwyp/go-sticky-scroll/internal/core/scene"
	"github.com/penwyp/go-sticky-scroll/internal/host/sim"
	"github.com/penwyp/go-sticky-scroll/internal/snap"
)

// SceneRecord is one scene of an inspected document
type SceneRecord struct {
	Index         int     `json:"index"`
	Name          string  `json:"name"`
	Duration      float64 `json:"duration"`
	Start         float64 `json:"start"`
	StartProgress float64 `json:"startProgress"`
	EndProgress   float64 `json:"endProgress"`
	ScrollY       float64 `json:"scrollY"`
}

// SnapRecord is one resolved snap point
type SnapRecord struct {
	Scene    string  `json:"scene"`
	Time     string  `json:"time"`
	Progress float64 `json:"progress"`
	ScrollY  float64 `json:"scrollY"`
	Before   float64 `json:"before"`
	After    float64 `json:"after"`
}

// TraceReport lists recorded host events
func TraceReport(title string, events []sim.Event) Report {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		t := ""
		switch e.Kind {
		case sim.KindSeek, sim.KindPause, sim.KindBehavior:
			t = formatFloat(e.Time, 3)
		}
		rows = append(rows, []string{
			formatOffset(e.At),
			e.Kind,
			e.Scene,
			t,
			formatFloat(e.ScrollY, 0),
			e.Detail,
		})
	}

	if events == nil {
		events = []sim.Event{}
	}
	return Report{
		Title:   title,
		Headers: []string{"At", "Kind", "Scene", "Time", "Scroll Y", "Detail"},
		Rows:    rows,
		Numeric: []bool{true, false, false, true, true, false},
		Records: events,
	}
}

// SceneReport lists the scene table with each scene's progress interval and
// start scroll position
func SceneReport(title string, table *scene.Table, geom geometry.Geometry) Report {
	records := make([]SceneRecord, 0, table.Len())
	rows := make([][]string, 0, table.Len())

	for i, info := range table.Scenes() {
		start, _ := table.StartTime(info.Name)
		startP, endP, _ := table.Interval(info.Name)
		rec := SceneRecord{
			Index:         i,
			Name:          info.Name,
			Duration:      info.Duration,
			Start:         start,
			StartProgress: startP,
			EndProgress:   endP,
			ScrollY:       geom.ScrollPositionFromProgress(startP),
		}
		records = append(records, rec)
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.Name,
			formatFloat(rec.Duration, 2),
			formatFloat(rec.Start, 2),
			formatPercent(rec.StartProgress),
			formatPercent(rec.EndProgress),
			formatFloat(rec.ScrollY, 0),
		})
	}

	return Report{
		Title:   title,
		Headers: []string{"#", "Scene", "Duration", "Start", "Start %", "End %", "Scroll Y"},
		Rows:    rows,
		Numeric: []bool{true, false, true, true, true, true, true},
		Records: records,
	}
}

// SnapReport lists resolved snap points
func SnapReport(title string, points []snap.Point) Report {
	records := make([]SnapRecord, 0, len(points))
	rows := make([][]string, 0, len(points))

	for _, p := range points {
		rec := SnapRecord{
			Scene:    p.Scene,
			Time:     p.Time.String(),
			Progress: p.Progress,
			ScrollY:  p.ScrollY,
			Before:   p.Tolerance.Before,
			After:    p.Tolerance.After,
		}
		records = append(records, rec)
		rows = append(rows, []string{
			rec.Scene,
			rec.Time,
			formatPercent(rec.Progress),
			formatFloat(rec.ScrollY, 0),
			formatFloat(rec.Before, 0),
			formatFloat(rec.After, 0),
		})
	}

	return Report{
		Title:   title,
		Headers: []string{"Scene", "Time", "Progress", "Scroll Y", "Before", "After"},
		Rows:    rows,
		Numeric: []bool{false, true, true, true, true, true},
		Records: records,
	}
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}

func formatOffset(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}
