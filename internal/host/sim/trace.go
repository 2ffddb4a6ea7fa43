// Package sim is an in-memory host for the sticky scroll controller: a scene
// document whose timeline mutations are recorded, a scrollable window with a
// sticky container, and scripted scenarios loaded from YAML.
package sim

import (
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
)

// Event kinds recorded in a trace
const (
	KindAction   = "action"
	KindScroll   = "scroll"
	KindShow     = "show"
	KindPause    = "pause"
	KindSeek     = "seek"
	KindBehavior = "behavior"
)

// Event is one recorded host interaction
type Event struct {
	At      time.Duration `json:"at"`
	Kind    string        `json:"kind"`
	Scene   string        `json:"scene,omitempty"`
	Time    float64       `json:"time"`
	ScrollY float64       `json:"scrollY"`
	Detail  string        `json:"detail,omitempty"`
}

// Trace collects events stamped relative to the scheduler time at creation
type Trace struct {
	clock  runloop.Scheduler
	start  time.Time
	events []Event
	limit  int
}

// NewTrace creates a trace on clock. A positive limit keeps only the most
// recent events.
func NewTrace(clock runloop.Scheduler, limit int) *Trace {
	return &Trace{clock: clock, start: clock.Now(), limit: limit}
}

// Record appends e, stamping its time
func (t *Trace) Record(e Event) {
	if t == nil {
		return
	}
	e.At = t.clock.Now().Sub(t.start)
	t.events = append(t.events, e)
	if t.limit > 0 && len(t.events) > t.limit {
		t.events = t.events[len(t.events)-t.limit:]
	}
}

// Events returns a copy of the recorded events
func (t *Trace) Events() []Event {
	if t == nil {
		return nil
	}
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Filter returns the events whose kind is listed; no kinds returns everything
func (t *Trace) Filter(kinds ...string) []Event {
	if len(kinds) == 0 {
		return t.Events()
	}
	keep := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		keep[k] = true
	}

	var out []Event
	for _, e := range t.Events() {
		if keep[e.Kind] {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of recorded events
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.events)
}
