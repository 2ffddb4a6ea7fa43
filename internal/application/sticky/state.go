package sticky

import "github.com/penwyp/go-sticky-scroll/internal/snap"

// Snapshot is a point-in-time view of the controller for display and tracing
type Snapshot struct {
	Ready     bool
	Enabled   bool
	ScrollY   float64
	Progress  float64
	Scene     string // scene applied by the last frame
	Time      float64
	Focus     string
	Snap      snap.State
	Animating bool
}

// Snapshot captures the current state
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Ready:     c.ready,
		Enabled:   c.enabled,
		ScrollY:   c.driver.Position(),
		Progress:  c.Progress(),
		Focus:     c.focus,
		Snap:      c.snap.State(),
		Animating: c.driver.Animating(),
	}
	if c.hasApply {
		s.Scene = c.applied.Name
		s.Time = c.applied.Time
	}
	return s
}
