package sticky

import (
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/core/easing"
	"github.com/penwyp/go-sticky-scroll/internal/scroll"
	"github.com/penwyp/go-sticky-scroll/internal/snap"
)

// SnapSettings overrides the snap defaults of the controller options. Zero
// fields keep the option values.
type SnapSettings struct {
	Points    []snap.PointSpec
	Tolerance *snap.Tolerance
	Delay     time.Duration
	Duration  *scroll.Duration
	Easing    easing.Kind
}

// EnableSnapping resolves the snap points against the current layout and
// scene table and turns snapping on, replacing any active configuration.
// Without points snapping stays off and a warning is logged. Points go stale
// when the layout or scene durations change; call EnableSnapping again then.
func (c *Controller) EnableSnapping(s SnapSettings) {
	cfg := c.options
	points := s.Points
	if points == nil {
		points = cfg.SnapPoints
	}
	tolerance := cfg.SnapTolerance
	if s.Tolerance != nil {
		tolerance = *s.Tolerance
	}
	delay := cfg.SnapDelay()
	if s.Delay > 0 {
		delay = s.Delay
	}
	duration := cfg.SnapDuration
	if s.Duration != nil {
		duration = *s.Duration
	}
	kind := cfg.SnapEasing
	if s.Easing != "" {
		kind = s.Easing
	}

	c.whenReady("snapping", func() {
		c.snap.Configure(snap.Config{
			Points:   snap.ResolvePoints(points, c.table, c.win.Geometry(), tolerance),
			Delay:    delay,
			Duration: duration,
			Easing:   kind,
		})
	})
}

// DisableSnapping turns snapping off, cancelling a pending snap and stopping a
// snap animation in flight
func (c *Controller) DisableSnapping() {
	if c.snap.State() == snap.Snapping && c.driver.Animating() {
		c.driver.Stop()
	}
	c.snap.Disable()
}

// SnapEngine exposes the snap engine
func (c *Controller) SnapEngine() *snap.Engine {
	return c.snap
}
