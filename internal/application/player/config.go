package player

import (
	"errors"
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/presentation/layout"
)

// ErrNoScenario is returned when no scenario file is configured
var ErrNoScenario = errors.New("no scenario file given")

// PlayConfig contains configuration for the play command
type PlayConfig struct {
	ScenarioPath string

	// Hot reload the scenario file
	Watch          bool
	ReloadDebounce time.Duration

	// Force the smooth scroll backend on
	Smooth bool

	// Display settings
	RefreshRate float64 // status redraws per second
	ScrollStep  float64 // pixels per arrow key
	RowHeight   float64 // pixels per terminal row

	// Host events kept in memory
	TraceLimit int
}

// Validate checks if the configuration is valid
func (c *PlayConfig) Validate() error {
	if c.ScenarioPath == "" {
		return ErrNoScenario
	}
	if c.ReloadDebounce <= 0 {
		c.ReloadDebounce = 100 * time.Millisecond
	}
	if c.RefreshRate <= 0 {
		c.RefreshRate = 10
	}
	if c.ScrollStep <= 0 {
		c.ScrollStep = 40
	}
	if c.RowHeight <= 0 {
		c.RowHeight = layout.DefaultRowHeight
	}
	if c.TraceLimit <= 0 {
		c.TraceLimit = 1000
	}
	return nil
}
