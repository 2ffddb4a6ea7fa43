// Package snap pulls the scroll position toward configured snap points once
// scrolling has settled.
package snap

import (
	"math"
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/core/easing"
	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
	"github.com/penwyp/go-sticky-scroll/internal/scroll"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// State is the engine state
type State int

const (
	Idle State = iota
	Armed
	Snapping
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Snapping:
		return "snapping"
	default:
		return "idle"
	}
}

// Config is an active snapping configuration
type Config struct {
	Points   []Point
	Delay    time.Duration
	Duration scroll.Duration
	Easing   easing.Kind
}

// Animator performs the snap scroll. A scroll it reports as in flight has
// priority over snapping.
type Animator interface {
	AnimateToProgress(progress float64, dur scroll.Duration, kind easing.Kind)
	Animating() bool
}

// Filter reports whether a point may currently be snapped to
type Filter func(Point) bool

// minSnapDistance is the distance below which the position counts as already snapped
const minSnapDistance = 0.5

// Engine is a debounced snap detector. Every scroll sample restarts the delay;
// when it elapses without further samples the nearest point within tolerance
// is scrolled to.
type Engine struct {
	sched    runloop.Scheduler
	animator Animator

	cfg      *Config
	filter   Filter
	state    State
	timer    runloop.Timer
	pendingY float64
	deadline time.Time

	lastScrollY float64
	velocity    float64
}

// NewEngine creates a disabled engine
func NewEngine(sched runloop.Scheduler, animator Animator) *Engine {
	return &Engine{
		sched:    sched,
		animator: animator,
	}
}

// SetFilter restricts snapping to the points f accepts. A nil filter accepts
// every point. The filter is consulted each time a snap is picked.
func (e *Engine) SetFilter(f Filter) {
	e.filter = f
}

// Configure enables snapping with cfg, replacing any previous configuration.
// A configuration without points is rejected and leaves the engine unchanged.
func (e *Engine) Configure(cfg Config) bool {
	if len(cfg.Points) == 0 {
		util.LogWarn("Snapping requires at least one snap point; ignoring configuration")
		return false
	}

	e.cancel()
	points := make([]Point, len(cfg.Points))
	copy(points, cfg.Points)
	cfg.Points = points
	e.cfg = &cfg
	e.state = Idle

	util.LogDebugf("Snapping enabled with %d points (delay %s, duration %s, easing %s)",
		len(points), cfg.Delay, cfg.Duration, cfg.Easing)
	return true
}

// Disable turns snapping off, cancelling a pending snap. The configuration is
// discarded; re-enabling requires Configure.
func (e *Engine) Disable() {
	e.cancel()
	e.cfg = nil
	e.state = Idle
}

// Cancel drops a pending snap without touching the configuration
func (e *Engine) Cancel() {
	e.cancel()
}

// Enabled reports whether a configuration is active
func (e *Engine) Enabled() bool {
	return e.cfg != nil
}

// Config returns a copy of the active configuration
func (e *Engine) Config() (Config, bool) {
	if e.cfg == nil {
		return Config{}, false
	}
	cfg := *e.cfg
	cfg.Points = make([]Point, len(e.cfg.Points))
	copy(cfg.Points, e.cfg.Points)
	return cfg, true
}

// State returns the current engine state
func (e *Engine) State() State {
	return e.state
}

// Deadline returns when an armed snap fires; zero unless Armed
func (e *Engine) Deadline() time.Time {
	if e.state != Armed {
		return time.Time{}
	}
	return e.deadline
}

// Velocity is the absolute distance between the last two samples
func (e *Engine) Velocity() float64 {
	return e.velocity
}

// Sample feeds the current scroll position to the engine
func (e *Engine) Sample(y float64) {
	e.velocity = math.Abs(y - e.lastScrollY)
	e.lastScrollY = y

	if e.cfg == nil {
		return
	}
	if e.state == Snapping && e.animator.Animating() {
		return
	}

	e.arm(y)
}

// Pick returns the nearest point within tolerance of y and its signed distance
// (y minus the point position). Equal distances resolve to the point listed
// first.
func (e *Engine) Pick(y float64) (Point, float64, bool) {
	if e.cfg == nil {
		return Point{}, 0, false
	}
	return pick(e.cfg.Points, y, e.filter)
}

func pick(points []Point, y float64, allow Filter) (Point, float64, bool) {
	var (
		best     Point
		bestDist float64
		found    bool
	)

	for _, p := range points {
		if allow != nil && !allow(p) {
			continue
		}
		distance := y - p.ScrollY
		tolerance := p.Tolerance.Before
		if distance > 0 {
			tolerance = p.Tolerance.After
		}
		if math.Abs(distance) > tolerance {
			continue
		}
		if !found || math.Abs(distance) < math.Abs(bestDist) {
			best, bestDist, found = p, distance, true
		}
	}

	return best, bestDist, found
}

func (e *Engine) arm(y float64) {
	e.cancel()
	e.state = Armed
	e.pendingY = y
	e.deadline = e.sched.Now().Add(e.cfg.Delay)
	e.timer = e.sched.AfterFunc(e.cfg.Delay, e.fire)
}

func (e *Engine) fire() {
	e.timer = nil
	if e.cfg == nil || e.state != Armed {
		return
	}

	if e.animator.Animating() {
		e.arm(e.pendingY)
		return
	}

	point, distance, ok := pick(e.cfg.Points, e.pendingY, e.filter)
	if !ok || math.Abs(distance) < minSnapDistance {
		e.state = Idle
		return
	}

	util.LogDebugf("Snapping to %s@%s (distance %.0fpx, velocity %.0fpx)",
		point.Scene, point.Time, distance, e.velocity)
	e.state = Snapping
	e.animator.AnimateToProgress(point.Progress, e.cfg.Duration, e.cfg.Easing)
	if !e.animator.Animating() {
		e.state = Idle
	}
}

func (e *Engine) cancel() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.state == Armed {
		e.state = Idle
	}
}
