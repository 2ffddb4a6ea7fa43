package player

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
	"github.com/penwyp/go-sticky-scroll/internal/data/watcher"
	"github.com/penwyp/go-sticky-scroll/internal/host/sim"
	"github.com/penwyp/go-sticky-scroll/internal/presentation/display"
	"github.com/penwyp/go-sticky-scroll/internal/presentation/interaction"
	"github.com/penwyp/go-sticky-scroll/internal/presentation/layout"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// KeySource delivers key presses
type KeySource interface {
	Events() <-chan interaction.KeyEvent
	Close() error
}

// Orchestrator coordinates the run loop, keyboard, file watcher and terminal
// for the play command
type Orchestrator struct {
	config *PlayConfig
	loop   *runloop.Loop
	player *Player

	// UI components
	display  *display.TerminalDisplay
	keyboard KeySource
	fd       int

	// Monitoring
	watcher *watcher.FileWatcher
}

// NewOrchestrator reads the scenario and builds the player on a real-time loop
func NewOrchestrator(cfg *PlayConfig) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sc, err := sim.ReadScenario(cfg.ScenarioPath)
	if err != nil {
		return nil, err
	}
	opts, err := sc.ResolveOptions(configDefaults(cfg))
	if err != nil {
		return nil, err
	}

	loop := runloop.NewLoop(opts.FrameRate)
	p, err := NewPlayer(cfg, sc, loop)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		config:  cfg,
		loop:    loop,
		player:  p,
		display: display.NewTerminalDisplay(os.Stdout),
		fd:      int(os.Stdout.Fd()),
	}, nil
}

// Run starts the orchestrator and blocks until the user quits or ctx ends
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting player", util.F("scenario", o.config.ScenarioPath))

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard
	defer o.keyboard.Close()

	if o.config.Watch {
		w, err := watcher.NewFileWatcher(o.config.ScenarioPath)
		if err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		o.watcher = w
		defer o.watcher.Close()
	}

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return o.loop.Run(ctx)
	})

	o.resize()
	o.loop.Post(o.scheduleRender)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-o.keyboard.Events():
				action := interaction.Resolve(ev)
				if action.Cmd == interaction.CmdQuit {
					util.LogInfo("Shutting down player...")
					cancel()
					return nil
				}
				o.loop.Post(func() {
					o.player.Handle(action)
					o.render()
				})
			}
		}
	})

	if o.watcher != nil {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-o.watcher.Events():
					if !ok {
						return nil
					}
					util.LogDebugf("Scenario changed: %s (%s)", ev.Path, ev.Operation)
					o.loop.Post(o.player.ScheduleReload)
				}
			}
		})
	}

	g.Go(func() error {
		resized, stop := notifyResize()
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-resized:
				o.resize()
			}
		}
	})

	return g.Wait()
}

// resize reads the terminal size and applies it on the loop
func (o *Orchestrator) resize() {
	size := layout.Detect(o.fd)
	o.loop.Post(func() {
		o.display.SetWidth(size.Width)
		o.player.Resize(size)
		o.render()
	})
}

func (o *Orchestrator) scheduleRender() {
	o.render()
	interval := time.Duration(float64(time.Second) / o.config.RefreshRate)
	o.loop.AfterFunc(interval, o.scheduleRender)
}

func (o *Orchestrator) render() {
	if err := o.display.Render(o.player.Status()); err != nil {
		util.LogDebugf("Render failed: %v", err)
	}
}
