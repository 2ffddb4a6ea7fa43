// Package player runs a scenario interactively: keys scroll the simulated
// window, the terminal size becomes the viewport and the scenario file can be
// hot reloaded.
package player

import (
	"fmt"

	"github.com/penwyp/go-sticky-scroll/internal/application/sticky"
	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
	"github.com/penwyp/go-sticky-scroll/internal/host/sim"
	"github.com/penwyp/go-sticky-scroll/internal/presentation/display"
	"github.com/penwyp/go-sticky-scroll/internal/presentation/interaction"
	"github.com/penwyp/go-sticky-scroll/internal/presentation/layout"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// pageFraction is the share of the viewport one page key scrolls
const pageFraction = 0.9

// Player owns the simulated host of one scenario. Apart from the state
// manager, every method must run on the scheduler.
type Player struct {
	config *PlayConfig
	host   *sim.Host
	state  *StateManager
	sched  runloop.Scheduler

	reload runloop.Timer
}

// NewPlayer builds the host for sc on sched, enables the controller and
// turns snapping on when the options configure snap points. The scenario
// script is not run.
func NewPlayer(cfg *PlayConfig, sc *sim.Scenario, sched runloop.Scheduler) (*Player, error) {
	host, err := sim.NewHost(sc, sched, sim.HostConfig{
		Options:    configDefaults(cfg),
		TraceLimit: cfg.TraceLimit,
	})
	if err != nil {
		return nil, err
	}

	p := &Player{
		config: cfg,
		host:   host,
		state:  NewStateManager(),
		sched:  sched,
	}
	p.state.UpdateInteractionState(func(s *InteractionState) {
		s.Watching = cfg.Watch
	})

	host.Controller.Enable(sc.Layout.WrapperHeight)
	if len(host.Options.SnapPoints) > 0 {
		p.setSnapping(true)
	}

	return p, nil
}

// Host returns the simulated host
func (p *Player) Host() *sim.Host {
	return p.host
}

// State returns the interaction state manager
func (p *Player) State() *StateManager {
	return p.state
}

// Handle performs a key action. It reports whether the player should quit.
func (p *Player) Handle(a interaction.Action) bool {
	win := p.host.Win
	ctrl := p.host.Controller

	switch a.Cmd {
	case interaction.CmdQuit:
		return true
	case interaction.CmdScrollUp:
		win.ScrollBy(-p.config.ScrollStep)
	case interaction.CmdScrollDown:
		win.ScrollBy(p.config.ScrollStep)
	case interaction.CmdPageUp:
		win.ScrollBy(-win.Layout().Viewport * pageFraction)
	case interaction.CmdPageDown:
		win.ScrollBy(win.Layout().Viewport * pageFraction)
	case interaction.CmdTop:
		win.SetScrollY(0)
	case interaction.CmdBottom:
		win.SetScrollY(win.MaxScroll())
	case interaction.CmdScene:
		info, ok := ctrl.Table().At(a.Arg)
		if !ok {
			p.state.SetMessage(fmt.Sprintf("no scene %d", a.Arg+1))
			return false
		}
		ctrl.AnimateToScene(info.Name, sticky.Animation{})
		p.state.SetMessage("scrolling to " + info.Name)
	case interaction.CmdFocus:
		name := ctrl.Snapshot().Scene
		if name == "" {
			p.state.SetMessage("no scene to focus")
			return false
		}
		ctrl.SetFocus(name, true)
		p.state.SetMessage("focused " + name)
	case interaction.CmdClearFocus:
		ctrl.ClearFocus(true)
		p.state.SetMessage("focus cleared")
	case interaction.CmdToggleSnap:
		p.setSnapping(!p.state.GetInteractionState().Snapping)
	case interaction.CmdToggleHelp:
		p.state.UpdateInteractionState(func(s *InteractionState) {
			s.ShowHelp = !s.ShowHelp
		})
	}
	return false
}

func (p *Player) setSnapping(on bool) {
	ctrl := p.host.Controller
	if !on {
		ctrl.DisableSnapping()
		p.state.UpdateInteractionState(func(s *InteractionState) {
			s.Snapping = false
			s.Message = "snapping off"
		})
		return
	}

	if len(p.host.Options.SnapPoints) == 0 {
		p.state.SetMessage("no snap points configured")
		return
	}
	ctrl.EnableSnapping(sticky.SnapSettings{})
	p.state.UpdateInteractionState(func(s *InteractionState) {
		s.Snapping = true
		s.Message = "snapping on"
	})
}

// Resize maps the terminal size onto the viewport
func (p *Player) Resize(size *layout.Sizer) {
	p.host.Win.SetViewportHeight(size.ViewportHeight(p.config.RowHeight))
}

// ScheduleReload reloads the scenario file once no further request arrives
// within the debounce interval. Editors often write a file in several steps.
func (p *Player) ScheduleReload() {
	if p.reload != nil {
		p.reload.Stop()
	}
	p.reload = p.sched.AfterFunc(p.config.ReloadDebounce, func() {
		p.reload = nil
		if err := p.Reload(); err != nil {
			util.LogWarnf("Reload of %s failed: %v", p.config.ScenarioPath, err)
			p.state.SetMessage("reload failed: " + err.Error())
		}
	})
}

// Reload reads the scenario file again and re-runs setup. Snap points are
// reconfigured against the new scene table.
func (p *Player) Reload() error {
	sc, err := sim.ReadScenario(p.config.ScenarioPath)
	if err != nil {
		return err
	}

	p.host.Reload(sc)
	if p.state.GetInteractionState().Snapping {
		p.host.Controller.EnableSnapping(sticky.SnapSettings{})
	}

	p.state.UpdateInteractionState(func(s *InteractionState) {
		s.Reloads++
		s.Message = fmt.Sprintf("reloaded %s (%d scenes)", sc.Name, p.host.Controller.Table().Len())
	})
	util.LogInfof("Reloaded scenario %s", p.config.ScenarioPath)
	return nil
}

// Status collects what the status view shows
func (p *Player) Status() display.Status {
	st := p.state.GetInteractionState()
	ctrl := p.host.Controller

	s := display.Status{
		Scenario: p.host.Scenario.Name,
		Snapshot: ctrl.Snapshot(),
		Viewport: p.host.Win.Layout().Viewport,
		MaxY:     p.host.Win.MaxScroll(),
		Snapping: st.Snapping,
		Watching: st.Watching,
		Reloads:  st.Reloads,
		Message:  st.Message,
		ShowHelp: st.ShowHelp,
		Help:     interaction.HelpLines(),
	}

	table := ctrl.Table()
	for _, info := range table.Scenes() {
		start, end, err := table.Interval(info.Name)
		if err != nil {
			continue
		}
		s.Scenes = append(s.Scenes, display.SceneBar{Name: info.Name, Start: start, End: end})
	}
	return s
}
