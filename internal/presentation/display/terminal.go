// Package display draws the live status view of the interactive player.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-sticky-scroll/internal/application/sticky"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

const (
	defaultWidth = 80
	barWidth     = 24
)

// SceneBar is one row of the scene overview
type SceneBar struct {
	Name  string
	Start float64 // progress at scene start
	End   float64 // progress at scene end
}

// Status is everything the status view shows
type Status struct {
	Scenario string
	Snapshot sticky.Snapshot
	Scenes   []SceneBar
	Viewport float64
	MaxY     float64

	Snapping bool
	Watching bool
	Reloads  int

	Message  string
	ShowHelp bool
	Help     []string
}

type TerminalDisplay struct {
	out               io.Writer
	width             int
	inAlternateScreen bool
	isFirstRender     bool
	previousScreen    []string
}

func NewTerminalDisplay(out io.Writer) *TerminalDisplay {
	return &TerminalDisplay{
		out:           out,
		width:         defaultWidth,
		isFirstRender: true,
	}
}

// SetWidth sets the number of terminal columns lines are truncated to
func (td *TerminalDisplay) SetWidth(width int) {
	if width <= 0 {
		width = defaultWidth
	}
	if width != td.width {
		td.width = width
		td.isFirstRender = true
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.AlternateScreen+util.ClearScreen+util.MoveCursorHome+util.HideCursor)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.ClearScreen+util.MoveCursorHome+util.ShowCursor+util.NormalScreen)
	td.inAlternateScreen = false
}

// Render draws s. After the first frame only changed lines are rewritten.
func (td *TerminalDisplay) Render(s Status) error {
	lines := td.Lines(s)

	var b strings.Builder
	if td.isFirstRender || len(lines) != len(td.previousScreen) {
		b.WriteString(util.ClearScreen + util.MoveCursorHome)
		for i, line := range lines {
			b.WriteString(line)
			if i < len(lines)-1 {
				b.WriteString("\r\n")
			}
		}
		td.isFirstRender = false
	} else {
		for i, line := range lines {
			if line == td.previousScreen[i] {
				continue
			}
			b.WriteString(util.MoveCursor(i+1, 1))
			b.WriteString(util.ClearLine)
			b.WriteString(line)
		}
	}
	td.previousScreen = lines

	if b.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(td.out, b.String())
	return err
}

// Lines lays out the status view, one entry per terminal row
func (td *TerminalDisplay) Lines(s Status) []string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, util.TruncateString(fmt.Sprintf(format, args...), td.width))
	}

	title := "Sticky Scroll"
	if s.Scenario != "" {
		title += " - " + s.Scenario
	}
	lines = append(lines, util.FormatHeaderTitle(util.TruncateString(title, td.width)))
	lines = append(lines, strings.Repeat("═", min(td.width, 60)))

	if s.ShowHelp {
		lines = append(lines, "", "Keys:")
		for _, h := range s.Help {
			add("  %s", h)
		}
		lines = append(lines, "", "Press 'h' to return")
		return lines
	}

	snap := s.Snapshot
	if !snap.Ready {
		add("Waiting for the document to finish setup...")
		return lines
	}

	add("Scroll    %6.0f / %.0f px   viewport %.0f px", snap.ScrollY, s.MaxY, s.Viewport)
	add("Progress  %s %6.2f%%", util.CreateProgressBar(snap.Progress, barWidth), snap.Progress*100)
	scene := snap.Scene
	if scene == "" {
		scene = "-"
	}
	add("Scene     %s @ %.3fs", scene, snap.Time)

	focus := snap.Focus
	if focus == "" {
		focus = "off"
	}
	snapping := "off"
	if s.Snapping {
		snapping = snap.Snap.String()
	}
	flags := ""
	if snap.Animating {
		flags += "  animating"
	}
	if !snap.Enabled {
		flags += "  disabled"
	}
	add("Focus     %s   Snap %s%s", focus, snapping, flags)
	lines = append(lines, "")

	nameWidth := 0
	for _, sc := range s.Scenes {
		nameWidth = max(nameWidth, util.GetDisplayWidth(sc.Name))
	}
	for _, sc := range s.Scenes {
		marker := "  "
		if sc.Name == snap.Scene {
			marker = "▶ "
		}
		add("%s%s %s %6.2f%% - %6.2f%%",
			marker,
			util.PadString(sc.Name, nameWidth, true),
			util.CreateProgressBar(sceneFill(snap.Progress, sc), barWidth/2),
			sc.Start*100, sc.End*100)
	}
	lines = append(lines, "")

	footer := "h help  q quit"
	if s.Watching {
		footer += fmt.Sprintf("  watching (%d reloads)", s.Reloads)
	}
	add("%s", footer)
	if s.Message != "" {
		add("%s", s.Message)
	}
	return lines
}

// sceneFill is how much of the scene lies behind progress
func sceneFill(progress float64, sc SceneBar) float64 {
	span := sc.End - sc.Start
	if span <= 0 {
		if progress >= sc.End {
			return 1
		}
		return 0
	}
	return max(0, min(1, (progress-sc.Start)/span))
}
