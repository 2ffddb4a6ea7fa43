package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset   = "\033[0m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"

	ClearScreen     = "\033[2J"
	ClearLine       = "\033[2K"
	MoveCursorHome  = "\033[H"
	HideCursor      = "\033[?25l"
	ShowCursor      = "\033[?25h"
	AlternateScreen = "\033[?1049h"
	NormalScreen    = "\033[?1049l"
)

// GetDisplayWidth calculates the actual display width of a string
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads s with spaces to the given display width
func PadString(s string, width int, leftAlign bool) string {
	actual := runewidth.StringWidth(s)
	if actual >= width {
		return s
	}
	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// TruncateString cuts s to at most width display cells, marking the cut with an ellipsis
func TruncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// CreateProgressBar renders fraction (0..1) as a bar of the given cell width
func CreateProgressBar(fraction float64, width int) string {
	if width < 2 {
		width = 2
	}
	barWidth := width - 2
	filled := int(fraction * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// FormatHighlight formats an inline value (Cyan)
func FormatHighlight(text string) string {
	return ColorCyan + text + ColorReset
}

// MoveCursor returns ANSI sequence to move cursor to specific position
func MoveCursor(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}
