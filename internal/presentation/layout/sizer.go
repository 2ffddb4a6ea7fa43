// Package layout maps the terminal size onto the simulated viewport.
package layout

import (
	"golang.org/x/term"

	"github.com/penwyp/go-sticky-scroll/internal/util"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24

	// DefaultRowHeight is the number of simulated pixels one terminal row stands for
	DefaultRowHeight = 20.0
)

// Sizer is a terminal size in cells
type Sizer struct {
	Width  int
	Height int
}

// NewSizer builds a sizer, substituting fallbacks for non-positive dimensions
func NewSizer(width, height int) *Sizer {
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}
	return &Sizer{Width: width, Height: height}
}

// Detect reads the size of the terminal behind fd. When fd is not a terminal
// the fallback size is returned.
func Detect(fd int) *Sizer {
	width, height, err := term.GetSize(fd)
	if err != nil {
		util.LogDebugf("Terminal size unavailable, using %dx%d: %v", fallbackWidth, fallbackHeight, err)
		return NewSizer(0, 0)
	}
	return NewSizer(width, height)
}

// ViewportHeight is the pixel viewport the terminal rows stand for
func (s *Sizer) ViewportHeight(rowHeight float64) float64 {
	if rowHeight <= 0 {
		rowHeight = DefaultRowHeight
	}
	return float64(s.Height) * rowHeight
}
