// Package geometry converts between scroll pixels and normalized progress and
// samples progress from live layout boxes.
package geometry

import "math"

// Geometry is the wrapper layout that maps progress onto scroll positions
type Geometry struct {
	WrapperHeight  float64 // wrapper height without padding
	PaddingTop     float64
	ViewportHeight float64
}

// ScrollableRange is the number of pixels over which progress goes from 0 to 1
func (g Geometry) ScrollableRange() float64 {
	return g.WrapperHeight - g.ViewportHeight
}

// ScrollPositionFromProgress returns the scroll position for progress, which is
// clamped to [0, 1] first. Positions are rounded up to whole pixels.
func (g Geometry) ScrollPositionFromProgress(progress float64) float64 {
	return math.Ceil(clamp01(progress)*g.ScrollableRange() + g.PaddingTop)
}

// ProgressFromScrollPosition is the inverse of ScrollPositionFromProgress,
// clamped to [0, 1]. A non-positive range yields 0.
func (g Geometry) ProgressFromScrollPosition(y float64) float64 {
	r := g.ScrollableRange()
	if r <= 0 {
		return 0
	}
	return clamp01((y - g.PaddingTop) / r)
}

// ApplyOffset shifts a scroll position by offset
func (g Geometry) ApplyOffset(position float64, offset Offset) float64 {
	return position + offset.Pixels(g)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
