package sticky

import (
	"github.com/penwyp/go-sticky-scroll/internal/core/scene"
	"github.com/penwyp/go-sticky-scroll/internal/snap"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// SetFocus restricts the resolved scene to name. With resample set the current
// position is re-evaluated immediately. Unknown scenes are ignored with a
// warning.
func (c *Controller) SetFocus(name string, resample bool) {
	c.whenReady("focus "+name, func() {
		if _, err := c.table.Lookup(name); err != nil {
			util.LogWarnf("Cannot focus scene %q: %v", name, err)
			return
		}
		c.focus = name
		util.LogDebugf("Focused scene %q", name)
		if resample {
			c.OnScroll()
		}
	})
}

// ClearFocus removes the scene focus
func (c *Controller) ClearFocus(resample bool) {
	c.whenReady("clear focus", func() {
		c.focus = ""
		if resample {
			c.OnScroll()
		}
	})
}

// Focus returns the focused scene, empty when none
func (c *Controller) Focus() string {
	return c.focus
}

// focusBound returns the edge of the focused scene's progress interval
// nearest to progress, and whether progress lies outside the interval
func (c *Controller) focusBound(progress float64) (float64, bool) {
	start, end, err := c.table.Interval(c.focus)
	if err != nil {
		return 0, false
	}
	switch {
	case progress < start:
		return start, true
	case progress > end:
		return end, true
	default:
		return progress, false
	}
}

// clampToFocus pins pos to the focused scene: positions in earlier scenes map
// to its start, later ones to its end
func (c *Controller) clampToFocus(pos scene.Position) scene.Position {
	if c.focus == "" || pos.Name == c.focus {
		return pos
	}

	i, ok := c.table.Index(c.focus)
	if !ok {
		return pos
	}
	info, _ := c.table.At(i)

	clamped := scene.Position{Index: i, Name: info.Name}
	if pos.Index > i {
		clamped.Time = info.Duration
	}
	return clamped
}

// snapAllowed keeps snap targets inside the focused scene while the scroll
// position is held to its boundaries
func (c *Controller) snapAllowed(p snap.Point) bool {
	if c.focus == "" || !c.options.SnapToBoundaries {
		return true
	}
	start, end, err := c.table.Interval(c.focus)
	if err != nil {
		return true
	}
	return p.Progress >= start && p.Progress <= end
}
