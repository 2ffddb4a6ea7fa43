package sticky

import (
	"fmt"

	"github.com/penwyp/go-sticky-scroll/internal/core/easing"
	"github.com/penwyp/go-sticky-scroll/internal/core/geometry"
	"github.com/penwyp/go-sticky-scroll/internal/core/scene"
	"github.com/penwyp/go-sticky-scroll/internal/scroll"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// Animation parameterizes a programmatic scroll
type Animation struct {
	Duration scroll.Duration
	Easing   easing.Kind
	Offset   geometry.Offset
}

// Progress samples the current progress; 0 before setup
func (c *Controller) Progress() float64 {
	if !c.ready {
		return 0
	}
	return geometry.SampleProgress(c.win.StickyBox(), c.win.WrapperBox())
}

// ScrollPositionFromProgress converts progress to a scroll position; 0 before setup
func (c *Controller) ScrollPositionFromProgress(progress float64) float64 {
	if !c.ready {
		return 0
	}
	return c.win.Geometry().ScrollPositionFromProgress(progress)
}

// ProgressFromScrollPosition converts a scroll position to progress; 0 before setup
func (c *Controller) ProgressFromScrollPosition(y float64) float64 {
	if !c.ready {
		return 0
	}
	return c.win.Geometry().ProgressFromScrollPosition(y)
}

// ProgressFromSceneTime converts a time in the named scene to progress.
// Unknown scenes, an empty table and calls before setup all yield 0; use
// LookupProgress to tell these apart.
func (c *Controller) ProgressFromSceneTime(name string, timeInScene float64) float64 {
	if !c.ready {
		return 0
	}
	return c.table.ProgressFromSceneTime(name, timeInScene)
}

// LookupProgress is ProgressFromSceneTime with explicit errors
func (c *Controller) LookupProgress(name string, timeInScene float64) (float64, error) {
	if !c.ready {
		return 0, ErrNotReady
	}
	return c.table.ProgressAt(name, timeInScene)
}

// SceneAndTimeFromProgress resolves progress to a scene and a time inside it.
// The boolean is false before setup or for a document without scenes.
func (c *Controller) SceneAndTimeFromProgress(progress float64) (scene.Position, bool) {
	if !c.ready {
		return scene.Position{}, false
	}
	return c.table.SceneAndTimeFromProgress(progress)
}

// AnimateToProgress scrolls to progress. It implements snap.Animator.
func (c *Controller) AnimateToProgress(progress float64, dur scroll.Duration, kind easing.Kind) {
	c.AnimateTo(progress, Animation{Duration: dur, Easing: kind})
}

// Animating reports whether a programmatic scroll is in flight
func (c *Controller) Animating() bool {
	return c.driver.Animating()
}

// AnimateTo scrolls to progress, shifted by the animation offset
func (c *Controller) AnimateTo(progress float64, a Animation) {
	c.whenReady(fmt.Sprintf("animation to %.4f", progress), func() {
		if a.Easing == "" {
			a.Easing = easing.InOut
		}
		g := c.win.Geometry()
		target := g.ApplyOffset(g.ScrollPositionFromProgress(progress), a.Offset)
		c.driver.AnimateScrollTo(target, a.Duration, a.Easing)
	})
}

// AnimateToScene scrolls to the start of the named scene
func (c *Controller) AnimateToScene(name string, a Animation) {
	c.AnimateToSceneTime(name, 0, a)
}

// AnimateToSceneTime scrolls to a time inside the named scene. Unknown scenes
// are ignored with a warning.
func (c *Controller) AnimateToSceneTime(name string, timeInScene float64, a Animation) {
	c.whenReady(fmt.Sprintf("animation to %s@%.2fs", name, timeInScene), func() {
		progress, err := c.table.ProgressAt(name, timeInScene)
		if err != nil {
			util.LogWarnf("Cannot animate to scene %q: %v", name, err)
			return
		}
		c.AnimateTo(progress, a)
	})
}
