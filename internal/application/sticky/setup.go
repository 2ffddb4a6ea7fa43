package sticky

import (
	"errors"

	"github.com/penwyp/go-sticky-scroll/internal/core/scene"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// ErrNotReady is returned by lookups issued before Setup has completed
var ErrNotReady = errors.New("sticky scroll not ready")

// Setup captures the scene table by showing every scene once to read its
// duration, then restores the scene that was current. Scenes whose name starts
// with the ignore marker are skipped. Operations deferred while the controller
// was not ready run once setup completes.
//
// Setup returns true without doing anything when called while a setup pass is
// already running, e.g. from a scene-load hook fired by the pass itself.
func (c *Controller) Setup() bool {
	if c.setupRunning {
		return true
	}
	c.setupRunning = true

	original := c.doc.CurrentSceneName()
	marker := c.options.IgnoreSceneSymbol

	var infos []scene.Info
	for _, name := range c.doc.SceneNames() {
		if scene.IsIgnored(name, marker) {
			util.LogDebugf("Ignoring scene %q", name)
			continue
		}

		c.doc.ShowScene(name)
		infos = append(infos, scene.Info{
			Name:     name,
			Duration: c.doc.TimelineDuration(name),
			Layouts:  c.doc.SceneLayouts(name),
		})
	}

	if original != "" && c.doc.CurrentSceneName() != original {
		c.doc.ShowScene(original)
	}

	c.table = scene.NewTable(infos)
	c.hasLast = false
	if c.focus != "" {
		if _, ok := c.table.Index(c.focus); !ok {
			util.LogWarnf("Focused scene %q no longer exists, clearing focus", c.focus)
			c.focus = ""
		}
	}
	c.setupRunning = false

	util.LogInfo("Sticky scroll setup complete",
		util.F("scenes", c.table.Len()),
		util.F("total_length", c.table.TotalLength()))

	c.markReady()
	if c.enabled {
		c.sched.Post(c.OnScroll)
	}
	return false
}

// HandleSceneLoad reports whether the host should suppress its scene-load
// handlers because the scene change comes from a setup pass
func (c *Controller) HandleSceneLoad() bool {
	return c.setupRunning
}

// Ready reports whether setup has completed at least once
func (c *Controller) Ready() bool {
	return c.ready
}

// Table returns the scene table; nil before setup
func (c *Controller) Table() *scene.Table {
	return c.table
}

// PendingOperations returns the number of operations waiting for setup
func (c *Controller) PendingOperations() int {
	return len(c.pending)
}

// whenReady runs op now, or defers it until setup completes
func (c *Controller) whenReady(what string, op func()) {
	if c.ready {
		op()
		return
	}
	util.LogDebugf("Deferring %s until sticky scroll is ready", what)
	c.pending = append(c.pending, op)
}

func (c *Controller) markReady() {
	c.ready = true
	ops := c.pending
	c.pending = nil
	for _, op := range ops {
		op()
	}
}
