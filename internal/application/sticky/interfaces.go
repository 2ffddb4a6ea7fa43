package sticky

import (
	"github.com/penwyp/go-sticky-scroll/internal/core/geometry"
	"github.com/penwyp/go-sticky-scroll/internal/scroll"
)

// Document is the host document whose scene timelines are driven by scrolling
type Document interface {
	// SceneNames lists every scene in document order
	SceneNames() []string
	// CurrentSceneName returns the scene currently shown
	CurrentSceneName() string
	// ShowScene makes the named scene current
	ShowScene(name string)
	// TimelineDuration returns the length in seconds of the scene's timeline.
	// Only queried while the scene is current.
	TimelineDuration(name string) float64
	// SceneLayouts returns host layout data for the scene, stored as is
	SceneLayouts(name string) any
	// PauseTimeline pauses the scene's timeline
	PauseTimeline(name string)
	// SeekTimeline moves the scene's timeline to t seconds
	SeekTimeline(t float64, name string)
	// TriggerBehavior fires a named custom behavior
	TriggerBehavior(name string)
}

// Window is the scrollable page hosting the sticky container
type Window interface {
	scroll.Viewport
	// AddScrollListener subscribes l to native scroll events
	AddScrollListener(l scroll.Listener)
	// RemoveScrollListener unsubscribes l
	RemoveScrollListener(l scroll.Listener)
	// SetWrapperHeight sets the scrollable height of the wrapper in pixels
	SetWrapperHeight(px float64)
	// Geometry returns the current wrapper geometry
	Geometry() geometry.Geometry
	// StickyBox returns the live layout box of the sticky element
	StickyBox() geometry.Box
	// WrapperBox returns the live layout box of the wrapper element
	WrapperBox() geometry.Box
}

// EdgeEvent describes a boundary crossing
type EdgeEvent struct {
	Type     string // constants.EdgeBeforeStart or constants.EdgeAfterEnd
	Progress float64
	Scene    string
	Time     float64
}

// EdgeCallback is a user function invoked on an edge crossing
type EdgeCallback func(doc Document, win Window, event EdgeEvent)

// CallbackLookup resolves user functions by name
type CallbackLookup interface {
	// Callback returns the function registered under name, if any
	Callback(name string) (EdgeCallback, bool)
}

// CallbackMap is a CallbackLookup backed by a map
type CallbackMap map[string]EdgeCallback

// Callback implements CallbackLookup
func (m CallbackMap) Callback(name string) (EdgeCallback, bool) {
	fn, ok := m[name]
	return fn, ok && fn != nil
}
