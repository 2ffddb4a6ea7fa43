package constants

import "time"

// Option defaults. Lengths are in pixels; AutoScrollSpeed is in thousands of
// pixels per second.
const (
	DefaultIgnoreSceneSymbol   = "--"
	DefaultWrapperHeight       = 5000.0
	DefaultAutoScrollSpeed     = 2.0
	DefaultSnapToBoundaries    = true
	DefaultViewportHeightUnit  = "vh"
	DefaultSnapToleranceBefore = 200.0
	DefaultSnapToleranceAfter  = 200.0
	DefaultSnapDelay           = 150 * time.Millisecond
	DefaultSnapDuration        = "auto"
	DefaultSnapEasing          = "inout"
	DefaultFrameRate           = 60.0
)

// Edge notification names
const (
	EdgeBeforeStart = "before-start"
	EdgeAfterEnd    = "after-end"
)

// EventScroll is the event a smooth-scroll backend emits per animated frame
const EventScroll = "scroll"
