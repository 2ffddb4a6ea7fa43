// Package runloop provides the cooperative, single-threaded execution model the
// scroll components run on: animation frames, timers and posted tasks, all
// executed one at a time on one logical thread.
package runloop

import "time"

// FrameID identifies a requested animation frame callback
type FrameID uint64

// FrameFunc is invoked once at the next animation frame
type FrameFunc func(now time.Time)

// Timer is a pending one-shot callback
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it already fired or was stopped.
	Stop() bool
}

// Scheduler is the execution context shared by the driver, snap engine and
// controller of one document. Every callback runs to completion before the next
// one starts; implementations never run two callbacks concurrently.
type Scheduler interface {
	Now() time.Time
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
	AfterFunc(d time.Duration, fn func()) Timer
	// Post queues fn to run as its own task after the current one
	Post(fn func())
}

// FrameInterval converts a frame rate in Hz to a frame interval
func FrameInterval(rate float64) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Duration(float64(time.Second) / rate)
}

type frameRequest struct {
	id FrameID
	fn FrameFunc
}

// batchIDs returns the set of frame callbacks still due in a batch
func batchIDs(frames []frameRequest) map[FrameID]struct{} {
	ids := make(map[FrameID]struct{}, len(frames))
	for _, f := range frames {
		ids[f.id] = struct{}{}
	}
	return ids
}
