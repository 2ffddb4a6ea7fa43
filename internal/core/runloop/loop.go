package runloop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// Loop is a real-time Scheduler. All frame callbacks, timer callbacks and
// posted tasks run on the goroutine that called Run. Post and AfterFunc may be
// called from any goroutine.
type Loop struct {
	interval time.Duration
	wake     chan struct{}

	mu      sync.Mutex
	nextID  FrameID
	frames  []frameRequest
	running map[FrameID]struct{}
	tasks   []func()
	stopped bool
}

// NewLoop creates a loop producing frames at rate Hz
func NewLoop(rate float64) *Loop {
	return &Loop{
		interval: FrameInterval(rate),
		wake:     make(chan struct{}, 1),
	}
}

// Now returns the wall clock
func (l *Loop) Now() time.Time {
	return time.Now()
}

// RequestFrame schedules fn for the next frame tick
func (l *Loop) RequestFrame(fn FrameFunc) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	l.frames = append(l.frames, frameRequest{id: l.nextID, fn: fn})
	return l.nextID
}

// CancelFrame removes a pending frame callback, including one later in the
// frame currently running
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
	delete(l.running, id)
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

// Stop cancels the timer, including a fire that is already queued
func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	return t.timer.Stop()
}

// AfterFunc runs fn on the loop once d has elapsed
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.Swap(true) {
				return
			}
			fn()
		})
	})
	return t
}

// Post queues fn to run on the loop. It never blocks, so tasks may post
// further tasks. Posting after the loop stopped is a no-op.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes the loop until ctx is cancelled
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.tasks = nil
		l.mu.Unlock()
	}()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	util.LogDebugf("Run loop started (frame interval %s)", l.interval)
	for {
		select {
		case <-ctx.Done():
			util.LogDebug("Run loop stopped")
			return nil
		case <-l.wake:
			l.runTasks()
		case now := <-ticker.C:
			l.runFrame(now)
		}
	}
}

// runTasks runs the tasks queued so far; tasks they post wait for the next wake
func (l *Loop) runTasks() {
	l.mu.Lock()
	tasks := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
}

func (l *Loop) runFrame(now time.Time) {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.running = batchIDs(frames)
	l.mu.Unlock()

	for _, f := range frames {
		if !l.claim(f.id) {
			continue
		}
		f.fn(now)
	}

	l.mu.Lock()
	l.running = nil
	l.mu.Unlock()
}

// claim reports whether id is still due in the running frame and marks it run
func (l *Loop) claim(id FrameID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.running[id]; !ok {
		return false
	}
	delete(l.running, id)
	return true
}
