package runloop

import (
	"sort"
	"time"
)

// Manual is a deterministic, virtual-time Scheduler. Time only moves when
// Advance or Frame is called; frames fire on a fixed interval and timers fire
// at their exact deadlines, interleaved in time order. Posted tasks run after
// every frame or timer callback. Manual is not safe for concurrent use.
type Manual struct {
	now       time.Time
	interval  time.Duration
	nextFrame time.Time

	nextID  FrameID
	frames  []frameRequest
	running map[FrameID]struct{}
	timers  []*manualTimer
	posted  []func()
	timerSq uint64
}

type manualTimer struct {
	deadline time.Time
	seq      uint64
	fn       func()
	done     bool
}

// Stop cancels the timer
func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// NewManual creates a virtual clock starting at start, with frames every interval
func NewManual(start time.Time, interval time.Duration) *Manual {
	if interval <= 0 {
		interval = FrameInterval(60)
	}
	return &Manual{
		now:       start,
		interval:  interval,
		nextFrame: start.Add(interval),
	}
}

// Now returns the virtual time
func (m *Manual) Now() time.Time {
	return m.now
}

// RequestFrame schedules fn for the next frame
func (m *Manual) RequestFrame(fn FrameFunc) FrameID {
	m.nextID++
	m.frames = append(m.frames, frameRequest{id: m.nextID, fn: fn})
	return m.nextID
}

// CancelFrame removes a pending frame callback. Callbacks of the frame being
// run can cancel the ones after them.
func (m *Manual) CancelFrame(id FrameID) {
	for i, f := range m.frames {
		if f.id == id {
			m.frames = append(m.frames[:i], m.frames[i+1:]...)
			return
		}
	}
	delete(m.running, id)
}

// AfterFunc schedules fn to run once d of virtual time has passed
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.timerSq++
	t := &manualTimer{deadline: m.now.Add(d), seq: m.timerSq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Post queues fn as a task
func (m *Manual) Post(fn func()) {
	m.posted = append(m.posted, fn)
}

// Drain runs posted tasks until none remain, including tasks they post
func (m *Manual) Drain() {
	for len(m.posted) > 0 {
		fn := m.posted[0]
		m.posted = m.posted[1:]
		fn()
	}
}

// Frame advances virtual time to the next frame boundary and runs it
func (m *Manual) Frame() {
	m.Advance(m.nextFrame.Sub(m.now))
}

// Frames runs n consecutive frames
func (m *Manual) Frames(n int) {
	for i := 0; i < n; i++ {
		m.Frame()
	}
}

// Advance moves virtual time forward by d, running every frame and timer that
// falls inside the window in time order
func (m *Manual) Advance(d time.Duration) {
	end := m.now.Add(d)
	m.Drain()

	for {
		timer := m.nextTimer()
		if timer != nil && !timer.deadline.After(end) && !timer.deadline.After(m.nextFrame) {
			m.now = timer.deadline
			timer.done = true
			m.pruneTimers()
			timer.fn()
			m.Drain()
			continue
		}

		if m.nextFrame.After(end) {
			break
		}

		m.now = m.nextFrame
		m.nextFrame = m.nextFrame.Add(m.interval)
		m.runFrame()
		m.Drain()
	}

	m.now = end
}

// PendingFrames returns the number of frame callbacks waiting for the next frame
func (m *Manual) PendingFrames() int {
	return len(m.frames)
}

// PendingTimers returns the number of timers that have neither fired nor been stopped
func (m *Manual) PendingTimers() int {
	m.pruneTimers()
	return len(m.timers)
}

func (m *Manual) runFrame() {
	frames := m.frames
	m.frames = nil
	m.running = batchIDs(frames)
	for _, f := range frames {
		if _, ok := m.running[f.id]; !ok {
			continue
		}
		delete(m.running, f.id)
		f.fn(m.now)
	}
	m.running = nil
}

func (m *Manual) nextTimer() *manualTimer {
	m.pruneTimers()
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].deadline.Equal(m.timers[j].deadline) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].deadline.Before(m.timers[j].deadline)
	})
	return m.timers[0]
}

func (m *Manual) pruneTimers() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.timers); i++ {
		m.timers[i] = nil
	}
	m.timers = live
}
