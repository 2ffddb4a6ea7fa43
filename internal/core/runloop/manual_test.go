package runloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualFrames(t *testing.T) {
	m := NewManual(epoch, 10*time.Millisecond)

	var seen []time.Duration
	m.RequestFrame(func(now time.Time) {
		seen = append(seen, now.Sub(epoch))
		m.RequestFrame(func(now time.Time) {
			seen = append(seen, now.Sub(epoch))
		})
	})

	m.Frame()
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, seen)
	assert.Equal(t, 1, m.PendingFrames())

	m.Frame()
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, seen)
	assert.Zero(t, m.PendingFrames())
}

func TestManualCancelFrame(t *testing.T) {
	m := NewManual(epoch, 10*time.Millisecond)

	ran := false
	id := m.RequestFrame(func(time.Time) { ran = true })
	m.CancelFrame(id)
	m.Frames(3)

	assert.False(t, ran)
}

func TestManualCancelFrameWithinSameFrame(t *testing.T) {
	m := NewManual(epoch, 10*time.Millisecond)

	var ran []string
	var second FrameID
	m.RequestFrame(func(time.Time) {
		ran = append(ran, "first")
		m.CancelFrame(second)
	})
	second = m.RequestFrame(func(time.Time) { ran = append(ran, "second") })
	m.RequestFrame(func(time.Time) { ran = append(ran, "third") })

	m.Frame()
	assert.Equal(t, []string{"first", "third"}, ran)

	m.Frames(2)
	assert.Equal(t, []string{"first", "third"}, ran)
}

func TestManualTimersInterleaveWithFrames(t *testing.T) {
	m := NewManual(epoch, 10*time.Millisecond)

	var order []string
	m.AfterFunc(25*time.Millisecond, func() { order = append(order, "timer") })
	m.RequestFrame(func(time.Time) {
		order = append(order, "frame1")
		m.RequestFrame(func(time.Time) {
			order = append(order, "frame2")
			m.RequestFrame(func(time.Time) { order = append(order, "frame3") })
		})
	})

	m.Advance(35 * time.Millisecond)

	assert.Equal(t, []string{"frame1", "frame2", "timer", "frame3"}, order)
	assert.Equal(t, epoch.Add(35*time.Millisecond), m.Now())
}

func TestManualTimerStop(t *testing.T) {
	m := NewManual(epoch, 10*time.Millisecond)

	fired := 0
	timer := m.AfterFunc(50*time.Millisecond, func() { fired++ })
	assert.Equal(t, 1, m.PendingTimers())

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	m.Advance(time.Second)

	assert.Zero(t, fired)
	assert.Zero(t, m.PendingTimers())
}

func TestManualPostRunsAfterCurrentTask(t *testing.T) {
	m := NewManual(epoch, 10*time.Millisecond)

	var order []string
	m.Post(func() {
		m.Post(func() { order = append(order, "second") })
		order = append(order, "first")
	})
	m.Drain()

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestFrameInterval(t *testing.T) {
	assert.Equal(t, 10*time.Millisecond, FrameInterval(100))
	assert.Equal(t, FrameInterval(60), FrameInterval(0))
}
