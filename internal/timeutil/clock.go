// Package timeutil provides the time source and timer scheduling used by the
// recognizers, with a manually driven clock for tests and deterministic replay.
package timeutil

import (
	"sort"
	"sync"
	"time"
)

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the timer
	// was still pending.
	Stop() bool
}

// Scheduler is the time source handed to recognizers.
//
// Callbacks registered with AfterFunc must run on the same goroutine that
// feeds pointer samples. MockClock satisfies this by firing callbacks inside
// Advance; Loop satisfies it by posting them onto its run goroutine.
type Scheduler interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules f to run once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// Clock extends Scheduler with convenience helpers.
type Clock interface {
	Scheduler

	// Since returns the duration since t.
	Since(t time.Time) time.Duration
}

// RealClock implements Clock using the standard time package.
//
// Its AfterFunc callbacks run on their own goroutine; wrap it in a Loop before
// handing it to recognizers.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func (RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// AfterFunc wraps time.AfterFunc.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return &realTimer{timer: time.AfterFunc(d, f)}
}

type realTimer struct {
	timer *time.Timer
}

func (t *realTimer) Stop() bool { return t.timer.Stop() }

// UnixMillis converts t to milliseconds since the Unix epoch.
func UnixMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// MockClock is a manually controlled clock for testing and replay.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*MockTimer
}

// NewMockClock creates a new MockClock set to the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// Now returns the mocked current time.
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Since returns the duration since t.
func (c *MockClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Set moves the clock to t without firing timers. Use AdvanceTo when pending
// callbacks must run.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// AfterFunc registers f to run when the clock is advanced past now+d.
func (c *MockClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &MockTimer{
		clock:    c,
		fn:       f,
		deadline: c.now.Add(d),
		seq:      c.seq,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due callbacks in deadline
// order. The clock reads each callback's deadline while it runs, and
// callbacks scheduled by other callbacks fire too when they fall inside the
// window.
func (c *MockClock) Advance(d time.Duration) {
	c.AdvanceTo(c.Now().Add(d))
}

// AdvanceTo moves the clock forward to target, firing due callbacks. A target
// in the past leaves the clock unchanged.
func (c *MockClock) AdvanceTo(target time.Time) {
	for {
		c.mu.Lock()
		if target.Before(c.now) {
			c.mu.Unlock()
			return
		}
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		if next.deadline.After(c.now) {
			c.now = next.deadline
		}
		next.fired = true
		c.pruneLocked()
		c.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers that have neither fired nor stopped.
func (c *MockClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (c *MockClock) nextDueLocked(target time.Time) *MockTimer {
	due := make([]*MockTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if t.fired || t.stopped || t.deadline.After(target) {
			continue
		}
		due = append(due, t)
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	return due[0]
}

func (c *MockClock) pruneLocked() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(c.timers); i++ {
		c.timers[i] = nil
	}
	c.timers = live
}

// MockTimer is a callback registered on a MockClock.
type MockTimer struct {
	clock    *MockClock
	fn       func()
	deadline time.Time
	seq      uint64
	stopped  bool
	fired    bool
}

// Stop prevents the callback from firing.
func (t *MockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

// Deadline returns the instant the timer is due.
func (t *MockTimer) Deadline() time.Time {
	return t.deadline
}
