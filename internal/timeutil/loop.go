package timeutil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopClosed is returned by Run once the loop has been closed.
var ErrLoopClosed = errors.New("timeutil: loop closed")

// Loop runs posted tasks one at a time on the goroutine that calls Run.
//
// Live surfaces deliver samples from their own goroutines; posting both the
// samples and the timer callbacks through a Loop keeps every recognizer on a
// single goroutine without locks.
type Loop struct {
	clock Clock
	tasks chan func()

	closeOnce sync.Once
	done      chan struct{}
}

// NewLoop creates a loop backed by clock. backlog bounds the number of queued
// tasks before Post blocks.
func NewLoop(clock Clock, backlog int) *Loop {
	if backlog < 1 {
		backlog = 1
	}
	return &Loop{
		clock: clock,
		tasks: make(chan func(), backlog),
		done:  make(chan struct{}),
	}
}

// Now returns the current time of the underlying clock.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// AfterFunc schedules f on the loop goroutine once d has elapsed. Stopping
// the timer after it fired but before the loop reached f still cancels f.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.inner = l.clock.AfterFunc(d, func() {
		l.Post(func() {
			if t.state.CompareAndSwap(timerPending, timerRan) {
				f()
			}
		})
	})
	return t
}

const (
	timerPending int32 = iota
	timerStopped
	timerRan
)

// loopTimer is the Timer returned by Loop.AfterFunc. state moves from pending
// to exactly one of stopped or ran.
type loopTimer struct {
	inner Timer
	state atomic.Int32
}

// Stop reports whether f had not run yet.
func (t *loopTimer) Stop() bool {
	if t.inner != nil {
		t.inner.Stop()
	}
	return t.state.CompareAndSwap(timerPending, timerStopped)
}

// Post queues f for execution on the loop goroutine. It is safe to call from
// any goroutine. Tasks posted after Close are dropped.
func (l *Loop) Post(f func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.tasks <- f:
	case <-l.done:
	}
}

// Run executes tasks until ctx is cancelled or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return ErrLoopClosed
		case f := <-l.tasks:
			f()
		}
	}
}

// Close stops the loop. Pending tasks are discarded.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}
