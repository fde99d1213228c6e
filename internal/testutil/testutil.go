// Package testutil provides shared test utilities and fixtures.
//
// Script drives a pointer feed against a mock clock so recognizer tests read
// as a timeline of samples; Collector records emitted values.
package testutil

import (
	"testing"
	"time"

	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/timeutil"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewClock returns a mock clock at the Unix epoch, so that millisecond
// timestamps in tests equal offsets from the start of the test.
func NewClock() *timeutil.MockClock {
	return timeutil.NewMockClock(time.UnixMilli(0))
}

// Script pushes samples into a feed at scripted instants of a mock clock.
type Script struct {
	Clock *timeutil.MockClock
	Feed  *pointer.Feed
}

// NewScript returns a script over a fresh feed and a clock from NewClock.
func NewScript() *Script {
	return &Script{Clock: NewClock(), Feed: pointer.NewFeed()}
}

// At advances the clock to ms milliseconds after the epoch, firing due timers.
func (s *Script) At(ms int64) *Script {
	s.Clock.AdvanceTo(time.UnixMilli(ms))
	return s
}

// Wait advances the clock by d.
func (s *Script) Wait(d time.Duration) *Script {
	s.Clock.Advance(d)
	return s
}

// Down pushes a down sample stamped with the current clock time.
func (s *Script) Down(id int, x, y float64) *Script {
	return s.push(id, x, y, pointer.PhaseDown)
}

// Move pushes a move sample.
func (s *Script) Move(id int, x, y float64) *Script {
	return s.push(id, x, y, pointer.PhaseMove)
}

// Up pushes an up sample.
func (s *Script) Up(id int, x, y float64) *Script {
	return s.push(id, x, y, pointer.PhaseUp)
}

// Cancel pushes a cancel sample.
func (s *Script) Cancel(id int, x, y float64) *Script {
	return s.push(id, x, y, pointer.PhaseCancel)
}

// Leave pushes a leave sample.
func (s *Script) Leave(id int, x, y float64) *Script {
	return s.push(id, x, y, pointer.PhaseLeave)
}

func (s *Script) push(id int, x, y float64, phase pointer.Phase) *Script {
	s.Feed.Push(pointer.Sample{
		ID:          id,
		X:           x,
		Y:           y,
		Phase:       phase,
		TimestampMs: timeutil.UnixMillis(s.Clock.Now()),
	})
	return s
}

// Collector records every value passed to Add.
type Collector[T any] struct {
	Items []T
}

// Add appends v. Its method value can be handed to Subscribe directly.
func (c *Collector[T]) Add(v T) {
	c.Items = append(c.Items, v)
}

// Len returns the number of recorded values.
func (c *Collector[T]) Len() int {
	return len(c.Items)
}

// Last returns the most recent value, or the zero value when empty.
func (c *Collector[T]) Last() T {
	var zero T
	if len(c.Items) == 0 {
		return zero
	}
	return c.Items[len(c.Items)-1]
}

// Reset forgets every recorded value.
func (c *Collector[T]) Reset() {
	c.Items = nil
}
