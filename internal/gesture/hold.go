package gesture

import (
	"time"

	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/recognizer"
	"github.com/banshee-data/gestures/internal/timeutil"
)

// HoldOptions configures Hold. A hold never waits for movement.
type HoldOptions struct {
	Delay     time.Duration
	NumInputs int
	FailWith  []recognizer.Competitor
}

// DefaultHoldOptions returns the hold defaults: one pointer, no delay.
func DefaultHoldOptions() HoldOptions {
	return HoldOptions{NumInputs: 1}
}

func (o HoldOptions) engine() recognizer.Options {
	return recognizer.Options{
		NumInputs: o.NumInputs,
		Delay:     o.Delay,
		FailWith:  o.FailWith,
	}
}

// Hold reports pointers resting on the surface: holdStart once Delay has
// elapsed with enough pointers down, holdEnd on release.
type Hold struct {
	engineGesture
}

// NewHold returns an unattached hold recognizer.
func NewHold(sched timeutil.Scheduler, opts HoldOptions) *Hold {
	h := &Hold{}
	h.engineGesture = newEngineGesture("hold", sched, opts.engine(), h.handle)
	return h
}

// Configure attaches to s and applies opts.
func (h *Hold) Configure(s pointer.Surface, opts HoldOptions) {
	h.Update(opts)
	h.Attach(s)
}

// Update swaps the options from the next tick on.
func (h *Hold) Update(opts HoldOptions) {
	h.engine.Update(opts.engine())
}

func (h *Hold) handle(ev recognizer.Event) {
	switch ev.Stage {
	case recognizer.StageStart:
		h.emit(HoldEvent{Base: baseOf(TypeHoldStart, ev)})
	case recognizer.StageEnd:
		h.emit(HoldEvent{Base: baseOf(TypeHoldEnd, ev), Forced: ev.Forced})
	}
}
