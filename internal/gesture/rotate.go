package gesture

import (
	"time"

	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/recognizer"
	"github.com/banshee-data/gestures/internal/timeutil"
)

// RotateOptions configures Rotate. A rotation always needs two pointers.
type RotateOptions struct {
	PosThreshold float64
	Delay        time.Duration
	FailWith     []recognizer.Competitor
}

// DefaultRotateOptions returns the rotate defaults: 15px threshold.
func DefaultRotateOptions() RotateOptions {
	return RotateOptions{PosThreshold: 15}
}

func (o RotateOptions) engine() recognizer.Options {
	return recognizer.Options{
		NumInputs:    2,
		PosThreshold: o.PosThreshold,
		Delay:        o.Delay,
		FailWith:     o.FailWith,
	}
}

// Rotate accumulates the rotation of two or more pointers around their
// centroid.
type Rotate struct {
	engineGesture
	angle float64
}

// NewRotate returns an unattached rotate recognizer.
func NewRotate(sched timeutil.Scheduler, opts RotateOptions) *Rotate {
	r := &Rotate{}
	r.engineGesture = newEngineGesture("rotate", sched, opts.engine(), r.handle)
	return r
}

// Configure attaches to s and applies opts.
func (r *Rotate) Configure(s pointer.Surface, opts RotateOptions) {
	r.Update(opts)
	r.Attach(s)
}

// Update swaps the options from the next tick on.
func (r *Rotate) Update(opts RotateOptions) {
	r.engine.Update(opts.engine())
}

func (r *Rotate) handle(ev recognizer.Event) {
	switch ev.Stage {
	case recognizer.StageStart:
		r.angle = 0
		r.emit(RotateEvent{Base: baseOf(TypeRotateStart, ev)})
	case recognizer.StageMove:
		r.angle += ev.DeltaAngleDeg
		r.emit(RotateEvent{Base: baseOf(TypeRotateMove, ev), Angle: r.angle, DeltaAngle: ev.DeltaAngleDeg})
	case recognizer.StageEnd:
		r.emit(RotateEvent{Base: baseOf(TypeRotateEnd, ev), Angle: r.angle})
	}
}
