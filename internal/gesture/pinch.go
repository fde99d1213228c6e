package gesture

import (
	"time"

	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/recognizer"
	"github.com/banshee-data/gestures/internal/timeutil"
)

// PinchOptions configures Pinch. A pinch always needs two pointers.
type PinchOptions struct {
	PosThreshold float64
	Delay        time.Duration
	FailWith     []recognizer.Competitor
}

// DefaultPinchOptions returns the pinch defaults: start without movement.
func DefaultPinchOptions() PinchOptions {
	return PinchOptions{}
}

func (o PinchOptions) engine() recognizer.Options {
	return recognizer.Options{
		NumInputs:    2,
		PosThreshold: o.PosThreshold,
		Delay:        o.Delay,
		FailWith:     o.FailWith,
	}
}

// Pinch tracks the spread of two or more pointers.
type Pinch struct {
	engineGesture

	// initial is the spread at the last finger count change.
	initial  float64
	previous float64
	count    int
	last     PinchEvent
}

// NewPinch returns an unattached pinch recognizer.
func NewPinch(sched timeutil.Scheduler, opts PinchOptions) *Pinch {
	p := &Pinch{}
	p.engineGesture = newEngineGesture("pinch", sched, opts.engine(), p.handle)
	return p
}

// Configure attaches to s and applies opts.
func (p *Pinch) Configure(s pointer.Surface, opts PinchOptions) {
	p.Update(opts)
	p.Attach(s)
}

// Update swaps the options from the next tick on.
func (p *Pinch) Update(opts PinchOptions) {
	p.engine.Update(opts.engine())
}

func (p *Pinch) handle(ev recognizer.Event) {
	switch ev.Stage {
	case recognizer.StageStart:
		avg := ev.PointersAverageDistance
		p.initial, p.previous, p.count = avg, avg, len(ev.Pointers)
		p.last = PinchEvent{Base: baseOf(TypePinchStart, ev), Scale: 1, DeltaScale: 1}
		p.emit(p.last)
	case recognizer.StageMove:
		p.last = p.step(ev)
		p.emit(p.last)
	case recognizer.StageEnd:
		end := p.last
		end.Base = baseOf(TypePinchEnd, ev)
		p.emit(end)
	}
}

func (p *Pinch) step(ev recognizer.Event) PinchEvent {
	avg := ev.PointersAverageDistance
	changed := len(ev.Pointers) != p.count
	if changed {
		p.initial = avg
	}

	out := PinchEvent{
		Base:       baseOf(TypePinchMove, ev),
		Scale:      1,
		DeltaScale: 1,
		Distance:   avg - p.initial,
	}
	if p.initial != 0 {
		out.Scale = avg / p.initial
	}
	if !changed {
		out.DeltaDistance = avg - p.previous
		if p.previous != 0 {
			out.DeltaScale = avg / p.previous
		}
	}

	p.previous = avg
	p.count = len(ev.Pointers)
	return out
}
