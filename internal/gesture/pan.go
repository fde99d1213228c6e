package gesture

import (
	"time"

	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/recognizer"
	"github.com/banshee-data/gestures/internal/timeutil"
)

// PanOptions configures Pan.
type PanOptions struct {
	PosThreshold float64
	Delay        time.Duration
	NumInputs    int
	FailWith     []recognizer.Competitor
}

// DefaultPanOptions returns the pan defaults: one pointer, 15px threshold, no
// delay.
func DefaultPanOptions() PanOptions {
	return PanOptions{PosThreshold: 15, NumInputs: 1}
}

func (o PanOptions) engine() recognizer.Options {
	return recognizer.Options{
		NumInputs:    o.NumInputs,
		PosThreshold: o.PosThreshold,
		Delay:        o.Delay,
		FailWith:     o.FailWith,
	}
}

// Pan projects the engine lifecycle onto panStart, panMove and panEnd.
type Pan struct {
	engineGesture
}

// NewPan returns an unattached pan recognizer.
func NewPan(sched timeutil.Scheduler, opts PanOptions) *Pan {
	p := &Pan{}
	p.engineGesture = newEngineGesture("pan", sched, opts.engine(), p.handle)
	return p
}

// Configure attaches to s and applies opts.
func (p *Pan) Configure(s pointer.Surface, opts PanOptions) {
	p.Update(opts)
	p.Attach(s)
}

// Update swaps the options from the next tick on.
func (p *Pan) Update(opts PanOptions) {
	p.engine.Update(opts.engine())
}

func (p *Pan) handle(ev recognizer.Event) {
	var t Type
	switch ev.Stage {
	case recognizer.StageStart:
		t = TypePanStart
	case recognizer.StageMove:
		t = TypePanMove
	case recognizer.StageEnd:
		t = TypePanEnd
	default:
		return
	}
	p.emit(PanEvent{Base: baseOf(t, ev), Forced: ev.Forced})
}
