package gesture

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/gestures/internal/kinematics"
	"github.com/banshee-data/gestures/internal/monitoring"
	"github.com/banshee-data/gestures/internal/notify"
	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/recognizer"
	"github.com/banshee-data/gestures/internal/timeutil"
)

// TapOptions configures Tap.
type TapOptions struct {
	// MaxTaps is the largest tap count reported. A longer series emits
	// nothing.
	MaxTaps int
	// MultiTapThreshold is how long after an up the next down may follow and
	// still count towards the same series.
	MultiTapThreshold time.Duration
	// MaximumPressTime is the longest a single press may last.
	MaximumPressTime time.Duration
	// Tolerance is the distance in pixels any sample of the series may stray
	// from the first down.
	Tolerance float64
	FailWith  []recognizer.Competitor
}

// DefaultMultiTapThreshold returns the series window used when none is
// configured: 100ms for every tap beyond the first.
func DefaultMultiTapThreshold(maxTaps int) time.Duration {
	if maxTaps < 1 {
		maxTaps = 1
	}
	return time.Duration(maxTaps-1) * 100 * time.Millisecond
}

// DefaultTapOptions returns the tap defaults: single taps, 150ms presses,
// 10px tolerance.
func DefaultTapOptions() TapOptions {
	return TapOptions{
		MaxTaps:           1,
		MultiTapThreshold: DefaultMultiTapThreshold(1),
		MaximumPressTime:  150 * time.Millisecond,
		Tolerance:         10,
	}
}

func (o TapOptions) normalized() TapOptions {
	if o.MaxTaps < 1 {
		o.MaxTaps = 1
	}
	if o.MultiTapThreshold < 0 {
		o.MultiTapThreshold = 0
	}
	if o.MaximumPressTime < 0 {
		o.MaximumPressTime = 0
	}
	if o.Tolerance < 0 || math.IsNaN(o.Tolerance) {
		o.Tolerance = 0
	}
	return o
}

// tapTimer is one timer of an attempt. seq identifies it, so a callback that
// runs after its timer was stopped or replaced can tell it is stale.
type tapTimer struct {
	timer timeutil.Timer
	seq   uint64
}

func (t *tapTimer) stop() {
	if t != nil {
		t.timer.Stop()
	}
}

type tapAttempt struct {
	id       uuid.UUID
	first    pointer.Sample
	downs    []pointer.Sample
	presses  map[int]*tapTimer
	debounce *tapTimer
}

func (a *tapAttempt) stopTimers() {
	for id, t := range a.presses {
		t.stop()
		delete(a.presses, id)
	}
	a.debounce.stop()
	a.debounce = nil
}

// Tap counts series of short, stationary, single pointer presses. It runs its
// own pipeline instead of the threshold engine: a series starts on a lone
// down, collects downs until MultiTapThreshold passes after an up, then emits
// one tap with the number of downs collected.
type Tap struct {
	sched    timeutil.Scheduler
	opts     TapOptions
	binding  *recognizer.Binding
	coord    *recognizer.Coordinator
	activity recognizer.Activity
	events   notify.Emitter[Event]

	attempt  *tapAttempt
	timerSeq uint64
}

// NewTap returns an unattached tap recognizer.
func NewTap(sched timeutil.Scheduler, opts TapOptions) *Tap {
	t := &Tap{sched: sched, opts: opts.normalized()}
	t.binding = recognizer.NewBinding(true, t.handle, func() { t.invalidate("surface detached") })
	t.coord = recognizer.NewCoordinator(func(blocked bool) {
		if blocked {
			t.invalidate("competitor became active")
		}
	})
	t.coord.Bind(t.opts.FailWith)
	return t
}

// Name implements Recognizer.
func (t *Tap) Name() string { return "tap" }

// Configure attaches to s and applies opts.
func (t *Tap) Configure(s pointer.Surface, opts TapOptions) {
	t.Update(opts)
	t.Attach(s)
}

// Update swaps the options. A series in progress keeps its timers.
func (t *Tap) Update(opts TapOptions) {
	t.opts = opts.normalized()
	t.coord.Bind(t.opts.FailWith)
}

// Options returns the normalized options in effect.
func (t *Tap) Options() TapOptions { return t.opts }

// Attach implements Recognizer.
func (t *Tap) Attach(s pointer.Surface) { t.binding.Attach(s) }

// SetTransform implements Recognizer.
func (t *Tap) SetTransform(tr pointer.Transform) { t.binding.SetTransform(tr) }

// Subscribe implements Recognizer.
func (t *Tap) Subscribe(fn func(Event)) func() { return t.events.Subscribe(fn) }

// Fingers implements Recognizer.
func (t *Tap) Fingers() int { return t.binding.Fingers() }

// WatchFingers implements Recognizer.
func (t *Tap) WatchFingers(fn func(int)) func() { return t.binding.WatchFingers(fn) }

// Activity implements Recognizer. It pulses around every emitted tap.
func (t *Tap) Activity() *recognizer.Activity { return &t.activity }

// Close implements Recognizer.
func (t *Tap) Close() {
	t.binding.Close()
	t.coord.Close()
}

func (t *Tap) handle(tick pointer.Tick) {
	s := tick.Sample
	if t.attempt == nil {
		if s.Phase != pointer.PhaseDown || tick.Count() != 1 || t.coord.Blocked() {
			return
		}
		t.begin(s)
	}
	a := t.attempt

	if distance(s, a.first) > t.opts.Tolerance {
		t.invalidate("moved beyond tolerance")
		return
	}

	switch s.Phase {
	case pointer.PhaseDown:
		if tick.Count() > 1 {
			t.invalidate("several pointers down")
			return
		}
		a.debounce.stop()
		a.debounce = nil
		a.downs = append(a.downs, s)
		a.presses[s.ID].stop()
		id := s.ID
		a.presses[id] = t.schedule(t.opts.MaximumPressTime, func(seq uint64) {
			t.pressedTooLong(a, id, seq)
		})
	case pointer.PhaseUp:
		a.presses[s.ID].stop()
		delete(a.presses, s.ID)
		if tick.Count() == 0 {
			a.debounce = t.schedule(t.opts.MultiTapThreshold, func(seq uint64) { t.flush(a, seq) })
		}
	case pointer.PhaseCancel, pointer.PhaseLeave:
		t.invalidate("pointer " + s.Phase.String())
	}
}

func (t *Tap) begin(first pointer.Sample) {
	t.attempt = &tapAttempt{
		id:      uuid.New(),
		first:   first,
		presses: make(map[int]*tapTimer),
	}
}

func (t *Tap) invalidate(reason string) {
	a := t.attempt
	if a == nil {
		return
	}
	t.attempt = nil
	a.stopTimers()
	monitoring.Debugf("tap: attempt %s invalidated: %s", a.id, reason)
}

// schedule starts a timer whose callback receives the timer's own seq.
func (t *Tap) schedule(d time.Duration, fn func(seq uint64)) *tapTimer {
	t.timerSeq++
	seq := t.timerSeq
	return &tapTimer{seq: seq, timer: t.sched.AfterFunc(d, func() { fn(seq) })}
}

// pressedTooLong and flush act only while their timer is still the one the
// current attempt holds.
func (t *Tap) pressedTooLong(a *tapAttempt, id int, seq uint64) {
	press := a.presses[id]
	if t.attempt != a || press == nil || press.seq != seq {
		monitoring.Debugf("tap: dropping stale press timer %d for pointer %d", seq, id)
		return
	}
	t.invalidate("pressed too long")
}

func (t *Tap) flush(a *tapAttempt, seq uint64) {
	if t.attempt != a || a.debounce == nil || a.debounce.seq != seq {
		monitoring.Debugf("tap: dropping stale series timer %d", seq)
		return
	}
	t.attempt = nil
	a.stopTimers()

	n := len(a.downs)
	if n == 0 {
		return
	}
	if n > t.opts.MaxTaps {
		monitoring.Debugf("tap: attempt %s discarded: %d taps exceed %d", a.id, n, t.opts.MaxTaps)
		return
	}

	var acc kinematics.Accumulator
	m := acc.Step(pointer.Tick{Sample: a.downs[0], Pointers: a.downs}, timeutil.UnixMillis(t.sched.Now()))
	ev := TapEvent{
		Base: Base{Type: TypeTap, InstanceID: a.id, Measurement: m},
		Taps: n,
	}

	t.activity.Set(true)
	t.events.Emit(ev)
	t.activity.Set(false)
}

func distance(a, b pointer.Sample) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
