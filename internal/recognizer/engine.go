package recognizer

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/gestures/internal/kinematics"
	"github.com/banshee-data/gestures/internal/monitoring"
	"github.com/banshee-data/gestures/internal/notify"
	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/timeutil"
)

// Options configures an Engine. Invalid values are clamped: NumInputs to at
// least 1, negative thresholds and delays to 0.
type Options struct {
	// NumInputs is the number of simultaneous pointers that arms an instance.
	NumInputs int
	// PosThreshold is the distance in pixels a pointer must travel from its
	// down position, strictly exceeded, before the instance can start. 0
	// starts without movement.
	PosThreshold float64
	// Delay postpones the start once the threshold was crossed.
	Delay time.Duration
	// FailWith lists the recognizers this one yields to.
	FailWith []Competitor
}

func (o Options) normalized() Options {
	if o.NumInputs < 1 {
		o.NumInputs = 1
	}
	if o.PosThreshold < 0 || math.IsNaN(o.PosThreshold) {
		o.PosThreshold = 0
	}
	if o.Delay < 0 {
		o.Delay = 0
	}
	return o
}

// Stage tells where in its lifecycle an engine event was emitted.
type Stage uint8

const (
	StageStart Stage = iota + 1
	StageMove
	StageEnd
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageMove:
		return "move"
	case StageEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is emitted by an Engine for every transition of an active instance.
type Event struct {
	Stage      Stage
	InstanceID uuid.UUID
	// Forced marks an end caused by a competitor or a detach rather than by
	// the pointers lifting.
	Forced bool
	kinematics.Measurement
}

type instanceState uint8

const (
	// stateArmed waits for the position threshold.
	stateArmed instanceState = iota
	// statePending waits for the start delay.
	statePending
	stateActive
	// stateMuted swallows everything until release.
	stateMuted
)

type instance struct {
	id    uuid.UUID
	gen   uint64
	state instanceState
	acc   kinematics.Accumulator
	last  kinematics.Measurement
	timer timeutil.Timer
}

// Engine is the generic threshold state machine shared by pan, hold, swipe,
// pinch and rotate. At most one instance is live at a time; arming while one
// is live is ignored.
//
//	Idle -> Armed     active pointers reach NumInputs
//	Armed -> Active   threshold crossed, then Delay elapsed, while not blocked
//	Active -> Active  every tick with enough pointers
//	* -> Idle         pointers drop below NumInputs (End only if Active)
type Engine struct {
	name  string
	sched timeutil.Scheduler
	opts  Options

	binding  *Binding
	coord    *Coordinator
	activity Activity
	events   notify.Emitter[Event]

	inst *instance
	gen  uint64
}

// NewEngine returns a dormant engine. name labels log lines.
func NewEngine(name string, sched timeutil.Scheduler, opts Options) *Engine {
	e := &Engine{
		name:  name,
		sched: sched,
		opts:  opts.normalized(),
	}
	e.binding = NewBinding(true, e.handle, e.detached)
	e.coord = NewCoordinator(e.blockedChanged)
	e.coord.Bind(e.opts.FailWith)
	return e
}

// Name returns the label the engine logs with.
func (e *Engine) Name() string {
	return e.name
}

// Attach binds the engine to a surface; nil detaches it.
func (e *Engine) Attach(s pointer.Surface) {
	e.binding.Attach(s)
}

// Surface returns the bound surface.
func (e *Engine) Surface() pointer.Surface {
	return e.binding.Surface()
}

// SetTransform installs the sample hook applied before tracking.
func (e *Engine) SetTransform(t pointer.Transform) {
	e.binding.SetTransform(t)
}

// Update swaps the options. They apply from the next tick; a live instance
// keeps its identity and accumulated kinematics.
func (e *Engine) Update(opts Options) {
	e.opts = opts.normalized()
	if e.inst != nil {
		monitoring.Logf("%s: options updated on live instance %s: inputs=%d threshold=%.1f delay=%s competitors=%d",
			e.name, e.inst.id, e.opts.NumInputs, e.opts.PosThreshold, e.opts.Delay, len(e.opts.FailWith))
	}
	e.coord.Bind(e.opts.FailWith)
}

// Options returns the normalized options in effect.
func (e *Engine) Options() Options {
	return e.opts
}

// Subscribe registers fn for every engine event.
func (e *Engine) Subscribe(fn func(Event)) (cancel func()) {
	return e.events.Subscribe(fn)
}

// Activity returns the engine's start/end signal.
func (e *Engine) Activity() *Activity {
	return &e.activity
}

// Blocked reports whether a competitor is active.
func (e *Engine) Blocked() bool {
	return e.coord.Blocked()
}

// Live reports whether an instance is armed, pending, active or muted.
func (e *Engine) Live() bool {
	return e.inst != nil
}

// Fingers returns the number of active pointers.
func (e *Engine) Fingers() int {
	return e.binding.Fingers()
}

// WatchFingers registers fn for every change of the finger count.
func (e *Engine) WatchFingers(fn func(int)) (cancel func()) {
	return e.binding.WatchFingers(fn)
}

// Close detaches the engine and releases its competitor subscriptions.
func (e *Engine) Close() {
	e.binding.Close()
	e.coord.Close()
}

func (e *Engine) nowMs() int64 {
	return timeutil.UnixMillis(e.sched.Now())
}

func (e *Engine) handle(tick pointer.Tick) {
	n := tick.Count()
	inst := e.inst
	if inst == nil {
		if n < e.opts.NumInputs {
			return
		}
		inst = e.arm()
	}
	if n < e.opts.NumInputs {
		e.release(inst, tick)
		return
	}

	switch inst.state {
	case stateArmed:
		if !e.crossed(tick) {
			return
		}
		inst.acc.Step(tick, e.nowMs())
		if e.opts.Delay == 0 {
			e.start(inst, inst.acc.At(e.nowMs()))
			return
		}
		inst.state = statePending
		gen := inst.gen
		inst.timer = e.sched.AfterFunc(e.opts.Delay, func() { e.fire(gen) })
	case statePending:
		inst.acc.Step(tick, e.nowMs())
	case stateActive:
		inst.last = inst.acc.Step(tick, e.nowMs())
		e.emit(Event{Stage: StageMove, InstanceID: inst.id, Measurement: inst.last})
	case stateMuted:
	}
}

func (e *Engine) arm() *instance {
	e.gen++
	e.inst = &instance{id: uuid.New(), gen: e.gen}
	return e.inst
}

// crossed reports whether any live pointer moved strictly farther than the
// threshold from its own down position.
func (e *Engine) crossed(tick pointer.Tick) bool {
	if e.opts.PosThreshold == 0 {
		return true
	}
	for _, p := range tick.Pointers {
		origin, ok := e.binding.Origin(p.ID)
		if !ok {
			continue
		}
		if math.Hypot(p.X-origin.X, p.Y-origin.Y) > e.opts.PosThreshold {
			return true
		}
	}
	return false
}

func (e *Engine) fire(gen uint64) {
	inst := e.inst
	if inst == nil || inst.gen != gen || inst.state != statePending {
		monitoring.Debugf("%s: dropping stale start timer (generation %d)", e.name, gen)
		return
	}
	inst.timer = nil
	e.start(inst, inst.acc.At(e.nowMs()))
}

func (e *Engine) start(inst *instance, m kinematics.Measurement) {
	if e.coord.Blocked() {
		inst.state = stateMuted
		monitoring.Debugf("%s: start of %s suppressed by a competitor", e.name, inst.id)
		return
	}
	inst.state = stateActive
	inst.last = m
	e.emit(Event{Stage: StageStart, InstanceID: inst.id, Measurement: m})
	e.activity.Set(true)
}

func (e *Engine) release(inst *instance, tick pointer.Tick) {
	e.inst = nil
	if inst.timer != nil {
		inst.timer.Stop()
		inst.timer = nil
	}
	if inst.state != stateActive {
		return
	}
	m := inst.acc.Step(tick, e.nowMs())
	e.emit(Event{Stage: StageEnd, InstanceID: inst.id, Measurement: m})
	e.activity.Set(false)
}

// forceEnd ends an active instance with its last measurement and mutes it
// until the pointers lift.
func (e *Engine) forceEnd(inst *instance, reason string) {
	inst.state = stateMuted
	monitoring.Logf("%s: instance %s force-ended: %s", e.name, inst.id, reason)
	e.emit(Event{Stage: StageEnd, InstanceID: inst.id, Forced: true, Measurement: inst.last})
	e.activity.Set(false)
}

func (e *Engine) blockedChanged(blocked bool) {
	inst := e.inst
	if !blocked || inst == nil || inst.state != stateActive {
		return
	}
	e.forceEnd(inst, "competitor became active")
}

func (e *Engine) detached() {
	inst := e.inst
	if inst == nil {
		return
	}
	e.inst = nil
	if inst.timer != nil {
		inst.timer.Stop()
		inst.timer = nil
	}
	if inst.state == stateActive {
		e.forceEnd(inst, "surface detached")
	}
}

func (e *Engine) emit(ev Event) {
	e.events.Emit(ev)
}
