package gesture

import (
	"github.com/banshee-data/gestures/internal/notify"
	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/recognizer"
	"github.com/banshee-data/gestures/internal/timeutil"
)

// engineGesture is embedded by the recognizers built on recognizer.Engine.
// It forwards the common surface to the engine and owns the typed emitter.
type engineGesture struct {
	engine *recognizer.Engine
	events notify.Emitter[Event]
}

func newEngineGesture(name string, sched timeutil.Scheduler, opts recognizer.Options, handle func(recognizer.Event)) engineGesture {
	g := engineGesture{engine: recognizer.NewEngine(name, sched, opts)}
	g.engine.Subscribe(handle)
	return g
}

// Name implements Recognizer.
func (g *engineGesture) Name() string { return g.engine.Name() }

// Attach implements Recognizer.
func (g *engineGesture) Attach(s pointer.Surface) { g.engine.Attach(s) }

// SetTransform implements Recognizer.
func (g *engineGesture) SetTransform(t pointer.Transform) { g.engine.SetTransform(t) }

// Subscribe implements Recognizer.
func (g *engineGesture) Subscribe(fn func(Event)) func() { return g.events.Subscribe(fn) }

// Fingers implements Recognizer.
func (g *engineGesture) Fingers() int { return g.engine.Fingers() }

// WatchFingers implements Recognizer.
func (g *engineGesture) WatchFingers(fn func(int)) func() { return g.engine.WatchFingers(fn) }

// Activity implements Recognizer.
func (g *engineGesture) Activity() *recognizer.Activity { return g.engine.Activity() }

// Close implements Recognizer.
func (g *engineGesture) Close() { g.engine.Close() }

func (g *engineGesture) emit(ev Event) { g.events.Emit(ev) }

var (
	_ Recognizer = (*Pan)(nil)
	_ Recognizer = (*Hold)(nil)
	_ Recognizer = (*Swipe)(nil)
	_ Recognizer = (*Pinch)(nil)
	_ Recognizer = (*Rotate)(nil)
	_ Recognizer = (*Tap)(nil)
)
