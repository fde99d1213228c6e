package gesture

import (
	"math"

	"github.com/banshee-data/gestures/internal/kinematics"
	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/recognizer"
	"github.com/banshee-data/gestures/internal/timeutil"
)

// SwipeOptions configures Swipe.
type SwipeOptions struct {
	// EscapeVelocity is the speed, in px/ms on either axis, a pan must reach
	// at release to count as a swipe.
	EscapeVelocity float64
	FailWith       []recognizer.Competitor
}

// DefaultSwipeOptions returns the swipe defaults: 0.9 px/ms.
func DefaultSwipeOptions() SwipeOptions {
	return SwipeOptions{EscapeVelocity: 0.9}
}

func (o SwipeOptions) engine() recognizer.Options {
	return recognizer.Options{NumInputs: 1, FailWith: o.FailWith}
}

// Swipe watches single pointer pans and emits one swipe when a pan is
// released fast enough. A pan ended by a competitor never swipes.
type Swipe struct {
	engineGesture
	escapeVelocity float64
	start          pointer.Sample
}

// NewSwipe returns an unattached swipe recognizer.
func NewSwipe(sched timeutil.Scheduler, opts SwipeOptions) *Swipe {
	s := &Swipe{escapeVelocity: opts.EscapeVelocity}
	s.engineGesture = newEngineGesture("swipe", sched, opts.engine(), s.handle)
	return s
}

// Configure attaches to surface and applies opts.
func (s *Swipe) Configure(surface pointer.Surface, opts SwipeOptions) {
	s.Update(opts)
	s.Attach(surface)
}

// Update swaps the options. The escape velocity applies to the next release.
func (s *Swipe) Update(opts SwipeOptions) {
	s.escapeVelocity = opts.EscapeVelocity
	s.engine.Update(opts.engine())
}

func (s *Swipe) handle(ev recognizer.Event) {
	switch ev.Stage {
	case recognizer.StageStart:
		s.start = ev.Trigger
	case recognizer.StageEnd:
		if ev.Forced || !s.escaped(ev.Velocity) {
			return
		}
		s.emit(SwipeEvent{
			Base:  baseOf(TypeSwipe, ev),
			Angle: kinematics.AngleBetween(kinematics.PointOf(s.start), kinematics.PointOf(ev.Trigger)),
		})
	}
}

func (s *Swipe) escaped(v kinematics.Point) bool {
	return math.Abs(v.X) >= s.escapeVelocity || math.Abs(v.Y) >= s.escapeVelocity
}
