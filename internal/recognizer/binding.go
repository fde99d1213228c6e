package recognizer

import (
	"github.com/banshee-data/gestures/internal/notify"
	"github.com/banshee-data/gestures/internal/pointer"
)

// Binding connects one recognizer to a surface. It owns the recognizer's
// pointer tracker, applies the sample transform, and maintains the live
// finger count.
type Binding struct {
	tracker   *pointer.Tracker
	transform pointer.Transform

	surface pointer.Surface
	stop    func()

	fingers  int
	watchers notify.Emitter[int]

	onTick   func(pointer.Tick)
	onDetach func()
}

// NewBinding returns an unattached binding. onTick receives every tick of the
// tracker; onDetach, if set, runs after the tracker was cleared on detach or
// surface change.
func NewBinding(trackMovement bool, onTick func(pointer.Tick), onDetach func()) *Binding {
	return &Binding{
		tracker:  pointer.NewTracker(trackMovement),
		onTick:   onTick,
		onDetach: onDetach,
	}
}

// Attach starts listening to s. Attaching the surface already bound is a
// no-op; a different surface replaces the old one and nil detaches.
func (b *Binding) Attach(s pointer.Surface) {
	if s != nil && s == b.surface {
		return
	}
	b.detach()
	if s == nil {
		return
	}
	b.surface = s
	b.stop = s.Listen(b.handle)
}

// Surface returns the bound surface, nil when dormant.
func (b *Binding) Surface() pointer.Surface {
	return b.surface
}

// SetTransform installs the hook applied to samples before tracking.
func (b *Binding) SetTransform(t pointer.Transform) {
	b.transform = t
}

// Origin returns the down sample of an active pointer.
func (b *Binding) Origin(id int) (pointer.Sample, bool) {
	return b.tracker.Origin(id)
}

// Fingers returns the number of active pointers.
func (b *Binding) Fingers() int {
	return b.fingers
}

// WatchFingers registers fn for every change of the finger count.
func (b *Binding) WatchFingers(fn func(fingers int)) (cancel func()) {
	return b.watchers.Subscribe(fn)
}

// Close detaches from the surface.
func (b *Binding) Close() {
	b.detach()
}

func (b *Binding) detach() {
	if b.stop == nil {
		return
	}
	b.stop()
	b.stop = nil
	b.surface = nil
	b.tracker.Reset()
	b.setFingers(0)
	if b.onDetach != nil {
		b.onDetach()
	}
}

func (b *Binding) handle(s pointer.Sample) {
	s, ok := b.transform.Apply(s)
	if !ok {
		return
	}
	tick, ok := b.tracker.Track(s)
	if !ok {
		return
	}
	b.setFingers(tick.Count())
	if b.onTick != nil {
		b.onTick(tick)
	}
}

func (b *Binding) setFingers(n int) {
	if n == b.fingers {
		return
	}
	b.fingers = n
	b.watchers.Emit(n)
}
