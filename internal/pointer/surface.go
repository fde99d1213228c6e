package pointer

import "github.com/banshee-data/gestures/internal/notify"

// Surface delivers samples in arrival order, guaranteeing that a down
// precedes any other phase for the same id.
type Surface interface {
	// Listen registers fn for every subsequent sample and returns a function
	// that unregisters it. Stopping more than once is harmless.
	Listen(fn func(Sample)) (stop func())
}

// Feed is an in-process Surface: every pushed sample is delivered
// synchronously to the registered listeners, in registration order.
type Feed struct {
	listeners notify.Emitter[Sample]
}

// NewFeed returns a feed with no listeners.
func NewFeed() *Feed {
	return &Feed{}
}

// Listen implements Surface.
func (f *Feed) Listen(fn func(Sample)) func() {
	return f.listeners.Subscribe(fn)
}

// Push delivers s to every listener registered before the call. Listeners
// stopped during delivery are skipped.
func (f *Feed) Push(s Sample) {
	f.listeners.Emit(s)
}

// PushAll delivers samples in order.
func (f *Feed) PushAll(samples ...Sample) {
	for _, s := range samples {
		f.Push(s)
	}
}

// Listeners returns the number of registered listeners.
func (f *Feed) Listeners() int {
	return f.listeners.Len()
}

// Transform rewrites a sample before it reaches a tracker, for example to map
// surface coordinates. Returning ok=false drops the sample.
type Transform func(Sample) (out Sample, ok bool)

// Apply runs t on s; a nil Transform passes samples through unchanged.
func (t Transform) Apply(s Sample) (Sample, bool) {
	if t == nil {
		return s, true
	}
	return t(s)
}
