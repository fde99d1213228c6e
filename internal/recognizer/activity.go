// Package recognizer holds the shared machinery of the gesture recognizers:
// the generic threshold engine, surface bindings, and the activity signals
// that implement failWith exclusivity.
//
// Everything in this package is single-goroutine. Samples and timer callbacks
// must be delivered on the same goroutine (see timeutil.Loop).
package recognizer

import "github.com/banshee-data/gestures/internal/notify"

// Competitor is a recognizer another one can yield to. It reports whether a
// gesture instance is currently in progress and notifies on every change.
type Competitor interface {
	IsActive() bool
	Watch(fn func(active bool)) (cancel func())
}

// Activity is the start/end signal of one recognizer. It becomes true once the
// recognizer has emitted a start and false once it has emitted the matching
// end.
type Activity struct {
	active   bool
	watchers notify.Emitter[bool]
}

// IsActive implements Competitor.
func (a *Activity) IsActive() bool {
	return a.active
}

// Watch implements Competitor.
func (a *Activity) Watch(fn func(active bool)) func() {
	return a.watchers.Subscribe(fn)
}

// Set records the new state and notifies watchers when it changed.
func (a *Activity) Set(active bool) {
	if a.active == active {
		return
	}
	a.active = active
	a.watchers.Emit(active)
}

// Coordinator derives the blocked signal of a recognizer from its competitors:
// blocked is true while any competitor is active.
type Coordinator struct {
	competitors []Competitor
	cancels     []func()
	blocked     bool
	onChange    func(blocked bool)
}

// NewCoordinator returns a coordinator with no competitors. onChange, if set,
// runs every time the blocked signal flips, inside the competitor's
// notification.
func NewCoordinator(onChange func(blocked bool)) *Coordinator {
	return &Coordinator{onChange: onChange}
}

// Bind replaces the competitor list. The blocked signal is recomputed from the
// competitors' current state straight away.
func (c *Coordinator) Bind(competitors []Competitor) {
	c.unbind()
	c.competitors = append([]Competitor(nil), competitors...)
	for _, comp := range c.competitors {
		if comp == nil {
			continue
		}
		c.cancels = append(c.cancels, comp.Watch(func(bool) { c.refresh() }))
	}
	c.refresh()
}

// Blocked reports whether any competitor is active.
func (c *Coordinator) Blocked() bool {
	return c.blocked
}

// Len returns the number of bound competitors.
func (c *Coordinator) Len() int {
	return len(c.cancels)
}

// Close releases every competitor subscription and clears the blocked signal
// without notifying.
func (c *Coordinator) Close() {
	c.unbind()
	c.competitors = nil
	c.blocked = false
}

func (c *Coordinator) unbind() {
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
}

func (c *Coordinator) refresh() {
	blocked := false
	for _, comp := range c.competitors {
		if comp != nil && comp.IsActive() {
			blocked = true
			break
		}
	}
	if blocked == c.blocked {
		return
	}
	c.blocked = blocked
	if c.onChange != nil {
		c.onChange(blocked)
	}
}
