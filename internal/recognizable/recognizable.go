// Package recognizable aggregates a set of recognizers behind one surface: a
// merged event stream, a combined finger count and a single attach point.
package recognizable

import (
	"fmt"
	"slices"

	"github.com/banshee-data/gestures/internal/gesture"
	"github.com/banshee-data/gestures/internal/notify"
	"github.com/banshee-data/gestures/internal/pointer"
)

// State is the combined runtime state of the members.
type State struct {
	// Fingers is the largest finger count reported by any member.
	Fingers int `json:"fingers"`
}

// Shared holds the options pushed to every member by Reconfigure.
type Shared struct {
	Transform pointer.Transform
}

type member struct {
	name    string
	r       gesture.Recognizer
	fingers int
	cancels []func()
}

// Recognizable owns a registry of named recognizers. Members keep their own
// trackers and timers; the aggregate only forwards. It is not safe for
// concurrent use; drive it from the goroutine that feeds its surface.
type Recognizable struct {
	members []*member
	byName  map[string]*member

	events notify.Emitter[gesture.Event]
	states notify.Emitter[State]
	state  State

	surface pointer.Surface
	shared  Shared
}

// New returns an empty aggregate.
func New() *Recognizable {
	return &Recognizable{byName: make(map[string]*member)}
}

// Register adds r under name. The member is attached to the current surface
// and receives the current shared options. Names must be unique.
func (a *Recognizable) Register(name string, r gesture.Recognizer) error {
	if name == "" {
		return fmt.Errorf("register recognizer: empty name")
	}
	if r == nil {
		return fmt.Errorf("register recognizer %q: nil recognizer", name)
	}
	if _, exists := a.byName[name]; exists {
		return fmt.Errorf("register recognizer %q: already registered", name)
	}

	m := &member{name: name, r: r, fingers: r.Fingers()}
	m.cancels = append(m.cancels,
		r.Subscribe(a.events.Emit),
		r.WatchFingers(func(n int) {
			m.fingers = n
			a.recompute()
		}),
	)
	a.members = append(a.members, m)
	a.byName[name] = m

	r.SetTransform(a.shared.Transform)
	r.Attach(a.surface)
	a.recompute()
	return nil
}

// Get returns the member registered under name.
func (a *Recognizable) Get(name string) (gesture.Recognizer, bool) {
	m, ok := a.byName[name]
	if !ok {
		return nil, false
	}
	return m.r, true
}

// Names returns the member names in registration order.
func (a *Recognizable) Names() []string {
	names := make([]string, len(a.members))
	for i, m := range a.members {
		names[i] = m.name
	}
	return names
}

// Subscribe registers fn for the events of every member, in the order the
// members emit them.
func (a *Recognizable) Subscribe(fn func(gesture.Event)) (cancel func()) {
	return a.events.Subscribe(fn)
}

// State returns the current combined state.
func (a *Recognizable) State() State {
	return a.state
}

// WatchState registers fn for every change of State.
func (a *Recognizable) WatchState(fn func(State)) (cancel func()) {
	return a.states.Subscribe(fn)
}

// Attach binds every member to s. Attaching the surface already bound is a
// no-op; nil detaches.
func (a *Recognizable) Attach(s pointer.Surface) {
	a.surface = s
	for _, m := range a.members {
		m.r.Attach(s)
	}
}

// Surface returns the surface the members are bound to.
func (a *Recognizable) Surface() pointer.Surface {
	return a.surface
}

// Reconfigure pushes shared options to every member and to members
// registered later.
func (a *Recognizable) Reconfigure(sh Shared) {
	a.shared = sh
	for _, m := range a.members {
		m.r.SetTransform(sh.Transform)
	}
}

// Close detaches and closes every member and drops their subscriptions.
func (a *Recognizable) Close() {
	for _, m := range slices.Backward(a.members) {
		for _, cancel := range m.cancels {
			cancel()
		}
		m.r.Close()
	}
	a.members = nil
	clear(a.byName)
	a.surface = nil
	a.setFingers(0)
}

func (a *Recognizable) recompute() {
	most := 0
	for _, m := range a.members {
		most = max(most, m.fingers)
	}
	a.setFingers(most)
}

func (a *Recognizable) setFingers(n int) {
	if a.state.Fingers == n {
		return
	}
	a.state = State{Fingers: n}
	a.states.Emit(a.state)
}
