package pointer

// Tick is emitted once per tracked sample: the sample itself plus the active
// pointers after it was applied.
type Tick struct {
	Sample Sample
	// Pointers holds the latest sample of each active pointer, ordered by the
	// time each pointer went down. The slice is never shared between ticks.
	Pointers []Sample
}

// Count returns the number of active pointers in the tick.
func (t Tick) Count() int {
	return len(t.Pointers)
}

// Tracker maintains the active pointer set of one surface.
//
// The set holds exactly the ids that received a down not yet followed by up,
// cancel or leave. A Tracker is owned by a single recognizer and is not safe
// for concurrent use.
type Tracker struct {
	// TrackMovement controls whether move samples refresh stored positions.
	// Consumers that only need counts can leave positions frozen at down time.
	TrackMovement bool

	order   []int
	latest  map[int]Sample
	origins map[int]Sample
}

// NewTracker returns an empty tracker.
func NewTracker(trackMovement bool) *Tracker {
	return &Tracker{
		TrackMovement: trackMovement,
		latest:        make(map[int]Sample),
		origins:       make(map[int]Sample),
	}
}

// Track applies s and returns the resulting tick. Moves and terminal samples
// for pointers that are not active are ignored and report ok=false.
func (t *Tracker) Track(s Sample) (tick Tick, ok bool) {
	switch {
	case s.Phase == PhaseDown:
		if _, live := t.latest[s.ID]; !live {
			t.order = append(t.order, s.ID)
		}
		t.latest[s.ID] = s
		t.origins[s.ID] = s
	case s.Phase == PhaseMove:
		if _, live := t.latest[s.ID]; !live {
			return Tick{}, false
		}
		if t.TrackMovement {
			t.latest[s.ID] = s
		}
	case s.Phase.IsTerminal():
		if !t.remove(s.ID) {
			return Tick{}, false
		}
	default:
		return Tick{}, false
	}
	return Tick{Sample: s, Pointers: t.Snapshot()}, true
}

// Snapshot returns a copy of the active pointers in down order.
func (t *Tracker) Snapshot() []Sample {
	out := make([]Sample, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.latest[id])
	}
	return out
}

// Origin returns the down sample of an active pointer.
func (t *Tracker) Origin(id int) (Sample, bool) {
	s, ok := t.origins[id]
	return s, ok
}

// Len returns the number of active pointers.
func (t *Tracker) Len() int {
	return len(t.order)
}

// Reset forgets every active pointer.
func (t *Tracker) Reset() {
	t.order = t.order[:0]
	clear(t.latest)
	clear(t.origins)
}

func (t *Tracker) remove(id int) bool {
	if _, live := t.latest[id]; !live {
		return false
	}
	delete(t.latest, id)
	delete(t.origins, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}
