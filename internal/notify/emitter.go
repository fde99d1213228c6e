// Package notify provides the synchronous subscriber list shared by pointer
// feeds, recognizers and the aggregate.
package notify

// Emitter delivers values to subscribers synchronously, in subscription order.
// The zero value is ready to use.
type Emitter[T any] struct {
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it. Cancelling
// twice is harmless.
func (e *Emitter[T]) Subscribe(fn func(T)) (cancel func()) {
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscriber[T]{id: id, fn: fn})
	return func() { e.remove(id) }
}

// Emit delivers v to the subscribers registered before the call. Subscribers
// cancelled during delivery are skipped.
func (e *Emitter[T]) Emit(v T) {
	if len(e.subs) == 0 {
		return
	}
	snapshot := make([]subscriber[T], len(e.subs))
	copy(snapshot, e.subs)
	for _, s := range snapshot {
		if e.has(s.id) {
			s.fn(v)
		}
	}
}

// Len returns the number of subscribers.
func (e *Emitter[T]) Len() int {
	return len(e.subs)
}

func (e *Emitter[T]) has(id uint64) bool {
	for _, s := range e.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

func (e *Emitter[T]) remove(id uint64) {
	for i, s := range e.subs {
		if s.id == id {
			e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
			return
		}
	}
}
