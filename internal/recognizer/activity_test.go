package recognizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivity_NotifiesOnChangeOnly(t *testing.T) {
	t.Parallel()

	var a Activity
	var seen []bool
	cancel := a.Watch(func(active bool) {
		assert.Equal(t, active, a.IsActive(), "state is updated before watchers run")
		seen = append(seen, active)
	})

	a.Set(false)
	a.Set(true)
	a.Set(true)
	a.Set(false)
	assert.Equal(t, []bool{true, false}, seen)

	cancel()
	a.Set(true)
	assert.Len(t, seen, 2)
}

func TestCoordinator(t *testing.T) {
	t.Parallel()

	var a, b Activity
	var flips []bool
	c := NewCoordinator(func(blocked bool) { flips = append(flips, blocked) })
	assert.False(t, c.Blocked(), "no competitors, never blocked")

	c.Bind([]Competitor{&a, nil, &b})
	assert.Equal(t, 2, c.Len())

	a.Set(true)
	b.Set(true)
	a.Set(false)
	assert.True(t, c.Blocked(), "still blocked while b is active")
	b.Set(false)
	assert.False(t, c.Blocked())
	assert.Equal(t, []bool{true, false}, flips)

	// Rebinding to an active competitor blocks straight away.
	a.Set(true)
	flips = nil
	c.Bind([]Competitor{&b})
	assert.False(t, c.Blocked())
	c.Bind([]Competitor{&a})
	assert.True(t, c.Blocked())
	assert.Equal(t, []bool{false, true}, flips)

	c.Close()
	assert.False(t, c.Blocked())
	assert.Equal(t, 0, c.Len())
	a.Set(false)
	assert.Equal(t, []bool{false, true}, flips)
}
