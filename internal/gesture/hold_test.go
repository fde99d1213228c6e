package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/gestures/internal/testutil"
)

func TestHold_StartsAfterDelayEvenWhenMoving(t *testing.T) {
	t.Parallel()

	s := testutil.NewScript()
	hold := NewHold(s.Clock, HoldOptions{NumInputs: 1, Delay: 500 * time.Millisecond})
	events := record(t, s, hold)

	s.Down(1, 0, 0).At(200).Move(1, 40, 0).At(499)
	assert.Empty(t, events.Items)

	s.At(500).Move(1, 50, 0).At(800).Up(1, 50, 0)
	assertKinds(t, []Type{TypeHoldStart, TypeHoldEnd}, events.Items)
	assert.Equal(t, int64(500), events.Items[0].Meta().DelayMs)
	assert.False(t, events.Items[1].(HoldEvent).Forced)
}

func TestHold_ReleaseBeforeDelay(t *testing.T) {
	t.Parallel()

	s := testutil.NewScript()
	hold := NewHold(s.Clock, HoldOptions{NumInputs: 1, Delay: 500 * time.Millisecond})
	events := record(t, s, hold)

	s.Down(1, 0, 0).At(100).Up(1, 0, 0).At(1000)
	assert.Empty(t, events.Items)
	assert.Equal(t, 0, s.Clock.Pending())
}

func TestHold_TwoFingers(t *testing.T) {
	t.Parallel()

	s := testutil.NewScript()
	hold := NewHold(s.Clock, HoldOptions{NumInputs: 2})
	events := record(t, s, hold)

	s.Down(1, 0, 0)
	assert.Empty(t, events.Items)
	s.Down(2, 10, 0)
	assertKinds(t, []Type{TypeHoldStart}, events.Items)
	assert.Equal(t, 5.0, events.Items[0].Meta().Center.X)
}
