package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/gestures/internal/recognizer"
	"github.com/banshee-data/gestures/internal/testutil"
)

// flick is a 20px drag to the right over 20ms: 1.0 px/ms at release.
func flick(s *testutil.Script) {
	s.At(0).Down(1, 0, 0).At(10).Move(1, 5, 0).At(20).Up(1, 20, 0)
}

func TestSwipe_EscapeVelocity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		escapeVelocity float64
		wantSwipes     int
	}{
		{"slow threshold", 0.4, 1},
		{"exact velocity", 1.0, 1},
		{"fast threshold", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.NewScript()
			swipe := NewSwipe(s.Clock, SwipeOptions{EscapeVelocity: tt.escapeVelocity})
			events := record(t, s, swipe)

			flick(s)
			require.Equal(t, tt.wantSwipes, events.Len())
			if tt.wantSwipes == 0 {
				return
			}
			ev := events.Items[0].(SwipeEvent)
			assert.Equal(t, TypeSwipe, ev.Type)
			assert.InDelta(t, 1.0, ev.Velocity.X, 1e-9)
			assert.InDelta(t, 0, ev.Angle, 1e-9)
			assert.Equal(t, 20.0, ev.Delta.X)
		})
	}
}

func TestSwipe_Angle(t *testing.T) {
	t.Parallel()

	s := testutil.NewScript()
	swipe := NewSwipe(s.Clock, DefaultSwipeOptions())
	events := record(t, s, swipe)

	s.Down(1, 50, 50).At(10).Up(1, 50, 20)
	require.Equal(t, 1, events.Len())
	assert.InDelta(t, -90, events.Items[0].(SwipeEvent).Angle, 1e-9, "upwards is -90")
}

func TestSwipe_UpdateEscapeVelocity(t *testing.T) {
	t.Parallel()

	s := testutil.NewScript()
	swipe := NewSwipe(s.Clock, SwipeOptions{EscapeVelocity: 10})
	events := record(t, s, swipe)

	flick(s)
	assert.Empty(t, events.Items)

	swipe.Update(SwipeOptions{EscapeVelocity: 0.4})
	s.At(100).Down(1, 0, 0).At(110).Move(1, 5, 0).At(120).Up(1, 20, 0)
	assert.Equal(t, 1, events.Len())
}

func TestSwipe_NothingWhenForceEnded(t *testing.T) {
	t.Parallel()

	var competitor recognizer.Activity
	s := testutil.NewScript()
	swipe := NewSwipe(s.Clock, SwipeOptions{EscapeVelocity: 0.1, FailWith: []recognizer.Competitor{&competitor}})
	events := record(t, s, swipe)

	s.Down(1, 0, 0).At(10).Move(1, 50, 0)
	competitor.Set(true)
	competitor.Set(false)
	s.At(20).Up(1, 100, 0)
	assert.Empty(t, events.Items)
}
