package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/gestures/internal/pointer"
)

func down(id int, x, y float64) pointer.Sample {
	return pointer.Sample{ID: id, X: x, Y: y, Phase: pointer.PhaseDown}
}

func move(id int, x, y float64) pointer.Sample {
	return pointer.Sample{ID: id, X: x, Y: y, Phase: pointer.PhaseMove}
}

func up(id int, x, y float64) pointer.Sample {
	return pointer.Sample{ID: id, X: x, Y: y, Phase: pointer.PhaseUp}
}

// fold runs samples through a tracker and an accumulator, stepping the clock
// by the given millisecond offsets.
func fold(t *testing.T, samples []pointer.Sample, times []int64) []Measurement {
	t.Helper()
	require.Len(t, times, len(samples))

	tr := pointer.NewTracker(true)
	var acc Accumulator
	var out []Measurement
	for i, s := range samples {
		tick, ok := tr.Track(s)
		require.True(t, ok, "sample %d produced no tick", i)
		out = append(out, acc.Step(tick, times[i]))
	}
	return out
}

func TestCentroid(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Point{}, Centroid(nil))
	assert.Equal(t, Point{X: 3, Y: 4}, Centroid([]pointer.Sample{down(1, 3, 4)}))
	assert.Equal(t, Point{X: 1, Y: 2}, Centroid([]pointer.Sample{down(1, 0, 0), down(2, 2, 4)}))
}

func TestAverageDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pts  []pointer.Sample
		want float64
	}{
		{"none", nil, 0},
		{"single", []pointer.Sample{down(1, 5, 5)}, 0},
		{"pair", []pointer.Sample{down(1, 0, 0), down(2, 3, 4)}, 5},
		{"triangle", []pointer.Sample{down(1, 0, 0), down(2, 3, 0), down(3, 0, 4)}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AverageDistance(tt.pts), 1e-9)
		})
	}
}

func TestAngleDelta(t *testing.T) {
	t.Parallel()

	before := []pointer.Sample{down(1, -1, 0), down(2, 1, 0)}
	after := []pointer.Sample{move(1, 0, -1), move(2, 0, 1)}
	assert.InDelta(t, 90, AngleDelta(before, after), 1e-9)
	assert.InDelta(t, -90, AngleDelta(after, before), 1e-9)

	// Translating the whole set is not a rotation.
	shifted := []pointer.Sample{move(1, 9, 5), move(2, 11, 5)}
	assert.InDelta(t, 0, AngleDelta(before, shifted), 1e-9)

	// Crossing the +-180 seam takes the short way round.
	a := []pointer.Sample{down(1, -1, 0.01), down(2, 1, -0.01)}
	b := []pointer.Sample{move(1, -1, -0.01), move(2, 1, 0.01)}
	assert.Less(t, math.Abs(AngleDelta(a, b)), 2.0)

	assert.Panics(t, func() { AngleDelta(before, after[:1]) })
}

func TestAngleBetween(t *testing.T) {
	t.Parallel()

	o := Point{}
	assert.InDelta(t, 0, AngleBetween(o, Point{X: 1}), 1e-9)
	assert.InDelta(t, 90, AngleBetween(o, Point{Y: 1}), 1e-9)
	assert.InDelta(t, -90, AngleBetween(o, Point{Y: -1}), 1e-9)
	assert.InDelta(t, 180, math.Abs(AngleBetween(o, Point{X: -1})), 1e-9)
}

func TestAccumulator_SinglePointer(t *testing.T) {
	t.Parallel()

	ms := fold(t,
		[]pointer.Sample{down(1, 0, 0), move(1, 5, 0), up(1, 20, 0)},
		[]int64{0, 10, 20},
	)

	assert.Equal(t, Point{}, ms[0].Delta)
	assert.Equal(t, Point{}, ms[0].Velocity, "no elapsed time, no velocity")
	assert.Equal(t, Point{X: 5}, ms[1].Center)
	assert.Equal(t, Point{X: 5}, ms[1].Delta)

	last := ms[2]
	assert.Empty(t, last.Pointers)
	assert.Equal(t, Point{X: 20}, last.Center, "empty set falls back to the trigger")
	assert.Equal(t, Point{X: 20}, last.Delta)
	assert.InDelta(t, 1.0, last.Velocity.X, 1e-9)
	assert.Equal(t, int64(20), last.DelayMs)
	assert.Equal(t, int64(0), last.StartTimeMs)
}

func TestAccumulator_FingerChangesDoNotJump(t *testing.T) {
	t.Parallel()

	ms := fold(t,
		[]pointer.Sample{
			down(1, 0, 0),
			move(1, 10, 0),
			down(2, 110, 0), // centroid jumps to 60 but delta must not
			move(2, 120, 0),
			up(2, 120, 0), // centroid falls back to 10
			move(1, 15, 0),
		},
		[]int64{0, 1, 2, 3, 4, 5},
	)

	deltas := make([]float64, len(ms))
	for i, m := range ms {
		deltas[i] = m.Delta.X
	}
	assert.Equal(t, []float64{0, 10, 10, 15, 15, 20}, deltas)
}

func TestAccumulator_CancelRebases(t *testing.T) {
	t.Parallel()

	tr := pointer.NewTracker(true)
	var acc Accumulator
	step := func(s pointer.Sample) Measurement {
		tick, ok := tr.Track(s)
		require.True(t, ok)
		return acc.Step(tick, 1)
	}
	step(down(1, 0, 0))
	step(down(2, 10, 0))
	m := step(move(2, 20, 0))
	assert.Equal(t, 5.0, m.Delta.X)

	// The cancelled sample carries a stale position.
	m = step(pointer.Sample{ID: 1, X: 500, Phase: pointer.PhaseCancel})
	assert.Equal(t, 5.0, m.Delta.X)
	assert.Zero(t, m.DeltaAngleDeg)
}

func TestAccumulator_CancelOfLastPointerStillRebases(t *testing.T) {
	t.Parallel()

	ms := fold(t,
		[]pointer.Sample{down(1, 0, 0), {ID: 1, X: 300, Phase: pointer.PhaseCancel}},
		[]int64{0, 5},
	)
	assert.Equal(t, Point{}, ms[1].Delta)
}

func TestAccumulator_Rotation(t *testing.T) {
	t.Parallel()

	ms := fold(t,
		[]pointer.Sample{
			down(1, -10, 0),
			down(2, 10, 0),
			move(1, 0, -10),
			move(2, 0, 10),
		},
		[]int64{0, 0, 1, 2},
	)

	assert.Zero(t, ms[1].DeltaAngleDeg, "count changed, no angle")
	// Each move turns the pair by 45 degrees.
	total := ms[2].DeltaAngleDeg + ms[3].DeltaAngleDeg
	assert.InDelta(t, 90, total, 1e-9)
	assert.InDelta(t, 20, ms[3].PointersAverageDistance, 1e-9)
}

func TestAccumulator_At(t *testing.T) {
	t.Parallel()

	var acc Accumulator
	assert.False(t, acc.Started())

	tr := pointer.NewTracker(true)
	tick, _ := tr.Track(down(1, 0, 0))
	acc.Step(tick, 100)
	tick, _ = tr.Track(move(1, 30, 0))
	m := acc.Step(tick, 110)
	assert.InDelta(t, 3.0, m.Velocity.X, 1e-9)

	later := acc.At(130)
	assert.True(t, acc.Started())
	assert.Equal(t, int64(30), later.DelayMs)
	assert.Equal(t, int64(100), later.StartTimeMs)
	assert.InDelta(t, 1.0, later.Velocity.X, 1e-9)
	assert.Equal(t, m.Delta, later.Delta)
}
