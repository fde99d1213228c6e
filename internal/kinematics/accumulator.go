// Package kinematics turns the tick stream of one gesture instance into
// enriched measurements: center, accumulated delta, velocity, rotation and
// pointer spread.
package kinematics

import (
	"github.com/banshee-data/gestures/internal/pointer"
)

// Measurement is the kinematic snapshot carried by every gesture event.
type Measurement struct {
	Center Point `json:"center"`
	// Trigger is the sample that produced this measurement.
	Trigger  pointer.Sample   `json:"trigger"`
	Pointers []pointer.Sample `json:"pointers"`
	Delta    Point            `json:"delta"`
	// Velocity is Delta divided by the instance age, in px/ms.
	Velocity      Point   `json:"velocity"`
	DelayMs       int64   `json:"delay_ms"`
	StartTimeMs   int64   `json:"start_time_ms"`
	DeltaAngleDeg float64 `json:"delta_angle_deg"`
	// PointersAverageDistance is the mean pairwise distance between pointers.
	PointersAverageDistance float64 `json:"pointers_average_distance"`
}

// Accumulator folds the ticks of a single gesture instance. The zero value is
// ready to use; create a new one for every instance.
type Accumulator struct {
	started  bool
	startMs  int64
	center   Point
	delta    Point
	previous []pointer.Sample
	last     Measurement
}

// Step folds tick into the accumulator and returns the measurement for it.
// nowMs is the current time in milliseconds; the first step fixes the start
// time of the instance.
func (a *Accumulator) Step(tick pointer.Tick, nowMs int64) Measurement {
	newCenter := centerOf(tick)

	prevCenter := newCenter
	prevCount := 1
	if a.started {
		prevCenter = a.center
		prevCount = len(a.previous)
	} else {
		a.started = true
		a.startMs = nowMs
	}
	currCount := len(tick.Pointers)
	phase := tick.Sample.Phase

	fingerCountChanged := phase.ChangesMembership() && prevCount != currCount

	// A cancel can follow a stale drag and carry positions that are out of
	// sync with the accumulated state, so it never contributes movement.
	if (fingerCountChanged && currCount > 0) || phase == pointer.PhaseCancel {
		prevCenter = newCenter
	}
	a.delta = a.delta.Add(newCenter.Sub(prevCenter))

	var angle float64
	if prevCount == currCount && currCount >= 2 && phase != pointer.PhaseCancel {
		angle = AngleDelta(a.previous, tick.Pointers)
	}

	a.center = newCenter
	a.previous = tick.Pointers

	a.last = Measurement{
		Center:                  newCenter,
		Trigger:                 tick.Sample,
		Pointers:                tick.Pointers,
		Delta:                   a.delta,
		StartTimeMs:             a.startMs,
		DeltaAngleDeg:           angle,
		PointersAverageDistance: AverageDistance(tick.Pointers),
	}
	return a.At(nowMs)
}

// At returns the latest measurement with its time-dependent fields computed
// for nowMs. It is used when an event fires from a timer rather than a tick.
func (a *Accumulator) At(nowMs int64) Measurement {
	m := a.last
	m.DelayMs = nowMs - a.startMs
	m.Velocity = velocity(m.Delta, m.DelayMs)
	return m
}

// Started reports whether at least one tick has been folded.
func (a *Accumulator) Started() bool {
	return a.started
}

func centerOf(tick pointer.Tick) Point {
	if len(tick.Pointers) == 0 {
		return PointOf(tick.Sample)
	}
	return Centroid(tick.Pointers)
}

func velocity(delta Point, elapsedMs int64) Point {
	if elapsedMs <= 0 {
		return Point{}
	}
	return delta.Scale(1 / float64(elapsedMs))
}
