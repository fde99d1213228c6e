package kinematics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/gestures/internal/pointer"
)

// Point is a position or a 2D vector in surface pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale returns p*k.
func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Len returns the Euclidean length of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// PointOf returns the position of a sample.
func PointOf(s pointer.Sample) Point { return Point{X: s.X, Y: s.Y} }

func coords(samples []pointer.Sample) (xs, ys []float64) {
	xs = make([]float64, len(samples))
	ys = make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.X
		ys[i] = s.Y
	}
	return xs, ys
}

// Centroid returns the mean position of samples, or the origin when empty.
func Centroid(samples []pointer.Sample) Point {
	if len(samples) == 0 {
		return Point{}
	}
	xs, ys := coords(samples)
	return Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
}

// AverageDistance returns the mean pairwise Euclidean distance between
// samples, 0 when fewer than two are given.
func AverageDistance(samples []pointer.Sample) float64 {
	if len(samples) < 2 {
		return 0
	}
	var dists []float64
	for i := 0; i < len(samples); i++ {
		a := []float64{samples[i].X, samples[i].Y}
		for j := i + 1; j < len(samples); j++ {
			b := []float64{samples[j].X, samples[j].Y}
			dists = append(dists, floats.Distance(a, b, 2))
		}
	}
	return floats.Sum(dists) / float64(len(dists))
}

// AngleDelta returns the mean signed rotation, in degrees, between two
// equally sized point sets. Points are matched by position in the slices and
// each is measured around its own set's centroid; every per-point change is
// normalized to [-180, 180] before averaging.
//
// Mismatched lengths are a programming error and panic.
func AngleDelta(previous, current []pointer.Sample) float64 {
	if len(previous) != len(current) {
		panic(fmt.Sprintf("kinematics: angle delta over %d and %d points", len(previous), len(current)))
	}
	if len(current) == 0 {
		return 0
	}
	pc := Centroid(previous)
	cc := Centroid(current)

	deltas := make([]float64, len(current))
	for i := range current {
		before := math.Atan2(previous[i].Y-pc.Y, previous[i].X-pc.X)
		after := math.Atan2(current[i].Y-cc.Y, current[i].X-cc.X)
		deltas[i] = normalizeRadians(after - before)
	}
	return stat.Mean(deltas, nil) * 180 / math.Pi
}

// AngleBetween returns the direction from a to b in degrees: 0 points right,
// 90 down, -90 up and +-180 left (screen coordinates).
func AngleBetween(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

func normalizeRadians(r float64) float64 {
	if r > math.Pi {
		r -= 2 * math.Pi
	} else if r < -math.Pi {
		r += 2 * math.Pi
	}
	return r
}
