package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/banshee-data/gestures/internal/config"
	"github.com/banshee-data/gestures/internal/gesture"
	"github.com/banshee-data/gestures/internal/kinematics"
	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/recognizable"
	"github.com/banshee-data/gestures/internal/timeutil"
	"github.com/banshee-data/gestures/internal/units"
)

type replayOptions struct {
	Config *config.GestureConfig
	Units  string
	// Tail is how far the clock runs past the last sample.
	Tail time.Duration
}

type replayStats struct {
	Samples int
	Events  int
	Span    time.Duration
}

// replay reads a recording from r and writes one JSON line per gesture event
// to w. The clock starts at the first sample and jumps to each sample's
// timestamp before it is delivered, firing the timers that fall in between.
func replay(r io.Reader, w io.Writer, opts replayOptions) (replayStats, error) {
	var stats replayStats

	samples, err := pointer.ReadRecording(r)
	if err != nil {
		return stats, fmt.Errorf("failed to read recording: %w", err)
	}
	stats.Samples = len(samples)
	if len(samples) == 0 {
		return stats, nil
	}

	start := time.UnixMilli(samples[0].TimestampMs)
	clock := timeutil.NewMockClock(start)
	agg, err := recognizable.FromConfig(opts.Config, clock)
	if err != nil {
		return stats, err
	}
	defer agg.Close()

	enc := json.NewEncoder(w)
	var writeErr error
	agg.Subscribe(func(ev gesture.Event) {
		if writeErr != nil {
			return
		}
		if err := enc.Encode(withVelocityUnits(ev, opts.Units)); err != nil {
			writeErr = fmt.Errorf("failed to write event %d: %w", stats.Events, err)
			return
		}
		stats.Events++
	})

	feed := pointer.NewFeed()
	agg.Attach(feed)
	for _, s := range samples {
		clock.AdvanceTo(time.UnixMilli(s.TimestampMs))
		feed.Push(s)
		if writeErr != nil {
			return stats, writeErr
		}
	}
	clock.Advance(opts.Tail)
	stats.Span = clock.Since(start)
	return stats, writeErr
}

// withVelocityUnits returns ev with its velocity expressed in u.
func withVelocityUnits(ev gesture.Event, u string) gesture.Event {
	convert := func(b *gesture.Base) {
		b.Velocity = kinematics.Point{
			X: units.ConvertVelocity(b.Velocity.X, u),
			Y: units.ConvertVelocity(b.Velocity.Y, u),
		}
	}
	switch e := ev.(type) {
	case gesture.PanEvent:
		convert(&e.Base)
		return e
	case gesture.HoldEvent:
		convert(&e.Base)
		return e
	case gesture.SwipeEvent:
		convert(&e.Base)
		return e
	case gesture.PinchEvent:
		convert(&e.Base)
		return e
	case gesture.RotateEvent:
		convert(&e.Base)
		return e
	case gesture.TapEvent:
		convert(&e.Base)
		return e
	}
	return ev
}
