package recognizable

import (
	"fmt"

	"github.com/banshee-data/gestures/internal/config"
	"github.com/banshee-data/gestures/internal/gesture"
	"github.com/banshee-data/gestures/internal/monitoring"
	"github.com/banshee-data/gestures/internal/recognizer"
	"github.com/banshee-data/gestures/internal/timeutil"
)

// wireFunc installs competitors on a freshly built recognizer while keeping
// the options it was built with.
type wireFunc func(failWith []recognizer.Competitor)

// FromConfig builds the recognizers enabled in cfg, registers them in
// config.KnownRecognizers order and wires fail_with by name. A nil cfg uses
// the code defaults. Competitors that are not enabled are skipped with a log
// line.
func FromConfig(cfg *config.GestureConfig, sched timeutil.Scheduler) (*Recognizable, error) {
	if cfg == nil {
		cfg = config.DefaultGestureConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gesture config: %w", err)
	}

	a := New()
	wires := make(map[string]wireFunc)
	for _, name := range cfg.Enabled() {
		r, wire := build(name, cfg, sched)
		if r == nil {
			a.Close()
			return nil, fmt.Errorf("no builder for recognizer %q", name)
		}
		if err := a.Register(name, r); err != nil {
			a.Close()
			return nil, err
		}
		wires[name] = wire
	}

	for _, name := range a.Names() {
		var competitors []recognizer.Competitor
		for _, other := range cfg.GetFailWith(name) {
			r, ok := a.Get(other)
			if !ok {
				monitoring.Logf("recognizable: %s fails with %s, which is not enabled", name, other)
				continue
			}
			competitors = append(competitors, r.Activity())
		}
		if len(competitors) > 0 {
			wires[name](competitors)
		}
	}
	return a, nil
}

func build(name string, cfg *config.GestureConfig, sched timeutil.Scheduler) (gesture.Recognizer, wireFunc) {
	switch name {
	case config.RecognizerTap:
		opts := gesture.TapOptionsFromTuning(cfg)
		r := gesture.NewTap(sched, opts)
		return r, func(c []recognizer.Competitor) { opts.FailWith = c; r.Update(opts) }
	case config.RecognizerPan:
		opts := gesture.PanOptionsFromTuning(cfg)
		r := gesture.NewPan(sched, opts)
		return r, func(c []recognizer.Competitor) { opts.FailWith = c; r.Update(opts) }
	case config.RecognizerSwipe:
		opts := gesture.SwipeOptionsFromTuning(cfg)
		r := gesture.NewSwipe(sched, opts)
		return r, func(c []recognizer.Competitor) { opts.FailWith = c; r.Update(opts) }
	case config.RecognizerPinch:
		opts := gesture.PinchOptionsFromTuning(cfg)
		r := gesture.NewPinch(sched, opts)
		return r, func(c []recognizer.Competitor) { opts.FailWith = c; r.Update(opts) }
	case config.RecognizerRotate:
		opts := gesture.RotateOptionsFromTuning(cfg)
		r := gesture.NewRotate(sched, opts)
		return r, func(c []recognizer.Competitor) { opts.FailWith = c; r.Update(opts) }
	case config.RecognizerHold:
		opts := gesture.HoldOptionsFromTuning(cfg)
		r := gesture.NewHold(sched, opts)
		return r, func(c []recognizer.Competitor) { opts.FailWith = c; r.Update(opts) }
	}
	return nil, nil
}
