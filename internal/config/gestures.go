package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// DefaultConfigPath is the path to the canonical gesture defaults file.
const DefaultConfigPath = "config/gestures.defaults.json"

// Recognizer names accepted in "recognizers" and "fail_with".
const (
	RecognizerTap    = "tap"
	RecognizerPan    = "pan"
	RecognizerSwipe  = "swipe"
	RecognizerPinch  = "pinch"
	RecognizerRotate = "rotate"
	RecognizerHold   = "hold"
)

// KnownRecognizers lists every recognizer name in registration order.
var KnownRecognizers = []string{
	RecognizerTap,
	RecognizerPan,
	RecognizerSwipe,
	RecognizerPinch,
	RecognizerRotate,
	RecognizerHold,
}

// GestureConfig is the root configuration for the gesture recognizers.
// Nil fields fall back to the code defaults returned by the Get* accessors, so
// a partial file is always safe.
type GestureConfig struct {
	// Recognizers selects which recognizers are built, by name. Empty means
	// all of KnownRecognizers.
	Recognizers []string `json:"recognizers,omitempty"`
	// FailWith maps a recognizer name to the names it yields to.
	FailWith map[string][]string `json:"fail_with,omitempty"`

	// Pan
	PanPosThreshold *float64 `json:"pan_pos_threshold,omitempty"`
	PanDelay        *string  `json:"pan_delay,omitempty"` // duration string like "100ms"
	PanNumInputs    *int     `json:"pan_num_inputs,omitempty"`

	// Hold
	HoldDelay     *string `json:"hold_delay,omitempty"`
	HoldNumInputs *int    `json:"hold_num_inputs,omitempty"`

	// Swipe, in px/ms
	SwipeEscapeVelocity *float64 `json:"swipe_escape_velocity,omitempty"`

	// Pinch and rotate
	PinchPosThreshold  *float64 `json:"pinch_pos_threshold,omitempty"`
	RotatePosThreshold *float64 `json:"rotate_pos_threshold,omitempty"`

	// Tap
	TapMaxTaps           *int     `json:"tap_max_taps,omitempty"`
	TapMultiTapThreshold *string  `json:"tap_multi_tap_threshold,omitempty"`
	TapMaximumPressTime  *string  `json:"tap_maximum_press_time,omitempty"`
	TapTolerance         *float64 `json:"tap_tolerance,omitempty"`
}

// EmptyGestureConfig returns a GestureConfig with all fields unset.
func EmptyGestureConfig() *GestureConfig {
	return &GestureConfig{}
}

// LoadGestureConfig loads a GestureConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadGestureConfig(path string) (*GestureConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyGestureConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents. Panics if the file cannot
// be loaded, intended for test setup.
func MustLoadDefaultConfig() *GestureConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadGestureConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *GestureConfig) Validate() error {
	for _, name := range c.Recognizers {
		if !slices.Contains(KnownRecognizers, name) {
			return fmt.Errorf("unknown recognizer %q in recognizers", name)
		}
	}
	for name, competitors := range c.FailWith {
		if !slices.Contains(KnownRecognizers, name) {
			return fmt.Errorf("unknown recognizer %q in fail_with", name)
		}
		for _, other := range competitors {
			if !slices.Contains(KnownRecognizers, other) {
				return fmt.Errorf("unknown recognizer %q in fail_with[%s]", other, name)
			}
			if other == name {
				return fmt.Errorf("recognizer %q cannot fail with itself", name)
			}
		}
	}

	nonNegative := map[string]*float64{
		"pan_pos_threshold":     c.PanPosThreshold,
		"pinch_pos_threshold":   c.PinchPosThreshold,
		"rotate_pos_threshold":  c.RotatePosThreshold,
		"swipe_escape_velocity": c.SwipeEscapeVelocity,
		"tap_tolerance":         c.TapTolerance,
	}
	for _, key := range sortedKeys(nonNegative) {
		if v := nonNegative[key]; v != nil && *v < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", key, *v)
		}
	}

	positive := map[string]*int{
		"pan_num_inputs":  c.PanNumInputs,
		"hold_num_inputs": c.HoldNumInputs,
		"tap_max_taps":    c.TapMaxTaps,
	}
	for _, key := range sortedKeys(positive) {
		if v := positive[key]; v != nil && *v < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", key, *v)
		}
	}

	durations := map[string]*string{
		"pan_delay":               c.PanDelay,
		"hold_delay":              c.HoldDelay,
		"tap_multi_tap_threshold": c.TapMultiTapThreshold,
		"tap_maximum_press_time":  c.TapMaximumPressTime,
	}
	for _, key := range sortedKeys(durations) {
		v := durations[key]
		if v == nil || *v == "" {
			continue
		}
		d, err := time.ParseDuration(*v)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", key, *v, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must be non-negative, got %s", key, d)
		}
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Enabled returns the recognizer names to build, in KnownRecognizers order.
func (c *GestureConfig) Enabled() []string {
	if len(c.Recognizers) == 0 {
		return slices.Clone(KnownRecognizers)
	}
	var out []string
	for _, name := range KnownRecognizers {
		if slices.Contains(c.Recognizers, name) {
			out = append(out, name)
		}
	}
	return out
}

// GetFailWith returns the competitor names of recognizer name.
func (c *GestureConfig) GetFailWith(name string) []string {
	return c.FailWith[name]
}

func durationOr(v *string, def time.Duration) time.Duration {
	if v == nil || *v == "" {
		return def
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return def // default on parse error
	}
	return d
}

// GetPanPosThreshold returns the pan_pos_threshold value or the default.
func (c *GestureConfig) GetPanPosThreshold() float64 {
	if c.PanPosThreshold == nil {
		return 15 // default
	}
	return *c.PanPosThreshold
}

// GetPanDelay parses and returns PanDelay.
func (c *GestureConfig) GetPanDelay() time.Duration {
	return durationOr(c.PanDelay, 0)
}

// GetPanNumInputs returns the pan_num_inputs value or the default.
func (c *GestureConfig) GetPanNumInputs() int {
	if c.PanNumInputs == nil {
		return 1 // default
	}
	return *c.PanNumInputs
}

// GetHoldDelay parses and returns HoldDelay.
func (c *GestureConfig) GetHoldDelay() time.Duration {
	return durationOr(c.HoldDelay, 0)
}

// GetHoldNumInputs returns the hold_num_inputs value or the default.
func (c *GestureConfig) GetHoldNumInputs() int {
	if c.HoldNumInputs == nil {
		return 1 // default
	}
	return *c.HoldNumInputs
}

// GetSwipeEscapeVelocity returns the swipe_escape_velocity value or the default.
func (c *GestureConfig) GetSwipeEscapeVelocity() float64 {
	if c.SwipeEscapeVelocity == nil {
		return 0.9 // default
	}
	return *c.SwipeEscapeVelocity
}

// GetPinchPosThreshold returns the pinch_pos_threshold value or the default.
func (c *GestureConfig) GetPinchPosThreshold() float64 {
	if c.PinchPosThreshold == nil {
		return 0 // default
	}
	return *c.PinchPosThreshold
}

// GetRotatePosThreshold returns the rotate_pos_threshold value or the default.
func (c *GestureConfig) GetRotatePosThreshold() float64 {
	if c.RotatePosThreshold == nil {
		return 15 // default
	}
	return *c.RotatePosThreshold
}

// GetTapMaxTaps returns the tap_max_taps value or the default.
func (c *GestureConfig) GetTapMaxTaps() int {
	if c.TapMaxTaps == nil {
		return 1 // default
	}
	return *c.TapMaxTaps
}

// GetTapMultiTapThreshold parses and returns TapMultiTapThreshold. The
// default scales with the tap count: 100ms for every tap beyond the first.
func (c *GestureConfig) GetTapMultiTapThreshold() time.Duration {
	def := time.Duration(c.GetTapMaxTaps()-1) * 100 * time.Millisecond
	return durationOr(c.TapMultiTapThreshold, def)
}

// GetTapMaximumPressTime parses and returns TapMaximumPressTime.
func (c *GestureConfig) GetTapMaximumPressTime() time.Duration {
	return durationOr(c.TapMaximumPressTime, 150*time.Millisecond)
}

// GetTapTolerance returns the tap_tolerance value or the default.
func (c *GestureConfig) GetTapTolerance() float64 {
	if c.TapTolerance == nil {
		return 10 // default
	}
	return *c.TapTolerance
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultGestureConfig returns a GestureConfig with every field set to its
// code default. It mirrors DefaultConfigPath and is used when no file is given.
// TapMultiTapThreshold stays unset so that it follows TapMaxTaps.
func DefaultGestureConfig() *GestureConfig {
	return &GestureConfig{
		Recognizers:         slices.Clone(KnownRecognizers),
		FailWith:            map[string][]string{RecognizerTap: {RecognizerPan}},
		PanPosThreshold:     ptrFloat64(15),
		PanDelay:            ptrString("0s"),
		PanNumInputs:        ptrInt(1),
		HoldDelay:           ptrString("0s"),
		HoldNumInputs:       ptrInt(1),
		SwipeEscapeVelocity: ptrFloat64(0.9),
		PinchPosThreshold:   ptrFloat64(0),
		RotatePosThreshold:  ptrFloat64(15),
		TapMaxTaps:          ptrInt(1),
		TapMaximumPressTime: ptrString("150ms"),
		TapTolerance:        ptrFloat64(10),
	}
}
