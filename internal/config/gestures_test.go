package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultGestureConfig(t *testing.T) {
	cfg := DefaultGestureConfig()

	if cfg.PanPosThreshold == nil || *cfg.PanPosThreshold != 15 {
		t.Errorf("Expected PanPosThreshold 15, got %v", cfg.PanPosThreshold)
	}
	if cfg.TapMaximumPressTime == nil || *cfg.TapMaximumPressTime != "150ms" {
		t.Errorf("Expected TapMaximumPressTime '150ms', got %v", cfg.TapMaximumPressTime)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}

	if got := cfg.GetSwipeEscapeVelocity(); got != 0.9 {
		t.Errorf("GetSwipeEscapeVelocity() = %f, want 0.9", got)
	}
	if got := cfg.GetRotatePosThreshold(); got != 15 {
		t.Errorf("GetRotatePosThreshold() = %f, want 15", got)
	}
	if got := cfg.GetTapMultiTapThreshold(); got != 0 {
		t.Errorf("GetTapMultiTapThreshold() = %s, want 0s", got)
	}
}

// The defaults file and DefaultGestureConfig must not drift apart.
func TestDefaultsFileMatchesCode(t *testing.T) {
	fromFile := MustLoadDefaultConfig()
	if diff := cmp.Diff(DefaultGestureConfig(), fromFile); diff != "" {
		t.Errorf("defaults mismatch (-code +file):\n%s", diff)
	}
}

func TestEmptyConfigGetters(t *testing.T) {
	cfg := EmptyGestureConfig()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"pan threshold", cfg.GetPanPosThreshold(), 15.0},
		{"pan delay", cfg.GetPanDelay(), time.Duration(0)},
		{"pan inputs", cfg.GetPanNumInputs(), 1},
		{"hold delay", cfg.GetHoldDelay(), time.Duration(0)},
		{"hold inputs", cfg.GetHoldNumInputs(), 1},
		{"escape velocity", cfg.GetSwipeEscapeVelocity(), 0.9},
		{"pinch threshold", cfg.GetPinchPosThreshold(), 0.0},
		{"rotate threshold", cfg.GetRotatePosThreshold(), 15.0},
		{"max taps", cfg.GetTapMaxTaps(), 1},
		{"multi tap threshold", cfg.GetTapMultiTapThreshold(), time.Duration(0)},
		{"press time", cfg.GetTapMaximumPressTime(), 150 * time.Millisecond},
		{"tolerance", cfg.GetTapTolerance(), 10.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestGetTapMultiTapThreshold(t *testing.T) {
	tests := []struct {
		name string
		cfg  *GestureConfig
		want time.Duration
	}{
		{"scales with max taps", &GestureConfig{TapMaxTaps: ptrInt(3)}, 200 * time.Millisecond},
		{"explicit value wins", &GestureConfig{TapMaxTaps: ptrInt(3), TapMultiTapThreshold: ptrString("5ms")}, 5 * time.Millisecond},
		{"parse error falls back", &GestureConfig{TapMaxTaps: ptrInt(2), TapMultiTapThreshold: ptrString("soon")}, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.GetTapMultiTapThreshold(); got != tt.want {
				t.Errorf("GetTapMultiTapThreshold() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLoadGestureConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "gestures.json")

	testJSON := `{
  "recognizers": ["pan", "tap"],
  "fail_with": {"pan": ["tap"]},
  "pan_pos_threshold": 4,
  "pan_delay": "20ms",
  "tap_max_taps": 2
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadGestureConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if got := cfg.GetPanPosThreshold(); got != 4 {
		t.Errorf("GetPanPosThreshold() = %f, want 4", got)
	}
	if got := cfg.GetPanDelay(); got != 20*time.Millisecond {
		t.Errorf("GetPanDelay() = %s, want 20ms", got)
	}
	if got := cfg.GetTapMultiTapThreshold(); got != 100*time.Millisecond {
		t.Errorf("GetTapMultiTapThreshold() = %s, want 100ms", got)
	}
	if diff := cmp.Diff([]string{"tap", "pan"}, cfg.Enabled()); diff != "" {
		t.Errorf("Enabled() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"tap"}, cfg.GetFailWith("pan")); diff != "" {
		t.Errorf("GetFailWith(pan) mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.GetFailWith("tap"); got != nil {
		t.Errorf("GetFailWith(tap) = %v, want nil", got)
	}
}

func TestLoadGestureConfigErrors(t *testing.T) {
	tmpDir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		return path
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"missing file", "/nonexistent/path/to/config.json", "failed to stat"},
		{"wrong extension", write("gestures.yaml", "{}"), ".json extension"},
		{"invalid json", write("broken.json", `{"pan_pos_threshold": "far"`), "failed to parse"},
		{"invalid values", write("negative.json", `{"tap_tolerance": -1}`), "invalid configuration"},
		{"too large", write("huge.json", `{"recognizers":[`+strings.Repeat(`"pan",`, 200000)+`"pan"]}`), "too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGestureConfig(tt.path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *GestureConfig
		wantErr bool
	}{
		{"valid config", DefaultGestureConfig(), false},
		{"empty config is valid", &GestureConfig{}, false},
		{"unknown recognizer", &GestureConfig{Recognizers: []string{"doubleclick"}}, true},
		{"unknown fail_with key", &GestureConfig{FailWith: map[string][]string{"fling": {"pan"}}}, true},
		{"unknown fail_with target", &GestureConfig{FailWith: map[string][]string{"pan": {"fling"}}}, true},
		{"self fail_with", &GestureConfig{FailWith: map[string][]string{"pan": {"pan"}}}, true},
		{"negative threshold", &GestureConfig{PanPosThreshold: ptrFloat64(-1)}, true},
		{"negative escape velocity", &GestureConfig{SwipeEscapeVelocity: ptrFloat64(-0.1)}, true},
		{"zero inputs", &GestureConfig{PanNumInputs: ptrInt(0)}, true},
		{"zero max taps", &GestureConfig{TapMaxTaps: ptrInt(0)}, true},
		{"invalid delay", &GestureConfig{HoldDelay: ptrString("invalid")}, true},
		{"negative press time", &GestureConfig{TapMaximumPressTime: ptrString("-5ms")}, true},
		{"empty duration is unset", &GestureConfig{PanDelay: ptrString("")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
