package gesture

import (
	"github.com/banshee-data/gestures/internal/config"
)

// PanOptionsFromTuning builds PanOptions from the gesture configuration.
// Competitors are not part of the file format; callers wire FailWith.
func PanOptionsFromTuning(cfg *config.GestureConfig) PanOptions {
	return PanOptions{
		PosThreshold: cfg.GetPanPosThreshold(),
		Delay:        cfg.GetPanDelay(),
		NumInputs:    cfg.GetPanNumInputs(),
	}
}

// HoldOptionsFromTuning builds HoldOptions from the gesture configuration.
func HoldOptionsFromTuning(cfg *config.GestureConfig) HoldOptions {
	return HoldOptions{
		Delay:     cfg.GetHoldDelay(),
		NumInputs: cfg.GetHoldNumInputs(),
	}
}

// SwipeOptionsFromTuning builds SwipeOptions from the gesture configuration.
func SwipeOptionsFromTuning(cfg *config.GestureConfig) SwipeOptions {
	return SwipeOptions{EscapeVelocity: cfg.GetSwipeEscapeVelocity()}
}

// PinchOptionsFromTuning builds PinchOptions from the gesture configuration.
func PinchOptionsFromTuning(cfg *config.GestureConfig) PinchOptions {
	return PinchOptions{PosThreshold: cfg.GetPinchPosThreshold()}
}

// RotateOptionsFromTuning builds RotateOptions from the gesture configuration.
func RotateOptionsFromTuning(cfg *config.GestureConfig) RotateOptions {
	return RotateOptions{PosThreshold: cfg.GetRotatePosThreshold()}
}

// TapOptionsFromTuning builds TapOptions from the gesture configuration.
func TapOptionsFromTuning(cfg *config.GestureConfig) TapOptions {
	return TapOptions{
		MaxTaps:           cfg.GetTapMaxTaps(),
		MultiTapThreshold: cfg.GetTapMultiTapThreshold(),
		MaximumPressTime:  cfg.GetTapMaximumPressTime(),
		Tolerance:         cfg.GetTapTolerance(),
	}
}
