// Package gesture implements the concrete recognizers: tap, pan, swipe,
// pinch, rotate and hold. Every recognizer but tap is a thin layer over a
// recognizer.Engine.
package gesture

import (
	"github.com/google/uuid"

	"github.com/banshee-data/gestures/internal/kinematics"
	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/recognizer"
)

// Type discriminates gesture events.
type Type string

const (
	TypeTap         Type = "tap"
	TypePanStart    Type = "panStart"
	TypePanMove     Type = "panMove"
	TypePanEnd      Type = "panEnd"
	TypeSwipe       Type = "swipe"
	TypePinchStart  Type = "pinchStart"
	TypePinchMove   Type = "pinchMove"
	TypePinchEnd    Type = "pinchEnd"
	TypeRotateStart Type = "rotateStart"
	TypeRotateMove  Type = "rotateMove"
	TypeRotateEnd   Type = "rotateEnd"
	TypeHoldStart   Type = "holdStart"
	TypeHoldEnd     Type = "holdEnd"
)

// Event is implemented by every gesture event type.
type Event interface {
	Kind() Type
	Meta() Base
}

// Base carries the fields shared by every gesture event.
type Base struct {
	Type       Type      `json:"type"`
	InstanceID uuid.UUID `json:"instance_id"`
	kinematics.Measurement
}

// Kind implements Event.
func (b Base) Kind() Type { return b.Type }

// Meta implements Event.
func (b Base) Meta() Base { return b }

func baseOf(t Type, ev recognizer.Event) Base {
	return Base{Type: t, InstanceID: ev.InstanceID, Measurement: ev.Measurement}
}

// PanEvent is emitted by Pan.
type PanEvent struct {
	Base
	// Forced marks a panEnd caused by a competitor rather than a release.
	Forced bool `json:"forced,omitempty"`
}

// HoldEvent is emitted by Hold.
type HoldEvent struct {
	Base
	Forced bool `json:"forced,omitempty"`
}

// SwipeEvent is emitted by Swipe once per qualifying pan.
type SwipeEvent struct {
	Base
	// Angle is the direction from the start to the end position in degrees:
	// 0 right, 90 down, -90 up, +-180 left.
	Angle float64 `json:"angle"`
}

// PinchEvent is emitted by Pinch.
type PinchEvent struct {
	Base
	// Scale is the spread relative to the spread at the last finger count
	// change.
	Scale float64 `json:"scale"`
	// DeltaScale is the spread relative to the previous event.
	DeltaScale float64 `json:"delta_scale"`
	// Distance is the spread change, in pixels, since the last finger count
	// change.
	Distance float64 `json:"distance"`
	// DeltaDistance is the spread change since the previous event.
	DeltaDistance float64 `json:"delta_distance"`
}

// RotateEvent is emitted by Rotate.
type RotateEvent struct {
	Base
	// Angle is the cumulative rotation in degrees since rotateStart.
	Angle float64 `json:"angle"`
	// DeltaAngle is this event's rotation.
	DeltaAngle float64 `json:"delta_angle"`
}

// TapEvent is emitted by Tap.
type TapEvent struct {
	Base
	Taps int `json:"taps"`
}

// Recognizer is the surface shared by every concrete recognizer.
type Recognizer interface {
	// Name labels the recognizer in logs.
	Name() string
	// Attach binds the recognizer to a surface. The same surface is a no-op;
	// nil detaches.
	Attach(s pointer.Surface)
	// SetTransform installs the hook applied to samples before tracking.
	SetTransform(t pointer.Transform)
	// Subscribe registers fn for every event, in emission order.
	Subscribe(fn func(Event)) (cancel func())
	// Fingers returns the live active-pointer count.
	Fingers() int
	// WatchFingers registers fn for every change of Fingers.
	WatchFingers(fn func(int)) (cancel func())
	// Activity is the signal other recognizers yield to.
	Activity() *recognizer.Activity
	// Close detaches and releases every subscription to competitors.
	Close()
}
