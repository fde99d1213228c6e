// Package termsurface turns tcell mouse events into pointer samples, so a
// terminal can drive the recognizers with a single pointer.
package termsurface

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/banshee-data/gestures/internal/pointer"
	"github.com/banshee-data/gestures/internal/timeutil"
)

// PointerID is the id of the only pointer a terminal reports.
const PointerID = 1

// Default cell size in pixels, used to express recognizer thresholds in the
// same units on every surface.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Adapter is a pointer.Surface fed by tcell mouse events. Button 1 pressed is
// the pointer down; motion with the button held moves it; release lifts it.
// Motion without a button is ignored.
//
// HandleEvent must be called on the goroutine that drives the recognizers.
type Adapter struct {
	now        func() time.Time
	feed       *pointer.Feed
	cellWidth  float64
	cellHeight float64

	pressed bool
	lastX   int
	lastY   int
}

// New returns an adapter timestamping samples with clock. Non-positive cell
// sizes fall back to the defaults.
func New(clock timeutil.Scheduler, cellWidth, cellHeight float64) *Adapter {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = DefaultCellHeight
	}
	return &Adapter{
		now:        clock.Now,
		feed:       pointer.NewFeed(),
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
	}
}

// Listen implements pointer.Surface.
func (a *Adapter) Listen(fn func(pointer.Sample)) func() {
	return a.feed.Listen(fn)
}

// Pressed reports whether the pointer is down.
func (a *Adapter) Pressed() bool {
	return a.pressed
}

// HandleEvent converts ev if it is a mouse event and reports whether it was
// consumed.
func (a *Adapter) HandleEvent(ev tcell.Event) bool {
	mouse, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	a.HandleMouse(mouse)
	return true
}

// HandleMouse converts one mouse event into at most one sample.
func (a *Adapter) HandleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	held := ev.Buttons()&tcell.Button1 != 0

	switch {
	case held && !a.pressed:
		a.pressed = true
		a.push(x, y, pointer.PhaseDown)
	case held && a.pressed:
		if x == a.lastX && y == a.lastY {
			return
		}
		a.push(x, y, pointer.PhaseMove)
	case !held && a.pressed:
		a.pressed = false
		a.push(x, y, pointer.PhaseUp)
	}
}

// Leave lifts a held pointer with a leave sample, for example when the
// terminal loses focus or resizes.
func (a *Adapter) Leave() {
	if !a.pressed {
		return
	}
	a.pressed = false
	a.push(a.lastX, a.lastY, pointer.PhaseLeave)
}

func (a *Adapter) push(x, y int, phase pointer.Phase) {
	a.lastX, a.lastY = x, y
	a.feed.Push(pointer.Sample{
		ID:          PointerID,
		X:           float64(x) * a.cellWidth,
		Y:           float64(y) * a.cellHeight,
		Phase:       phase,
		TimestampMs: timeutil.UnixMillis(a.now()),
	})
}
