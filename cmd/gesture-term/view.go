package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/banshee-data/gestures/internal/gesture"
)

// historyLength bounds the number of event lines kept for display.
const historyLength = 200

type view struct {
	names   []string
	fingers int
	history []string
}

func newView(names []string) *view {
	return &view{names: names}
}

func (v *view) push(line string) {
	v.history = append(v.history, line)
	if over := len(v.history) - historyLength; over > 0 {
		v.history = v.history[over:]
	}
}

func (v *view) clear() {
	v.history = nil
}

func (v *view) status() string {
	return fmt.Sprintf(" fingers: %d | recognizers: %s | q quit, c clear", v.fingers, strings.Join(v.names, ", "))
}

// visible returns the newest lines that fit in rows, oldest first.
func (v *view) visible(rows int) []string {
	if rows <= 0 {
		return nil
	}
	if len(v.history) <= rows {
		return v.history
	}
	return v.history[len(v.history)-rows:]
}

func (v *view) draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()

	statusStyle := tcell.StyleDefault.Reverse(true)
	drawText(screen, 0, 0, width, padRight(v.status(), width), statusStyle)

	lineStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for i, line := range v.visible(height - 1) {
		drawText(screen, 0, i+1, width, line, lineStyle)
	}
	screen.Show()
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func padRight(s string, width int) string {
	if n := width - len(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// describe renders one event as a status line.
func describe(ev gesture.Event) string {
	b := ev.Meta()
	head := fmt.Sprintf("%-11s %s center=(%.0f,%.0f) pointers=%d",
		b.Type, b.InstanceID.String()[:8], b.Center.X, b.Center.Y, len(b.Pointers))

	switch e := ev.(type) {
	case gesture.TapEvent:
		return fmt.Sprintf("%s taps=%d", head, e.Taps)
	case gesture.PanEvent:
		return fmt.Sprintf("%s delta=(%.0f,%.0f)%s", head, e.Delta.X, e.Delta.Y, forced(e.Forced))
	case gesture.HoldEvent:
		return fmt.Sprintf("%s held=%dms%s", head, e.DelayMs, forced(e.Forced))
	case gesture.SwipeEvent:
		return fmt.Sprintf("%s angle=%.0f velocity=(%.2f,%.2f)", head, e.Angle, e.Velocity.X, e.Velocity.Y)
	case gesture.PinchEvent:
		return fmt.Sprintf("%s scale=%.2f distance=%.0f", head, e.Scale, e.Distance)
	case gesture.RotateEvent:
		return fmt.Sprintf("%s angle=%.1f", head, e.Angle)
	}
	return head
}

func forced(f bool) string {
	if f {
		return " forced"
	}
	return ""
}
