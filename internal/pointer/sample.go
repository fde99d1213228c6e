// Package pointer models raw pointer input: samples, the per-surface set of
// active pointers, and the surfaces that deliver samples.
package pointer

import (
	"fmt"
	"strings"
)

// Phase is the lifecycle stage a sample reports for its pointer.
type Phase uint8

const (
	PhaseDown Phase = iota + 1
	PhaseMove
	PhaseUp
	PhaseCancel
	PhaseLeave
)

var phaseNames = map[Phase]string{
	PhaseDown:   "down",
	PhaseMove:   "move",
	PhaseUp:     "up",
	PhaseCancel: "cancel",
	PhaseLeave:  "leave",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", p)
}

// IsTerminal reports whether the phase ends its pointer (up, cancel, leave).
func (p Phase) IsTerminal() bool {
	return p == PhaseUp || p == PhaseCancel || p == PhaseLeave
}

// ChangesMembership reports whether the phase can add or remove a pointer from
// the active set.
func (p Phase) ChangesMembership() bool {
	return p == PhaseDown || p.IsTerminal()
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	name, ok := phaseNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown pointer phase %d", p)
	}
	return []byte(name), nil
}

// UnmarshalText decodes a phase name. The browser-style "pointerdown" spelling
// is accepted as well.
func (p *Phase) UnmarshalText(text []byte) error {
	name := strings.TrimPrefix(strings.ToLower(string(text)), "pointer")
	for phase, n := range phaseNames {
		if n == name {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown pointer phase %q", text)
}

// Sample is one immutable observation of a pointer.
type Sample struct {
	ID          int     `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Phase       Phase   `json:"phase"`
	TimestampMs int64   `json:"t"`
}

func (s Sample) String() string {
	return fmt.Sprintf("%s#%d(%.1f,%.1f)@%d", s.Phase, s.ID, s.X, s.Y, s.TimestampMs)
}
