package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/gestures/internal/config"
	"github.com/banshee-data/gestures/internal/units"
)

const flickRecording = `# one fast drag to the right
{"id":1,"x":0,"y":0,"phase":"down","t":1000}
{"id":1,"x":5,"y":0,"phase":"move","t":1010}
{"id":1,"x":20,"y":0,"phase":"up","t":1020}
`

const tapRecording = `{"id":1,"x":40,"y":40,"phase":"down","t":0}
{"id":1,"x":41,"y":40,"phase":"up","t":50}
`

type line struct {
	Type     string  `json:"type"`
	Taps     int     `json:"taps"`
	Angle    float64 `json:"angle"`
	Velocity struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"velocity"`
}

func runReplay(t *testing.T, recording string, opts replayOptions) ([]line, replayStats) {
	t.Helper()
	var out bytes.Buffer
	stats, err := replay(strings.NewReader(recording), &out, opts)
	require.NoError(t, err)

	var lines []line
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var l line
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &l), "line %q", scanner.Text())
		lines = append(lines, l)
	}
	return lines, stats
}

func types(lines []line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Type
	}
	return out
}

func TestReplaySwipe(t *testing.T) {
	lines, stats := runReplay(t, flickRecording, replayOptions{Config: config.DefaultGestureConfig(), Units: units.PxPerMs})

	assert.Equal(t, []string{"holdStart", "swipe", "holdEnd"}, types(lines))
	assert.InDelta(t, 1.0, lines[1].Velocity.X, 1e-9)
	assert.InDelta(t, 0, lines[1].Angle, 1e-9)
	assert.Equal(t, 3, stats.Samples)
	assert.Equal(t, 3, stats.Events)
	assert.Equal(t, 20*time.Millisecond, stats.Span)
}

func TestReplayVelocityUnits(t *testing.T) {
	lines, _ := runReplay(t, flickRecording, replayOptions{Config: config.DefaultGestureConfig(), Units: units.PxPerS})
	require.Len(t, lines, 3)
	assert.InDelta(t, 1000, lines[1].Velocity.X, 1e-6)
}

func TestReplayTapNeedsTail(t *testing.T) {
	lines, stats := runReplay(t, tapRecording, replayOptions{Config: config.DefaultGestureConfig(), Tail: time.Second})
	assert.Equal(t, []string{"holdStart", "holdEnd", "tap"}, types(lines))
	assert.Equal(t, 1, lines[2].Taps)
	assert.Equal(t, 1050*time.Millisecond, stats.Span)
}

func TestReplayConfigSubset(t *testing.T) {
	cfg := config.EmptyGestureConfig()
	cfg.Recognizers = []string{config.RecognizerPan}
	threshold := 0.0
	cfg.PanPosThreshold = &threshold
	lines, _ := runReplay(t, flickRecording, replayOptions{Config: cfg})
	assert.Equal(t, []string{"panStart", "panMove", "panEnd"}, types(lines))
}

func TestReplayIsDeterministic(t *testing.T) {
	opts := replayOptions{Config: config.DefaultGestureConfig(), Tail: time.Second}
	var first, second bytes.Buffer
	_, err := replay(strings.NewReader(flickRecording+tapRecording), &first, opts)
	require.Error(t, err, "timestamps going backwards are rejected")

	recording := flickRecording + strings.ReplaceAll(strings.ReplaceAll(tapRecording, `"t":0`, `"t":2000`), `"t":50`, `"t":2050`)
	_, err = replay(strings.NewReader(recording), &first, opts)
	require.NoError(t, err)
	_, err = replay(strings.NewReader(recording), &second, opts)
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
	assert.NotEmpty(t, first.String())
}

func TestReplayErrors(t *testing.T) {
	var out bytes.Buffer

	_, err := replay(strings.NewReader("not json\n"), &out, replayOptions{})
	assert.Error(t, err)

	bad := config.EmptyGestureConfig()
	bad.Recognizers = []string{"fling"}
	_, err = replay(strings.NewReader(flickRecording), &out, replayOptions{Config: bad})
	assert.Error(t, err)

	stats, err := replay(strings.NewReader(""), &out, replayOptions{})
	require.NoError(t, err)
	assert.Zero(t, stats.Samples)
	assert.Empty(t, out.String())
}
