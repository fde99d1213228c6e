package pointer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxRecordingLine bounds a single JSON line in a recording.
const maxRecordingLine = 64 * 1024

// ReadRecording parses a JSON-lines sample recording. Blank lines and lines
// starting with '#' are skipped. Timestamps must not decrease.
func ReadRecording(r io.Reader) ([]Sample, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxRecordingLine)

	var samples []Sample
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var s Sample
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse sample: %w", line, err)
		}
		if s.Phase == 0 {
			return nil, fmt.Errorf("line %d: sample has no phase", line)
		}
		if n := len(samples); n > 0 && s.TimestampMs < samples[n-1].TimestampMs {
			return nil, fmt.Errorf("line %d: timestamp %d goes backwards (previous %d)",
				line, s.TimestampMs, samples[n-1].TimestampMs)
		}
		samples = append(samples, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}
	return samples, nil
}

// WriteRecording writes samples as JSON lines.
func WriteRecording(w io.Writer, samples []Sample) error {
	enc := json.NewEncoder(w)
	for i, s := range samples {
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return nil
}
