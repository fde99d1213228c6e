package main

import (
	"fmt"
	"os"

	"github.com/banshee-data/gestures/internal/pointer"
)

// recorder keeps the samples the terminal produced so a session can be
// replayed later with gesture-replay.
type recorder struct {
	samples []pointer.Sample
}

func (r *recorder) add(s pointer.Sample) { r.samples = append(r.samples, s) }

// saveRecording writes samples to path as a JSON-lines recording.
func saveRecording(path string, samples []pointer.Sample) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create recording: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close recording: %w", cerr)
		}
	}()
	if err := pointer.WriteRecording(f, samples); err != nil {
		return fmt.Errorf("failed to write recording: %w", err)
	}
	return nil
}
