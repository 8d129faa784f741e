package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/ulaw"
	"github.com/go-audio/wav"
)

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}

	return nil
}

// writePreview stores the expanded μ-law stream as 8 kHz 16-bit PCM so it can
// be played back by any player.
func writePreview(path string, encoded []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer file.Close()

	enc := wav.NewEncoder(file, ulaw.OutputSampleRate, 16, 1, 1)
	if err := enc.Write(ulaw.Expand(encoded)); err != nil {
		return fmt.Errorf("failed to write preview samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}

	return nil
}
