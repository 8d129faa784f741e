package ulaw

import (
	"context"
	"fmt"
	"math"
)

// Converter turns PCM WAV buffers into 8 kHz μ-law WAV buffers. The zero
// value is ready to use and a Converter may be shared between goroutines;
// every call works on its own state.
type Converter struct {
	// OnProgress, when set, is called synchronously after every emitted sample.
	OnProgress ProgressFunc
}

// Convert validates src, transcodes its data chunk and returns a complete
// μ-law WAV file. Either the full output or an error is returned.
func (c *Converter) Convert(ctx context.Context, src []byte) ([]byte, error) {
	f, err := Validate(src)
	if err != nil {
		return nil, err
	}

	data, err := LocateData(src, pcmFmtChunkSize)
	if err != nil {
		return nil, err
	}

	var onProgress ProgressFunc
	if c != nil {
		onProgress = c.OnProgress
	}

	encoded, err := Transcode(ctx, data.Bytes(src), f, onProgress)
	if err != nil {
		return nil, err
	}

	if uint64(len(encoded)) > math.MaxUint32-36 {
		return nil, errDataTooLarge
	}

	return Assemble(BuildHeader(uint32(len(encoded))), encoded), nil
}

// Convert is a shortcut for a Converter with the given progress hook.
func Convert(ctx context.Context, src []byte, onProgress ProgressFunc) ([]byte, error) {
	c := Converter{OnProgress: onProgress}

	out, err := c.Convert(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("conversion failed: %w", err)
	}

	return out, nil
}

// Throttle wraps fn so that it only sees percentages that differ from the
// previous call. The returned func is not safe for concurrent use.
func Throttle(fn ProgressFunc) ProgressFunc {
	if fn == nil {
		return nil
	}

	last := -1

	return func(percent int) {
		if percent == last {
			return
		}

		last = percent
		fn(percent)
	}
}
