package ulaw

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
)

// smoothingWindowSize is the number of most recent mono samples averaged at
// each emission point.
const smoothingWindowSize = 5

// ProgressFunc receives the completion percentage, 0 to 100, after each
// emitted output sample.
type ProgressFunc func(percent int)

// smoothingWindow is a fixed size ring of the last downmixed samples.
type smoothingWindow struct {
	samples [smoothingWindowSize]int
	next    int
	count   int
	sum     int
}

func (w *smoothingWindow) push(sample int) {
	if w.count == smoothingWindowSize {
		w.sum -= w.samples[w.next]
	} else {
		w.count++
	}

	w.samples[w.next] = sample
	w.sum += sample
	w.next = (w.next + 1) % smoothingWindowSize
}

// mean returns the rounded average of the window, 0 when it is empty.
func (w *smoothingWindow) mean() int {
	if w.count == 0 {
		return 0
	}

	return roundDiv(w.sum, w.count)
}

// roundDiv divides and rounds half away from zero.
func roundDiv(num, den int) int {
	return int(math.Round(float64(num) / float64(den)))
}

func percentOf(done, total int) int {
	return int(math.Round(float64(done) / float64(total) * 100))
}

// downmix averages the channels of the frame starting at offset.
func downmix(payload []byte, offset, channels int) int {
	sum := 0
	for ch := 0; ch < channels; ch++ {
		pos := offset + ch*2
		sum += int(int16(binary.LittleEndian.Uint16(payload[pos : pos+2])))
	}

	if channels == 1 {
		return sum
	}

	return roundDiv(sum, channels)
}

// Transcode downmixes payload to mono, smooths it with a 5 sample moving
// average, keeps one sample every f.DownsampleFactor() frames and μ-law
// encodes it. The result always holds exactly f.OutputLength of the payload
// bytes. onProgress may be nil. The context is checked at every emission
// point; a cancelled transcode returns no output.
func Transcode(ctx context.Context, payload []byte, f *Format, onProgress ProgressFunc) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil format", ErrUnsupportedFmtChunk)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	channels := int(f.NumChannels)
	frameSize := f.FrameSize()
	factor := f.DownsampleFactor()
	frames := len(payload) / frameSize
	total := frames / factor

	out := make([]byte, total)
	done := ctx.Done()

	var (
		window  smoothingWindow
		emitted int
	)

	for i := 0; i < frames && emitted < total; i++ {
		window.push(downmix(payload, i*frameSize, channels))

		if i%factor != 0 {
			continue
		}

		select {
		case <-done:
			return nil, fmt.Errorf("transcode interrupted after %d of %d samples: %w", emitted, total, ctx.Err())
		default:
		}

		out[emitted] = EncodeSample(int16(window.mean()))
		emitted++

		if onProgress != nil {
			onProgress(percentOf(emitted, total))
		}
	}

	return out, nil
}
