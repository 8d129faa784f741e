package ulaw

import (
	"math"
	"time"

	"github.com/go-audio/audio"
)

const (
	wavFormatPCM   = 1
	wavFormatMuLaw = 7

	// OutputSampleRate is the fixed rate of every transcoded stream.
	OutputSampleRate = 8000

	pcmBitDepth     = 16
	pcmFmtChunkSize = 16
)

// Format is the decoded content of a canonical PCM fmt chunk.
type Format struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// BytesPerSample returns the storage size of a single channel sample.
func (f *Format) BytesPerSample() int {
	return int(f.BitsPerSample) / 8
}

// FrameSize returns the number of bytes in one interleaved frame.
func (f *Format) FrameSize() int {
	return f.BytesPerSample() * int(f.NumChannels)
}

// DownsampleFactor is the number of input frames consumed per output sample.
func (f *Format) DownsampleFactor() int {
	return int(f.SampleRate / OutputSampleRate)
}

// FrameCount returns the number of whole frames in the payload region.
// Trailing partial frames are not counted.
func (f *Format) FrameCount(r Region) int {
	size := f.FrameSize()
	if size == 0 {
		return 0
	}

	return r.Length / size
}

// OutputLength is the exact number of μ-law bytes a transcode of r produces.
func (f *Format) OutputLength(r Region) int {
	factor := f.DownsampleFactor()
	if factor == 0 {
		return 0
	}

	return f.FrameCount(r) / factor
}

// BitRate returns the declared bit rate of the stream in bits per second.
func (f *Format) BitRate() uint64 {
	return uint64(f.ByteRate) * 8
}

// Duration derives the playing time of dataSize bytes from the declared byte rate.
func (f *Format) Duration(dataSize uint32) time.Duration {
	if f == nil || f.ByteRate == 0 {
		return 0
	}

	secs := float64(dataSize) / float64(f.ByteRate)

	return time.Duration(math.Round(secs * float64(time.Second)))
}

// GoAudioFormat returns the go-audio description of the input stream.
func (f *Format) GoAudioFormat() *audio.Format {
	if f == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(f.NumChannels),
		SampleRate:  int(f.SampleRate),
	}
}
