package ulaw

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotRiffOrWave is returned when the first 12 bytes are not a RIFF/WAVE signature.
	ErrNotRiffOrWave = errors.New("not a valid RIFF/WAVE file")
	// ErrUnsupportedFmtChunk is returned when the fmt chunk is missing or is not
	// the canonical 16 byte PCM layout.
	ErrUnsupportedFmtChunk = errors.New("invalid fmt chunk, only PCM/uncompressed WAV is supported")
	// ErrUnsupportedFormat is returned for any audio format tag other than PCM.
	ErrUnsupportedFormat = errors.New("only PCM audio format is supported")
	// ErrUnsupportedChannelCount is returned for anything but mono or stereo input.
	ErrUnsupportedChannelCount = errors.New("only mono or stereo WAV files are supported")
	// ErrUnsupportedSampleRate is returned when the sample rate is not a multiple of 8000 Hz.
	ErrUnsupportedSampleRate = errors.New("sample rate must be a multiple of 8000 Hz")
	// ErrUnsupportedBitDepth is returned for anything but 16-bit samples.
	ErrUnsupportedBitDepth = errors.New("only 16-bit audio is supported")
	// ErrDataChunkNotFound is returned when the chunk scan runs off the end of
	// the buffer without finding a data chunk.
	ErrDataChunkNotFound = errors.New("data chunk not found")
	// ErrInvalidFileType is returned when the input is not flagged as a WAV file.
	ErrInvalidFileType = errors.New("invalid file type, please select a .wav file")
)

// FormatError reports a fmt chunk field that failed validation.
type FormatError struct {
	Field string
	Value uint32
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v (%s=%d)", e.Err, e.Field, e.Value)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

var wavMediaTypes = map[string]struct{}{
	"audio/wav":      {},
	"audio/x-wav":    {},
	"audio/wave":     {},
	"audio/vnd.wave": {},
}

// CheckFileType verifies that the caller flagged the input as a WAV file
// before any byte is inspected. Media type parameters are ignored.
func CheckFileType(mediaType string) error {
	mt, _, _ := strings.Cut(mediaType, ";")
	mt = strings.ToLower(strings.TrimSpace(mt))

	if _, ok := wavMediaTypes[mt]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFileType, mediaType)
	}

	return nil
}
