// Package source turns audio files into PCM WAV buffers the converter accepts.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/ulaw"
	"github.com/go-audio/aiff"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

const (
	mediaTypeWAV    = "audio/wav"
	mediaTypeAIFF   = "audio/aiff"
	mediaTypeMPEG   = "audio/mpeg"
	mediaTypeVorbis = "audio/ogg"

	// go-mp3 always decodes to interleaved stereo
	mp3Channels = 2
)

var errNotAIFF = errors.New("not a valid AIFF file")

var mediaTypes = map[string]string{
	".wav":  mediaTypeWAV,
	".wave": mediaTypeWAV,
	".aif":  mediaTypeAIFF,
	".aiff": mediaTypeAIFF,
	".mp3":  mediaTypeMPEG,
	".ogg":  mediaTypeVorbis,
	".oga":  mediaTypeVorbis,
}

// MediaType guesses the media type of a file from its extension. It returns
// an empty string for unknown extensions.
func MediaType(name string) string {
	return mediaTypes[strings.ToLower(filepath.Ext(name))]
}

// Load reads path and returns it as a PCM WAV buffer.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Decode(path, data)
}

// Decode converts data, named name, to a PCM WAV buffer. WAV input is
// returned as is; AIFF, MP3 and Ogg Vorbis input is decoded and wrapped in a
// canonical 16-bit PCM container. Anything else fails with
// ulaw.ErrInvalidFileType.
func Decode(name string, data []byte) ([]byte, error) {
	mediaType := MediaType(name)

	switch mediaType {
	case mediaTypeAIFF:
		return decodeAIFF(data)
	case mediaTypeMPEG:
		return decodeMP3(data)
	case mediaTypeVorbis:
		return decodeVorbis(data)
	}

	if err := ulaw.CheckFileType(mediaType); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(name), err)
	}

	return data, nil
}

func decodeAIFF(data []byte) ([]byte, error) {
	dec := aiff.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, errNotAIFF
	}

	if dec.BitDepth != 16 {
		return nil, &ulaw.FormatError{Field: "bits per sample", Value: uint32(dec.BitDepth), Err: ulaw.ErrUnsupportedBitDepth}
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode AIFF samples: %w", err)
	}

	if buf.Format == nil {
		buf.Format = dec.Format()
	}

	buf.SourceBitDepth = int(dec.BitDepth)

	return ulaw.EncodePCM16(buf)
}

func decodeMP3(data []byte) ([]byte, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 stream: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3 stream: %w", err)
	}

	return ulaw.PCM16Wave(dec.SampleRate(), mp3Channels, pcm)
}

func decodeVorbis(data []byte) ([]byte, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode Ogg Vorbis stream: %w", err)
	}

	return vorbisWave(samples, format)
}

// vorbisWave wraps interleaved float samples decoded from a Vorbis stream.
func vorbisWave(samples []float32, format *oggvorbis.Format) ([]byte, error) {
	return ulaw.PCM16Wave(format.SampleRate, format.Channels, float32ToPCM16Bytes(samples))
}
