package ulaw

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

// HeaderSize is the size of the canonical WAV header written before the data.
const HeaderSize = 44

var errDataTooLarge = errors.New("data does not fit a RIFF chunk")

// BuildHeader returns the 44 byte header of an 8 kHz, 8-bit, mono μ-law WAV
// holding dataLength bytes of samples.
func BuildHeader(dataLength uint32) [HeaderSize]byte {
	return buildHeader(fmtFields{
		audioFormat:   wavFormatMuLaw,
		channels:      1,
		sampleRate:    OutputSampleRate,
		byteRate:      OutputSampleRate,
		blockAlign:    1,
		bitsPerSample: 8,
	}, dataLength)
}

type fmtFields struct {
	audioFormat   uint16
	channels      uint16
	sampleRate    uint32
	byteRate      uint32
	blockAlign    uint16
	bitsPerSample uint16
}

func buildHeader(f fmtFields, dataLength uint32) [HeaderSize]byte {
	var header [HeaderSize]byte

	// RIFF header (12 bytes)
	copy(header[0:4], riff.RiffID[:])
	binary.LittleEndian.PutUint32(header[4:8], 36+dataLength)
	copy(header[8:12], riff.WavFormatID[:])

	// fmt chunk (24 bytes)
	copy(header[12:16], riff.FmtID[:])
	binary.LittleEndian.PutUint32(header[16:20], pcmFmtChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], f.audioFormat)
	binary.LittleEndian.PutUint16(header[22:24], f.channels)
	binary.LittleEndian.PutUint32(header[24:28], f.sampleRate)
	binary.LittleEndian.PutUint32(header[28:32], f.byteRate)
	binary.LittleEndian.PutUint16(header[32:34], f.blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], f.bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], riff.DataFormatID[:])
	binary.LittleEndian.PutUint32(header[40:44], dataLength)

	return header
}

// Assemble concatenates the header and the encoded samples into a new buffer.
func Assemble(header [HeaderSize]byte, encoded []byte) []byte {
	out := make([]byte, HeaderSize+len(encoded))
	copy(out, header[:])
	copy(out[HeaderSize:], encoded)

	return out
}

// WriteTo writes a complete μ-law WAV holding encoded to w.
func WriteTo(w io.Writer, encoded []byte) error {
	if uint64(len(encoded)) > math.MaxUint32-36 {
		return errDataTooLarge
	}

	header := BuildHeader(uint32(len(encoded)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := w.Write(encoded); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}

	return nil
}

// PCM16Wave wraps interleaved little endian 16-bit samples in a canonical
// PCM WAV container. A trailing partial frame is dropped.
func PCM16Wave(sampleRate, channels int, data []byte) ([]byte, error) {
	if channels < 1 || channels > math.MaxUint16 {
		return nil, &FormatError{Field: "channels", Value: uint32(channels), Err: ErrUnsupportedChannelCount}
	}

	if sampleRate <= 0 || uint64(sampleRate) > math.MaxUint32 {
		return nil, &FormatError{Field: "sample rate", Value: uint32(sampleRate), Err: ErrUnsupportedSampleRate}
	}

	blockAlign := channels * 2
	data = data[:len(data)-len(data)%blockAlign]

	if uint64(len(data)) > math.MaxUint32-36 {
		return nil, errDataTooLarge
	}

	header := buildHeader(fmtFields{
		audioFormat:   wavFormatPCM,
		channels:      uint16(channels),
		sampleRate:    uint32(sampleRate),
		byteRate:      uint32(sampleRate * blockAlign),
		blockAlign:    uint16(blockAlign),
		bitsPerSample: pcmBitDepth,
	}, uint32(len(data)))

	return Assemble(header, data), nil
}

// EncodePCM16 serializes a 16-bit integer buffer as a PCM WAV. Samples are
// clamped to the int16 range.
func EncodePCM16(buf *audio.IntBuffer) ([]byte, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: missing buffer format", ErrUnsupportedFmtChunk)
	}

	if depth := buf.SourceBitDepth; depth != 0 && depth != pcmBitDepth {
		return nil, &FormatError{Field: "bits per sample", Value: uint32(depth), Err: ErrUnsupportedBitDepth}
	}

	data := make([]byte, len(buf.Data)*2)
	for i, v := range buf.Data {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(clampInt16(v)))
	}

	return PCM16Wave(buf.Format.SampleRate, buf.Format.NumChannels, data)
}

func clampInt16(v int) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}

	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}
