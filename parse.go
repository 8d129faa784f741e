package ulaw

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-audio/riff"
)

const canonicalHeaderEnd = fmtChunkOffset + chunkHeaderSize + pcmFmtChunkSize

func checkRiffWave(buf []byte) error {
	if len(buf) < riffHeaderSize {
		return fmt.Errorf("%w: %d byte buffer", ErrNotRiffOrWave, len(buf))
	}

	if !bytes.Equal(buf[0:4], riff.RiffID[:]) || !bytes.Equal(buf[8:12], riff.WavFormatID[:]) {
		return ErrNotRiffOrWave
	}

	return nil
}

// Validate checks the RIFF/WAVE preamble and the canonical fmt chunk of buf
// and returns the decoded format. Only 16-bit PCM, mono or stereo, at a
// multiple of 8000 Hz is accepted.
func Validate(buf []byte) (*Format, error) {
	if err := checkRiffWave(buf); err != nil {
		return nil, err
	}

	if len(buf) < fmtChunkOffset+chunkHeaderSize || !bytes.Equal(buf[12:16], riff.FmtID[:]) {
		return nil, fmt.Errorf("%w: fmt chunk not found", ErrUnsupportedFmtChunk)
	}

	fmtSize := binary.LittleEndian.Uint32(buf[16:20])
	if fmtSize != pcmFmtChunkSize {
		return nil, &FormatError{Field: "fmt chunk size", Value: fmtSize, Err: ErrUnsupportedFmtChunk}
	}

	if len(buf) < canonicalHeaderEnd {
		return nil, fmt.Errorf("%w: truncated fmt chunk", ErrUnsupportedFmtChunk)
	}

	f := &Format{
		AudioFormat:   binary.LittleEndian.Uint16(buf[20:22]),
		NumChannels:   binary.LittleEndian.Uint16(buf[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(buf[24:28]),
		ByteRate:      binary.LittleEndian.Uint32(buf[28:32]),
		BlockAlign:    binary.LittleEndian.Uint16(buf[32:34]),
		BitsPerSample: binary.LittleEndian.Uint16(buf[34:36]),
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Format) validate() error {
	if f.AudioFormat != wavFormatPCM {
		return &FormatError{Field: "audio format", Value: uint32(f.AudioFormat), Err: ErrUnsupportedFormat}
	}

	if f.NumChannels != 1 && f.NumChannels != 2 {
		return &FormatError{Field: "channels", Value: uint32(f.NumChannels), Err: ErrUnsupportedChannelCount}
	}

	// a zero rate would yield a zero downsample factor
	if f.SampleRate == 0 || f.SampleRate%OutputSampleRate != 0 {
		return &FormatError{Field: "sample rate", Value: f.SampleRate, Err: ErrUnsupportedSampleRate}
	}

	if f.BitsPerSample != pcmBitDepth {
		return &FormatError{Field: "bits per sample", Value: uint32(f.BitsPerSample), Err: ErrUnsupportedBitDepth}
	}

	return nil
}

// LocateData scans the chunks following the fmt chunk and returns the region
// of the first data chunk. Any number of other chunks (LIST, fact, ...) may
// precede it.
func LocateData(buf []byte, fmtChunkSize uint32) (Region, error) {
	offset := int64(fmtChunkOffset) + chunkHeaderSize + int64(fmtChunkSize)

	for {
		if offset >= int64(len(buf)) {
			return Region{}, ErrDataChunkNotFound
		}

		hdr, ok := readChunkHeader(buf, int(offset))
		if !ok {
			return Region{}, fmt.Errorf("%w: truncated chunk header at offset %d", ErrDataChunkNotFound, offset)
		}

		if hdr.ID == riff.DataFormatID {
			return newRegion(buf, hdr), nil
		}

		offset = nextChunkOffset(hdr)
	}
}

func newRegion(buf []byte, hdr ChunkHeader) Region {
	r := Region{
		Start:    hdr.Offset,
		Declared: hdr.Size,
		Length:   int(hdr.Size),
	}

	if available := int64(len(buf) - hdr.Offset); int64(hdr.Size) > available {
		r.Length = int(available)
		r.Truncated = true
	}

	return r
}

// Info summarizes an input buffer for display.
type Info struct {
	Format   *Format
	Data     Region
	Chunks   []ChunkHeader
	Duration time.Duration
	FileSize int
}

// Inspect validates buf and collects everything a caller needs to describe it.
func Inspect(buf []byte) (*Info, error) {
	f, err := Validate(buf)
	if err != nil {
		return nil, err
	}

	data, err := LocateData(buf, pcmFmtChunkSize)
	if err != nil {
		return nil, err
	}

	chunks, err := Chunks(buf)
	if err != nil {
		return nil, err
	}

	return &Info{
		Format:   f,
		Data:     data,
		Chunks:   chunks,
		Duration: f.Duration(data.Declared),
		FileSize: len(buf),
	}, nil
}
