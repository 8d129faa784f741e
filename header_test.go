package ulaw

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

func TestBuildHeader(t *testing.T) {
	got := BuildHeader(100)

	want := []byte{
		'R', 'I', 'F', 'F', 136, 0, 0, 0, 'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ', 16, 0, 0, 0,
		7, 0, // mu-law
		1, 0, // mono
		0x40, 0x1F, 0, 0, // 8000 Hz
		0x40, 0x1F, 0, 0, // 8000 bytes/s
		1, 0, // block align
		8, 0, // bits per sample
		'd', 'a', 't', 'a', 100, 0, 0, 0,
	}

	if !bytes.Equal(got[:], want) {
		t.Fatalf("BuildHeader(100)=\n%x\nwant\n%x", got, want)
	}
}

func TestHeaderParsesWithRiff(t *testing.T) {
	encoded := make([]byte, 13)
	out := Assemble(BuildHeader(uint32(len(encoded))), encoded)

	r := bytes.NewReader(out)
	parser := riff.New(r)

	id, size, err := parser.IDnSize()
	if err != nil {
		t.Fatal(err)
	}

	if id != riff.RiffID || int(size) != len(out)-8 {
		t.Fatalf("unexpected RIFF header %q size %d", id, size)
	}

	var format [4]byte
	if err := binary.Read(r, binary.BigEndian, &format); err != nil {
		t.Fatal(err)
	}

	if format != riff.WavFormatID {
		t.Fatalf("unexpected form type %q", format)
	}

	fmtChunk, err := parser.NextChunk()
	if err != nil {
		t.Fatal(err)
	}

	if fmtChunk.ID != riff.FmtID || fmtChunk.Size != 16 {
		t.Fatalf("unexpected fmt chunk %q size %d", fmtChunk.ID, fmtChunk.Size)
	}

	var tag uint16
	if err := fmtChunk.ReadLE(&tag); err != nil {
		t.Fatal(err)
	}

	if tag != 7 {
		t.Fatalf("format tag=%d, want 7", tag)
	}

	fmtChunk.Drain()

	dataChunk, err := parser.NextChunk()
	if err != nil {
		t.Fatal(err)
	}

	// riff pads odd sizes when walking
	if dataChunk.ID != riff.DataFormatID || dataChunk.Size != 14 {
		t.Fatalf("unexpected data chunk %q size %d", dataChunk.ID, dataChunk.Size)
	}
}

func TestAssemble(t *testing.T) {
	encoded := []byte{1, 2, 3}
	header := BuildHeader(3)

	out := Assemble(header, encoded)
	if len(out) != HeaderSize+3 {
		t.Fatalf("len=%d, want %d", len(out), HeaderSize+3)
	}

	if !bytes.Equal(out[:HeaderSize], header[:]) || !bytes.Equal(out[HeaderSize:], encoded) {
		t.Fatalf("unexpected assembled buffer %x", out)
	}

	// the output owns its bytes
	encoded[0] = 9
	if out[HeaderSize] != 1 {
		t.Fatalf("Assemble must copy the encoded stream")
	}
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("disk full")
	}

	w.n--

	return len(p), nil
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer

	encoded := []byte{0x6F, 0xFF, 0x7F}
	if err := WriteTo(&buf, encoded); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	if !bytes.Equal(buf.Bytes(), Assemble(BuildHeader(3), encoded)) {
		t.Fatalf("WriteTo and Assemble disagree")
	}

	for n := 0; n < 2; n++ {
		if err := WriteTo(&failingWriter{n: n}, encoded); err == nil {
			t.Fatalf("expected a write error after %d writes", n)
		}
	}
}

func TestPCM16Wave(t *testing.T) {
	data := payloadOf(1, 2, 3, 4, 5)
	// odd trailing byte is dropped along with the partial stereo frame
	data = append(data, 0xAA)

	buf, err := PCM16Wave(16000, 2, data)
	if err != nil {
		t.Fatalf("PCM16Wave failed: %v", err)
	}

	f, err := Validate(buf)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if f.NumChannels != 2 || f.SampleRate != 16000 || f.ByteRate != 64000 || f.BlockAlign != 4 {
		t.Fatalf("unexpected format %+v", f)
	}

	r, err := LocateData(buf, 16)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(r.Bytes(buf), payloadOf(1, 2, 3, 4)) {
		t.Fatalf("unexpected payload %x", r.Bytes(buf))
	}

	if _, err := PCM16Wave(8000, 0, nil); !errors.Is(err, ErrUnsupportedChannelCount) {
		t.Fatalf("expected %v, got %v", ErrUnsupportedChannelCount, err)
	}

	if _, err := PCM16Wave(0, 1, nil); !errors.Is(err, ErrUnsupportedSampleRate) {
		t.Fatalf("expected %v, got %v", ErrUnsupportedSampleRate, err)
	}
}

func TestEncodePCM16(t *testing.T) {
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		SourceBitDepth: 16,
		Data:           []int{0, 1000, -40000, 40000},
	}

	out, err := EncodePCM16(buf)
	if err != nil {
		t.Fatalf("EncodePCM16 failed: %v", err)
	}

	r, err := LocateData(out, 16)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(r.Bytes(out), payloadOf(0, 1000, -32768, 32767)) {
		t.Fatalf("unexpected payload %x", r.Bytes(out))
	}

	buf.SourceBitDepth = 24
	if _, err := EncodePCM16(buf); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Fatalf("expected %v, got %v", ErrUnsupportedBitDepth, err)
	}

	if _, err := EncodePCM16(nil); err == nil {
		t.Fatalf("expected an error for a nil buffer")
	}
}
