package ulaw

import (
	"encoding/binary"
	"fmt"
)

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
	fmtChunkOffset  = 12
)

// ChunkHeader describes one RIFF sub-chunk found while scanning a buffer.
type ChunkHeader struct {
	ID   [4]byte
	Size uint32
	// Offset is the position of the first payload byte.
	Offset int
}

func (c ChunkHeader) String() string {
	return fmt.Sprintf("%q size=%d offset=%d", c.ID[:], c.Size, c.Offset)
}

// Region is a read-only window on the data chunk payload of a source buffer.
type Region struct {
	Start int
	// Declared is the size stored in the data chunk header.
	Declared uint32
	// Length is Declared clamped to the physical end of the buffer.
	Length int
	// Truncated reports that the declared size overruns the buffer.
	Truncated bool
}

// Bytes returns the payload view inside buf, never reading past its end.
func (r Region) Bytes(buf []byte) []byte {
	if r.Start >= len(buf) {
		return nil
	}

	return buf[r.Start : r.Start+r.Length]
}

// readChunkHeader reads the tag and size at offset. ok is false when the
// 8 byte header does not fit in buf.
func readChunkHeader(buf []byte, offset int) (ChunkHeader, bool) {
	if offset < 0 || offset+chunkHeaderSize > len(buf) {
		return ChunkHeader{}, false
	}

	var hdr ChunkHeader
	copy(hdr.ID[:], buf[offset:offset+4])
	hdr.Size = binary.LittleEndian.Uint32(buf[offset+4 : offset+8])
	hdr.Offset = offset + chunkHeaderSize

	return hdr, true
}

// nextChunkOffset advances past a chunk without any word alignment padding.
func nextChunkOffset(hdr ChunkHeader) int64 {
	return int64(hdr.Offset) + int64(hdr.Size)
}

// Chunks lists every sub-chunk header after the RIFF/WAVE preamble, including
// chunks that follow data. The walk stops at the first header that does not
// fit or after the first chunk whose declared size overruns the buffer.
func Chunks(buf []byte) ([]ChunkHeader, error) {
	if err := checkRiffWave(buf); err != nil {
		return nil, err
	}

	var chunks []ChunkHeader

	offset := int64(riffHeaderSize)
	for offset < int64(len(buf)) {
		hdr, ok := readChunkHeader(buf, int(offset))
		if !ok {
			break
		}

		chunks = append(chunks, hdr)

		next := nextChunkOffset(hdr)
		if next > int64(len(buf)) {
			break
		}

		offset = next
	}

	return chunks, nil
}
