package ulaw

import (
	"encoding/binary"
	"math"
)

type testChunk struct {
	id   string
	data []byte
	// size overrides len(data) in the chunk header when non-zero.
	size uint32
}

type testWave struct {
	audioFormat   uint16
	channels      uint16
	sampleRate    uint32
	bitsPerSample uint16
	fmtSize       uint32
	// extra chunks written between fmt and data
	extra []testChunk
	// samples are interleaved frames
	samples []int16
	// dataSize overrides the declared data size when non-zero.
	dataSize uint32
	noData   bool
}

func pcmWave(sampleRate uint32, channels uint16, samples ...int16) testWave {
	return testWave{
		audioFormat:   wavFormatPCM,
		channels:      channels,
		sampleRate:    sampleRate,
		bitsPerSample: 16,
		fmtSize:       16,
		samples:       samples,
	}
}

func appendChunk(buf []byte, c testChunk) []byte {
	size := c.size
	if size == 0 {
		size = uint32(len(c.data))
	}

	buf = append(buf, c.id...)
	buf = binary.LittleEndian.AppendUint32(buf, size)

	return append(buf, c.data...)
}

func (w testWave) bytes() []byte {
	fmtData := make([]byte, 0, w.fmtSize)
	blockAlign := w.channels * w.bitsPerSample / 8
	fmtData = binary.LittleEndian.AppendUint16(fmtData, w.audioFormat)
	fmtData = binary.LittleEndian.AppendUint16(fmtData, w.channels)
	fmtData = binary.LittleEndian.AppendUint32(fmtData, w.sampleRate)
	fmtData = binary.LittleEndian.AppendUint32(fmtData, w.sampleRate*uint32(blockAlign))
	fmtData = binary.LittleEndian.AppendUint16(fmtData, blockAlign)
	fmtData = binary.LittleEndian.AppendUint16(fmtData, w.bitsPerSample)

	for uint32(len(fmtData)) < w.fmtSize {
		fmtData = append(fmtData, 0)
	}

	body := []byte("WAVE")
	body = appendChunk(body, testChunk{id: "fmt ", data: fmtData})

	for _, c := range w.extra {
		body = appendChunk(body, c)
	}

	if !w.noData {
		data := make([]byte, 0, len(w.samples)*2)
		for _, s := range w.samples {
			data = binary.LittleEndian.AppendUint16(data, uint16(s))
		}

		body = appendChunk(body, testChunk{id: "data", data: data, size: w.dataSize})
	}

	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))

	return append(out, body...)
}

// referenceMuLaw evaluates the companding curve step by step.
func referenceMuLaw(pcm int) byte {
	sign := 0
	if pcm < 0 {
		pcm = -pcm
		sign = 0x80
	}

	pcm += 132
	if pcm > 32767 {
		pcm = 32767
	}

	mag := math.Floor(math.Log(1+(255*float64(pcm))/32767) / math.Log(1+255) * 128)

	return byte(int(mag) ^ sign ^ 0x7F)
}
