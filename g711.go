package ulaw

import (
	"math"

	"github.com/go-audio/audio"
)

const (
	muLawMu   = 255
	muLawBias = 132
	muLawClip = 32767
	// muLawSteps is the number of magnitude steps per sign.
	muLawSteps = 128
	muLawSign  = 0x80
	muLawMask  = 0x7F
)

var muLawLogBase = math.Log(1 + muLawMu)

// EncodeSample compands one signed 16-bit PCM sample into a μ-law code
// using the continuous μ=255 curve with a bias of 132.
func EncodeSample(pcm int16) byte {
	value := int(pcm)
	sign := 0

	if value < 0 {
		value = -value
		sign = muLawSign
	}

	value += muLawBias
	if value > muLawClip {
		value = muLawClip
	}

	magnitude := int(math.Floor(math.Log(1+(muLawMu*float64(value))/muLawClip) / muLawLogBase * muLawSteps))

	return byte(magnitude ^ sign ^ muLawMask)
}

// DecodeSample expands a μ-law code produced by EncodeSample back to linear
// PCM, picking the middle of the magnitude step.
func DecodeSample(code byte) int16 {
	v := int(code ^ muLawMask)
	sign := v & muLawSign
	magnitude := v & muLawMask

	// full scale magnitude 128 spills into the sign bit
	if magnitude == 0 {
		magnitude = muLawSteps
		sign ^= muLawSign
	}

	position := (float64(magnitude) + 0.5) / muLawSteps
	if magnitude == muLawSteps {
		position = 1
	}

	biased := (math.Exp(position*muLawLogBase) - 1) * muLawClip / muLawMu
	linear := int(math.Round(biased)) - muLawBias

	if linear < 0 {
		linear = 0
	}

	if sign != 0 {
		linear = -linear
	}

	if linear > math.MaxInt16 {
		linear = math.MaxInt16
	}

	return int16(linear)
}

// Expand decodes a μ-law stream into an 8 kHz mono 16-bit PCM buffer.
func Expand(encoded []byte) *audio.IntBuffer {
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  OutputSampleRate,
		},
		SourceBitDepth: pcmBitDepth,
		Data:           make([]int, len(encoded)),
	}

	for i, c := range encoded {
		buf.Data[i] = int(DecodeSample(c))
	}

	return buf
}
