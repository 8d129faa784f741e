package source

import (
	"encoding/binary"
	"math"
)

const (
	scalePCMInt16 = 32768.0
	maxPCMInt16   = 32767
)

func clampFloat32(value, min, max float32) float32 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

func float32ToPCM16(value float32) int16 {
	value = clampFloat32(value, -1, 1)

	sample := min(int64(math.Round(float64(value)*scalePCMInt16)), maxPCMInt16)

	return int16(sample)
}

// float32ToPCM16Bytes serializes normalized samples as little endian int16.
func float32ToPCM16Bytes(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(float32ToPCM16(v)))
	}

	return out
}
