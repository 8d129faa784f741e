// This tool writes a 16-bit PCM sine wave WAV file, handy as wav2ulaw input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/cwbudde/ulaw"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var errBadRate = errors.New("rate must be a positive multiple of 8000")

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-tone", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	rate := flagSet.Int("rate", 48000, "sample rate in hertz")
	channels := flagSet.Int("channels", 1, "number of channels, 1 or 2")
	amplitude := flagSet.Float64("amplitude", 0.8, "peak level between 0 and 1")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *rate <= 0 || *rate%ulaw.OutputSampleRate != 0 {
		return fmt.Errorf("%w: %d", errBadRate, *rate)
	}

	if *channels != 1 && *channels != 2 {
		return fmt.Errorf("%w: %d", ulaw.ErrUnsupportedChannelCount, *channels)
	}

	log.Printf("generating a %f sec sine wav at %f hz (%d Hz, %d channel(s))", *length, *frequency, *rate, *channels)

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer file.Close()

	wavOut := wav.NewEncoder(file, *rate, 16, *channels, 1)
	if err := wavOut.Write(tone(*rate, *channels, *frequency, *length, *amplitude)); err != nil {
		return err
	}

	return wavOut.Close()
}

// tone renders an interleaved sine with the same value on every channel.
func tone(rate, channels int, frequency, length, amplitude float64) *audio.IntBuffer {
	numFrames := int(float64(rate) * length)
	peak := math.Max(0, math.Min(amplitude, 1)) * math.MaxInt16

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: 16,
		Data:           make([]int, numFrames*channels),
	}

	for i := 0; i < numFrames; i++ {
		fv := math.Sin(float64(i) / float64(rate) * frequency * 2 * math.Pi)
		v := int(math.Round(fv * peak))

		for c := 0; c < channels; c++ {
			buf.Data[i*channels+c] = v
		}
	}

	return buf
}
