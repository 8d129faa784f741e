// This tool prints the stream properties, chunk layout and INFO tags of a
// WAV file that wav2ulaw accepts.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cwbudde/ulaw"
	"github.com/go-audio/wav"
)

const missingPathMessage = "You must pass the path of the file to inspect"

var errMissingPath = errors.New("missing path argument")

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB"}

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	info, err := ulaw.Inspect(data)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(args[0]), err)
	}

	f := info.Format
	fmt.Fprintf(out, "File: %s\n", filepath.Base(args[0]))
	fmt.Fprintf(out, "Bit rate: %d bps\n", f.BitRate())
	fmt.Fprintf(out, "Channels: %d\n", f.NumChannels)
	fmt.Fprintf(out, "Sample rate: %d Hz\n", f.SampleRate)
	fmt.Fprintf(out, "Sample size: %d bit\n", f.BitsPerSample)
	fmt.Fprintf(out, "Duration: %s\n", formatDuration(info.Duration))
	fmt.Fprintf(out, "File size: %s\n", formatFileSize(int64(info.FileSize)))
	fmt.Fprintf(out, "Output: %d bytes of μ-law\n", ulaw.HeaderSize+f.OutputLength(info.Data))

	if info.Data.Truncated {
		fmt.Fprintf(out, "Warning: data chunk declares %d bytes, %d present\n", info.Data.Declared, info.Data.Length)
	}

	fmt.Fprintln(out, "Chunks:")

	for _, c := range info.Chunks {
		fmt.Fprintf(out, "\t%s\t%d bytes at %d\n", c.ID[:], c.Size, c.Offset)
	}

	return printTags(bytes.NewReader(data), out)
}

func printTags(r io.ReadSeeker, out io.Writer) error {
	dec := wav.NewDecoder(r)
	dec.ReadMetadata()

	if err := dec.Err(); err != nil {
		return err
	}

	if dec.Metadata == nil {
		fmt.Fprintln(out, "No metadata present")
		return nil
	}

	tags := []struct{ name, value string }{
		{"Artist", dec.Metadata.Artist},
		{"Title", dec.Metadata.Title},
		{"Comments", dec.Metadata.Comments},
		{"Copyright", dec.Metadata.Copyright},
		{"CreationDate", dec.Metadata.CreationDate},
		{"Engineer", dec.Metadata.Engineer},
		{"Genre", dec.Metadata.Genre},
		{"Product", dec.Metadata.Product},
		{"Software", dec.Metadata.Software},
		{"TrackNbr", dec.Metadata.TrackNbr},
	}

	for _, tag := range tags {
		if tag.value != "" {
			fmt.Fprintf(out, "%s: %s\n", tag.name, tag.value)
		}
	}

	return nil
}

// formatDuration renders whole seconds as m:ss, or h:mm:ss from one hour on.
func formatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%d:%02d", m, s)
}

// formatFileSize uses 1024 based units with at most two decimals.
func formatFileSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(size)) / math.Log(1024)))
	i = min(i, len(sizeUnits)-1)

	v := math.Round(float64(size)/math.Pow(1024, float64(i))*100) / 100

	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
