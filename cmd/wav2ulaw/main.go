// This tool converts a 16-bit PCM WAV file (or an AIFF, MP3 or Ogg Vorbis
// file) into an 8 kHz, 8-bit, mono μ-law WAV file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/cwbudde/ulaw"
	"github.com/cwbudde/ulaw/internal/source"
	"github.com/cwbudde/ulaw/internal/ui"
)

const missingPathMessage = "You must pass the path of the file to convert"

var errMissingPath = errors.New("missing path argument")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

type options struct {
	input   string
	output  string
	preview string
	logFile string
	noTUI   bool
}

func parseArgs(args []string, out io.Writer) (*options, error) {
	flagSet := flag.NewFlagSet("wav2ulaw", flag.ContinueOnError)
	flagSet.SetOutput(out)

	opts := &options{}
	flagSet.StringVar(&opts.output, "o", "", "output file (default: input name with a .ulaw extension)")
	flagSet.StringVar(&opts.preview, "preview", "", "also write the decoded μ-law stream as a 16-bit PCM WAV to this path")
	flagSet.StringVar(&opts.logFile, "log-file", "", "log file used while the progress display is on")
	flagSet.BoolVar(&opts.noTUI, "no-tui", false, "disable the progress display, log progress instead")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	if flagSet.NArg() < 1 {
		return nil, errMissingPath
	}

	opts.input = flagSet.Arg(0)
	if opts.output == "" {
		opts.output = defaultOutputPath(opts.input)
	}

	return opts, nil
}

// defaultOutputPath swaps the input extension for .ulaw.
func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".ulaw"
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseArgs(args, out)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(opts, out)
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := source.Load(opts.input)
	if err != nil {
		return err
	}

	if info, err := ulaw.Inspect(src); err == nil {
		logger.Printf("%s: %d Hz, %d channel(s), %d bit, %s",
			opts.input, info.Format.SampleRate, info.Format.NumChannels, info.Format.BitsPerSample, info.Duration)

		if info.Data.Truncated {
			logger.Printf("%s: data chunk declares %d bytes but only %d are present", opts.input, info.Data.Declared, info.Data.Length)
		}
	}

	var encoded []byte
	if opts.noTUI {
		encoded, err = convertPlain(ctx, src, logger)
		if err == nil {
			err = writeOutput(opts.output, encoded)
		}
	} else {
		encoded, err = convertTUI(ctx, src, opts, out)
	}

	if err != nil {
		logger.Printf("conversion of %s failed: %v", opts.input, err)
		return err
	}

	logger.Printf("wrote %s (%d bytes)", opts.output, len(encoded))

	if opts.preview != "" {
		if err := writePreview(opts.preview, encoded[ulaw.HeaderSize:]); err != nil {
			return err
		}

		logger.Printf("wrote preview %s", opts.preview)
	}

	return nil
}

func newLogger(opts *options, out io.Writer) (*log.Logger, func(), error) {
	if opts.noTUI {
		return log.New(out, "", log.LstdFlags), func() {}, nil
	}

	if opts.logFile == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}

	f, err := os.OpenFile(opts.logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening log file: %w", err)
	}

	return log.New(f, "", log.LstdFlags), func() { _ = f.Close() }, nil
}

func convertPlain(ctx context.Context, src []byte, logger *log.Logger) ([]byte, error) {
	progress := ulaw.Throttle(func(percent int) {
		if percent%10 == 0 {
			logger.Printf("progress %d%%", percent)
		}
	})

	return ulaw.Convert(ctx, src, progress)
}

type result struct {
	data []byte
	err  error
}

func convertTUI(ctx context.Context, src []byte, opts *options, out io.Writer) ([]byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := ui.NewProgram(filepath.Base(opts.input), cancel, out)
	done := make(chan result, 1)

	go func() {
		data, err := ulaw.Convert(ctx, src, ui.Reporter(prog))
		if err == nil {
			err = writeOutput(opts.output, data)
		}

		if err != nil {
			prog.Send(ui.ErrMsg{Err: err})
		} else {
			prog.Send(ui.DoneMsg{OutPath: opts.output, Bytes: len(data)})
		}

		done <- result{data: data, err: err}
	}()

	if _, err := prog.Run(); err != nil {
		cancel()
		<-done

		return nil, fmt.Errorf("failed to run the progress display: %w", err)
	}

	// the user may have quit early, the cancelled conversion then reports ctx.Err()
	res := <-done

	return res.data, res.err
}
