// Package ulaw converts uncompressed PCM WAV audio into 8 kHz, 8-bit, mono
// μ-law WAV files.
//
// The input must be a RIFF/WAVE buffer with the canonical 16 byte fmt chunk,
// 16-bit PCM samples, one or two channels and a sample rate that is a
// multiple of 8000 Hz. Any chunks between fmt and data (LIST, fact, ...) are
// skipped.
//
// The conversion runs in four steps, each usable on its own:
//
//   - Validate and LocateData parse the container.
//   - Transcode downmixes to mono, smooths with a 5 sample moving average,
//     decimates to 8 kHz and compands every kept sample.
//   - EncodeSample is the μ-law compander.
//   - BuildHeader and Assemble produce the output container (format tag 7).
//
// Convert chains them and returns either a complete output buffer or an
// error wrapping one of the Err* sentinels.
package ulaw
