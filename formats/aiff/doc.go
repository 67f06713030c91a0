// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
// Currently supported:
//   - AIFF (Audio Interchange File Format)
//   - PCM from 1 to 32 bits per sample
//   - Mono and multi-channel
//   - Any sample rate
//
// # Decoding AIFF Files
//
//	src, err := aiff.Open("audio.aif")
//	if err != nil {
//	    // Handle error
//	}
//	p := audio.New(src, audio.WithName("aiff"))
//
// Samples are converted from big-endian to the little-endian layout every
// audio.Source produces. Signed 8-bit samples are biased by 128 so that
// 8-bit output is unsigned, as in WAV.
//
// # Seeking
//
// go-audio/aiff only decodes forward. A read past the current position
// decodes and discards the frames in between; a read before it rewinds to
// the start of the file. Sources report NeedsCache.
package aiff
