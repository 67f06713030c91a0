// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides random-access Ogg Vorbis decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder, and
// exposes streams as an audio.Source of float32 samples:
//
//	src, err := vorbis.Open("audio.ogg")
//	p, err := audio.NewConvertProvider(audio.New(src))
//
// audio.NewConvertProvider turns the float samples into signed 16-bit.
//
// # Output Format
//
// Ogg Vorbis decoder output:
//   - Sample format: float32, nominally in [-1.0, 1.0]
//   - Channels: Preserved from the source file
//   - Sample rate: Preserved from the source file
//
// # Seeking
//
// Out-of-order reads call SetPosition, which lands on an Ogg page and
// decodes forward to the requested sample. Sources report NeedsCache.
//
// # Limitations
//
//   - Only Vorbis codec in an Ogg container
//   - Encoding is not supported
//   - The input must be seekable so the stream length is known
package vorbis
