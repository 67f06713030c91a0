// SPDX-License-Identifier: EPL-2.0

// Package flac provides random-access FLAC decoding.
//
// This package uses github.com/mewkiz/flac, a pure Go decoder:
//
//	src, err := flac.Open("audio.flac")
//	p := audio.New(src, audio.WithName("flac"))
//
// Output keeps the stream's channels, rate and width, rounded up to whole
// bytes. Signed 8-bit streams are biased by 128 like every 8-bit source.
//
// The last decoded frame is cached, so sequential reads parse each frame
// once. Any other read seeks with the stream's seek table when it has one.
// Sources report NeedsCache.
package flac
