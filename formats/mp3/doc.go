// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides random-access MP3 decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files and
// exposes them as an audio.Source:
//
//	src, err := mp3.Open("audio.mp3")
//	if err != nil {
//	    // Handle error
//	}
//	p := audio.New(src, audio.WithName("mp3"))
//
// # Output Format
//
// MP3 decoder output:
//   - Sample format: signed 16-bit little-endian
//   - Channels: 2 (go-mp3 duplicates mono streams)
//   - Sample rate: Depends on the MP3 file (typically 44.1kHz or 48kHz)
//
// Use audio.NewConvertProvider to get mono output.
//
// # Seeking
//
// Reads that continue where the previous one stopped go straight to the
// decoder. Any other read seeks first, and go-mp3 seeks by decoding from
// the nearest frame, so the source reports NeedsCache and is normally read
// through a cache.
//
// # Limitations
//
// Note:
//   - MP3 writing is not supported (decoding only)
//   - The input must be seekable; Open scans the whole file once to learn
//     its length
package mp3
