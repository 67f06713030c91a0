// SPDX-License-Identifier: EPL-2.0

// Package wav reads uncompressed PCM from RIFF WAVE and Sony Wave64 files
// and writes sample ranges back out as canonical WAV files.
//
// # Reading
//
// Both container variants share one chunk walker, instantiated per variant
// with its id width, size width, alignment and header accounting:
//
//	src, err := wav.Open("capture.wav")
//	p := audio.New(src, audio.WithName("wav"))
//	buf := make([]byte, p.Format().FrameSize()*4096)
//	err = p.GetAudio(buf, 0, 4096)
//
// Open memory-maps the file. Every data chunk becomes an IndexPoint and
// reads walk the index. A data chunk that declares more bytes than the file
// holds is cut to the frames actually present, so truncated captures open
// with a shorter length instead of failing.
//
// # Writing
//
// SaveAudioClip writes the 44-byte header up front and then streams the
// selected frames through a 64 KiB buffer:
//
//	err := wav.SaveAudioClip(p, "clip.wav", 60_000, 70_000)
//
// # Error Handling
//
//   - ErrNotWavFile: not RIFF/Wave64, or no audio in it (wraps audio.ErrDataNotFound)
//   - ErrUnsupportedWavLayout: compressed or malformed format chunk
//   - ErrUnsupportedWavChunks: repeated format chunk, data before format
//   - ErrOnlyIntegerPCM: SaveAudioClip on a float provider
//
// Use errors.Is; every error except the last wraps audio.ErrProvider.
//
// # File Format
//
// WAV files written here consist of:
//   - RIFF header (12 bytes)
//   - fmt chunk (24 bytes): audio format, sample rate, channels, bit depth
//   - data chunk: actual audio samples
package wav
