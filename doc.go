// SPDX-License-Identifier: EPL-2.0

// Package audpipe opens audio files as random-access streams of mono signed
// 16-bit PCM at 32 kHz or more, ready for waveform display, spectrum
// analysis or clip export.
//
// # Quick Start
//
//	p, err := audpipe.Open("speech.flac")
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	buf := make([]byte, 2*4096)
//	if err := p.GetAudio(buf, 0, 4096); err != nil {
//	    return err
//	}
//
// GetAudio takes any range. Frames before zero or past the end come back as
// silence, and so does a range the decoder fails to read; only invalid
// arguments are reported as errors.
//
// # Supported Formats
//
// Open probes, in order:
//   - "dummy-audio:" URIs via audio.NewDummy
//   - WAV and Sony Wave64 via formats/wav
//   - FLAC via formats/flac
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//
// A file every format rejects fails with audio.ErrDataNotFound. Use
// WithRegistry to change the list.
//
// # Pipeline
//
// The opened source goes through audio.NewConvertProvider, which turns
// float samples into integers, narrows to 16 bits, mixes down to mono and
// doubles the rate until it reaches 32 kHz. Compressed formats are then put
// behind a cache (see the cache package) so seeking is cheap:
//
//	p, err := audpipe.Open("long.mp3",
//	    audpipe.WithCacheMode(audpipe.CacheDisk),
//	    audpipe.WithCacheDir("/var/tmp"),
//	)
//
// Uncompressed formats, and every format under CacheNone, are read directly
// behind a mutex.
//
// # Writing Clips
//
// formats/wav writes any provider's range back out as a WAV file:
//
//	err := wav.SaveAudioClip(p, "clip.wav", 1500, 4000)
//
// # Observability
//
// WithLogger and WithMetrics thread a zap logger and a metrics.Metrics
// collector through every stage. Read failures are logged at warn level
// and counted per format.
package audpipe
