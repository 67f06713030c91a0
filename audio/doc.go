// SPDX-License-Identifier: EPL-2.0

// Package audio provides random-access PCM providers and the stages that
// normalize them.
//
// A Source decodes frames on demand. Provider wraps a Source and applies the
// read policy every consumer relies on:
//   - frames before 0 or past NumSamples are silence (0x80 for unsigned
//     8-bit, zero otherwise)
//   - a failed read is logged and turned into silence, never returned
//   - GetAudioWithVolume scales 16-bit samples with rounding and saturation
//
// # Normalization
//
// NewConvertProvider chains only the stages a stream needs:
//
//	FloatConverter     float32/float64 -> int16
//	BitdepthConverter  any integer width up to 64 bits -> int16
//	MonoMixer          N channels -> 1 by mean
//	SampleDoubler      rate x2, repeated until the rate is at least 32 kHz
//
// Every stage embeds Wrapper, owns the provider it wraps and closes it on
// Close:
//
//	p, err := audio.NewConvertProvider(audio.New(src, audio.WithLogger(log)))
//	buf := make([]byte, 2*4096)
//	err = p.GetAudio(buf, start, 4096)
//
// # Probing
//
// Registry keeps Openers in registration order. Probe returns the first
// Source that opens; when none does, the error wraps ErrDataNotFound only if
// every Opener said the input was not its format.
//
// # Sample Format
//
// Buffers hold interleaved little-endian samples. After normalization a frame
// is one int16.
package audio
