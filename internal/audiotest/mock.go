// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio.Source implementations for tests.
package audiotest

import (
	"encoding/binary"
	"math"
	"sync/atomic"
	"time"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/utils"
)

// MockSource generates samples from a function of the frame index and
// channel. Integer samples are truncated to the format's width.
type MockSource struct {
	format     audio.Format
	intValue   func(frame int64, channel int) int64
	floatValue func(frame int64, channel int) float64

	needsCache bool
	fail       error
	delay      time.Duration

	reads  atomic.Int64
	closed atomic.Bool
}

// NewMockSource creates an integer source.
func NewMockSource(format audio.Format, value func(frame int64, channel int) int64) *MockSource {
	return &MockSource{format: format, intValue: value}
}

// NewFloatSource creates a source of float32 (bytesPerSample 4) or float64
// (bytesPerSample 8) samples.
func NewFloatSource(format audio.Format, value func(frame int64, channel int) float64) *MockSource {
	format.Float = true
	return &MockSource{format: format, floatValue: value}
}

// NewRampSource creates a mono source whose sample at frame i is i+bias.
func NewRampSource(bytesPerSample int, numSamples int64, sampleRate int, bias int64) *MockSource {
	return NewMockSource(audio.Format{
		Channels:       1,
		SampleRate:     sampleRate,
		BytesPerSample: bytesPerSample,
		NumSamples:     numSamples,
	}, func(frame int64, _ int) int64 { return frame + bias })
}

// NewSilentSource creates a source that generates silence.
func NewSilentSource(sampleRate, channels int, numSamples int64) *MockSource {
	return NewMockSource(audio.Format{
		Channels:       channels,
		SampleRate:     sampleRate,
		BytesPerSample: 2,
		NumSamples:     numSamples,
	}, func(int64, int) int64 { return 0 })
}

// NewSineSource creates a 16-bit source with the same sine wave on every
// channel.
func NewSineSource(sampleRate, channels int, numSamples int64, frequency float64) *MockSource {
	return NewMockSource(audio.Format{
		Channels:       channels,
		SampleRate:     sampleRate,
		BytesPerSample: 2,
		NumSamples:     numSamples,
	}, func(frame int64, _ int) int64 {
		t := float64(frame) / float64(sampleRate)
		return int64(math.Round(math.Sin(2*math.Pi*frequency*t) * 16384))
	})
}

// WithNeedsCache makes the source ask for a cache.
func (m *MockSource) WithNeedsCache() *MockSource {
	m.needsCache = true
	return m
}

// WithFailure makes every FillBuffer call fail with err.
func (m *MockSource) WithFailure(err error) *MockSource {
	m.fail = err
	return m
}

// WithDelay makes every FillBuffer call sleep for d first.
func (m *MockSource) WithDelay(d time.Duration) *MockSource {
	m.delay = d
	return m
}

// Reads is the number of FillBuffer calls so far.
func (m *MockSource) Reads() int64 { return m.reads.Load() }

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed.Load() }

func (m *MockSource) Format() audio.Format { return m.format }
func (m *MockSource) NeedsCache() bool     { return m.needsCache }

func (m *MockSource) Close() error {
	m.closed.Store(true)
	return nil
}

func (m *MockSource) FillBuffer(buf []byte, start, count int64) error {
	m.reads.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.fail != nil {
		return m.fail
	}

	w := m.format.BytesPerSample
	channels := m.format.Channels
	i := 0
	for frame := start; frame < start+count; frame++ {
		for c := range channels {
			out := buf[i*w : (i+1)*w]
			if m.format.Float {
				v := m.floatValue(frame, c)
				if w == 4 {
					binary.LittleEndian.PutUint32(out, math.Float32bits(float32(v)))
				} else {
					binary.LittleEndian.PutUint64(out, math.Float64bits(v))
				}
			} else {
				utils.PutIntLE(out, m.intValue(frame, c))
			}
			i++
		}
	}

	return nil
}
