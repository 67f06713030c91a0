// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/audpipe/metrics"
	"github.com/ik5/audpipe/utils"
	"go.uber.org/zap"
)

// Format describes the PCM stream a Source produces.
type Format struct {
	Channels       int
	SampleRate     int
	BytesPerSample int
	Float          bool
	// NumSamples is the declared length in frames.
	NumSamples int64
}

// FrameSize is the number of bytes one interleaved frame occupies.
func (f Format) FrameSize() int { return f.Channels * f.BytesPerSample }

// SilenceByte is the byte pattern that encodes silence: 0x80 for unsigned
// 8-bit samples, zero for everything else.
func (f Format) SilenceByte() byte {
	if f.BytesPerSample == 1 && !f.Float {
		return 0x80
	}
	return 0
}

// Source is a random-access PCM decoder. FillBuffer is only called with a
// range inside [0, NumSamples) and writes count*FrameSize bytes of
// little-endian interleaved samples into buf.
type Source interface {
	Format() Format
	FillBuffer(buf []byte, start, count int64) error
	Close() error
}

// Sources that decode in the background report how many frames are
// available without padding.
type decodedCounter interface {
	DecodedSamples() int64
}

// Sources backed by slow decoders ask to be wrapped in a cache.
type cacheHinter interface {
	NeedsCache() bool
}

// Provider applies the read policy shared by every Source: out-of-range
// frames become silence, failed reads become silence and are logged.
type Provider struct {
	src     Source
	format  Format
	logger  *zap.Logger
	metrics *metrics.Metrics
	name    string
}

// New wraps src in a Provider.
func New(src Source, opts ...Option) *Provider {
	o := newOptions(opts)

	return &Provider{
		src:     src,
		format:  src.Format(),
		logger:  o.logger,
		metrics: o.metrics,
		name:    o.name,
	}
}

// Chain wraps src, typically a stage built on top of p, in a Provider that
// shares p's logger and metrics.
func (p *Provider) Chain(src Source, name string) *Provider {
	return &Provider{
		src:     src,
		format:  src.Format(),
		logger:  p.logger,
		metrics: p.metrics,
		name:    name,
	}
}

// GetAudio fills buf with count frames starting at frame start. start may be
// negative and the range may run past the end; those frames are silence.
// Decode failures are logged and replaced by silence over the whole range.
// An error is returned only for invalid arguments.
func (p *Provider) GetAudio(buf []byte, start, count int64) error {
	if count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidArgument, count)
	}

	frame := int64(p.format.FrameSize())
	if count > int64(len(buf))/max(frame, 1) {
		return fmt.Errorf("%w: %d frames of %d bytes, have %d bytes", ErrInvalidDstSize, count, frame, len(buf))
	}
	if count == 0 {
		return nil
	}

	silence := p.format.SilenceByte()
	out := buf[:count*frame]
	inRange := out

	if start < 0 {
		lead := min(-start, count)
		utils.Fill(inRange[:lead*frame], silence)
		inRange = inRange[lead*frame:]
		start += lead
		count -= lead
	}

	if end := p.format.NumSamples; start+count > end {
		tail := min(count, start+count-end)
		utils.Fill(inRange[(count-tail)*frame:], silence)
		count -= tail
	}

	if count <= 0 {
		return nil
	}

	if err := p.src.FillBuffer(inRange[:count*frame], start, count); err != nil {
		utils.Fill(out, silence)
		p.logger.Warn("audio read failed, substituting silence",
			zap.String("provider", p.name),
			zap.Int64("start", start),
			zap.Int64("count", count),
			zap.Error(err))
		p.metrics.RecordDecodeFailure(p.name)
	}

	return nil
}

// GetAudioWithVolume is GetAudio followed by scaling every sample by volume
// with rounding and int16 saturation. It only works on 16-bit streams.
func (p *Provider) GetAudioWithVolume(buf []byte, start, count int64, volume float64) error {
	if p.format.BytesPerSample != 2 {
		return fmt.Errorf("%w: volume scaling needs 16-bit samples, stream has %d bytes per sample",
			ErrInternal, p.format.BytesPerSample)
	}

	if err := p.GetAudio(buf, start, count); err != nil {
		return err
	}
	if volume == 1.0 {
		return nil
	}

	n := int(count) * p.format.Channels
	for i := range n {
		utils.PutInt16At(buf, i, utils.ScaleInt16(utils.Int16At(buf, i), volume))
	}

	return nil
}

func (p *Provider) Format() Format            { return p.format }
func (p *Provider) NumSamples() int64         { return p.format.NumSamples }
func (p *Provider) SampleRate() int           { return p.format.SampleRate }
func (p *Provider) BytesPerSample() int       { return p.format.BytesPerSample }
func (p *Provider) Channels() int             { return p.format.Channels }
func (p *Provider) FloatSamples() bool        { return p.format.Float }
func (p *Provider) Name() string              { return p.name }
func (p *Provider) Logger() *zap.Logger       { return p.logger }
func (p *Provider) Metrics() *metrics.Metrics { return p.metrics }

// DecodedSamples is the number of frames readable without padding. It equals
// NumSamples unless the source decodes in the background.
func (p *Provider) DecodedSamples() int64 {
	if d, ok := p.src.(decodedCounter); ok {
		return d.DecodedSamples()
	}
	return p.format.NumSamples
}

// NeedsCache reports whether reads are slow enough that the provider should
// be put behind a cache.
func (p *Provider) NeedsCache() bool {
	if h, ok := p.src.(cacheHinter); ok {
		return h.NeedsCache()
	}
	return false
}

// Close releases the source and everything it wraps.
func (p *Provider) Close() error {
	if err := p.src.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", p.name, err)
	}
	return nil
}
