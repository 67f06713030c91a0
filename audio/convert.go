// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"go.uber.org/zap"
)

// MinSampleRate is the lowest rate NewConvertProvider lets through; slower
// streams are doubled until they reach it.
const MinSampleRate = 32000

// NewConvertProvider normalizes p to mono signed 16-bit audio at no less than
// MinSampleRate, adding only the stages the stream needs, in this order:
// float conversion, bit depth conversion, downmix, repeated rate doubling.
// It takes ownership of p and closes it on failure.
func NewConvertProvider(p *Provider) (*Provider, error) {
	log := p.Logger()

	fail := func(err error) (*Provider, error) {
		_ = p.Close()
		return nil, err
	}

	if p.FloatSamples() {
		log.Debug("converting float to S16", zap.Int("bytes_per_sample", p.BytesPerSample()))
		c, err := NewFloatConverter(p)
		if err != nil {
			return fail(err)
		}
		p = p.Chain(c, "float-converter")
	}

	if p.BytesPerSample() != 2 {
		log.Debug("converting bit depth to S16", zap.Int("bytes_per_sample", p.BytesPerSample()))
		c, err := NewBitdepthConverter(p)
		if err != nil {
			return fail(err)
		}
		p = p.Chain(c, "bitdepth-converter")
	}

	if p.Channels() != 1 {
		log.Debug("downmixing to mono", zap.Int("channels", p.Channels()))
		m, err := NewMonoMixer(p)
		if err != nil {
			return fail(err)
		}
		p = p.Chain(m, "mono-mixer")
	}

	if p.SampleRate() <= 0 {
		return fail(fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, p.SampleRate()))
	}

	for p.SampleRate() < MinSampleRate {
		log.Debug("doubling sample rate", zap.Int("sample_rate", p.SampleRate()))
		d, err := NewSampleDoubler(p)
		if err != nil {
			return fail(err)
		}
		p = p.Chain(d, "sample-doubler")
	}

	return p, nil
}
