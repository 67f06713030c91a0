// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/audpipe/utils"
)

// MonoMixer downmixes 16-bit multi-channel audio to mono by averaging the
// channels of each frame. The mean truncates toward zero.
type MonoMixer struct {
	Wrapper
	srcChannels int
}

func NewMonoMixer(src *Provider) (*MonoMixer, error) {
	f := src.Format()
	if f.BytesPerSample != 2 || f.Float {
		return nil, fmt.Errorf("%w: mono mixer needs 16-bit input", ErrInternal)
	}
	if f.Channels < 2 {
		return nil, fmt.Errorf("%w: mono mixer needs multi-channel input", ErrInternal)
	}

	m := &MonoMixer{Wrapper: NewWrapper(src), srcChannels: f.Channels}
	m.format.Channels = 1

	return m, nil
}

func (m *MonoMixer) FillBuffer(buf []byte, start, count int64) error {
	channels := m.srcChannels
	frames := int(count)
	src := make([]byte, frames*channels*2)
	if err := m.source.GetAudio(src, start, count); err != nil {
		return err
	}

	switch channels {
	case 2: // Stereo (most common)
		for f := range frames {
			sum := int(utils.Int16At(src, 2*f)) + int(utils.Int16At(src, 2*f+1))
			utils.PutInt16At(buf, f, int16(sum/2))
		}
	default:
		for f := range frames {
			sum := 0
			base := f * channels
			for c := range channels {
				sum += int(utils.Int16At(src, base+c))
			}
			utils.PutInt16At(buf, f, int16(sum/channels))
		}
	}

	return nil
}
