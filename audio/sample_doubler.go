// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/audpipe/utils"
)

// SampleDoubler doubles the sample rate of 16-bit mono audio by linear
// interpolation. Output frame 2k is source frame k; output frame 2k+1 is the
// rounded mean of source frames k and k+1, with the last source frame
// standing in for the one past the end. The mean rounds half away from
// zero, so it can differ by one from a truncating (a+b)/2.
type SampleDoubler struct {
	Wrapper
	srcSamples int64
}

func NewSampleDoubler(src *Provider) (*SampleDoubler, error) {
	f := src.Format()
	if f.BytesPerSample != 2 || f.Float {
		return nil, fmt.Errorf("%w: sample doubler needs 16-bit input", ErrInternal)
	}
	if f.Channels != 1 {
		return nil, fmt.Errorf("%w: sample doubler needs mono input", ErrInternal)
	}

	d := &SampleDoubler{Wrapper: NewWrapper(src), srcSamples: f.NumSamples}
	d.format.SampleRate *= 2
	d.format.NumSamples *= 2

	return d, nil
}

func (d *SampleDoubler) DecodedSamples() int64 { return d.source.DecodedSamples() * 2 }

// FillBuffer reads the source frames covering the request plus one frame of
// lookahead. With an even start the source frames fit in the front of buf and
// the output is expanded in place from the back; otherwise a scratch buffer
// holds them.
func (d *SampleDoubler) FillBuffer(buf []byte, start, count int64) error {
	if count == 0 {
		return nil
	}

	first := start / 2
	last := min((start+count-1)/2+1, d.srcSamples-1)
	srcCount := last - first + 1

	var src []byte
	if start%2 == 0 && srcCount <= count {
		src = buf[:srcCount*2]
	} else {
		src = make([]byte, srcCount*2)
	}

	if err := d.source.GetAudio(src, first, srcCount); err != nil {
		return err
	}

	sample := func(k int64) int16 {
		return utils.Int16At(src, int(min(k, srcCount-1)))
	}

	for j := count - 1; j >= 0; j-- {
		pos := start + j
		k := pos/2 - first

		v := sample(k)
		if pos%2 == 1 {
			v = utils.Midpoint16(v, sample(k+1))
		}
		utils.PutInt16At(buf, int(j), v)
	}

	return nil
}
