// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/audpipe/utils"
)

// BitdepthConverter rescales integer samples of any width up to 64 bits to
// signed 16-bit by a power-of-two shift. 8-bit input is unsigned with a bias
// of 128; wider input is signed.
type BitdepthConverter struct {
	Wrapper
	srcBytes int
}

func NewBitdepthConverter(src *Provider) (*BitdepthConverter, error) {
	f := src.Format()
	if f.Float {
		return nil, fmt.Errorf("%w: bit depth converter needs integer input", ErrInternal)
	}
	if f.BytesPerSample < 1 || f.BytesPerSample > 8 {
		return nil, fmt.Errorf("%w: %d bytes per sample", ErrUnsupportedFormat, f.BytesPerSample)
	}

	c := &BitdepthConverter{Wrapper: NewWrapper(src), srcBytes: f.BytesPerSample}
	c.format.BytesPerSample = 2

	return c, nil
}

func (c *BitdepthConverter) FillBuffer(buf []byte, start, count int64) error {
	n := int(count) * c.format.Channels
	w := c.srcBytes
	src := make([]byte, n*w)
	if err := c.source.GetAudio(src, start, count); err != nil {
		return err
	}

	for i := range n {
		var v int64
		if w == 1 {
			v = int64(src[i]) - 128
		} else {
			v = utils.IntLE(src[i*w : (i+1)*w])
		}

		if w > 2 {
			v >>= (w - 2) * 8
		} else if w < 2 {
			v <<= (2 - w) * 8
		}

		utils.PutInt16At(buf, i, int16(v))
	}

	return nil
}
