// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/audpipe/utils"
)

// FloatConverter turns float32 or float64 samples into signed 16-bit ones.
type FloatConverter struct {
	Wrapper
	srcBytes int
}

func NewFloatConverter(src *Provider) (*FloatConverter, error) {
	f := src.Format()
	if !f.Float {
		return nil, fmt.Errorf("%w: float converter needs float input", ErrInternal)
	}
	if f.BytesPerSample != 4 && f.BytesPerSample != 8 {
		return nil, fmt.Errorf("%w: %d-byte float samples", ErrUnsupportedFormat, f.BytesPerSample)
	}

	c := &FloatConverter{Wrapper: NewWrapper(src), srcBytes: f.BytesPerSample}
	c.format.BytesPerSample = 2
	c.format.Float = false

	return c, nil
}

func (c *FloatConverter) FillBuffer(buf []byte, start, count int64) error {
	n := int(count) * c.format.Channels
	src := make([]byte, n*c.srcBytes)
	if err := c.source.GetAudio(src, start, count); err != nil {
		return err
	}

	if c.srcBytes == 4 {
		for i := range n {
			v := math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
			utils.PutInt16At(buf, i, utils.Float32ToInt16(v))
		}
		return nil
	}

	for i := range n {
		v := math.Float64frombits(binary.LittleEndian.Uint64(src[8*i:]))
		utils.PutInt16At(buf, i, utils.FloatToInt16(v))
	}

	return nil
}
