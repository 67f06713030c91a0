// SPDX-License-Identifier: EPL-2.0

package cache

import (
	"fmt"

	"github.com/ik5/audpipe/audio"
	"go.uber.org/zap"
)

// BlockSize is the size of one RAM cache block.
const BlockSize = 1 << 22

// ramStore keeps bytes in fixed blocks allocated up front, so a block never
// moves while the decoder writes to it.
type ramStore struct {
	blocks [][]byte
}

func newRAMStore(size int64) *ramStore {
	n := (size + BlockSize - 1) / BlockSize
	s := &ramStore{blocks: make([][]byte, n)}
	for i := range s.blocks {
		s.blocks[i] = make([]byte, BlockSize)
	}
	return s
}

func (s *ramStore) span(off, n int64) []byte {
	first, last := off/BlockSize, (off+n-1)/BlockSize
	if first != last {
		return nil
	}
	i := off % BlockSize
	return s.blocks[first][i : i+n]
}

func (s *ramStore) writeAt(b []byte, off int64) {
	for len(b) > 0 {
		n := copy(s.blocks[off/BlockSize][off%BlockSize:], b)
		b = b[n:]
		off += int64(n)
	}
}

func (s *ramStore) readAt(b []byte, off int64) {
	for len(b) > 0 {
		n := copy(b, s.blocks[off/BlockSize][off%BlockSize:])
		b = b[n:]
		off += int64(n)
	}
}

func (s *ramStore) close() error {
	s.blocks = nil
	return nil
}

// NewRAM decodes p into memory. It takes ownership of p and closes it on
// failure. When the available memory cannot be determined the check is
// skipped.
func NewRAM(p *audio.Provider, opts ...Option) (*Cache, error) {
	o := newOptions(p.Logger(), p.Metrics(), opts)

	f := p.Format()
	size := f.NumSamples * int64(f.FrameSize())

	avail, err := o.availableMem()
	switch {
	case err != nil:
		o.logger.Warn("could not determine available memory", zap.Error(err))
	case uint64(size) > avail:
		_ = p.Close()
		return nil, fmt.Errorf("%w: need %d bytes, %d available", audio.ErrNotEnoughMemory, size, avail)
	}

	return newCache(p, "ram", newRAMStore(size), o), nil
}
