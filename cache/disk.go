// SPDX-License-Identifier: EPL-2.0

package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"
	"github.com/google/uuid"
	"github.com/ik5/audpipe/audio"
	"go.uber.org/zap"
)

// diskStore is a temporary file mapped read/write.
type diskStore struct {
	f    *os.File
	m    mmap.MMap
	path string // set while the file still has to be removed
}

func (s *diskStore) span(off, n int64) []byte { return s.m[off : off+n] }

func (s *diskStore) writeAt(b []byte, off int64) { copy(s.m[off:], b) }

func (s *diskStore) readAt(b []byte, off int64) { copy(b, s.m[off:]) }

func (s *diskStore) close() error {
	var errs []error
	if s.m != nil {
		errs = append(errs, s.m.Unmap())
		s.m = nil
	}
	if s.f != nil {
		errs = append(errs, s.f.Close())
		s.f = nil
	}
	if s.path != "" {
		errs = append(errs, os.Remove(s.path))
		s.path = ""
	}
	return errors.Join(errs...)
}

func newDiskStore(dir string, size int64, logger *zap.Logger) (*diskStore, error) {
	path := filepath.Join(dir, fmt.Sprintf("audio-cache-%s.tmp", uuid.New()))

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("creating cache file: %w", err)
	}
	s := &diskStore{f: f, path: path}

	if err := f.Truncate(size); err != nil {
		_ = s.close()
		return nil, fmt.Errorf("sizing cache file to %d bytes: %w", size, err)
	}

	if s.m, err = mmap.Map(f, mmap.RDWR, 0); err != nil {
		_ = s.close()
		return nil, fmt.Errorf("mapping cache file: %w", err)
	}

	if unlinkWhileMapped {
		if err := os.Remove(path); err != nil {
			logger.Warn("cache file will outlive the process", zap.String("path", path), zap.Error(err))
		} else {
			s.path = ""
		}
	}

	logger.Debug("cache file mapped", zap.String("path", path), zap.Int64("bytes", size))
	return s, nil
}

// emptyStore backs streams with no frames, which cannot be mapped.
type emptyStore struct{}

func (emptyStore) span(int64, int64) []byte { return []byte{} }
func (emptyStore) writeAt([]byte, int64)    {}
func (emptyStore) readAt([]byte, int64)     {}
func (emptyStore) close() error             { return nil }

// NewDisk decodes p into a temporary file in dir. It takes ownership of p
// and closes it on failure.
func NewDisk(p *audio.Provider, dir string, opts ...Option) (*Cache, error) {
	o := newOptions(p.Logger(), p.Metrics(), opts)

	fail := func(err error) (*Cache, error) {
		_ = p.Close()
		return nil, err
	}

	f := p.Format()
	size := f.NumSamples * int64(f.FrameSize())

	free, err := o.freeDisk(dir)
	if err != nil {
		return fail(fmt.Errorf("checking free space in %s: %w", dir, err))
	}
	if uint64(size) > free {
		return fail(fmt.Errorf("%w: need %d bytes in %s, %d free", audio.ErrNotEnoughDiskSpace, size, dir, free))
	}

	if size == 0 {
		return newCache(p, "disk", emptyStore{}, o), nil
	}

	st, err := newDiskStore(dir, size, o.logger)
	if err != nil {
		return fail(err)
	}

	return newCache(p, "disk", st, o), nil
}
