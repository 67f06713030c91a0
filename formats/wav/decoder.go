// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/ik5/audpipe/audio"
)

// Source reads integer PCM frames straight out of a RIFF or Wave64 file.
type Source struct {
	r      io.ReaderAt
	closer func() error
	format audio.Format
	index  []IndexPoint
	layout string
}

// NewSource parses r, trying RIFF first and Wave64 second.
func NewSource(r io.ReaderAt, size int64) (*Source, error) {
	fromHeader := func(h *header, err error) (audio.Source, error) {
		if err != nil {
			return nil, err
		}
		return &Source{r: r, format: h.format, index: h.index, layout: h.layout}, nil
	}

	src, _, err := audio.OpenFirst(
		audio.Attempt{Name: "RIFF PCM WAV", Open: func() (audio.Source, error) {
			return fromHeader(parse[[4]byte, riffLayout](r, size))
		}},
		audio.Attempt{Name: "Wave64", Open: func() (audio.Source, error) {
			return fromHeader(parse[guid, wave64Layout](r, size))
		}},
	)
	if err != nil {
		return nil, err
	}

	return src.(*Source), nil
}

// Open maps the file at path and parses it. The mapping stays open until
// Close.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is empty", ErrNotWavFile, path)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}

	release := func() error {
		return errors.Join(m.Unmap(), f.Close())
	}

	src, err := NewSource(bytes.NewReader(m), info.Size())
	if err != nil {
		_ = release()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	src.closer = release

	return src, nil
}

// Opener adapts Open to audio.Registry.
func Opener() audio.Opener {
	return audio.OpenerFunc(func(path string) (audio.Source, error) {
		return Open(path)
	})
}

func (s *Source) Format() audio.Format { return s.format }

// Index returns the data runs found in the file.
func (s *Source) Index() []IndexPoint { return s.index }

// Layout is "riff" or "wave64".
func (s *Source) Layout() string { return s.layout }

func (s *Source) FillBuffer(buf []byte, start, count int64) error {
	frame := int64(s.format.FrameSize())
	out := buf
	var pos int64

	for _, ip := range s.index {
		if count == 0 {
			break
		}

		n := int64(ip.NumSamples)
		if pos+n <= start {
			pos += n
			continue
		}

		off := start - pos
		take := min(count, n-off)
		b := out[:take*frame]
		if got, err := s.r.ReadAt(b, int64(ip.StartByte)+off*frame); got < len(b) {
			return fmt.Errorf("%w: reading %d frames at %d: %v", audio.ErrDecode, take, start, err)
		}

		out = out[take*frame:]
		count -= take
		start += take
		pos += n
	}

	return nil
}

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer()
	s.closer = nil
	return err
}
