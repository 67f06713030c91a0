// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ik5/audpipe/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	SetPosition(pos int64) error
	Read([]float32) (int, error)
}

// Source gives random access to an Ogg Vorbis stream. Samples are float32.
type Source struct {
	dec    oggReader
	closer io.Closer
	format audio.Format
	pos    int64
	values []float32
}

func NewSource(rs io.ReadSeeker) (*Source, error) {
	dec, err := oggvorbis.NewReader(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotVorbisFile, err)
	}
	return newSource(dec)
}

func newSource(dec oggReader) (*Source, error) {
	length := dec.Length()
	if length <= 0 {
		return nil, ErrUnknownLength
	}

	return &Source{
		dec: dec,
		format: audio.Format{
			Channels:       dec.Channels(),
			SampleRate:     dec.SampleRate(),
			BytesPerSample: 4,
			Float:          true,
			NumSamples:     length,
		},
	}, nil
}

// Open decodes the file at path. The file stays open until Close.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	s, err := NewSource(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.closer = f

	return s, nil
}

// Opener adapts Open to audio.Registry.
func Opener() audio.Opener {
	return audio.OpenerFunc(func(path string) (audio.Source, error) {
		return Open(path)
	})
}

func (s *Source) Format() audio.Format { return s.format }

// NeedsCache is true: Vorbis seeks land on a page and decode forward.
func (s *Source) NeedsCache() bool { return true }

func (s *Source) FillBuffer(buf []byte, start, count int64) error {
	if start != s.pos {
		if err := s.dec.SetPosition(start); err != nil {
			s.pos = -1
			return fmt.Errorf("%w: seeking to frame %d: %v", audio.ErrDecode, start, err)
		}
		s.pos = start
	}

	// oggvorbis counts interleaved values, not frames.
	want := int(count) * s.format.Channels
	if cap(s.values) < want {
		s.values = make([]float32, want)
	}
	values := s.values[:want]

	got := 0
	for got < want {
		n, err := s.dec.Read(values[got:])
		got += n
		if err != nil && got < want {
			s.pos = -1
			return fmt.Errorf("%w: reading %d frames at %d: %v", audio.ErrDecode, count, start, err)
		}
		if n == 0 && err == nil {
			s.pos = -1
			return fmt.Errorf("%w: decoder stalled at frame %d", audio.ErrDecode, start)
		}
	}
	s.pos += count

	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}

	return nil
}

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
