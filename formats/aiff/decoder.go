// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/utils"
)

// skipFrames bounds the scratch buffer used to decode past unwanted frames.
const skipFrames = 4096

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source gives random access to an AIFF file. go-audio/aiff only decodes
// forward, so reads before the current position restart from the top and
// decode up to the requested frame.
type Source struct {
	rewind func() (aiffReader, error)
	closer io.Closer
	format audio.Format

	dec  aiffReader
	pos  int64
	ints []int
}

// NewSource parses the header of an AIFF stream.
func NewSource(rs io.ReadSeeker) (*Source, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	// Read file info
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedAiffLayout, err)
	}

	if dec.NumChans == 0 || dec.SampleRate <= 0 || dec.BitDepth == 0 || dec.BitDepth > 32 {
		return nil, fmt.Errorf("%w: %d channels, %d Hz, %d bits",
			ErrUnsupportedAiffLayout, dec.NumChans, dec.SampleRate, dec.BitDepth)
	}
	if dec.NumSampleFrames == 0 {
		return nil, fmt.Errorf("%w: no sample frames", ErrNotAiffFile)
	}

	rewind := func() (aiffReader, error) {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		d := aiff.NewDecoder(rs)
		if !d.IsValidFile() {
			return nil, ErrNotAiffFile
		}
		d.ReadInfo()
		return d, d.Err()
	}

	s := newSource(rewind, audio.Format{
		Channels:       int(dec.NumChans),
		SampleRate:     dec.SampleRate,
		BytesPerSample: int(dec.BitDepth+7) / 8,
		NumSamples:     int64(dec.NumSampleFrames),
	})
	s.dec = dec

	return s, nil
}

func newSource(rewind func() (aiffReader, error), format audio.Format) *Source {
	return &Source{rewind: rewind, format: format}
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

// NeedsCache is true: a backward read decodes the file from the start.
func (s *Source) NeedsCache() bool { return true }

func (s *Source) FillBuffer(buf []byte, start, count int64) error {
	if s.dec == nil || start < s.pos {
		dec, err := s.rewind()
		if err != nil {
			s.dec = nil
			return fmt.Errorf("%w: rewinding: %v", audio.ErrDecode, err)
		}
		s.dec, s.pos = dec, 0
	}

	for s.pos < start {
		if _, err := s.read(min(start-s.pos, skipFrames)); err != nil {
			return fmt.Errorf("%w: skipping to frame %d: %v", audio.ErrDecode, start, err)
		}
	}

	values, err := s.read(count)
	if err != nil {
		return fmt.Errorf("%w: reading %d frames at %d: %v", audio.ErrDecode, count, start, err)
	}

	w := s.format.BytesPerSample
	for i, v := range values {
		out := buf[i*w : (i+1)*w]
		if w == 1 {
			// AIFF stores signed 8-bit samples.
			out[0] = byte(v + 128)
			continue
		}
		utils.PutIntLE(out, int64(v))
	}

	return nil
}

// read decodes the next frames. On failure the decoder is dropped so the
// next read starts over.
func (s *Source) read(frames int64) ([]int, error) {
	want := int(frames) * s.format.Channels
	if cap(s.ints) < want {
		s.ints = make([]int, want)
	}
	values := s.ints[:want]

	got := 0
	for got < want {
		n, err := s.dec.PCMBuffer(&goaudio.IntBuffer{Data: values[got:], Format: s.dec.Format()})
		got += n
		if got < want && (err != nil || n == 0) {
			s.dec = nil
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
	s.pos += frames

	return values, nil
}

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
