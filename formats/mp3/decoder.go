// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"
	"os"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audpipe/audio"
)

// go-mp3 always decodes to interleaved stereo signed 16-bit.
const (
	channels  = 2
	frameSize = channels * 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	io.ReadSeeker
	SampleRate() int
	Length() int64
}

// Source gives random access to an MP3 stream by seeking the decoder.
type Source struct {
	dec    mp3Reader
	closer io.Closer
	format audio.Format
	pos    int64 // frame the decoder will return next
}

// NewSource reads the stream header and computes the stream length, which
// makes go-mp3 scan every frame once.
func NewSource(rs io.ReadSeeker) (*Source, error) {
	dec, err := gomp3.NewDecoder(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotMP3File, err)
	}
	return newSource(dec)
}

func newSource(dec mp3Reader) (*Source, error) {
	length := dec.Length()
	switch {
	case length < 0:
		return nil, ErrUnknownLength
	case length < frameSize:
		return nil, fmt.Errorf("%w: no audio frames", ErrNotMP3File)
	}

	return &Source{
		dec: dec,
		format: audio.Format{
			Channels:       channels,
			SampleRate:     dec.SampleRate(),
			BytesPerSample: 2,
			NumSamples:     length / frameSize,
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

// NeedsCache is true: every out-of-order read re-decodes from a seek point.
func (s *Source) NeedsCache() bool { return true }

func (s *Source) FillBuffer(buf []byte, start, count int64) error {
	if start != s.pos {
		if _, err := s.dec.Seek(start*frameSize, io.SeekStart); err != nil {
			s.pos = -1
			return fmt.Errorf("%w: seeking to frame %d: %v", audio.ErrDecode, start, err)
		}
		s.pos = start
	}

	n, err := io.ReadFull(s.dec, buf[:count*frameSize])
	s.pos += int64(n / frameSize)
	if n%frameSize != 0 {
		s.pos = -1
	}
	if err != nil {
		return fmt.Errorf("%w: reading %d frames at %d: %v", audio.ErrDecode, count, start, err)
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
