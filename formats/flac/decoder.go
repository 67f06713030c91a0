// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// flacStream is an interface for flac.Stream to allow testing
type flacStream interface {
	Seek(sampleNum uint64) (uint64, error)
	ParseNext() (*frame.Frame, error)
}

// Source gives random access to a FLAC stream one frame at a time. The
// most recently decoded frame is kept, so reads that stay inside it or move
// to the next frame do not seek.
type Source struct {
	stream flacStream
	closer io.Closer
	format audio.Format
	shift  uint // left shift from the stream's bit depth to BytesPerSample*8

	frame      *frame.Frame
	frameStart int64
}

// NewSource parses the stream header. Seeking needs the input to be an
// io.ReadSeeker; the seek table is used when the file has one.
func NewSource(rs io.ReadSeeker) (*Source, error) {
	stream, err := flac.NewSeek(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFLACFile, err)
	}

	info := stream.Info
	if info == nil || info.NSamples == 0 {
		return nil, fmt.Errorf("%w: stream length unknown", ErrUnsupportedFLACLayout)
	}
	if info.NChannels == 0 || info.SampleRate == 0 || info.BitsPerSample == 0 || info.BitsPerSample > 32 {
		return nil, fmt.Errorf("%w: %d channels, %d Hz, %d bits",
			ErrUnsupportedFLACLayout, info.NChannels, info.SampleRate, info.BitsPerSample)
	}

	return newSource(stream, audio.Format{
		Channels:       int(info.NChannels),
		SampleRate:     int(info.SampleRate),
		BytesPerSample: (int(info.BitsPerSample) + 7) / 8,
		NumSamples:     int64(info.NSamples),
	}, int(info.BitsPerSample)), nil
}

// newSource decodes samples of bits significant bits, left aligned in
// format.BytesPerSample bytes.
func newSource(stream flacStream, format audio.Format, bits int) *Source {
	return &Source{
		stream: stream,
		format: format,
		shift:  uint(format.BytesPerSample*8 - bits),
	}
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

// NeedsCache is true: a seek decodes forward from the closest frame.
func (s *Source) NeedsCache() bool { return true }

func (s *Source) FillBuffer(buf []byte, start, count int64) error {
	w := s.format.BytesPerSample
	channels := s.format.Channels
	out := buf

	for count > 0 {
		if err := s.load(start); err != nil {
			s.frame = nil
			return fmt.Errorf("%w: frame at sample %d: %v", audio.ErrDecode, start, err)
		}

		off := start - s.frameStart
		n := min(count, int64(s.frame.BlockSize)-off)

		for i := off; i < off+n; i++ {
			for c := range channels {
				v := int64(s.frame.Subframes[c].Samples[i]) << s.shift
				if w == 1 {
					// FLAC samples are signed.
					out[0] = byte(v + 128)
				} else {
					utils.PutIntLE(out[:w], v)
				}
				out = out[w:]
			}
		}

		start += n
		count -= n
	}

	return nil
}

// load makes sure the current frame holds sample.
func (s *Source) load(sample int64) error {
	if s.frame != nil {
		end := s.frameStart + int64(s.frame.BlockSize)
		if sample >= s.frameStart && sample < end {
			return nil
		}
		if sample == end {
			return s.next(end)
		}
	}

	first, err := s.stream.Seek(uint64(sample))
	if err != nil {
		return fmt.Errorf("seeking: %w", err)
	}
	if err := s.next(int64(first)); err != nil {
		return err
	}
	if end := s.frameStart + int64(s.frame.BlockSize); sample < s.frameStart || sample >= end {
		return fmt.Errorf("seek to %d landed on frame [%d, %d)", sample, s.frameStart, end)
	}

	return nil
}

func (s *Source) next(start int64) error {
	f, err := s.stream.ParseNext()
	if err != nil {
		return fmt.Errorf("parsing frame: %w", err)
	}
	if f.BlockSize == 0 || len(f.Subframes) < s.format.Channels {
		return fmt.Errorf("frame with %d samples and %d subframes", f.BlockSize, len(f.Subframes))
	}
	for _, sub := range f.Subframes[:s.format.Channels] {
		if len(sub.Samples) < int(f.BlockSize) {
			return fmt.Errorf("subframe holds %d of %d samples", len(sub.Samples), f.BlockSize)
		}
	}

	s.frame, s.frameStart = f, start
	return nil
}

func (s *Source) Close() error {
	s.frame = nil
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
