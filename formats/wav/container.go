// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
	"github.com/ik5/audpipe/audio"
)

// IndexPoint is a run of frames stored contiguously at StartByte. A file's
// stream is its index points concatenated in order.
type IndexPoint struct {
	StartByte  uint64
	NumSamples uint64
}

type chunkID interface {
	~[4]byte | ~[16]byte
}

// layout describes how one container variant spells chunk ids and sizes.
type layout[ID chunkID] interface {
	name() string
	idLen() int
	id(b []byte) ID
	riffID() ID
	waveID() ID
	fmtID() ID
	dataID() ID
	sizeLen() int
	// containerSize turns the declared file size into the bytes left after
	// the size field.
	containerSize(raw uint64) (uint64, error)
	// chunkSize turns a declared chunk size into the payload length.
	chunkSize(raw uint64) (uint64, error)
	alignMask() uint64
}

// riffLayout is classic RIFF WAVE: FourCC ids, 32-bit sizes that exclude the
// chunk header, chunks padded to even offsets.
type riffLayout struct{}

func (riffLayout) name() string                             { return "riff" }
func (riffLayout) idLen() int                               { return 4 }
func (riffLayout) id(b []byte) [4]byte                      { return [4]byte(b) }
func (riffLayout) riffID() [4]byte                          { return riff.RiffID }
func (riffLayout) waveID() [4]byte                          { return riff.WavFormatID }
func (riffLayout) fmtID() [4]byte                           { return riff.FmtID }
func (riffLayout) dataID() [4]byte                          { return riff.DataFormatID }
func (riffLayout) sizeLen() int                             { return 4 }
func (riffLayout) containerSize(raw uint64) (uint64, error) { return raw, nil }
func (riffLayout) chunkSize(raw uint64) (uint64, error)     { return raw, nil }
func (riffLayout) alignMask() uint64                        { return 1 }

type guid [16]byte

var (
	w64RIFF = guid{0x72, 0x69, 0x66, 0x66, 0x2E, 0x91, 0xCF, 0x11, 0xA5, 0xD6, 0x28, 0xDB, 0x04, 0xC1, 0x00, 0x00}
	w64WAVE = guid{0x77, 0x61, 0x76, 0x65, 0xF3, 0xAC, 0xD3, 0x11, 0x8C, 0xD1, 0x00, 0xC0, 0x4F, 0x8E, 0xDB, 0x8A}
	w64Fmt  = guid{0x66, 0x6D, 0x74, 0x20, 0xF3, 0xAC, 0xD3, 0x11, 0x8C, 0xD1, 0x00, 0xC0, 0x4F, 0x8E, 0xDB, 0x8A}
	w64Data = guid{0x64, 0x61, 0x74, 0x61, 0xF3, 0xAC, 0xD3, 0x11, 0x8C, 0xD1, 0x00, 0xC0, 0x4F, 0x8E, 0xDB, 0x8A}
)

// w64HeaderLen is a GUID plus a 64-bit size, which Wave64 counts in every
// size field.
const w64HeaderLen = 24

// wave64Layout is Sony Wave64: GUID ids, 64-bit sizes that include the chunk
// header, chunks aligned to 8 bytes.
type wave64Layout struct{}

func (wave64Layout) name() string      { return "wave64" }
func (wave64Layout) idLen() int        { return 16 }
func (wave64Layout) id(b []byte) guid  { return guid(b) }
func (wave64Layout) riffID() guid      { return w64RIFF }
func (wave64Layout) waveID() guid      { return w64WAVE }
func (wave64Layout) fmtID() guid       { return w64Fmt }
func (wave64Layout) dataID() guid      { return w64Data }
func (wave64Layout) sizeLen() int      { return 8 }
func (wave64Layout) alignMask() uint64 { return 7 }

func (wave64Layout) containerSize(raw uint64) (uint64, error) {
	if raw < w64HeaderLen {
		return 0, fmt.Errorf("%w: file size %d smaller than its header", ErrUnsupportedWavChunks, raw)
	}
	return raw - w64HeaderLen, nil
}

func (wave64Layout) chunkSize(raw uint64) (uint64, error) {
	if raw < w64HeaderLen {
		return 0, fmt.Errorf("%w: chunk size %d smaller than its header", ErrUnsupportedWavChunks, raw)
	}
	return raw - w64HeaderLen, nil
}

// header is what parsing a container yields.
type header struct {
	layout string
	format audio.Format
	index  []IndexPoint
}

// cursor reads fixed-size fields, charging each read against a byte budget
// and failing with errFileEnded when either the budget or the file runs out.
type cursor struct {
	r    io.ReaderAt
	size uint64
	pos  uint64
}

func (c *cursor) read(n int, budget *uint64) ([]byte, error) {
	want := uint64(n)
	if *budget < want {
		return nil, errFileEnded
	}
	if c.pos > c.size || c.size-c.pos < want {
		return nil, errFileEnded
	}

	b := make([]byte, n)
	if got, err := c.r.ReadAt(b, int64(c.pos)); got < n {
		if errors.Is(err, io.EOF) {
			return nil, errFileEnded
		}
		return nil, fmt.Errorf("%w: reading header at %d: %v", audio.ErrProvider, c.pos, err)
	}

	c.pos += want
	*budget -= want
	return b, nil
}

func (c *cursor) readUint(n int, budget *uint64) (uint64, error) {
	b, err := c.read(n, budget)
	if err != nil {
		return 0, err
	}
	switch n {
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		return binary.LittleEndian.Uint64(b), nil
	}
}

func readID[ID chunkID, L layout[ID]](l L, c *cursor, budget *uint64) (ID, error) {
	b, err := c.read(l.idLen(), budget)
	if err != nil {
		var zero ID
		return zero, err
	}
	return l.id(b), nil
}

func advance(pos, size, mask uint64) uint64 {
	if size > math.MaxUint64-mask-pos {
		return math.MaxUint64
	}
	return pos + (size+mask)&^mask
}

// parse walks the chunks of one container variant. Running off the end of
// the file after the format chunk ends the walk without error, so truncated
// captures keep the frames that are actually present.
func parse[ID chunkID, L layout[ID]](r io.ReaderAt, size int64) (*header, error) {
	var l L
	c := &cursor{r: r, size: uint64(max(size, 0))}
	h := &header{layout: l.name()}

	budget := uint64(math.MaxUint64)

	id, err := readID[ID](l, c, &budget)
	if err != nil {
		return nil, notFound(err, "reading RIFF tag")
	}
	if id != l.riffID() {
		return nil, fmt.Errorf("%w: missing %s RIFF tag", ErrNotWavFile, l.name())
	}

	raw, err := c.readUint(l.sizeLen(), &budget)
	if err != nil {
		return nil, notFound(err, "reading file size")
	}
	if budget, err = l.containerSize(raw); err != nil {
		return nil, err
	}

	if id, err = readID[ID](l, c, &budget); err != nil {
		return nil, notFound(err, "reading WAVE tag")
	}
	if id != l.waveID() {
		return nil, fmt.Errorf("%w: %s file is not WAVE", ErrNotWavFile, l.name())
	}

	var total uint64
	haveFmt := false

	walk := func() error {
		for budget > 0 {
			id, err := readID[ID](l, c, &budget)
			if err != nil {
				return err
			}
			raw, err := c.readUint(l.sizeLen(), &budget)
			if err != nil {
				return err
			}
			chunk, err := l.chunkSize(raw)
			if err != nil {
				return err
			}

			budget -= min(chunk, budget)
			start := c.pos

			switch id {
			case l.fmtID():
				if haveFmt {
					return fmt.Errorf("%w: multiple format chunks", ErrUnsupportedWavChunks)
				}
				if err := readFormat(c, chunk, &h.format); err != nil {
					return err
				}
				haveFmt = true

			case l.dataID():
				if !haveFmt {
					return fmt.Errorf("%w: data chunk before format chunk", ErrUnsupportedWavChunks)
				}
				frame := uint64(h.format.FrameSize())
				frames := chunk / frame
				if present := c.size - min(start, c.size); present/frame < frames {
					frames = present / frame
				}
				if frames > 0 {
					h.index = append(h.index, IndexPoint{StartByte: start, NumSamples: frames})
					total += frames
				}
			}

			c.pos = advance(start, chunk, l.alignMask())
		}
		return nil
	}

	if err := walk(); err != nil && !errors.Is(err, errFileEnded) {
		return nil, err
	}

	if !haveFmt {
		return nil, fmt.Errorf("%w: file ended before the format chunk", ErrNotWavFile)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: no audio frames", ErrNotWavFile)
	}

	h.format.NumSamples = int64(total)
	return h, nil
}

// readFormat decodes a PCM format chunk of the given payload size.
func readFormat(c *cursor, size uint64, f *audio.Format) error {
	left := size

	compression, err := c.readUint(2, &left)
	if err != nil {
		return err
	}
	if compression != 1 {
		return fmt.Errorf("%w: compression code %d is not uncompressed PCM", ErrUnsupportedWavLayout, compression)
	}

	channels, err := c.readUint(2, &left)
	if err != nil {
		return err
	}
	rate, err := c.readUint(4, &left)
	if err != nil {
		return err
	}
	if _, err = c.readUint(4, &left); err != nil { // average bytes per second
		return err
	}
	if _, err = c.readUint(2, &left); err != nil { // block align
		return err
	}
	bits, err := c.readUint(2, &left)
	if err != nil {
		return err
	}

	if channels == 0 || rate == 0 || bits == 0 {
		return fmt.Errorf("%w: %d channels, %d Hz, %d bits", ErrUnsupportedWavLayout, channels, rate, bits)
	}

	f.Channels = int(channels)
	f.SampleRate = int(rate)
	f.BytesPerSample = int((bits + 7) / 8)

	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, errFileEnded) {
		return fmt.Errorf("%w: file ended %s", ErrNotWavFile, what)
	}
	return err
}
