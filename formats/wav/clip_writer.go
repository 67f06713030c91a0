// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ik5/audpipe/audio"
)

// clipBufferSize bounds the scratch buffer WriteClip streams through.
const clipBufferSize = 65536

// SaveAudioClip writes frames [startMs, endMs) of p to a canonical 44-byte
// header WAV file at path. The range is clipped to the stream; a range that
// selects nothing still produces a valid, empty file.
func SaveAudioClip(p *audio.Provider, path string, startMs, endMs int64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return WriteClip(f, p, startMs, endMs)
}

// ClipRange converts a millisecond window into a frame range of p, rounding
// both ends up and clamping them to [0, NumSamples].
func ClipRange(p *audio.Provider, startMs, endMs int64) (start, end int64) {
	rate := int64(p.SampleRate())
	total := p.NumSamples()

	start = min(total, max(0, ceilDiv(startMs*rate, 1000)))
	end = min(total, max(start, ceilDiv(endMs*rate, 1000)))

	return start, end
}

// WriteClip streams frames [startMs, endMs) of p to w as a WAV file.
func WriteClip(w io.Writer, p *audio.Provider, startMs, endMs int64) error {
	if p.FloatSamples() {
		return ErrOnlyIntegerPCM
	}

	start, end := ClipRange(p, startMs, endMs)
	frameSize := int64(p.Format().FrameSize())
	if frameSize <= 0 || frameSize > math.MaxUint16 {
		return fmt.Errorf("%w: %d-byte frames do not fit a RIFF block align", ErrUnsupportedWavLayout, frameSize)
	}
	dataSize := (end - start) * frameSize
	if dataSize > math.MaxUint32-36 {
		return fmt.Errorf("%w: %d bytes of audio do not fit a RIFF file", ErrUnsupportedWavLayout, dataSize)
	}

	if err := writeHeader(w, p.Format(), uint32(dataSize)); err != nil {
		return err
	}

	step := max(1, clipBufferSize/frameSize)
	buf := make([]byte, step*frameSize)

	for i := start; i < end; i += step {
		n := min(step, end-i)
		chunk := buf[:n*frameSize]
		if err := p.GetAudio(chunk, i, n); err != nil {
			return fmt.Errorf("reading frames at %d: %w", i, err)
		}
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("writing clip: %w", err)
		}
	}

	return nil
}

func writeHeader(w io.Writer, f audio.Format, dataSize uint32) error {
	numChannels := uint16(f.Channels)
	bitsPerSample := uint16(f.BytesPerSample * 8)
	byteRate := uint32(f.SampleRate) * uint32(f.Channels) * uint32(f.BytesPerSample)
	blockAlign := uint16(f.Channels * f.BytesPerSample)
	riffSize := 36 + dataSize

	header := make([]byte, 44)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing clip: %w", err)
	}

	return nil
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}
