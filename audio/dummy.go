// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/ik5/audpipe/utils"
)

const (
	// DummyScheme prefixes URIs that select the synthetic provider, e.g.
	// "dummy-audio:silence?sr=44100" or "dummy-audio:noise?".
	DummyScheme = "dummy-audio:"

	// DummySamples is 150 minutes at 44.1 kHz.
	DummySamples = 150 * 60 * 44100

	dummyNoiseLevel = 5000
)

// IsDummyURI reports whether uri selects the synthetic provider.
func IsDummyURI(uri string) bool { return strings.HasPrefix(uri, DummyScheme) }

// Dummy produces silence or bounded white noise without reading any input.
// The format is fixed: mono, 44.1 kHz, 16-bit, 150 minutes.
type Dummy struct {
	noise bool
}

// NewDummy parses a dummy-audio URI. Any other string is reported as
// ErrDataNotFound so probing can move on.
func NewDummy(uri string) (*Dummy, error) {
	if !IsDummyURI(uri) {
		return nil, fmt.Errorf("%w: %q is not a %s URI", ErrDataNotFound, uri, DummyScheme)
	}

	return &Dummy{noise: strings.Contains(uri, ":noise?")}, nil
}

func (d *Dummy) Format() Format {
	return Format{
		Channels:       1,
		SampleRate:     44100,
		BytesPerSample: 2,
		NumSamples:     DummySamples,
	}
}

func (d *Dummy) Noise() bool { return d.noise }

func (d *Dummy) FillBuffer(buf []byte, start, count int64) error {
	if !d.noise {
		clear(buf[:count*2])
		return nil
	}

	// Seeded from the request so repeated reads of a range agree.
	rng := rand.New(rand.NewPCG(uint64(start), uint64(count)))
	for i := range int(count) {
		v := rng.IntN(2*dummyNoiseLevel+1) - dummyNoiseLevel
		utils.PutInt16At(buf, i, int16(v))
	}

	return nil
}

func (d *Dummy) Close() error { return nil }

// DummyOpener adapts NewDummy to Registry.
func DummyOpener() Opener {
	return OpenerFunc(func(uri string) (Source, error) {
		return NewDummy(uri)
	})
}
