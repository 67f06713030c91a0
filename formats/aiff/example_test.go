// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/formats/aiff"
	"github.com/ik5/audpipe/formats/wav"
)

// Example demonstrates converting an AIFF file to WAV.
func Example() {
	src, err := aiff.Open("input.aif")
	if err != nil {
		log.Fatal(err)
	}

	p := audio.New(src, audio.WithName("aiff"))
	defer p.Close()

	fmt.Printf("Sample Rate: %d Hz\n", p.SampleRate())
	fmt.Printf("Channels: %d\n", p.Channels())

	end := p.NumSamples() * 1000 / int64(p.SampleRate())
	if err := wav.SaveAudioClip(p, "output.wav", 0, end+1); err != nil {
		log.Fatal(err)
	}
}

// ExampleNewSource_errorHandling shows the error for input that is not AIFF.
func ExampleNewSource_errorHandling() {
	_, err := aiff.NewSource(bytes.NewReader([]byte("not an aiff file")))
	fmt.Println(errors.Is(err, aiff.ErrNotAiffFile))
	// Output:
	// true
}
