// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"

	"github.com/ik5/audpipe/audio"
)

var (
	// ErrNotMP3File means no MPEG audio frames were found. It wraps
	// audio.ErrDataNotFound.
	ErrNotMP3File = fmt.Errorf("%w: not an MP3 file", audio.ErrDataNotFound)

	// ErrUnknownLength is returned for streams whose length go-mp3 cannot
	// compute, which makes random access impossible.
	ErrUnknownLength = fmt.Errorf("%w: MP3 stream length unknown", audio.ErrUnsupportedFormat)
)
