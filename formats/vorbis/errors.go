// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"

	"github.com/ik5/audpipe/audio"
)

var (
	// ErrNotVorbisFile means the input is not an Ogg Vorbis stream. It wraps
	// audio.ErrDataNotFound.
	ErrNotVorbisFile = fmt.Errorf("%w: not an Ogg Vorbis file", audio.ErrDataNotFound)

	// ErrUnknownLength is returned for streams without a readable length.
	ErrUnknownLength = fmt.Errorf("%w: Ogg Vorbis stream length unknown", audio.ErrUnsupportedFormat)
)
