// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"

	"github.com/ik5/audpipe/audio"
)

var (
	// ErrNotWavFile means the input is not a RIFF or Wave64 file, or is one
	// without any audio in it. It wraps audio.ErrDataNotFound.
	ErrNotWavFile = fmt.Errorf("%w: not a WAV file", audio.ErrDataNotFound)

	// ErrUnsupportedWavLayout reports a format chunk this package cannot
	// read, such as compressed audio.
	ErrUnsupportedWavLayout = fmt.Errorf("%w: unsupported WAV layout", audio.ErrProvider)

	// ErrUnsupportedWavChunks reports chunks in an order or number the
	// format does not allow.
	ErrUnsupportedWavChunks = fmt.Errorf("%w: unsupported WAV chunks", audio.ErrProvider)

	// ErrOnlyIntegerPCM is returned when exporting float samples.
	ErrOnlyIntegerPCM = fmt.Errorf("%w: only integer PCM can be written", audio.ErrInternal)

	errFileEnded = errors.New("file ended")
)
