// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	// ErrProvider is the base of every error a provider can report while
	// being opened or read.
	ErrProvider = errors.New("audio provider error")

	// ErrDecode reports a failed read of one block. Provider.GetAudio
	// recovers it into silence.
	ErrDecode = fmt.Errorf("%w: decode failed", ErrProvider)

	// ErrDataNotFound means the input is not in a format the parser knows,
	// or holds no audio. Callers probing several parsers move on to the next.
	ErrDataNotFound = fmt.Errorf("%w: audio data not found", ErrProvider)

	ErrNotEnoughMemory    = fmt.Errorf("%w: not enough memory", ErrProvider)
	ErrNotEnoughDiskSpace = fmt.Errorf("%w: not enough disk space", ErrProvider)
	ErrUnsupportedFormat  = fmt.Errorf("%w: unsupported sample format", ErrProvider)

	// ErrInternal reports a pipeline stage used on a stream it cannot handle.
	ErrInternal = errors.New("audio internal error")

	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidDstSize  = fmt.Errorf("%w: dst too small for requested frames", ErrInvalidArgument)
)
