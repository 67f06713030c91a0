// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"

	"github.com/ik5/audpipe/audio"
)

var (
	// ErrNotFLACFile means the input has no FLAC stream header. It wraps
	// audio.ErrDataNotFound.
	ErrNotFLACFile = fmt.Errorf("%w: not a FLAC file", audio.ErrDataNotFound)

	// ErrUnsupportedFLACLayout reports stream parameters this package
	// cannot represent, such as an unknown length.
	ErrUnsupportedFLACLayout = fmt.Errorf("%w: unsupported FLAC layout", audio.ErrUnsupportedFormat)
)
