// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"

	"github.com/ik5/audpipe/audio"
)

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file. It wraps
	// audio.ErrDataNotFound.
	ErrNotAiffFile = fmt.Errorf("%w: not an AIFF file", audio.ErrDataNotFound)

	// ErrUnsupportedAiffLayout indicates an unsupported AIFF layout
	ErrUnsupportedAiffLayout = fmt.Errorf("%w: unsupported AIFF layout", audio.ErrUnsupportedFormat)
)
