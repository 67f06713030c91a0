// SPDX-License-Identifier: EPL-2.0

package audpipe

import (
	"fmt"
	"os"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/metrics"
	"go.uber.org/zap"
)

// CacheMode selects what Open puts in front of a slow decoder.
type CacheMode string

const (
	// CacheNone reads the decoder directly, one caller at a time.
	CacheNone CacheMode = "none"
	// CacheRAM decodes the whole stream into memory in the background.
	CacheRAM CacheMode = "ram"
	// CacheDisk decodes the whole stream into a temporary file.
	CacheDisk CacheMode = "disk"
)

// ParseCacheMode accepts "none", "ram" and "disk".
func ParseCacheMode(s string) (CacheMode, error) {
	switch m := CacheMode(s); m {
	case CacheNone, CacheRAM, CacheDisk:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown cache mode %q", audio.ErrInvalidArgument, s)
	}
}

type options struct {
	cacheMode CacheMode
	cacheDir  string
	logger    *zap.Logger
	metrics   *metrics.Metrics
	registry  *audio.Registry
}

// Option configures Open.
type Option func(*options)

// WithCacheMode chooses the cache for decoders that ask for one. The
// default is CacheRAM.
func WithCacheMode(m CacheMode) Option {
	return func(o *options) { o.cacheMode = m }
}

// WithCacheDir sets where CacheDisk creates its file. The default is
// os.TempDir().
func WithCacheDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.cacheDir = dir
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithRegistry replaces the formats Open probes.
func WithRegistry(r *audio.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		cacheMode: CacheRAM,
		cacheDir:  os.TempDir(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	return o
}
