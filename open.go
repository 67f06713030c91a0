// SPDX-License-Identifier: EPL-2.0

package audpipe

import (
	"fmt"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/cache"
	"github.com/ik5/audpipe/formats/aiff"
	"github.com/ik5/audpipe/formats/flac"
	"github.com/ik5/audpipe/formats/mp3"
	"github.com/ik5/audpipe/formats/vorbis"
	"github.com/ik5/audpipe/formats/wav"
	"go.uber.org/zap"
)

// DefaultRegistry returns a registry with every built-in format, in the
// order Open probes them: dummy URIs, then the formats whose headers are
// cheapest to reject.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("dummy", audio.DummyOpener())
	reg.Register("wav", wav.Opener())
	reg.Register("flac", flac.Opener())
	reg.Register("vorbis", vorbis.Opener())
	reg.Register("aiff", aiff.Opener())
	reg.Register("mp3", mp3.Opener())
	return reg
}

// Open is a high-level convenience function that builds a complete pipeline
// for uri:
//  1. Probes the registered formats in order
//  2. Normalizes to mono signed 16-bit at 32 kHz or more
//  3. Puts the result behind the configured cache when the decoder asks
//     for one, and behind a lock otherwise
//
// The returned provider is safe for concurrent reads. Close releases the
// whole chain.
//
// Example:
//
//	p, err := audpipe.Open("speech.mp3", audpipe.WithCacheMode(audpipe.CacheDisk))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
func Open(uri string, opts ...Option) (*audio.Provider, error) {
	o := newOptions(opts)
	log := o.logger.With(zap.String("uri", uri))

	p, err := o.registry.Probe(uri, audio.WithLogger(o.logger), audio.WithMetrics(o.metrics))
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("format", p.Name()))
	log.Debug("opened",
		zap.Int("channels", p.Channels()),
		zap.Int("sample_rate", p.SampleRate()),
		zap.Int("bytes_per_sample", p.BytesPerSample()),
		zap.Bool("float", p.FloatSamples()),
		zap.Int64("samples", p.NumSamples()),
	)

	needsCache := p.NeedsCache()

	if p, err = audio.NewConvertProvider(p); err != nil {
		return nil, fmt.Errorf("normalizing %s: %w", uri, err)
	}

	mode := o.cacheMode
	if !needsCache {
		mode = CacheNone
	}

	switch mode {
	case CacheRAM:
		log.Debug("caching in memory")
		c, err := cache.NewRAM(p)
		if err != nil {
			return nil, fmt.Errorf("caching %s: %w", uri, err)
		}
		return p.Chain(c, "ram-cache"), nil

	case CacheDisk:
		log.Debug("caching on disk", zap.String("dir", o.cacheDir))
		c, err := cache.NewDisk(p, o.cacheDir)
		if err != nil {
			return nil, fmt.Errorf("caching %s: %w", uri, err)
		}
		return p.Chain(c, "disk-cache"), nil

	case CacheNone:
		return p.Chain(audio.NewLockSource(p), "lock"), nil

	default:
		_ = p.Close()
		return nil, fmt.Errorf("%w: unknown cache mode %q", audio.ErrInvalidArgument, mode)
	}
}
