// SPDX-License-Identifier: EPL-2.0

package cache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/metrics"
	"go.uber.org/zap"
)

// decodeStep is the number of frames the decoder publishes at a time.
const decodeStep = 65536

// State is where a cache is in its life.
type State int32

const (
	StateConstructing State = iota
	StateDecoding
	StateReady
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateConstructing:
		return "constructing"
	case StateDecoding:
		return "decoding"
	case StateReady:
		return "ready"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// store holds the decoded bytes of a cache.
type store interface {
	// span returns the bytes [off, off+n) for direct writes, or nil when
	// they are not contiguous.
	span(off, n int64) []byte
	writeAt(b []byte, off int64)
	readAt(b []byte, off int64)
	close() error
}

// Cache is a provider decoded in the background into a store. Reads are
// lock-free: the decoder only writes past decoded and readers only read
// below it.
type Cache struct {
	audio.Wrapper

	kind    string
	store   store
	logger  *zap.Logger
	metrics *metrics.Metrics

	decoded atomic.Int64
	cancel  atomic.Bool
	state   atomic.Int32

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func newCache(p *audio.Provider, kind string, st store, o options) *Cache {
	c := &Cache{
		Wrapper: audio.NewWrapper(p),
		kind:    kind,
		store:   st,
		logger:  o.logger.With(zap.String("cache", kind), zap.String("source", p.Name())),
		metrics: o.metrics,
		done:    make(chan struct{}),
	}
	c.state.Store(int32(StateDecoding))
	c.metrics.AddCacheBytes(kind, c.size())

	go c.decode()

	return c
}

func (c *Cache) size() int64 {
	f := c.Format()
	return f.NumSamples * int64(f.FrameSize())
}

func (c *Cache) decode() {
	defer close(c.done)

	c.metrics.DecoderStarted(c.kind)
	defer c.metrics.DecoderStopped(c.kind)

	src := c.Source()
	frame := int64(c.Format().FrameSize())
	total := c.Format().NumSamples
	var scratch []byte

	c.logger.Debug("decoding started", zap.Int64("samples", total))

	for pos := int64(0); pos < total; {
		if c.cancel.Load() {
			c.state.Store(int32(StateCancelled))
			c.logger.Debug("decoding cancelled", zap.Int64("decoded", pos))
			return
		}

		n := min(decodeStep, total-pos)
		off, size := pos*frame, n*frame

		dst := c.store.span(off, size)
		direct := dst != nil
		if !direct {
			if scratch == nil {
				scratch = make([]byte, decodeStep*frame)
			}
			dst = scratch[:size]
		}

		if err := src.GetAudio(dst, pos, n); err != nil {
			c.state.Store(int32(StateCancelled))
			c.logger.Error("decoding stopped", zap.Int64("start", pos), zap.Error(err))
			return
		}
		if !direct {
			c.store.writeAt(dst, off)
		}

		pos += n
		c.decoded.Add(n)
		c.metrics.AddDecodedSamples(c.kind, n)
	}

	c.state.Store(int32(StateReady))
	c.logger.Debug("decoding finished", zap.Int64("samples", total))
}

// FillBuffer copies decoded frames out of the store. Frames the decoder has
// not reached read as zero bytes.
func (c *Cache) FillBuffer(buf []byte, start, count int64) error {
	frame := int64(c.Format().FrameSize())
	decoded := c.decoded.Load()

	ready := min(count, max(0, decoded-start))
	if ready > 0 {
		c.store.readAt(buf[:ready*frame], start*frame)
	}
	clear(buf[ready*frame : count*frame])

	return nil
}

// DecodedSamples is the number of frames copied into the cache so far.
func (c *Cache) DecodedSamples() int64 { return c.decoded.Load() }

func (c *Cache) NumSamples() int64 { return c.Format().NumSamples }

// NeedsCache is false: the cache is the answer to that question.
func (c *Cache) NeedsCache() bool { return false }

func (c *Cache) State() State { return State(c.state.Load()) }

// Close cancels decoding, waits for the decoder goroutine, then releases
// the store and the wrapped provider. Calling it again returns the first
// result.
func (c *Cache) Close() error {
	c.closeOnce.Do(func() {
		c.cancel.Store(true)
		<-c.done

		c.metrics.AddCacheBytes(c.kind, -c.size())

		var errs []error
		if err := c.store.close(); err != nil {
			errs = append(errs, fmt.Errorf("releasing %s cache: %w", c.kind, err))
		}
		if err := c.Wrapper.Close(); err != nil {
			errs = append(errs, err)
		}
		c.closeErr = errors.Join(errs...)
	})

	return c.closeErr
}
