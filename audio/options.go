// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"github.com/ik5/audpipe/metrics"
	"go.uber.org/zap"
)

type options struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
	name    string
}

// Option configures a Provider created with New.
type Option func(*options)

// WithLogger sets the logger used to report recovered read failures.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the collectors updated on recovered read failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithName labels the provider in logs and metrics, usually with the
// format that produced it.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func newOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		name:   "source",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
