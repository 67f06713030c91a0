// SPDX-License-Identifier: EPL-2.0

package cache

import (
	"github.com/ik5/audpipe/metrics"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

type options struct {
	logger  *zap.Logger
	metrics *metrics.Metrics

	freeDisk     func(dir string) (uint64, error)
	availableMem func() (uint64, error)
}

// Option configures NewRAM and NewDisk.
type Option func(*options)

// WithLogger overrides the logger inherited from the wrapped provider.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics overrides the collectors inherited from the wrapped provider.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func newOptions(logger *zap.Logger, m *metrics.Metrics, opts []Option) options {
	o := options{
		logger:       logger,
		metrics:      m,
		freeDisk:     diskFree,
		availableMem: memAvailable,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

func diskFree(dir string) (uint64, error) {
	usage, err := disk.Usage(dir)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}

func memAvailable() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}
