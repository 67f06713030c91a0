// SPDX-License-Identifier: EPL-2.0

// Package metrics provides Prometheus metrics for audio pipelines.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the Prometheus collectors updated by providers and caches.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	decodeFailuresTotal *prometheus.CounterVec
	decodedSamplesTotal *prometheus.CounterVec
	activeDecoders      *prometheus.GaugeVec
	cacheBytes          *prometheus.GaugeVec
}

// New creates the pipeline metrics and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{}
	m.initMetrics()

	if err := reg.Register(m); err != nil {
		return nil, fmt.Errorf("registering audio metrics: %w", err)
	}

	return m, nil
}

func (m *Metrics) initMetrics() {
	m.decodeFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audpipe_decode_failures_total",
			Help: "Total number of reads that failed and were replaced with silence",
		},
		[]string{"format"},
	)

	m.decodedSamplesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audpipe_cache_decoded_samples_total",
			Help: "Total number of sample frames written into caches",
		},
		[]string{"cache"}, // cache: ram, disk
	)

	m.activeDecoders = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "audpipe_cache_active_decoders",
			Help: "Number of cache decode goroutines currently running",
		},
		[]string{"cache"},
	)

	m.cacheBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "audpipe_cache_bytes",
			Help: "Bytes currently held by cache backing stores",
		},
		[]string{"cache"},
	)
}

// Describe implements the prometheus.Collector interface.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.decodeFailuresTotal.Describe(ch)
	m.decodedSamplesTotal.Describe(ch)
	m.activeDecoders.Describe(ch)
	m.cacheBytes.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.decodeFailuresTotal.Collect(ch)
	m.decodedSamplesTotal.Collect(ch)
	m.activeDecoders.Collect(ch)
	m.cacheBytes.Collect(ch)
}

// RecordDecodeFailure counts one read that was recovered into silence.
func (m *Metrics) RecordDecodeFailure(format string) {
	if m == nil {
		return
	}
	m.decodeFailuresTotal.WithLabelValues(format).Inc()
}

// AddDecodedSamples counts frames written into a cache of the given kind.
func (m *Metrics) AddDecodedSamples(cache string, frames int64) {
	if m == nil {
		return
	}
	m.decodedSamplesTotal.WithLabelValues(cache).Add(float64(frames))
}

// DecoderStarted marks a cache decode goroutine as running.
func (m *Metrics) DecoderStarted(cache string) {
	if m == nil {
		return
	}
	m.activeDecoders.WithLabelValues(cache).Inc()
}

// DecoderStopped marks a cache decode goroutine as finished.
func (m *Metrics) DecoderStopped(cache string) {
	if m == nil {
		return
	}
	m.activeDecoders.WithLabelValues(cache).Dec()
}

// AddCacheBytes adjusts the backing store size gauge; delta may be negative.
func (m *Metrics) AddCacheBytes(cache string, delta int64) {
	if m == nil {
		return
	}
	m.cacheBytes.WithLabelValues(cache).Add(float64(delta))
}
