// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.RecordDecodeFailure("wav")
	m.AddDecodedSamples("ram", 10)
	m.DecoderStarted("ram")
	m.AddCacheBytes("disk", 4096)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNew_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestMetrics_Values(t *testing.T) {
	t.Parallel()

	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordDecodeFailure("wav")
	m.RecordDecodeFailure("wav")
	m.AddDecodedSamples("disk", 65536)
	m.AddDecodedSamples("disk", 100)
	m.DecoderStarted("ram")
	m.DecoderStarted("ram")
	m.DecoderStopped("ram")
	m.AddCacheBytes("ram", 1<<22)
	m.AddCacheBytes("ram", -(1 << 21))

	assert.InDelta(t, 2, testutil.ToFloat64(m.decodeFailuresTotal.WithLabelValues("wav")), 0)
	assert.InDelta(t, 65636, testutil.ToFloat64(m.decodedSamplesTotal.WithLabelValues("disk")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.activeDecoders.WithLabelValues("ram")), 0)
	assert.InDelta(t, 1<<21, testutil.ToFloat64(m.cacheBytes.WithLabelValues("ram")), 0)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordDecodeFailure("wav")
		m.AddDecodedSamples("ram", 1)
		m.DecoderStarted("ram")
		m.DecoderStopped("ram")
		m.AddCacheBytes("ram", 1)
	})
}
