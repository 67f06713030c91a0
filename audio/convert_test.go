// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"math"
	"testing"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConvert(t *testing.T, src audio.Source) *audio.Provider {
	t.Helper()

	p, err := audio.NewConvertProvider(audio.New(src))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	return p
}

func TestConvert_8Bit(t *testing.T) {
	t.Parallel()

	p := mustConvert(t, audiotest.NewRampSource(1, 90*48000, 48000, 0))
	assert.Equal(t, 2, p.BytesPerSample())

	buf := make([]byte, 2*256)
	require.NoError(t, p.GetAudio(buf, 0, 256))

	for i, s := range int16s(buf) {
		require.Equal(t, int16((i-128)*256), s, "sample %d", i)
	}
}

func TestConvert_8BitRoundTrip(t *testing.T) {
	t.Parallel()

	p := mustConvert(t, audiotest.NewRampSource(1, 256, 48000, 0))

	buf := make([]byte, 2*256)
	require.NoError(t, p.GetAudio(buf, 0, 256))

	for i, s := range int16s(buf) {
		back := byte((int(s) >> 8) + 128)
		require.Equal(t, byte(i), back, "sample %d", i)
	}
}

func TestConvert_32Bit(t *testing.T) {
	t.Parallel()

	p := mustConvert(t, audiotest.NewRampSource(4, 100000*48000, 48000, math.MinInt32))
	buf := make([]byte, 2)

	require.NoError(t, p.GetAudio(buf, 0, 1))
	assert.Equal(t, int16(math.MinInt16), int16s(buf)[0])

	require.NoError(t, p.GetAudio(buf, 1<<31, 1))
	assert.Equal(t, int16(0), int16s(buf)[0])

	require.NoError(t, p.GetAudio(buf, (1<<32)-1, 1))
	assert.Equal(t, int16(math.MaxInt16), int16s(buf)[0])
}

func TestConvert_24BitAnd64Bit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width int
		value int64
		want  int16
	}{
		{name: "24-bit max", width: 3, value: 1<<23 - 1, want: math.MaxInt16},
		{name: "24-bit min", width: 3, value: -(1 << 23), want: math.MinInt16},
		{name: "24-bit small", width: 3, value: 0x1234ff, want: 0x1234},
		{name: "64-bit min", width: 8, value: math.MinInt64, want: math.MinInt16},
		{name: "64-bit max", width: 8, value: math.MaxInt64, want: math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(audio.Format{
				Channels: 1, SampleRate: 48000, BytesPerSample: tt.width, NumSamples: 10,
			}, func(int64, int) int64 { return tt.value })
			p := mustConvert(t, src)

			buf := make([]byte, 2)
			require.NoError(t, p.GetAudio(buf, 3, 1))
			assert.Equal(t, tt.want, int16s(buf)[0])
		})
	}
}

func TestConvert_SampleDoubling(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(audio.Format{
		Channels: 1, SampleRate: 20000, BytesPerSample: 2, NumSamples: 90 * 20000,
	}, func(frame int64, _ int) int64 { return frame * 2 })
	p := mustConvert(t, src)

	assert.Equal(t, 40000, p.SampleRate())
	assert.Equal(t, int64(2*90*20000), p.NumSamples())

	buf := make([]byte, 2*6)
	for k := range 6 {
		for i := k; i < 6; i++ {
			clear(buf)
			require.NoError(t, p.GetAudio(buf, int64(k), int64(i-k)))

			got := int16s(buf)
			for j := range i - k {
				require.Equal(t, int16(j+k), got[j], "start %d count %d index %d", k, i-k, j)
			}
			for j := i - k; j < 6-k; j++ {
				require.Equal(t, int16(0), got[j], "start %d count %d index %d", k, i-k, j)
			}
		}
	}
}

func TestConvert_SampleDoublingRounds(t *testing.T) {
	t.Parallel()

	values := []int64{0, 1, -4, -1, 100}
	src := audiotest.NewMockSource(audio.Format{
		Channels: 1, SampleRate: 16000, BytesPerSample: 2, NumSamples: int64(len(values)),
	}, func(frame int64, _ int) int64 { return values[frame] })
	p := mustConvert(t, src)

	require.Equal(t, 32000, p.SampleRate())
	require.Equal(t, int64(10), p.NumSamples())

	// Whole stream, then every odd-start window, against the same answer.
	want := []int16{0, 1, 1, -2, -4, -3, -1, 50, 100, 100}

	buf := make([]byte, 2*10)
	require.NoError(t, p.GetAudio(buf, 0, 10))
	assert.Equal(t, want, int16s(buf))

	for start := int64(1); start < 10; start += 2 {
		for count := int64(1); start+count <= 10; count++ {
			b := make([]byte, 2*count)
			require.NoError(t, p.GetAudio(b, start, count))
			assert.Equal(t, want[start:start+count], int16s(b), "start %d count %d", start, count)
		}
	}
}

func TestConvert_RepeatedDoubling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate     int
		wantRate int
		factor   int64
	}{
		{rate: 8000, wantRate: 32000, factor: 4},
		{rate: 11025, wantRate: 44100, factor: 4},
		{rate: 22050, wantRate: 44100, factor: 2},
		{rate: 4000, wantRate: 32000, factor: 8},
		{rate: 32000, wantRate: 32000, factor: 1},
		{rate: 48000, wantRate: 48000, factor: 1},
	}

	for _, tt := range tests {
		p := mustConvert(t, audiotest.NewSilentSource(tt.rate, 1, 1001))

		assert.Equal(t, tt.wantRate, p.SampleRate(), "rate %d", tt.rate)
		assert.Equal(t, 1001*tt.factor, p.NumSamples(), "rate %d", tt.rate)
		assert.Equal(t, 1001*tt.factor, p.DecodedSamples(), "rate %d", tt.rate)
	}
}

func TestConvert_StereoDownmix(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(audio.Format{
		Channels: 2, SampleRate: 480000, BytesPerSample: 2, NumSamples: 90 * 480000,
	}, func(frame int64, ch int) int64 {
		if ch == 0 {
			return frame * 2
		}
		return 0
	})
	p := mustConvert(t, src)
	assert.Equal(t, 1, p.Channels())

	buf := make([]byte, 2*100)
	require.NoError(t, p.GetAudio(buf, 0, 100))
	for i, s := range int16s(buf) {
		require.Equal(t, int16(i), s)
	}
}

func TestConvert_DownmixIdenticalChannels(t *testing.T) {
	t.Parallel()

	for _, channels := range []int{2, 3, 6, 8} {
		for _, v := range []int64{math.MinInt16, -3, 0, 7, math.MaxInt16} {
			src := audiotest.NewMockSource(audio.Format{
				Channels: channels, SampleRate: 48000, BytesPerSample: 2, NumSamples: 16,
			}, func(int64, int) int64 { return v })
			p := mustConvert(t, src)

			buf := make([]byte, 2*16)
			require.NoError(t, p.GetAudio(buf, 0, 16))
			for _, s := range int16s(buf) {
				require.Equal(t, int16(v), s, "channels %d value %d", channels, v)
			}
		}
	}
}

func TestConvert_DownmixTruncatesTowardZero(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(audio.Format{
		Channels: 3, SampleRate: 48000, BytesPerSample: 2, NumSamples: 2,
	}, func(frame int64, ch int) int64 {
		if frame == 0 {
			return []int64{1, 1, 0}[ch] // 2/3
		}
		return []int64{-1, -1, 0}[ch] // -2/3
	})
	p := mustConvert(t, src)

	buf := make([]byte, 4)
	require.NoError(t, p.GetAudio(buf, 0, 2))
	assert.Equal(t, []int16{0, 0}, int16s(buf))
}

func floatRamp(bytesPerSample int) *audiotest.MockSource {
	return audiotest.NewFloatSource(audio.Format{
		Channels: 1, SampleRate: 480000, BytesPerSample: bytesPerSample, NumSamples: 90 * 480000,
	}, func(frame int64, _ int) float64 {
		shifted := frame + math.MinInt16
		if shifted < 0 {
			return float64(shifted) / -math.MinInt16
		}
		return float64(shifted) / math.MaxInt16
	})
}

func TestConvert_Float(t *testing.T) {
	t.Parallel()

	for _, width := range []int{4, 8} {
		p := mustConvert(t, floatRamp(width))
		assert.False(t, p.FloatSamples())
		assert.Equal(t, 2, p.BytesPerSample())

		buf := make([]byte, 2*(1<<16))
		require.NoError(t, p.GetAudio(buf, 0, 1<<16))
		for i, s := range int16s(buf) {
			require.Equal(t, int16(i+math.MinInt16), s, "width %d sample %d", width, i)
		}
	}
}

func TestConvert_FloatClamps(t *testing.T) {
	t.Parallel()

	src := audiotest.NewFloatSource(audio.Format{
		Channels: 1, SampleRate: 48000, BytesPerSample: 8, NumSamples: 4,
	}, func(frame int64, _ int) float64 {
		return []float64{2, -2, math.Inf(1), math.NaN()}[frame]
	})
	p := mustConvert(t, src)

	buf := make([]byte, 8)
	require.NoError(t, p.GetAudio(buf, 0, 4))
	assert.Equal(t, []int16{math.MaxInt16, math.MinInt16, math.MaxInt16, 0}, int16s(buf))
}

// 2 channels, 24-bit, 22050 Hz, one second.
func TestConvert_Stereo24Bit22050(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(audio.Format{
		Channels: 2, SampleRate: 22050, BytesPerSample: 3, NumSamples: 22050,
	}, func(frame int64, ch int) int64 {
		return (frame << 8) * int64(1-2*ch) // left +frame, right -frame after the shift
	})
	p := mustConvert(t, src)

	assert.Equal(t, 1, p.Channels())
	assert.Equal(t, 2, p.BytesPerSample())
	assert.Equal(t, 44100, p.SampleRate())
	assert.Equal(t, int64(44100), p.NumSamples())

	buf := make([]byte, 2*64)
	require.NoError(t, p.GetAudio(buf, 0, 64))
	for _, s := range int16s(buf) {
		require.Zero(t, s)
	}
}

func TestConvert_Passthrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(2, 100, 44100, 0)
	base := audio.New(src)

	p, err := audio.NewConvertProvider(base)
	require.NoError(t, err)
	assert.Same(t, base, p)
}

func TestConvert_UnsupportedWidth(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(audio.Format{
		Channels: 1, SampleRate: 44100, BytesPerSample: 9, NumSamples: 10,
	}, func(int64, int) int64 { return 0 })

	_, err := audio.NewConvertProvider(audio.New(src))
	require.ErrorIs(t, err, audio.ErrUnsupportedFormat)
	assert.True(t, src.Closed())
}

func TestStageConstructors_RejectWrongInput(t *testing.T) {
	t.Parallel()

	stereo := audio.New(audiotest.NewSilentSource(8000, 2, 10))
	mono24 := audio.New(audiotest.NewRampSource(3, 10, 8000, 0))
	mono16 := audio.New(audiotest.NewRampSource(2, 10, 8000, 0))

	_, err := audio.NewSampleDoubler(stereo)
	assert.ErrorIs(t, err, audio.ErrInternal)

	_, err = audio.NewSampleDoubler(mono24)
	assert.ErrorIs(t, err, audio.ErrInternal)

	_, err = audio.NewMonoMixer(mono16)
	assert.ErrorIs(t, err, audio.ErrInternal)

	_, err = audio.NewMonoMixer(mono24)
	assert.ErrorIs(t, err, audio.ErrInternal)

	_, err = audio.NewFloatConverter(mono16)
	assert.ErrorIs(t, err, audio.ErrInternal)
}
