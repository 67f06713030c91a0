// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloatToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "max positive", input: 1.0, want: math.MaxInt16},
		{name: "max negative", input: -1.0, want: math.MinInt16},
		{name: "half positive", input: 0.5, want: 16383},   // 16383.5 truncated
		{name: "half negative", input: -0.5, want: -16384}, // scaled by 32768
		{name: "quarter positive", input: 0.25, want: 8191},
		{name: "small positive", input: 0.001, want: 32},
		{name: "small negative", input: -0.001, want: -32},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp over min", input: -1.5, want: math.MinInt16},
		{name: "clamp way under min", input: -100.0, want: math.MinInt16},
		{name: "positive infinity", input: math.Inf(1), want: math.MaxInt16},
		{name: "negative infinity", input: math.Inf(-1), want: math.MinInt16},
		{name: "nan", input: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FloatToInt16(tt.input); got != tt.want {
				t.Errorf("FloatToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestFloatToInt16Range checks that every value in [-1, 1] lands in range
// and keeps its sign.
func TestFloatToInt16Range(t *testing.T) {
	t.Parallel()

	for f := -1.0; f <= 1.0; f += 0.01 {
		got := FloatToInt16(f)
		if f > 0.0001 && got < 0 {
			t.Errorf("FloatToInt16(%v) = %v, lost sign", f, got)
		}
		if f < -0.0001 && got > 0 {
			t.Errorf("FloatToInt16(%v) = %v, lost sign", f, got)
		}
	}
}

func TestClampInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want int16
	}{
		{0, 0},
		{32767, 32767},
		{32768, 32767},
		{-32768, -32768},
		{-32769, -32768},
		{1 << 40, 32767},
	}

	for _, tt := range tests {
		if got := ClampInt16(tt.in); got != tt.want {
			t.Errorf("ClampInt16(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestScaleInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sample int16
		volume float64
		want   int16
	}{
		{name: "unity", sample: 1234, volume: 1, want: 1234},
		{name: "double", sample: 1000, volume: 2, want: 2000},
		{name: "round half up", sample: 3, volume: 0.5, want: 2},
		{name: "round half away from zero", sample: -3, volume: 0.5, want: -2},
		{name: "clamp positive", sample: 30000, volume: 4, want: math.MaxInt16},
		{name: "clamp negative", sample: -30000, volume: 4, want: math.MinInt16},
		{name: "negative volume", sample: math.MinInt16, volume: -1, want: math.MaxInt16},
		{name: "mute", sample: 32767, volume: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ScaleInt16(tt.sample, tt.volume); got != tt.want {
				t.Errorf("ScaleInt16(%d, %v) = %d, want %d", tt.sample, tt.volume, got, tt.want)
			}
		})
	}
}

func BenchmarkFloatToInt16(b *testing.B) {
	values := []float64{-1.0, -0.5, 0.0, 0.5, 1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FloatToInt16(values[i%len(values)])
	}
}

func BenchmarkScaleInt16(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = ScaleInt16(int16(i), 0.75)
	}
}

// TestFloat32ToInt16_ExactInverse checks that every int16 value survives
// being divided by its scale in float32 and converted back.
func TestFloat32ToInt16_ExactInverse(t *testing.T) {
	t.Parallel()

	for s := math.MinInt16; s <= math.MaxInt16; s++ {
		scale := float32(math.MaxInt16)
		if s < 0 {
			scale = -math.MinInt16
		}
		in := float32(s) / scale

		if got := Float32ToInt16(in); int(got) != s {
			t.Fatalf("Float32ToInt16(%v) = %d, want %d", in, got, s)
		}
		if got := FloatToInt16(float64(s) / float64(scale)); int(got) != s {
			t.Fatalf("FloatToInt16(%v) = %d, want %d", float64(s)/float64(scale), got, s)
		}
	}
}

func TestFloat32ToInt16_Clamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want int16
	}{
		{2, math.MaxInt16},
		{-2, math.MinInt16},
		{float32(math.Inf(1)), math.MaxInt16},
		{float32(math.NaN()), 0},
	}

	for _, tt := range tests {
		if got := Float32ToInt16(tt.in); got != tt.want {
			t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
