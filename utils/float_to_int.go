// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 scales a normalized float32 sample to int16. Negative values
// are multiplied by 32768 and non-negative values by 32767 in float32
// precision, the product is truncated toward zero and anything outside the
// int16 range is clamped. NaN maps to silence.
func Float32ToInt16(x float32) int16 {
	var v float32
	if x < 0 {
		v = float32(x * -math.MinInt16)
	} else {
		v = float32(x * math.MaxInt16)
	}
	return truncInt16(float64(v))
}

// FloatToInt16 is Float32ToInt16 for float64 samples.
func FloatToInt16(x float64) int16 {
	var v float64
	if x < 0 {
		v = float64(x * -math.MinInt16)
	} else {
		v = float64(x * math.MaxInt16)
	}
	return truncInt16(v)
}

func truncInt16(v float64) int16 {
	switch {
	case math.IsNaN(v):
		return 0
	case v <= math.MinInt16:
		return math.MinInt16
	case v >= math.MaxInt16:
		return math.MaxInt16
	}
	return int16(v)
}

// ClampInt16 saturates v into the int16 range.
func ClampInt16(v int64) int16 {
	if v < math.MinInt16 {
		return math.MinInt16
	}
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(v)
}

// ScaleInt16 multiplies s by volume, rounds half away from zero and clamps
// the result to the int16 range.
func ScaleInt16(s int16, volume float64) int16 {
	v := math.Round(float64(s) * volume)
	switch {
	case math.IsNaN(v):
		return 0
	case v <= math.MinInt16:
		return math.MinInt16
	case v >= math.MaxInt16:
		return math.MaxInt16
	}
	return int16(v)
}
