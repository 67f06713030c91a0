// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"bytes"
	"math"
	"testing"
)

func TestIntLE(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
		want int64
	}{
		{name: "one byte positive", in: []byte{0x7f}, want: 127},
		{name: "one byte negative", in: []byte{0x80}, want: -128},
		{name: "int16", in: []byte{0x34, 0x12}, want: 0x1234},
		{name: "int16 negative", in: []byte{0xff, 0xff}, want: -1},
		{name: "int24 max", in: []byte{0xff, 0xff, 0x7f}, want: 8388607},
		{name: "int24 min", in: []byte{0x00, 0x00, 0x80}, want: -8388608},
		{name: "int32", in: []byte{0x00, 0x00, 0x00, 0x80}, want: math.MinInt32},
		{name: "int64", in: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}, want: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IntLE(tt.in); got != tt.want {
				t.Errorf("IntLE(% x) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPutIntLE_RoundTrip(t *testing.T) {
	t.Parallel()

	for width := 1; width <= 8; width++ {
		b := make([]byte, width)
		lim := int64(1) << (8*width - 1)
		for _, v := range []int64{0, 1, -1, lim - 1, -lim} {
			PutIntLE(b, v)
			if got := IntLE(b); got != v {
				t.Errorf("width %d: IntLE(PutIntLE(%d)) = %d", width, v, got)
			}
		}
	}
}

func TestInt16At(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 6)
	PutInt16At(buf, 0, -2)
	PutInt16At(buf, 1, 300)
	PutInt16At(buf, 2, math.MinInt16)

	if !bytes.Equal(buf, []byte{0xfe, 0xff, 0x2c, 0x01, 0x00, 0x80}) {
		t.Fatalf("PutInt16At wrote % x", buf)
	}

	for i, want := range []int16{-2, 300, math.MinInt16} {
		if got := Int16At(buf, i); got != want {
			t.Errorf("Int16At(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestFill(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 3, 17, 4096} {
		buf := bytes.Repeat([]byte{0x11}, n)
		Fill(buf, 0x80)
		if !bytes.Equal(buf, bytes.Repeat([]byte{0x80}, n)) {
			t.Errorf("Fill(%d, 0x80) left stale bytes", n)
		}
		Fill(buf, 0)
		if !bytes.Equal(buf, make([]byte, n)) {
			t.Errorf("Fill(%d, 0) left stale bytes", n)
		}
	}
}

func BenchmarkIntLE24(b *testing.B) {
	in := []byte{0x01, 0x02, 0x83}
	for i := 0; i < b.N; i++ {
		_ = IntLE(in)
	}
}
