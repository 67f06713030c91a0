// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// IntLE decodes a signed little-endian integer of len(b) bytes (1 to 8) and
// sign-extends it to int64.
func IntLE(b []byte) int64 {
	var u uint64
	for i := len(b) - 1; i >= 0; i-- {
		u = u<<8 | uint64(b[i])
	}
	shift := uint(64 - 8*len(b))
	return int64(u<<shift) >> shift
}

// PutIntLE encodes the low len(b) bytes of v in little-endian order.
func PutIntLE(b []byte, v int64) {
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
}

// Int16At reads the i-th int16 sample of a little-endian buffer.
func Int16At(buf []byte, i int) int16 {
	return int16(binary.LittleEndian.Uint16(buf[2*i:]))
}

// PutInt16At writes v as the i-th int16 sample of a little-endian buffer.
func PutInt16At(buf []byte, i int, v int16) {
	binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
}

// Fill sets every byte of buf to v.
func Fill(buf []byte, v byte) {
	if len(buf) == 0 {
		return
	}
	if v == 0 {
		clear(buf)
		return
	}
	buf[0] = v
	for filled := 1; filled < len(buf); filled *= 2 {
		copy(buf[filled:], buf[:filled])
	}
}
