// SPDX-License-Identifier: EPL-2.0

package utils

// Midpoint16 returns the mean of a and b rounded half away from zero.
func Midpoint16(a, b int16) int16 {
	sum := int32(a) + int32(b)
	if sum >= 0 {
		return int16((sum + 1) / 2)
	}
	return int16((sum - 1) / 2)
}
