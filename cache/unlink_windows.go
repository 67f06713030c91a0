// SPDX-License-Identifier: EPL-2.0

//go:build windows

package cache

// Windows refuses to delete a mapped file; the cache removes it on Close.
const unlinkWhileMapped = false
