// SPDX-License-Identifier: EPL-2.0

//go:build !windows

package cache

// An open mapping keeps an unlinked file alive, so the file is removed as
// soon as it is mapped and the space comes back even if the process dies.
const unlinkWhileMapped = true
