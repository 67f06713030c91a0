// SPDX-License-Identifier: EPL-2.0

package audio

import "sync"

// LockSource serializes reads of a provider whose decoder is not safe for
// concurrent use. It is the uncached counterpart of the caches, which own
// their source exclusively.
type LockSource struct {
	Wrapper
	mtx sync.Mutex
}

func NewLockSource(src *Provider) *LockSource {
	return &LockSource{Wrapper: NewWrapper(src)}
}

func (l *LockSource) FillBuffer(buf []byte, start, count int64) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return l.source.GetAudio(buf, start, count)
}
