// SPDX-License-Identifier: EPL-2.0

package cache

import (
	"context"
	"time"
)

// Progress is anything that decodes toward a known length, such as a Cache
// or an *audio.Provider wrapping one.
type Progress interface {
	DecodedSamples() int64
	NumSamples() int64
}

// Wait polls p every interval until it is fully decoded or ctx is done.
func Wait(ctx context.Context, p Progress, interval time.Duration) error {
	if p.DecodedSamples() >= p.NumSamples() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if p.DecodedSamples() >= p.NumSamples() {
				return nil
			}
		}
	}
}
