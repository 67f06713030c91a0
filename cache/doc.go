// SPDX-License-Identifier: EPL-2.0

// Package cache puts a slow provider behind a buffer that a background
// goroutine fills from start to end.
//
// Both caches share one decoder loop and differ only in where the frames
// live: NewRAM keeps them in fixed 4 MiB blocks, NewDisk in a memory-mapped
// temporary file. Reads never wait for the decoder. Frames it has not reached
// yet read as silence, and DecodedSamples reports how far it got:
//
//	c, err := cache.NewRAM(p)
//	if err != nil {
//		return err
//	}
//	cached := p.Chain(c, "ram-cache")
//	defer cached.Close()
//
//	err = cache.Wait(ctx, cached, 10*time.Millisecond)
//
// Close stops the decoder, waits for it, releases the buffer and closes the
// wrapped provider.
package cache
