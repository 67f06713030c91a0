// SPDX-License-Identifier: EPL-2.0

package audio

// Wrapper is the base of every stage that transforms another Provider. It
// owns the wrapped provider and forwards its format; embedding types adjust
// Format and implement FillBuffer.
type Wrapper struct {
	source *Provider
	format Format
}

// NewWrapper takes ownership of source.
func NewWrapper(source *Provider) Wrapper {
	return Wrapper{source: source, format: source.Format()}
}

func (w *Wrapper) Format() Format { return w.format }

// Source returns the wrapped provider.
func (w *Wrapper) Source() *Provider { return w.source }

func (w *Wrapper) DecodedSamples() int64 { return w.source.DecodedSamples() }

func (w *Wrapper) NeedsCache() bool { return w.source.NeedsCache() }

// Close closes the wrapped provider.
func (w *Wrapper) Close() error { return w.source.Close() }
