// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// Opener constructs a Source for a path or URI. It returns an error wrapping
// ErrDataNotFound when the input is not in its format.
type Opener interface {
	Open(path string) (Source, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(path string) (Source, error)

func (f OpenerFunc) Open(path string) (Source, error) { return f(path) }

// Attempt is one candidate way of opening an input.
type Attempt struct {
	Name string
	Open func() (Source, error)
}

// OpenFirst returns the first Source an attempt produces. When every attempt
// fails, the failures are combined; the result wraps ErrDataNotFound only if
// every attempt reported ErrDataNotFound, otherwise it wraps ErrProvider.
func OpenFirst(attempts ...Attempt) (Source, string, error) {
	var errs error
	wrongType := true

	for _, a := range attempts {
		src, err := a.Open()
		if err == nil {
			return src, a.Name, nil
		}
		if !errors.Is(err, ErrDataNotFound) {
			wrongType = false
		}
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", a.Name, err))
	}

	if errs == nil {
		return nil, "", fmt.Errorf("%w: nothing to try", ErrDataNotFound)
	}
	if wrongType {
		return nil, "", fmt.Errorf("%w", errs)
	}
	// Flatten so a not-found from one attempt does not mask the real failure.
	return nil, "", fmt.Errorf("%w: %v", ErrProvider, errs)
}

// Registry keeps Openers by format key (e.g., "wav", "mp3", "ogg vorbis")
// in registration order, which is the order Probe tries them.
type Registry struct {
	names  []string
	codecs map[string]Opener

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Opener),
		mtx:    &sync.Mutex{},
	}
}

// Register adds or replaces the Opener for format. A replaced format keeps
// its original position.
func (r *Registry) Register(format string, o Opener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.codecs[format]; !ok {
		r.names = append(r.names, format)
	}
	r.codecs[format] = o
}

func (r *Registry) Get(format string) (Opener, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	o, ok := r.codecs[format]
	return o, ok
}

// Formats lists the registered format keys in probe order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return append([]string(nil), r.names...)
}

// Probe tries every registered Opener on path in order and wraps the first
// Source that opens in a Provider named after its format.
func (r *Registry) Probe(path string, opts ...Option) (*Provider, error) {
	names := r.Formats()
	attempts := make([]Attempt, 0, len(names))
	for _, name := range names {
		o, _ := r.Get(name)
		attempts = append(attempts, Attempt{
			Name: name,
			Open: func() (Source, error) { return o.Open(path) },
		})
	}

	src, name, err := OpenFirst(attempts...)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return New(src, append(opts, WithName(name))...), nil
}
