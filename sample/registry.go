// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"io"
	"slices"
	"sync"
)

// Loader decodes one container format into a Sample. Implementations call
// SetMeta followed by LoadData, LoadInts or LoadFloats for every channel.
type Loader interface {
	Load(r io.ReadSeeker, s *Sample) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(r io.ReadSeeker, s *Sample) error

func (f LoaderFunc) Load(r io.ReadSeeker, s *Sample) error { return f(r, s) }

// Registry of loaders by format key (e.g. "wav", "aiff", "mp3", "ogg").
type Registry struct {
	loaders map[string]Loader

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		loaders: make(map[string]Loader),
		mtx:     &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, l Loader) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.loaders[format] = l
}

func (r *Registry) Get(format string) (Loader, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	l, ok := r.loaders[format]
	return l, ok
}

// Formats lists registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.loaders))
	for k := range r.loaders {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
