// SPDX-License-Identifier: EPL-2.0

package sample

import "sync/atomic"

// Shared is a reference counted handle on a published Sample. Retain and
// Release are lock free and may be called from the audio goroutine.
type Shared struct {
	sample *Sample
	refs   atomic.Int32
}

// NewShared wraps s with a zero reference count.
func NewShared(s *Sample) *Shared {
	return &Shared{sample: s}
}

// Sample returns the wrapped sample, or nil for a nil handle.
func (h *Shared) Sample() *Sample {
	if h == nil {
		return nil
	}
	return h.sample
}

func (h *Shared) Retain() {
	if h != nil {
		h.refs.Add(1)
	}
}

// Release drops one reference. Extra releases are ignored.
func (h *Shared) Release() {
	if h == nil {
		return
	}
	for {
		n := h.refs.Load()
		if n <= 0 {
			return
		}
		if h.refs.CompareAndSwap(n, n-1) {
			return
		}
	}
}

func (h *Shared) RefCount() int32 {
	if h == nil {
		return 0
	}
	return h.refs.Load()
}
