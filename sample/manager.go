// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ossrs/go-oryx-lib/logger"
	"golang.org/x/sync/errgroup"
)

// Missing records a sample a patch referenced but which could not be found.
type Missing struct {
	ID   ID
	Path string
}

// Manager owns every published sample. Loads always decode into a fresh
// Sample and are published only once complete, so a failed load never
// disturbs what is already there.
//
// Manager methods are for the control side. The audio side only touches the
// Shared handles returned by Acquire.
type Manager struct {
	registry *Registry

	mu      sync.Mutex
	samples map[ID]*Shared
	missing []Missing
}

func NewManager(registry *Registry) *Manager {
	return &Manager{
		registry: registry,
		samples:  make(map[ID]*Shared),
	}
}

// Load decodes path, detecting its format, and publishes it under
// IDFromPath(path). Loading an already published path returns its id.
func (m *Manager) Load(ctx context.Context, path string) (ID, error) {
	return m.LoadFormat(ctx, path, "")
}

// LoadFormat is Load with a forced format key. An empty format detects.
func (m *Manager) LoadFormat(ctx context.Context, path, format string) (ID, error) {
	id := IDFromPath(path)

	m.mu.Lock()
	_, ok := m.samples[id]
	m.mu.Unlock()
	if ok {
		return id, nil
	}

	s, err := m.decode(path, format)
	if err != nil {
		logger.Wf(ctx, "sample load %v failed, err %v", path, err)
		return NilID, err
	}
	s.ID = id

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.samples[id]; !ok {
		m.samples[id] = NewShared(s)
	}
	m.clearMissingLocked(id)

	logger.Tf(ctx, "sample loaded %v, ch=%v, rate=%v, frames=%v, storage=%v",
		s.DisplayName, s.Channels(), s.SampleRate(), s.Frames(), s.Storage())
	return id, nil
}

// LoadAll loads paths concurrently. The returned ids line up with paths; the
// first error cancels the remaining loads.
func (m *Manager) LoadAll(ctx context.Context, paths []string) ([]ID, error) {
	ids := make([]ID, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := m.Load(ctx, p)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (m *Manager) decode(path, format string) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sample: open %v: %w", path, err)
	}
	defer f.Close()

	if format == "" {
		header := make([]byte, HeaderSize)
		n, err := io.ReadFull(f, header)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return nil, fmt.Errorf("sample: read %v: %w", path, err)
		}
		format = DetectFormat(path, header[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("sample: seek %v: %w", path, err)
		}
	}

	loader, ok := m.registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q for %v", ErrUnknownFormat, format, path)
	}

	s := &Sample{Path: path, DisplayName: filepath.Base(path), Format: format}
	if err := loader.Load(f, s); err != nil {
		return nil, fmt.Errorf("sample: decode %v: %w", path, err)
	}
	if !s.Loaded() {
		return nil, fmt.Errorf("%w: %v decoded without data", ErrShortData, path)
	}
	return s, nil
}

// Add publishes an in-memory sample. A nil id is replaced with a fresh one.
func (m *Manager) Add(s *Sample) ID {
	if s.ID == NilID {
		s.ID = NewID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.samples[s.ID] = NewShared(s)
	m.clearMissingLocked(s.ID)
	return s.ID
}

// Acquire retains and returns the handle for id, or nil if it is unknown.
func (m *Manager) Acquire(id ID) *Shared {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.samples[id]
	if !ok {
		return nil
	}
	h.Retain()
	return h
}

// Get returns the sample for id without retaining it.
func (m *Manager) Get(id ID) (*Sample, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.samples[id]
	return h.Sample(), ok
}

// Reload decodes the sample's file again and swaps it in. It refuses while
// zones still hold references.
func (m *Manager) Reload(ctx context.Context, id ID) error {
	m.mu.Lock()
	h, ok := m.samples[id]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	if h.RefCount() > 0 {
		return fmt.Errorf("%w: %v has %d references", ErrSampleInUse, id, h.RefCount())
	}

	s, err := m.decode(h.sample.Path, h.sample.Format)
	if err != nil {
		logger.Wf(ctx, "sample reload %v failed, err %v", h.sample.Path, err)
		return err
	}
	s.ID = id

	m.mu.Lock()
	defer m.mu.Unlock()

	if h.RefCount() > 0 {
		return fmt.Errorf("%w: %v", ErrSampleInUse, id)
	}
	m.samples[id] = NewShared(s)
	logger.Tf(ctx, "sample reloaded %v", s.DisplayName)
	return nil
}

// Remove unpublishes an unreferenced sample.
func (m *Manager) Remove(id ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.samples[id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	if n := h.RefCount(); n > 0 {
		return fmt.Errorf("%w: %v has %d references", ErrSampleInUse, id, n)
	}
	delete(m.samples, id)
	return nil
}

// Len is the number of published samples.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.samples)
}

func (m *Manager) ResetMissingList() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.missing = m.missing[:0]
}

// NoteMissing records a referenced sample that is not available. Repeated
// notes for the same id are collapsed.
func (m *Manager) NoteMissing(id ID, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.missing {
		if e.ID == id {
			return
		}
	}
	m.missing = append(m.missing, Missing{ID: id, Path: path})
}

// Missing returns a copy of the missing list.
func (m *Manager) Missing() []Missing {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Missing(nil), m.missing...)
}

func (m *Manager) clearMissingLocked(id ID) {
	for i, e := range m.missing {
		if e.ID == id {
			m.missing = append(m.missing[:i], m.missing[i+1:]...)
			return
		}
	}
}
