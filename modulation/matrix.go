// SPDX-License-Identifier: EPL-2.0

package modulation

import (
	"fmt"

	"github.com/ik5/sampler/datamodel"
)

const (
	// MaxTargets bounds how many targets one matrix can bind.
	MaxTargets = 128
	// MaxSources bounds how many sources one matrix can bind.
	MaxSources = 32
)

// Range overrides the span a target's depth is scaled by.
type Range struct {
	Min, Max float32
}

func (r Range) Span() float32 { return r.Max - r.Min }

type boundTarget struct {
	id         TargetID
	base       *float32
	out        *float32
	depthScale float32
}

type boundSource struct {
	id    SourceID
	value *float32
}

// Matrix evaluates a RoutingTable against bound value storage. Binding is
// done on the control path when a voice starts; Process runs every block.
type Matrix struct {
	table *RoutingTable

	targets  [MaxTargets]boundTarget
	nTargets int
	sources  [MaxSources]boundSource
	nSources int
}

// Attach points the matrix at a routing table. The table is read every
// block, so later edits to it take effect on the next Process.
func (m *Matrix) Attach(t *RoutingTable) {
	m.table = t
}

// Reset drops every binding and the attached table.
func (m *Matrix) Reset() {
	m.table = nil
	clear(m.targets[:m.nTargets])
	clear(m.sources[:m.nSources])
	m.nTargets = 0
	m.nSources = 0
}

// BindTarget registers target storage. Each block out is set to *base plus
// the routed modulation. Depth is scaled by override's span when given and
// by md's span otherwise. Binding an already bound id replaces its slot.
func (m *Matrix) BindTarget(id TargetID, base, out *float32, md datamodel.Metadata, override *Range) error {
	if !id.IsSet() {
		return fmt.Errorf("%w: %v", ErrUnsetTarget, id)
	}
	if base == nil || out == nil {
		return fmt.Errorf("%w: target %v", ErrNilStorage, id)
	}
	if base == out {
		return fmt.Errorf("%w: target %v", ErrAliasedStorage, id)
	}

	scale := md.Span()
	if override != nil {
		scale = override.Span()
	}
	slot := boundTarget{id: id, base: base, out: out, depthScale: scale}

	if i := m.targetIndex(id); i >= 0 {
		m.targets[i] = slot
		return nil
	}
	if m.nTargets == MaxTargets {
		return fmt.Errorf("%w: %v", ErrTooManyTargets, id)
	}
	m.targets[m.nTargets] = slot
	m.nTargets++
	*out = *base
	return nil
}

// BindSource registers the storage a source writes its current value to.
func (m *Matrix) BindSource(id SourceID, value *float32) error {
	if !id.IsSet() {
		return fmt.Errorf("%w: %v", ErrUnsetSource, id)
	}
	if value == nil {
		return fmt.Errorf("%w: source %v", ErrNilStorage, id)
	}

	if i := m.sourceIndex(id); i >= 0 {
		m.sources[i].value = value
		return nil
	}
	if m.nSources == MaxSources {
		return fmt.Errorf("%w: %v", ErrTooManySources, id)
	}
	m.sources[m.nSources] = boundSource{id: id, value: value}
	m.nSources++
	return nil
}

// DepthScale returns the scale bound for id, or false if it is not bound.
func (m *Matrix) DepthScale(id TargetID) (float32, bool) {
	if i := m.targetIndex(id); i >= 0 {
		return m.targets[i].depthScale, true
	}
	return 0, false
}

func (m *Matrix) IsTargetBound(id TargetID) bool { return m.targetIndex(id) >= 0 }
func (m *Matrix) IsSourceBound(id SourceID) bool { return m.sourceIndex(id) >= 0 }

func (m *Matrix) targetIndex(id TargetID) int {
	for i := range m.nTargets {
		if m.targets[i].id == id {
			return i
		}
	}
	return -1
}

func (m *Matrix) sourceIndex(id SourceID) int {
	for i := range m.nSources {
		if m.sources[i].id == id {
			return i
		}
	}
	return -1
}

// Process resets every target to its base value and then applies the
// routing table in row order. Inactive rows, rows with zero depth and rows
// whose source or target is unset or unbound are skipped.
func (m *Matrix) Process() {
	for i := range m.nTargets {
		t := &m.targets[i]
		*t.out = *t.base
	}
	if m.table == nil {
		return
	}

	for r := range m.table {
		row := &m.table[r]
		if !row.Active || row.Depth == 0 || row.Source.IsNone() || row.Target.IsNone() {
			continue
		}
		si := m.sourceIndex(row.Source)
		ti := m.targetIndex(row.Target)
		if si < 0 || ti < 0 {
			continue
		}

		t := &m.targets[ti]
		*t.out += row.Curve.Apply(*m.sources[si].value) * row.Depth * t.depthScale
	}
}
