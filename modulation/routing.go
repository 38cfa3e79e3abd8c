// SPDX-License-Identifier: EPL-2.0

package modulation

import "fmt"

// MaxRoutings is the number of rows in a RoutingTable.
const MaxRoutings = 12

// Routing is one row of the modulation matrix.
type Routing struct {
	Active bool
	Source SourceID
	Target TargetID
	Depth  float32
	Curve  Curve
}

// NewRouting returns an empty, active row.
func NewRouting() Routing {
	return Routing{Active: true}
}

// IsDefault reports whether the row is indistinguishable from NewRouting and
// can be left out when saving.
func (r Routing) IsDefault() bool {
	return r.Active && r.Source.IsNone() && r.Target.IsNone() && r.Depth == 0 && r.Curve == CurveNone
}

// RoutingTable holds every row of a zone's matrix.
type RoutingTable [MaxRoutings]Routing

// NewRoutingTable returns a table of empty active rows.
func NewRoutingTable() RoutingTable {
	var t RoutingTable
	for i := range t {
		t[i] = NewRouting()
	}
	return t
}

// IndexedRouting is a non-default row together with its position.
type IndexedRouting struct {
	Index int
	Routing
}

// Indexed returns only the rows that differ from the default, in order.
func (t *RoutingTable) Indexed() []IndexedRouting {
	var out []IndexedRouting
	for i, r := range t {
		if !r.IsDefault() {
			out = append(out, IndexedRouting{Index: i, Routing: r})
		}
	}
	return out
}

// RestoreIndexed resets the table and places each entry at its index. On an
// out of range index the table is left unchanged.
func (t *RoutingTable) RestoreIndexed(entries []IndexedRouting) error {
	for _, e := range entries {
		if e.Index < 0 || e.Index >= MaxRoutings {
			return fmt.Errorf("%w: %d", ErrRoutingIndex, e.Index)
		}
	}

	*t = NewRoutingTable()
	for _, e := range entries {
		t[e.Index] = e.Routing
	}
	return nil
}
