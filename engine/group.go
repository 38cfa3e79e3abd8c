// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
)

type Group struct {
	ID   uuid.UUID
	Name string

	zones  []*Zone
	parent *Part
}

func NewGroup() *Group {
	return &Group{ID: uuid.New()}
}

func (g *Group) Parent() *Part { return g.parent }

// Len counts zone slots, removed ones included.
func (g *Group) Len() int { return len(g.zones) }

// AddZone appends z and returns its index.
func (g *Group) AddZone(z *Zone) (int, error) {
	if z.parent != nil {
		return -1, fmt.Errorf("%w: zone %v", ErrHasParent, z.ID)
	}
	z.parent = g
	g.zones = append(g.zones, z)
	return len(g.zones) - 1, nil
}

func (g *Group) Zone(i int) (*Zone, error) {
	if i < 0 || i >= len(g.zones) {
		return nil, fmt.Errorf("%w: zone %d", ErrIndex, i)
	}
	if g.zones[i] == nil {
		return nil, fmt.Errorf("%w: zone %d", ErrRemoved, i)
	}
	return g.zones[i], nil
}

// RemoveZone tombstones slot i and returns the zone, detached from the
// group. Zones with sounding voices are refused.
func (g *Group) RemoveZone(i int) (*Zone, error) {
	z, err := g.Zone(i)
	if err != nil {
		return nil, err
	}
	if z.IsActive() {
		return nil, fmt.Errorf("%w: %d voices", ErrZoneActive, z.ActiveVoices())
	}
	g.zones[i] = nil
	z.parent = nil
	return z, nil
}

// Zones iterates the live zones with their indices.
func (g *Group) Zones() iter.Seq2[int, *Zone] {
	return func(yield func(int, *Zone) bool) {
		for i, z := range g.zones {
			if z != nil && !yield(i, z) {
				return
			}
		}
	}
}

// IsActive reports whether any zone has sounding voices.
func (g *Group) IsActive() bool {
	for _, z := range g.zones {
		if z != nil && z.IsActive() {
			return true
		}
	}
	return false
}
