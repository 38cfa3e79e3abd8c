// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"iter"
)

// NumParts is one part per MIDI channel.
const NumParts = 16

// Patch is the root of the mapping hierarchy.
type Patch struct {
	parts    [NumParts]*Part
	services Services
}

func NewPatch(services Services) (*Patch, error) {
	if services == nil {
		return nil, ErrNilServices
	}
	p := &Patch{services: services}
	for i := range p.parts {
		p.parts[i] = NewPart(i)
		p.parts[i].parent = p
	}
	return p, nil
}

func (p *Patch) Services() Services { return p.services }

// Part returns the part for a MIDI channel, 0 based.
func (p *Patch) Part(channel int) (*Part, error) {
	if channel < 0 || channel >= NumParts {
		return nil, fmt.Errorf("%w: part %d", ErrIndex, channel)
	}
	return p.parts[channel], nil
}

// Parts iterates all parts in channel order.
func (p *Patch) Parts() iter.Seq2[int, *Part] {
	return func(yield func(int, *Part) bool) {
		for i, part := range p.parts {
			if !yield(i, part) {
				return
			}
		}
	}
}

// Zones iterates every live zone in the patch.
func (p *Patch) Zones() iter.Seq[*Zone] {
	return func(yield func(*Zone) bool) {
		for _, part := range p.parts {
			for z := range part.Zones() {
				if !yield(z) {
					return
				}
			}
		}
	}
}

func (p *Patch) FindZone(id ZoneID) (*Zone, bool) {
	for z := range p.Zones() {
		if z.ID == id {
			return z, true
		}
	}
	return nil, false
}

// ProcessControllers smooths the controllers of every part by one block.
func (p *Patch) ProcessControllers() {
	for _, part := range p.parts {
		part.ProcessControllers()
	}
}

// Services resolves the engine services from a zone, nil for zones outside
// a patch.
func (z *Zone) Services() Services {
	part := z.Part()
	if part == nil {
		return nil
	}
	return part.Services()
}
