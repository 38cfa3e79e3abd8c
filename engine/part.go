// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"iter"

	"github.com/ik5/sampler/dsp"
)

const (
	NumCC      = 128
	ModWheelCC = 1
	// MaxPartEffects is the number of effect slots on a part bus.
	MaxPartEffects = 2

	// per block lag of MIDI controllers
	ccLag = 0.2
)

// ccSmoother lags a controller towards its last received value.
type ccSmoother struct {
	value, target float32
	moving        bool
}

func (c *ccSmoother) set(v float32, instant bool) {
	c.target = v
	c.moving = !instant
	if instant {
		c.value = v
	}
}

func (c *ccSmoother) process() {
	if !c.moving {
		return
	}
	c.value += (c.target - c.value) * ccLag
	if d := c.target - c.value; d < 1e-5 && d > -1e-5 {
		c.value = c.target
		c.moving = false
	}
}

// Part maps one MIDI channel onto groups of zones and owns the part bus
// effects.
type Part struct {
	Channel int

	groups []*Group
	parent *Patch

	pitchBend float32
	cc        [NumCC]ccSmoother

	EffectStorage [MaxPartEffects]PartEffectStorage
	effects       [MaxPartEffects]PartEffect
	effectKinds   [MaxPartEffects]PartEffectKind
}

func NewPart(channel int) *Part {
	return &Part{Channel: channel}
}

func (p *Part) Parent() *Patch { return p.parent }

// Services walks up to the patch. It is nil for a free part.
func (p *Part) Services() Services {
	if p.parent == nil {
		return nil
	}
	return p.parent.services
}

func (p *Part) Len() int { return len(p.groups) }

func (p *Part) AddGroup(g *Group) (int, error) {
	if g.parent != nil {
		return -1, fmt.Errorf("%w: group %v", ErrHasParent, g.ID)
	}
	g.parent = p
	p.groups = append(p.groups, g)
	return len(p.groups) - 1, nil
}

func (p *Part) Group(i int) (*Group, error) {
	if i < 0 || i >= len(p.groups) {
		return nil, fmt.Errorf("%w: group %d", ErrIndex, i)
	}
	if p.groups[i] == nil {
		return nil, fmt.Errorf("%w: group %d", ErrRemoved, i)
	}
	return p.groups[i], nil
}

// RemoveGroup tombstones slot i. Groups with sounding zones are refused.
func (p *Part) RemoveGroup(i int) (*Group, error) {
	g, err := p.Group(i)
	if err != nil {
		return nil, err
	}
	if g.IsActive() {
		return nil, fmt.Errorf("%w: group %d", ErrZoneActive, i)
	}
	p.groups[i] = nil
	g.parent = nil
	return g, nil
}

func (p *Part) Groups() iter.Seq2[int, *Group] {
	return func(yield func(int, *Group) bool) {
		for i, g := range p.groups {
			if g != nil && !yield(i, g) {
				return
			}
		}
	}
}

// Zones iterates every live zone of every live group.
func (p *Part) Zones() iter.Seq[*Zone] {
	return func(yield func(*Zone) bool) {
		for _, g := range p.groups {
			if g == nil {
				continue
			}
			for _, z := range g.zones {
				if z != nil && !yield(z) {
					return
				}
			}
		}
	}
}

// MatchingZones appends every zone that answers key and vel to dst. With
// enough capacity in dst it does not allocate.
func (p *Part) MatchingZones(key, vel int, dst []*Zone) []*Zone {
	for _, g := range p.groups {
		if g == nil {
			continue
		}
		for _, z := range g.zones {
			if z != nil && z.Matches(key, vel) {
				dst = append(dst, z)
			}
		}
	}
	return dst
}

// SetPitchBend takes a bend in -1..1.
func (p *Part) SetPitchBend(v float32) { p.pitchBend = dsp.Clamp(v, -1, 1) }

func (p *Part) PitchBend() float32 { return p.pitchBend }

// SetCC sets controller cc to v in 0..1. Values are smoothed unless
// instant is set.
func (p *Part) SetCC(cc int, v float32, instant bool) {
	if cc < 0 || cc >= NumCC {
		return
	}
	p.cc[cc].set(dsp.Clamp(v, 0, 1), instant)
}

// CCValue is the smoothed storage of cc, suitable for binding as a
// modulation source. Out of range controllers return nil.
func (p *Part) CCValue(cc int) *float32 {
	if cc < 0 || cc >= NumCC {
		return nil
	}
	return &p.cc[cc].value
}

func (p *Part) ModWheel() *float32 { return &p.cc[ModWheelCC].value }

// ProcessControllers advances controller smoothing by one block.
func (p *Part) ProcessControllers() {
	for i := range p.cc {
		p.cc[i].process()
	}
}

// SetEffect builds a part effect into slot and loads its defaults.
func (p *Part) SetEffect(slot int, kind PartEffectKind, host Services) error {
	if slot < 0 || slot >= MaxPartEffects {
		return fmt.Errorf("%w: effect slot %d", ErrIndex, slot)
	}
	fx, err := CreatePartEffect(kind, host, &p.EffectStorage[slot])
	if err != nil {
		return err
	}
	return p.InstallEffect(slot, kind, fx)
}

// InstallEffect puts fx, built by CreatePartEffect over this part's storage
// for slot, into slot and loads its defaults. It does not allocate.
func (p *Part) InstallEffect(slot int, kind PartEffectKind, fx PartEffect) error {
	if slot < 0 || slot >= MaxPartEffects {
		return fmt.Errorf("%w: effect slot %d", ErrIndex, slot)
	}
	if fx == nil {
		return fmt.Errorf("%w: %v", ErrUnknownEffect, kind)
	}
	fx.Init()
	p.effects[slot] = fx
	p.effectKinds[slot] = kind
	return nil
}

func (p *Part) ClearEffect(slot int) {
	if slot >= 0 && slot < MaxPartEffects {
		p.effects[slot] = nil
	}
}

// Effect reports the kind in slot and whether one is set.
func (p *Part) Effect(slot int) (PartEffectKind, bool) {
	if slot < 0 || slot >= MaxPartEffects || p.effects[slot] == nil {
		return 0, false
	}
	return p.effectKinds[slot], true
}

// ProcessEffects runs the part bus effects over a block in place.
func (p *Part) ProcessEffects(left, right *dsp.Block) {
	for _, fx := range p.effects {
		if fx != nil {
			fx.Process(left, right)
		}
	}
}
