// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ik5/sampler/dsp/processor"
	"github.com/ik5/sampler/modulation"
	"github.com/ik5/sampler/modulation/modulators"
	"github.com/ik5/sampler/sample"
)

const (
	MaxSamplesPerZone    = 16
	MaxProcessorsPerZone = processor.MaxSlots
	LFOsPerZone          = 3
	// EGsPerZone envelopes: index 0 is the amplitude envelope, 1 is EG2.
	EGsPerZone = 2
	// MaxVoices bounds the voice pool and each zone's voice list.
	MaxVoices = 256
)

type ZoneID = uuid.UUID

// BusAddress names where a zone's output is mixed.
type BusAddress int

const (
	// BusPart sends the zone through its part's effects.
	BusPart BusAddress = iota
	// BusMain skips the part effects.
	BusMain
)

// ZoneMappingData decides which notes a zone answers and how loud.
type ZoneMappingData struct {
	RootKey       int
	KeyboardRange KeyboardRange
	VelocityRange VelocityRange

	// Pitch bend range in semitones.
	PBDown, PBUp int

	// ExclusiveGroup chokes other zones of the same part with the same
	// non-zero group when this zone triggers.
	ExclusiveGroup int

	VelocitySens float32
	// Amplitude is linear, Pan -1..1, PitchOffset in semitones.
	Amplitude   float32
	Pan         float32
	PitchOffset float32
}

func DefaultMapping() ZoneMappingData {
	return ZoneMappingData{
		RootKey:       60,
		KeyboardRange: DefaultKeyboardRange(),
		VelocityRange: DefaultVelocityRange(),
		PBDown:        2,
		PBUp:          2,
		VelocitySens:  1,
		Amplitude:     1,
	}
}

type ZoneOutputInfo struct {
	Amplitude   float32
	Pan         float32
	Muted       bool
	ProcRouting processor.RoutingPath
	RouteTo     BusAddress
}

// Zone is the leaf of the mapping hierarchy.
type Zone struct {
	ID   ZoneID
	Name string

	Samples [MaxSamplesPerZone]AssociatedSample
	handles [MaxSamplesPerZone]*sample.Shared

	// SampleLoadOverridesMapping lets an attached sample's root key and
	// loop replace the zone's.
	SampleLoadOverridesMapping bool

	Mapping ZoneMappingData
	Output  ZoneOutputInfo

	Processors [MaxProcessorsPerZone]processor.Storage
	Modulators [LFOsPerZone]modulators.ModulatorStorage
	EGs        [EGsPerZone]modulators.AdsrStorage
	Routings   modulation.RoutingTable

	parent *Group

	voices       [MaxVoices]int
	activeVoices int
	nextVariant  int
}

// NewZone returns a zone with default mapping, no processors and an empty
// routing table.
func NewZone() *Zone {
	z := &Zone{
		ID:                         uuid.New(),
		SampleLoadOverridesMapping: true,
		Mapping:                    DefaultMapping(),
		Output:                     ZoneOutputInfo{Amplitude: 1},
		Routings:                   modulation.NewRoutingTable(),
	}
	for i := range z.Samples {
		z.Samples[i] = newAssociatedSample()
	}
	for i := range z.Processors {
		z.Processors[i] = processor.DefaultStorage(processor.TypeNone)
	}
	for i := range z.Modulators {
		z.Modulators[i] = modulators.DefaultModulatorStorage()
	}
	for i := range z.EGs {
		z.EGs[i] = modulators.DefaultAdsrStorage()
	}
	return z
}

// NewZoneForSample returns a zone whose first slot plays id.
func NewZoneForSample(id sample.ID) *Zone {
	z := NewZone()
	z.Samples[0].SampleID = id
	z.Samples[0].Active = true
	return z
}

// Parent is the owning group, nil for a free zone.
func (z *Zone) Parent() *Group { return z.parent }

// DisplayName is the zone name, the first sample's name, or the id.
func (z *Zone) DisplayName() string {
	if z.Name != "" {
		return z.Name
	}
	if s := z.handles[0].Sample(); s != nil && s.DisplayName != "" {
		return s.DisplayName
	}
	return z.ID.String()
}

// Matches reports whether key and velocity fall inside the hard ranges.
func (z *Zone) Matches(key, vel int) bool {
	return z.Mapping.KeyboardRange.Includes(key) && z.Mapping.VelocityRange.Includes(vel)
}

// FadeAmplitude is the product of the key and velocity fade gains.
func (z *Zone) FadeAmplitude(key, vel int) float32 {
	return z.Mapping.KeyboardRange.FadeAmplitude(key) * z.Mapping.VelocityRange.FadeAmplitude(vel)
}

// Validate checks the mapping ranges and every sample's bounds.
func (z *Zone) Validate() error {
	if err := z.Mapping.KeyboardRange.Validate(); err != nil {
		return err
	}
	if err := z.Mapping.VelocityRange.Validate(); err != nil {
		return err
	}
	for i := range z.Samples {
		if err := z.Samples[i].Validate(); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return nil
}

// SetProcessorType replaces a chain slot with a fresh processor of type t
// at its default parameters.
func (z *Zone) SetProcessorType(slot int, t processor.Type) error {
	if slot < 0 || slot >= MaxProcessorsPerZone {
		return fmt.Errorf("%w: %d", ErrProcessorIndex, slot)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: %d", processor.ErrUnknownType, int(t))
	}
	z.Processors[slot] = processor.DefaultStorage(t)
	return nil
}

// AttachToSample resolves slot index against m, retaining the sample and
// releasing whatever the slot held before. Unset bounds are filled from the
// sample, and with SampleLoadOverridesMapping its root key and loop apply.
func (z *Zone) AttachToSample(m *sample.Manager, index int) error {
	if index < 0 || index >= MaxSamplesPerZone {
		return fmt.Errorf("%w: %d", ErrSampleIndex, index)
	}
	a := &z.Samples[index]
	h := m.Acquire(a.SampleID)
	if h == nil {
		return fmt.Errorf("%w: %v", sample.ErrNotFound, a.SampleID)
	}

	z.handles[index].Release()
	z.handles[index] = h

	s := h.Sample()
	a.fillUnset(s, z.SampleLoadOverridesMapping)
	if z.SampleLoadOverridesMapping && s.Meta.HasRootKey {
		z.Mapping.RootKey = s.Meta.RootKey
	}
	return nil
}

// AttachAll attaches every active slot, recording missing samples with the
// manager. It returns the first error.
func (z *Zone) AttachAll(m *sample.Manager) error {
	var first error
	for i := range z.Samples {
		if !z.Samples[i].Active {
			continue
		}
		err := z.AttachToSample(m, i)
		if err == nil {
			continue
		}
		m.NoteMissing(z.Samples[i].SampleID, "")
		if first == nil {
			first = err
		}
	}
	return first
}

// DetachSample drops slot index's sample reference.
func (z *Zone) DetachSample(index int) {
	if index < 0 || index >= MaxSamplesPerZone {
		return
	}
	z.handles[index].Release()
	z.handles[index] = nil
}

// DetachAll drops every sample reference.
func (z *Zone) DetachAll() {
	for i := range z.handles {
		z.DetachSample(i)
	}
}

// SampleHandle is the retained sample for slot index, or nil.
func (z *Zone) SampleHandle(index int) *sample.Shared {
	if index < 0 || index >= MaxSamplesPerZone {
		return nil
	}
	return z.handles[index]
}

// PlayMode is the mode of the first active sample. It decides whether the
// zone triggers on note on or note off.
func (z *Zone) PlayMode() PlayMode {
	for i := range z.Samples {
		if z.Samples[i].Active {
			return z.Samples[i].PlayMode
		}
	}
	return PlayNormal
}

// NextSampleIndex round robins over the active slots with an attached
// sample. It returns -1 when there is nothing to play.
func (z *Zone) NextSampleIndex() int {
	for n := range MaxSamplesPerZone {
		i := (z.nextVariant + n) % MaxSamplesPerZone
		if z.Samples[i].Active && z.handles[i] != nil {
			z.nextVariant = i + 1
			return i
		}
	}
	return -1
}

// AddVoice records a voice pool index as playing this zone.
func (z *Zone) AddVoice(idx int) error {
	if z.activeVoices == MaxVoices {
		return ErrTooManyVoices
	}
	z.voices[z.activeVoices] = idx
	z.activeVoices++
	return nil
}

// RemoveVoice forgets a voice pool index. It reports whether the index was
// present.
func (z *Zone) RemoveVoice(idx int) bool {
	for i := 0; i < z.activeVoices; i++ {
		if z.voices[i] != idx {
			continue
		}
		z.activeVoices--
		z.voices[i] = z.voices[z.activeVoices]
		return true
	}
	return false
}

// ActiveVoices is the number of voices playing this zone.
func (z *Zone) ActiveVoices() int { return z.activeVoices }

func (z *Zone) IsActive() bool { return z.activeVoices != 0 }

// Voices are the pool indices playing this zone. The slice aliases the zone
// and is only valid until the next AddVoice or RemoveVoice.
func (z *Zone) Voices() []int { return z.voices[:z.activeVoices] }

// Part walks the parent chain, returning nil for a free zone or group.
func (z *Zone) Part() *Part {
	if z.parent == nil {
		return nil
	}
	return z.parent.parent
}
