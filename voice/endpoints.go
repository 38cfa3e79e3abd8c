// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"fmt"

	"github.com/ik5/sampler/datamodel"
	"github.com/ik5/sampler/dsp/processor"
	"github.com/ik5/sampler/engine"
	"github.com/ik5/sampler/modulation"
	"github.com/ik5/sampler/modulation/modulators"
)

type CurveTargets struct {
	Deform, Delay, Attack, Release modulation.TargetID
}

type StepTargets struct {
	Smooth modulation.TargetID
}

type EnvTargets struct {
	Delay, Attack, Hold, Decay, Sustain, Release modulation.TargetID
}

// LFOTarget names the modulatable fields of one LFO slot. Only the fields
// of the slot's current shape are offered in menus, but all of them bind.
type LFOTarget struct {
	Index uint32
	Rate  modulation.TargetID
	Curve CurveTargets
	Step  StepTargets
	Env   EnvTargets
}

func newLFOTarget(i uint32) LFOTarget {
	t := func(el string) modulation.TargetID { return modulation.NewTargetID("lfo ", el, i) }
	return LFOTarget{
		Index: i,
		Rate:  t("rate"),
		Curve: CurveTargets{Deform: t("cdfm"), Delay: t("cdly"), Attack: t("catk"), Release: t("crel")},
		Step:  StepTargets{Smooth: t("ssmo")},
		Env: EnvTargets{
			Delay: t("edly"), Attack: t("eatk"), Hold: t("ehld"),
			Decay: t("edcy"), Sustain: t("esus"), Release: t("erel"),
		},
	}
}

// EGTarget names the fields of an envelope generator, index 0 being the
// amplitude envelope.
type EGTarget struct {
	Index                  uint32
	A, H, D, S, R          modulation.TargetID
	AShape, DShape, RShape modulation.TargetID
}

func newEGTarget(i uint32) EGTarget {
	t := func(el string) modulation.TargetID { return modulation.NewTargetID("eg  ", el, i) }
	return EGTarget{
		Index: i,
		A:     t("a   "), H: t("h   "), D: t("d   "), S: t("s   "), R: t("r   "),
		AShape: t("ashp"), DShape: t("dshp"), RShape: t("rshp"),
	}
}

type MappingTarget struct {
	PitchOffset, Amplitude, Pan, PlaybackRatio modulation.TargetID
}

type OutputTarget struct {
	Amplitude, Pan modulation.TargetID
}

// ProcessorTarget names the mix and float parameters of one chain slot.
type ProcessorTarget struct {
	Index uint32
	Mix   modulation.TargetID
	Float [processor.MaxFloatParams]modulation.TargetID
}

func newProcessorTarget(i uint32) ProcessorTarget {
	p := ProcessorTarget{Index: i, Mix: modulation.NewTargetID("proc", "mix ", i)}
	for f := range p.Float {
		p.Float[f] = modulation.NewTargetID("proc", fmt.Sprintf("fp %d", f), i)
	}
	return p
}

type Sources struct {
	LFO      [engine.LFOsPerZone]modulation.SourceID
	AEG, EG2 modulation.SourceID
	ModWheel modulation.SourceID
	Velocity modulation.SourceID
}

// Endpoints is the full vocabulary of a voice matrix. It is immutable after
// NewEndpoints and shared by every voice.
type Endpoints struct {
	LFO       [engine.LFOsPerZone]LFOTarget
	EG        [engine.EGsPerZone]EGTarget
	Mapping   MappingTarget
	Output    OutputTarget
	Processor [engine.MaxProcessorsPerZone]ProcessorTarget
	Sources   Sources
}

func NewEndpoints() *Endpoints {
	e := &Endpoints{
		Mapping: MappingTarget{
			PitchOffset:   modulation.NewTargetID("zmap", "ptof", 0),
			Amplitude:     modulation.NewTargetID("zmap", "ampl", 0),
			Pan:           modulation.NewTargetID("zmap", "pan ", 0),
			PlaybackRatio: modulation.NewTargetID("zmap", "pbrt", 0),
		},
		Output: OutputTarget{
			Amplitude: modulation.NewTargetID("zout", "ampl", 0),
			Pan:       modulation.NewTargetID("zout", "pan ", 0),
		},
		Sources: Sources{
			AEG:      modulation.NewSourceID("eg  ", "outp", 0),
			EG2:      modulation.NewSourceID("eg  ", "outp", 1),
			ModWheel: modulation.NewSourceID("midi", "modw", 0),
			Velocity: modulation.NewSourceID("midi", "velo", 0),
		},
	}
	for i := range e.LFO {
		e.LFO[i] = newLFOTarget(uint32(i))
		e.Sources.LFO[i] = modulation.NewSourceID("lfo ", "outp", uint32(i))
	}
	for i := range e.EG {
		e.EG[i] = newEGTarget(uint32(i))
	}
	for i := range e.Processor {
		e.Processor[i] = newProcessorTarget(uint32(i))
	}
	return e
}

// Target metadata. Time and level targets reuse the modulator storage
// metadata so display and depth scaling agree.
var (
	pitchOffsetMetadata   = datamodel.Metadata{}.AsSemitoneRange(96).WithName("Pitch Offset")
	amplitudeMetadata     = datamodel.Metadata{}.AsPercent().WithName("Amplitude").WithDefault(1)
	panMetadata           = datamodel.Metadata{}.AsPercentBipolar().WithName("Pan")
	playbackRatioMetadata = datamodel.Metadata{}.AsPercent().WithName("Playback Ratio")
	mixMetadata           = datamodel.Metadata{}.AsPercent().WithName("mix").WithDefault(1)

	playbackRatioRange = modulation.Range{Min: 0, Max: 2}
	mixRange           = modulation.Range{Min: 0, Max: 1}
)

// Live holds the voice's copy of every modulatable zone value. The matrix
// writes it each block; the zone keeps the base values.
type Live struct {
	Modulators [engine.LFOsPerZone]modulators.ModulatorStorage
	EGs        [engine.EGsPerZone]modulators.AdsrStorage

	PitchOffset, Amplitude, Pan, PlaybackRatio float32
	OutAmplitude, OutPan                       float32

	Processors [engine.MaxProcessorsPerZone]processor.Storage

	// zero is the base of targets without zone storage and the value of
	// sources that produce nothing.
	zero float32
}

func (l *Live) load(z *engine.Zone) {
	l.Modulators = z.Modulators
	l.EGs = z.EGs
	l.PitchOffset = z.Mapping.PitchOffset
	l.Amplitude = z.Mapping.Amplitude
	l.Pan = z.Mapping.Pan
	l.PlaybackRatio = 0
	l.OutAmplitude = z.Output.Amplitude
	l.OutPan = z.Output.Pan
	l.Processors = z.Processors
	l.zero = 0
}

// binder collects the first error of a run of BindTarget calls.
type binder struct {
	m   *modulation.Matrix
	err error
}

func (b *binder) bind(id modulation.TargetID, base, out *float32, md datamodel.Metadata, override *modulation.Range) {
	if b.err != nil {
		return
	}
	b.err = b.m.BindTarget(id, base, out, md, override)
}

// BindTargets binds every target against z's storage as base and l as
// output. Processor slots of type none bind nothing.
func (e *Endpoints) BindTargets(m *modulation.Matrix, z *engine.Zone, l *Live) error {
	b := binder{m: m}

	for i := range e.LFO {
		t := &e.LFO[i]
		ms, out := &z.Modulators[i], &l.Modulators[i]
		b.bind(t.Rate, &ms.Rate, &out.Rate, modulators.RateMetadata, nil)
		b.bind(t.Curve.Deform, &ms.Curve.Deform, &out.Curve.Deform, modulators.DeformMetadata, nil)
		b.bind(t.Curve.Delay, &ms.Curve.Delay, &out.Curve.Delay, modulators.TimeMetadata, nil)
		b.bind(t.Curve.Attack, &ms.Curve.Attack, &out.Curve.Attack, modulators.TimeMetadata, nil)
		b.bind(t.Curve.Release, &ms.Curve.Release, &out.Curve.Release, modulators.TimeMetadata, nil)
		b.bind(t.Step.Smooth, &ms.Step.Smooth, &out.Step.Smooth, modulators.SmoothMetadata, nil)
		b.bind(t.Env.Delay, &ms.Envelope.Delay, &out.Envelope.Delay, modulators.TimeMetadata, nil)
		b.bind(t.Env.Attack, &ms.Envelope.Attack, &out.Envelope.Attack, modulators.TimeMetadata, nil)
		b.bind(t.Env.Hold, &ms.Envelope.Hold, &out.Envelope.Hold, modulators.TimeMetadata, nil)
		b.bind(t.Env.Decay, &ms.Envelope.Decay, &out.Envelope.Decay, modulators.TimeMetadata, nil)
		b.bind(t.Env.Sustain, &ms.Envelope.Sustain, &out.Envelope.Sustain, modulators.LevelMetadata, nil)
		b.bind(t.Env.Release, &ms.Envelope.Release, &out.Envelope.Release, modulators.TimeMetadata, nil)
	}

	for i := range e.EG {
		t := &e.EG[i]
		eg, out := &z.EGs[i], &l.EGs[i]
		b.bind(t.A, &eg.A, &out.A, modulators.TimeMetadata, nil)
		b.bind(t.H, &eg.H, &out.H, modulators.TimeMetadata, nil)
		b.bind(t.D, &eg.D, &out.D, modulators.TimeMetadata, nil)
		b.bind(t.S, &eg.S, &out.S, modulators.LevelMetadata, nil)
		b.bind(t.R, &eg.R, &out.R, modulators.TimeMetadata, nil)
		b.bind(t.AShape, &eg.AShape, &out.AShape, modulators.ShapeMetadata, nil)
		b.bind(t.DShape, &eg.DShape, &out.DShape, modulators.ShapeMetadata, nil)
		b.bind(t.RShape, &eg.RShape, &out.RShape, modulators.ShapeMetadata, nil)
	}

	mt := &z.Mapping
	b.bind(e.Mapping.PitchOffset, &mt.PitchOffset, &l.PitchOffset, pitchOffsetMetadata, nil)
	b.bind(e.Mapping.Amplitude, &mt.Amplitude, &l.Amplitude, amplitudeMetadata, nil)
	b.bind(e.Mapping.Pan, &mt.Pan, &l.Pan, panMetadata, nil)
	b.bind(e.Mapping.PlaybackRatio, &l.zero, &l.PlaybackRatio, playbackRatioMetadata, &playbackRatioRange)

	ot := &z.Output
	b.bind(e.Output.Amplitude, &ot.Amplitude, &l.OutAmplitude, amplitudeMetadata, nil)
	b.bind(e.Output.Pan, &ot.Pan, &l.OutPan, panMetadata, nil)

	for i := range e.Processor {
		ps := &z.Processors[i]
		if ps.Type == processor.TypeNone {
			continue
		}
		d, err := processor.Describe(ps.Type)
		if err != nil {
			continue
		}
		t := &e.Processor[i]
		out := &l.Processors[i]
		b.bind(t.Mix, &ps.Mix, &out.Mix, mixMetadata, &mixRange)
		for f := range d.NumFloatParams {
			md := d.FloatControls[f]
			b.bind(t.Float[f], &ps.FloatParams[f], &out.FloatParams[f], md, &modulation.Range{Min: md.Min, Max: md.Max})
		}
	}
	return b.err
}

// BindSources binds the LFO slots by the shape each one latched at attack,
// the envelopes at their block start value, the part mod wheel and the
// note velocity.
func (e *Endpoints) BindSources(m *modulation.Matrix, v *Voice) error {
	for i := range e.Sources.LFO {
		src := &v.lfos[i].Output
		if v.lfos[i].Shape() == modulators.ShapeMSEG {
			src = &v.live.zero
		}
		if err := m.BindSource(e.Sources.LFO[i], src); err != nil {
			return err
		}
	}
	if err := m.BindSource(e.Sources.AEG, &v.aeg.OutBlock0); err != nil {
		return err
	}
	if err := m.BindSource(e.Sources.EG2, &v.eg2.OutBlock0); err != nil {
		return err
	}

	modWheel := &v.live.zero
	if part := v.zone.Part(); part != nil {
		modWheel = part.ModWheel()
	}
	if err := m.BindSource(e.Sources.ModWheel, modWheel); err != nil {
		return err
	}
	return m.BindSource(e.Sources.Velocity, &v.velocity)
}

// targetIDs lists every target in declaration order.
func (e *Endpoints) targetIDs() []modulation.TargetID {
	var ids []modulation.TargetID
	for _, t := range e.LFO {
		ids = append(ids, t.Rate,
			t.Curve.Deform, t.Curve.Delay, t.Curve.Attack, t.Curve.Release,
			t.Step.Smooth,
			t.Env.Delay, t.Env.Attack, t.Env.Hold, t.Env.Decay, t.Env.Sustain, t.Env.Release)
	}
	for _, t := range e.EG {
		ids = append(ids, t.A, t.H, t.D, t.S, t.R, t.AShape, t.DShape, t.RShape)
	}
	ids = append(ids, e.Mapping.PitchOffset, e.Mapping.Amplitude, e.Mapping.Pan, e.Mapping.PlaybackRatio)
	ids = append(ids, e.Output.Amplitude, e.Output.Pan)
	for _, t := range e.Processor {
		ids = append(ids, t.Mix)
		ids = append(ids, t.Float[:]...)
	}
	return ids
}

func (e *Endpoints) sourceIDs() []modulation.SourceID {
	ids := append([]modulation.SourceID(nil), e.Sources.LFO[:]...)
	return append(ids, e.Sources.AEG, e.Sources.EG2, e.Sources.ModWheel, e.Sources.Velocity)
}

// Validate checks that every identifier is set and unique.
func (e *Endpoints) Validate() error {
	seen := map[modulation.Identifier]bool{}
	for _, id := range e.targetIDs() {
		if !id.IsSet() {
			return fmt.Errorf("%w: target %v", ErrUnsetEndpoint, id)
		}
		if seen[modulation.Identifier(id)] {
			return fmt.Errorf("%w: %v", ErrDuplicateEndpoint, id)
		}
		seen[modulation.Identifier(id)] = true
	}
	clear(seen)
	for _, id := range e.sourceIDs() {
		if !id.IsSet() {
			return fmt.Errorf("%w: source %v", ErrUnsetEndpoint, id)
		}
		if seen[modulation.Identifier(id)] {
			return fmt.Errorf("%w: %v", ErrDuplicateEndpoint, id)
		}
		seen[modulation.Identifier(id)] = true
	}
	return nil
}
