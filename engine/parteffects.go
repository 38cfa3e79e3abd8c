// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"math"

	"github.com/ik5/sampler/datamodel"
	"github.com/ik5/sampler/dsp"
)

// MaxPartEffectParams is the size of a part effect parameter block.
const MaxPartEffectParams = 12

type PartEffectKind int

const (
	EffectReverb1 PartEffectKind = iota
	EffectFlanger
)

func (k PartEffectKind) String() string {
	switch k {
	case EffectReverb1:
		return "reverb1"
	case EffectFlanger:
		return "flanger"
	}
	return fmt.Sprintf("PartEffectKind(%d)", int(k))
}

// PartEffectStorage is the persisted parameter block of a part effect.
type PartEffectStorage struct {
	Params [MaxPartEffectParams]float32
}

// PartEffect processes a part bus in place. Init loads the parameter
// defaults into the storage and clears the state.
type PartEffect interface {
	Init()
	Process(left, right *dsp.Block)
}

// Reverb parameter slots.
const (
	ReverbPreDelay = iota
	ReverbRoomSize
	ReverbDamping
	ReverbWidth
	ReverbLowCut
	ReverbHighCut
	ReverbMix
)

// Flanger parameter slots.
const (
	FlangerRate = iota
	FlangerDepth
	FlangerCenter
	FlangerFeedback
	FlangerSpread
	FlangerGain
	FlangerMix
)

var (
	mixParam = datamodel.Metadata{}.AsPercent().WithName("Mix")

	reverbParams = []datamodel.Metadata{
		ReverbPreDelay: datamodel.Metadata{}.AsSeconds(0.25).WithName("Pre-Delay").WithDefault(0.01),
		ReverbRoomSize: datamodel.Metadata{}.AsPercent().WithName("Room Size").WithDefault(0.6),
		ReverbDamping:  datamodel.Metadata{}.AsPercent().WithName("Damping").WithDefault(0.4),
		ReverbWidth:    datamodel.Metadata{}.AsPercent().WithName("Width").WithDefault(1),
		ReverbLowCut:   datamodel.Metadata{}.AsAudibleFrequency().WithName("Low Cut").WithDefault(-48),
		ReverbHighCut:  datamodel.Metadata{}.AsAudibleFrequency().WithName("High Cut").WithDefault(48),
		ReverbMix:      mixParam.WithDefault(0.3),
	}

	flangerParams = []datamodel.Metadata{
		FlangerRate:     datamodel.Metadata{}.AsLFORate().WithName("Rate").WithDefault(-2),
		FlangerDepth:    datamodel.Metadata{}.AsPercent().WithName("Depth").WithDefault(0.5),
		FlangerCenter:   datamodel.Metadata{}.AsSemitoneRange(48).WithRange(-24, 48).WithName("Center").WithDefault(12),
		FlangerFeedback: datamodel.Metadata{}.AsPercentBipolar().WithRange(-0.95, 0.95).WithName("Feedback"),
		FlangerSpread:   datamodel.Metadata{}.AsPercent().WithName("Spread").WithDefault(0.25),
		FlangerGain:     datamodel.Metadata{}.AsDecibel().WithRange(-24, 12).WithName("Gain"),
		FlangerMix:      mixParam.WithDefault(0.5),
	}
)

// PartEffectParams describes the used parameter slots of kind.
func PartEffectParams(kind PartEffectKind) ([]datamodel.Metadata, error) {
	switch kind {
	case EffectReverb1:
		return reverbParams, nil
	case EffectFlanger:
		return flangerParams, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownEffect, kind)
}

// CreatePartEffect builds the effect for kind over st. Buffers are sized
// from the host sample rate here, so it must not be called on the audio
// path.
func CreatePartEffect(kind PartEffectKind, host Services, st *PartEffectStorage) (PartEffect, error) {
	if host == nil {
		return nil, ErrNilServices
	}
	if st == nil {
		return nil, fmt.Errorf("%w: nil storage", ErrUnknownEffect)
	}
	switch kind {
	case EffectReverb1:
		return newReverb(host, st), nil
	case EffectFlanger:
		return newFlanger(host, st), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownEffect, kind)
}

func loadDefaults(st *PartEffectStorage, params []datamodel.Metadata) {
	st.Params = [MaxPartEffectParams]float32{}
	for i, p := range params {
		st.Params[i] = p.DefaultValue
	}
}

// cutoff turns a note offset from A4 into Hz.
func cutoff(host Services, v float32) float32 {
	return 440 * host.NoteToPitchIgnoringTuning(MiddleC+v)
}

// Freeverb tunings at 44.1kHz.
var (
	combTuning    = [...]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	allpassTuning = [...]int{556, 441, 341, 225}
)

const (
	stereoSpread  = 23
	reverbInGain  = 0.015
	allpassCoeff  = 0.5
	maxPreDelay   = 0.25
	roomScale     = 0.28
	roomOffset    = 0.7
	dampingScale  = 0.4
	numCombs      = len(combTuning)
	numAllpasses  = len(allpassTuning)
	flangerMaxSec = 0.02
)

type comb struct {
	line   dsp.DelayLine
	length int
	filt   float32
}

func newComb(length int) comb {
	return comb{line: dsp.NewDelayLine(length + 1), length: length}
}

func (c *comb) step(in, feedback, damp float32) float32 {
	out := c.line.Tap(c.length)
	c.filt = out*(1-damp) + c.filt*damp
	c.line.Write(in + c.filt*feedback)
	return out
}

type allpass struct {
	line   dsp.DelayLine
	length int
}

func newAllpass(length int) allpass {
	return allpass{line: dsp.NewDelayLine(length + 1), length: length}
}

func (a *allpass) step(in float32) float32 {
	buffered := a.line.Tap(a.length)
	a.line.Write(in + buffered*allpassCoeff)
	return buffered - in
}

type reverb struct {
	host Services
	st   *PartEffectStorage
	rate float32

	preDelay dsp.DelayLine
	combs    [2][numCombs]comb
	allpass  [2][numAllpasses]allpass
	lowCut   dsp.Biquad
	highCut  dsp.Biquad

	dryL, dryR dsp.Block
}

func newReverb(host Services, st *PartEffectStorage) *reverb {
	rate := float32(host.SampleRate())
	scale := rate / 44100
	r := &reverb{
		host:     host,
		st:       st,
		rate:     rate,
		preDelay: dsp.NewDelayLine(int(maxPreDelay*rate) + 4),
	}
	for ch := range 2 {
		spread := ch * stereoSpread
		for i, n := range combTuning {
			r.combs[ch][i] = newComb(max(1, int(float32(n+spread)*scale)))
		}
		for i, n := range allpassTuning {
			r.allpass[ch][i] = newAllpass(max(1, int(float32(n+spread)*scale)))
		}
	}
	return r
}

func (r *reverb) Init() {
	loadDefaults(r.st, reverbParams)
	r.preDelay.Reset()
	for ch := range r.combs {
		for i := range r.combs[ch] {
			r.combs[ch][i].line.Reset()
			r.combs[ch][i].filt = 0
		}
		for i := range r.allpass[ch] {
			r.allpass[ch][i].line.Reset()
		}
	}
	r.lowCut.Reset()
	r.highCut.Reset()
}

func (r *reverb) Process(left, right *dsp.Block) {
	p := &r.st.Params
	r.dryL, r.dryR = *left, *right

	delay := dsp.Clamp(p[ReverbPreDelay], 0, maxPreDelay) * r.rate
	feedback := dsp.Clamp(p[ReverbRoomSize], 0, 1)*roomScale + roomOffset
	damp := dsp.Clamp(p[ReverbDamping], 0, 1) * dampingScale
	width := dsp.Clamp(p[ReverbWidth], 0, 1)
	wet1 := width/2 + 0.5
	wet2 := (1 - width) / 2

	for i := range dsp.BlockSize {
		r.preDelay.Write((left[i] + right[i]) * reverbInGain)
		in := r.preDelay.Read(delay)

		var outL, outR float32
		for c := range numCombs {
			outL += r.combs[0][c].step(in, feedback, damp)
			outR += r.combs[1][c].step(in, feedback, damp)
		}
		for a := range numAllpasses {
			outL = r.allpass[0][a].step(outL)
			outR = r.allpass[1][a].step(outR)
		}
		left[i] = outL*wet1 + outR*wet2
		right[i] = outR*wet1 + outL*wet2
	}

	r.lowCut.SetCoefficients(dsp.BiquadHighpass, r.rate, cutoff(r.host, p[ReverbLowCut]), 0.707, 0)
	r.highCut.SetCoefficients(dsp.BiquadLowpass, r.rate, cutoff(r.host, p[ReverbHighCut]), 0.707, 0)
	r.lowCut.Process(left[:], right[:])
	r.highCut.Process(left[:], right[:])

	mix := dsp.Clamp(p[ReverbMix], 0, 1)
	dsp.BlendBlock(left[:], r.dryL[:], mix)
	dsp.BlendBlock(right[:], r.dryR[:], mix)
}

type flanger struct {
	host    Services
	st      *PartEffectStorage
	rate    float32
	rateInv float32

	lines    [2]dsp.DelayLine
	fb       [2]float32
	phase    float64
	maxDelay float32
}

func newFlanger(host Services, st *PartEffectStorage) *flanger {
	rate := float32(host.SampleRate())
	f := &flanger{
		host:     host,
		st:       st,
		rate:     rate,
		rateInv:  float32(host.SampleRateInv()),
		maxDelay: flangerMaxSec * rate,
	}
	for ch := range f.lines {
		f.lines[ch] = dsp.NewDelayLine(int(f.maxDelay) + 4)
	}
	return f
}

func (f *flanger) Init() {
	loadDefaults(f.st, flangerParams)
	for ch := range f.lines {
		f.lines[ch].Reset()
	}
	f.fb = [2]float32{}
	f.phase = 0
}

// delayFor is the comb delay in frames tuned to note offset v from A4.
func (f *flanger) delayFor(v float32) float32 {
	hz := cutoff(f.host, v)
	return dsp.Clamp(f.rate/hz, 1, f.maxDelay)
}

func (f *flanger) Process(left, right *dsp.Block) {
	p := &f.st.Params
	hz := math.Exp2(float64(p[FlangerRate]))
	inc := hz * float64(f.rateInv)
	depth := dsp.Clamp(p[FlangerDepth], 0, 1) * 24
	center := p[FlangerCenter]
	feedback := dsp.Clamp(p[FlangerFeedback], -0.95, 0.95)
	spread := float64(dsp.Clamp(p[FlangerSpread], 0, 1)) * 0.5
	gain := f.host.DBToLinear(p[FlangerGain])
	mix := dsp.Clamp(p[FlangerMix], 0, 1)

	chans := [2]*dsp.Block{left, right}
	for i := range dsp.BlockSize {
		for ch, buf := range chans {
			ph := f.phase + float64(ch)*spread
			mod := float32(math.Sin(2 * math.Pi * ph))
			d := f.delayFor(center + depth*mod)

			dry := buf[i]
			f.lines[ch].Write(dry + f.fb[ch]*feedback)
			wet := f.lines[ch].Read(d)
			f.fb[ch] = wet

			buf[i] = (dry + mix*(wet-dry)) * gain
		}
		f.phase += inc
		if f.phase >= 1 {
			f.phase -= math.Floor(f.phase)
		}
	}
}
