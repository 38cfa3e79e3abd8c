// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"github.com/gopxl/beep"

	"github.com/ik5/sampler/dsp"
	"github.com/ik5/sampler/dsp/processor"
	"github.com/ik5/sampler/engine"
	"github.com/ik5/sampler/modulation"
	"github.com/ik5/sampler/modulation/modulators"
	"github.com/ik5/sampler/sample"
)

// State is where a voice is in its life.
type State int

const (
	// StateIdle voices are free pool slots.
	StateIdle State = iota
	StateSounding
	StateReleased
	// StateSilent voices have finished and wait to be reclaimed. They do
	// not write output.
	StateSilent
)

var stateNames = [...]string{"idle", "sounding", "released", "silent"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Voice plays one triggered instance of a zone.
type Voice struct {
	state    State
	index    int
	age      uint64
	rendered bool

	zone     *engine.Zone
	part     *engine.Part
	services engine.Services
	handle   *sample.Shared

	channel, key int
	velocity     float32
	velGain      float32
	fade         float32
	playMode     engine.PlayMode

	live   Live
	matrix modulation.Matrix
	lfos   [engine.LFOsPerZone]modulators.LFO
	aeg    modulators.Envelope
	eg2    modulators.Envelope
	pb     playback
	chain  processor.Chain

	outL, outR dsp.Block
}

func (v *Voice) State() State       { return v.state }
func (v *Voice) Rendered() bool     { return v.rendered }
func (v *Voice) Zone() *engine.Zone { return v.zone }
func (v *Voice) Key() int           { return v.key }
func (v *Voice) Channel() int       { return v.channel }

// Output is the last rendered block. It is garbage unless the latest
// Process call returned true.
func (v *Voice) Output() (*dsp.Block, *dsp.Block) { return &v.outL, &v.outR }

// Matrix is the voice's modulation matrix, bound while the voice plays.
func (v *Voice) Matrix() *modulation.Matrix { return &v.matrix }

// Live is the voice's modulated copy of the zone values.
func (v *Voice) Live() *Live { return &v.live }

// trigger holds what attack needs besides the zone.
type trigger struct {
	zone        *engine.Zone
	part        *engine.Part
	sampleIndex int
	key, vel    int
	age         uint64
	rate        beep.SampleRate
	seed        uint64
}

// attack starts the voice. The caller has registered the voice with the
// zone and resolved its processors.
func (v *Voice) attack(tr *trigger, ep *Endpoints) {
	z := tr.zone
	v.state = StateSounding
	v.age = tr.age
	v.zone = z
	v.part = tr.part
	v.services = z.Services()
	v.channel = tr.part.Channel
	v.key = tr.key
	v.velocity = float32(tr.vel) / 127
	v.velGain = 1 + z.Mapping.VelocitySens*(v.velocity-1)
	v.fade = z.FadeAmplitude(tr.key, tr.vel)

	a := &z.Samples[tr.sampleIndex]
	v.playMode = a.PlayMode
	v.handle = z.SampleHandle(tr.sampleIndex)
	v.handle.Retain()
	v.pb.start(v.handle.Sample(), a)

	v.live.load(z)
	for i := range v.lfos {
		v.lfos[i].Init(tr.rate, tr.seed+uint64(i))
		v.lfos[i].Attack(&v.live.Modulators[i])
	}
	v.aeg.Init(tr.rate)
	v.eg2.Init(tr.rate)
	aegP, eg2P := v.live.EGs[0].Params(), v.live.EGs[1].Params()
	v.aeg.Attack(&aegP)
	v.eg2.Attack(&eg2P)

	v.chain.Path = z.Output.ProcRouting
	v.chain.Init()

	v.matrix.Reset()
	v.matrix.Attach(&z.Routings)
	// Endpoints are validated when the pool is built, so binding only
	// fails on a full matrix, which the fixed vocabulary cannot reach.
	_ = ep.BindTargets(&v.matrix, z, &v.live)
	_ = ep.BindSources(&v.matrix, v)
}

// Release closes the gate. One shot and on release voices ignore it.
func (v *Voice) Release() {
	if v.state != StateSounding || v.playMode != engine.PlayNormal {
		return
	}
	v.state = StateReleased
	v.pb.gated = false
	v.aeg.Release()
	v.eg2.Release()
	for i := range v.lfos {
		v.lfos[i].Release()
	}
}

// FastRelease fades the voice out within a few milliseconds whatever its
// play mode. Stealing and exclusive groups use it.
func (v *Voice) FastRelease() {
	if v.state != StateSounding && v.state != StateReleased {
		return
	}
	v.state = StateReleased
	v.pb.gated = false
	v.aeg.FastRelease()
	v.eg2.Release()
	for i := range v.lfos {
		v.lfos[i].Release()
	}
}

// pitchRatio is the source frames to advance per output frame.
func (v *Voice) pitchRatio() float64 {
	m := &v.zone.Mapping
	note := float32(v.key) + v.live.PitchOffset
	if bend := v.part.PitchBend(); bend > 0 {
		note += bend * float32(m.PBUp)
	} else {
		note += bend * float32(m.PBDown)
	}
	pitch := v.services.NoteToPitch(note) / v.services.NoteToPitch(float32(m.RootKey))
	speed := max(0, 1+v.live.PlaybackRatio)
	return float64(pitch*speed) * float64(v.pb.smp.SampleRate()) * v.services.SampleRateInv()
}

// Process renders one block. Modulation sources run first, then the
// matrix, then the sample and the processor chain. It reports whether
// Output holds audio; a voice that finishes turns silent.
func (v *Voice) Process() bool {
	if v.state != StateSounding && v.state != StateReleased {
		return false
	}

	for i := range v.lfos {
		v.lfos[i].Process(&v.live.Modulators[i])
	}
	aegP, eg2P := v.live.EGs[0].Params(), v.live.EGs[1].Params()
	v.aeg.Process(&aegP)
	v.eg2.Process(&eg2P)

	v.matrix.Process()

	v.pb.render(&v.outL, &v.outR, v.pitchRatio())
	v.chain.Process(&v.outL, &v.outR)
	v.applyGain()

	switch {
	case v.aeg.Done():
		v.state = StateSilent
	case v.pb.done && v.chain.Empty():
		v.state = StateSilent
	case v.pb.done:
		// let the chain ring out over the amplitude release
		v.state = StateReleased
		v.aeg.Release()
	}
	return true
}

func (v *Voice) applyGain() {
	gain := v.live.Amplitude * v.live.OutAmplitude * v.velGain * v.fade
	if v.zone.Output.Muted {
		gain = 0
	}
	pan := dsp.Clamp(v.live.Pan+v.live.OutPan, -1, 1)

	var gl, gr float32
	if v.pb.smp.Channels() > 1 {
		gl, gr = min(1, 1-pan), min(1, 1+pan)
	} else {
		gl, gr = dsp.PanGains(pan)
	}

	e0, e1 := v.aeg.OutBlock0, v.aeg.Output
	step := (e1 - e0) / dsp.BlockSize
	for i := range dsp.BlockSize {
		g := gain * (e0 + step*float32(i))
		v.outL[i] *= g * gl
		v.outR[i] *= g * gr
	}
}

// finish drops the voice's references. The pool reclaims its slot.
func (v *Voice) finish() {
	if v.zone != nil {
		v.zone.RemoveVoice(v.index)
	}
	v.handle.Release()
	v.matrix.Reset()
	v.handle = nil
	v.zone = nil
	v.part = nil
	v.services = nil
	v.pb = playback{}
	v.rendered = false
	v.state = StateIdle
}
