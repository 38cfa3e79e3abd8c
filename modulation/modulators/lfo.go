// SPDX-License-Identifier: EPL-2.0

package modulators

import (
	"math"
	"math/rand/v2"

	"github.com/gopxl/beep"

	"github.com/ik5/sampler/dsp"
)

// LFO evaluates one ModulatorStorage slot for a voice. The shape is latched
// at Attack; changing it on a sounding voice takes effect on the next note.
type LFO struct {
	rate         beep.SampleRate
	blockSeconds float64
	shape        Shape

	phase float64
	rng   rand.PCG

	// curve
	amp            Envelope
	held, next     float32
	releaseEnabled bool

	// step
	step, prevStep int

	env Envelope

	Output float32
}

// Init prepares the LFO for a sample rate. The seed makes noise shapes
// reproducible per voice.
func (l *LFO) Init(rate beep.SampleRate, seed uint64) {
	*l = LFO{
		rate:         rate,
		blockSeconds: rate.D(dsp.BlockSize).Seconds(),
	}
	l.rng.Seed(seed, seed^0x9e3779b97f4a7c15)
	l.amp.Init(rate)
	l.env.Init(rate)
}

func (l *LFO) Shape() Shape { return l.shape }

// Attack starts the LFO for a new voice.
func (l *LFO) Attack(ms *ModulatorStorage) {
	l.shape = ms.Shape
	l.phase = float64(max(0, min(1, ms.StartPhase)))
	if l.phase >= 1 {
		l.phase = 0
	}

	switch l.shape {
	case ShapeCurve:
		l.held, l.next = l.random(), l.random()
		l.releaseEnabled = ms.Curve.Release > 0
		p := curveAmpParams(&ms.Curve)
		l.amp.Attack(&p)
		l.Output = l.curveValue(ms)
	case ShapeStep:
		n := numSteps(&ms.Step)
		l.step = min(n-1, int(l.phase*float64(n)))
		l.prevStep = l.step
		l.phase = l.phase*float64(n) - float64(l.step)
		l.Output = ms.Step.Steps[l.step]
	case ShapeEnvelope:
		p := envParams(&ms.Envelope)
		l.env.Attack(&p)
		l.Output = l.env.Output
	default:
		l.Output = 0
	}
}

// Release tells the LFO the voice's gate closed.
func (l *LFO) Release() {
	switch l.shape {
	case ShapeCurve:
		if l.releaseEnabled {
			l.amp.Release()
		}
	case ShapeEnvelope:
		l.env.Release()
	}
}

// Process advances by one block.
func (l *LFO) Process(ms *ModulatorStorage) {
	switch l.shape {
	case ShapeCurve:
		p := curveAmpParams(&ms.Curve)
		l.amp.Process(&p)
		if l.advance(ms.Rate) {
			l.held, l.next = l.next, l.random()
		}
		l.Output = l.curveValue(ms)
	case ShapeStep:
		if l.advance(ms.Rate) {
			l.prevStep = l.step
			l.step = (l.step + 1) % numSteps(&ms.Step)
		}
		l.Output = l.stepValue(&ms.Step)
	case ShapeEnvelope:
		p := envParams(&ms.Envelope)
		l.env.Process(&p)
		l.Output = l.env.Output
	default:
		l.Output = 0
	}
}

// advance moves the phase on by one block and reports a wrap.
func (l *LFO) advance(rate float32) bool {
	l.phase += math.Exp2(float64(rate)) * l.blockSeconds
	if l.phase < 1 {
		return false
	}
	l.phase -= math.Floor(l.phase)
	return true
}

func (l *LFO) random() float32 {
	return float32(l.rng.Uint64()>>40)/(1<<24)*2 - 1
}

func (l *LFO) curveValue(ms *ModulatorStorage) float32 {
	c := &ms.Curve
	p := shaped(float32(l.phase), c.Deform)

	var v float32
	switch c.Waveform {
	case WaveTriangle:
		if p < 0.5 {
			v = 4*p - 1
		} else {
			v = 3 - 4*p
		}
	case WaveRamp:
		v = 2*p - 1
	case WavePulse:
		v = 1
		if p >= 0.5 {
			v = -1
		}
	case WaveNoise:
		v = l.held + (l.next-l.held)*p
	case WaveSampleHold:
		v = l.held
	default:
		v = float32(math.Sin(2 * math.Pi * float64(p)))
	}
	if c.Unipolar {
		v = (v + 1) / 2
	}
	return v * l.amp.Output
}

func (l *LFO) stepValue(st *StepSettings) float32 {
	cur := st.Steps[l.step]
	if st.Smooth <= 0 {
		return cur
	}
	t := min(1, float32(l.phase)/st.Smooth)
	prev := st.Steps[l.prevStep]
	return prev + (cur-prev)*t
}

func numSteps(st *StepSettings) int {
	return max(1, min(MaxSteps, st.NumSteps))
}

func curveAmpParams(c *CurveSettings) EnvelopeParams {
	return EnvelopeParams{Delay: c.Delay, Attack: c.Attack, Sustain: 1, Release: c.Release}
}

func envParams(s *EnvelopeSettings) EnvelopeParams {
	return EnvelopeParams{
		Delay: s.Delay, Attack: s.Attack, Hold: s.Hold,
		Decay: s.Decay, Sustain: s.Sustain, Release: s.Release,
	}
}
