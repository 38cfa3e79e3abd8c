// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"math"
	"math/rand/v2"

	"github.com/ik5/sampler/dsp"
)

// Generators replace the signal with their own; the mix brings the input
// back.

type phasor struct {
	rate  float32
	phase float64
}

func (p *phasor) inc(note float32) float64 {
	return float64(paramHz(note) / p.rate)
}

// step advances the phase and reports a wrap.
func (p *phasor) step(inc float64) bool {
	p.phase += inc
	if p.phase >= 1 {
		p.phase -= math.Floor(p.phase)
		return true
	}
	return false
}

type oscSin struct{ phasor }

func newOscSin(cfg unitConfig) unit { return &oscSin{phasor{rate: cfg.rate}} }

func (o *oscSin) reset() { o.phase = 0 }

func (o *oscSin) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	inc := o.inc(fp[0])
	level := dsp.DBToLinear(fp[1])
	for i := range left {
		v := level * float32(math.Sin(2*math.Pi*o.phase))
		left[i], right[i] = v, v
		o.step(inc)
	}
}

// polyBLEP smooths the discontinuity of a unit step at phase 0.
func polyBLEP(t, dt float64) float64 {
	switch {
	case t < dt:
		t /= dt
		return t + t - t*t - 1
	case t > 1-dt:
		t = (t - 1) / dt
		return t*t + t + t + 1
	default:
		return 0
	}
}

type oscSaw struct{ phasor }

func newOscSaw(cfg unitConfig) unit { return &oscSaw{phasor{rate: cfg.rate}} }

func (o *oscSaw) reset() { o.phase = 0 }

func (o *oscSaw) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	inc := o.inc(fp[0])
	level := dsp.DBToLinear(fp[1])
	for i := range left {
		v := level * float32(2*o.phase-1-polyBLEP(o.phase, inc))
		left[i], right[i] = v, v
		o.step(inc)
	}
}

type oscPulseSync struct {
	master phasor
	slave  float64
}

func newOscPulseSync(cfg unitConfig) unit {
	return &oscPulseSync{master: phasor{rate: cfg.rate}}
}

func (o *oscPulseSync) reset() {
	o.master.phase = 0
	o.slave = 0
}

func (o *oscPulseSync) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	inc := o.master.inc(fp[0])
	ratio := math.Exp2(float64(max(0, fp[1])) / 12)
	width := float64(dsp.Clamp(fp[2], 0.01, 0.99))
	level := dsp.DBToLinear(fp[3])

	for i := range left {
		v := -level
		if o.slave < width {
			v = level
		}
		left[i], right[i] = v, v

		o.slave += inc * ratio
		o.slave -= math.Floor(o.slave)
		if o.master.step(inc) {
			o.slave = o.master.phase * ratio
			o.slave -= math.Floor(o.slave)
		}
	}
}

// oscPhaseMod uses the incoming signal to modulate the phase of a sine.
type oscPhaseMod struct{ phasor }

func newOscPhaseMod(cfg unitConfig) unit { return &oscPhaseMod{phasor{rate: cfg.rate}} }

func (o *oscPhaseMod) reset() { o.phase = 0 }

func (o *oscPhaseMod) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	inc := o.inc(fp[0])
	depth := float64(dsp.Clamp(fp[1], 0, 1)) * math.Pi
	for i := range left {
		w := 2 * math.Pi * o.phase
		left[i] = float32(math.Sin(w + depth*float64(left[i])))
		right[i] = float32(math.Sin(w + depth*float64(right[i])))
		o.step(inc)
	}
}

type correlatedNoise struct {
	seed uint64
	rng  rand.PCG
	y    [2]float32
	prev [2]float32
}

func newCorrelatedNoise(cfg unitConfig) unit {
	return &correlatedNoise{seed: cfg.seed}
}

func (n *correlatedNoise) reset() {
	n.rng.Seed(n.seed, n.seed^0xda3e39cb94b95bdb)
	n.y = [2]float32{}
	n.prev = [2]float32{}
}

func (n *correlatedNoise) white() float32 {
	return float32(n.rng.Uint64()>>40)/(1<<24)*2 - 1
}

// color filters white noise: negative values integrate towards brown,
// positive values differentiate towards violet.
func (n *correlatedNoise) color(x, color float32, ch int) float32 {
	switch {
	case color < 0:
		a := -color * 0.99
		n.y[ch] = n.y[ch]*a + x*(1-a)
		return n.y[ch] * (1 + 3*(-color))
	case color > 0:
		d := x - color*n.prev[ch]
		n.prev[ch] = x
		return d / (1 + color)
	default:
		return x
	}
}

func (n *correlatedNoise) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	color := dsp.Clamp(fp[0], -1, 1)
	corr := dsp.Clamp(fp[1], -1, 1)
	side := float32(math.Sqrt(float64(1 - corr*corr)))
	level := dsp.DBToLinear(fp[2])

	for i := range left {
		a, b := n.white(), n.white()
		left[i] = level * n.color(a, color, 0)
		right[i] = level * n.color(corr*a+side*b, color, 1)
	}
}
