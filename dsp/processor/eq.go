// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"math"

	"github.com/ik5/sampler/dsp"
)

// bandwidthToQ converts a bandwidth in octaves to a peaking filter Q.
func bandwidthToQ(octaves float32) float32 {
	octaves = dsp.Clamp(octaves, 0.05, 8)
	p := math.Exp2(float64(octaves))
	return float32(math.Sqrt(p) / (p - 1))
}

type parametricEQ struct {
	rate  float32
	bands int
	eq    [3]dsp.Biquad
}

func newParametricEQ(cfg unitConfig, bands int) unit {
	return &parametricEQ{rate: cfg.rate, bands: bands}
}

func (e *parametricEQ) reset() {
	for i := range e.eq {
		e.eq[i].Reset()
	}
}

func (e *parametricEQ) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	for b := 0; b < e.bands; b++ {
		gain, freq, bw := fp[3*b], fp[3*b+1], fp[3*b+2]
		if gain == 0 {
			continue
		}
		e.eq[b].SetCoefficients(dsp.BiquadPeak, e.rate, paramHz(freq), bandwidthToQ(bw), gain)
		e.eq[b].Process(left, right)
	}
}

var graphicFreqs = [6]float32{100, 250, 630, 1600, 4000, 10000}

type graphicEQ struct {
	rate float32
	eq   [6]dsp.Biquad
}

func newGraphicEQ(cfg unitConfig) unit { return &graphicEQ{rate: cfg.rate} }

func (e *graphicEQ) reset() {
	for i := range e.eq {
		e.eq[i].Reset()
	}
}

func (e *graphicEQ) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	for b, f := range graphicFreqs {
		if fp[b] == 0 {
			continue
		}
		e.eq[b].SetCoefficients(dsp.BiquadPeak, e.rate, f, 1.4, fp[b])
		e.eq[b].Process(left, right)
	}
}

type eqBand struct {
	note, gain, q float32
}

// Morph targets: a bright "smile" curve and a band limited "telephone"
// curve. Frequencies are note offsets from A4.
var morphSnapshots = [2][3]eqBand{
	{{-29, 6, 0.7}, {10, -3, 1}, {50, 6, 0.7}},
	{{-10, -12, 0.7}, {17, 9, 1.5}, {41, -12, 0.7}},
}

type morphEQ struct {
	rate float32
	eq   [3]dsp.Biquad
}

func newMorphEQ(cfg unitConfig) unit { return &morphEQ{rate: cfg.rate} }

func (e *morphEQ) reset() {
	for i := range e.eq {
		e.eq[i].Reset()
	}
}

func (e *morphEQ) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	m := dsp.Clamp(fp[0], 0, 1)
	shift, scale := fp[1], fp[2]

	for b := range e.eq {
		a, z := morphSnapshots[0][b], morphSnapshots[1][b]
		note := a.note + m*(z.note-a.note) + shift
		gain := (a.gain + m*(z.gain-a.gain)) * scale
		q := a.q + m*(z.q-a.q)
		e.eq[b].SetCoefficients(dsp.BiquadPeak, e.rate, paramHz(note), q, gain)
		e.eq[b].Process(left, right)
	}
}
