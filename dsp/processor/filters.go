// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"math"

	"github.com/ik5/sampler/dsp"
)

const (
	numSVFModes    = int(dsp.SVFAllpass) + 1
	numBiquadTypes = int(dsp.BiquadAllpass) + 1

	maxPhaserStages = 8
)

type cytomicSVF struct {
	rate float32
	svf  dsp.SVF
}

func newCytomicSVF(cfg unitConfig) unit { return &cytomicSVF{rate: cfg.rate} }

func (f *cytomicSVF) reset() { f.svf.Reset() }

func (f *cytomicSVF) process(fp *[MaxFloatParams]float32, ip *[MaxIntParams]int32, left, right []float32) {
	f.svf.SetCoefficients(f.rate, paramHz(fp[0]), fp[1])
	f.svf.Process(left, right, dsp.SVFMode(intParam(ip[0], numSVFModes)))
}

type staticPhaser struct {
	rate   float32
	stages [maxPhaserStages]dsp.Biquad
	fb     [2]float32
}

func newStaticPhaser(cfg unitConfig) unit { return &staticPhaser{rate: cfg.rate} }

func (p *staticPhaser) reset() {
	for i := range p.stages {
		p.stages[i].Reset()
	}
	p.fb = [2]float32{}
}

func (p *staticPhaser) process(fp *[MaxFloatParams]float32, ip *[MaxIntParams]int32, left, right []float32) {
	n := intParam(ip[0]-1, maxPhaserStages) + 1
	center := paramHz(fp[0])
	spread := dsp.Clamp(fp[1], 0, 4)
	q := 0.5 + 4.5*dsp.Clamp(fp[2], 0, 1)
	fb := dsp.Clamp(fp[3], 0, 1) * 0.9

	for s := 0; s < n; s++ {
		pos := float32(0)
		if n > 1 {
			pos = float32(s)/float32(n-1) - 0.5
		}
		f := center * float32(math.Exp2(float64(spread*pos)))
		p.stages[s].SetCoefficients(dsp.BiquadAllpass, p.rate, f, q, 0)
	}

	for i := range left {
		left[i] = p.step(0, left[i], n, fb)
		right[i] = p.step(1, right[i], n, fb)
	}
}

func (p *staticPhaser) step(ch int, in float32, n int, fb float32) float32 {
	x := in + fb*p.fb[ch]
	for s := 0; s < n; s++ {
		x = p.stages[s].Step(x, ch)
	}
	p.fb[ch] = x
	return 0.5 * (in + x)
}

type biquadFilter struct {
	rate float32
	bq   dsp.Biquad
}

func newBiquadFilter(cfg unitConfig) unit { return &biquadFilter{rate: cfg.rate} }

func (f *biquadFilter) reset() { f.bq.Reset() }

func (f *biquadFilter) process(fp *[MaxFloatParams]float32, ip *[MaxIntParams]int32, left, right []float32) {
	t := dsp.BiquadType(intParam(ip[0], numBiquadTypes))
	f.bq.SetCoefficients(t, f.rate, paramHz(fp[0]), fp[1], fp[2])
	f.bq.Process(left, right)
}

type multiMode int

const (
	multiLP12 multiMode = iota
	multiLP24
	multiHP12
	multiHP24
	multiBP12
	multiNotch12

	numMultiModes
)

// multiFilter offers 12 and 24 dB/oct responses from cascaded SVFs.
type multiFilter struct {
	rate float32
	a, b dsp.SVF
}

func newMultiFilter(cfg unitConfig) unit { return &multiFilter{rate: cfg.rate} }

func (f *multiFilter) reset() {
	f.a.Reset()
	f.b.Reset()
}

func (f *multiFilter) process(fp *[MaxFloatParams]float32, ip *[MaxIntParams]int32, left, right []float32) {
	mode := multiMode(intParam(ip[0], int(numMultiModes)))
	freq := paramHz(fp[0])

	var svfMode dsp.SVFMode
	cascade := false
	switch mode {
	case multiLP24:
		cascade = true
	case multiHP12:
		svfMode = dsp.SVFHighpass
	case multiHP24:
		svfMode, cascade = dsp.SVFHighpass, true
	case multiBP12:
		svfMode = dsp.SVFBandpass
	case multiNotch12:
		svfMode = dsp.SVFNotch
	}

	if !cascade {
		f.a.SetCoefficients(f.rate, freq, fp[1])
		f.a.Process(left, right, svfMode)
		return
	}
	// Resonance goes on the second stage only so the cascade stays tame.
	f.a.SetCoefficients(f.rate, freq, 0)
	f.b.SetCoefficients(f.rate, freq, fp[1])
	f.a.Process(left, right, svfMode)
	f.b.Process(left, right, svfMode)
}
