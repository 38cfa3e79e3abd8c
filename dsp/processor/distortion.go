// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"math"

	"github.com/ik5/sampler/datamodel"
	"github.com/ik5/sampler/dsp"
)

type microGate struct {
	rate     float32
	smooth   float32
	holdLeft int
	gain     float32
}

func newMicroGate(cfg unitConfig) unit {
	return &microGate{rate: cfg.rate, smooth: onePole(0.001, cfg.rate)}
}

func (g *microGate) reset() {
	g.holdLeft = 0
	g.gain = 1
}

func (g *microGate) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	hold := int(datamodel.EnvelopeSeconds(fp[0]) * g.rate)
	threshold := dsp.DBToLinear(fp[1])
	floor := dsp.DBToLinear(fp[2])

	for i := range left {
		level := max(abs32(left[i]), abs32(right[i]))
		target := floor
		switch {
		case level >= threshold:
			g.holdLeft = hold
			target = 1
		case g.holdLeft > 0:
			g.holdLeft--
			target = 1
		}
		g.gain += (target - g.gain) * g.smooth
		left[i] *= g.gain
		right[i] *= g.gain
	}
}

type bitCrusher struct {
	rate  float32
	phase float32
	held  [2]float32
	lp    dsp.SVF
}

func newBitCrusher(cfg unitConfig) unit { return &bitCrusher{rate: cfg.rate} }

func (b *bitCrusher) reset() {
	b.phase = 1
	b.held = [2]float32{}
	b.lp.Reset()
}

func (b *bitCrusher) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	inc := min(1, paramHz(fp[0])/b.rate)
	half := float32(math.Exp2(float64(dsp.Clamp(fp[1], 0, 1)*15))) / 2
	zero := dsp.Clamp(fp[2], 0, 1)

	quantize := func(x float32) float32 {
		return float32(math.Floor(float64(x*half+zero))) / half
	}
	for i := range left {
		b.phase += inc
		if b.phase >= 1 {
			b.phase -= float32(math.Floor(float64(b.phase)))
			b.held[0] = quantize(left[i])
			b.held[1] = quantize(right[i])
		}
		left[i], right[i] = b.held[0], b.held[1]
	}

	b.lp.SetCoefficients(b.rate, paramHz(fp[3]), fp[4])
	b.lp.Process(left, right, dsp.SVFLowpass)
}

type shaper int

const (
	shaperTanh shaper = iota
	shaperSoft
	shaperHard
	shaperAsym
	shaperFold

	numShapers
)

func (s shaper) apply(x float32) float32 {
	switch s {
	case shaperSoft:
		return x / (1 + abs32(x))
	case shaperHard:
		return dsp.Clamp(x, -1, 1)
	case shaperAsym:
		if x < 0 {
			return float32(math.Tanh(float64(x) * 0.5))
		}
		return float32(math.Tanh(float64(x) * 1.5))
	case shaperFold:
		return float32(math.Sin(float64(x) * math.Pi / 2))
	default:
		return float32(math.Tanh(float64(x)))
	}
}

type waveShaper struct{}

func newWaveShaper(unitConfig) unit { return waveShaper{} }

func (waveShaper) reset() {}

func (waveShaper) process(fp *[MaxFloatParams]float32, ip *[MaxIntParams]int32, left, right []float32) {
	drive := dsp.DBToLinear(fp[0])
	bias := fp[1]
	gain := dsp.DBToLinear(fp[2])
	s := shaper(intParam(ip[0], int(numShapers)))
	offset := s.apply(bias)

	for i := range left {
		left[i] = (s.apply(left[i]*drive+bias) - offset) * gain
		right[i] = (s.apply(right[i]*drive+bias) - offset) * gain
	}
}

type slewer struct {
	rate float32
	y    [2]float32
}

func newSlewer(cfg unitConfig) unit { return &slewer{rate: cfg.rate} }

func (s *slewer) reset() { s.y = [2]float32{} }

func (s *slewer) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	drive := dsp.DBToLinear(fp[0])
	step := float32(math.Pow(10, float64(-3*(1-dsp.Clamp(fp[1], 0, 1))))) * 48000 / s.rate
	out := dsp.DBToLinear(fp[2])

	for i := range left {
		s.y[0] += dsp.Clamp(left[i]*drive-s.y[0], -step, step)
		s.y[1] += dsp.Clamp(right[i]*drive-s.y[1], -step, step)
		left[i] = s.y[0] * out
		right[i] = s.y[1] * out
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
