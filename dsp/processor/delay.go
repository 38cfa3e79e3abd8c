// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"github.com/ik5/sampler/dsp"
)

const (
	fauxStereoMaxDelay = 0.05
	shortDelayMax      = 1.0
	// lowest string exciter pitch, in Hz
	stringMinFrequency = 10
)

// fauxStereo widens a mono signal by adding and subtracting a delayed copy.
type fauxStereo struct {
	rate float32
	line dsp.DelayLine
}

func newFauxStereo(cfg unitConfig) unit {
	return &fauxStereo{rate: cfg.rate, line: dsp.NewDelayLine(int(cfg.rate*fauxStereoMaxDelay) + 4)}
}

func (f *fauxStereo) reset() { f.line.Reset() }

func (f *fauxStereo) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	amp := dsp.DBToLinear(fp[0])
	delay := dsp.Clamp(fp[1], 0, fauxStereoMaxDelay) * f.rate

	for i := range left {
		mono := (left[i] + right[i]) / 2
		f.line.Write(mono)
		d := amp * f.line.Read(delay)
		left[i] = mono + d
		right[i] = mono - d
	}
}

type shortDelay struct {
	rate   float32
	lines  [2]dsp.DelayLine
	lo, hi dsp.Biquad
	wet    [2]float32
}

func newShortDelay(cfg unitConfig) unit {
	n := int(cfg.rate*shortDelayMax) + 4
	return &shortDelay{rate: cfg.rate, lines: [2]dsp.DelayLine{dsp.NewDelayLine(n), dsp.NewDelayLine(n)}}
}

func (s *shortDelay) reset() {
	s.lines[0].Reset()
	s.lines[1].Reset()
	s.lo.Reset()
	s.hi.Reset()
	s.wet = [2]float32{}
}

func (s *shortDelay) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	dl := dsp.Clamp(fp[0], 0, shortDelayMax) * s.rate
	dr := dsp.Clamp(fp[1], 0, shortDelayMax) * s.rate
	fb := dsp.Clamp(fp[2], 0, 0.99)
	cross := dsp.Clamp(fp[3], 0, 0.99)
	s.lo.SetCoefficients(dsp.BiquadHighpass, s.rate, paramHz(fp[4]), 0.707, 0)
	s.hi.SetCoefficients(dsp.BiquadLowpass, s.rate, paramHz(fp[5]), 0.707, 0)

	for i := range left {
		wl := s.lines[0].Read(dl)
		wr := s.lines[1].Read(dr)
		wl = s.hi.Step(s.lo.Step(wl, 0), 0)
		wr = s.hi.Step(s.lo.Step(wr, 1), 1)

		s.lines[0].Write(left[i] + fb*wl + cross*wr)
		s.lines[1].Write(right[i] + fb*wr + cross*wl)
		left[i], right[i] = wl, wr
	}
}

// stringExciter is a Karplus-Strong string fed by the input.
type stringExciter struct {
	rate  float32
	lines [2]dsp.DelayLine
	damp  [2]float32
}

func newStringExciter(cfg unitConfig) unit {
	n := int(cfg.rate/stringMinFrequency) + 4
	return &stringExciter{rate: cfg.rate, lines: [2]dsp.DelayLine{dsp.NewDelayLine(n), dsp.NewDelayLine(n)}}
}

func (s *stringExciter) reset() {
	s.lines[0].Reset()
	s.lines[1].Reset()
	s.damp = [2]float32{}
}

func (s *stringExciter) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	period := s.rate / max(stringMinFrequency, paramHz(fp[0]))
	decay := dsp.Clamp(fp[1], 0, 0.999)
	coef := dsp.Clamp(paramHz(fp[2])/s.rate*2*3.14159265, 0, 1)
	level := dsp.DBToLinear(fp[3])

	for i := range left {
		left[i] = s.pluck(0, left[i]*level, period, decay, coef)
		right[i] = s.pluck(1, right[i]*level, period, decay, coef)
	}
}

func (s *stringExciter) pluck(ch int, in, period, decay, coef float32) float32 {
	d := s.lines[ch].Read(period)
	s.damp[ch] += (d - s.damp[ch]) * coef
	y := in + decay*s.damp[ch]
	s.lines[ch].Write(y)
	return y
}
