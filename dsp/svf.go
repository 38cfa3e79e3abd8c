// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// SVFMode selects which state variable output is produced.
type SVFMode int

const (
	SVFLowpass SVFMode = iota
	SVFBandpass
	SVFHighpass
	SVFNotch
	SVFPeak
	SVFAllpass
)

// SVF is a zero-delay feedback state variable filter for a stereo pair.
type SVF struct {
	g, k       float32
	a1, a2, a3 float32

	ic1eq [2]float32
	ic2eq [2]float32
}

// Reset clears the filter state.
func (s *SVF) Reset() {
	s.ic1eq = [2]float32{}
	s.ic2eq = [2]float32{}
}

// SetCoefficients sets cutoff (Hz) and resonance in [0, 1).
func (s *SVF) SetCoefficients(sampleRate, frequency, resonance float32) {
	nyq := sampleRate * 0.49
	frequency = Clamp(frequency, 5, nyq)
	s.g = float32(math.Tan(math.Pi * float64(frequency) / float64(sampleRate)))
	s.k = 2 - 2*Clamp(resonance, 0, 0.99)
	s.a1 = 1 / (1 + s.g*(s.g+s.k))
	s.a2 = s.g * s.a1
	s.a3 = s.g * s.a2
}

// Step filters one sample on channel ch and returns the selected output.
func (s *SVF) Step(in float32, ch int, mode SVFMode) float32 {
	ic1, ic2 := s.ic1eq[ch], s.ic2eq[ch]

	v3 := in - ic2
	v1 := s.a1*ic1 + s.a2*v3
	v2 := ic2 + s.a2*ic1 + s.a3*v3

	s.ic1eq[ch] = 2*v1 - ic1
	s.ic2eq[ch] = 2*v2 - ic2

	switch mode {
	case SVFBandpass:
		return v1
	case SVFHighpass:
		return in - s.k*v1 - v2
	case SVFNotch:
		return in - s.k*v1
	case SVFPeak:
		return v2 - (in - s.k*v1 - v2)
	case SVFAllpass:
		return in - 2*s.k*v1
	default:
		return v2
	}
}

// Process filters a stereo block in place.
func (s *SVF) Process(left, right []float32, mode SVFMode) {
	for i := range left {
		left[i] = s.Step(left[i], 0, mode)
	}
	for i := range right {
		right[i] = s.Step(right[i], 1, mode)
	}
}
