// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// BiquadType selects the RBJ cookbook response.
type BiquadType int

const (
	BiquadLowpass BiquadType = iota
	BiquadHighpass
	BiquadBandpass
	BiquadNotch
	BiquadPeak
	BiquadLowShelf
	BiquadHighShelf
	BiquadAllpass
)

// Biquad is a transposed direct form II biquad for a stereo pair.
type Biquad struct {
	b0, b1, b2, a1, a2 float32

	z1 [2]float32
	z2 [2]float32
}

// Reset clears the filter state but keeps the coefficients.
func (b *Biquad) Reset() {
	b.z1 = [2]float32{}
	b.z2 = [2]float32{}
}

// SetCoefficients computes coefficients for the given response. gainDB is
// only used by the peak and shelf types.
func (b *Biquad) SetCoefficients(t BiquadType, sampleRate, frequency, q, gainDB float32) {
	frequency = Clamp(frequency, 5, sampleRate*0.49)
	if q < 0.01 {
		q = 0.01
	}

	w0 := 2 * math.Pi * float64(frequency) / float64(sampleRate)
	cosw, sinw := math.Cos(w0), math.Sin(w0)
	alpha := sinw / (2 * float64(q))
	A := math.Pow(10, float64(gainDB)/40)

	var b0, b1, b2, a0, a1, a2 float64
	switch t {
	case BiquadHighpass:
		b0, b1, b2 = (1+cosw)/2, -(1 + cosw), (1+cosw)/2
		a0, a1, a2 = 1+alpha, -2*cosw, 1-alpha
	case BiquadBandpass:
		b0, b1, b2 = alpha, 0, -alpha
		a0, a1, a2 = 1+alpha, -2*cosw, 1-alpha
	case BiquadNotch:
		b0, b1, b2 = 1, -2*cosw, 1
		a0, a1, a2 = 1+alpha, -2*cosw, 1-alpha
	case BiquadPeak:
		b0, b1, b2 = 1+alpha*A, -2*cosw, 1-alpha*A
		a0, a1, a2 = 1+alpha/A, -2*cosw, 1-alpha/A
	case BiquadLowShelf:
		sq := 2 * math.Sqrt(A) * alpha
		b0 = A * ((A + 1) - (A-1)*cosw + sq)
		b1 = 2 * A * ((A - 1) - (A+1)*cosw)
		b2 = A * ((A + 1) - (A-1)*cosw - sq)
		a0 = (A + 1) + (A-1)*cosw + sq
		a1 = -2 * ((A - 1) + (A+1)*cosw)
		a2 = (A + 1) + (A-1)*cosw - sq
	case BiquadHighShelf:
		sq := 2 * math.Sqrt(A) * alpha
		b0 = A * ((A + 1) + (A-1)*cosw + sq)
		b1 = -2 * A * ((A - 1) + (A+1)*cosw)
		b2 = A * ((A + 1) + (A-1)*cosw - sq)
		a0 = (A + 1) - (A-1)*cosw + sq
		a1 = 2 * ((A - 1) - (A+1)*cosw)
		a2 = (A + 1) - (A-1)*cosw - sq
	case BiquadAllpass:
		b0, b1, b2 = 1-alpha, -2*cosw, 1+alpha
		a0, a1, a2 = 1+alpha, -2*cosw, 1-alpha
	default:
		b0, b1, b2 = (1-cosw)/2, 1-cosw, (1-cosw)/2
		a0, a1, a2 = 1+alpha, -2*cosw, 1-alpha
	}

	b.b0 = float32(b0 / a0)
	b.b1 = float32(b1 / a0)
	b.b2 = float32(b2 / a0)
	b.a1 = float32(a1 / a0)
	b.a2 = float32(a2 / a0)
}

// Step filters one sample on channel ch.
func (b *Biquad) Step(in float32, ch int) float32 {
	out := b.b0*in + b.z1[ch]
	b.z1[ch] = b.b1*in - b.a1*out + b.z2[ch]
	b.z2[ch] = b.b2*in - b.a2*out
	return out
}

// Process filters a stereo block in place.
func (b *Biquad) Process(left, right []float32) {
	for i := range left {
		left[i] = b.Step(left[i], 0)
	}
	for i := range right {
		right[i] = b.Step(right[i], 1)
	}
}
