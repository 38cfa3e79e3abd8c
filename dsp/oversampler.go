// SPDX-License-Identifier: EPL-2.0

package dsp

// Oversampler moves a stereo block to twice the rate and back. Both
// directions run the signal through a pair of cascaded half-band lowpass
// biquads to suppress images and aliases.
type Oversampler struct {
	Left  [BlockSizeOS]float32
	Right [BlockSizeOS]float32

	up   [2]Biquad
	down [2]Biquad
}

// Reset designs the filters and clears their state.
func (o *Oversampler) Reset() {
	for i := range o.up {
		// Butterworth pair for a 4th order response at 0.45 of the base
		// Nyquist, expressed at a nominal 96k oversampled rate.
		q := float32(0.5412)
		if i == 1 {
			q = 1.3066
		}
		o.up[i].SetCoefficients(BiquadLowpass, 96000, 21600, q, 0)
		o.down[i].SetCoefficients(BiquadLowpass, 96000, 21600, q, 0)
		o.up[i].Reset()
		o.down[i].Reset()
	}
}

// Upsample zero-stuffs left/right into o.Left/o.Right and filters them.
func (o *Oversampler) Upsample(left, right []float32) {
	for i := range BlockSize {
		o.Left[2*i] = 2 * left[i]
		o.Left[2*i+1] = 0
		o.Right[2*i] = 2 * right[i]
		o.Right[2*i+1] = 0
	}
	for i := range o.up {
		o.up[i].Process(o.Left[:], o.Right[:])
	}
}

// Downsample filters o.Left/o.Right and decimates them into left/right.
func (o *Oversampler) Downsample(left, right []float32) {
	for i := range o.down {
		o.down[i].Process(o.Left[:], o.Right[:])
	}
	for i := range BlockSize {
		left[i] = o.Left[2*i]
		right[i] = o.Right[2*i]
	}
}
