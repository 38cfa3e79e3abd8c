// SPDX-License-Identifier: EPL-2.0

package engine

import "fmt"

// KeyboardRange is an inclusive key range. FadeStart and FadeEnd are widths
// in keys, inside the range, over which the amplitude ramps in and out.
type KeyboardRange struct {
	KeyStart, KeyEnd   int
	FadeStart, FadeEnd int
}

func DefaultKeyboardRange() KeyboardRange {
	return KeyboardRange{KeyStart: 0, KeyEnd: 127}
}

func (k KeyboardRange) Includes(key int) bool {
	return key >= k.KeyStart && key <= k.KeyEnd
}

// FadeAmplitude is the linear gain for key. Keys outside the range get 0.
func (k KeyboardRange) FadeAmplitude(key int) float32 {
	return fadeAmplitude(key, k.KeyStart, k.KeyEnd, k.FadeStart, k.FadeEnd)
}

func (k KeyboardRange) Validate() error {
	if k.KeyStart < 0 || k.KeyEnd > 127 || k.KeyStart > k.KeyEnd {
		return fmt.Errorf("%w: %d..%d", ErrInvalidKeyRange, k.KeyStart, k.KeyEnd)
	}
	if k.FadeStart < 0 || k.FadeEnd < 0 || k.FadeStart+k.FadeEnd > k.KeyEnd-k.KeyStart+1 {
		return fmt.Errorf("%w: fades %d/%d", ErrInvalidKeyRange, k.FadeStart, k.FadeEnd)
	}
	return nil
}

// VelocityRange is an inclusive velocity range with fades, like
// KeyboardRange.
type VelocityRange struct {
	VelStart, VelEnd   int
	FadeStart, FadeEnd int
}

func DefaultVelocityRange() VelocityRange {
	return VelocityRange{VelStart: 0, VelEnd: 127}
}

func (v VelocityRange) Includes(vel int) bool {
	return vel >= v.VelStart && vel <= v.VelEnd
}

func (v VelocityRange) FadeAmplitude(vel int) float32 {
	return fadeAmplitude(vel, v.VelStart, v.VelEnd, v.FadeStart, v.FadeEnd)
}

func (v VelocityRange) Validate() error {
	if v.VelStart < 0 || v.VelEnd > 127 || v.VelStart > v.VelEnd {
		return fmt.Errorf("%w: %d..%d", ErrInvalidVelocityRange, v.VelStart, v.VelEnd)
	}
	if v.FadeStart < 0 || v.FadeEnd < 0 || v.FadeStart+v.FadeEnd > v.VelEnd-v.VelStart+1 {
		return fmt.Errorf("%w: fades %d/%d", ErrInvalidVelocityRange, v.FadeStart, v.FadeEnd)
	}
	return nil
}

// fadeAmplitude ramps linearly from the first key of a fade to full gain
// one key past its end, so the outermost key of a fade still sounds.
func fadeAmplitude(x, lo, hi, fadeIn, fadeOut int) float32 {
	if x < lo || x > hi {
		return 0
	}
	g := float32(1)
	if fadeIn > 0 && x < lo+fadeIn {
		g = float32(x-lo+1) / float32(fadeIn+1)
	}
	if fadeOut > 0 && x > hi-fadeOut {
		g = min(g, float32(hi-x+1)/float32(fadeOut+1))
	}
	return g
}
