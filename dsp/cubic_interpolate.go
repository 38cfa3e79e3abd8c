// SPDX-License-Identifier: EPL-2.0

package dsp

// InterpolationTaps is the width of the widest interpolation kernel used when
// reading sample data at fractional positions. Sample buffers pad their data
// with at least this many silent frames on each side.
const InterpolationTaps = 4

// CubicInterpolate performs cubic interpolation
// x is the fractional position between y1 and y2 (0 <= x <= 1)
// y0, y1, y2, y3 are four consecutive samples
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	// Catmull-Rom spline interpolation
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// CubicAtFloat32 interpolates buf between idx and idx+1.
// The caller guarantees buf[idx-1] and buf[idx+2] are addressable, which the
// guard margin of a sample buffer does.
func CubicAtFloat32(buf []float32, idx int, x float32) float32 {
	return CubicInterpolate(buf[idx-1], buf[idx], buf[idx+1], buf[idx+2], x)
}

// CubicAtInt16 is CubicAtFloat32 for 16-bit storage; the result is scaled
// to [-1, 1).
func CubicAtInt16(buf []int16, idx int, x float32) float32 {
	const scale = 1.0 / 32768.0
	return CubicInterpolate(
		float32(buf[idx-1])*scale,
		float32(buf[idx])*scale,
		float32(buf[idx+1])*scale,
		float32(buf[idx+2])*scale,
		x,
	)
}
