// SPDX-License-Identifier: EPL-2.0

package dsp

// Float32ToInt16 clamps x to [-1, 1] and scales it to the int16 range.
func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Int16ToFloat32 is the inverse of Float32ToInt16 with the full-scale
// reciprocal used by the sample loaders.
func Int16ToFloat32(x int16) float32 {
	return float32(x) / 32768.0
}

// Float32ToInt16Block converts src into dst, stopping at the shorter slice.
func Float32ToInt16Block(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}

	return n
}
