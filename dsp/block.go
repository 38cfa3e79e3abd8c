// SPDX-License-Identifier: EPL-2.0

package dsp

const (
	// BlockSize is the number of frames rendered per engine block.
	BlockSize = 32
	// BlockSizeOS is BlockSize at the 2x oversampled rate.
	BlockSizeOS = BlockSize * 2
)

// Block is one channel of one engine block.
type Block = [BlockSize]float32

// ClearBlock zeroes a stereo pair.
func ClearBlock(left, right []float32) {
	clear(left)
	clear(right)
}

// AccumulateBlock adds src into dst, scaled by gain.
func AccumulateBlock(dst, src []float32, gain float32) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] += src[i] * gain
	}
}

// BlendBlock writes dry + mix*(wet-dry) into wet.
func BlendBlock(wet, dry []float32, mix float32) {
	if mix >= 1 {
		return
	}
	n := min(len(wet), len(dry))
	for i := range n {
		wet[i] = dry[i] + mix*(wet[i]-dry[i])
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
