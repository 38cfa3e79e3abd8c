// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"math"

	"github.com/ik5/sampler/dsp"
)

// paramHz converts a note offset from A4 into Hz.
func paramHz(v float32) float32 {
	return dsp.NoteToFrequency(69 + v)
}

// intParam clamps an int parameter into [0, n).
func intParam(v int32, n int) int {
	return max(0, min(n-1, int(v)))
}

// onePole returns the smoothing coefficient for a time constant in seconds.
func onePole(seconds, rate float32) float32 {
	return 1 - float32(math.Exp(-1/float64(seconds*rate)))
}
