// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"math"

	"github.com/ik5/sampler/dsp"
)

// pitchRing ring modulates the input with a sine carrier.
type pitchRing struct{ phasor }

func newPitchRing(cfg unitConfig) unit { return &pitchRing{phasor{rate: cfg.rate}} }

func (p *pitchRing) reset() { p.phase = 0 }

func (p *pitchRing) process(fp *[MaxFloatParams]float32, _ *[MaxIntParams]int32, left, right []float32) {
	inc := p.inc(fp[0])
	depth := dsp.Clamp(fp[1], 0, 1)
	for i := range left {
		m := 1 - depth + depth*float32(math.Sin(2*math.Pi*p.phase))
		left[i] *= m
		right[i] *= m
		p.step(inc)
	}
}
