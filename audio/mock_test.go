// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
)

// genSource generates frames from a function of frame index and channel.
type genSource struct {
	rate, channels int
	frames, pos    int
	chunk          int
	fail           error
	wave           func(frame, ch int) float32
}

func newGenSource(rate, channels, frames int, wave func(frame, ch int) float32) *genSource {
	return &genSource{rate: rate, channels: channels, frames: frames, wave: wave}
}

func constantSource(rate, channels, frames int, v float32) *genSource {
	return newGenSource(rate, channels, frames, func(int, int) float32 { return v })
}

func sineSource(rate, frames int, freq float64) *genSource {
	return newGenSource(rate, 1, frames, func(f, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(f) / float64(rate)))
	})
}

func (g *genSource) SampleRate() int { return g.rate }
func (g *genSource) Channels() int   { return g.channels }

func (g *genSource) ReadSamples(dst []float32) (int, error) {
	if g.pos >= g.frames {
		if g.fail != nil {
			return 0, g.fail
		}
		return 0, io.EOF
	}
	n := min(len(dst)/g.channels, g.frames-g.pos)
	if g.chunk > 0 {
		n = min(n, g.chunk)
	}
	for f := range n {
		for c := range g.channels {
			dst[f*g.channels+c] = g.wave(g.pos+f, c)
		}
	}
	g.pos += n
	return n * g.channels, nil
}

var errBroken = errors.New("broken source")
