// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"io"

	"github.com/gopxl/beep"

	"github.com/ik5/sampler/audio"
	"github.com/ik5/sampler/dsp"
)

// Format describes the engine output for beep: stereo at the engine rate.
func (e *Engine) Format() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(int(e.cfg.SampleRate)),
		NumChannels: 2,
		Precision:   3,
	}
}

// blockReader hands out rendered frames one at a time, rendering a new
// block when the last one is used up.
type blockReader struct {
	e    *Engine
	l, r *dsp.Block
	pos  int
}

func newBlockReader(e *Engine) blockReader {
	return blockReader{e: e, pos: dsp.BlockSize}
}

func (b *blockReader) next() (float32, float32) {
	if b.pos == dsp.BlockSize {
		b.l, b.r = b.e.Process()
		b.pos = 0
	}
	l, r := b.l[b.pos], b.r[b.pos]
	b.pos++
	return l, r
}

type streamer struct {
	blocks blockReader
}

// Streamer returns an endless beep.Streamer over the engine. It calls
// Process, so it must be the only thing driving the engine.
func (e *Engine) Streamer() beep.Streamer {
	return &streamer{blocks: newBlockReader(e)}
}

func (s *streamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		l, r := s.blocks.next()
		samples[i][0], samples[i][1] = float64(l), float64(r)
	}
	return len(samples), true
}

func (s *streamer) Err() error { return nil }

type source struct {
	blocks blockReader
	left   int
}

// Source returns the next frames of engine output as an interleaved stereo
// audio.Source. A negative frame count never ends.
func (e *Engine) Source(frames int) audio.Source {
	return &source{blocks: newBlockReader(e), left: frames}
}

func (s *source) SampleRate() int { return int(s.blocks.e.cfg.SampleRate) }
func (s *source) Channels() int   { return 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	n := 0
	for ; n+1 < len(dst) && s.left != 0; n += 2 {
		dst[n], dst[n+1] = s.blocks.next()
		if s.left > 0 {
			s.left--
		}
	}
	if s.left == 0 {
		return n, io.EOF
	}
	return n, nil
}
