// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"github.com/ik5/sampler/dsp"
	"github.com/ik5/sampler/engine"
	"github.com/ik5/sampler/sample"
)

// playback walks one AssociatedSample at a variable ratio. The bounds are
// copied at start so control side edits only affect new voices.
type playback struct {
	smp *sample.Sample
	a   engine.AssociatedSample

	pos   float64
	dir   float64
	loops int
	gated bool
	done  bool
}

func (pb *playback) start(s *sample.Sample, a *engine.AssociatedSample) {
	*pb = playback{smp: s, a: *a, dir: 1, gated: true}

	frames := int64(s.Frames())
	b := &pb.a
	if b.StartSample == engine.Unset || b.StartSample > frames {
		b.StartSample = 0
	}
	if b.EndSample == engine.Unset || b.EndSample > frames {
		b.EndSample = frames
	}
	if b.StartLoop == engine.Unset || b.StartLoop < b.StartSample {
		b.StartLoop = b.StartSample
	}
	if b.EndLoop == engine.Unset || b.EndLoop > b.EndSample {
		b.EndLoop = b.EndSample
	}
	if b.StartLoop > b.EndLoop {
		b.StartLoop = b.EndLoop
	}
	b.LoopFade = max(0, min(b.LoopFade, b.EndLoop-b.StartLoop))

	if b.EndSample <= b.StartSample {
		pb.done = true
		return
	}
	pb.pos = float64(b.StartSample)
	if b.PlayReverse {
		pb.pos = float64(b.EndSample - 1)
		pb.dir = -1
	}
}

// looping reports whether the loop points currently wrap.
func (pb *playback) looping() bool {
	a := &pb.a
	if !a.LoopActive || a.EndLoop-a.StartLoop < 1 {
		return false
	}
	switch a.LoopMode {
	case engine.LoopWhileGated:
		return pb.gated
	case engine.LoopForCount:
		return pb.loops < a.LoopCount
	}
	return true
}

func (pb *playback) read(p float64, stereo bool) (float32, float32) {
	last := float64(pb.smp.Frames() - 1)
	p = max(0, min(p, last))
	i := int(p)
	frac := float32(p - float64(i))
	l := pb.smp.At(0, i, frac)
	if !stereo {
		return l, l
	}
	return l, pb.smp.At(1, i, frac)
}

// render fills a block at ratio source frames per output frame. Frames past
// the end of the sample are silent.
func (pb *playback) render(left, right *dsp.Block, ratio float64) {
	if pb.done {
		dsp.ClearBlock(left[:], right[:])
		return
	}

	a := &pb.a
	stereo := pb.smp.Channels() > 1
	loopLen := float64(a.EndLoop - a.StartLoop)
	fade := float64(a.LoopFade)
	fadeFrom := float64(a.EndLoop) - fade

	for i := range dsp.BlockSize {
		if pb.done {
			left[i], right[i] = 0, 0
			continue
		}

		l, r := pb.read(pb.pos, stereo)
		if fade > 0 && pb.dir > 0 && pb.pos > fadeFrom && a.LoopDirection == engine.LoopForward && pb.looping() {
			x := float32((pb.pos - fadeFrom) / fade)
			fl, fr := pb.read(pb.pos-loopLen, stereo)
			l += x * (fl - l)
			r += x * (fr - r)
		}
		left[i], right[i] = l, r

		pb.pos += ratio * pb.dir
		pb.wrap(loopLen)
	}
}

func (pb *playback) wrap(loopLen float64) {
	a := &pb.a
	ls, le := float64(a.StartLoop), float64(a.EndLoop)
	// alternate loops turn on the last loop frame and on the first
	hi := max(ls, le-1)

	if pb.looping() {
		switch {
		case pb.dir > 0 && pb.pos >= le:
			if a.LoopDirection == engine.LoopAlternate {
				pb.pos = max(ls, 2*hi-pb.pos)
				pb.dir = -1
				if a.PlayReverse {
					pb.loops++
				}
				return
			}
			for pb.pos >= le {
				pb.pos -= loopLen
			}
			pb.loops++
			return
		case pb.dir < 0 && pb.pos < ls:
			if a.LoopDirection == engine.LoopAlternate {
				pb.pos = min(hi, 2*ls-pb.pos)
				pb.dir = 1
				if !a.PlayReverse {
					pb.loops++
				}
				return
			}
			for pb.pos < ls {
				pb.pos += loopLen
			}
			pb.loops++
			return
		}
	}

	if pb.pos >= float64(a.EndSample) || pb.pos < float64(a.StartSample) {
		pb.done = true
	}
}
