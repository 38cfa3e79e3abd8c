// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"cmp"
	"slices"

	"github.com/ik5/sampler/audio"
	"github.com/ik5/sampler/dsp"
)

const blockFrames = dsp.BlockSize

// Event is a note event for offline rendering, placed at a frame offset.
// Events take effect at the start of the block containing Frame.
type Event struct {
	Frame    int
	Channel  int
	Key      int
	Velocity int
	// Off releases Key instead of starting it.
	Off bool
}

// Bounce renders frames of interleaved stereo output, applying events in
// frame order. Posted changes are applied before the events of each block.
// It drives the engine, so nothing else may call Process meanwhile.
func (e *Engine) Bounce(events []Event, frames int) []float32 {
	events = slices.Clone(events)
	slices.SortStableFunc(events, func(a, b Event) int { return cmp.Compare(a.Frame, b.Frame) })

	out := make([]float32, 0, frames*2)
	next := 0
	for len(out) < frames*2 {
		start := len(out) / 2
		e.drain()
		for next < len(events) && events[next].Frame < start+blockFrames {
			ev := events[next]
			if ev.Off {
				e.NoteOff(ev.Channel, ev.Key)
			} else {
				e.NoteOn(ev.Channel, ev.Key, ev.Velocity)
			}
			next++
		}

		l, r := e.Process()
		n := min(blockFrames, frames-start)
		for i := range n {
			out = append(out, l[i], r[i])
		}
	}
	return out
}

// BounceMono16 renders frames of engine output, then resamples it to rate,
// folds it to mono and converts to 16 bit PCM. Events are applied as in
// Bounce. It returns the samples and the rate they are at.
func (e *Engine) BounceMono16(events []Event, frames, rate, bufSize int) ([]int16, int, error) {
	stereo := e.Bounce(events, frames)
	src := audio.NewSlice(int(e.cfg.SampleRate), 2, stereo)

	mono := audio.NewMonoMixer(audio.NewResampler(src, rate))
	pcm, err := audio.ReadAll16(mono, bufSize)
	if err != nil {
		return nil, rate, err
	}
	return pcm, rate, nil
}
