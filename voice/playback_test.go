// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"testing"

	"github.com/ik5/sampler/dsp"
	"github.com/ik5/sampler/engine"
	"github.com/ik5/sampler/sample"
)

// indexSample holds its own frame index in every frame, so rendering at
// ratio 1 yields the play position.
func indexSample(t testing.TB, frames, channels int) *sample.Sample {
	t.Helper()

	s := &sample.Sample{DisplayName: "index"}
	if err := s.SetMeta(channels, 48000, frames); err != nil {
		t.Fatal(err)
	}
	data := make([]float32, frames)
	for i := range data {
		data[i] = float32(i)
	}
	for ch := range channels {
		if err := s.LoadFloats(ch, data, 0, 1); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func loopedSample(mode engine.LoopMode, dir engine.LoopDirection) engine.AssociatedSample {
	return engine.AssociatedSample{
		Active:      true,
		StartSample: 0, EndSample: 16,
		StartLoop: 4, EndLoop: 8,
		LoopActive:    true,
		LoopMode:      mode,
		LoopDirection: dir,
	}
}

func renderPositions(pb *playback, n int) []float32 {
	var out []float32
	var l, r dsp.Block
	for len(out) < n {
		pb.render(&l, &r, 1)
		out = append(out, l[:]...)
	}
	return out[:n]
}

func TestPlaybackLoops(t *testing.T) {
	t.Parallel()

	smp := indexSample(t, 16, 1)

	reverse := loopedSample(engine.LoopDuringVoice, engine.LoopForward)
	reverse.PlayReverse = true

	counted := loopedSample(engine.LoopForCount, engine.LoopForward)
	counted.LoopCount = 2

	noLoop := loopedSample(engine.LoopDuringVoice, engine.LoopForward)
	noLoop.LoopActive = false

	tests := []struct {
		name string
		a    engine.AssociatedSample
		want []float32
	}{
		{
			"forward",
			loopedSample(engine.LoopDuringVoice, engine.LoopForward),
			[]float32{0, 1, 2, 3, 4, 5, 6, 7, 4, 5, 6, 7, 4, 5},
		},
		{
			"alternate",
			loopedSample(engine.LoopDuringVoice, engine.LoopAlternate),
			[]float32{0, 1, 2, 3, 4, 5, 6, 7, 6, 5, 4, 5, 6, 7, 6},
		},
		{
			"reverse",
			reverse,
			[]float32{15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 7, 6, 5, 4, 7},
		},
		{
			"for count",
			counted,
			[]float32{0, 1, 2, 3, 4, 5, 6, 7, 4, 5, 6, 7, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0, 0},
		},
		{
			"no loop",
			noLoop,
			[]float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pb playback
			pb.start(smp, &tt.a)
			got := renderPositions(&pb, len(tt.want))
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("positions = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestPlaybackWhileGated(t *testing.T) {
	t.Parallel()

	smp := indexSample(t, 16, 1)
	a := loopedSample(engine.LoopWhileGated, engine.LoopForward)

	var pb playback
	pb.start(smp, &a)
	var l, r dsp.Block
	pb.render(&l, &r, 1)
	if pb.done {
		t.Fatal("gated loop ended")
	}

	pb.gated = false
	pb.render(&l, &r, 1)
	if !pb.done {
		t.Error("playback should run to the end once the gate closes")
	}
	if l[dsp.BlockSize-1] != 0 {
		t.Errorf("frame past the end = %v", l[dsp.BlockSize-1])
	}
}

func TestPlaybackLoopFade(t *testing.T) {
	t.Parallel()

	smp := indexSample(t, 16, 2)
	a := loopedSample(engine.LoopDuringVoice, engine.LoopForward)
	a.LoopFade = 2

	var pb playback
	pb.start(smp, &a)
	got := renderPositions(&pb, 12)
	// 7 fades halfway towards 3, the frame one loop earlier
	want := []float32{0, 1, 2, 3, 4, 5, 6, 5, 4, 5, 6, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("positions = %v, want %v", got, want)
		}
	}
}

func TestPlaybackUnsetBounds(t *testing.T) {
	t.Parallel()

	smp := indexSample(t, 40, 1)
	a := engine.AssociatedSample{
		StartSample: engine.Unset, EndSample: engine.Unset,
		StartLoop: engine.Unset, EndLoop: engine.Unset,
	}
	var pb playback
	pb.start(smp, &a)
	if pb.a.EndSample != 40 || pb.a.EndLoop != 40 {
		t.Errorf("bounds = %+v", pb.a)
	}

	empty := engine.AssociatedSample{StartSample: 5, EndSample: 5}
	pb.start(smp, &empty)
	if !pb.done {
		t.Error("empty range should be done at start")
	}
}
