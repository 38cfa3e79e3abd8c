// SPDX-License-Identifier: EPL-2.0

package modulators

import (
	"math"
	"testing"

	"github.com/ik5/sampler/dsp"
)

// rateForBlocks is the log2 rate that completes a cycle every n blocks.
func rateForBlocks(n int) float32 {
	hz := float64(testRate) / float64(n*dsp.BlockSize)
	return float32(math.Log2(hz))
}

func TestCurveLFOSine(t *testing.T) {
	t.Parallel()

	ms := DefaultModulatorStorage()
	ms.Rate = rateForBlocks(4)

	var l LFO
	l.Init(testRate, 1)
	l.Attack(&ms)
	if math.Abs(float64(l.Output)) > 1e-6 {
		t.Fatalf("sine at phase 0 = %v", l.Output)
	}

	want := []float64{1, 0, -1, 0}
	for i, w := range want {
		l.Process(&ms)
		if math.Abs(float64(l.Output)-w) > 1e-3 {
			t.Errorf("block %d: %v, want %v", i, l.Output, w)
		}
	}
}

func TestCurveLFOWaveformsStayInRange(t *testing.T) {
	t.Parallel()

	for _, wf := range []Waveform{WaveSine, WaveTriangle, WaveRamp, WavePulse, WaveNoise, WaveSampleHold} {
		for _, uni := range []bool{false, true} {
			ms := DefaultModulatorStorage()
			ms.Rate = rateForBlocks(7)
			ms.Curve.Waveform = wf
			ms.Curve.Unipolar = uni
			ms.Curve.Deform = 0.3

			lo := float32(-1)
			if uni {
				lo = 0
			}

			var l LFO
			l.Init(testRate, 42)
			l.Attack(&ms)
			for i := 0; i < 200; i++ {
				l.Process(&ms)
				if l.Output < lo-1e-6 || l.Output > 1+1e-6 {
					t.Fatalf("waveform %d unipolar %v: output %v out of range", wf, uni, l.Output)
				}
			}
		}
	}
}

func TestCurveLFONoiseIsSeeded(t *testing.T) {
	t.Parallel()

	ms := DefaultModulatorStorage()
	ms.Rate = rateForBlocks(3)
	ms.Curve.Waveform = WaveSampleHold

	var a, b LFO
	a.Init(testRate, 7)
	b.Init(testRate, 7)
	a.Attack(&ms)
	b.Attack(&ms)
	changed := false
	first := a.Output
	for i := 0; i < 50; i++ {
		a.Process(&ms)
		b.Process(&ms)
		if a.Output != b.Output {
			t.Fatalf("block %d: %v != %v with the same seed", i, a.Output, b.Output)
		}
		if a.Output != first {
			changed = true
		}
	}
	if !changed {
		t.Error("sample and hold never changed value")
	}
}

func TestCurveLFORelease(t *testing.T) {
	t.Parallel()

	ms := DefaultModulatorStorage()
	ms.Rate = rateForBlocks(5)
	ms.Curve.Waveform = WavePulse

	var l LFO
	l.Init(testRate, 1)
	l.Attack(&ms)
	l.Release()
	l.Process(&ms)
	if l.Output == 0 {
		t.Fatal("curve LFO without a release time should keep running")
	}

	ms.Curve.Release = 0.2
	l.Attack(&ms)
	l.Release()
	for i := 0; i < 400; i++ {
		l.Process(&ms)
	}
	if l.Output != 0 {
		t.Errorf("released curve LFO output = %v, want 0", l.Output)
	}
}

func TestStepLFO(t *testing.T) {
	t.Parallel()

	ms := DefaultModulatorStorage()
	ms.Shape = ShapeStep
	ms.Step.NumSteps = 4
	copy(ms.Step.Steps[:], []float32{0.1, 0.2, 0.3, 0.4})
	ms.StartPhase = 0.5
	ms.Rate = rateForBlocks(3)

	var l LFO
	l.Init(testRate, 1)
	l.Attack(&ms)
	if l.Output != 0.3 {
		t.Fatalf("start output = %v, want step 2 (0.3)", l.Output)
	}

	seen := map[float32]bool{}
	for i := 0; i < 40; i++ {
		l.Process(&ms)
		seen[l.Output] = true
	}
	for v := range seen {
		if v != 0.1 && v != 0.2 && v != 0.3 && v != 0.4 {
			t.Errorf("unsmoothed step output %v is not a step value", v)
		}
	}
	if len(seen) != 4 {
		t.Errorf("visited %d steps, want 4", len(seen))
	}
}

func TestStepLFOSmoothGlides(t *testing.T) {
	t.Parallel()

	ms := DefaultModulatorStorage()
	ms.Shape = ShapeStep
	ms.Step.NumSteps = 2
	ms.Step.Smooth = 1
	ms.Rate = rateForBlocks(10)

	var l LFO
	l.Init(testRate, 1)
	l.Attack(&ms)
	between := false
	for i := 0; i < 40; i++ {
		l.Process(&ms)
		if l.Output > -0.9 && l.Output < 0.9 {
			between = true
		}
	}
	if !between {
		t.Error("smoothed steps never produced an intermediate value")
	}
}

func TestEnvelopeLFO(t *testing.T) {
	t.Parallel()

	ms := DefaultModulatorStorage()
	ms.Shape = ShapeEnvelope
	ms.Envelope = EnvelopeSettings{Sustain: 0.7}

	var l LFO
	l.Init(testRate, 1)
	l.Attack(&ms)
	if math.Abs(float64(l.Output-0.7)) > 1e-6 {
		t.Fatalf("output = %v, want sustain 0.7", l.Output)
	}
	l.Release()
	l.Process(&ms)
	if l.Output != 0 {
		t.Errorf("output after instant release = %v", l.Output)
	}
}

func TestMSEGSlotIsSilent(t *testing.T) {
	t.Parallel()

	ms := DefaultModulatorStorage()
	ms.Shape = ShapeMSEG

	var l LFO
	l.Init(testRate, 1)
	l.Attack(&ms)
	l.Process(&ms)
	if l.Output != 0 || l.Shape() != ShapeMSEG {
		t.Errorf("mseg output %v shape %v", l.Output, l.Shape())
	}
}

func TestLFOProcessNoAlloc(t *testing.T) {
	for _, shape := range []Shape{ShapeCurve, ShapeStep, ShapeEnvelope} {
		ms := DefaultModulatorStorage()
		ms.Shape = shape
		ms.Curve.Waveform = WaveNoise

		var l LFO
		l.Init(testRate, 3)
		l.Attack(&ms)
		allocs := testing.AllocsPerRun(100, func() {
			l.Process(&ms)
		})
		if allocs != 0 {
			t.Errorf("%v: Process allocated %v times", shape, allocs)
		}
	}
}

func BenchmarkLFOProcess(b *testing.B) {
	ms := DefaultModulatorStorage()
	var l LFO
	l.Init(testRate, 1)
	l.Attack(&ms)

	b.ReportAllocs()
	for b.Loop() {
		l.Process(&ms)
	}
}
