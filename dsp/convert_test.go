// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestNoteToPitch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		note float32
		want float32
	}{
		{0, 1},
		{12, 2},
		{-12, 0.5},
		{24, 4},
		{7, 1.4983},
	}

	for _, tt := range tests {
		if got := NoteToPitch(tt.note); !almostEqual(got, tt.want, 0.001) {
			t.Errorf("NoteToPitch(%v) = %v, want %v", tt.note, got, tt.want)
		}
	}
}

func TestNoteToFrequency(t *testing.T) {
	t.Parallel()

	if got := NoteToFrequency(69); !almostEqual(got, 440, 0.01) {
		t.Errorf("NoteToFrequency(69) = %v, want 440", got)
	}
	if got := NoteToFrequency(60); !almostEqual(got, 261.626, 0.01) {
		t.Errorf("NoteToFrequency(60) = %v, want 261.626", got)
	}
}

func TestDBToLinear(t *testing.T) {
	t.Parallel()

	if got := DBToLinear(0); !almostEqual(got, 1, 1e-6) {
		t.Errorf("DBToLinear(0) = %v", got)
	}
	if got := DBToLinear(-6); !almostEqual(got, 0.5012, 0.001) {
		t.Errorf("DBToLinear(-6) = %v", got)
	}
	if got := DBToLinear(-96); got != 0 {
		t.Errorf("DBToLinear(-96) = %v, want 0", got)
	}
	if got := LinearToDB(DBToLinear(-12)); !almostEqual(got, -12, 0.001) {
		t.Errorf("LinearToDB round trip = %v, want -12", got)
	}
}

func TestPanGainsConstantPower(t *testing.T) {
	t.Parallel()

	for _, p := range []float32{-1, -0.5, 0, 0.3, 1} {
		l, r := PanGains(p)
		if power := l*l + r*r; !almostEqual(power, 1, 1e-5) {
			t.Errorf("PanGains(%v) power = %v, want 1", p, power)
		}
	}
	if l, r := PanGains(-1); !almostEqual(l, 1, 1e-6) || !almostEqual(r, 0, 1e-6) {
		t.Errorf("hard left = (%v, %v)", l, r)
	}
}

func TestTuning(t *testing.T) {
	t.Parallel()

	var et Tuning
	if got := et.KeyToPitch(72, 60, 0); !almostEqual(got, 2, 1e-5) {
		t.Errorf("equal tempered octave = %v, want 2", got)
	}

	var nilTuning *Tuning
	if got := nilTuning.SemitoneOffset(61); got != 0 {
		t.Errorf("nil tuning offset = %v, want 0", got)
	}

	tuned := Tuning{Active: true}
	tuned.Offsets[7] = -2 // G two cents flat
	got := tuned.KeyToPitch(67, 60, 0)
	want := NoteToPitch(7 - 0.02)
	if !almostEqual(got, want, 1e-6) {
		t.Errorf("tuned fifth = %v, want %v", got, want)
	}
	if off := tuned.SemitoneOffset(-5); off != -0.02 {
		t.Errorf("negative key offset = %v, want -0.02", off)
	}
}

func TestBlockHelpers(t *testing.T) {
	t.Parallel()

	wet := []float32{1, 1, 1}
	dry := []float32{0, 0, 0}
	BlendBlock(wet, dry, 0.25)
	for _, v := range wet {
		if v != 0.25 {
			t.Fatalf("BlendBlock = %v, want 0.25", wet)
		}
	}

	dst := []float32{1, 2}
	AccumulateBlock(dst, []float32{1, 1, 1}, 0.5)
	if dst[0] != 1.5 || dst[1] != 2.5 {
		t.Errorf("AccumulateBlock = %v", dst)
	}

	ClearBlock(dst, wet)
	if dst[0] != 0 || wet[2] != 0 {
		t.Errorf("ClearBlock left data behind")
	}

	if Clamp(2, -1, 1) != 1 || Clamp(-2, -1, 1) != -1 || Clamp(0.5, -1, 1) != 0.5 {
		t.Errorf("Clamp misbehaves")
	}
}
