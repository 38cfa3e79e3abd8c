// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// DBToLinear converts decibels to a linear gain. Anything at or below -96dB
// is treated as silence.
func DBToLinear(db float32) float32 {
	if db <= -96 {
		return 0
	}
	return float32(math.Pow(10, float64(db)/20))
}

// LinearToDB converts a linear gain to decibels, floored at -96dB.
func LinearToDB(g float32) float32 {
	if g <= 0.0000158 {
		return -96
	}
	return float32(20 * math.Log10(float64(g)))
}

// NoteToPitch returns the playback ratio for an offset of note semitones in
// equal temperament: 0 is unity, 12 is an octave up.
func NoteToPitch(note float32) float32 {
	return float32(math.Exp2(float64(note) / 12))
}

// NoteToFrequency converts a MIDI note number (fractional allowed) to Hz with
// A4 = 440Hz.
func NoteToFrequency(note float32) float32 {
	return 440 * NoteToPitch(note-69)
}

// PanGains returns constant-power gains for pan in [-1, 1].
func PanGains(pan float32) (left, right float32) {
	p := float64(Clamp(pan, -1, 1))
	angle := (p + 1) * math.Pi / 4
	return float32(math.Cos(angle)), float32(math.Sin(angle))
}
