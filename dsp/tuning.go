// SPDX-License-Identifier: EPL-2.0

package dsp

// Tuning maps keys to pitch deviations. The zero value is 12-TET.
//
// Offsets holds a cents deviation per pitch class (C = 0) applied on top of
// equal temperament, which covers the usual historical temperaments.
type Tuning struct {
	Offsets [12]float32
	Active  bool
}

// SemitoneOffset returns the deviation from equal temperament for a MIDI key
// in semitones.
func (t *Tuning) SemitoneOffset(key int) float32 {
	if t == nil || !t.Active {
		return 0
	}

	pc := key % 12
	if pc < 0 {
		pc += 12
	}
	return t.Offsets[pc] / 100
}

// KeyToPitch returns the playback ratio for key relative to rootKey.
func (t *Tuning) KeyToPitch(key, rootKey int, fine float32) float32 {
	n := float32(key-rootKey) + fine + t.SemitoneOffset(key) - t.SemitoneOffset(rootKey)
	return NoteToPitch(n)
}
