// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"

	"github.com/ik5/sampler/dsp"
)

// MiddleC is the pitch NoteToPitch is relative to.
const MiddleC = 60

// Services are the engine wide conversions voices and part effects use.
type Services interface {
	SampleRate() float64
	SampleRateInv() float64
	// NoteToPitch is the frequency ratio of a fractional MIDI note against
	// middle C under the active tuning.
	NoteToPitch(note float32) float32
	NoteToPitchIgnoringTuning(note float32) float32
	DBToLinear(db float32) float32
}

// StandardServices implements Services for a fixed sample rate. A nil
// Tuning is equal temperament.
type StandardServices struct {
	Rate   float64
	Tuning *dsp.Tuning
}

func (s *StandardServices) SampleRate() float64 { return s.Rate }

func (s *StandardServices) SampleRateInv() float64 {
	if s.Rate <= 0 {
		return 0
	}
	return 1 / s.Rate
}

func (s *StandardServices) NoteToPitch(note float32) float32 {
	key := int(math.Round(float64(note)))
	return s.Tuning.KeyToPitch(key, MiddleC, note-float32(key))
}

func (s *StandardServices) NoteToPitchIgnoringTuning(note float32) float32 {
	return dsp.NoteToPitch(note - MiddleC)
}

func (s *StandardServices) DBToLinear(db float32) float32 { return dsp.DBToLinear(db) }
