// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"

	"github.com/ik5/sampler/sample"
)

// PlayMode decides what gates a voice and when it starts.
type PlayMode int

const (
	// PlayNormal starts on note on; the amplitude envelope gates.
	PlayNormal PlayMode = iota
	// PlayOneShot starts on note on and plays the sample out.
	PlayOneShot
	// PlayOnRelease starts on note off and plays the sample out.
	PlayOnRelease
)

var playModeNames = [...]string{"normal", "one-shot", "on-release"}

func (m PlayMode) String() string {
	if m < 0 || int(m) >= len(playModeNames) {
		return "unknown"
	}
	return playModeNames[m]
}

type LoopMode int

const (
	// LoopDuringVoice stays in the loop for the life of the voice.
	LoopDuringVoice LoopMode = iota
	// LoopWhileGated leaves the loop once the key is released.
	LoopWhileGated
	// LoopForCount plays the loop LoopCount times.
	LoopForCount
)

type LoopDirection int

const (
	LoopForward LoopDirection = iota
	LoopAlternate
)

// Unset marks a sample bound that is filled in when a sample is attached.
const Unset int64 = -1

// AssociatedSample places one sample inside a zone.
type AssociatedSample struct {
	Active   bool
	SampleID sample.ID

	StartSample, EndSample int64
	StartLoop, EndLoop     int64

	PlayMode      PlayMode
	LoopActive    bool
	PlayReverse   bool
	LoopMode      LoopMode
	LoopDirection LoopDirection
	LoopCount     int
	// LoopFade is a crossfade length in frames at the loop end.
	LoopFade int64
}

func newAssociatedSample() AssociatedSample {
	return AssociatedSample{
		StartSample: Unset, EndSample: Unset,
		StartLoop: Unset, EndLoop: Unset,
	}
}

// Validate checks start <= end, and start <= loopStart <= loopEnd <= end
// when the loop is active. Unset bounds pass.
func (a *AssociatedSample) Validate() error {
	if a.StartSample == Unset || a.EndSample == Unset {
		return nil
	}
	if a.StartSample < 0 || a.StartSample > a.EndSample {
		return fmt.Errorf("%w: start %d end %d", ErrInvalidBounds, a.StartSample, a.EndSample)
	}
	if !a.LoopActive {
		return nil
	}
	if a.StartSample > a.StartLoop || a.StartLoop > a.EndLoop || a.EndLoop > a.EndSample {
		return fmt.Errorf("%w: %d <= %d <= %d <= %d does not hold", ErrInvalidBounds,
			a.StartSample, a.StartLoop, a.EndLoop, a.EndSample)
	}
	if a.LoopFade < 0 || a.LoopFade > a.EndLoop-a.StartLoop {
		return fmt.Errorf("%w: loop fade %d", ErrInvalidBounds, a.LoopFade)
	}
	return nil
}

// SetBounds replaces all four bounds at once, leaving a untouched when the
// result would not validate.
func (a *AssociatedSample) SetBounds(start, end, loopStart, loopEnd int64) error {
	next := *a
	next.StartSample, next.EndSample = start, end
	next.StartLoop, next.EndLoop = loopStart, loopEnd
	if err := next.Validate(); err != nil {
		return err
	}
	*a = next
	return nil
}

// SetLoopActive toggles the loop, refusing to enable it over bounds that
// would break the loop invariant.
func (a *AssociatedSample) SetLoopActive(on bool) error {
	next := *a
	next.LoopActive = on
	if err := next.Validate(); err != nil {
		return err
	}
	*a = next
	return nil
}

// fillUnset completes bounds from a loaded sample. Loop points come from the
// file when override is set and the file has them.
func (a *AssociatedSample) fillUnset(s *sample.Sample, override bool) {
	frames := int64(s.Frames())
	if a.StartSample == Unset || a.StartSample > frames {
		a.StartSample = 0
	}
	if a.EndSample == Unset || a.EndSample > frames {
		a.EndSample = frames
	}

	if override && s.Meta.HasLoop {
		a.StartLoop = int64(s.Meta.LoopStart)
		a.EndLoop = min(int64(s.Meta.LoopEnd), a.EndSample)
		a.LoopActive = true
	}
	if a.StartLoop == Unset || a.StartLoop < a.StartSample {
		a.StartLoop = a.StartSample
	}
	if a.EndLoop == Unset || a.EndLoop > a.EndSample {
		a.EndLoop = a.EndSample
	}
	if a.StartLoop > a.EndLoop {
		a.StartLoop = a.EndLoop
	}
	a.LoopFade = max(0, min(a.LoopFade, a.EndLoop-a.StartLoop))
}
