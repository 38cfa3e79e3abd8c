// SPDX-License-Identifier: EPL-2.0

package modulators

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/ik5/sampler/datamodel"
	"github.com/ik5/sampler/dsp"
)

// Stage of an Envelope.
type Stage int

const (
	StageIdle Stage = iota
	StageDelay
	StageAttack
	StageHold
	StageDecay
	StageSustain
	StageRelease
	StageFastRelease
	StageDone
)

var stageNames = [...]string{"idle", "delay", "attack", "hold", "decay", "sustain", "release", "fast-release", "done"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// FastRelease is how long a stolen or choked voice takes to fade out.
const FastRelease = 5 * time.Millisecond

// EnvelopeParams are the live values an Envelope reads every block.
type EnvelopeParams struct {
	Delay, Attack, Hold, Decay, Sustain, Release float32
	AShape, DShape, RShape                       float32
}

// Params views an AdsrStorage as envelope parameters without a delay stage.
func (a *AdsrStorage) Params() EnvelopeParams {
	return EnvelopeParams{
		Attack: a.A, Hold: a.H, Decay: a.D, Sustain: a.S, Release: a.R,
		AShape: a.AShape, DShape: a.DShape, RShape: a.RShape,
	}
}

// Envelope is a block rate DAHDSR generator. Stage lengths are re-read from
// the params each block so they can be modulated while running.
type Envelope struct {
	rate beep.SampleRate

	stage       Stage
	pos         int
	releaseFrom float32

	// OutBlock0 is the value at the start of the last processed block and
	// Output the value at its end.
	OutBlock0 float32
	Output    float32
}

func (e *Envelope) Init(rate beep.SampleRate) {
	*e = Envelope{rate: rate}
}

func (e *Envelope) Stage() Stage { return e.stage }

// Done reports whether the envelope has finished its release.
func (e *Envelope) Done() bool { return e.stage == StageDone }

// Attack restarts the envelope from zero.
func (e *Envelope) Attack(p *EnvelopeParams) {
	e.stage = StageDelay
	e.pos = 0
	e.Output, e.OutBlock0 = 0, 0
	e.skipEmpty(p)
	e.Output = e.value(p)
	e.OutBlock0 = e.Output
}

// Release moves to the release stage from the current level.
func (e *Envelope) Release() {
	switch e.stage {
	case StageIdle, StageRelease, StageFastRelease, StageDone:
		return
	}
	e.stage = StageRelease
	e.releaseFrom = e.Output
	e.pos = 0
}

// FastRelease fades out over FastRelease whatever the release setting.
func (e *Envelope) FastRelease() {
	switch e.stage {
	case StageIdle, StageFastRelease, StageDone:
		return
	}
	e.stage = StageFastRelease
	e.releaseFrom = e.Output
	e.pos = 0
}

// Process advances the envelope by one block.
func (e *Envelope) Process(p *EnvelopeParams) {
	e.OutBlock0 = e.Output

	remaining := dsp.BlockSize
	for remaining > 0 {
		n, timed := e.length(p)
		if !timed {
			break
		}
		if e.pos+remaining < n {
			e.pos += remaining
			remaining = 0
			break
		}
		remaining -= n - e.pos
		e.advance()
		e.skipEmpty(p)
	}
	e.Output = e.value(p)
}

func (e *Envelope) seconds(v float32) int {
	sec := datamodel.EnvelopeSeconds(v)
	if sec <= 0 {
		return 0
	}
	return e.rate.N(time.Duration(float64(sec) * float64(time.Second)))
}

// length is the stage length in samples. Untimed stages hold until an event.
func (e *Envelope) length(p *EnvelopeParams) (int, bool) {
	switch e.stage {
	case StageDelay:
		return e.seconds(p.Delay), true
	case StageAttack:
		return e.seconds(p.Attack), true
	case StageHold:
		return e.seconds(p.Hold), true
	case StageDecay:
		return e.seconds(p.Decay), true
	case StageRelease:
		return e.seconds(p.Release), true
	case StageFastRelease:
		return e.rate.N(FastRelease), true
	default:
		return 0, false
	}
}

func (e *Envelope) advance() {
	e.pos = 0
	switch e.stage {
	case StageDelay, StageAttack, StageHold:
		e.stage++
	case StageDecay:
		e.stage = StageSustain
	case StageRelease, StageFastRelease:
		e.stage = StageDone
	}
}

func (e *Envelope) skipEmpty(p *EnvelopeParams) {
	for {
		n, timed := e.length(p)
		if !timed || n > 0 {
			return
		}
		e.advance()
	}
}

func (e *Envelope) value(p *EnvelopeParams) float32 {
	sustain := max(0, min(1, p.Sustain))

	switch e.stage {
	case StageAttack:
		return shaped(e.phase(p), p.AShape)
	case StageHold:
		return 1
	case StageDecay:
		return 1 - (1-sustain)*shaped(e.phase(p), p.DShape)
	case StageSustain:
		return sustain
	case StageRelease:
		return e.releaseFrom * (1 - shaped(e.phase(p), p.RShape))
	case StageFastRelease:
		return e.releaseFrom * (1 - e.phase(p))
	default:
		return 0
	}
}

func (e *Envelope) phase(p *EnvelopeParams) float32 {
	n, _ := e.length(p)
	if n <= 0 {
		return 1
	}
	return min(1, float32(e.pos)/float32(n))
}

// shaped bends a 0..1 phase. Positive shapes rise fast, negative ones slow.
func shaped(x, shape float32) float32 {
	if shape == 0 {
		return x
	}
	k := math.Exp2(-2 * float64(max(-1, min(1, shape))))
	return float32(math.Pow(float64(x), k))
}
