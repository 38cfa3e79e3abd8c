// SPDX-License-Identifier: EPL-2.0

package modulators

import "github.com/ik5/sampler/datamodel"

// Shape selects which evaluator drives an LFO slot.
type Shape int

const (
	ShapeCurve Shape = iota
	ShapeStep
	ShapeEnvelope
	// ShapeMSEG is reserved for multi-segment shapes. The slot evaluates to
	// zero.
	ShapeMSEG
)

var shapeNames = [...]string{"curve", "step", "envelope", "mseg"}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// Waveform of a curve LFO.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveRamp
	WavePulse
	WaveNoise
	WaveSampleHold
)

// MaxSteps is the length of a step LFO sequence.
const MaxSteps = 16

// CurveSettings shape a continuous LFO. Times are on the envelope scale.
type CurveSettings struct {
	Waveform Waveform
	Deform   float32
	Delay    float32
	Attack   float32
	Release  float32
	Unipolar bool
}

type StepSettings struct {
	Steps    [MaxSteps]float32
	NumSteps int
	Smooth   float32
}

// EnvelopeSettings drive a DAHDSR envelope. Times are on the envelope
// scale, Sustain is a level.
type EnvelopeSettings struct {
	Delay, Attack, Hold, Decay, Sustain, Release float32
}

// ModulatorStorage is one LFO slot of a zone.
type ModulatorStorage struct {
	Shape Shape
	// Rate is log2 Hz.
	Rate float32
	// StartPhase is the phase, 0..1, a curve or step LFO starts from.
	StartPhase float32

	Curve    CurveSettings
	Step     StepSettings
	Envelope EnvelopeSettings
}

func DefaultModulatorStorage() ModulatorStorage {
	ms := ModulatorStorage{Shape: ShapeCurve}
	ms.Step.NumSteps = MaxSteps
	for i := range ms.Step.Steps {
		if i%2 == 0 {
			ms.Step.Steps[i] = 1
		} else {
			ms.Step.Steps[i] = -1
		}
	}
	ms.Envelope = EnvelopeSettings{Attack: 0.3, Decay: 0.4, Sustain: 0.7, Release: 0.4}
	return ms
}

func (ms *ModulatorStorage) IsCurve() bool { return ms.Shape == ShapeCurve }
func (ms *ModulatorStorage) IsStep() bool  { return ms.Shape == ShapeStep }
func (ms *ModulatorStorage) IsEnv() bool   { return ms.Shape == ShapeEnvelope }
func (ms *ModulatorStorage) IsMSEG() bool  { return ms.Shape == ShapeMSEG }

// AdsrStorage configures an AHDSR envelope. Times are on the envelope
// scale; shapes run from -1 (concave) through 0 (linear) to 1 (convex).
type AdsrStorage struct {
	A, H, D, S, R          float32
	AShape, DShape, RShape float32
}

func DefaultAdsrStorage() AdsrStorage {
	return AdsrStorage{A: 0, H: 0, D: 0.4, S: 1, R: 0.3}
}

// Parameter metadata shared by the storages and the voice matrix targets.
var (
	RateMetadata     = datamodel.Metadata{}.AsLFORate().WithName("Rate")
	TimeMetadata     = datamodel.Metadata{}.AsEnvelopeTime()
	LevelMetadata    = datamodel.Metadata{}.AsPercent()
	ShapeMetadata    = datamodel.Metadata{}.AsPercentBipolar()
	DeformMetadata   = datamodel.Metadata{}.AsPercentBipolar().WithName("Deform")
	SmoothMetadata   = datamodel.Metadata{}.AsPercent().WithName("Smooth")
	StepMetadata     = datamodel.Metadata{}.AsPercentBipolar().WithName("Step")
	NumStepsMetadata = datamodel.Metadata{}.AsInt(1, MaxSteps).WithName("Steps")
)
