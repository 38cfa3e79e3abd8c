// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"fmt"

	"github.com/ik5/sampler/datamodel"
)

// Type identifies a processor implementation. The numeric values are not
// persisted; use StreamingName for that.
type Type int

const (
	TypeNone Type = iota
	TypeMicroGate
	TypeBitCrusher
	TypeWaveShaper
	TypeSlewer
	TypeEQ1Band
	TypeEQ2Band
	TypeEQ3Band
	TypeEQGraphic6Band
	TypeMorphEQ
	TypeOscSin
	TypeOscSaw
	TypeOscPulseSync
	TypeOscPhaseMod
	TypeOscCorrelatedNoise
	TypePitchRing
	TypeFauxStereo
	TypeShortDelay
	TypeStringExciter
	TypeCytomicSVF
	TypeStaticPhaser
	TypeBiquad
	TypeMultiFilter

	numTypes
)

// NumTypes counts the processor types, TypeNone included.
const NumTypes = int(numTypes)

// Display groups.
const (
	GroupDistortion = "Distortion"
	GroupEQ         = "EQ"
	GroupGenerators = "Generators"
	GroupPitch      = "Pitch and Frequency"
	GroupDelay      = "Delay Based"
	GroupFilters    = "Filters"
)

const (
	MaxFloatParams = 9
	MaxIntParams   = 4
)

// Description is the static parameter surface of a processor type.
type Description struct {
	Type          Type
	DisplayName   string
	DisplayGroup  string
	StreamingName string

	FloatControls  [MaxFloatParams]datamodel.Metadata
	NumFloatParams int
	IntControls    [MaxIntParams]datamodel.Metadata
	NumIntParams   int
}

type unitConfig struct {
	rate float32
	seed uint64
}

type definition struct {
	name, group, streaming string

	floats []datamodel.Metadata
	ints   []datamodel.Metadata

	newUnit func(cfg unitConfig) unit
}

var (
	freqParam  = datamodel.Metadata{}.AsAudibleFrequency()
	levelParam = datamodel.Metadata{}.AsDecibel().WithRange(-48, 12).WithName("Level")
	eqGain     = datamodel.Metadata{}.AsDecibel().WithRange(-24, 24)
	eqWidth    = datamodel.Metadata{}.WithRange(0.1, 4).WithDefault(1)
	resParam   = datamodel.Metadata{}.AsPercent().WithName("Resonance").WithDefault(0.3)
	cutParam   = freqParam.WithName("Cutoff").WithDefault(30)
)

func named(md datamodel.Metadata, name string, def float32) datamodel.Metadata {
	return md.WithName(name).WithDefault(def)
}

func eqBands(n int) []datamodel.Metadata {
	freqs := [3]float32{-24, 0, 24}
	if n == 1 {
		freqs[0] = 0
	}
	out := make([]datamodel.Metadata, 0, 3*n)
	for i := 0; i < n; i++ {
		band := fmt.Sprintf("Band %d ", i+1)
		out = append(out,
			named(eqGain, band+"Gain", 0),
			named(freqParam, band+"Freq", freqs[i]),
			named(eqWidth, band+"BW", 1),
		)
	}
	return out
}

// definitions is indexed by Type. Streaming names must never change.
var definitions = [numTypes]definition{
	TypeNone: {name: "None", streaming: "none"},

	TypeMicroGate: {
		name: "MicroGate", group: GroupDistortion, streaming: "micro-gate-fx",
		floats: []datamodel.Metadata{
			named(datamodel.Metadata{}.AsEnvelopeTime(), "Hold", 0.3),
			named(datamodel.Metadata{}.AsDecibel().WithRange(-96, 0), "Threshold", -24),
			named(datamodel.Metadata{}.AsDecibel().WithRange(-96, 0), "Reduction", -96),
		},
		newUnit: newMicroGate,
	},
	TypeBitCrusher: {
		name: "BitCrusher", group: GroupDistortion, streaming: "bit-crusher-fx",
		floats: []datamodel.Metadata{
			named(freqParam, "Sample Rate", 50),
			named(datamodel.Metadata{}.AsPercent(), "Bit Depth", 1),
			named(datamodel.Metadata{}.AsPercent(), "Zero Point", 0),
			cutParam,
			resParam.WithDefault(0),
		},
		newUnit: newBitCrusher,
	},
	TypeWaveShaper: {
		name: "WaveShaper", group: GroupDistortion, streaming: "waveshaper-fx",
		floats: []datamodel.Metadata{
			named(datamodel.Metadata{}.AsDecibel().WithRange(-24, 48), "Drive", 0),
			named(datamodel.Metadata{}.AsPercentBipolar(), "Bias", 0),
			named(datamodel.Metadata{}.AsDecibel().WithRange(-48, 12), "Gain", 0),
		},
		ints: []datamodel.Metadata{
			datamodel.Metadata{}.AsInt(0, int(numShapers)-1).WithName("Shape"),
		},
		newUnit: newWaveShaper,
	},
	TypeSlewer: {
		name: "Slewer", group: GroupDistortion, streaming: "slewer-fx",
		floats: []datamodel.Metadata{
			named(datamodel.Metadata{}.AsDecibel().WithRange(-24, 24), "Drive", 0),
			named(datamodel.Metadata{}.AsPercent(), "Rate", 0.5),
			named(datamodel.Metadata{}.AsDecibel().WithRange(-24, 24), "Output", 0),
		},
		newUnit: newSlewer,
	},

	TypeEQ1Band: {
		name: "1 Band Parametric", group: GroupEQ, streaming: "eq-parm-1band",
		floats:  eqBands(1),
		newUnit: func(cfg unitConfig) unit { return newParametricEQ(cfg, 1) },
	},
	TypeEQ2Band: {
		name: "2 Band Parametric", group: GroupEQ, streaming: "eq-parm-2band",
		floats:  eqBands(2),
		newUnit: func(cfg unitConfig) unit { return newParametricEQ(cfg, 2) },
	},
	TypeEQ3Band: {
		name: "3 Band Parametric", group: GroupEQ, streaming: "eq-parm-3band",
		floats:  eqBands(3),
		newUnit: func(cfg unitConfig) unit { return newParametricEQ(cfg, 3) },
	},
	TypeEQGraphic6Band: {
		name: "6 Band Graphic", group: GroupEQ, streaming: "eq-grp-6",
		floats: []datamodel.Metadata{
			named(eqGain, "100 Hz", 0),
			named(eqGain, "250 Hz", 0),
			named(eqGain, "630 Hz", 0),
			named(eqGain, "1.6 kHz", 0),
			named(eqGain, "4 kHz", 0),
			named(eqGain, "10 kHz", 0),
		},
		newUnit: newGraphicEQ,
	},
	TypeMorphEQ: {
		name: "Morph", group: GroupEQ, streaming: "eq-morph",
		floats: []datamodel.Metadata{
			named(datamodel.Metadata{}.AsPercent(), "Morph", 0),
			named(datamodel.Metadata{}.AsSemitoneRange(24), "Freq Shift", 0),
			named(datamodel.Metadata{}.AsPercentBipolar(), "Gain Scale", 1),
		},
		newUnit: newMorphEQ,
	},

	TypeOscSin: {
		name: "Sin", group: GroupGenerators, streaming: "osc-sin",
		floats: []datamodel.Metadata{
			named(freqParam, "Frequency", 0),
			named(levelParam, "Level", -6),
		},
		newUnit: newOscSin,
	},
	TypeOscSaw: {
		name: "Saw", group: GroupGenerators, streaming: "osc-saw",
		floats: []datamodel.Metadata{
			named(freqParam, "Frequency", 0),
			named(levelParam, "Level", -6),
		},
		newUnit: newOscSaw,
	},
	TypeOscPulseSync: {
		name: "Pulse Sync", group: GroupGenerators, streaming: "osc-pulse-sync",
		floats: []datamodel.Metadata{
			named(freqParam, "Frequency", 0),
			named(datamodel.Metadata{}.AsSemitoneRange(96).WithRange(0, 96), "Sync", 0),
			named(datamodel.Metadata{}.AsPercent(), "Width", 0.5),
			named(levelParam, "Level", -6),
		},
		newUnit: newOscPulseSync,
	},
	TypeOscPhaseMod: {
		name: "Phase Mod", group: GroupGenerators, streaming: "osc-phase-mod",
		floats: []datamodel.Metadata{
			named(freqParam, "Frequency", 0),
			named(datamodel.Metadata{}.AsPercent(), "Depth", 0.5),
		},
		newUnit: newOscPhaseMod,
	},
	TypeOscCorrelatedNoise: {
		name: "Correlated Noise", group: GroupGenerators, streaming: "osc-correlated-noise",
		floats: []datamodel.Metadata{
			named(datamodel.Metadata{}.AsPercentBipolar(), "Color", 0),
			named(datamodel.Metadata{}.AsPercentBipolar(), "Stereo Correlation", 0),
			named(levelParam, "Level", -6),
		},
		newUnit: newCorrelatedNoise,
	},

	TypePitchRing: {
		name: "PitchRing", group: GroupPitch, streaming: "pitchring-fx",
		floats: []datamodel.Metadata{
			named(freqParam, "Frequency", 0),
			named(datamodel.Metadata{}.AsPercent(), "Depth", 1),
		},
		newUnit: newPitchRing,
	},

	TypeFauxStereo: {
		name: "Faux Stereo", group: GroupDelay, streaming: "fxstereo-fx",
		floats: []datamodel.Metadata{
			named(datamodel.Metadata{}.AsDecibel().WithRange(-48, 0), "Amplitude", -6),
			named(datamodel.Metadata{}.AsSeconds(fauxStereoMaxDelay), "Delay", 0.01),
		},
		newUnit: newFauxStereo,
	},
	TypeShortDelay: {
		name: "Simple Delay", group: GroupDelay, streaming: "simpdel-fx",
		floats: []datamodel.Metadata{
			named(datamodel.Metadata{}.AsSeconds(shortDelayMax), "Time L", 0.1),
			named(datamodel.Metadata{}.AsSeconds(shortDelayMax), "Time R", 0.1),
			named(datamodel.Metadata{}.AsPercent(), "Feedback", 0),
			named(datamodel.Metadata{}.AsPercent(), "CrossFeed", 0),
			named(freqParam, "LoCut", -60),
			named(freqParam, "HiCut", 70),
		},
		newUnit: newShortDelay,
	},
	TypeStringExciter: {
		name: "String Exciter", group: GroupDelay, streaming: "stringex-fx",
		floats: []datamodel.Metadata{
			named(freqParam, "Frequency", 0),
			named(datamodel.Metadata{}.AsPercent(), "Decay", 0.7),
			named(freqParam, "Damping", 40),
			named(levelParam, "Level", 0),
		},
		newUnit: newStringExciter,
	},

	TypeCytomicSVF: {
		name: "Fast SVF", group: GroupFilters, streaming: "filt-cytomic",
		floats: []datamodel.Metadata{cutParam, resParam},
		ints: []datamodel.Metadata{
			datamodel.Metadata{}.AsInt(0, numSVFModes-1).WithName("Mode"),
		},
		newUnit: newCytomicSVF,
	},
	TypeStaticPhaser: {
		name: "Static Phaser", group: GroupFilters, streaming: "filt-statph",
		floats: []datamodel.Metadata{
			named(freqParam, "Center", 0),
			named(datamodel.Metadata{}.WithRange(0, 4), "Spread", 1),
			named(datamodel.Metadata{}.AsPercent(), "Resonance", 0.5),
			named(datamodel.Metadata{}.AsPercent(), "Feedback", 0),
		},
		ints: []datamodel.Metadata{
			datamodel.Metadata{}.AsInt(1, maxPhaserStages).WithName("Stages").WithDefault(4),
		},
		newUnit: newStaticPhaser,
	},
	TypeBiquad: {
		name: "Biquad Filters", group: GroupFilters, streaming: "filt-sstbiquad",
		floats: []datamodel.Metadata{
			cutParam,
			named(datamodel.Metadata{}.WithRange(0.1, 12), "Q", 0.707),
			named(datamodel.Metadata{}.AsDecibel().WithRange(-24, 24), "Gain", 0),
		},
		ints: []datamodel.Metadata{
			datamodel.Metadata{}.AsInt(0, numBiquadTypes-1).WithName("Type"),
		},
		newUnit: newBiquadFilter,
	},
	TypeMultiFilter: {
		name: "Multi Filter", group: GroupFilters, streaming: "filt-sstfilters",
		floats: []datamodel.Metadata{cutParam, resParam},
		ints: []datamodel.Metadata{
			datamodel.Metadata{}.AsInt(0, int(numMultiModes)-1).WithName("Mode"),
		},
		newUnit: newMultiFilter,
	},
}

var byStreamingName = func() map[string]Type {
	m := make(map[string]Type, numTypes)
	for t := range numTypes {
		m[definitions[t].streaming] = t
	}
	return m
}()

// Valid reports whether t names a processor, TypeNone included.
func (t Type) Valid() bool { return t >= TypeNone && t < numTypes }

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return definitions[t].name
}

// StreamingName is the durable key for t. It is empty for invalid types.
func (t Type) StreamingName() string {
	if !t.Valid() {
		return ""
	}
	return definitions[t].streaming
}

// DisplayGroup is the menu section t is listed under.
func (t Type) DisplayGroup() string {
	if !t.Valid() {
		return ""
	}
	return definitions[t].group
}

// TypeFromStreamingName is the inverse of StreamingName.
func TypeFromStreamingName(name string) (Type, error) {
	t, ok := byStreamingName[name]
	if !ok {
		return TypeNone, fmt.Errorf("%w: %q", ErrUnknownStreamingName, name)
	}
	return t, nil
}

// Types lists every processor type except TypeNone in registry order.
func Types() []Type {
	out := make([]Type, 0, numTypes-1)
	for t := TypeNone + 1; t < numTypes; t++ {
		out = append(out, t)
	}
	return out
}

// Describe returns the parameter surface of t.
func Describe(t Type) (Description, error) {
	if !t.Valid() {
		return Description{}, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	def := &definitions[t]
	d := Description{
		Type:           t,
		DisplayName:    def.name,
		DisplayGroup:   def.group,
		StreamingName:  def.streaming,
		NumFloatParams: len(def.floats),
		NumIntParams:   len(def.ints),
	}
	copy(d.FloatControls[:], def.floats)
	copy(d.IntControls[:], def.ints)
	return d, nil
}
