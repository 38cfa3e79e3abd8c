// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"strconv"

	"github.com/ik5/sampler/datamodel"
	"github.com/ik5/sampler/dsp/processor"
	"github.com/ik5/sampler/engine"
	"github.com/ik5/sampler/modulation"
	"github.com/ik5/sampler/modulation/modulators"
)

var egNames = [engine.EGsPerZone]string{"AEG", "EG2"}

// when returns label if cond holds and "" otherwise, hiding the target.
func when(cond bool, label string) string {
	if cond {
		return label
	}
	return ""
}

// GetVoiceMatrixMetadata lists the sources, targets and curves a matrix
// editor can offer for z. Targets that do not apply to z's current LFO
// shapes or processor types carry an empty name. Targets and sources are
// sorted for display; evaluation order does not depend on it.
func GetVoiceMatrixMetadata(z *engine.Zone, e *Endpoints) modulation.MatrixMetadata {
	var md modulation.MatrixMetadata

	target := func(id modulation.TargetID, path, name string, meta datamodel.Metadata) {
		md.Targets = append(md.Targets, modulation.TargetInfo{
			ID:          id,
			DisplayName: modulation.DisplayName{Path: path, Name: name},
			Metadata:    meta.WithName(name),
		})
	}

	for i := range e.LFO {
		t := &e.LFO[i]
		ms := &z.Modulators[i]
		path := "LFO " + strconv.Itoa(i+1)
		curve, step, env := ms.IsCurve(), ms.IsStep(), ms.IsEnv()

		target(t.Rate, path, when(!env, "Rate"), modulators.RateMetadata)
		target(t.Curve.Deform, path, when(curve, "Curve Deform"), modulators.DeformMetadata)
		target(t.Curve.Delay, path, when(curve, "Curve Delay"), modulators.TimeMetadata)
		target(t.Curve.Attack, path, when(curve, "Curve Attack"), modulators.TimeMetadata)
		target(t.Curve.Release, path, when(curve, "Curve Release"), modulators.TimeMetadata)
		target(t.Step.Smooth, path, when(step, "Step Smooth"), modulators.SmoothMetadata)
		target(t.Env.Delay, path, when(env, "Env Delay"), modulators.TimeMetadata)
		target(t.Env.Attack, path, when(env, "Env Attack"), modulators.TimeMetadata)
		target(t.Env.Hold, path, when(env, "Env Hold"), modulators.TimeMetadata)
		target(t.Env.Decay, path, when(env, "Env Decay"), modulators.TimeMetadata)
		target(t.Env.Sustain, path, when(env, "Env Sustain"), modulators.LevelMetadata)
		target(t.Env.Release, path, when(env, "Env Release"), modulators.TimeMetadata)
	}

	for i := range e.EG {
		t := &e.EG[i]
		path := egNames[i]
		target(t.A, path, "Attack", modulators.TimeMetadata)
		target(t.H, path, "Hold", modulators.TimeMetadata)
		target(t.D, path, "Decay", modulators.TimeMetadata)
		target(t.S, path, "Sustain", modulators.LevelMetadata)
		target(t.R, path, "Release", modulators.TimeMetadata)
		target(t.AShape, path, "Attack Shape", modulators.ShapeMetadata)
		target(t.DShape, path, "Decay Shape", modulators.ShapeMetadata)
		target(t.RShape, path, "Release Shape", modulators.ShapeMetadata)
	}

	target(e.Mapping.PitchOffset, "Mapping", "Pitch Offset", pitchOffsetMetadata)
	target(e.Mapping.Amplitude, "Mapping", "Amplitude", amplitudeMetadata)
	target(e.Mapping.Pan, "Mapping", "Pan", panMetadata)
	target(e.Mapping.PlaybackRatio, "Mapping", "Playback Ratio", playbackRatioMetadata.WithRange(playbackRatioRange.Min, playbackRatioRange.Max))
	target(e.Output.Amplitude, "Output", "Amplitude", amplitudeMetadata)
	target(e.Output.Pan, "Output", "Pan", panMetadata)

	for i := range e.Processor {
		t := &e.Processor[i]
		d, err := processor.Describe(z.Processors[i].Type)
		if err != nil || d.Type == processor.TypeNone {
			target(t.Mix, "", "", mixMetadata)
			for _, id := range t.Float {
				target(id, "", "", datamodel.Metadata{})
			}
			continue
		}
		path := "P" + strconv.Itoa(i+1) + " " + d.DisplayName
		target(t.Mix, path, "mix", mixMetadata)
		for f, id := range t.Float {
			if f < d.NumFloatParams {
				target(id, path, d.FloatControls[f].Name, d.FloatControls[f])
			} else {
				target(id, path, "", datamodel.Metadata{})
			}
		}
	}

	source := func(id modulation.SourceID, path, name string) {
		md.Sources = append(md.Sources, modulation.SourceInfo{
			ID:          id,
			DisplayName: modulation.DisplayName{Path: path, Name: name},
		})
	}
	for i, id := range e.Sources.LFO {
		source(id, "LFO", "LFO "+strconv.Itoa(i+1))
	}
	source(e.Sources.AEG, "EG", egNames[0])
	source(e.Sources.EG2, "EG", egNames[1])
	source(e.Sources.ModWheel, "MIDI", "Mod Wheel")
	source(e.Sources.Velocity, "MIDI", "Velocity")

	modulation.SortTargets(md.Targets)
	modulation.SortSources(md.Sources)
	md.Curves = modulation.CurveMetadata()
	return md
}
