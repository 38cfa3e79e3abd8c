// SPDX-License-Identifier: EPL-2.0

// Package audio moves rendered PCM between rates and channel layouts.
//
// A Source yields interleaved float32 frames. The engine exposes its output
// as a Source; the helpers here adapt it for files or devices that want a
// different shape:
//
//	src := eng.Source(frames)                    // stereo at the engine rate
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 8000))
//	pcm, err := audio.ReadAll16(mono, 4096)
//
// NewResampler uses 4-point cubic interpolation and a one-pole low pass
// when lowering the rate. NewMonoMixer averages all channels.
package audio
