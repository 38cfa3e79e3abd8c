// SPDX-License-Identifier: EPL-2.0

// Package sampler is a polyphonic, sample based synthesizer engine.
//
// An Engine owns a Patch (16 parts, one per MIDI channel, each holding
// groups of zones), a pool of voices and the sample manager the zones draw
// from. Note events start voices for every zone that answers the key and
// velocity; each voice plays its sample through the zone's LFOs, envelopes,
// modulation matrix and processor chain. Voices are mixed into their part's
// bus, which runs the part effects, and then into the main output.
//
// # Threads
//
// Process, NoteOn, NoteOff, ControlChange and PitchBend belong to the audio
// goroutine. Everything else reaches the patch through Post, whose
// functions run at the start of the next block:
//
//	ctx := logger.WithContext(context.Background())
//	id, _ := eng.LoadSample(ctx, "piano-c4.wav")
//	z := engine.NewZoneForSample(id)
//	_ = eng.AddZone(ctx, 0, z)
//	_ = eng.Post(func(e *sampler.Engine) { e.NoteOn(0, 60, 100) })
//
// # Output
//
// Process renders one block of dsp.BlockSize frames. Streamer adapts the
// engine to github.com/gopxl/beep, Source to the audio package, and Bounce
// and BounceMono16 render offline.
//
// # Formats
//
// Samples load from WAV, AIFF, MP3 and Ogg Vorbis through formats.NewRegistry.
package sampler
