// SPDX-License-Identifier: EPL-2.0

// Package dsp provides the low-level signal processing primitives shared by
// the sampler engine.
//
// Everything in this package is safe to call from the audio goroutine: no
// function allocates, locks or blocks once its receiver has been constructed.
//
// # Block Processing
//
// The engine renders audio in fixed blocks of BlockSize frames. Oversampled
// processors run on blocks of BlockSizeOS frames through an Oversampler:
//
//	var os dsp.Oversampler
//	os.Reset()
//	os.Upsample(left, right)      // fills os.Left / os.Right at 2x rate
//	inner.Process(os.Left[:], os.Right[:])
//	os.Downsample(left, right)
//
// # Filters
//
// Biquad implements the RBJ cookbook responses and SVF a zero-delay feedback
// state variable filter. Both keep per-channel state for a stereo pair.
//
// # Conversions
//
// DBToLinear, NoteToPitch and NoteToFrequency are the numeric services the
// engine hands to voices and part effects. Tuning adds an optional per pitch
// class offset table on top of equal temperament.
package dsp
