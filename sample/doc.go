// SPDX-License-Identifier: EPL-2.0

// Package sample holds normalized in-memory audio for the sampler.
//
// A Sample stores up to two channels. Sources of 16 bits or fewer are kept as
// int16, deeper integer and all float sources as float32:
//
//	var s sample.Sample
//	_ = s.SetMeta(2, 44100, frames)
//	_ = s.LoadData(0, sample.I24BE, data, 6)    // left, interleaved stereo
//	_ = s.LoadData(1, sample.I24BE, data[3:], 6) // right
//
// Container formats are decoded by Loaders kept in a Registry (see the
// formats package). A Manager loads files through the registry, publishes
// them under stable ids and hands out reference counted Shared handles that
// zones keep while they point at a sample.
package sample
