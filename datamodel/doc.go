// SPDX-License-Identifier: EPL-2.0

// Package datamodel describes parameters: their display name, range, default
// and unit, plus conversion between values and display strings.
//
// Metadata values are built with a fluent style and are plain values, so they
// can be copied into fixed arrays on the audio side:
//
//	md := datamodel.Metadata{}.AsDecibel().WithName("Amplitude").WithDefault(0)
//	md.ValueToString(-6) // "-6.00 dB"
package datamodel
