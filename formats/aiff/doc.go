// SPDX-License-Identifier: EPL-2.0

// Package aiff loads AIFF (Audio Interchange File Format) files.
//
// This package uses github.com/go-audio/aiff to read the container and hands
// the decoded integers to sample.Sample.LoadInts. 8 and 16-bit files end up in
// int16 storage, 24 and 32-bit files in float32 storage.
//
//	var s sample.Sample
//	f, _ := os.Open("pad.aif")
//	if err := (aiff.Loader{}).Load(f, &s); err != nil {
//	    // ErrNotAiffFile, ErrUnsupportedBitDepth, sample.ErrTooManyChannels ...
//	}
package aiff
