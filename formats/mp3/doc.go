// SPDX-License-Identifier: EPL-2.0

// Package mp3 loads MP3 files.
//
// This package uses github.com/hajimehoshi/go-mp3, which always decodes to
// 16-bit stereo, so every MP3 becomes a two channel int16 sample.
//
//	var s sample.Sample
//	f, _ := os.Open("loop.mp3")
//	err := mp3.Loader{}.Load(f, &s)
package mp3
