// SPDX-License-Identifier: EPL-2.0

// Package vorbis loads Ogg Vorbis files.
//
// This package uses github.com/jfreymuth/oggvorbis. Vorbis decodes to float,
// so loaded samples always use float32 storage. Streams with more than two
// channels are rejected by sample.Sample.SetMeta.
//
//	var s sample.Sample
//	f, _ := os.Open("texture.ogg")
//	err := vorbis.Loader{}.Load(f, &s)
package vorbis
