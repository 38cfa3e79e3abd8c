// SPDX-License-Identifier: EPL-2.0

// Package formats wires the container loaders into a sample.Registry.
package formats

import (
	"github.com/ik5/sampler/formats/aiff"
	"github.com/ik5/sampler/formats/mp3"
	"github.com/ik5/sampler/formats/vorbis"
	"github.com/ik5/sampler/formats/wav"
	"github.com/ik5/sampler/sample"
)

// NewRegistry returns a registry with every supported format registered
// under the keys sample.DetectFormat produces.
func NewRegistry() *sample.Registry {
	r := sample.NewRegistry()
	r.Register(sample.FormatWAV, wav.Loader{})
	r.Register(sample.FormatAIFF, aiff.Loader{})
	r.Register(sample.FormatMP3, mp3.Loader{})
	r.Register(sample.FormatVorbis, vorbis.Loader{})
	return r
}
