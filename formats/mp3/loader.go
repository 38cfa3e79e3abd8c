// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/sampler/sample"
)

// ErrNoAudio is returned for a stream that decodes to zero frames.
var ErrNoAudio = errors.New("mp3 stream has no audio")

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// go-mp3 always produces 16-bit little endian stereo.
const (
	channels   = 2
	frameBytes = 4
)

// Loader decodes MPEG-1 Layer 3 files into int16 stereo samples.
type Loader struct{}

func (Loader) Load(r io.ReadSeeker, s *sample.Sample) error {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return load(dec, s)
}

func load(dec mp3Reader, s *sample.Sample) error {
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return fmt.Errorf("decoding mp3: %w", err)
	}

	frames := len(pcm) / frameBytes
	if frames == 0 {
		return ErrNoAudio
	}

	if err := s.SetMeta(channels, float32(dec.SampleRate()), frames); err != nil {
		return err
	}
	for ch := range channels {
		if err := s.LoadData(ch, sample.I16LE, pcm[2*ch:], frameBytes); err != nil {
			return err
		}
	}
	return nil
}
