// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sampler/sample"
	"github.com/jfreymuth/oggvorbis"
)

// ErrNoAudio is returned for a stream that decodes to zero frames.
var ErrNoAudio = errors.New("ogg vorbis stream has no audio")

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

const readChunk = 4096

// Loader decodes Ogg Vorbis files into float32 samples.
type Loader struct{}

func (Loader) Load(r io.ReadSeeker, s *sample.Sample) error {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return load(dec, s)
}

func load(dec oggReader, s *sample.Sample) error {
	channels := dec.Channels()
	if channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrNoAudio, channels)
	}

	// Read takes and returns interleaved values, not frames.
	buf := make([]float32, readChunk*channels)
	var data []float32
	for {
		n, err := dec.Read(buf)
		data = append(data, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("decoding vorbis: %w", err)
		}
		if n == 0 {
			break
		}
	}

	frames := len(data) / channels
	if frames == 0 {
		return ErrNoAudio
	}

	if err := s.SetMeta(channels, float32(dec.SampleRate()), frames); err != nil {
		return err
	}
	for ch := range channels {
		if err := s.LoadFloats(ch, data, ch, channels); err != nil {
			return err
		}
	}
	return nil
}
