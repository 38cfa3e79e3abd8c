// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/sampler/sample"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

const readChunk = 4096

// Loader decodes AIFF/AIFC files into a sample.Sample through go-audio/aiff.
type Loader struct{}

func (Loader) Load(r io.ReadSeeker, s *sample.Sample) error {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return ErrNotAiffFile
	}

	dec.ReadInfo()

	return load(dec, int(dec.BitDepth), s)
}

func load(dec aiffReader, bitDepth int, s *sample.Sample) error {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return ErrUnsupportedAiffLayout
	}

	buf := &goaudio.IntBuffer{
		Data:   make([]int, readChunk*format.NumChannels),
		Format: format,
	}

	var data []int
	for {
		n, err := dec.PCMBuffer(buf)
		data = append(data, buf.Data[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("reading aiff data: %w", err)
		}
		if n == 0 {
			break
		}
	}

	channels := format.NumChannels
	frames := len(data) / channels
	if frames == 0 {
		return ErrUnsupportedAiffLayout
	}

	if err := s.SetMeta(channels, float32(format.SampleRate), frames); err != nil {
		return err
	}
	for ch := range channels {
		if err := s.LoadInts(ch, data, bitDepth, ch, channels); err != nil {
			return err
		}
	}
	return nil
}
