// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sampler/dsp"
)

// ReadAll drains src, reading bufSize values at a time.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	bufSize = max(bufSize, src.Channels())
	bufSize -= bufSize % max(1, src.Channels())
	buf := make([]float32, bufSize)

	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("read samples: %w", err)
		}
	}
}

// ReadAll16 is ReadAll converted to clamped 16 bit PCM.
func ReadAll16(src Source, bufSize int) ([]int16, error) {
	f, err := ReadAll(src, bufSize)
	pcm := make([]int16, len(f))
	dsp.Float32ToInt16Block(pcm, f)
	return pcm, err
}
