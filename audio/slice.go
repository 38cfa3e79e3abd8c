// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// Slice is a Source over interleaved samples already in memory.
type Slice struct {
	rate, channels int
	data           []float32
	pos            int
}

func NewSlice(rate, channels int, data []float32) *Slice {
	return &Slice{rate: rate, channels: max(1, channels), data: data}
}

func (s *Slice) SampleRate() int { return s.rate }
func (s *Slice) Channels() int   { return s.channels }

func (s *Slice) ReadSamples(dst []float32) (int, error) {
	n := len(dst) - len(dst)%s.channels
	n = copy(dst[:n], s.data[s.pos:])
	s.pos += n
	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}
