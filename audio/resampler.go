// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sampler/dsp"
)

const readChunkFrames = 1024

// Resampler streams src at another sample rate, keeping its channel count.
type Resampler struct {
	src      Source
	rate     int
	channels int
	step     float64

	// window[1] and window[2] straddle the output position; ahead counts
	// the real frames from window[1] on, the rest repeat the last one.
	window [4][]float32
	ahead  int
	frac   float64
	primed bool

	in        []float32
	inPos     int
	inLen     int
	srcErr    error
	lowpass   []float32
	lowpassed bool
}

func NewResampler(src Source, rate int) *Resampler {
	ch := max(1, src.Channels())
	r := &Resampler{
		src:      src,
		rate:     rate,
		channels: ch,
		in:       make([]float32, readChunkFrames*ch),
		lowpass:  make([]float32, ch),
	}
	if rate > 0 {
		r.step = float64(src.SampleRate()) / float64(rate)
	}
	r.lowpassed = r.step > 1
	for i := range r.window {
		r.window[i] = make([]float32, ch)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }

// pull copies the next source frame into dst.
func (r *Resampler) pull(dst []float32) bool {
	for r.inPos >= r.inLen {
		if r.srcErr != nil {
			return false
		}
		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		r.srcErr = err
	}
	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowpassed {
		for c, x := range dst {
			r.lowpass[c] += 0.5 * (x - r.lowpass[c])
			dst[c] = r.lowpass[c]
		}
	}
	return true
}

func (r *Resampler) prime() {
	r.primed = true
	if !r.pull(r.window[1]) {
		return
	}
	if r.lowpassed {
		copy(r.lowpass, r.window[1])
	}
	copy(r.window[0], r.window[1])
	r.ahead = 1
	for i := 2; i < len(r.window); i++ {
		if r.pull(r.window[i]) {
			r.ahead++
		} else {
			copy(r.window[i], r.window[i-1])
		}
	}
}

func (r *Resampler) shift() {
	w := &r.window
	w[0], w[1], w[2], w[3] = w[1], w[2], w[3], w[0]
	r.ahead--
	if r.pull(w[3]) {
		r.ahead++
	} else {
		copy(w[3], w[2])
	}
}

// ReadSamples fills dst with frames at the output rate. dst must hold whole
// frames.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.rate <= 0 || r.step <= 0 {
		return 0, fmt.Errorf("%w: %d from %d", ErrInvalidRate, r.rate, r.src.SampleRate())
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		r.prime()
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for r.frac >= 1 && r.ahead > 0 {
			r.frac--
			r.shift()
		}
		if r.ahead <= 0 {
			return written * r.channels, r.endErr()
		}

		x := float32(r.frac)
		out := dst[written*r.channels:]
		for c := range r.channels {
			out[c] = dsp.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}
		written++
		r.frac += r.step
	}
	return written * r.channels, nil
}

func (r *Resampler) endErr() error {
	if r.srcErr == nil || errors.Is(r.srcErr, io.EOF) {
		return io.EOF
	}
	return fmt.Errorf("resample: %w", r.srcErr)
}
