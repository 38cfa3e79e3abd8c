// SPDX-License-Identifier: EPL-2.0

package dsp

// DelayLine is a mono ring buffer with fractional reads. The buffer is
// allocated once by NewDelayLine.
type DelayLine struct {
	buf []float32
	w   int
}

func NewDelayLine(frames int) DelayLine {
	return DelayLine{buf: make([]float32, max(4, frames))}
}

// Len is the capacity in frames.
func (d *DelayLine) Len() int { return len(d.buf) }

func (d *DelayLine) Reset() {
	clear(d.buf)
	d.w = 0
}

func (d *DelayLine) Write(x float32) {
	d.buf[d.w] = x
	d.w++
	if d.w == len(d.buf) {
		d.w = 0
	}
}

// Read returns the sample written delay frames ago, linearly interpolated.
// delay is clamped to [1, Len()-2].
func (d *DelayLine) Read(delay float32) float32 {
	n := len(d.buf)
	delay = Clamp(delay, 1, float32(n-2))
	whole := int(delay)
	frac := delay - float32(whole)

	i0 := d.w - whole
	if i0 < 0 {
		i0 += n
	}
	i1 := i0 - 1
	if i1 < 0 {
		i1 += n
	}
	return d.buf[i0] + frac*(d.buf[i1]-d.buf[i0])
}

// Tap returns the sample written exactly delay frames ago, 1 <= delay <
// Len().
func (d *DelayLine) Tap(delay int) float32 {
	i := d.w - delay
	if i < 0 {
		i += len(d.buf)
	}
	return d.buf[i]
}
