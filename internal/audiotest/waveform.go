// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds synthetic audio for tests: waveforms, raw PCM in
// every supported encoding and minimal WAV/AIFF containers.
package audiotest

import "math"

// Waveform generates the value of frame i on channel ch.
type Waveform func(i, ch int) float32

// Sine is a sine at freq Hz. Channel 1 is phase inverted so stereo channels
// can be told apart.
func Sine(sampleRate int, freq float64, amp float32) Waveform {
	return func(i, ch int) float32 {
		t := float64(i) / float64(sampleRate)
		v := amp * float32(math.Sin(2*math.Pi*freq*t))
		if ch == 1 {
			return -v
		}
		return v
	}
}

// Constant returns value on every frame and channel.
func Constant(value float32) Waveform {
	return func(int, int) float32 { return value }
}

// Silence is Constant(0).
func Silence() Waveform {
	return Constant(0)
}

// Ramp rises linearly from -1 to just under 1 over frames.
func Ramp(frames int) Waveform {
	return func(i, _ int) float32 {
		return -1 + 2*float32(i)/float32(frames)
	}
}

// Render evaluates wf into interleaved frames.
func Render(wf Waveform, frames, channels int) []float32 {
	out := make([]float32, frames*channels)
	for i := range frames {
		for ch := range channels {
			out[i*channels+ch] = wf(i, ch)
		}
	}
	return out
}

// Deinterleave splits interleaved values into per-channel slices.
func Deinterleave(data []float32, channels int) [][]float32 {
	frames := len(data) / channels
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
		for i := range frames {
			out[ch][i] = data[i*channels+ch]
		}
	}
	return out
}
