// SPDX-License-Identifier: EPL-2.0

package audio

// Source is a stream of interleaved float32 frames.
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels per frame.
	Channels() int
	// ReadSamples fills dst with whole frames and returns the number of
	// float32 values written, not frames. io.EOF marks the end; it may come
	// with the final values.
	ReadSamples(dst []float32) (n int, err error)
}
