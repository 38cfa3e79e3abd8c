// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/sampler/internal/audiotest"
	"github.com/ik5/sampler/sample"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	sampleRate   int
	channels     int
	samples      []int
	offset       int
	returnErrors bool
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	samplesToRead := min(len(buf.Data), len(m.samples)-m.offset)
	copy(buf.Data, m.samples[m.offset:m.offset+samplesToRead])
	m.offset += samplesToRead

	if m.offset >= len(m.samples) {
		return samplesToRead, io.EOF
	}

	return samplesToRead, nil
}

func TestLoader_InvalidInput(t *testing.T) {
	t.Parallel()

	var s sample.Sample
	err := Loader{}.Load(bytes.NewReader([]byte("This is not AIFF data")), &s)
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Load() error = %v, want ErrNotAiffFile", err)
	}
}

func TestLoader_EmptyInput(t *testing.T) {
	t.Parallel()

	var s sample.Sample
	if err := (Loader{}).Load(bytes.NewReader(nil), &s); err == nil {
		t.Error("Load() with empty input succeeded")
	}
}

func TestLoader_File16Bit(t *testing.T) {
	t.Parallel()

	src := audiotest.Render(audiotest.Sine(44100, 440, 0.5), 200, 2)
	data := audiotest.AIFFFile(44100, 2, 16, audiotest.EncodeI16(src, binary.BigEndian))

	var s sample.Sample
	if err := (Loader{}).Load(bytes.NewReader(data), &s); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Channels() != 2 || s.Frames() != 200 || s.SampleRate() != 44100 {
		t.Fatalf("layout = %d ch, %d frames, %v Hz", s.Channels(), s.Frames(), s.SampleRate())
	}
	if s.Storage() != sample.StorageInt16 {
		t.Errorf("Storage() = %v, want int16", s.Storage())
	}
	for i := range 200 {
		if got := s.Frame(1, i); math.Abs(float64(got-src[2*i+1])) > 1e-4 {
			t.Fatalf("frame %d = %v, want %v", i, got, src[2*i+1])
		}
	}
}

func TestLoad_Deinterleaves(t *testing.T) {
	t.Parallel()

	dec := &mockAiffReader{
		sampleRate: 48000,
		channels:   2,
		samples:    []int{100, -100, 200, -200, 300, -300},
	}

	var s sample.Sample
	if err := load(dec, 16, &s); err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if s.Frames() != 3 {
		t.Fatalf("Frames() = %d, want 3", s.Frames())
	}
	if got := s.Int16Data(0)[sample.GuardFrames+2]; got != 300 {
		t.Errorf("left[2] = %d, want 300", got)
	}
	if got := s.Int16Data(1)[sample.GuardFrames+1]; got != -200 {
		t.Errorf("right[1] = %d, want -200", got)
	}
}

func TestLoad_MultipleReads(t *testing.T) {
	t.Parallel()

	samples := make([]int, readChunk*3+17)
	for i := range samples {
		samples[i] = i % 1000
	}
	dec := &mockAiffReader{sampleRate: 22050, channels: 1, samples: samples}

	var s sample.Sample
	if err := load(dec, 16, &s); err != nil {
		t.Fatal(err)
	}
	if s.Frames() != len(samples) {
		t.Errorf("Frames() = %d, want %d", s.Frames(), len(samples))
	}
}

func TestLoad_BitDepthNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		input    int
		expected float32
	}{
		{"8-bit max", 8, 127, 127.0 / 128.0},
		{"8-bit min", 8, -128, -1.0},
		{"16-bit max", 16, 32767, 32767.0 / 32768.0},
		{"16-bit min", 16, -32768, -1.0},
		{"24-bit", 24, 8388607, 8388607.0 / 8388608.0},
		{"32-bit", 32, 2147483647, 2147483647.0 / 2147483648.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dec := &mockAiffReader{sampleRate: 44100, channels: 1, samples: []int{tt.input}}
			var s sample.Sample
			if err := load(dec, tt.bitDepth, &s); err != nil {
				t.Fatal(err)
			}

			tolerance := float32(0.001)
			if got := s.Frame(0, 0); got < tt.expected-tolerance || got > tt.expected+tolerance {
				t.Errorf("frame = %f, want ~%f", got, tt.expected)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	var s sample.Sample
	if err := load(&mockAiffReader{sampleRate: 44100, channels: 1, samples: []int{1}}, 12, &s); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("12-bit: %v", err)
	}
	if err := load(&mockAiffReader{sampleRate: 44100, channels: 1, returnErrors: true}, 16, &s); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("read error: %v", err)
	}
	if err := load(&mockAiffReader{sampleRate: 44100, channels: 1}, 16, &s); !errors.Is(err, ErrUnsupportedAiffLayout) {
		t.Errorf("no data: %v", err)
	}
	if err := load(&mockAiffReader{sampleRate: 44100, channels: 4, samples: make([]int, 8)}, 16, &s); !errors.Is(err, sample.ErrTooManyChannels) {
		t.Errorf("4 channels: %v", err)
	}
}

func BenchmarkLoad(b *testing.B) {
	samples := make([]int, 44100*2)
	for i := range samples {
		samples[i] = (i % 65536) - 32768
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		var s sample.Sample
		_ = load(&mockAiffReader{sampleRate: 44100, channels: 2, samples: samples}, 16, &s)
	}
}
