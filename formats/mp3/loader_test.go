// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/sampler/sample"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate   int
	samples      []int16 // interleaved stereo PCM
	offset       int
	returnErrors bool
}

func (m *mockMP3Reader) SampleRate() int {
	return m.sampleRate
}

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	bytesToRead := min(len(buf), (len(m.samples)-m.offset)*2)
	bytesToRead = (bytesToRead / 2) * 2
	samplesToRead := bytesToRead / 2

	for i := range samplesToRead {
		binary.LittleEndian.PutUint16(buf[i*2:i*2+2], uint16(m.samples[m.offset+i]))
	}

	m.offset += samplesToRead

	if m.offset >= len(m.samples) {
		return bytesToRead, io.EOF
	}

	return bytesToRead, nil
}

func TestLoader_InvalidInput(t *testing.T) {
	t.Parallel()

	var s sample.Sample
	if err := (Loader{}).Load(bytes.NewReader([]byte("This is not MP3 data")), &s); err == nil {
		t.Error("Load() of garbage succeeded")
	}
}

func TestLoad_Stereo(t *testing.T) {
	t.Parallel()

	dec := &mockMP3Reader{
		sampleRate: 44100,
		samples:    []int16{1000, -1000, 2000, -2000, 3000, -3000},
	}

	var s sample.Sample
	if err := load(dec, &s); err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if s.Channels() != 2 || s.Frames() != 3 || s.SampleRate() != 44100 {
		t.Fatalf("layout = %d ch, %d frames, %v Hz", s.Channels(), s.Frames(), s.SampleRate())
	}
	if s.Storage() != sample.StorageInt16 {
		t.Errorf("Storage() = %v, want int16", s.Storage())
	}
	for i, want := range []int16{1000, 2000, 3000} {
		if got := s.Int16Data(0)[sample.GuardFrames+i]; got != want {
			t.Errorf("left[%d] = %d, want %d", i, got, want)
		}
		if got := s.Int16Data(1)[sample.GuardFrames+i]; got != -want {
			t.Errorf("right[%d] = %d, want %d", i, got, -want)
		}
	}
}

func TestLoad_VariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 22050, 32000, 44100, 48000} {
		var s sample.Sample
		if err := load(&mockMP3Reader{sampleRate: rate, samples: make([]int16, 64)}, &s); err != nil {
			t.Fatalf("rate %d: %v", rate, err)
		}
		if s.SampleRate() != float32(rate) {
			t.Errorf("SampleRate() = %v, want %d", s.SampleRate(), rate)
		}
	}
}

func TestLoad_LargeStream(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 100000)
	for i := range samples {
		samples[i] = int16(i)
	}

	var s sample.Sample
	if err := load(&mockMP3Reader{sampleRate: 44100, samples: samples}, &s); err != nil {
		t.Fatal(err)
	}
	if s.Frames() != 50000 {
		t.Errorf("Frames() = %d, want 50000", s.Frames())
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	var s sample.Sample
	if err := load(&mockMP3Reader{sampleRate: 44100, returnErrors: true}, &s); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("read error = %v", err)
	}
	if err := load(&mockMP3Reader{sampleRate: 44100}, &s); !errors.Is(err, ErrNoAudio) {
		t.Errorf("empty stream = %v, want ErrNoAudio", err)
	}
}

func BenchmarkLoad(b *testing.B) {
	samples := make([]int16, 44100*2)
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		var s sample.Sample
		_ = load(&mockMP3Reader{sampleRate: 44100, samples: samples}, &s)
	}
}
