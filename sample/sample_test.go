// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/ik5/sampler/internal/audiotest"
)

func TestLoadDataEncodings(t *testing.T) {
	t.Parallel()

	const frames = 256
	src := audiotest.Render(audiotest.Sine(48000, 440, 0.8), frames, 1)

	tests := []struct {
		name      string
		enc       Encoding
		data      []byte
		storage   Storage
		tolerance float64
	}{
		{"u8", U8, audiotest.EncodeU8(src), StorageInt16, 1.0 / 64},
		{"i8", I8, audiotest.EncodeI8(src), StorageInt16, 1.0 / 64},
		{"i16le", I16LE, audiotest.EncodeI16(src, binary.LittleEndian), StorageInt16, 1.0 / 16384},
		{"i16be", I16BE, audiotest.EncodeI16(src, binary.BigEndian), StorageInt16, 1.0 / 16384},
		{"i24le", I24LE, audiotest.EncodeI24(src, false), StorageFloat32, 1e-6},
		{"i24be", I24BE, audiotest.EncodeI24(src, true), StorageFloat32, 1e-6},
		{"i32le", I32LE, audiotest.EncodeI32(src, binary.LittleEndian), StorageFloat32, 1e-6},
		{"i32be", I32BE, audiotest.EncodeI32(src, binary.BigEndian), StorageFloat32, 1e-6},
		{"f32le", F32LE, audiotest.EncodeF32(src, binary.LittleEndian), StorageFloat32, 0},
		{"f32be", F32BE, audiotest.EncodeF32(src, binary.BigEndian), StorageFloat32, 0},
		{"f64le", F64LE, audiotest.EncodeF64(src, binary.LittleEndian), StorageFloat32, 0},
		{"f64be", F64BE, audiotest.EncodeF64(src, binary.BigEndian), StorageFloat32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var s Sample
			if err := s.SetMeta(1, 48000, frames); err != nil {
				t.Fatalf("SetMeta() error = %v", err)
			}
			if err := s.LoadData(0, tt.enc, tt.data, 0); err != nil {
				t.Fatalf("LoadData() error = %v", err)
			}
			if s.Storage() != tt.storage {
				t.Fatalf("Storage() = %v, want %v", s.Storage(), tt.storage)
			}
			if s.SourceEncoding() != tt.enc {
				t.Errorf("SourceEncoding() = %v, want %v", s.SourceEncoding(), tt.enc)
			}

			for i := range frames {
				got := s.Frame(0, i)
				if diff := math.Abs(float64(got - src[i])); diff > tt.tolerance {
					t.Fatalf("frame %d = %v, want %v (diff %v > %v)", i, got, src[i], diff, tt.tolerance)
				}
			}
			assertGuardsZero(t, &s, 0)
		})
	}
}

func assertGuardsZero(t *testing.T, s *Sample, ch int) {
	t.Helper()

	for i := range GuardFrames {
		if v := s.Frame(ch, -GuardFrames+i); v != 0 {
			t.Fatalf("leading guard frame %d = %v, want 0", i, v)
		}
		if v := s.Frame(ch, s.Frames()+i); v != 0 {
			t.Fatalf("trailing guard frame %d = %v, want 0", i, v)
		}
	}

	switch s.Storage() {
	case StorageInt16:
		if n := len(s.Int16Data(ch)); n != s.Frames()+2*GuardFrames {
			t.Fatalf("buffer length = %d, want %d", n, s.Frames()+2*GuardFrames)
		}
	case StorageFloat32:
		if n := len(s.Float32Data(ch)); n != s.Frames()+2*GuardFrames {
			t.Fatalf("buffer length = %d, want %d", n, s.Frames()+2*GuardFrames)
		}
	}
}

func TestLoadData8BitScaling(t *testing.T) {
	t.Parallel()

	var s Sample
	_ = s.SetMeta(1, 8000, 3)
	if err := s.LoadData(0, U8, []byte{0, 128, 255}, 0); err != nil {
		t.Fatal(err)
	}
	want := []int16{-32768, 0, 127 << 8}
	for i, w := range want {
		if got := s.Int16Data(0)[GuardFrames+i]; got != w {
			t.Errorf("u8 frame %d = %d, want %d", i, got, w)
		}
	}

	_ = s.SetMeta(1, 8000, 2)
	if err := s.LoadData(0, I8, []byte{0x80, 0x7f}, 0); err != nil {
		t.Fatal(err)
	}
	if got := s.Int16Data(0)[GuardFrames]; got != -32768 {
		t.Errorf("i8 -128 = %d, want -32768", got)
	}
	if got := s.Int16Data(0)[GuardFrames+1]; got != 127<<8 {
		t.Errorf("i8 127 = %d, want %d", got, 127<<8)
	}
}

func TestLoad24BitBigEndianStereo(t *testing.T) {
	t.Parallel()

	const frames = 1000
	interleaved := audiotest.Render(audiotest.Sine(44100, 1000, 0.5), frames, 2)
	data := audiotest.EncodeI24(interleaved, true)

	var s Sample
	if err := s.SetMeta(2, 44100, frames); err != nil {
		t.Fatal(err)
	}
	for ch := range 2 {
		if err := s.LoadData(ch, I24BE, data[3*ch:], 6); err != nil {
			t.Fatalf("LoadData(%d) error = %v", ch, err)
		}
	}

	if s.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", s.Channels())
	}
	if s.Storage() != StorageFloat32 {
		t.Errorf("Storage() = %v, want float32", s.Storage())
	}
	if diff := math.Abs(float64(s.InvSampleRate()) - 1.0/44100); diff > 1e-9 {
		t.Errorf("InvSampleRate() = %v, want %v", s.InvSampleRate(), 1.0/44100)
	}
	for i := range frames {
		l, r := s.Frame(0, i), s.Frame(1, i)
		if math.Abs(float64(l-interleaved[2*i])) > 1e-6 || math.Abs(float64(r-interleaved[2*i+1])) > 1e-6 {
			t.Fatalf("frame %d = (%v, %v), want (%v, %v)", i, l, r, interleaved[2*i], interleaved[2*i+1])
		}
	}
	assertGuardsZero(t, &s, 0)
	assertGuardsZero(t, &s, 1)
}

func TestLoadDataErrors(t *testing.T) {
	t.Parallel()

	var s Sample
	if err := s.SetMeta(3, 44100, 10); !errors.Is(err, ErrTooManyChannels) {
		t.Errorf("3 channels: got %v, want ErrTooManyChannels", err)
	}
	if err := s.SetMeta(1, 44100, 0); !errors.Is(err, ErrInvalidFrames) {
		t.Errorf("0 frames: got %v, want ErrInvalidFrames", err)
	}

	_ = s.SetMeta(2, 44100, 4)
	if err := s.LoadData(0, I16LE, make([]byte, 7), 0); !errors.Is(err, ErrShortData) {
		t.Errorf("short data: got %v, want ErrShortData", err)
	}
	if err := s.LoadData(2, I16LE, make([]byte, 8), 0); !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("bad channel: got %v, want ErrInvalidChannel", err)
	}
	if err := s.LoadData(0, EncodingUnknown, make([]byte, 8), 0); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("unknown encoding: got %v, want ErrUnknownEncoding", err)
	}
	if err := s.LoadData(0, I32LE, make([]byte, 16), 2); !errors.Is(err, ErrInvalidStride) {
		t.Errorf("small stride: got %v, want ErrInvalidStride", err)
	}

	if err := s.LoadData(0, I16LE, make([]byte, 8), 0); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadData(1, F32LE, make([]byte, 16), 0); !errors.Is(err, ErrMixedStorage) {
		t.Errorf("mixed storage: got %v, want ErrMixedStorage", err)
	}
	if s.Loaded() {
		t.Error("Loaded() = true with one channel missing")
	}
}

func TestSetMetaDiscardsPreviousBuffers(t *testing.T) {
	t.Parallel()

	var s Sample
	_ = s.SetMeta(1, 44100, 4)
	_ = s.LoadFloats(0, []float32{1, 1, 1, 1}, 0, 1)
	if !s.Loaded() {
		t.Fatal("expected loaded sample")
	}

	_ = s.SetMeta(1, 44100, 8)
	if s.Loaded() || s.Storage() != StorageNone {
		t.Error("SetMeta kept data from a previous load")
	}
}

func TestLoadInts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		data     []int
		storage  Storage
		want     []float32
	}{
		{"8-bit", 8, []int{-128, 0, 64}, StorageInt16, []float32{-1, 0, 0.5}},
		{"16-bit", 16, []int{-32768, 16384, 0}, StorageInt16, []float32{-1, 0.5, 0}},
		{"24-bit", 24, []int{-8388608, 4194304, 0}, StorageFloat32, []float32{-1, 0.5, 0}},
		{"32-bit", 32, []int{-2147483648, 1073741824, 0}, StorageFloat32, []float32{-1, 0.5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var s Sample
			_ = s.SetMeta(1, 44100, len(tt.data))
			if err := s.LoadInts(0, tt.data, tt.bitDepth, 0, 1); err != nil {
				t.Fatal(err)
			}
			if s.Storage() != tt.storage {
				t.Fatalf("Storage() = %v, want %v", s.Storage(), tt.storage)
			}
			for i, w := range tt.want {
				if got := s.Frame(0, i); math.Abs(float64(got-w)) > 1e-6 {
					t.Errorf("frame %d = %v, want %v", i, got, w)
				}
			}
		})
	}

	var s Sample
	_ = s.SetMeta(1, 44100, 2)
	if err := s.LoadInts(0, []int{0, 0}, 40, 0, 1); !errors.Is(err, ErrUnsupportedDepth) {
		t.Errorf("40-bit: got %v, want ErrUnsupportedDepth", err)
	}
}

func TestLoadFloatsInterleaved(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	var s Sample
	_ = s.SetMeta(2, 22050, 3)
	for ch := range 2 {
		if err := s.LoadFloats(ch, data, ch, 2); err != nil {
			t.Fatal(err)
		}
	}
	if s.Frame(1, 2) != -0.3 || s.Frame(0, 1) != 0.2 {
		t.Errorf("deinterleave mismatch: %v %v", s.Frame(0, 1), s.Frame(1, 2))
	}
}

func TestAtInterpolates(t *testing.T) {
	t.Parallel()

	var s Sample
	_ = s.SetMeta(1, 44100, 4)
	_ = s.LoadFloats(0, []float32{0, 0.25, 0.5, 0.75}, 0, 1)

	if got := s.At(0, 1, 0); got != 0.25 {
		t.Errorf("At(1, 0) = %v, want 0.25", got)
	}
	if got := s.At(0, 1, 0.5); math.Abs(float64(got-0.375)) > 1e-6 {
		t.Errorf("At(1, 0.5) = %v, want 0.375", got)
	}
	// The last frame interpolates towards the trailing silence.
	if got := s.At(0, 3, 1); got != 0 {
		t.Errorf("At(3, 1) = %v, want 0", got)
	}
}

func BenchmarkLoadData_I24(b *testing.B) {
	const frames = 48000
	data := audiotest.EncodeI24(audiotest.Render(audiotest.Sine(48000, 440, 1), frames, 1), false)
	var s Sample

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_ = s.SetMeta(1, 48000, frames)
		_ = s.LoadData(0, I24LE, data, 0)
	}
}
