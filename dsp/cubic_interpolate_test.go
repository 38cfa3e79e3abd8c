// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{"start is y1", 0, 1, 2, 3, 0, 1},
		{"end is y2", 0, 1, 2, 3, 1, 2},
		{"linear stays linear", 1, 2, 3, 4, 0.25, 2.25},
		{"constant", 0.7, 0.7, 0.7, 0.7, 0.6, 0.7},
		{"symmetric peak", 0, 1, 1, 0, 0.5, 1.125},
		{"impulse", 0, 1, 0, 0, 0.5, 0.5625},
	}
	for _, tt := range tests {
		got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
		if math.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

// A sine read at fractional positions stays close to the true curve.
func TestCubicInterpolate_Sine(t *testing.T) {
	t.Parallel()

	const period = 32
	buf := make([]float32, 4*period)
	for i := range buf {
		buf[i] = float32(math.Sin(2 * math.Pi * float64(i) / period))
	}
	for pos := 1.0; pos < float64(len(buf)-3); pos += 0.37 {
		i := int(pos)
		got := CubicAtFloat32(buf, i, float32(pos-float64(i)))
		want := math.Sin(2 * math.Pi * pos / period)
		if math.Abs(float64(got)-want) > 5e-3 {
			t.Fatalf("at %.2f got %v, want %v", pos, got, want)
		}
	}
}

func TestCubicAtGuardedBuffers(t *testing.T) {
	t.Parallel()

	f32 := []float32{0, 0.25, 0.5, 0.75, 1}
	if got := CubicAtFloat32(f32, 1, 0); got != 0.25 {
		t.Errorf("CubicAtFloat32(x=0) = %v, want 0.25", got)
	}
	if got := CubicAtFloat32(f32, 2, 0.5); math.Abs(float64(got-0.625)) > 1e-6 {
		t.Errorf("CubicAtFloat32(x=0.5) = %v, want 0.625", got)
	}

	i16 := []int16{0, 16384, -16384, 0}
	if got := CubicAtInt16(i16, 1, 0); got != 0.5 {
		t.Errorf("CubicAtInt16(x=0) = %v, want 0.5", got)
	}
	if got := CubicAtInt16(i16, 1, 1); got != -0.5 {
		t.Errorf("CubicAtInt16(x=1) = %v, want -0.5", got)
	}

	allocs := testing.AllocsPerRun(100, func() {
		_ = CubicAtInt16(i16, 1, 0.3) + CubicAtFloat32(f32, 2, 0.3)
	})
	if allocs != 0 {
		t.Errorf("allocs = %v", allocs)
	}
}

func BenchmarkCubicAtInt16(b *testing.B) {
	buf := make([]int16, 1024)
	for i := range buf {
		buf[i] = int16(i * 31)
	}
	var sum float32
	b.ReportAllocs()
	for b.Loop() {
		for i := 1; i < len(buf)-2; i++ {
			sum += CubicAtInt16(buf, i, 0.5)
		}
	}
	_ = sum
}
