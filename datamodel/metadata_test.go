// SPDX-License-Identifier: EPL-2.0

package datamodel

import (
	"errors"
	"math"
	"testing"
)

func TestBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		md       Metadata
		min, max float32
		bipolar  bool
	}{
		{"percent", Metadata{}.AsPercent(), 0, 1, false},
		{"bipolar percent", Metadata{}.AsPercentBipolar(), -1, 1, true},
		{"semitones", Metadata{}.AsSemitoneRange(24), -24, 24, true},
		{"midi note", Metadata{}.AsMIDINote(), 0, 127, false},
		{"seconds", Metadata{}.AsSeconds(10), 0, 10, false},
		{"int", Metadata{}.AsInt(1, 8), 1, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.md.Min != tt.min || tt.md.Max != tt.max {
				t.Errorf("range = [%v, %v], want [%v, %v]", tt.md.Min, tt.md.Max, tt.min, tt.max)
			}
			if tt.md.Bipolar != tt.bipolar {
				t.Errorf("bipolar = %v, want %v", tt.md.Bipolar, tt.bipolar)
			}
			if !tt.md.Enabled {
				t.Error("builder should enable the parameter")
			}
		})
	}
}

func TestBuildersDoNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := Metadata{}.AsPercent().WithName("Mix")
	named := base.WithName("Other")
	if base.Name != "Mix" || named.Name != "Other" {
		t.Errorf("WithName mutated receiver: %q / %q", base.Name, named.Name)
	}
}

func TestValueStringRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		md      Metadata
		value   float32
		display string
	}{
		{"percent", Metadata{}.AsPercent(), 0.5, "50.00 %"},
		{"decibel", Metadata{}.AsDecibel(), -6, "-6.00 dB"},
		{"semitones", Metadata{}.AsSemitoneRange(12), 7, "7.00 semi"},
		{"frequency", Metadata{}.AsAudibleFrequency(), 0, "440.00 Hz"},
		{"kilohertz", Metadata{}.AsAudibleFrequency(), 12, "880.00 Hz"},
		{"note", Metadata{}.AsMIDINote(), 60, "C4"},
		{"sharp note", Metadata{}.AsMIDINote(), 61, "C#4"},
		{"int", Metadata{}.AsInt(0, 16), 3, "3"},
		{"short envelope time", Metadata{}.AsEnvelopeTime(), 0.5, "353.55 ms"},
		{"long envelope time", Metadata{}.AsEnvelopeTime(), 1, "32.00 s"},
		{"lfo rate", Metadata{}.AsLFORate(), 0, "1.000 Hz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.md.ValueToString(tt.value)
			if got != tt.display {
				t.Fatalf("ValueToString(%v) = %q, want %q", tt.value, got, tt.display)
			}
			back, err := tt.md.ValueFromString(got)
			if err != nil {
				t.Fatalf("ValueFromString(%q) error: %v", got, err)
			}
			if math.Abs(float64(back-tt.value)) > 0.01 {
				t.Errorf("ValueFromString(%q) = %v, want %v", got, back, tt.value)
			}
		})
	}
}

func TestValueFromStringEdgeCases(t *testing.T) {
	t.Parallel()

	db := Metadata{}.AsDecibel()
	if v, err := db.ValueFromString("-inf dB"); err != nil || v != db.Min {
		t.Errorf("-inf = %v, %v", v, err)
	}
	if v, _ := db.ValueFromString("100"); v != db.Max {
		t.Errorf("out of range value not clamped: %v", v)
	}
	if _, err := db.ValueFromString("loud"); !errors.Is(err, ErrUnparsable) {
		t.Errorf("expected ErrUnparsable, got %v", err)
	}

	hz := Metadata{}.AsAudibleFrequency()
	v, err := hz.ValueFromString("1.76 kHz")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(float64(v-24)) > 0.01 {
		t.Errorf("1.76 kHz = %v semitones, want ~24", v)
	}
}

func TestNormalized(t *testing.T) {
	t.Parallel()

	md := Metadata{}.AsPercentBipolar()
	if got := md.Normalized(0); got != 0.5 {
		t.Errorf("Normalized(0) = %v, want 0.5", got)
	}
	if got := (Metadata{}).Normalized(3); got != 0 {
		t.Errorf("zero span Normalized = %v, want 0", got)
	}
}

func TestEnvelopeSeconds(t *testing.T) {
	t.Parallel()

	if got := EnvelopeSeconds(0); got != 0 {
		t.Errorf("EnvelopeSeconds(0) = %v, want 0", got)
	}
	if got := EnvelopeSeconds(1); got != 32 {
		t.Errorf("EnvelopeSeconds(1) = %v, want 32", got)
	}
	if got := EnvelopeSeconds(2); got != 32 {
		t.Errorf("EnvelopeSeconds clamps above 1, got %v", got)
	}
	for _, v := range []float32{0.1, 0.25, 0.8} {
		back := EnvelopeTimeFromSeconds(EnvelopeSeconds(v))
		if math.Abs(float64(back-v)) > 1e-5 {
			t.Errorf("round trip %v -> %v", v, back)
		}
	}
}
