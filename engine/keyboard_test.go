// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"testing"
)

func TestKeyboardRangeIncludes(t *testing.T) {
	t.Parallel()

	k := KeyboardRange{KeyStart: 48, KeyEnd: 60}
	tests := []struct {
		key  int
		want bool
	}{
		{47, false},
		{48, true},
		{54, true},
		{60, true},
		{61, false},
	}
	for _, tt := range tests {
		if got := k.Includes(tt.key); got != tt.want {
			t.Errorf("Includes(%d) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestFadeAmplitude(t *testing.T) {
	t.Parallel()

	k := KeyboardRange{KeyStart: 40, KeyEnd: 60, FadeStart: 3, FadeEnd: 1}
	tests := []struct {
		key  int
		want float32
	}{
		{39, 0},
		{40, 0.25},
		{41, 0.5},
		{42, 0.75},
		{43, 1},
		{59, 1},
		{60, 0.5},
		{61, 0},
	}
	for _, tt := range tests {
		if got := k.FadeAmplitude(tt.key); got != tt.want {
			t.Errorf("FadeAmplitude(%d) = %v, want %v", tt.key, got, tt.want)
		}
	}

	if got := DefaultVelocityRange().FadeAmplitude(0); got != 1 {
		t.Errorf("unfaded velocity 0 = %v, want 1", got)
	}
}

func TestRangeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"default keys", DefaultKeyboardRange().Validate(), nil},
		{"inverted keys", KeyboardRange{KeyStart: 61, KeyEnd: 60}.Validate(), ErrInvalidKeyRange},
		{"key past 127", KeyboardRange{KeyStart: 0, KeyEnd: 128}.Validate(), ErrInvalidKeyRange},
		{"fades overlap", KeyboardRange{KeyStart: 60, KeyEnd: 63, FadeStart: 3, FadeEnd: 2}.Validate(), ErrInvalidKeyRange},
		{"single key", KeyboardRange{KeyStart: 60, KeyEnd: 60}.Validate(), nil},
		{"default velocity", DefaultVelocityRange().Validate(), nil},
		{"negative velocity", VelocityRange{VelStart: -1, VelEnd: 10}.Validate(), ErrInvalidVelocityRange},
		{"negative fade", VelocityRange{VelStart: 0, VelEnd: 10, FadeEnd: -1}.Validate(), ErrInvalidVelocityRange},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.want) || (tt.want == nil && tt.err != nil) {
			t.Errorf("%s: got %v, want %v", tt.name, tt.err, tt.want)
		}
	}
}
