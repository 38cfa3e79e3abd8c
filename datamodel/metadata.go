// SPDX-License-Identifier: EPL-2.0

package datamodel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnparsable is returned when a display string cannot be turned back into
// a value.
var ErrUnparsable = errors.New("datamodel: cannot parse value")

// Unit tags how a value is displayed.
type Unit int

const (
	UnitNone Unit = iota
	UnitPercent
	UnitDecibel
	UnitSemitones
	UnitSeconds
	UnitHertz
	UnitMIDINote
	UnitInteger
	// UnitEnvelopeTime is a 0..1 value shown as seconds on the envelope
	// time scale, see EnvelopeSeconds.
	UnitEnvelopeTime
	// UnitLog2Hertz is a log2 frequency shown in Hz.
	UnitLog2Hertz
)

const (
	envTimeMinLog2 = -8
	envTimeMaxLog2 = 5
)

// EnvelopeSeconds maps a 0..1 envelope time onto 2^-8..2^5 seconds. Zero is
// zero.
func EnvelopeSeconds(v float32) float32 {
	if v <= 0 {
		return 0
	}
	v = min(v, 1)
	return float32(math.Exp2(envTimeMinLog2 + float64(v)*(envTimeMaxLog2-envTimeMinLog2)))
}

// EnvelopeTimeFromSeconds is the inverse of EnvelopeSeconds.
func EnvelopeTimeFromSeconds(sec float32) float32 {
	if sec <= 0 {
		return 0
	}
	v := (math.Log2(float64(sec)) - envTimeMinLog2) / (envTimeMaxLog2 - envTimeMinLog2)
	return float32(max(0, min(1, v)))
}

var unitSuffix = [...]string{
	UnitNone:      "",
	UnitPercent:   "%",
	UnitDecibel:   "dB",
	UnitSemitones: "semi",
	UnitSeconds:   "s",
	UnitHertz:     "Hz",
	UnitMIDINote:  "",
	UnitInteger:   "",

	UnitEnvelopeTime: "s",
	UnitLog2Hertz:    "Hz",
}

// Metadata describes one float or integer parameter.
type Metadata struct {
	Name         string
	Min, Max     float32
	DefaultValue float32
	Unit         Unit

	// Bipolar marks parameters centred on zero, which a UI draws from the
	// middle.
	Bipolar bool
	// Enabled is false for unused parameter slots.
	Enabled bool
}

func (m Metadata) WithName(name string) Metadata {
	m.Name = name
	return m
}

func (m Metadata) WithRange(lo, hi float32) Metadata {
	m.Min, m.Max = lo, hi
	m.Enabled = true
	return m
}

func (m Metadata) WithDefault(v float32) Metadata {
	m.DefaultValue = v
	return m
}

// AsPercent is a 0..1 value shown as 0..100%.
func (m Metadata) AsPercent() Metadata {
	m = m.WithRange(0, 1)
	m.Unit = UnitPercent
	m.Bipolar = false
	return m
}

// AsPercentBipolar is a -1..1 value shown as -100..100%.
func (m Metadata) AsPercentBipolar() Metadata {
	m = m.WithRange(-1, 1)
	m.Unit = UnitPercent
	m.Bipolar = true
	return m
}

func (m Metadata) AsDecibel() Metadata {
	m = m.WithRange(-96, 12)
	m.Unit = UnitDecibel
	return m
}

// AsSemitoneRange spans ±semis.
func (m Metadata) AsSemitoneRange(semis float32) Metadata {
	m = m.WithRange(-semis, semis)
	m.Unit = UnitSemitones
	m.Bipolar = true
	return m
}

func (m Metadata) AsSeconds(maxSeconds float32) Metadata {
	m = m.WithRange(0, maxSeconds)
	m.Unit = UnitSeconds
	return m
}

// AsAudibleFrequency is a note-scaled frequency: the value is a MIDI note
// offset and the display is in Hz.
func (m Metadata) AsAudibleFrequency() Metadata {
	m = m.WithRange(-60, 70)
	m.Unit = UnitHertz
	return m
}

func (m Metadata) AsMIDINote() Metadata {
	m = m.WithRange(0, 127)
	m.Unit = UnitMIDINote
	return m
}

// AsEnvelopeTime is a 0..1 time on the envelope scale.
func (m Metadata) AsEnvelopeTime() Metadata {
	m = m.WithRange(0, 1)
	m.Unit = UnitEnvelopeTime
	return m
}

// AsLFORate is a log2 rate in Hz, from 1/128 Hz to 512 Hz.
func (m Metadata) AsLFORate() Metadata {
	m = m.WithRange(-7, 9)
	m.Unit = UnitLog2Hertz
	m.Bipolar = true
	return m
}

func (m Metadata) AsInt(lo, hi int) Metadata {
	m = m.WithRange(float32(lo), float32(hi))
	m.Unit = UnitInteger
	return m
}

// Span is Max - Min.
func (m Metadata) Span() float32 {
	return m.Max - m.Min
}

// Clamp limits v to the parameter range.
func (m Metadata) Clamp(v float32) float32 {
	return max(m.Min, min(m.Max, v))
}

// Normalized maps v into 0..1 over the parameter range.
func (m Metadata) Normalized(v float32) float32 {
	if m.Span() == 0 {
		return 0
	}
	return (m.Clamp(v) - m.Min) / m.Span()
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName renders a MIDI note with middle C as C4.
func NoteName(n int) string {
	oct := n/12 - 1
	if n < 0 {
		oct = (n-11)/12 - 1
	}
	pc := ((n % 12) + 12) % 12
	return noteNames[pc] + strconv.Itoa(oct)
}

// ValueToString renders v for display.
func (m Metadata) ValueToString(v float32) string {
	switch m.Unit {
	case UnitPercent:
		return fmt.Sprintf("%.2f %%", v*100)
	case UnitDecibel:
		if v <= -96 {
			return "-inf dB"
		}
		return fmt.Sprintf("%.2f dB", v)
	case UnitHertz:
		hz := 440 * math.Exp2(float64(v)/12)
		if hz >= 1000 {
			return fmt.Sprintf("%.2f kHz", hz/1000)
		}
		return fmt.Sprintf("%.2f Hz", hz)
	case UnitMIDINote:
		return NoteName(int(math.Round(float64(v))))
	case UnitEnvelopeTime:
		sec := EnvelopeSeconds(v)
		if sec < 1 {
			return fmt.Sprintf("%.2f ms", sec*1000)
		}
		return fmt.Sprintf("%.2f s", sec)
	case UnitLog2Hertz:
		return fmt.Sprintf("%.3f Hz", math.Exp2(float64(v)))
	case UnitInteger:
		return strconv.Itoa(int(math.Round(float64(v))))
	case UnitNone:
		return strconv.FormatFloat(float64(v), 'f', 4, 32)
	default:
		return fmt.Sprintf("%.2f %s", v, unitSuffix[m.Unit])
	}
}

// ValueFromString parses a display string. Units are optional and the result
// is clamped to the parameter range.
func (m Metadata) ValueFromString(s string) (float32, error) {
	s = strings.TrimSpace(s)

	switch m.Unit {
	case UnitMIDINote:
		if v, ok := parseNoteName(s); ok {
			return m.Clamp(float32(v)), nil
		}
	case UnitDecibel:
		if strings.HasPrefix(strings.ToLower(s), "-inf") {
			return m.Min, nil
		}
	}

	scale := 1.0
	lower := strings.ToLower(s)
	switch {
	case m.Unit == UnitHertz && strings.HasSuffix(lower, "khz"):
		scale = 1000
		s = s[:len(s)-3]
	case m.Unit == UnitEnvelopeTime && strings.HasSuffix(lower, "ms"):
		scale = 0.001
		s = s[:len(s)-2]
	default:
		if suf := unitSuffix[m.Unit]; suf != "" {
			s = strings.TrimSuffix(s, suf)
			s = strings.TrimSuffix(s, strings.ToLower(suf))
		}
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, s)
	}
	f *= scale

	switch m.Unit {
	case UnitPercent:
		f /= 100
	case UnitHertz:
		if f <= 0 {
			return 0, fmt.Errorf("%w: non-positive frequency", ErrUnparsable)
		}
		f = 12 * math.Log2(f/440)
	case UnitEnvelopeTime:
		f = float64(EnvelopeTimeFromSeconds(float32(f)))
	case UnitLog2Hertz:
		if f <= 0 {
			return 0, fmt.Errorf("%w: non-positive frequency", ErrUnparsable)
		}
		f = math.Log2(f)
	}

	return m.Clamp(float32(f)), nil
}

func parseNoteName(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	upper := strings.ToUpper(s)
	for i := len(noteNames) - 1; i >= 0; i-- {
		name := noteNames[i]
		if !strings.HasPrefix(upper, name) {
			continue
		}
		oct, err := strconv.Atoi(upper[len(name):])
		if err != nil {
			return 0, false
		}
		return (oct+1)*12 + i, true
	}
	return 0, false
}
