// SPDX-License-Identifier: EPL-2.0

package modulation

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Code is a four character code packed big endian, so 'proc' compares the
// way its text does.
type Code uint32

// FourCC packs a four byte ASCII string. It panics on any other length and
// is meant for package level constants; use ParseCode for input.
func FourCC(s string) Code {
	c, err := ParseCode(s)
	if err != nil {
		panic(err)
	}
	return c
}

func ParseCode(s string) (Code, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFourCC, s)
	}
	for i := range 4 {
		if s[i] > 0x7f {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFourCC, s)
		}
	}
	return Code(binary.BigEndian.Uint32([]byte(s))), nil
}

func (c Code) String() string {
	if c == 0 {
		return ""
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(c))
	return strings.TrimRight(string(b[:]), "\x00 ")
}

// Identifier names one endpoint. The zero value is "none".
type Identifier struct {
	Group   Code
	Element Code
	Index   uint32
}

// IsNone reports the "none" row sentinel.
func (id Identifier) IsNone() bool {
	return id.Group == 0
}

// IsSet reports whether id can be bound: both codes must be present.
func (id Identifier) IsSet() bool {
	return id.Group != 0 && id.Element != 0
}

func (id Identifier) String() string {
	if id.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%s/%s/%d", id.Group, id.Element, id.Index)
}

// SourceID names a modulation source.
type SourceID Identifier

// TargetID names a modulation target.
type TargetID Identifier

func NewSourceID(group, element string, index uint32) SourceID {
	return SourceID{Group: FourCC(group), Element: FourCC(element), Index: index}
}

func NewTargetID(group, element string, index uint32) TargetID {
	return TargetID{Group: FourCC(group), Element: FourCC(element), Index: index}
}

func (s SourceID) IsNone() bool   { return Identifier(s).IsNone() }
func (s SourceID) IsSet() bool    { return Identifier(s).IsSet() }
func (s SourceID) String() string { return Identifier(s).String() }
func (t TargetID) IsNone() bool   { return Identifier(t).IsNone() }
func (t TargetID) IsSet() bool    { return Identifier(t).IsSet() }
func (t TargetID) String() string { return Identifier(t).String() }
