// SPDX-License-Identifier: EPL-2.0

package modulation

import (
	"encoding/binary"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/ik5/sampler/datamodel"
)

// GroupProcessor is the group code of processor parameter targets.
var GroupProcessor = FourCC("proc")

// DisplayName is how an endpoint is shown: a path (the owning section,
// e.g. "LFO 1") and a name within it. An empty path or name hides the
// endpoint from menus.
type DisplayName struct {
	Path string
	Name string
}

func (d DisplayName) Empty() bool { return d.Path == "" && d.Name == "" }

type TargetInfo struct {
	ID TargetID
	DisplayName
	Metadata datamodel.Metadata
}

type SourceInfo struct {
	ID SourceID
	DisplayName
}

type CurveInfo struct {
	Curve Curve
	DisplayName
}

// MatrixMetadata describes everything a matrix editor can offer for one
// zone.
type MatrixMetadata struct {
	Sources []SourceInfo
	Targets []TargetInfo
	Curves  []CurveInfo
}

// CurveMetadata lists every curve with its display name.
func CurveMetadata() []CurveInfo {
	out := make([]CurveInfo, 0, len(Curves))
	for _, c := range Curves {
		out = append(out, CurveInfo{Curve: c, DisplayName: DisplayName{Name: c.Name()}})
	}
	return out
}

func identifierHash(id Identifier) uint64 {
	var b [12]byte
	binary.BigEndian.PutUint32(b[0:], uint32(id.Group))
	binary.BigEndian.PutUint32(b[4:], uint32(id.Element))
	binary.BigEndian.PutUint32(b[8:], id.Index)
	return xxhash.Sum64(b[:])
}

func compareDisplay(a, b DisplayName, ha, hb uint64) int {
	if c := strings.Compare(a.Path, b.Path); c != 0 {
		return c
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	switch {
	case ha < hb:
		return -1
	case ha > hb:
		return 1
	}
	return 0
}

// SortTargets orders targets by path, then name, then a stable hash of the
// identifier. Parameters of the same processor slot keep their element
// order instead, so they are listed the way the processor declares them.
func SortTargets(ts []TargetInfo) {
	slices.SortStableFunc(ts, func(a, b TargetInfo) int {
		if a.ID.Group == GroupProcessor && b.ID.Group == GroupProcessor && a.ID.Index == b.ID.Index {
			switch {
			case a.ID.Element < b.ID.Element:
				return -1
			case a.ID.Element > b.ID.Element:
				return 1
			}
			return 0
		}
		return compareDisplay(a.DisplayName, b.DisplayName,
			identifierHash(Identifier(a.ID)), identifierHash(Identifier(b.ID)))
	})
}

// SortSources orders sources by path, then name, then identifier hash.
func SortSources(ss []SourceInfo) {
	slices.SortStableFunc(ss, func(a, b SourceInfo) int {
		return compareDisplay(a.DisplayName, b.DisplayName,
			identifierHash(Identifier(a.ID)), identifierHash(Identifier(b.ID)))
	})
}
