// SPDX-License-Identifier: EPL-2.0

package modulation

// Curve reshapes a source value before depth is applied.
type Curve int

const (
	CurveNone Curve = iota
	CurveSquare
	CurveCube
	CurveUniToBi
	CurveBiToUni
	CurveAbs
	CurveNegate
)

// Curves lists every curve in display order.
var Curves = [...]Curve{CurveNone, CurveSquare, CurveCube, CurveUniToBi, CurveBiToUni, CurveAbs, CurveNegate}

var curveNames = [...]string{
	CurveNone:    "-",
	CurveSquare:  "x^2",
	CurveCube:    "x^3",
	CurveUniToBi: "Uni->Bi",
	CurveBiToUni: "Bi->Uni",
	CurveAbs:     "Abs",
	CurveNegate:  "Negate",
}

func (c Curve) Name() string {
	if c < 0 || int(c) >= len(curveNames) {
		return "?"
	}
	return curveNames[c]
}

// Apply maps x through the curve. Unknown curves pass x through.
func (c Curve) Apply(x float32) float32 {
	switch c {
	case CurveSquare:
		return x * x
	case CurveCube:
		return x * x * x
	case CurveUniToBi:
		return 2*x - 1
	case CurveBiToUni:
		return (x + 1) * 0.5
	case CurveAbs:
		if x < 0 {
			return -x
		}
		return x
	case CurveNegate:
		return -x
	default:
		return x
	}
}
