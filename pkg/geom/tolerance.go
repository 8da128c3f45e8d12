package geom

import "math"

// DefaultEpsilon absorbs floating point error accumulated while stepping
// the triangulation grid.
const DefaultEpsilon = 1e-5

// Tolerance is an epsilon band for approximate comparisons. Greater, Less
// and AreEqual partition the real line: exactly one of them holds for any
// pair of finite values.
type Tolerance float64

// Eps is the tolerance used by the package-level helpers.
const Eps Tolerance = DefaultEpsilon

// AreEqual reports whether |x-y| < t.
func (t Tolerance) AreEqual(x, y float64) bool {
	return math.Abs(x-y) < float64(t)
}

// Greater reports whether x > y outside the tolerance band.
func (t Tolerance) Greater(x, y float64) bool {
	return x > y && !t.AreEqual(x, y)
}

// Less reports whether x < y outside the tolerance band.
func (t Tolerance) Less(x, y float64) bool {
	return x < y && !t.AreEqual(x, y)
}

// GreaterEqual reports whether x > y or the two are equal within t.
func (t Tolerance) GreaterEqual(x, y float64) bool {
	return x >= y || t.AreEqual(x, y)
}

// LessEqual reports whether x < y or the two are equal within t.
func (t Tolerance) LessEqual(x, y float64) bool {
	return x <= y || t.AreEqual(x, y)
}

// IsInteger reports whether n lies within the tolerance of a whole number.
func (t Tolerance) IsInteger(n float64) bool {
	return math.Abs(math.Round(n)-n) <= float64(t)
}

// AreEqual compares with DefaultEpsilon.
func AreEqual(x, y float64) bool { return Eps.AreEqual(x, y) }

// Greater compares with DefaultEpsilon.
func Greater(x, y float64) bool { return Eps.Greater(x, y) }

// Less compares with DefaultEpsilon.
func Less(x, y float64) bool { return Eps.Less(x, y) }

// GreaterEqual compares with DefaultEpsilon.
func GreaterEqual(x, y float64) bool { return Eps.GreaterEqual(x, y) }

// LessEqual compares with DefaultEpsilon.
func LessEqual(x, y float64) bool { return Eps.LessEqual(x, y) }

// IsInteger checks integrality with DefaultEpsilon.
func IsInteger(n float64) bool { return Eps.IsInteger(n) }
