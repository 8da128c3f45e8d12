package geom

import "math"

// Line2 is a directed segment from A to B.
type Line2 struct {
	A, B Point2
}

// Slope returns dy/dx. Vertical segments report vertical=true and a zero
// slope instead of a sentinel value.
func (l Line2) Slope() (m float64, vertical bool) {
	if AreEqual(l.A.X, l.B.X) {
		return 0, true
	}
	return (l.B.Y - l.A.Y) / (l.B.X - l.A.X), false
}

// Length is the distance between the endpoints.
func (l Line2) Length() float64 { return l.A.Distance(l.B) }

// Direction is B-A.
func (l Line2) Direction() Point2 { return l.B.Sub(l.A) }

// Valid reports whether the endpoints are distinct.
func (l Line2) Valid() bool { return !l.A.Equal(l.B) }

// Reversed returns the segment from B to A.
func (l Line2) Reversed() Line2 { return Line2{l.B, l.A} }

// Midpoint is the point halfway between the endpoints.
func (l Line2) Midpoint() Point2 { return l.A.Add(l.B).Scale(0.5) }

// BoundingBox returns the smallest rectangle holding both endpoints.
func (l Line2) BoundingBox() Rectangle {
	return NewRectangle(
		math.Max(l.A.Y, l.B.Y),
		math.Min(l.A.Y, l.B.Y),
		math.Min(l.A.X, l.B.X),
		math.Max(l.A.X, l.B.X),
	)
}

// Contains reports whether p lies on the segment: inside its bounding box
// and at zero distance from its supporting line.
func (l Line2) Contains(p Point2) bool {
	if !l.BoundingBox().Contains(p) {
		return false
	}
	length := l.Length()
	if AreEqual(length, 0) {
		return l.A.Equal(p)
	}
	return AreEqual(l.Direction().Cross(p.Sub(l.A))/length, 0)
}

// Intersects reports whether the two closed segments share a point.
// Collinear segments intersect only when their extents overlap.
func (l Line2) Intersects(o Line2) bool {
	o1 := orientation(l.A, l.B, o.A)
	o2 := orientation(l.A, l.B, o.B)
	o3 := orientation(o.A, o.B, l.A)
	o4 := orientation(o.A, o.B, l.B)

	if o1 == 0 && o2 == 0 {
		return l.BoundingBox().Intersects(o.BoundingBox()) && collinearOverlap(l, o)
	}
	if l.Contains(o.A) || l.Contains(o.B) || o.Contains(l.A) || o.Contains(l.B) {
		return true
	}
	return o1*o2 < 0 && o3*o4 < 0
}

// orientation is the sign of the turn a->b->c, normalised by |ab| so the
// tolerance is a distance.
func orientation(a, b, c Point2) int {
	length := a.Distance(b)
	if AreEqual(length, 0) {
		return 0
	}
	d := Triangle2{a, b, c}.Cross() / length
	switch {
	case Greater(d, 0):
		return 1
	case Less(d, 0):
		return -1
	}
	return 0
}

// collinearOverlap projects o onto l's direction and checks the parameter
// ranges overlap.
func collinearOverlap(l, o Line2) bool {
	dir := l.Direction()
	den := dir.Dot(dir)
	if AreEqual(den, 0) {
		return o.Contains(l.A)
	}
	t0 := o.A.Sub(l.A).Dot(dir) / den
	t1 := o.B.Sub(l.A).Dot(dir) / den
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	tol := DefaultEpsilon / math.Sqrt(den)
	return t1 >= -tol && t0 <= 1+tol
}

// String formats the segment as "a -> b".
func (l Line2) String() string {
	return l.A.String() + " -> " + l.B.String()
}
