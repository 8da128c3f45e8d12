package geom

// Triangle2 is used for orientation tests only.
type Triangle2 struct {
	A, B, C Point2
}

// Cross is (B-A) x (C-A), twice the signed area.
func (t Triangle2) Cross() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Area is the signed area, positive for counter-clockwise vertices.
func (t Triangle2) Area() float64 { return t.Cross() / 2 }

// Colinear reports whether the three vertices lie on one line.
func (t Triangle2) Colinear() bool { return AreEqual(t.Cross(), 0) }

// Valid reports whether the triangle has a non-zero area.
func (t Triangle2) Valid() bool { return !t.Colinear() }

// CCW reports whether the vertices turn counter-clockwise.
func (t Triangle2) CCW() bool { return Greater(t.Cross(), 0) }

// CW reports whether the vertices turn clockwise.
func (t Triangle2) CW() bool { return Less(t.Cross(), 0) }
