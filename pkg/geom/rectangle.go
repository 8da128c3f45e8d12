package geom

import "math"

// Rectangle is an axis-aligned box with the Y axis pointing up, so Top is
// never below Bottom for a valid rectangle.
type Rectangle struct {
	Top, Bottom, Left, Right float64
}

// NewRectangle builds a rectangle from its four sides.
func NewRectangle(top, bottom, left, right float64) Rectangle {
	return Rectangle{Top: top, Bottom: bottom, Left: left, Right: right}
}

// EmptyRectangle is the identity for Expand.
func EmptyRectangle() Rectangle {
	return Rectangle{
		Top:    math.Inf(-1),
		Bottom: math.Inf(1),
		Left:   math.Inf(1),
		Right:  math.Inf(-1),
	}
}

// Expand grows r to include p.
func (r Rectangle) Expand(p Point2) Rectangle {
	return Rectangle{
		Top:    math.Max(r.Top, p.Y),
		Bottom: math.Min(r.Bottom, p.Y),
		Left:   math.Min(r.Left, p.X),
		Right:  math.Max(r.Right, p.X),
	}
}

// Valid reports whether the rectangle encloses at least one point.
func (r Rectangle) Valid() bool {
	return GreaterEqual(r.Top, r.Bottom) && GreaterEqual(r.Right, r.Left)
}

// Width is the horizontal extent.
func (r Rectangle) Width() float64 { return r.Right - r.Left }

// Height is the vertical extent.
func (r Rectangle) Height() float64 { return r.Top - r.Bottom }

// TopLeft returns the upper left corner.
func (r Rectangle) TopLeft() Point2 { return Point2{r.Left, r.Top} }

// TopRight returns the upper right corner.
func (r Rectangle) TopRight() Point2 { return Point2{r.Right, r.Top} }

// LowerLeft returns the lower left corner.
func (r Rectangle) LowerLeft() Point2 { return Point2{r.Left, r.Bottom} }

// LowerRight returns the lower right corner.
func (r Rectangle) LowerRight() Point2 { return Point2{r.Right, r.Bottom} }

// Contains includes the border, within tolerance.
func (r Rectangle) Contains(p Point2) bool {
	return GreaterEqual(p.X, r.Left) && LessEqual(p.X, r.Right) &&
		GreaterEqual(p.Y, r.Bottom) && LessEqual(p.Y, r.Top)
}

// Intersects reports whether the rectangles overlap or touch.
func (r Rectangle) Intersects(o Rectangle) bool {
	return LessEqual(r.Left, o.Right) && GreaterEqual(r.Right, o.Left) &&
		LessEqual(r.Bottom, o.Top) && GreaterEqual(r.Top, o.Bottom)
}
