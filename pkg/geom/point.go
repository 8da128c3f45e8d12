package geom

import (
	"fmt"
	"math"
	"strconv"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point2 is a coordinate in the floor plan plane.
type Point2 struct {
	X, Y float64
}

// Add returns p+q.
func (p Point2) Add(q Point2) Point2 { return Point2{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point2) Sub(q Point2) Point2 { return Point2{p.X - q.X, p.Y - q.Y} }

// Scale multiplies both coordinates by k.
func (p Point2) Scale(k float64) Point2 { return Point2{p.X * k, p.Y * k} }

// Div divides both coordinates by k.
func (p Point2) Div(k float64) Point2 { return Point2{p.X / k, p.Y / k} }

// Dot is the scalar product of p and q.
func (p Point2) Dot(q Point2) float64 { return p.X*q.X + p.Y*q.Y }

// Cross is the z component of the cross product of p and q.
func (p Point2) Cross(q Point2) float64 { return p.X*q.Y - p.Y*q.X }

// Distance is the Euclidean distance from p to q.
func (p Point2) Distance(q Point2) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Equal compares both coordinates under DefaultEpsilon.
func (p Point2) Equal(q Point2) bool {
	return AreEqual(p.X, q.X) && AreEqual(p.Y, q.Y)
}

// IsLeft reports whether p lies strictly left of the directed line l.
func (p Point2) IsLeft(l Line2) bool {
	return Greater(Triangle2{l.A, l.B, p}.Cross(), 0)
}

// IsRight reports whether p lies strictly right of the directed line l.
func (p Point2) IsRight(l Line2) bool {
	return Less(Triangle2{l.A, l.B, p}.Cross(), 0)
}

// Vec converts to the sdfx planar vector.
func (p Point2) Vec() v2.Vec { return v2.Vec{X: p.X, Y: p.Y} }

// String formats the point as "x y", the layout used by the plan file.
func (p Point2) String() string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}

// Point3 is a mesh node position.
type Point3 struct {
	X, Y, Z float64
}

// Lift places a planar point at height z.
func Lift(p Point2, z float64) Point3 { return Point3{p.X, p.Y, z} }

// FromVec converts an sdfx vector back to a Point3.
func FromVec(v v3.Vec) Point3 { return Point3{v.X, v.Y, v.Z} }

// Add returns p+q.
func (p Point3) Add(q Point3) Point3 { return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

// Sub returns p-q.
func (p Point3) Sub(q Point3) Point3 { return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Scale multiplies every coordinate by k.
func (p Point3) Scale(k float64) Point3 { return Point3{p.X * k, p.Y * k, p.Z * k} }

// XY drops the z coordinate.
func (p Point3) XY() Point2 { return Point2{p.X, p.Y} }

// Vec converts p to an sdfx vector.
func (p Point3) Vec() v3.Vec { return v3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// Distance is the Euclidean distance from p to q.
func (p Point3) Distance(q Point3) float64 {
	return p.Sub(q).Vec().Length()
}

// Equal compares coordinates within the tolerance.
func (p Point3) Equal(q Point3) bool {
	return AreEqual(p.X, q.X) && AreEqual(p.Y, q.Y) && AreEqual(p.Z, q.Z)
}

// String formats p as "x y z".
func (p Point3) String() string {
	return fmt.Sprintf("%s %s %s", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
}

// formatFloat prints the shortest representation that parses back to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
