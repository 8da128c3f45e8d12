// Package mesh holds indexed triangle meshes: a node array plus index
// triples into it, with the bookkeeping needed to concatenate, translate
// and flip pieces of a surface.
package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	"github.com/samber/lo"

	"github.com/chazu/flatmesher/pkg/geom"
)

// Mesh owns its nodes and triangles. Every triangle index is smaller than
// the node count; additions that would break this are dropped.
type Mesh struct {
	nodes     []geom.Point3
	triangles []IndexTriangle
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// AddNode appends p and returns its index.
func (m *Mesh) AddNode(p geom.Point3) int {
	m.nodes = append(m.nodes, p)
	return len(m.nodes) - 1
}

// AddTriangle appends t if all of its indices address existing nodes and
// reports whether it was kept.
func (m *Mesh) AddTriangle(t IndexTriangle) bool {
	if !m.inRange(t) {
		return false
	}
	m.triangles = append(m.triangles, t)
	return true
}

func (m *Mesh) inRange(t IndexTriangle) bool {
	return t.MinIndex() >= 0 && t.MaxIndex() < len(m.nodes)
}

// SetMesh replaces the contents with copies of nodes and tris, dropping any
// triangle that does not fit the new node array. It returns the number of
// dropped triangles.
func (m *Mesh) SetMesh(nodes []geom.Point3, tris []IndexTriangle) int {
	m.nodes = append(m.nodes[:0:0], nodes...)
	m.triangles = lo.Filter(tris, func(t IndexTriangle, _ int) bool {
		return m.inRange(t)
	})
	return len(tris) - len(m.triangles)
}

// Nodes returns a copy of the node array.
func (m *Mesh) Nodes() []geom.Point3 {
	return append([]geom.Point3(nil), m.nodes...)
}

func (m *Mesh) Node(i int) geom.Point3 { return m.nodes[i] }

// Triangles returns a copy of the triangles with every index shifted by
// offset, ready to append after offset other nodes.
func (m *Mesh) Triangles(offset int) []IndexTriangle {
	return lo.Map(m.triangles, func(t IndexTriangle, _ int) IndexTriangle {
		return t.Offset(offset)
	})
}

func (m *Mesh) Triangle(i int) IndexTriangle { return m.triangles[i] }
func (m *Mesh) NodeCount() int               { return len(m.nodes) }
func (m *Mesh) TriangleCount() int           { return len(m.triangles) }
func (m *Mesh) IsEmpty() bool                { return len(m.nodes) == 0 }

// Move translates every node.
func (m *Mesh) Move(dx, dy, dz float64) {
	d := geom.Point3{X: dx, Y: dy, Z: dz}
	for i := range m.nodes {
		m.nodes[i] = m.nodes[i].Add(d)
	}
}

// Invert flips the winding of every triangle.
func (m *Mesh) Invert() {
	for i := range m.triangles {
		m.triangles[i].InvertRotation()
	}
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		nodes:     m.Nodes(),
		triangles: m.Triangles(0),
	}
}

// Clear drops all nodes and triangles.
func (m *Mesh) Clear() {
	m.nodes = nil
	m.triangles = nil
}

// BoundingBox returns the axis-aligned extent of the nodes. An empty mesh
// reports two zero points.
func (m *Mesh) BoundingBox() (minP, maxP geom.Point3) {
	if len(m.nodes) == 0 {
		return geom.Point3{}, geom.Point3{}
	}
	box := sdf.Box3{Min: m.nodes[0].Vec(), Max: m.nodes[0].Vec()}
	for _, p := range m.nodes[1:] {
		box = box.Include(p.Vec())
	}
	return geom.FromVec(box.Min), geom.FromVec(box.Max)
}

// Equal reports whether both meshes have the same triangles and nodes
// equal under the geometry tolerance.
func (m *Mesh) Equal(o *Mesh) bool {
	if len(m.nodes) != len(o.nodes) || len(m.triangles) != len(o.triangles) {
		return false
	}
	for i := range m.nodes {
		if !m.nodes[i].Equal(o.nodes[i]) {
			return false
		}
	}
	for i := range m.triangles {
		if m.triangles[i] != o.triangles[i] {
			return false
		}
	}
	return true
}
