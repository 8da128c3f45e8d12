// Package plan models a building floor plan: a counter-clockwise simple
// polygon, a wall height and the triangle size that fixes the pitch of the
// triangulation grid. It validates plans and answers the point location
// queries the mesh generator relies on.
package plan

import (
	"math"
	"sync"

	"github.com/chazu/flatmesher/pkg/geom"
)

// FloorPlan is a closed polygon given in counter-clockwise order. Edge i
// runs from node i to node i+1, the last edge closing back to node 0.
//
// A FloorPlan must not be modified while it is being read concurrently,
// for instance during mesh generation.
type FloorPlan struct {
	nodes        []geom.Point2
	height       float64
	triangleSize float64

	mu  sync.Mutex
	idx *segmentIndex
}

// New builds a plan from a copy of nodes.
func New(nodes []geom.Point2, height, triangleSize float64) *FloorPlan {
	return &FloorPlan{
		nodes:        append([]geom.Point2(nil), nodes...),
		height:       height,
		triangleSize: triangleSize,
	}
}

// Clone returns an independent copy.
func (p *FloorPlan) Clone() *FloorPlan {
	return New(p.nodes, p.height, p.triangleSize)
}

func (p *FloorPlan) Nodes() []geom.Point2   { return append([]geom.Point2(nil), p.nodes...) }
func (p *FloorPlan) Node(i int) geom.Point2 { return p.nodes[i] }
func (p *FloorPlan) Len() int               { return len(p.nodes) }
func (p *FloorPlan) Height() float64        { return p.height }
func (p *FloorPlan) TriangleSize() float64  { return p.triangleSize }

func (p *FloorPlan) SetNodes(nodes []geom.Point2) {
	p.nodes = append([]geom.Point2(nil), nodes...)
	p.invalidate()
}

func (p *FloorPlan) SetHeight(h float64) { p.height = h }

func (p *FloorPlan) SetTriangleSize(ts float64) { p.triangleSize = ts }

// invalidate drops the cached segment index after the outline changed.
func (p *FloorPlan) invalidate() {
	p.mu.Lock()
	p.idx = nil
	p.mu.Unlock()
}

// Segment returns edge i.
func (p *FloorPlan) Segment(i int) geom.Line2 {
	return geom.Line2{A: p.nodes[i], B: p.nodes[(i+1)%len(p.nodes)]}
}

// Segments returns the closed ring of edges.
func (p *FloorPlan) Segments() []geom.Line2 {
	if len(p.nodes) < 2 {
		return nil
	}
	segs := make([]geom.Line2, len(p.nodes))
	for i := range p.nodes {
		segs[i] = p.Segment(i)
	}
	return segs
}

// Equal compares outlines, height and triangle size under tolerance.
func (p *FloorPlan) Equal(o *FloorPlan) bool {
	if len(p.nodes) != len(o.nodes) ||
		!geom.AreEqual(p.height, o.height) ||
		!geom.AreEqual(p.triangleSize, o.triangleSize) {
		return false
	}
	for i := range p.nodes {
		if !p.nodes[i].Equal(o.nodes[i]) {
			return false
		}
	}
	return true
}

// BoundingBox is the axis-aligned extent of the outline.
func (p *FloorPlan) BoundingBox() geom.Rectangle {
	r := geom.EmptyRectangle()
	for _, n := range p.nodes {
		r = r.Expand(n)
	}
	return r
}

// BoundaryLength is the perimeter in grid steps: the number of triangle
// sized columns the walls have in total.
func (p *FloorPlan) BoundaryLength() int {
	if !geom.Greater(p.triangleSize, 0) {
		return 0
	}
	total := 0
	for _, s := range p.Segments() {
		total += int(math.Round(s.Length() / p.triangleSize))
	}
	return total
}

// Area is the signed shoelace area, positive for counter-clockwise plans.
func (p *FloorPlan) Area() float64 {
	a := 0.0
	for _, s := range p.Segments() {
		a += s.A.Cross(s.B)
	}
	return a / 2
}

// PointInside reports whether pt has a non-zero winding number with
// respect to the outline. Points exactly on the outline may go either
// way; use PointInBoundary for those.
func (p *FloorPlan) PointInside(pt geom.Point2) bool {
	wn := 0
	for _, s := range p.Segments() {
		if s.A.Y <= pt.Y {
			if s.B.Y > pt.Y && pt.IsLeft(s) {
				wn++
			}
		} else if s.B.Y <= pt.Y && pt.IsRight(s) {
			wn--
		}
	}
	return wn != 0
}

// PointInBoundary reports whether pt lies on one of the edges.
func (p *FloorPlan) PointInBoundary(pt geom.Point2) bool {
	return len(p.SegmentsAt(pt)) > 0
}

// SegmentsAt returns, in ascending order, the indices of the edges that
// contain pt. A vertex belongs to the two edges meeting at it.
func (p *FloorPlan) SegmentsAt(pt geom.Point2) []int {
	if len(p.nodes) < 2 {
		return nil
	}
	return p.index().containing(pt)
}

// index returns the segment index, building it on first use.
func (p *FloorPlan) index() *segmentIndex {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.idx == nil {
		p.idx = newSegmentIndex(p.Segments())
	}
	return p.idx
}
