package flatmesh

import (
	"math"

	"github.com/chazu/flatmesher/pkg/geom"
	"github.com/chazu/flatmesher/pkg/mesh"
)

// outside marks a grid point that is not part of the ceiling.
const outside = -1

// ceiling is the ceiling mesh plus the indices, ascending, of its nodes
// that lie on the outline and therefore already exist in the wall ring.
type ceiling struct {
	mesh     *mesh.Mesh
	boundary []int
}

// ceiling marches a grid of pitch ts over the bounding box of the plan,
// row by row from the lower left corner. A grid point is kept when it is
// inside the outline or on it. Each cell is triangulated from the
// classification of its four corners and its centre.
func (g *generator) ceiling() *ceiling {
	box := g.plan.BoundingBox()
	cols := int(math.Round(box.Width() / g.ts))
	rows := int(math.Round(box.Height() / g.ts))
	origin := box.LowerLeft()

	c := &ceiling{mesh: mesh.New()}
	at := func(col, row int) geom.Point2 {
		return origin.Add(geom.Point2{X: float64(col) * g.ts, Y: float64(row) * g.ts})
	}
	addRow := func(row int) []int {
		idx := make([]int, cols+1)
		for col := range idx {
			p := at(col, row)
			in, onEdge := g.classify(p)
			if !in {
				idx[col] = outside
				continue
			}
			idx[col] = c.mesh.AddNode(geom.Lift(p, g.top))
			if onEdge {
				c.boundary = append(c.boundary, idx[col])
			}
		}
		return idx
	}

	half := geom.Point2{X: g.ts / 2, Y: g.ts / 2}
	prev := addRow(0)
	for row := 1; row <= rows; row++ {
		cur := addRow(row)
		for col := 1; col <= cols; col++ {
			if in, _ := g.classify(at(col, row).Sub(half)); !in {
				continue
			}
			c.addCell(prev[col-1], prev[col], cur[col], cur[col-1])
		}
		prev = cur
	}
	return c
}

// classify reports whether p belongs to the ceiling and whether it lies on
// the outline.
func (g *generator) classify(p geom.Point2) (in, onEdge bool) {
	onEdge = g.plan.PointInBoundary(p)
	return onEdge || g.plan.PointInside(p), onEdge
}

// addCell triangulates a cell whose centre is inside the plan, given the
// node indices of its corners: a lower left, b lower right, c upper right,
// d upper left. All triangles are counter-clockwise seen from above.
func (c *ceiling) addCell(a, b, cc, d int) {
	add := func(i, j, k int) {
		c.mesh.AddTriangle(mesh.IndexTriangle{I: i, J: j, K: k})
	}
	in := func(i int) bool { return i != outside }

	switch {
	case in(a):
		if in(b) && in(cc) {
			add(a, b, cc)
		}
		if in(cc) && in(d) {
			add(a, cc, d)
		}
		if !in(cc) && in(b) && in(d) {
			add(a, b, d)
		}
	case in(b) && in(cc) && in(d):
		add(b, cc, d)
	}
}
