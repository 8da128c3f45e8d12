package flatmesh

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/flatmesher/pkg/geom"
	"github.com/chazu/flatmesher/pkg/mesh"
)

// rewriteChunk is the number of triangles one rewrite task handles.
const rewriteChunk = 4096

// translation maps ceiling-local node indices to indices in the merged
// mesh. It is built once and only read afterwards.
type translation struct {
	// wall maps a boundary node to the bottom node of the wall column it
	// coincides with.
	wall     map[int]int
	boundary []int
	levels   int

	ceilingOffset int
	floorOffset   int
}

// compact is the position of a non-boundary node once the boundary nodes
// before it have been removed.
func (t *translation) compact(local int) int {
	return local - sort.SearchInts(t.boundary, local)
}

func (t *translation) ceilingIndex(local int) int {
	if w, ok := t.wall[local]; ok {
		return w + t.levels - 1
	}
	return t.ceilingOffset + t.compact(local)
}

func (t *translation) floorIndex(local int) int {
	if w, ok := t.wall[local]; ok {
		return w
	}
	return t.floorOffset + t.compact(local)
}

// merge joins the walls into a ring, stitches the seams between them, and
// adds the ceiling and the floor without duplicating the nodes they share
// with the walls.
func (g *generator) merge(walls []*mesh.Mesh, ceil *ceiling) ([]geom.Point3, []mesh.IndexTriangle, Stats, error) {
	stats := Stats{
		Walls:         len(walls),
		CeilingNodes:  ceil.mesh.NodeCount(),
		BoundaryNodes: len(ceil.boundary),
	}

	starts := make([]int, len(walls))
	total := 0
	for i, w := range walls {
		starts[i] = total
		total += w.NodeCount()
	}
	stats.WallRingNodes = total
	if total == 0 {
		return nil, nil, Stats{}, errors.New("flatmesh: walls have no nodes")
	}

	interior := ceil.mesh.NodeCount() - len(ceil.boundary)
	nodes := make([]geom.Point3, 0, total+2*interior)
	var tris []mesh.IndexTriangle

	// Wall ring: each wall's last column is stitched to the first column of
	// the next one, wrapping around at the end.
	acc := 0
	for _, w := range walls {
		nodes = append(nodes, w.Nodes()...)
		tris = append(tris, w.Triangles(acc)...)
		acc += w.NodeCount()
		for j := 0; j < g.nz; j++ {
			q := quad(acc-g.levels+j, g.levels, total)
			tris = append(tris, q[:]...)
		}
	}
	stats.WallTriangles = len(tris)

	tr, err := g.translation(ceil, starts, total)
	if err != nil {
		return nil, nil, Stats{}, err
	}
	tr.ceilingOffset = total
	tr.floorOffset = total + interior

	// Interior nodes: ceiling first, then the floor below it.
	floor := ceil.mesh.Clone()
	floor.Move(0, 0, -g.top)
	floor.Invert()
	for _, src := range []*mesh.Mesh{ceil.mesh, floor} {
		bi := 0
		for i := 0; i < src.NodeCount(); i++ {
			if bi < len(tr.boundary) && tr.boundary[bi] == i {
				bi++
				continue
			}
			nodes = append(nodes, src.Node(i))
		}
	}

	ceilTris := ceil.mesh.Triangles(0)
	floorTris := floor.Triangles(0)
	stats.CeilingTriangles = len(ceilTris)
	stats.FloorTriangles = len(floorTris)

	base := len(tris)
	tris = append(tris, make([]mesh.IndexTriangle, len(ceilTris)+len(floorTris))...)
	if err := g.rewrite(tris[base:base+len(ceilTris)], ceilTris, tr.ceilingIndex,
		tris[base+len(ceilTris):], floorTris, tr.floorIndex); err != nil {
		return nil, nil, Stats{}, err
	}
	return nodes, tris, stats, nil
}

// translation locates, for every ceiling boundary node, the wall column it
// lies on: the edge containing it and its distance from the edge start in
// grid steps.
func (g *generator) translation(ceil *ceiling, starts []int, total int) (*translation, error) {
	tr := &translation{
		wall:     make(map[int]int, len(ceil.boundary)),
		boundary: ceil.boundary,
		levels:   g.levels,
	}
	for _, b := range ceil.boundary {
		p := ceil.mesh.Node(b).XY()
		edges := g.plan.SegmentsAt(p)
		if len(edges) == 0 {
			return nil, errors.Errorf("flatmesh: boundary node %d at (%s) lies on no wall", b, p)
		}
		e := edges[0]
		col := int(math.Round(g.plan.Node(e).Distance(p) / g.ts))
		tr.wall[b] = (starts[e] + col*g.levels) % total
	}
	return tr, nil
}

// rewrite maps the ceiling and floor triangles through their index
// functions into the pre-sized output slices, in parallel chunks. Every
// task writes a disjoint range.
func (g *generator) rewrite(
	ceilOut, ceilIn []mesh.IndexTriangle, ceilIndex func(int) int,
	floorOut, floorIn []mesh.IndexTriangle, floorIndex func(int) int,
) error {
	var eg errgroup.Group
	eg.SetLimit(g.workers)

	schedule := func(out, in []mesh.IndexTriangle, index func(int) int) {
		for lo := 0; lo < len(in); lo += rewriteChunk {
			hi := min(lo+rewriteChunk, len(in))
			eg.Go(func() error {
				for i := lo; i < hi; i++ {
					t := in[i]
					out[i] = mesh.IndexTriangle{I: index(t.I), J: index(t.J), K: index(t.K)}
				}
				return nil
			})
		}
	}
	schedule(ceilOut, ceilIn, ceilIndex)
	schedule(floorOut, floorIn, floorIndex)
	return eg.Wait()
}
