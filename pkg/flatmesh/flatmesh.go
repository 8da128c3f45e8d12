// Package flatmesh turns a validated floor plan into one closed triangle
// mesh: a ring of walls around the outline, a ceiling obtained by marching
// a grid over the plan, and a floor mirrored from the ceiling.
package flatmesh

import (
	"io"
	"log"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/flatmesher/pkg/geom"
	"github.com/chazu/flatmesher/pkg/mesh"
	"github.com/chazu/flatmesher/pkg/plan"
)

var (
	// ErrNilPlan is returned when CreateFromPlan is given no plan.
	ErrNilPlan = errors.New("flatmesh: nil floor plan")
	// ErrInvalidPlan is returned, wrapped with the problems found, when the
	// plan does not pass validation.
	ErrInvalidPlan = errors.New("flatmesh: invalid floor plan")
)

// Stats describes the pieces of the last generated mesh.
type Stats struct {
	Walls            int `json:"walls"`
	WallRingNodes    int `json:"wallRingNodes"`
	WallTriangles    int `json:"wallTriangles"`
	CeilingNodes     int `json:"ceilingNodes"`
	BoundaryNodes    int `json:"boundaryNodes"`
	CeilingTriangles int `json:"ceilingTriangles"`
	FloorTriangles   int `json:"floorTriangles"`
}

// InteriorNodes is the number of ceiling nodes that are not shared with the
// walls. The floor has as many.
func (s Stats) InteriorNodes() int { return s.CeilingNodes - s.BoundaryNodes }

// Option configures a FlatMesh.
type Option func(*FlatMesh)

// WithWorkers bounds the number of goroutines used during generation.
// n <= 0 uses GOMAXPROCS; n == 1 generates sequentially.
func WithWorkers(n int) Option {
	return func(f *FlatMesh) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		f.workers = n
	}
}

// WithLogger sets where generation progress is logged.
func WithLogger(l *log.Logger) Option {
	return func(f *FlatMesh) {
		if l != nil {
			f.logger = l
		}
	}
}

// FlatMesh is a mesh generated from a floor plan.
type FlatMesh struct {
	mesh.Mesh

	workers   int
	logger    *log.Logger
	generated bool
	stats     Stats
}

// New returns an empty FlatMesh.
func New(opts ...Option) *FlatMesh {
	f := &FlatMesh{
		workers: runtime.GOMAXPROCS(0),
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Empty reports whether no mesh has been generated.
func (f *FlatMesh) Empty() bool { return !f.generated }

// Stats returns the composition of the last generated mesh.
func (f *FlatMesh) Stats() Stats { return f.stats }

// CreateFromPlan replaces the contents of f with the mesh of p. Any
// previous mesh is cleared first, so on error f is left empty. p is only
// read, and only for the duration of the call.
func (f *FlatMesh) CreateFromPlan(p *plan.FloorPlan) error {
	f.Clear()
	f.generated = false
	f.stats = Stats{}

	if p == nil {
		return ErrNilPlan
	}
	if r := plan.Analyze(p); !r.OK() {
		return errors.Wrapf(ErrInvalidPlan, "%v", r.Err())
	}

	g := newGenerator(p, f.workers)

	walls, ceil, err := g.build()
	if err != nil {
		return err
	}
	nodes, tris, stats, err := g.merge(walls, ceil)
	if err != nil {
		return err
	}

	if dropped := f.SetMesh(nodes, tris); dropped > 0 {
		f.Clear()
		return errors.Errorf("flatmesh: merge produced %d triangles with out of range indices", dropped)
	}
	f.generated = true
	f.stats = stats
	f.logger.Printf("flatmesh: %d walls, %d nodes, %d triangles",
		stats.Walls, f.NodeCount(), f.TriangleCount())
	return nil
}

// generator holds the per-call state shared by the wall, ceiling and merge
// steps. Nothing in it is written after newGenerator returns.
type generator struct {
	plan    *plan.FloorPlan
	workers int

	ts     float64
	nz     int     // vertical grid steps
	levels int     // nodes per wall column, nz+1
	top    float64 // z of the ceiling
}

func newGenerator(p *plan.FloorPlan, workers int) *generator {
	nz := int(math.Round(p.Height() / p.TriangleSize()))
	return &generator{
		plan:    p,
		workers: max(workers, 1),
		ts:      p.TriangleSize(),
		nz:      nz,
		levels:  nz + 1,
		top:     float64(nz) * p.TriangleSize(),
	}
}

// build generates every wall and the ceiling concurrently. Each wall task
// writes only its own slot of walls.
func (g *generator) build() ([]*mesh.Mesh, *ceiling, error) {
	// Build the segment index before the readers start.
	g.plan.SegmentsAt(g.plan.Node(0))

	walls := make([]*mesh.Mesh, g.plan.Len())
	var ceil *ceiling

	var eg errgroup.Group
	eg.SetLimit(g.workers)
	eg.Go(func() error {
		ceil = g.ceiling()
		return nil
	})
	for i := range walls {
		eg.Go(func() error {
			walls[i] = g.wall(g.plan.Segment(i))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return walls, ceil, nil
}

// wall meshes the vertical rectangle standing on seg. Nodes are stored
// column by column from seg.A, bottom to top. The column at seg.B is left
// out: it is the first column of the next wall.
func (g *generator) wall(seg geom.Line2) *mesh.Mesh {
	cols := int(math.Round(seg.Length() / g.ts))
	delta := seg.Direction().Div(float64(cols))

	m := mesh.New()
	for i := 0; i < cols; i++ {
		base := seg.A.Add(delta.Scale(float64(i)))
		for j := 0; j < g.levels; j++ {
			m.AddNode(geom.Lift(base, float64(j)*g.ts))
		}
	}
	for i := 0; i < cols-1; i++ {
		for j := 0; j < g.nz; j++ {
			for _, t := range quad(i*g.levels+j, g.levels, 0) {
				m.AddTriangle(t)
			}
		}
	}
	return m
}

// quad returns the two triangles of the wall cell whose lower left node is
// k, the next column starting levels nodes later. With wrap > 0 the indices
// of the next column are taken modulo wrap, closing the ring of walls.
func quad(k, levels, wrap int) [2]mesh.IndexTriangle {
	right, upRight := k+levels, k+levels+1
	if wrap > 0 {
		right, upRight = right%wrap, upRight%wrap
	}
	return [2]mesh.IndexTriangle{
		{I: k, J: right, K: upRight},
		{I: k, J: upRight, K: k + 1},
	}
}
