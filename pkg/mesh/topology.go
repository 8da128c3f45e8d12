package mesh

import (
	"fmt"
	"sort"

	"github.com/chazu/flatmesher/pkg/geom"
)

// Topology summarises how the triangles of a mesh fit together.
type Topology struct {
	Vertices int
	Edges    int
	Faces    int

	// BoundaryEdges are used by a single triangle.
	BoundaryEdges int
	// NonManifoldEdges are used by more than two triangles.
	NonManifoldEdges int
	// MisorientedEdges are directed edges used twice in the same direction,
	// meaning two neighbours disagree about which side is out.
	MisorientedEdges int
	OutOfRange       int
	DuplicateNodes   int
	Degenerate       int
}

// EulerCharacteristic is V - E + F. A closed genus-0 surface gives 2.
func (t Topology) EulerCharacteristic() int {
	return t.Vertices - t.Edges + t.Faces
}

// Closed reports whether the mesh is a watertight, consistently oriented
// 2-manifold.
func (t Topology) Closed() bool {
	return t.Faces > 0 && t.BoundaryEdges == 0 && t.NonManifoldEdges == 0 &&
		t.MisorientedEdges == 0 && t.OutOfRange == 0
}

func (t Topology) String() string {
	return fmt.Sprintf("V=%d E=%d F=%d chi=%d boundary=%d non-manifold=%d misoriented=%d duplicates=%d",
		t.Vertices, t.Edges, t.Faces, t.EulerCharacteristic(),
		t.BoundaryEdges, t.NonManifoldEdges, t.MisorientedEdges, t.DuplicateNodes)
}

type edgeKey struct{ a, b int }

// Analyze inspects the edge structure of m.
func Analyze(m *Mesh) Topology {
	top := Topology{Vertices: len(m.nodes), Faces: len(m.triangles)}

	directed := make(map[edgeKey]int, len(m.triangles)*3)
	undirected := make(map[edgeKey]int, len(m.triangles)*3/2)
	for i, t := range m.triangles {
		if !m.inRange(t) {
			top.OutOfRange++
			continue
		}
		if m.FaceNormal(i).Length() == 0 {
			top.Degenerate++
		}
		idx := t.Indices()
		for k := 0; k < 3; k++ {
			a, b := idx[k], idx[(k+1)%3]
			directed[edgeKey{a, b}]++
			if a > b {
				a, b = b, a
			}
			undirected[edgeKey{a, b}]++
		}
	}

	top.Edges = len(undirected)
	for _, n := range undirected {
		switch {
		case n == 1:
			top.BoundaryEdges++
		case n > 2:
			top.NonManifoldEdges++
		}
	}
	for _, n := range directed {
		if n > 1 {
			top.MisorientedEdges++
		}
	}
	top.DuplicateNodes = countDuplicates(m.nodes)
	return top
}

// countDuplicates counts nodes equal, under tolerance, to an earlier node.
// Nodes are sorted by X so only a narrow window has to be compared.
func countDuplicates(nodes []geom.Point3) int {
	order := make([]int, len(nodes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return nodes[order[i]].X < nodes[order[j]].X })

	dup := 0
	for i := range order {
		p := nodes[order[i]]
		for j := i + 1; j < len(order); j++ {
			q := nodes[order[j]]
			if !geom.AreEqual(p.X, q.X) {
				break
			}
			if p.Equal(q) {
				dup++
				break
			}
		}
	}
	return dup
}
