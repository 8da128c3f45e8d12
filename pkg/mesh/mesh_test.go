package mesh

import (
	"math"
	"testing"

	"github.com/chazu/flatmesher/pkg/geom"
)

// tetra returns a closed, outward facing tetrahedron.
func tetra() *Mesh {
	m := New()
	m.AddNode(geom.Point3{X: 0, Y: 0, Z: 0})
	m.AddNode(geom.Point3{X: 1, Y: 0, Z: 0})
	m.AddNode(geom.Point3{X: 0, Y: 1, Z: 0})
	m.AddNode(geom.Point3{X: 0, Y: 0, Z: 1})
	m.AddTriangle(IndexTriangle{0, 2, 1})
	m.AddTriangle(IndexTriangle{0, 1, 3})
	m.AddTriangle(IndexTriangle{0, 3, 2})
	m.AddTriangle(IndexTriangle{1, 2, 3})
	return m
}

// ---------------------------------------------------------------------------
// IndexTriangle
// ---------------------------------------------------------------------------

func TestIndexTriangle(t *testing.T) {
	tri := IndexTriangle{1, 2, 3}
	if got := tri.Offset(10); got != (IndexTriangle{11, 12, 13}) {
		t.Errorf("Offset = %v", got)
	}
	if got := tri.Inverted(); got != (IndexTriangle{1, 3, 2}) {
		t.Errorf("Inverted = %v", got)
	}
	if tri != (IndexTriangle{1, 2, 3}) {
		t.Error("Inverted must not modify the receiver")
	}
	tri.InvertRotation()
	if tri != (IndexTriangle{1, 3, 2}) {
		t.Errorf("InvertRotation = %v", tri)
	}
	if tri.MaxIndex() != 3 || tri.MinIndex() != 1 {
		t.Error("Max/MinIndex")
	}
	if tri.String() != "1 3 2" {
		t.Errorf("String = %q", tri.String())
	}
}

// ---------------------------------------------------------------------------
// Mesh
// ---------------------------------------------------------------------------

func TestAddNodeReturnsIndex(t *testing.T) {
	m := New()
	for i := 0; i < 3; i++ {
		if got := m.AddNode(geom.Point3{X: float64(i)}); got != i {
			t.Errorf("AddNode #%d returned %d", i, got)
		}
	}
	if m.NodeCount() != 3 {
		t.Errorf("NodeCount = %d", m.NodeCount())
	}
}

func TestAddTriangleDropsOutOfRange(t *testing.T) {
	m := New()
	m.AddNode(geom.Point3{})
	m.AddNode(geom.Point3{X: 1})
	m.AddNode(geom.Point3{Y: 1})

	tests := []struct {
		name string
		tri  IndexTriangle
		want bool
	}{
		{"in range", IndexTriangle{0, 1, 2}, true},
		{"index equal to count", IndexTriangle{0, 1, 3}, false},
		{"negative", IndexTriangle{-1, 1, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.AddTriangle(tt.tri); got != tt.want {
				t.Errorf("AddTriangle = %v, want %v", got, tt.want)
			}
		})
	}
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", m.TriangleCount())
	}
}

func TestSetMesh(t *testing.T) {
	m := New()
	nodes := []geom.Point3{{}, {X: 1}, {Y: 1}}
	dropped := m.SetMesh(nodes, []IndexTriangle{{0, 1, 2}, {0, 1, 5}})
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	nodes[0].X = 42
	if m.Node(0).X != 0 {
		t.Error("SetMesh must copy the node slice")
	}
}

func TestTrianglesOffset(t *testing.T) {
	m := tetra()
	got := m.Triangles(4)
	if got[0] != (IndexTriangle{4, 6, 5}) {
		t.Errorf("Triangles(4)[0] = %v", got[0])
	}
	got[0] = IndexTriangle{}
	if m.Triangle(0) != (IndexTriangle{0, 2, 1}) {
		t.Error("Triangles must return a copy")
	}
}

func TestMoveAndInvert(t *testing.T) {
	m := tetra()
	m.Move(1, 2, -3)
	if m.Node(3) != (geom.Point3{X: 1, Y: 2, Z: -2}) {
		t.Errorf("moved node = %v", m.Node(3))
	}
	m.Invert()
	if m.Triangle(0) != (IndexTriangle{0, 1, 2}) {
		t.Errorf("inverted triangle = %v", m.Triangle(0))
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := tetra()
	c := m.Clone()
	c.Move(1, 0, 0)
	c.Invert()
	if m.Node(0).X != 0 || m.Triangle(0) != (IndexTriangle{0, 2, 1}) {
		t.Error("Clone shares storage with the original")
	}
	if !m.Equal(tetra()) || m.Equal(c) {
		t.Error("Equal")
	}
}

func TestClearAndEmpty(t *testing.T) {
	m := tetra()
	if m.IsEmpty() {
		t.Fatal("tetra should not be empty")
	}
	m.Clear()
	if !m.IsEmpty() || m.TriangleCount() != 0 {
		t.Error("Clear should empty the mesh")
	}
}

func TestBoundingBox(t *testing.T) {
	m := tetra()
	m.Move(-1, 0, 2)
	lo, hi := m.BoundingBox()
	if lo != (geom.Point3{X: -1, Y: 0, Z: 2}) || hi != (geom.Point3{X: 0, Y: 1, Z: 3}) {
		t.Errorf("BoundingBox = %v %v", lo, hi)
	}
}

// ---------------------------------------------------------------------------
// Buffers
// ---------------------------------------------------------------------------

func TestToBuffers(t *testing.T) {
	m := New()
	m.AddNode(geom.Point3{})
	m.AddNode(geom.Point3{X: 1})
	m.AddNode(geom.Point3{X: 1, Y: 1})
	m.AddNode(geom.Point3{Y: 1})
	m.AddTriangle(IndexTriangle{0, 1, 2})
	m.AddTriangle(IndexTriangle{0, 2, 3})

	b := ToBuffers(m, "quad")
	if b.VertexCount() != 4 || b.TriangleCount() != 2 || b.IsEmpty() {
		t.Fatalf("counts: %d vertices, %d triangles", b.VertexCount(), b.TriangleCount())
	}
	if b.Name != "quad" {
		t.Errorf("Name = %q", b.Name)
	}
	for i := 0; i < b.VertexCount(); i++ {
		nz := b.Normals[i*3+2]
		if math.Abs(float64(nz)-1) > 1e-6 {
			t.Errorf("vertex %d normal z = %v, want 1", i, nz)
		}
	}
}

func TestFaceNormal(t *testing.T) {
	m := tetra()
	n := m.FaceNormal(0)
	if math.Abs(n.Z+1) > 1e-12 {
		t.Errorf("bottom face normal = %v, want -Z", n)
	}
}

// ---------------------------------------------------------------------------
// Topology
// ---------------------------------------------------------------------------

func TestAnalyzeClosedTetra(t *testing.T) {
	top := Analyze(tetra())
	if !top.Closed() {
		t.Fatalf("tetra should be closed: %s", top)
	}
	if top.Edges != 6 || top.EulerCharacteristic() != 2 {
		t.Errorf("topology = %s", top)
	}
	if top.DuplicateNodes != 0 || top.Degenerate != 0 {
		t.Errorf("topology = %s", top)
	}
}

func TestAnalyzeDefects(t *testing.T) {
	t.Run("open", func(t *testing.T) {
		m := tetra()
		tris := m.Triangles(0)[:3]
		m.SetMesh(m.Nodes(), tris)
		top := Analyze(m)
		if top.Closed() || top.BoundaryEdges != 3 {
			t.Errorf("topology = %s", top)
		}
	})
	t.Run("misoriented", func(t *testing.T) {
		m := tetra()
		tris := m.Triangles(0)
		tris[3].InvertRotation()
		m.SetMesh(m.Nodes(), tris)
		top := Analyze(m)
		if top.Closed() || top.MisorientedEdges != 3 {
			t.Errorf("topology = %s", top)
		}
	})
	t.Run("duplicate node", func(t *testing.T) {
		m := tetra()
		m.AddNode(geom.Point3{X: 1e-7})
		if got := Analyze(m).DuplicateNodes; got != 1 {
			t.Errorf("DuplicateNodes = %d, want 1", got)
		}
	})
}
