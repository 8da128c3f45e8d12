package flatmesh

import "github.com/chazu/flatmesher/pkg/mesh"

// Part is a named run of consecutive triangles in a generated mesh.
type Part struct {
	Name  string
	First int
	Count int
}

// Parts splits the generated triangles into walls, ceiling and floor, in
// the order they are stored. It returns nil before a mesh is generated.
func (f *FlatMesh) Parts() []Part {
	if !f.generated {
		return nil
	}
	s := f.stats
	return []Part{
		{Name: "walls", First: 0, Count: s.WallTriangles},
		{Name: "ceiling", First: s.WallTriangles, Count: s.CeilingTriangles},
		{Name: "floor", First: s.WallTriangles + s.CeilingTriangles, Count: s.FloorTriangles},
	}
}

// PartMesh returns a mesh holding every node of f but only the triangles
// of p.
func (f *FlatMesh) PartMesh(p Part) *mesh.Mesh {
	m := mesh.New()
	m.SetMesh(f.Nodes(), f.Triangles(0)[p.First:p.First+p.Count])
	return m
}
