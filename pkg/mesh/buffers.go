package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Buffers is a triangle mesh laid out for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Buffers struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`
}

func (b *Buffers) VertexCount() int   { return len(b.Vertices) / 3 }
func (b *Buffers) TriangleCount() int { return len(b.Indices) / 3 }
func (b *Buffers) IsEmpty() bool      { return len(b.Vertices) == 0 }

// ToBuffers flattens m. Vertex normals are the area-weighted average of the
// normals of the incident triangles.
func ToBuffers(m *Mesh, name string) *Buffers {
	b := &Buffers{
		Vertices: make([]float32, 0, len(m.nodes)*3),
		Normals:  make([]float32, 0, len(m.nodes)*3),
		Indices:  make([]uint32, 0, len(m.triangles)*3),
		Name:     name,
	}

	acc := make([]v3.Vec, len(m.nodes))
	for _, t := range m.triangles {
		n := faceNormal(m, t)
		acc[t.I] = acc[t.I].Add(n)
		acc[t.J] = acc[t.J].Add(n)
		acc[t.K] = acc[t.K].Add(n)
		b.Indices = append(b.Indices, uint32(t.I), uint32(t.J), uint32(t.K))
	}

	for i, p := range m.nodes {
		b.Vertices = append(b.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		n := acc[i]
		if n.Length() > 1e-12 {
			n = n.Normalize()
		}
		b.Normals = append(b.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	return b
}

// faceNormal is the unnormalised normal of t; its length is twice the
// triangle area.
func faceNormal(m *Mesh, t IndexTriangle) v3.Vec {
	a := m.nodes[t.I].Vec()
	e1 := m.nodes[t.J].Vec().Sub(a)
	e2 := m.nodes[t.K].Vec().Sub(a)
	return e1.Cross(e2)
}

// FaceNormal returns the unit normal of triangle i, or the zero vector for
// a degenerate triangle.
func (m *Mesh) FaceNormal(i int) v3.Vec {
	n := faceNormal(m, m.triangles[i])
	if n.Length() <= 1e-12 {
		return v3.Vec{}
	}
	return n.Normalize()
}
