package format

import (
	"bufio"
	"fmt"
	"io"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/pkg/errors"

	"github.com/chazu/flatmesher/pkg/mesh"
)

// STL writes ASCII stereolithography to streams. SaveSTL writes the binary
// variant to a file.
type STL struct{}

var _ MeshFormatter = STL{}

func (STL) Name() string      { return "stl" }
func (STL) Extension() string { return ".stl" }

func (STL) WriteMesh(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("solid flatmesher\n")
	for i, t := range Triangles3(m) {
		n := m.FaceNormal(i)
		fmt.Fprintf(bw, "  facet normal %g %g %g\n    outer loop\n", n.X, n.Y, n.Z)
		for _, v := range t {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		bw.WriteString("    endloop\n  endfacet\n")
	}
	bw.WriteString("endsolid flatmesher\n")
	return errors.Wrap(bw.Flush(), "stl: write")
}

func (STL) ReadMesh(io.Reader, *mesh.Mesh) error {
	return errors.Wrap(ErrNotSupported, "stl: read")
}

// Triangles3 expands m into the sdfx triangle soup.
func Triangles3(m *mesh.Mesh) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, m.TriangleCount())
	for i, t := range m.Triangles(0) {
		out[i] = &sdf.Triangle3{
			m.Node(t.I).Vec(),
			m.Node(t.J).Vec(),
			m.Node(t.K).Vec(),
		}
	}
	return out
}

// SaveSTL writes m to path as binary STL.
func SaveSTL(path string, m *mesh.Mesh) error {
	return errors.Wrapf(render.SaveSTL(path, Triangles3(m)), "stl: save %q", path)
}
