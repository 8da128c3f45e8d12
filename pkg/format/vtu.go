package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/chazu/flatmesher/pkg/geom"
	"github.com/chazu/flatmesher/pkg/mesh"
)

// vtkTriangle is the VTK cell type of a linear triangle.
const vtkTriangle = 5

// VTU writes VTK XML unstructured grids for ParaView and friends. It
// cannot read them.
type VTU struct{}

var _ MeshFormatter = VTU{}

func (VTU) Name() string      { return "vtu" }
func (VTU) Extension() string { return ".vtu" }

func (VTU) WriteMesh(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	nt := m.TriangleCount()

	fmt.Fprintf(bw, "<?xml version=\"1.0\"?>\n"+
		"<VTKFile type=\"UnstructuredGrid\" version=\"0.1\">\n"+
		"  <UnstructuredGrid>\n"+
		"    <Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n"+
		"      <Points>\n"+
		"        <DataArray type=\"Float32\" Name=\"points\" NumberOfComponents=\"3\" format=\"ascii\">\n",
		m.NodeCount(), nt)
	for _, n := range m.Nodes() {
		bw.WriteString("          ")
		bw.WriteString(vtuPoint(n))
		bw.WriteByte('\n')
	}

	bw.WriteString("        </DataArray>\n" +
		"      </Points>\n" +
		"      <Cells>\n" +
		"        <DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, t := range m.Triangles(0) {
		bw.WriteString("          ")
		bw.WriteString(t.String())
		bw.WriteByte('\n')
	}

	bw.WriteString("        </DataArray>\n" +
		"        <DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	for i := 1; i <= nt; i++ {
		fmt.Fprintf(bw, "          %d\n", 3*i)
	}

	bw.WriteString("        </DataArray>\n" +
		"        <DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for i := 0; i < nt; i++ {
		fmt.Fprintf(bw, "          %d\n", vtkTriangle)
	}

	bw.WriteString("        </DataArray>\n" +
		"      </Cells>\n" +
		"    </Piece>\n" +
		"  </UnstructuredGrid>\n" +
		"</VTKFile>\n")
	return errors.Wrap(bw.Flush(), "vtu: write")
}

func (VTU) ReadMesh(io.Reader, *mesh.Mesh) error {
	return errors.Wrap(ErrNotSupported, "vtu: read")
}

// vtuPoint prints coordinates with 15 significant digits.
func vtuPoint(p geom.Point3) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', 15, 64) }
	return f(p.X) + " " + f(p.Y) + " " + f(p.Z)
}
