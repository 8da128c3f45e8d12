package format

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/chazu/flatmesher/pkg/geom"
	"github.com/chazu/flatmesher/pkg/mesh"
)

// Bemgen is the plain text mesh layout read by the BEMGEN solver: spatial
// dimension and nodes per element (both 3), the node count and one "x y z"
// line per node, then the triangle count and one "i j k" line per
// triangle.
type Bemgen struct{}

var _ MeshFormatter = Bemgen{}

func (Bemgen) Name() string      { return "bemgen" }
func (Bemgen) Extension() string { return ".bemgen" }

func (Bemgen) WriteMesh(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("3\n3\n\n")
	bw.WriteString(strconv.Itoa(m.NodeCount()))
	bw.WriteByte('\n')
	for _, n := range m.Nodes() {
		bw.WriteString(n.String())
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	bw.WriteString(strconv.Itoa(m.TriangleCount()))
	for _, t := range m.Triangles(0) {
		bw.WriteByte('\n')
		bw.WriteString(t.String())
	}
	return errors.Wrap(bw.Flush(), "bemgen: write")
}

func (Bemgen) ReadMesh(r io.Reader, m *mesh.Mesh) error {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	pos := 0
	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", errors.Wrap(err, "bemgen: read")
			}
			return "", errors.Wrapf(ErrMalformed, "bemgen: token %d: missing %s", pos+1, what)
		}
		pos++
		return sc.Text(), nil
	}
	count := func(what string) (int, error) {
		s, err := next(what)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, errors.Wrapf(ErrMalformed, "bemgen: token %d: invalid %s %q", pos, what, s)
		}
		return n, nil
	}
	float := func(what string) (float64, error) {
		s, err := next(what)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrMalformed, "bemgen: token %d: invalid %s %q", pos, what, s)
		}
		return v, nil
	}

	dim, err := count("spatial dimension")
	if err != nil {
		return err
	}
	perElem, err := count("nodes per element")
	if err != nil {
		return err
	}
	if dim != 3 || perElem != 3 {
		return errors.Wrapf(ErrMalformed, "bemgen: expected 3 dimensions and 3 nodes per element, got %d and %d", dim, perElem)
	}

	nn, err := count("node count")
	if err != nil {
		return err
	}
	nodes := make([]geom.Point3, 0, min(nn, 1<<20))
	for i := 0; i < nn; i++ {
		var c [3]float64
		for k := range c {
			if c[k], err = float("coordinate"); err != nil {
				return err
			}
		}
		nodes = append(nodes, geom.Point3{X: c[0], Y: c[1], Z: c[2]})
	}

	nt, err := count("triangle count")
	if err != nil {
		return err
	}
	tris := make([]mesh.IndexTriangle, 0, min(nt, 1<<20))
	for i := 0; i < nt; i++ {
		var c [3]int
		for k := range c {
			if c[k], err = count("node index"); err != nil {
				return err
			}
		}
		tris = append(tris, mesh.IndexTriangle{I: c[0], J: c[1], K: c[2]})
	}

	m.SetMesh(nodes, tris)
	return nil
}
