package format

import (
	"github.com/pkg/errors"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/entity"

	"github.com/chazu/flatmesher/pkg/mesh"
	"github.com/chazu/flatmesher/pkg/plan"
)

const (
	outlineLayer = "Outline"
	meshLayer    = "Mesh"
)

// SavePlanDXF draws the plan outline as a closed polyline and, when m is
// not nil, the edges of its triangles as lines on a separate layer.
func SavePlanDXF(path string, p *plan.FloorPlan, m *mesh.Mesh) error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	if _, err := d.AddLayer(outlineLayer, color.Red, dxf.DefaultLineType, true); err != nil {
		return errors.Wrap(err, "dxf: outline layer")
	}
	nodes := p.Nodes()
	lwp := entity.NewLwPolyline(len(nodes) + 1)
	for i, n := range nodes {
		lwp.Vertices[i] = []float64{n.X, n.Y}
	}
	if len(nodes) > 0 {
		lwp.Vertices[len(nodes)] = []float64{nodes[0].X, nodes[0].Y}
	}
	d.AddEntity(lwp)

	if m != nil {
		if _, err := d.AddLayer(meshLayer, color.Blue, dxf.DefaultLineType, true); err != nil {
			return errors.Wrap(err, "dxf: mesh layer")
		}
		seen := make(map[[2]int]bool, m.TriangleCount()*3/2)
		for _, t := range m.Triangles(0) {
			idx := t.Indices()
			for k := 0; k < 3; k++ {
				a, b := idx[k], idx[(k+1)%3]
				if a > b {
					a, b = b, a
				}
				if seen[[2]int{a, b}] {
					continue
				}
				seen[[2]int{a, b}] = true
				pa, pb := m.Node(a), m.Node(b)
				if _, err := d.Line(pa.X, pa.Y, pa.Z, pb.X, pb.Y, pb.Z); err != nil {
					return errors.Wrap(err, "dxf: line")
				}
			}
		}
	}

	return errors.Wrapf(d.SaveAs(path), "dxf: save %q", path)
}
