package plan

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/chazu/flatmesher/pkg/geom"
)

// segmentEntry is an outline edge stored in the R-tree.
type segmentEntry struct {
	i    int
	seg  geom.Line2
	rect rtreego.Rect
}

func (e *segmentEntry) Bounds() rtreego.Rect { return e.rect }

var _ rtreego.Spatial = (*segmentEntry)(nil)

// segmentIndex answers "which edges are near this box" without scanning
// the whole outline. It is immutable once built.
type segmentIndex struct {
	tree    *rtreego.Rtree
	entries []*segmentEntry
}

func newSegmentIndex(segs []geom.Line2) *segmentIndex {
	idx := &segmentIndex{entries: make([]*segmentEntry, len(segs))}
	objs := make([]rtreego.Spatial, len(segs))
	for i, s := range segs {
		e := &segmentEntry{i: i, seg: s, rect: toRect(s.BoundingBox())}
		idx.entries[i] = e
		objs[i] = e
	}
	idx.tree = rtreego.NewTree(2, 4, 16, objs...)
	return idx
}

// toRect converts r to an R-tree rectangle padded by the geometry
// tolerance, so that axis-aligned edges get a non-zero extent.
func toRect(r geom.Rectangle) rtreego.Rect {
	pad := geom.DefaultEpsilon
	origin := rtreego.Point{r.Left - pad, r.Bottom - pad}
	rect, err := rtreego.NewRect(origin, []float64{r.Width() + 2*pad, r.Height() + 2*pad})
	if err != nil {
		// Only reachable for NaN coordinates, which never match anything.
		return rtreego.Point{0, 0}.ToRect(pad)
	}
	return rect
}

// near returns the indices of the edges whose padded bounding boxes
// overlap r, in ascending order.
func (s *segmentIndex) near(r geom.Rectangle) []int {
	hits := s.tree.SearchIntersect(toRect(r))
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*segmentEntry).i)
	}
	sort.Ints(out)
	return out
}

// containing returns the edges that contain pt, in ascending order.
func (s *segmentIndex) containing(pt geom.Point2) []int {
	var out []int
	for _, i := range s.near(geom.NewRectangle(pt.Y, pt.Y, pt.X, pt.X)) {
		if s.entries[i].seg.Contains(pt) {
			out = append(out, i)
		}
	}
	return out
}

// crossingCandidates returns the pairs (i, j), i < j, of edges whose
// bounding boxes overlap, ordered by i then j.
func (s *segmentIndex) crossingCandidates() [][2]int {
	var pairs [][2]int
	for i, e := range s.entries {
		for _, j := range s.near(e.seg.BoundingBox()) {
			if j > i {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
