package plan

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/chazu/flatmesher/pkg/geom"
)

// ErrIndexOutOfRange is returned by the editing operations.
var ErrIndexOutOfRange = errors.New("node index out of range")

func (p *FloorPlan) checkIndex(i, limit int) error {
	if i < 0 || i >= limit {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, plan has %d nodes", i, len(p.nodes))
	}
	return nil
}

// AppendNode adds pt after the last node, so it becomes part of the
// closing edge.
func (p *FloorPlan) AppendNode(pt geom.Point2) {
	p.nodes = append(p.nodes, pt)
	p.invalidate()
}

// InsertNode inserts pt before node i. i may equal Len() to append.
func (p *FloorPlan) InsertNode(i int, pt geom.Point2) error {
	if err := p.checkIndex(i, len(p.nodes)+1); err != nil {
		return err
	}
	p.nodes = slices.Insert(p.nodes, i, pt)
	p.invalidate()
	return nil
}

// RemoveNode deletes node i.
func (p *FloorPlan) RemoveNode(i int) error {
	if err := p.checkIndex(i, len(p.nodes)); err != nil {
		return err
	}
	p.nodes = slices.Delete(p.nodes, i, i+1)
	p.invalidate()
	return nil
}

// RemoveNodes deletes several nodes at once. Duplicate indices are ignored.
func (p *FloorPlan) RemoveNodes(indices []int) error {
	for _, i := range indices {
		if err := p.checkIndex(i, len(p.nodes)); err != nil {
			return err
		}
	}
	drop := lo.SliceToMap(indices, func(i int) (int, struct{}) { return i, struct{}{} })
	p.nodes = lo.Reject(p.nodes, func(_ geom.Point2, i int) bool {
		_, ok := drop[i]
		return ok
	})
	p.invalidate()
	return nil
}

// MoveNodes translates the given nodes by offset.
func (p *FloorPlan) MoveNodes(indices []int, offset geom.Point2) error {
	for _, i := range indices {
		if err := p.checkIndex(i, len(p.nodes)); err != nil {
			return err
		}
	}
	for _, i := range lo.Uniq(indices) {
		p.nodes[i] = p.nodes[i].Add(offset)
	}
	p.invalidate()
	return nil
}

// SplitSegment inserts the midpoint of edge i, between node i and node
// i+1.
func (p *FloorPlan) SplitSegment(i int) error {
	if err := p.checkIndex(i, len(p.nodes)); err != nil {
		return err
	}
	if len(p.nodes) < 2 {
		return errors.Errorf("cannot split an edge of a plan with %d nodes", len(p.nodes))
	}
	mid := p.Segment(i).Midpoint()
	p.nodes = slices.Insert(p.nodes, i+1, mid)
	p.invalidate()
	return nil
}

// Reverse inverts the node order, turning a clockwise outline into a
// counter-clockwise one. Node 0 stays first.
func (p *FloorPlan) Reverse() {
	if len(p.nodes) > 1 {
		slices.Reverse(p.nodes[1:])
	}
	p.invalidate()
}
