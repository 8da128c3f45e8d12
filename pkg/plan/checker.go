package plan

import (
	"math"

	"github.com/chazu/flatmesher/pkg/geom"
)

// ErrorChecker is notified as validation proceeds. Phase methods announce
// the next group of checks. Violation methods receive the offending data
// and return true to abort the validation immediately or false to keep
// collecting.
type ErrorChecker interface {
	CheckBasicProperties()
	CheckSegmentsProperties()
	CheckPointsOrder()
	CheckRepeatedPoints()
	CheckSegmentsIntersections()

	InsufficientNodes(n int) bool
	InvalidTriangleSize(size float64) bool
	InvalidHeight(height float64) bool
	InvalidSegmentLength(seg geom.Line2) bool
	InvalidSegmentSlope(seg geom.Line2) bool
	NotCCWOrder() bool
	RepeatedPoint(p geom.Point2) bool
	IntersectingSegments(a, b geom.Line2) bool
}

// NopPhases provides no-op phase notifications for checkers that only care
// about violations.
type NopPhases struct{}

func (NopPhases) CheckBasicProperties()       {}
func (NopPhases) CheckSegmentsProperties()    {}
func (NopPhases) CheckPointsOrder()           {}
func (NopPhases) CheckRepeatedPoints()        {}
func (NopPhases) CheckSegmentsIntersections() {}

// AbortChecker stops at the first violation.
type AbortChecker struct {
	NopPhases
}

func (AbortChecker) InsufficientNodes(int) bool                 { return true }
func (AbortChecker) InvalidTriangleSize(float64) bool           { return true }
func (AbortChecker) InvalidHeight(float64) bool                 { return true }
func (AbortChecker) InvalidSegmentLength(geom.Line2) bool       { return true }
func (AbortChecker) InvalidSegmentSlope(geom.Line2) bool        { return true }
func (AbortChecker) NotCCWOrder() bool                          { return true }
func (AbortChecker) RepeatedPoint(geom.Point2) bool             { return true }
func (AbortChecker) IntersectingSegments(_, _ geom.Line2) bool { return true }

var _ ErrorChecker = AbortChecker{}

// Valid reports whether the plan passes every check.
func (p *FloorPlan) Valid() bool {
	return p.CheckErrors(AbortChecker{})
}

// CheckErrors runs the checks phase by phase, reporting to c. It returns
// false if c aborted, or if the basic properties are broken: the later
// phases divide by the triangle size and walk the edges, so they are
// skipped in that case.
func (p *FloorPlan) CheckErrors(c ErrorChecker) bool {
	c.CheckBasicProperties()
	ok, abort := p.checkBasicProperties(c)
	if abort || !ok {
		return false
	}

	c.CheckSegmentsProperties()
	if p.checkSegmentsProperties(c) {
		return false
	}

	c.CheckPointsOrder()
	if p.checkPointsOrder(c) {
		return false
	}

	c.CheckRepeatedPoints()
	if p.checkRepeatedPoints(c) {
		return false
	}

	c.CheckSegmentsIntersections()
	return !p.checkSegmentsIntersections(c)
}

// checkBasicProperties reports whether the plan is sound enough for the
// remaining phases, and whether c asked to abort.
func (p *FloorPlan) checkBasicProperties(c ErrorChecker) (ok, abort bool) {
	ok = true
	if len(p.nodes) < 3 {
		ok = false
		if c.InsufficientNodes(len(p.nodes)) {
			return false, true
		}
	}

	ts := p.triangleSize
	if !geom.Greater(ts, 0) || math.IsInf(ts, 0) || math.IsNaN(ts) {
		ok = false
		if c.InvalidTriangleSize(ts) {
			return false, true
		}
		// The height check divides by the triangle size.
		return ok, false
	}

	if !geom.Greater(p.height, 0) || !geom.IsInteger(p.height/ts) || math.Round(p.height/ts) < 1 {
		ok = false
		if c.InvalidHeight(p.height) {
			return false, true
		}
	}
	return ok, false
}

func (p *FloorPlan) checkSegmentsProperties(c ErrorChecker) bool {
	ts := p.triangleSize
	for _, s := range p.Segments() {
		// Every wall needs at least one column of cells.
		if n := s.Length() / ts; !geom.IsInteger(n) || math.Round(n) < 1 {
			if c.InvalidSegmentLength(s) {
				return true
			}
		}
		if m, vertical := s.Slope(); !vertical && !geom.IsInteger(m/ts) {
			if c.InvalidSegmentSlope(s) {
				return true
			}
		}
	}
	return false
}

// checkPointsOrder uses the edge sum of (bx-ax)(ay+by), which is negative
// exactly when the outline turns counter-clockwise with Y pointing up.
func (p *FloorPlan) checkPointsOrder(c ErrorChecker) bool {
	sum := 0.0
	for _, s := range p.Segments() {
		sum += (s.B.X - s.A.X) * (s.A.Y + s.B.Y)
	}
	if !geom.Less(sum, 0) {
		return c.NotCCWOrder()
	}
	return false
}

func (p *FloorPlan) checkRepeatedPoints(c ErrorChecker) bool {
	for i := 0; i < len(p.nodes); i++ {
		for j := i + 1; j < len(p.nodes); j++ {
			if p.nodes[i].Equal(p.nodes[j]) && c.RepeatedPoint(p.nodes[j]) {
				return true
			}
		}
	}
	return false
}

// checkSegmentsIntersections tests every pair of non-adjacent edges whose
// bounding boxes overlap. Adjacent edges always share a vertex.
func (p *FloorPlan) checkSegmentsIntersections(c ErrorChecker) bool {
	n := len(p.nodes)
	for _, pair := range p.index().crossingCandidates() {
		i, j := pair[0], pair[1]
		if j == i+1 || (i == 0 && j == n-1) {
			continue
		}
		a, b := p.Segment(i), p.Segment(j)
		if a.Intersects(b) && c.IntersectingSegments(a, b) {
			return true
		}
	}
	return false
}
