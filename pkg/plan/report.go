package plan

import (
	"fmt"
	"strings"

	"github.com/chazu/flatmesher/pkg/geom"
)

// Phase identifies a group of checks.
type Phase int

const (
	PhaseBasicProperties Phase = iota
	PhaseSegmentsProperties
	PhasePointsOrder
	PhaseRepeatedPoints
	PhaseSegmentsIntersections
)

// PhaseCount is the number of validation phases.
const PhaseCount = 5

func (p Phase) String() string {
	switch p {
	case PhaseBasicProperties:
		return "basic properties"
	case PhaseSegmentsProperties:
		return "segments properties"
	case PhasePointsOrder:
		return "points order"
	case PhaseRepeatedPoints:
		return "repeated points"
	case PhaseSegmentsIntersections:
		return "segments intersections"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ProblemKind classifies a violation.
type ProblemKind int

const (
	InsufficientNodes ProblemKind = iota
	InvalidTriangleSize
	InvalidHeight
	InvalidSegmentLength
	InvalidSegmentSlope
	NotCCWOrder
	RepeatedPoint
	IntersectingSegments
)

func (k ProblemKind) String() string {
	switch k {
	case InsufficientNodes:
		return "insufficient nodes"
	case InvalidTriangleSize:
		return "invalid triangle size"
	case InvalidHeight:
		return "invalid height"
	case InvalidSegmentLength:
		return "invalid segment length"
	case InvalidSegmentSlope:
		return "invalid segment slope"
	case NotCCWOrder:
		return "not counter-clockwise"
	case RepeatedPoint:
		return "repeated point"
	case IntersectingSegments:
		return "intersecting segments"
	default:
		return fmt.Sprintf("ProblemKind(%d)", int(k))
	}
}

// Problem is one violation found while checking a plan.
type Problem struct {
	Kind     ProblemKind
	Phase    Phase
	Message  string
	Segments []geom.Line2
	Point    geom.Point2
	Value    float64
}

func (p Problem) Error() string { return p.Message }

// Report is an ErrorChecker that collects every problem it is told about.
// Broken basic properties abort the run; everything else is collected.
type Report struct {
	Problems []Problem
	// Reached lists the phases that were started, in order.
	Reached []Phase
	Aborted bool
}

var _ ErrorChecker = (*Report)(nil)

// Analyze checks p and collects all problems.
func Analyze(p *FloorPlan) *Report {
	r := &Report{}
	p.CheckErrors(r)
	return r
}

// OK reports whether no problem was found.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

// Err summarises the report as an error, or returns nil when it is OK.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	if len(r.Problems) == 1 {
		return r.Problems[0]
	}
	msgs := make([]string, len(r.Problems))
	for i, p := range r.Problems {
		msgs[i] = p.Message
	}
	return fmt.Errorf("%d problems: %s", len(r.Problems), strings.Join(msgs, "; "))
}

// ByPhase returns the problems found during phase ph.
func (r *Report) ByPhase(ph Phase) []Problem {
	var out []Problem
	for _, p := range r.Problems {
		if p.Phase == ph {
			out = append(out, p)
		}
	}
	return out
}

func (r *Report) current() Phase {
	if len(r.Reached) == 0 {
		return PhaseBasicProperties
	}
	return r.Reached[len(r.Reached)-1]
}

func (r *Report) add(p Problem, abort bool) bool {
	p.Phase = r.current()
	r.Problems = append(r.Problems, p)
	if abort {
		r.Aborted = true
	}
	return abort
}

// --- phases ---

func (r *Report) CheckBasicProperties()       { r.Reached = append(r.Reached, PhaseBasicProperties) }
func (r *Report) CheckSegmentsProperties()    { r.Reached = append(r.Reached, PhaseSegmentsProperties) }
func (r *Report) CheckPointsOrder()           { r.Reached = append(r.Reached, PhasePointsOrder) }
func (r *Report) CheckRepeatedPoints()        { r.Reached = append(r.Reached, PhaseRepeatedPoints) }
func (r *Report) CheckSegmentsIntersections() { r.Reached = append(r.Reached, PhaseSegmentsIntersections) }

// --- violations ---

func (r *Report) InsufficientNodes(n int) bool {
	return r.add(Problem{
		Kind:    InsufficientNodes,
		Message: fmt.Sprintf("the plan has %d nodes, at least 3 are needed", n),
		Value:   float64(n),
	}, true)
}

func (r *Report) InvalidTriangleSize(size float64) bool {
	return r.add(Problem{
		Kind:    InvalidTriangleSize,
		Message: fmt.Sprintf("triangle size %g must be positive", size),
		Value:   size,
	}, true)
}

func (r *Report) InvalidHeight(height float64) bool {
	return r.add(Problem{
		Kind:    InvalidHeight,
		Message: fmt.Sprintf("height %g must be a positive multiple of the triangle size", height),
		Value:   height,
	}, true)
}

func (r *Report) InvalidSegmentLength(seg geom.Line2) bool {
	return r.add(Problem{
		Kind:     InvalidSegmentLength,
		Message:  fmt.Sprintf("segment %s has length %g, not a multiple of the triangle size", seg, seg.Length()),
		Segments: []geom.Line2{seg},
		Value:    seg.Length(),
	}, false)
}

func (r *Report) InvalidSegmentSlope(seg geom.Line2) bool {
	m, _ := seg.Slope()
	return r.add(Problem{
		Kind:     InvalidSegmentSlope,
		Message:  fmt.Sprintf("segment %s has slope %g, not a multiple of the triangle size", seg, m),
		Segments: []geom.Line2{seg},
		Value:    m,
	}, false)
}

func (r *Report) NotCCWOrder() bool {
	return r.add(Problem{
		Kind:    NotCCWOrder,
		Message: "the points are not in counter-clockwise order",
	}, false)
}

func (r *Report) RepeatedPoint(p geom.Point2) bool {
	return r.add(Problem{
		Kind:    RepeatedPoint,
		Message: fmt.Sprintf("point (%s) is repeated", p),
		Point:   p,
	}, false)
}

func (r *Report) IntersectingSegments(a, b geom.Line2) bool {
	return r.add(Problem{
		Kind:     IntersectingSegments,
		Message:  fmt.Sprintf("segments %s and %s intersect", a, b),
		Segments: []geom.Line2{a, b},
	}, false)
}
