package plan

import (
	"testing"

	"github.com/chazu/flatmesher/pkg/geom"
)

// recorder counts callbacks and never aborts.
type recorder struct {
	phases     []string
	violations []string
}

func (r *recorder) CheckBasicProperties()       { r.phases = append(r.phases, "basic") }
func (r *recorder) CheckSegmentsProperties()    { r.phases = append(r.phases, "segments") }
func (r *recorder) CheckPointsOrder()           { r.phases = append(r.phases, "order") }
func (r *recorder) CheckRepeatedPoints()        { r.phases = append(r.phases, "repeated") }
func (r *recorder) CheckSegmentsIntersections() { r.phases = append(r.phases, "intersections") }

func (r *recorder) note(s string) bool { r.violations = append(r.violations, s); return false }

func (r *recorder) InsufficientNodes(int) bool                 { return r.note("nodes") }
func (r *recorder) InvalidTriangleSize(float64) bool           { return r.note("size") }
func (r *recorder) InvalidHeight(float64) bool                 { return r.note("height") }
func (r *recorder) InvalidSegmentLength(geom.Line2) bool       { return r.note("length") }
func (r *recorder) InvalidSegmentSlope(geom.Line2) bool        { return r.note("slope") }
func (r *recorder) NotCCWOrder() bool                          { return r.note("ccw") }
func (r *recorder) RepeatedPoint(geom.Point2) bool             { return r.note("repeated") }
func (r *recorder) IntersectingSegments(_, _ geom.Line2) bool { return r.note("intersect") }

var _ ErrorChecker = (*recorder)(nil)

// ---------------------------------------------------------------------------
// Validity gate: one minimal failing plan per check
// ---------------------------------------------------------------------------

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		p    *FloorPlan
		want bool
		kind ProblemKind
	}{
		{"square", square(), true, 0},
		{"L shape", lShape(), true, 0},
		{"half pitch", New(pts(0, 0, 2, 0, 2, 1, 0, 1), 1, 0.5), true, 0},
		{"two nodes", New(pts(0, 0, 4, 0), 2, 1), false, InsufficientNodes},
		{"zero triangle size", New(square().Nodes(), 2, 0), false, InvalidTriangleSize},
		{"negative triangle size", New(square().Nodes(), 2, -1), false, InvalidTriangleSize},
		{"fractional height", New(square().Nodes(), 2.5, 1), false, InvalidHeight},
		{"zero height", New(square().Nodes(), 0, 1), false, InvalidHeight},
		{"height below one level", New(pts(0, 0, 10, 0, 10, 10, 0, 10), 1, 1e7), false, InvalidHeight},
		{"tiny height", New(pts(0, 0, 20, 0, 20, 20, 0, 20), 0.00005, 10), false, InvalidHeight},
		{"segment below one column", New(pts(0, 0, 4, 0, 4, 4, 0, 4, 0, 0.000001), 2, 1), false, InvalidSegmentLength},
		{"fractional length", New(pts(0, 0, 4.5, 0, 4.5, 4, 0, 4), 2, 1), false, InvalidSegmentLength},
		{"fractional slope", New(pts(0, 0, 4, 0, 0, 3), 2, 1), false, InvalidSegmentSlope},
		{"clockwise", New(pts(0, 0, 0, 4, 4, 4, 4, 0), 2, 1), false, NotCCWOrder},
		{"repeated point", New(pts(0, 0, 4, 0, 4, 4, 0, 4, 0, 0), 2, 1), false, RepeatedPoint},
		{"self intersecting", New(pts(0, 0, 6, 0, 6, 4, 2, 4, 2, -2, 0, -2), 2, 1), false, IntersectingSegments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Valid(); got != tt.want {
				t.Fatalf("Valid() = %v, want %v", got, tt.want)
			}
			r := Analyze(tt.p)
			if tt.want {
				if !r.OK() {
					t.Fatalf("unexpected problems: %v", r.Err())
				}
				return
			}
			found := false
			for _, p := range r.Problems {
				if p.Kind == tt.kind {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a %s problem, got %v", tt.kind, r.Err())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Protocol
// ---------------------------------------------------------------------------

func TestCheckErrorsPhaseOrder(t *testing.T) {
	r := &recorder{}
	if !square().CheckErrors(r) {
		t.Fatal("square should pass")
	}
	want := []string{"basic", "segments", "order", "repeated", "intersections"}
	if len(r.phases) != len(want) {
		t.Fatalf("phases = %v, want %v", r.phases, want)
	}
	for i := range want {
		if r.phases[i] != want[i] {
			t.Errorf("phase %d = %s, want %s", i, r.phases[i], want[i])
		}
	}
	if len(r.violations) != 0 {
		t.Errorf("violations = %v", r.violations)
	}
}

func TestCheckErrorsStopsAfterBrokenBasics(t *testing.T) {
	r := &recorder{}
	p := New(pts(0, 0, 4, 0), 2, 0)
	if p.CheckErrors(r) {
		t.Fatal("expected failure")
	}
	if len(r.phases) != 1 {
		t.Errorf("phases = %v, want only basic", r.phases)
	}
	// The height check is skipped without a usable triangle size.
	if len(r.violations) != 2 || r.violations[0] != "nodes" || r.violations[1] != "size" {
		t.Errorf("violations = %v", r.violations)
	}
}

func TestCheckErrorsCollectsWithoutAborting(t *testing.T) {
	r := &recorder{}
	p := New(pts(0, 0, 0, 4, 4.5, 4, 4.5, 0), 2, 1)
	if !p.CheckErrors(r) {
		t.Error("a checker that never aborts runs to completion")
	}
	want := map[string]int{"length": 2, "ccw": 1}
	got := map[string]int{}
	for _, v := range r.violations {
		got[v]++
	}
	for k, n := range want {
		if got[k] != n {
			t.Errorf("%s violations = %d, want %d (all: %v)", k, got[k], n, r.violations)
		}
	}
	if len(r.phases) != 5 {
		t.Errorf("phases = %v", r.phases)
	}
}

func TestAbortCheckerStopsAtFirstViolation(t *testing.T) {
	// Clockwise and self-intersecting: only the order phase should run
	// before the abort.
	p := New(pts(0, 0, 0, -2, 2, -2, 2, 4, 6, 4, 6, 0), 2, 1)
	r := &reachRecorder{}
	if p.CheckErrors(r) {
		t.Fatal("expected abort")
	}
	if r.last != "order" {
		t.Errorf("last phase = %s, want order", r.last)
	}
}

type reachRecorder struct {
	AbortChecker
	last string
}

func (r *reachRecorder) CheckBasicProperties()       { r.last = "basic" }
func (r *reachRecorder) CheckSegmentsProperties()    { r.last = "segments" }
func (r *reachRecorder) CheckPointsOrder()           { r.last = "order" }
func (r *reachRecorder) CheckRepeatedPoints()        { r.last = "repeated" }
func (r *reachRecorder) CheckSegmentsIntersections() { r.last = "intersections" }

func TestAdjacentSegmentsNotReported(t *testing.T) {
	// The closing edge and edge 0 share node 0; a triangle has no
	// non-adjacent pairs at all.
	r := &recorder{}
	New(pts(0, 0, 4, 0, 0, 4), 4, 4).CheckErrors(r)
	for _, v := range r.violations {
		if v == "intersect" {
			t.Errorf("adjacent edges reported as intersecting: %v", r.violations)
		}
	}
}

// ---------------------------------------------------------------------------
// Report
// ---------------------------------------------------------------------------

func TestReport(t *testing.T) {
	t.Run("basic problems abort", func(t *testing.T) {
		r := Analyze(New(pts(0, 0, 4, 0), 2, 0))
		if !r.Aborted || len(r.Problems) != 1 {
			t.Fatalf("report = %+v", r)
		}
		if r.Problems[0].Kind != InsufficientNodes || r.Problems[0].Phase != PhaseBasicProperties {
			t.Errorf("problem = %+v", r.Problems[0])
		}
	})

	t.Run("other problems are collected", func(t *testing.T) {
		r := Analyze(New(pts(0, 0, 0, 4, 4.5, 4, 4.5, 0), 2, 1))
		if r.Aborted {
			t.Error("should not abort")
		}
		if len(r.Reached) != PhaseCount {
			t.Errorf("reached %v", r.Reached)
		}
		if n := len(r.ByPhase(PhaseSegmentsProperties)); n != 2 {
			t.Errorf("segment problems = %d, want 2", n)
		}
		if n := len(r.ByPhase(PhasePointsOrder)); n != 1 {
			t.Errorf("order problems = %d, want 1", n)
		}
		if r.Err() == nil {
			t.Error("Err should summarise the problems")
		}
	})

	t.Run("clean plan", func(t *testing.T) {
		r := Analyze(lShape())
		if !r.OK() || r.Err() != nil {
			t.Errorf("unexpected problems: %v", r.Err())
		}
	})
}

func TestKindAndPhaseStrings(t *testing.T) {
	if IntersectingSegments.String() != "intersecting segments" {
		t.Error(IntersectingSegments.String())
	}
	if PhasePointsOrder.String() != "points order" {
		t.Error(PhasePointsOrder.String())
	}
	if ProblemKind(99).String() != "ProblemKind(99)" {
		t.Error(ProblemKind(99).String())
	}
}
