package main

import (
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/chazu/flatmesher/pkg/config"
	"github.com/chazu/flatmesher/pkg/mesh"
)

const squarePlan = `4
0 0
4 0
4 4
0 4
2
1
`

const clockwisePlan = `4
0 0
0 4
4 4
4 0
2
1
`

func newTestApp() *App {
	return NewApp(config.Default())
}

// TestE2ESquarePlan exercises the full pipeline: plan text -> plan ->
// checks -> mesh -> render buffers.
func TestE2ESquarePlan(t *testing.T) {
	result := newTestApp().Generate(squarePlan, SourcePlan)

	if len(result.Errors) > 0 || len(result.Problems) > 0 {
		t.Fatalf("unexpected errors %v problems %v", result.Errors, result.Problems)
	}
	if !result.OK() {
		t.Fatal("expected a mesh")
	}
	if _, err := uuid.Parse(result.RunID); err != nil {
		t.Errorf("run id %q is not a uuid: %v", result.RunID, err)
	}

	if got := result.Mesh.NodeCount(); got != 66 {
		t.Errorf("node count = %d, want 66", got)
	}
	if got := result.Mesh.TriangleCount(); got != 128 {
		t.Errorf("triangle count = %d, want 128", got)
	}
	if result.Stats.Walls != 4 || result.Stats.WallRingNodes != 48 {
		t.Errorf("stats = %+v", result.Stats)
	}

	wantParts := []string{"walls", "ceiling", "floor"}
	if len(result.Meshes) != len(wantParts) {
		t.Fatalf("expected %d meshes, got %d", len(wantParts), len(result.Meshes))
	}
	triangles := 0
	for i, m := range result.Meshes {
		if m.PartName != wantParts[i] {
			t.Errorf("mesh %d: part name %q, want %q", i, m.PartName, wantParts[i])
		}
		if len(m.Vertices) != 66*3 || len(m.Normals) != 66*3 {
			t.Errorf("part %q: %d vertex floats, %d normal floats", m.PartName, len(m.Vertices), len(m.Normals))
		}
		if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
			t.Errorf("part %q: %d indices", m.PartName, len(m.Indices))
		}
		if m.Color != colorPalette[i] {
			t.Errorf("part %q: color %q, want %q", m.PartName, m.Color, colorPalette[i])
		}
		triangles += len(m.Indices) / 3
	}
	if triangles != 128 {
		t.Errorf("parts hold %d triangles, want 128", triangles)
	}
}

func TestE2ERoomProgram(t *testing.T) {
	source, err := os.ReadFile("examples/room.lisp")
	if err != nil {
		t.Fatalf("failed to read room.lisp: %v", err)
	}

	result := newTestApp().Generate(string(source), KindForPath("examples/room.lisp"))
	if len(result.Errors) > 0 || len(result.Problems) > 0 {
		t.Fatalf("unexpected errors %v problems %v", result.Errors, result.Problems)
	}
	if result.Plan.Len() != 6 {
		t.Errorf("plan has %d nodes, want 6", result.Plan.Len())
	}

	topo := mesh.Analyze(&result.Mesh.Mesh)
	if !topo.Closed() || topo.EulerCharacteristic() != 2 {
		t.Errorf("mesh is not a closed sphere-like surface: %s", topo)
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		kind         SourceKind
		wantErr      string
		wantProblem  string
		wantPlanRead bool
	}{
		{
			name:    "malformed plan text",
			source:  "3\n0 0\n1 x",
			kind:    SourcePlan,
			wantErr: "malformed",
		},
		{
			name:    "syntax error",
			source:  "(floor-plan",
			kind:    SourceLisp,
			wantErr: "",
		},
		{
			name:    "program without plan",
			source:  "(+ 1 2)",
			kind:    SourceLisp,
			wantErr: "does not define a floor plan",
		},
		{
			name:         "clockwise plan",
			source:       clockwisePlan,
			kind:         SourcePlan,
			wantProblem:  "not counter-clockwise",
			wantPlanRead: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestApp().Generate(tt.source, tt.kind)

			if result.OK() {
				t.Fatal("expected no mesh")
			}
			if result.Meshes == nil || result.Errors == nil || result.Problems == nil {
				t.Error("result slices must never be nil")
			}
			if len(result.Meshes) != 0 {
				t.Errorf("expected no meshes, got %d", len(result.Meshes))
			}
			if (result.Plan != nil) != tt.wantPlanRead {
				t.Errorf("plan read = %v, want %v", result.Plan != nil, tt.wantPlanRead)
			}

			if tt.wantProblem != "" {
				if len(result.Problems) == 0 {
					t.Fatal("expected problems")
				}
				if result.Problems[0].Kind != tt.wantProblem {
					t.Errorf("problem kind = %q, want %q", result.Problems[0].Kind, tt.wantProblem)
				}
				return
			}
			if len(result.Errors) == 0 {
				t.Fatal("expected errors")
			}
			if !strings.Contains(result.Errors[0].Message, tt.wantErr) {
				t.Errorf("error = %q, want containing %q", result.Errors[0].Message, tt.wantErr)
			}
		})
	}
}

func TestGenerateRunIDsDiffer(t *testing.T) {
	app := newTestApp()
	a := app.Generate(squarePlan, SourcePlan)
	b := app.Generate(squarePlan, SourcePlan)
	if a.RunID == b.RunID {
		t.Errorf("two runs share id %s", a.RunID)
	}
}

func TestGenerateUsesConfiguredDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Height = 3
	cfg.TriangleSize = 1

	result := NewApp(cfg).Generate(`(floor-plan (rect 0 0 4 4))`, SourceLisp)
	if !result.OK() {
		t.Fatalf("generate failed: %v %v", result.Errors, result.Problems)
	}
	if result.Plan.Height() != 3 || result.Plan.TriangleSize() != 1 {
		t.Errorf("plan height %g ts %g, want 3 1", result.Plan.Height(), result.Plan.TriangleSize())
	}
	// 4 walls of 4 columns and 4 levels.
	if result.Stats.WallRingNodes != 64 {
		t.Errorf("wall ring nodes = %d, want 64", result.Stats.WallRingNodes)
	}
}

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path string
		want SourceKind
	}{
		{"plan.flat", SourcePlan},
		{"plan.txt", SourcePlan},
		{"plan", SourcePlan},
		{"room.lisp", SourceLisp},
		{"ROOM.LISP", SourceLisp},
		{"dir/room.zy", SourceLisp},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := KindForPath(tt.path); got != tt.want {
				t.Errorf("KindForPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
