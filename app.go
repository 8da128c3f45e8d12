package main

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/chazu/flatmesher/pkg/config"
	"github.com/chazu/flatmesher/pkg/engine"
	"github.com/chazu/flatmesher/pkg/flatmesh"
	"github.com/chazu/flatmesher/pkg/mesh"
	"github.com/chazu/flatmesher/pkg/plan"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// SourceKind selects how Generate reads its input.
type SourceKind int

const (
	// SourcePlan is the plain text floor plan format.
	SourcePlan SourceKind = iota
	// SourceLisp is a floor plan program.
	SourceLisp
)

// KindForPath picks the source kind from a file extension.
func KindForPath(path string) SourceKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lisp", ".zy":
		return SourceLisp
	}
	return SourcePlan
}

// App ties the pipeline together: source -> plan -> checks -> mesh.
type App struct {
	cfg    config.Config
	engine *engine.Engine
}

// MeshData is the JSON-serializable render data of one part of the mesh.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable input error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ProblemData is a JSON-serializable plan problem.
type ProblemData struct {
	Kind    string `json:"kind"`
	Phase   string `json:"phase"`
	Message string `json:"message"`
}

// GenerateResult is everything one run produced. Plan and Mesh are set
// only when the corresponding step succeeded.
type GenerateResult struct {
	RunID    string          `json:"runId"`
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Problems []ProblemData   `json:"problems"`
	Stats    flatmesh.Stats  `json:"stats"`

	Plan *plan.FloorPlan    `json:"-"`
	Mesh *flatmesh.FlatMesh `json:"-"`
}

// OK reports whether a mesh was generated.
func (r GenerateResult) OK() bool { return r.Mesh != nil }

// NewApp creates an App whose DSL defaults come from cfg.
func NewApp(cfg config.Config) *App {
	return &App{
		cfg: cfg,
		engine: engine.NewEngineWithDefaults(engine.Defaults{
			Height:       cfg.Height,
			TriangleSize: cfg.TriangleSize,
			Limits:       cfg.Limits,
		}),
	}
}

// LoadPlan reads a plan from source. Input errors are returned as data;
// the error is only set for fatal evaluation failures.
func (a *App) LoadPlan(source string, kind SourceKind) (*plan.FloorPlan, []EvalErrorData, error) {
	if kind == SourcePlan {
		p, err := plan.Parse(source)
		if err != nil {
			return nil, []EvalErrorData{{Message: err.Error()}}, nil
		}
		return p, nil, nil
	}

	p, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		return nil, nil, err
	}
	if len(evalErrs) > 0 {
		out := make([]EvalErrorData, len(evalErrs))
		for i, e := range evalErrs {
			out[i] = EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message}
		}
		return nil, out, nil
	}
	if p == nil {
		return nil, []EvalErrorData{{Message: "program does not define a floor plan"}}, nil
	}
	return p, nil, nil
}

// Generate turns source into a mesh and its render data.
func (a *App) Generate(source string, kind SourceKind) GenerateResult {
	result := GenerateResult{
		RunID:    uuid.NewString(),
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Problems: []ProblemData{},
	}

	// Step 1: read the plan.
	p, inputErrs, err := a.LoadPlan(source, kind)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Generate %s fatal error: %v", result.RunID, err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(inputErrs) > 0 {
		result.Errors = append(result.Errors, inputErrs...)
		return result
	}
	result.Plan = p

	// Step 2: check it.
	if r := plan.Analyze(p); !r.OK() {
		for _, pr := range r.Problems {
			result.Problems = append(result.Problems, ProblemData{
				Kind:    pr.Kind.String(),
				Phase:   pr.Phase.String(),
				Message: pr.Message,
			})
		}
		return result
	}

	// Step 3: generate the mesh.
	fm := flatmesh.New(flatmesh.WithWorkers(a.cfg.Workers))
	if err := fm.CreateFromPlan(p); err != nil {
		log.Printf("Generate %s mesh error: %v", result.RunID, err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "mesh generation failed: " + err.Error()})
		return result
	}
	result.Mesh = fm
	result.Stats = fm.Stats()

	// Step 4: convert each part to render buffers.
	for i, part := range fm.Parts() {
		b := mesh.ToBuffers(fm.PartMesh(part), part.Name)
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: b.Vertices,
			Normals:  b.Normals,
			Indices:  b.Indices,
			PartName: b.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}
