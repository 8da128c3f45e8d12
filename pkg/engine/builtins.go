package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/flatmesher/pkg/config"
	"github.com/chazu/flatmesher/pkg/geom"
	"github.com/chazu/flatmesher/pkg/plan"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms floor plan source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: floor-plan -> floor_plan
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a plan node so it can be passed between builtins.
type sexpPoint struct {
	pt geom.Point2
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point %g %g)", p.pt.X, p.pt.Y)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpPlan is returned by floor_plan.
type sexpPlan struct {
	plan *plan.FloorPlan
}

func (p *sexpPlan) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(floor-plan %d nodes :height %g :triangle-size %g)",
		p.plan.Len(), p.plan.Height(), p.plan.TriangleSize())
}
func (p *sexpPlan) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toPoint accepts a point value or a two element list such as [3 4].
func toPoint(s zygo.Sexp) (geom.Point2, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.pt, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil || len(items) != 2 {
		return geom.Point2{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
	}
	x, err := toFloat64(items[0])
	if err != nil {
		return geom.Point2{}, fmt.Errorf("x: %w", err)
	}
	y, err := toFloat64(items[1])
	if err != nil {
		return geom.Point2{}, fmt.Errorf("y: %w", err)
	}
	return geom.Point2{X: x, Y: y}, nil
}

// toPoints flattens points and lists of points into a single node list.
// A two element list of numbers counts as one point.
func toPoints(args []zygo.Sexp) ([]geom.Point2, error) {
	var out []geom.Point2
	for i, a := range args {
		if pt, err := toPoint(a); err == nil {
			out = append(out, pt)
			continue
		}
		items, err := sexpListToSlice(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: expected point or list of points, got %T", i, a)
		}
		for j, item := range items {
			pt, err := toPoint(item)
			if err != nil {
				return nil, fmt.Errorf("argument %d, item %d: %w", i, j, err)
			}
			out = append(out, pt)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// state collects what the program defines while it runs.
type state struct {
	defaults Defaults
	plan     *plan.FloorPlan
}

// registerBuiltins installs the floor plan builtins into a zygomys
// environment. Source code must be preprocessed with preprocessSource()
// before evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, st *state) {

	// -----------------------------------------------------------------------
	// (point 3 4)
	// -----------------------------------------------------------------------
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("point: expected 2 arguments (x y), got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: y: %w", err)
		}
		return &sexpPoint{pt: geom.Point2{X: x, Y: y}}, nil
	})

	// -----------------------------------------------------------------------
	// (rect :x 0 :y 0 :width 4 :depth 3)
	// (rect 0 0 4 3)
	// Returns the four corners counter-clockwise from the lower left.
	// -----------------------------------------------------------------------
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		keys := []string{"x", "y", "width", "depth"}
		switch len(pa.positional) {
		case 0:
		case 4:
			for i, k := range keys {
				pa.kw[k] = pa.positional[i]
			}
		default:
			return zygo.SexpNull, fmt.Errorf("rect: expected 4 positional arguments (x y width depth), got %d", len(pa.positional))
		}
		vals := map[string]float64{"x": 0, "y": 0}
		for _, k := range keys {
			v, ok := pa.kw[k]
			if !ok {
				if k == "width" || k == "depth" {
					return zygo.SexpNull, fmt.Errorf("rect: :%s is required", k)
				}
				continue
			}
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect: %s: %w", k, err)
			}
			vals[k] = f
		}
		if vals["width"] <= 0 || vals["depth"] <= 0 {
			return zygo.SexpNull, fmt.Errorf("rect: width and depth must be positive")
		}
		x0, y0 := vals["x"], vals["y"]
		x1, y1 := x0+vals["width"], y0+vals["depth"]
		corners := []zygo.Sexp{
			&sexpPoint{pt: geom.Point2{X: x0, Y: y0}},
			&sexpPoint{pt: geom.Point2{X: x1, Y: y0}},
			&sexpPoint{pt: geom.Point2{X: x1, Y: y1}},
			&sexpPoint{pt: geom.Point2{X: x0, Y: y1}},
		}
		return zygo.MakeList(corners), nil
	})

	// -----------------------------------------------------------------------
	// (floor-plan :height 2.5 :triangle-size 0.5 (point 0 0) (point 4 0) ...)
	// (floor-plan :points (rect :width 4 :depth 3))
	// -----------------------------------------------------------------------
	env.AddFunction("floor_plan", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if st.plan != nil {
			return zygo.SexpNull, fmt.Errorf("floor-plan: plan already defined")
		}
		pa := parseArgs(args)

		height := st.defaults.Height
		if v, ok := pa.kw["height"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("floor-plan: height: %w", err)
			}
			height = f
		}
		ts := st.defaults.TriangleSize
		if v, ok := pa.kw["triangle-size"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("floor-plan: triangle-size: %w", err)
			}
			ts = f
		}

		if (st.defaults.Limits != config.Limits{}) {
			cfg := config.Config{Limits: st.defaults.Limits}
			height = cfg.ClampHeight(height)
			ts = cfg.ClampTriangleSize(ts)
		}

		src := pa.positional
		if v, ok := pa.kw["points"]; ok {
			src = append([]zygo.Sexp{v}, src...)
		}
		nodes, err := toPoints(src)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("floor-plan: %w", err)
		}
		if len(nodes) == 0 {
			return zygo.SexpNull, fmt.Errorf("floor-plan: no points given")
		}

		st.plan = plan.New(nodes, height, ts)
		return &sexpPlan{plan: st.plan}, nil
	})
}
