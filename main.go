package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/chazu/flatmesher/pkg/config"
	"github.com/chazu/flatmesher/pkg/format"
	"github.com/chazu/flatmesher/pkg/mesh"
)

// defaultConfigFile is read when present and no --config is given.
const defaultConfigFile = "flatmesher.yaml"

// valueFlags take the following argument as their value.
var valueFlags = map[string]bool{
	"-f": true, "--format": true,
	"-o": true, "--output": true,
	"--workers": true, "--config": true, "--dxf": true,
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	app := makeapp(stdout, stderr)
	if err := app.Run(reorderArgs(args, app)); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		if ec, ok := err.(cli.ExitCoder); ok {
			return ec.ExitCode()
		}
		return 1
	}
	return 0
}

// reorderArgs moves flags in front of the positional arguments, so that
// "flatmesher plan.flat -f bemgen" parses like "flatmesher -f bemgen plan.flat".
// A leading command name stays first.
func reorderArgs(args []string, app *cli.App) []string {
	if len(args) < 2 {
		return args
	}
	out := []string{args[0]}
	rest := args[1:]
	if app.Command(rest[0]) != nil {
		out = append(out, rest[0])
		rest = rest[1:]
	}

	var flags, positional []string
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		if a == "--" {
			positional = append(positional, rest[i+1:]...)
			break
		}
		if strings.HasPrefix(a, "-") && a != "-" {
			flags = append(flags, a)
			if valueFlags[a] && i+1 < len(rest) {
				flags = append(flags, rest[i+1])
				i++
			}
			continue
		}
		positional = append(positional, a)
	}
	out = append(out, flags...)
	return append(out, positional...)
}

func makeapp(stdout, stderr io.Writer) *cli.App {
	settingsFlags := []cli.Flag{
		cli.StringFlag{Name: "config", Usage: "YAML settings file (default " + defaultConfigFile + " if present)"},
		cli.IntFlag{Name: "workers", Usage: "Goroutines used for mesh generation; 0 uses every CPU"},
	}

	app := cli.NewApp()
	app.Name = "flatmesher"
	app.Usage = "Generate a closed triangle mesh from a building floor plan"
	app.UsageText = "flatmesher <input_file> [{-f | --format} {" + strings.Join(format.Names(), " | ") +
		"}] [{-o | --output} <output_file>] [--dxf <file>]"
	app.Version = config.Version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.ExitErrHandler = func(*cli.Context, error) {}

	app.Flags = append([]cli.Flag{
		cli.StringFlag{Name: "format, f", Usage: "Output format: " + strings.Join(format.Names(), ", ")},
		cli.StringFlag{Name: "output, o", Usage: "Output file (default " + config.DefaultOutput + ")"},
		cli.StringFlag{Name: "dxf", Usage: "Also write the plan outline and mesh wireframe as DXF"},
	}, settingsFlags...)

	app.Action = func(c *cli.Context) error {
		return generateAction(c, stdout, stderr)
	}

	app.Commands = []cli.Command{
		{
			Name:      "check",
			Usage:     "Validate a floor plan and list its problems",
			ArgsUsage: "<input_file>",
			Flags:     settingsFlags,
			Action: func(c *cli.Context) error {
				return checkAction(c, stdout, stderr)
			},
		},
		{
			Name:      "stats",
			Usage:     "Generate the mesh and print its composition",
			ArgsUsage: "<input_file>",
			Flags:     settingsFlags,
			Action: func(c *cli.Context) error {
				return statsAction(c, stdout, stderr)
			},
		},
	}
	return app
}

// lookup returns a string flag set on the command or, failing that, on
// the application.
func lookup(c *cli.Context, name string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	if c.GlobalIsSet(name) {
		return c.GlobalString(name)
	}
	return ""
}

// settings loads the configuration file and applies the flags over it.
func settings(c *cli.Context) (config.Config, error) {
	path, optional := lookup(c, "config"), false
	if path == "" {
		path, optional = defaultConfigFile, true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return cfg, cli.NewExitError(err.Error(), 1)
	}

	if v := lookup(c, "format"); v != "" {
		cfg.Format = v
	}
	if v := lookup(c, "output"); v != "" {
		cfg.Output = v
	}
	switch {
	case c.IsSet("workers"):
		cfg.Workers = c.Int("workers")
	case c.GlobalIsSet("workers"):
		cfg.Workers = c.GlobalInt("workers")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, cli.NewExitError(err.Error(), 1)
	}
	return cfg, nil
}

// inputFile returns the single positional argument.
func inputFile(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.NewExitError("Incorrect arguments passed in.\nUsage: "+c.App.UsageText, 1)
	}
	return c.Args().First(), nil
}

func readInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", cli.NewExitError(fmt.Sprintf("Input file \"%s\" could not be opened.", path), 1)
	}
	return string(data), nil
}

// resultError turns a failed run into the exit error the user sees,
// listing the details on stderr first.
func resultError(res GenerateResult, stderr io.Writer) error {
	switch {
	case res.Plan == nil:
		for _, e := range res.Errors {
			if e.Line > 0 {
				fmt.Fprintf(stderr, "line %d: %s\n", e.Line, e.Message)
			} else {
				fmt.Fprintln(stderr, e.Message)
			}
		}
		return cli.NewExitError("The input file doesn't have a correct format.", 1)
	case len(res.Problems) > 0:
		for _, p := range res.Problems {
			fmt.Fprintf(stderr, "%s: %s\n", p.Phase, p.Message)
		}
		return cli.NewExitError("The input plan doesn't represent a valid map of the building.", 1)
	case !res.OK():
		return cli.NewExitError(res.Errors[0].Message, 1)
	}
	return nil
}

func generateAction(c *cli.Context, stdout, stderr io.Writer) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}
	in, err := inputFile(c)
	if err != nil {
		return err
	}
	cfg, err := settings(c)
	if err != nil {
		return err
	}
	f, err := format.ByName(cfg.Format)
	if err != nil {
		return cli.NewExitError("Incorrect arguments passed in.\n"+err.Error(), 1)
	}

	source, err := readInput(in)
	if err != nil {
		return err
	}
	res := NewApp(cfg).Generate(source, KindForPath(in))
	if err := resultError(res, stderr); err != nil {
		return err
	}

	m := &res.Mesh.Mesh
	if f.Name() == "stl" {
		err = format.SaveSTL(cfg.Output, m)
	} else {
		err = format.WriteFile(cfg.Output, f, m)
	}
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Output file \"%s\" could not be opened.", cfg.Output), 1)
	}
	if dxf := lookup(c, "dxf"); dxf != "" {
		if err := format.SavePlanDXF(dxf, res.Plan, m); err != nil {
			return cli.NewExitError(fmt.Sprintf("Output file \"%s\" could not be opened.", dxf), 1)
		}
	}

	fmt.Fprintf(stdout, "Mesh generated successfully at \"%s\".\n", cfg.Output)
	return nil
}

func checkAction(c *cli.Context, stdout, stderr io.Writer) error {
	in, err := inputFile(c)
	if err != nil {
		return err
	}
	cfg, err := settings(c)
	if err != nil {
		return err
	}
	source, err := readInput(in)
	if err != nil {
		return err
	}
	p, inputErrs, err := NewApp(cfg).LoadPlan(source, KindForPath(in))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if p == nil {
		return resultError(GenerateResult{Errors: inputErrs}, stderr)
	}

	cc := newConsoleChecker(stdout)
	p.CheckErrors(cc)
	if !cc.finish() {
		return cli.NewExitError("", 1)
	}
	return nil
}

func statsAction(c *cli.Context, stdout, stderr io.Writer) error {
	in, err := inputFile(c)
	if err != nil {
		return err
	}
	cfg, err := settings(c)
	if err != nil {
		return err
	}
	source, err := readInput(in)
	if err != nil {
		return err
	}
	res := NewApp(cfg).Generate(source, KindForPath(in))
	if err := resultError(res, stderr); err != nil {
		return err
	}

	p, s := res.Plan, res.Stats
	fmt.Fprintf(stdout, "plan:     %d nodes, height %g, triangle size %g, area %g\n",
		p.Len(), p.Height(), p.TriangleSize(), p.Area())
	fmt.Fprintf(stdout, "walls:    %d (%d nodes, %d triangles)\n", s.Walls, s.WallRingNodes, s.WallTriangles)
	fmt.Fprintf(stdout, "ceiling:  %d nodes (%d on the boundary), %d triangles\n",
		s.CeilingNodes, s.BoundaryNodes, s.CeilingTriangles)
	fmt.Fprintf(stdout, "floor:    %d nodes, %d triangles\n", s.InteriorNodes(), s.FloorTriangles)
	fmt.Fprintf(stdout, "mesh:     %d nodes, %d triangles\n", res.Mesh.NodeCount(), res.Mesh.TriangleCount())
	fmt.Fprintf(stdout, "topology: %s\n", mesh.Analyze(&res.Mesh.Mesh))
	fmt.Fprintf(stdout, "run:      %s\n", res.RunID)
	return nil
}
