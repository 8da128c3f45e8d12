// Package format serializes meshes produced by the generator.
package format

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/chazu/flatmesher/pkg/mesh"
)

var (
	// ErrNotSupported is returned by formats that cannot be read back.
	ErrNotSupported = errors.New("operation not supported by this format")
	// ErrMalformed is returned, wrapped, when mesh input cannot be parsed.
	ErrMalformed = errors.New("malformed mesh")
	// ErrUnknownFormat is returned by ByName.
	ErrUnknownFormat = errors.New("unknown mesh format")
)

// MeshFormatter writes meshes to, and possibly reads them from, a stream.
type MeshFormatter interface {
	Name() string
	Extension() string
	WriteMesh(w io.Writer, m *mesh.Mesh) error
	// ReadMesh replaces the contents of m. On error m is left unchanged.
	ReadMesh(r io.Reader, m *mesh.Mesh) error
}

var registry = map[string]MeshFormatter{}

func register(f MeshFormatter) {
	registry[f.Name()] = f
}

func init() {
	register(VTU{})
	register(Bemgen{})
	register(STL{})
}

// ByName returns the formatter registered under name, case-insensitively.
func ByName(name string) (MeshFormatter, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered formats in alphabetical order.
func Names() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}

// WriteFile writes m to path with f.
func WriteFile(path string, f MeshFormatter, m *mesh.Mesh) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "output file %q could not be opened", path)
	}
	if err := f.WriteMesh(out, m); err != nil {
		out.Close()
		return errors.WithMessagef(err, "writing %s", path)
	}
	return errors.Wrapf(out.Close(), "closing %q", path)
}

// ReadFile reads path into m with f.
func ReadFile(path string, f MeshFormatter, m *mesh.Mesh) error {
	in, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "input file %q could not be opened", path)
	}
	defer in.Close()
	return errors.WithMessagef(f.ReadMesh(in, m), "reading %s", path)
}
