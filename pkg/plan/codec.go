package plan

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/chazu/flatmesher/pkg/geom"
)

// ErrMalformed is returned, wrapped, when a plan file cannot be parsed.
var ErrMalformed = errors.New("malformed floor plan")

// tokenReader walks whitespace separated tokens and remembers how many it
// has consumed for error messages.
type tokenReader struct {
	sc  *bufio.Scanner
	pos int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) next(what string) (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", errors.Wrapf(err, "reading %s", what)
		}
		return "", errors.Wrapf(ErrMalformed, "token %d: missing %s", t.pos+1, what)
	}
	t.pos++
	return t.sc.Text(), nil
}

func (t *tokenReader) float(what string) (float64, error) {
	s, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "token %d: %s %q is not a number", t.pos, what, s)
	}
	return v, nil
}

// Read parses a plan: the node count, one "x y" pair per node, the height
// and the triangle size, all whitespace separated. On error nothing is
// returned.
func Read(r io.Reader) (*FloorPlan, error) {
	t := newTokenReader(r)

	s, err := t.next("node count")
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, errors.Wrapf(ErrMalformed, "token 1: invalid node count %q", s)
	}

	nodes := make([]geom.Point2, 0, min(n, 1<<16))
	for i := 0; i < n; i++ {
		x, err := t.float("x coordinate")
		if err != nil {
			return nil, errors.WithMessagef(err, "node %d", i)
		}
		y, err := t.float("y coordinate")
		if err != nil {
			return nil, errors.WithMessagef(err, "node %d", i)
		}
		nodes = append(nodes, geom.Point2{X: x, Y: y})
	}

	h, err := t.float("height")
	if err != nil {
		return nil, err
	}
	ts, err := t.float("triangle size")
	if err != nil {
		return nil, err
	}
	return New(nodes, h, ts), nil
}

// Parse reads a plan from a string.
func Parse(s string) (*FloorPlan, error) {
	return Read(strings.NewReader(s))
}

// Load reads the plan stored at path.
func Load(path string) (*FloorPlan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "input file %q could not be opened", path)
	}
	defer f.Close()
	p, err := Read(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s", path)
	}
	return p, nil
}

// String renders the plan in the file layout.
func (p *FloorPlan) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(p.nodes)))
	b.WriteByte('\n')
	for _, n := range p.nodes {
		b.WriteString(n.String())
		b.WriteByte('\n')
	}
	b.WriteString(strconv.FormatFloat(p.height, 'g', -1, 64))
	b.WriteByte('\n')
	b.WriteString(strconv.FormatFloat(p.triangleSize, 'g', -1, 64))
	b.WriteByte('\n')
	return b.String()
}

// WriteTo writes the plan in the layout Read accepts.
func (p *FloorPlan) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.String())
	return int64(n), errors.Wrap(err, "writing floor plan")
}

// Save writes the plan to path.
func (p *FloorPlan) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "output file %q could not be opened", path)
	}
	if _, err := p.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "closing %q", path)
}
