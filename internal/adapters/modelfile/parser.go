// Package modelfile reads planning problems from the line-oriented text format.
//
// Blank lines and lines starting with '%' are skipped. The remaining lines
// hold, in order: the city count; the place count; one owning city per
// place; one airport place per city; the truck count and one start place per
// truck; the plane count and one start place per plane; the package count
// and one "<start> <target>" line per package.
package modelfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"logistics-planner/internal/domain"
	"os"
	"strconv"
	"strings"
)

// Counts come from the input, so slices grow past this hint line by line.
const maxPrealloc = 1024

// ErrFormat marks input that was read but is not a valid model.
var ErrFormat = errors.New("invalid model format")

// Load reads and parses the model file at path.
func Load(path string, costs domain.Costs) (*domain.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	defer f.Close()

	m, err := Parse(f, costs)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", path, err)
	}
	return m, nil
}

// Parse reads one model from r. Read failures are returned as is, every
// other failure wraps ErrFormat.
func Parse(r io.Reader, costs domain.Costs) (*domain.Model, error) {
	p := &parser{sc: bufio.NewScanner(r)}

	var in domain.ModelInput
	var err error

	if in.CityCount, err = p.count("city count"); err != nil {
		return nil, err
	}
	placeCount, err := p.count("place count")
	if err != nil {
		return nil, err
	}
	if in.PlaceCities, err = p.list("city of place", placeCount); err != nil {
		return nil, err
	}
	if in.Airports, err = p.list("airport of city", in.CityCount); err != nil {
		return nil, err
	}

	truckCount, err := p.count("truck count")
	if err != nil {
		return nil, err
	}
	if in.TruckStarts, err = p.list("truck start", truckCount); err != nil {
		return nil, err
	}

	planeCount, err := p.count("plane count")
	if err != nil {
		return nil, err
	}
	if in.PlaneStarts, err = p.list("plane start", planeCount); err != nil {
		return nil, err
	}

	packageCount, err := p.count("package count")
	if err != nil {
		return nil, err
	}
	in.Packages = make([]domain.Package, 0, min(packageCount, maxPrealloc))
	for i := range packageCount {
		line, err := p.next(fmt.Sprintf("package %d", i))
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, p.fail("package %d: expected \"<start> <target>\", got %q", i, line)
		}
		start, err1 := strconv.Atoi(fields[0])
		target, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return nil, p.fail("package %d: malformed places %q", i, line)
		}
		in.Packages = append(in.Packages, domain.Package{PackageID: i, Start: start, Target: target})
	}

	m, err := domain.NewModel(in, costs)
	if err != nil {
		return nil, fmt.Errorf("parse model: %w: %w", ErrFormat, err)
	}
	return m, nil
}

type parser struct {
	sc   *bufio.Scanner
	line int
}

// next returns the next meaningful line.
func (p *parser) next(what string) (string, error) {
	for p.sc.Scan() {
		p.line++
		s := strings.TrimSpace(p.sc.Text())
		if s == "" || strings.HasPrefix(s, "%") {
			continue
		}
		return s, nil
	}
	if err := p.sc.Err(); err != nil {
		return "", fmt.Errorf("parse model: read line %d: %w", p.line+1, err)
	}
	return "", p.fail("%s: unexpected end of input", what)
}

func (p *parser) number(what string) (int, error) {
	s, err := p.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.fail("%s: %q is not a number", what, s)
	}
	return v, nil
}

func (p *parser) count(what string) (int, error) {
	v, err := p.number(what)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, p.fail("%s: negative value %d", what, v)
	}
	return v, nil
}

func (p *parser) list(what string, n int) ([]int, error) {
	out := make([]int, 0, min(n, maxPrealloc))
	for i := range n {
		v, err := p.number(fmt.Sprintf("%s %d", what, i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (p *parser) fail(format string, args ...any) error {
	return fmt.Errorf("parse model: line %d: %s: %w", p.line, fmt.Sprintf(format, args...), ErrFormat)
}
