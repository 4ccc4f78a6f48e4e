package modelfile

import (
	"errors"
	"logistics-planner/internal/domain"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoCities = `% cities
2
% places
4
0
0
1
1

% airports
0
2
% trucks
2
1
3
% planes
1
0
% packages
1
1 3
`

func TestParseTwoCities(t *testing.T) {
	m, err := Parse(strings.NewReader(twoCities), domain.DefaultCosts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Cities) != 2 || len(m.Places) != 4 {
		t.Fatalf("got %d cities, %d places", len(m.Cities), len(m.Places))
	}
	if m.TruckCount() != 2 || m.PlaneCount() != 1 {
		t.Fatalf("got %d trucks, %d planes", m.TruckCount(), m.PlaneCount())
	}
	if p := m.Packages[0]; p.Start != 1 || p.Target != 3 {
		t.Fatalf("package = %+v", p)
	}
	if !m.Places[2].IsAirport {
		t.Fatalf("place 2 must be an airport")
	}
}

func TestParseFormatErrors(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"not a number":     "two\n",
		"truncated":        "2\n4\n0\n0\n",
		"bad package line": strings.Replace(twoCities, "1 3", "1", 1),
		"unknown place":    strings.Replace(twoCities, "1 3", "1 9", 1),
		"negative count":   "-1\n",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input), domain.DefaultCosts())
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestParseHugeCountsFailWithoutAllocating(t *testing.T) {
	cases := map[string]string{
		"package count": "1\n1\n0\n0\n0\n0\n999999999999999999\n0 0\n",
		"place count":   "1\n999999999999999999\n0\n",
		"truck count":   "1\n1\n0\n0\n100000000\n0\n",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input), domain.DefaultCosts())
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestLoadMissingFileIsNotAFormatError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"), domain.DefaultCosts())
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, ErrFormat) {
		t.Fatalf("missing file reported as format error: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.txt")
	if err := os.WriteFile(path, []byte(twoCities), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	m, err := Load(path, domain.DefaultCosts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PackageCount() != 1 {
		t.Fatalf("packages = %d", m.PackageCount())
	}
}
