package fibonacci

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	apperrors "github.com/agbru/threadcalc/internal/errors"
	"github.com/agbru/threadcalc/internal/logging"
)

type goldenEntry struct {
	N     int    `json:"n"`
	Exact string `json:"exact"`
	Int64 int64  `json:"int64"`
}

type goldenFile struct {
	LastExactIndex int           `json:"last_exact_index"`
	Values         []goldenEntry `json:"values"`
}

func loadGolden(t *testing.T) goldenFile {
	t.Helper()
	data, err := os.ReadFile("testdata/sequence_golden.json")
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	var g goldenFile
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("parsing golden file: %v", err)
	}
	return g
}

func TestGenerate_KnownPrefixes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int
		want Sequence
	}{
		{1, Sequence{0}},
		{2, Sequence{0, 1}},
		{3, Sequence{0, 1, 1}},
		{10, Sequence{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}},
	}
	for _, tt := range tests {
		got, err := Generate(context.Background(), tt.n)
		if err != nil {
			t.Fatalf("Generate(%d) error: %v", tt.n, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Generate(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, -1, -100, MaxElements + 1} {
		seq, err := Generate(context.Background(), n)
		var validationErr apperrors.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("Generate(%d) error = %v, want ValidationError", n, err)
		}
		if seq != nil {
			t.Errorf("Generate(%d) returned %v alongside an error", n, seq)
		}
	}
}

func TestGenerate_MatchesGolden(t *testing.T) {
	t.Parallel()
	g := loadGolden(t)
	seq, err := Generate(context.Background(), len(g.Values))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	for _, e := range g.Values {
		if seq[e.N] != e.Int64 {
			t.Errorf("F(%d) = %d, want %d", e.N, seq[e.N], e.Int64)
		}
	}
	if g.LastExactIndex != LastExactIndex {
		t.Errorf("golden last exact index %d, package uses %d", g.LastExactIndex, LastExactIndex)
	}
}

func TestSequence_Overflowed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int
		want int
	}{
		{1, -1},
		{LastExactIndex + 1, -1},
		{LastExactIndex + 2, LastExactIndex + 1},
		{200, LastExactIndex + 1},
	}
	for _, tt := range tests {
		seq, err := Generate(context.Background(), tt.n)
		if err != nil {
			t.Fatalf("Generate(%d) error: %v", tt.n, err)
		}
		if got := seq.Overflowed(); got != tt.want {
			t.Errorf("Generate(%d).Overflowed() = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestGenerateWithLogger_WarnsOnOverflow(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := logging.NewConsoleLogger(&buf, zerolog.WarnLevel)

	if _, err := GenerateWithLogger(context.Background(), 50, logger); err != nil {
		t.Fatalf("GenerateWithLogger error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output for exact sequence: %q", buf.String())
	}

	if _, err := GenerateWithLogger(context.Background(), 100, logger); err != nil {
		t.Fatalf("GenerateWithLogger error: %v", err)
	}
	if !strings.Contains(buf.String(), "int64 overflow") {
		t.Errorf("expected overflow warning, got %q", buf.String())
	}
}

func TestGenerateExact_MatchesGolden(t *testing.T) {
	t.Parallel()
	g := loadGolden(t)
	got, err := GenerateExact(context.Background(), len(g.Values))
	if err != nil {
		t.Fatalf("GenerateExact error: %v", err)
	}
	for _, e := range g.Values {
		if got[e.N].String() != e.Exact {
			t.Errorf("exact F(%d) = %s, want %s", e.N, got[e.N], e.Exact)
		}
	}
}

func TestGenerateExact_InvalidInput(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, -3, MaxExactElements + 1} {
		if _, err := GenerateExact(context.Background(), n); err == nil {
			t.Errorf("GenerateExact(%d) succeeded, want error", n)
		}
	}
}

// TestGenerate_RecurrenceProperty checks F(i) = F(i-1) + F(i-2) for every
// index, including wrapped ones.
func TestGenerate_RecurrenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("each element is the sum of the previous two", prop.ForAll(
		func(n int) bool {
			seq, err := Generate(context.Background(), n)
			if err != nil || len(seq) != n || seq[0] != 0 {
				return false
			}
			for i := 2; i < n; i++ {
				if seq[i] != seq[i-1]+seq[i-2] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 5000),
	))

	properties.Property("exact and int64 agree up to the last exact index", prop.ForAll(
		func(n int) bool {
			seq, err := Generate(context.Background(), n)
			if err != nil {
				return false
			}
			exact, err := GenerateExact(context.Background(), n)
			if err != nil {
				return false
			}
			for i := 0; i < n && i <= LastExactIndex; i++ {
				if !exact[i].IsInt64() || exact[i].Int64() != seq[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 300),
	))

	properties.TestingRun(t)
}

func ExampleGenerate() {
	seq, _ := Generate(context.Background(), 10)
	fmt.Println(seq)
	// Output: [0 1 1 2 3 5 8 13 21 34]
}
