package main

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"
)

func TestFibBig_AroundInt64Limit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{10, "55"},
		{91, "4660046610375530309"},
		{92, "7540113804746346429"},
		{93, "12200160415121876738"},
		{99, "218922995834555169026"},
	}
	for _, tt := range tests {
		if got := fibBig(tt.n).String(); got != tt.want {
			t.Errorf("fibBig(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestWrapInt64(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		v    *big.Int
		want int64
	}{
		{"zero", big.NewInt(0), 0},
		{"max int64 stays", big.NewInt(math.MaxInt64), math.MaxInt64},
		{"max int64 plus one wraps to min", new(big.Int).Add(big.NewInt(math.MaxInt64), big.NewInt(1)), math.MinInt64},
		{"2^64 wraps to zero", new(big.Int).Lsh(big.NewInt(1), 64), 0},
		{"F(92) exact", fibBig(92), 7540113804746346429},
		{"F(93) wraps", fibBig(93), -6246583658587674878},
	}
	for _, tt := range tests {
		if got := wrapInt64(tt.v); got != tt.want {
			t.Errorf("%s: wrapInt64(%s) = %d, want %d", tt.name, tt.v, got, tt.want)
		}
	}
}

// TestBuild_WrappedEntriesFollowTheRecurrence checks that every int64 entry
// equals the sum of the previous two under two's-complement wraparound, the
// arithmetic the sequence worker performs.
func TestBuild_WrappedEntriesFollowTheRecurrence(t *testing.T) {
	t.Parallel()
	g := build(100)
	if len(g.Values) != 100 || g.LastExactIndex != lastExactIndex {
		t.Fatalf("build(100): %d values, last exact %d", len(g.Values), g.LastExactIndex)
	}
	for i := 2; i < len(g.Values); i++ {
		a, b := g.Values[i-2].Int64, g.Values[i-1].Int64
		if got := g.Values[i].Int64; got != a+b {
			t.Fatalf("entry %d = %d, want %d + %d wrapped", i, got, a, b)
		}
	}
	for i, e := range g.Values {
		if e.N != uint64(i) {
			t.Fatalf("entry %d has n=%d", i, e.N)
		}
		exact := i <= lastExactIndex
		if (e.Exact == big.NewInt(e.Int64).String()) != exact {
			t.Errorf("entry %d: exact %s, int64 %d", i, e.Exact, e.Int64)
		}
	}
}

func TestBuild_JSONShape(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(build(3))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"description":"F(0) through F(2); int64 holds the value wrapped modulo 2^64",` +
		`"last_exact_index":92,"values":[{"n":0,"exact":"0","int64":0},{"n":1,"exact":"1","int64":1},{"n":2,"exact":"1","int64":1}]}`
	if string(data) != want {
		t.Errorf("got  %s\nwant %s", data, want)
	}
}
