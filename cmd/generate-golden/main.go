// Command generate-golden writes the Fibonacci golden file used by the
// fibonacci package tests. Values are computed with a math/big oracle that is
// independent of the code under test.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"

	"github.com/agbru/threadcalc/internal/logging"
)

const lastExactIndex = 92

type goldenEntry struct {
	N     uint64 `json:"n"`
	Exact string `json:"exact"`
	Int64 int64  `json:"int64"`
}

type goldenFile struct {
	Description    string        `json:"description"`
	LastExactIndex int           `json:"last_exact_index"`
	Values         []goldenEntry `json:"values"`
}

// fibBig computes F(n) iteratively.
func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

// wrapInt64 reduces v modulo 2^64 into the signed 64-bit range.
func wrapInt64(v *big.Int) int64 {
	mod := new(big.Int).Lsh(big.NewInt(1), 64)
	r := new(big.Int).Mod(v, mod)
	if r.Cmp(new(big.Int).Lsh(big.NewInt(1), 63)) >= 0 {
		r.Sub(r, mod)
	}
	return r.Int64()
}

func build(count uint64) goldenFile {
	g := goldenFile{
		Description:    fmt.Sprintf("F(0) through F(%d); int64 holds the value wrapped modulo 2^64", count-1),
		LastExactIndex: lastExactIndex,
		Values:         make([]goldenEntry, 0, count),
	}
	for n := uint64(0); n < count; n++ {
		v := fibBig(n)
		g.Values = append(g.Values, goldenEntry{N: n, Exact: v.String(), Int64: wrapInt64(v)})
	}
	return g
}

func main() {
	out := flag.String("out", "internal/fibonacci/testdata/sequence_golden.json", "output path")
	count := flag.Uint64("count", 100, "number of elements to write")
	flag.Parse()

	logger := logging.NewStdLoggerAdapter(log.New(os.Stderr, "generate-golden: ", 0))
	if *count == 0 {
		logger.Error("invalid flag", errors.New("count must be greater than 0"))
		os.Exit(1)
	}

	data, err := json.MarshalIndent(build(*count), "", "  ")
	if err != nil {
		logger.Error("marshal", err)
		os.Exit(1)
	}
	data = append(data, '\n')
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("write", err, logging.String("path", *out))
		os.Exit(1)
	}
	logger.Info("golden file written", logging.Uint64("values", *count), logging.String("path", *out))
}
