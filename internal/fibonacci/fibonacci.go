// Package fibonacci generates the leading elements of the Fibonacci sequence.
//
// Generation follows the spawn-and-join shape used by the π estimator with a
// single worker: the caller allocates the sequence, one goroutine fills it,
// and the caller reads it only after the join.
package fibonacci

import (
	"context"

	apperrors "github.com/agbru/threadcalc/internal/errors"
	"github.com/agbru/threadcalc/internal/logging"
	"github.com/agbru/threadcalc/internal/parallel"
)

const (
	// MaxElements is the largest sequence length accepted by Generate.
	MaxElements = parallel.MaxRange

	// LastExactIndex is the largest index whose value fits in an int64.
	// F(93) and later wrap around.
	LastExactIndex = 92
)

// Sequence holds F(0), F(1), ... F(len-1) as 64-bit signed integers. Values
// past LastExactIndex wrap modulo 2^64.
type Sequence []int64

// Overflowed returns the first index whose value wrapped, or -1 when every
// element is exact.
func (s Sequence) Overflowed() int {
	if len(s) > LastExactIndex+1 {
		return LastExactIndex + 1
	}
	return -1
}

// ValidateElements checks that n is a usable sequence length.
func ValidateElements(n int) error {
	if n < 1 {
		return apperrors.NewValidationError("elements", "must be greater than 0, got %d", n)
	}
	if n > MaxElements {
		return apperrors.NewValidationError("elements", "must be at most %d, got %d", MaxElements, n)
	}
	return nil
}

// Generate returns the first n Fibonacci numbers. The sequence is filled by a
// single worker goroutine and returned after it has finished.
func Generate(ctx context.Context, n int) (Sequence, error) {
	return GenerateWithLogger(ctx, n, logging.Nop())
}

// GenerateWithLogger is Generate with coordinator diagnostics sent to logger.
func GenerateWithLogger(ctx context.Context, n int, logger logging.Logger) (Sequence, error) {
	if err := ValidateElements(n); err != nil {
		return nil, err
	}
	seq := make(Sequence, n)
	logger.Debug("spawning sequence worker", logging.Int("elements", n))

	err := parallel.Join(ctx, 1, func(context.Context, int) error {
		fill(seq)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if idx := seq.Overflowed(); idx >= 0 {
		logger.Warn("int64 overflow, later elements wrap around",
			logging.Int("first_wrapped_index", idx), logging.Int("elements", n))
	}
	return seq, nil
}

// fill writes F(i) into seq[i] for every index. Addition wraps on overflow.
func fill(seq Sequence) {
	if len(seq) >= 1 {
		seq[0] = 0
	}
	if len(seq) >= 2 {
		seq[1] = 1
	}
	for i := 2; i < len(seq); i++ {
		seq[i] = seq[i-1] + seq[i-2]
	}
}
