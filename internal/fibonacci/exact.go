package fibonacci

import (
	"context"
	"math/big"

	apperrors "github.com/agbru/threadcalc/internal/errors"
	"github.com/agbru/threadcalc/internal/parallel"
)

// MaxExactElements bounds GenerateExact. F(100000) already has close to
// 21000 decimal digits.
const MaxExactElements = 100_000

// GenerateExact returns the first n Fibonacci numbers without overflow. Like
// Generate, the values are produced by one worker and read after the join.
func GenerateExact(ctx context.Context, n int) ([]*big.Int, error) {
	if n < 1 || n > MaxExactElements {
		return nil, apperrors.NewValidationError("elements",
			"must be between 1 and %d for exact output, got %d", MaxExactElements, n)
	}
	out := make([]*big.Int, n)
	err := parallel.Join(ctx, 1, func(context.Context, int) error {
		return fillExact(out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
