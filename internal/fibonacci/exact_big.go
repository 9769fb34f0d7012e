//go:build !gmp

package fibonacci

import "math/big"

// ExactBackend names the arbitrary-precision library in use.
const ExactBackend = "math/big"

func fillExact(out []*big.Int) error {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := range out {
		out[i] = new(big.Int).Set(a)
		a.Add(a, b)
		a, b = b, a
	}
	return nil
}
