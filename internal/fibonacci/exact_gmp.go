//go:build gmp

package fibonacci

import (
	"fmt"
	"math/big"

	"github.com/ncw/gmp"
)

// ExactBackend names the arbitrary-precision library in use.
const ExactBackend = "gmp"

func fillExact(out []*big.Int) error {
	a, b := gmp.NewInt(0), gmp.NewInt(1)
	for i := range out {
		v, ok := new(big.Int).SetString(a.String(), 10)
		if !ok {
			return fmt.Errorf("converting F(%d) from gmp", i)
		}
		out[i] = v
		a.Add(a, b)
		a, b = b, a
	}
	return nil
}
