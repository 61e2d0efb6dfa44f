package ipconfig

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// cryptoRandInt returns a uniform random integer in [lo, hi].
func cryptoRandInt(lo, hi int) (int, error) {
	if hi < lo {
		return 0, fmt.Errorf("cryptoRandInt: hi %d < lo %d", hi, lo)
	}
	span := big.NewInt(int64(hi - lo + 1))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, err
	}
	return lo + int(n.Int64()), nil
}

// cryptoRandBits returns a uniform random unsigned integer with
// exactly n bits of entropy (0 when n <= 0).
func cryptoRandBits(n int) (*big.Int, error) {
	if n <= 0 {
		return big.NewInt(0), nil
	}
	span := new(big.Int).Lsh(big.NewInt(1), uint(n))
	return rand.Int(rand.Reader, span)
}
