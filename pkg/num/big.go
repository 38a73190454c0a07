package num

import "math/big"

// Big is the arbitrary-precision backend, operating on *big.Int.
//
// No operation overflows, so every error result is nil and MaxSpan is
// unlimited. Advancing the rank of a walk updates one big.Int in place.
type Big struct{}

var (
	_ Arith[big.Int] = Big{}

	bigOne = big.NewInt(1)
)

// Name returns "big".
func (Big) Name() string { return "big" }

func (Big) New(v uint64) *big.Int { return new(big.Int).SetUint64(v) }

func (Big) Set(dst, src *big.Int) { dst.Set(src) }

// Binomial stores C(n,k) using big.Int.Binomial.
func (Big) Binomial(dst *big.Int, n, k uint32) error {
	if k > n {
		dst.SetInt64(0)
		return nil
	}
	dst.Binomial(int64(n), int64(k))
	return nil
}

// LowMask stores 2^n - 1.
func (Big) LowMask(dst *big.Int, n uint32) error {
	dst.Lsh(bigOne, uint(n))
	dst.Sub(dst, bigOne)
	return nil
}

func (Big) MaxSpan() uint32 { return 0 }

func (Big) Add(dst, x *big.Int) error {
	dst.Add(dst, x)
	return nil
}

func (Big) Sub(dst, x *big.Int) { dst.Sub(dst, x) }

func (Big) Inc(dst *big.Int) error {
	dst.Add(dst, bigOne)
	return nil
}

func (Big) Dec(dst *big.Int) { dst.Sub(dst, bigOne) }

func (Big) Cmp(x, y *big.Int) int { return x.Cmp(y) }

func (Big) IsZero(x *big.Int) bool { return x.Sign() == 0 }

// IsOne reports whether x is 1 without allocating.
func (Big) IsOne(x *big.Int) bool { return x.IsInt64() && x.Int64() == 1 }

func (Big) Format(x *big.Int) string { return x.String() }
