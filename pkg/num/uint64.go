package num

import (
	"math"
	"math/bits"
	"strconv"
)

// Uint64 is the bounded backend, operating on plain uint64 values.
//
// It is the fast path for ordinary walks: ranks and counts are machine words
// and advancing the rank of a combination is a single increment. The price
// is range. C(n,k) stops fitting at n = 68 for k = n/2, and the sum over every
// size fits up to n = 64, and at 64 only without the empty set.
//
// Overflow handling:
//   - Binomial, LowMask, Add and Inc detect overflow exactly and return
//     ErrOverflow, leaving dst unchanged.
//   - Sub and Dec cannot fail under their documented preconditions and do
//     not check.
//
// Callers that receive ErrOverflow can repeat the same computation with Big.
type Uint64 struct{}

var _ Arith[uint64] = Uint64{}

// Name returns "uint64".
func (Uint64) Name() string { return "uint64" }

// New returns a pointer to a fresh copy of v.
func (Uint64) New(v uint64) *uint64 {
	x := v
	return &x
}

// Set copies src into dst.
func (Uint64) Set(dst, src *uint64) { *dst = *src }

// Binomial evaluates z_i = z_{i-1} * (n-i+1) / i with a 128-bit intermediate.
// Each z_i is C(n,i) and therefore exact; with k folded to min(k, n-k) the
// intermediates never exceed the result, so the first quotient that does not
// fit in 64 bits means the result does not either.
func (Uint64) Binomial(dst *uint64, n, k uint32) error {
	if k > n {
		*dst = 0
		return nil
	}
	if k > n-k {
		k = n - k
	}
	z := uint64(1)
	for i := uint64(1); i <= uint64(k); i++ {
		hi, lo := bits.Mul64(z, uint64(n)-i+1)
		if hi >= i {
			return ErrOverflow
		}
		z, _ = bits.Div64(hi, lo, i)
	}
	if z == 0 {
		return ErrOverflow
	}
	*dst = z
	return nil
}

// LowMask stores 2^n - 1, the number of non-empty subsets of n items. It
// overflows for n > 64.
func (Uint64) LowMask(dst *uint64, n uint32) error {
	switch {
	case n == 0:
		*dst = 0
	case n <= 64:
		*dst = math.MaxUint64 >> (64 - n)
	default:
		return ErrOverflow
	}
	return nil
}

// MaxSpan is 64: a range sum over 65 or more sizes can only fit when it is
// the whole range, which CountRange handles through LowMask.
func (Uint64) MaxSpan() uint32 { return 64 }

// Add sets dst = dst + x, reporting ErrOverflow on carry.
func (Uint64) Add(dst, x *uint64) error {
	sum, carry := bits.Add64(*dst, *x, 0)
	if carry != 0 {
		return ErrOverflow
	}
	*dst = sum
	return nil
}

// Sub sets dst = dst - x.
func (Uint64) Sub(dst, x *uint64) { *dst -= *x }

// Inc sets dst = dst + 1, reporting ErrOverflow at math.MaxUint64.
func (Uint64) Inc(dst *uint64) error {
	if *dst == math.MaxUint64 {
		return ErrOverflow
	}
	*dst++
	return nil
}

// Dec sets dst = dst - 1.
func (Uint64) Dec(dst *uint64) { *dst-- }

// Cmp returns -1, 0 or +1 as x is less than, equal to or greater than y.
func (Uint64) Cmp(x, y *uint64) int {
	switch {
	case *x < *y:
		return -1
	case *x > *y:
		return 1
	}
	return 0
}

// IsZero reports whether x is 0.
func (Uint64) IsZero(x *uint64) bool { return *x == 0 }

// IsOne reports whether x is 1.
func (Uint64) IsOne(x *uint64) bool { return *x == 1 }

// Format renders x in base 10.
func (Uint64) Format(x *uint64) string { return strconv.FormatUint(*x, 10) }
