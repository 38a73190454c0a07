// Package num provides the integer arithmetic used to count and rank
// combinations.
//
// The walker in pkg/walk is written once against the Arith interface and is
// instantiated with one of two backends:
//
//   - Uint64, bounded to machine 64-bit arithmetic. Every operation that could
//     wrap reports ErrOverflow instead.
//   - Big, backed by math/big. Nothing overflows; values are bounded only by
//     memory.
//
// All operations work in place on pointers so that the hot path of an
// enumeration (rank bookkeeping per combination) does not allocate.
package num

import "errors"

// ErrOverflow is returned when a bounded computation cannot represent its
// result.
var ErrOverflow = errors.New("integer overflow")

// Arith is the set of operations a rank type N must support.
type Arith[N any] interface {
	// Name identifies the backend in log output.
	Name() string

	// New allocates a value initialized to v.
	New(v uint64) *N
	// Set copies src into dst.
	Set(dst, src *N)

	// Binomial stores C(n,k) into dst. C(n,k) is zero when k > n.
	Binomial(dst *N, n, k uint32) error
	// LowMask stores 2^n - 1 into dst.
	LowMask(dst *N, n uint32) error
	// MaxSpan is the widest size span a range sum may cover before it is
	// considered unrepresentable. Zero means unlimited.
	MaxSpan() uint32

	// Add sets dst = dst + x.
	Add(dst, x *N) error
	// Sub sets dst = dst - x. The caller guarantees dst >= x.
	Sub(dst, x *N)
	// Inc sets dst = dst + 1.
	Inc(dst *N) error
	// Dec sets dst = dst - 1. The caller guarantees dst > 0.
	Dec(dst *N)

	Cmp(x, y *N) int
	IsZero(x *N) bool
	IsOne(x *N) bool

	// Format renders x in base 10.
	Format(x *N) string
}
