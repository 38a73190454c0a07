package walk

import (
	"iter"

	"github.com/rayozzie/cmb/pkg/num"
)

// Sizes is a normalized size range. Init is the first combination size
// visited and Done the last; Init > Done walks larger sizes first.
type Sizes struct {
	Init uint32
	Done uint32
}

// Normalize maps a caller size range onto [1,n]. (0,0) selects every size,
// a single zero bound becomes 1 and bounds above n are clamped to n. It
// reports false when both bounds exceed n, in which case nothing can be
// selected.
func Normalize(n, sizeMin, sizeMax uint32) (Sizes, bool) {
	if n == 0 {
		return Sizes{}, false
	}
	s := Sizes{Init: 1, Done: n}
	if sizeMin != 0 || sizeMax != 0 {
		s = Sizes{Init: max(sizeMin, 1), Done: max(sizeMax, 1)}
	}
	if s.Init > n && s.Done > n {
		return Sizes{}, false
	}
	s.Init = min(s.Init, n)
	s.Done = min(s.Done, n)
	return s, true
}

// Descending reports whether larger sizes are walked first.
func (s Sizes) Descending() bool {
	return s.Init > s.Done
}

// Largest is the biggest size in the range.
func (s Sizes) Largest() uint32 {
	return max(s.Init, s.Done)
}

// Span is the distance between the two bounds.
func (s Sizes) Span() uint32 {
	if s.Descending() {
		return s.Init - s.Done
	}
	return s.Done - s.Init
}

// Whole reports whether the range covers every non-empty size of n items.
func (s Sizes) Whole(n uint32) bool {
	return (s.Init == 1 && s.Done == n) || (s.Init == n && s.Done == 1)
}

// All yields every size from Init to Done in walk order.
func (s Sizes) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if s.Descending() {
			for size := s.Init; size >= s.Done; size-- {
				if !yield(size) {
					return
				}
			}
			return
		}
		for size := s.Init; size <= s.Done; size++ {
			if !yield(size) {
				return
			}
		}
	}
}

// CountOne returns C(n,k).
func CountOne[N any](ar num.Arith[N], n, k uint32) (*N, error) {
	c := ar.New(0)
	if err := ar.Binomial(c, n, k); err != nil {
		return nil, err
	}
	return c, nil
}

// CountRange returns the number of combinations a walk over n items with the
// given size range produces, including the empty combination when showEmpty
// is set. Zero items, or a range entirely above n, count as zero.
func CountRange[N any](ar num.Arith[N], n, sizeMin, sizeMax uint32, showEmpty bool) (*N, error) {
	total := ar.New(0)
	sizes, ok := Normalize(n, sizeMin, sizeMax)
	if !ok {
		return total, nil
	}

	if span := ar.MaxSpan(); span != 0 && sizes.Span() >= span {
		return nil, num.ErrOverflow
	}

	// sum of C(n,k) for k in [0,n] is 2^n
	if sizes.Whole(n) {
		if err := ar.LowMask(total, n); err != nil {
			return nil, err
		}
		if showEmpty {
			if err := ar.Inc(total); err != nil {
				return nil, err
			}
		}
		return total, nil
	}

	if showEmpty {
		if err := ar.Inc(total); err != nil {
			return nil, err
		}
	}
	ncombos := ar.New(0)
	for size := range sizes.All() {
		if err := ar.Binomial(ncombos, n, size); err != nil {
			return nil, err
		}
		if ar.IsZero(ncombos) {
			return nil, num.ErrOverflow
		}
		if err := ar.Add(total, ncombos); err != nil {
			return nil, err
		}
	}
	return total, nil
}
