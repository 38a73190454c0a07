package cmb

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// ParseRange parses a size range: "k" for a single size, or "min..max" or
// "min-max". min may exceed max.
func ParseRange(s string) (min, max uint32, err error) {
	s = strings.TrimSpace(s)
	lo, hi, found := strings.Cut(s, "..")
	if !found {
		lo, hi, found = strings.Cut(s, "-")
	}
	if min, err = parseUint[uint32](lo); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if !found {
		return min, min, nil
	}
	if max, err = parseUint[uint32](hi); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	return min, max, nil
}

// ParseCount parses a non-negative count of any magnitude. Zero means no
// limit.
func ParseCount(s string) (*big.Int, error) {
	c, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || c.Sign() < 0 {
		return nil, fmt.Errorf("count %q: %w", s, ErrInvalidRange)
	}
	return c, nil
}

func parseUint[T constraints.Unsigned](s string) (T, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || uint64(T(v)) != v {
		return 0, ErrInvalidRange
	}
	return T(v), nil
}
