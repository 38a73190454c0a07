package cmb

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/rayozzie/cmb/pkg/rng"
	"github.com/rayozzie/cmb/pkg/trace"
)

// Start is a parsed starting rank. It is resolved against the total number of
// combinations once that is known.
type Start struct {
	// Random picks a rank uniformly from the whole walk.
	Random bool
	// FromEnd counts Rank back from the last combination, -1 being the last.
	FromEnd bool
	// Rank is the 1-based rank, or the distance from the end with FromEnd.
	Rank *big.Int
}

// ParseStart parses "num", "-num" or any prefix of "random". The empty string
// starts at the beginning.
func ParseStart(s string) (Start, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Start{Rank: new(big.Int)}, nil
	case strings.HasPrefix("random", s):
		return Start{Random: true}, nil
	}
	var st Start
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		st.FromEnd = true
		s = rest
	}
	rank, ok := new(big.Int).SetString(s, 10)
	if !ok || rank.Sign() < 0 {
		return Start{}, fmt.Errorf("start %q: %w", s, ErrInvalidRange)
	}
	st.Rank = rank
	return st, nil
}

// Resolve returns the rank to pass as Config.Start for a walk of total
// combinations. A rank counted back past the first combination starts at the
// beginning.
func (s Start) Resolve(ctx context.Context, total uint64, src rng.Source) (uint64, error) {
	log := trace.FromContext(ctx).WithPrefix("START")

	switch {
	case s.Random:
		if total == 0 {
			return 0, nil
		}
		r, err := rng.Uint64n(ctx, src, total)
		if err != nil {
			return 0, fmt.Errorf("random start: %w", err)
		}
		log.Debugf("random start %d of %d", r+1, total)
		return r + 1, nil
	case s.Rank == nil || s.Rank.Sign() == 0:
		return 0, nil
	case !s.Rank.IsUint64():
		if s.FromEnd {
			return 1, nil
		}
		return 0, fmt.Errorf("start %s: %w", s.Rank, ErrOverflow)
	}
	rank := s.Rank.Uint64()
	if !s.FromEnd {
		return rank, nil
	}
	if rank > total {
		log.Debugf("start -%d is before the first of %d combinations", rank, total)
		return 1, nil
	}
	return total - rank + 1, nil
}

// ResolveBig is Resolve for CmbBig.
func (s Start) ResolveBig(ctx context.Context, total *big.Int, src rng.Source) (*big.Int, error) {
	log := trace.FromContext(ctx).WithPrefix("START")

	switch {
	case s.Random:
		if total.Sign() <= 0 {
			return new(big.Int), nil
		}
		r, err := rng.Intn(ctx, src, total)
		if err != nil {
			return nil, fmt.Errorf("random start: %w", err)
		}
		r.Add(r, bigOne)
		log.Debugf("random start %s of %s", r, total)
		return r, nil
	case s.Rank == nil || s.Rank.Sign() == 0:
		return new(big.Int), nil
	case s.FromEnd:
		if s.Rank.Cmp(total) > 0 {
			log.Debugf("start -%s is before the first of %s combinations", s.Rank, total)
			return big.NewInt(1), nil
		}
		r := new(big.Int).Sub(total, s.Rank)
		return r.Add(r, bigOne), nil
	}
	return new(big.Int).Set(s.Rank), nil
}
