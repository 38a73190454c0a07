// Package cmb enumerates combinations of a list of items.
//
// A walk selects every combination whose size lies in a configured range and
// hands each one, in a fixed deterministic order, to an Action. Sizes are
// visited from Config.SizeMin to Config.SizeMax (descending when SizeMin is
// larger) and every size block is walked in lexicographic order of the item
// positions. Each combination has a 1-based rank in that order; a walk can
// start at any rank and stop after any number of combinations.
//
// Two precisions are provided with the same behaviour:
//   - Cmb and Count use 64-bit arithmetic and report ErrOverflow when a count
//     does not fit.
//   - CmbBig and CountBig use math/big and never overflow.
//
// Example, the first three pairs of four items:
//
//	cfg := &cmb.Config{SizeMin: 2, SizeMax: 2, Count: 3}
//	cmb.Cmb(ctx, cfg, []string{"a", "b", "c", "d"}, nil)
//
// prints "a b", "a c" and "a d".
package cmb

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/rayozzie/cmb/pkg/num"
	"github.com/rayozzie/cmb/pkg/walk"
)

// Version of the library and the cmb command.
const Version = "1.3"

var (
	// ErrOverflow reports a count that does not fit in 64 bits.
	ErrOverflow = num.ErrOverflow
	// ErrInvalidRange reports malformed size, start or count text.
	ErrInvalidRange = errors.New("invalid range")
)

// Action is called once per combination with its rank. items is only valid
// for the duration of the call. A non-zero return stops the walk and is
// returned by Cmb.
type Action[T any] func(seq uint64, items []T) int

// BigAction is the arbitrary-precision form of Action. seq is only valid for
// the duration of the call.
type BigAction[T any] func(seq *big.Int, items []T) int

// CountOne returns C(n,k), the number of k-item combinations of n items.
func CountOne(n, k uint32) (uint64, error) {
	c, err := walk.CountOne[uint64](num.Uint64{}, n, k)
	if err != nil {
		return 0, err
	}
	return *c, nil
}

// CountOneBig returns C(n,k) exactly.
func CountOneBig(n, k uint32) *big.Int {
	c, _ := walk.CountOne[big.Int](num.Big{}, n, k)
	return c
}

// Count returns the number of combinations a walk over nitems items with cfg
// produces. Zero items, or a size range entirely above nitems, count as zero.
func Count(cfg *Config, nitems uint32) (uint64, error) {
	cfg = cfg.orDefault()
	c, err := walk.CountRange[uint64](num.Uint64{}, nitems, cfg.SizeMin, cfg.SizeMax, cfg.ShowEmpty)
	if err != nil {
		return 0, fmt.Errorf("count combinations of %d items: %w", nitems, err)
	}
	return *c, nil
}

// CountBig is Count without an upper bound.
func CountBig(cfg *Config, nitems uint32) *big.Int {
	cfg = cfg.orDefault()
	c, _ := walk.CountRange[big.Int](num.Big{}, nitems, cfg.SizeMin, cfg.SizeMax, cfg.ShowEmpty)
	return c
}

// Cmb walks the combinations of items selected by cfg and calls action for
// each one; a nil action prints them with a Printer built from cfg. It returns
// the first non-zero action result, or zero. An error wrapping ErrOverflow is
// returned, before any action call, when the total does not fit in 64 bits;
// CmbBig can perform the same walk. Printing failures are returned as well.
func Cmb[T any](ctx context.Context, cfg *Config, items []T, action Action[T]) (int, error) {
	cfg = cfg.orDefault()
	var p *Printer
	if action == nil {
		p = NewPrinter(cfg)
		action = PrintAction[T](p)
	}
	ret, err := walk.Walk[uint64](ctx, num.Uint64{}, items, cfg.params(), func(seq *uint64, combo []T) int {
		return action(*seq, combo)
	})
	return finish(p, ret, err)
}

// CmbBig is Cmb with arbitrary-precision ranks. Config.StartBig and
// Config.CountBig are used when set, Config.Start and Config.Count otherwise.
func CmbBig[T any](ctx context.Context, cfg *Config, items []T, action BigAction[T]) (int, error) {
	cfg = cfg.orDefault()
	var p *Printer
	if action == nil {
		p = NewPrinter(cfg)
		action = PrintBigAction[T](p)
	}
	ret, err := walk.Walk[big.Int](ctx, num.Big{}, items, cfg.bigParams(), func(seq *big.Int, combo []T) int {
		return action(seq, combo)
	})
	return finish(p, ret, err)
}

func finish(p *Printer, ret int, err error) (int, error) {
	if p == nil {
		return ret, err
	}
	return ret, errors.Join(err, p.Err(), p.Flush())
}
