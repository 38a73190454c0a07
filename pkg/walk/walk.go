// Package walk enumerates combinations of a fixed item list in rank order.
//
// A walk visits every combination whose size lies in a configured range.
// Sizes are visited one block at a time (ascending or descending) and each
// block is walked in lexicographic order of item indices. The rank of a
// combination is its 1-based position in the whole walk, across blocks.
//
// Stepping from one combination to the next uses two index arrays per block:
// position holds the current combination and backstop the last one,
// {n-k, ..., n-1}. The rightmost slot still below its backstop is advanced and
// every slot after it is derived from that slot by arithmetic alone, so a step
// costs amortized O(1).
//
// Seeking to a start rank skips whole blocks by subtracting their size and
// places the first combination of the landing block directly from the
// remaining offset, so nothing before the start rank is generated.
package walk

import (
	"context"
	"fmt"
	"math/big"

	"github.com/dustin/go-humanize"

	"github.com/rayozzie/cmb/pkg/num"
	"github.com/rayozzie/cmb/pkg/trace"
)

// Params configures one walk. A nil or <= 1 Start walks from the first
// combination; a nil or zero Count places no limit on the number of
// combinations produced.
type Params[N any] struct {
	SizeMin   uint32
	SizeMax   uint32
	ShowEmpty bool
	Start     *N
	Count     *N
}

// Visit is called once per produced combination with its rank. combo is a
// window into a buffer reused for the whole walk and must be copied to be
// retained; seq must not be retained either. A non-zero return stops the walk
// and becomes the result of Walk.
type Visit[N any, T any] func(seq *N, combo []T) int

type walker[N any, T any] struct {
	ar    num.Arith[N]
	items []T
	n     uint32
	visit Visit[N, T]

	position []uint32
	backstop []uint32
	window   []T

	seeking   bool
	seek      *N // rank of the target relative to the current block
	limited   bool
	remaining *N
	seq       *N
	emitted   bool

	retval int
	err    error
}

// Walk enumerates the combinations of items selected by p, calling visit for
// each one. It returns the first non-zero visit result, or zero when the walk
// ran to completion or reached its count limit. When the backend cannot
// represent the total number of combinations, Walk returns an error wrapping
// num.ErrOverflow before visiting anything.
func Walk[N any, T any](ctx context.Context, ar num.Arith[N], items []T, p Params[N], visit Visit[N, T]) (int, error) {
	log := trace.FromContext(ctx).WithPrefix("WALK")

	n := uint32(len(items))
	if n == 0 {
		return 0, nil
	}
	total, err := CountRange(ar, n, p.SizeMin, p.SizeMax, p.ShowEmpty)
	if err != nil {
		// Nothing is produced unless the whole walk can be counted.
		return 0, fmt.Errorf("counting combinations of %d items in %s: %w", n, ar.Name(), err)
	}
	if ar.IsZero(total) {
		log.Debugf("nothing to enumerate for %d items, sizes %d..%d", n, p.SizeMin, p.SizeMax)
		return 0, nil
	}
	if log.Enabled(trace.LogLevelVerbose) {
		log.Debugf("%s combinations of %d items (%s)", pretty(ar, total), n, ar.Name())
	}
	sizes, _ := Normalize(n, p.SizeMin, p.SizeMax)

	largest := sizes.Largest()
	w := &walker[N, T]{
		ar:       ar,
		items:    items,
		n:        n,
		visit:    visit,
		position: make([]uint32, largest),
		backstop: make([]uint32, largest),
		window:   make([]T, largest),
		seq:      ar.New(1),
	}
	if p.Start != nil && ar.Cmp(p.Start, ar.New(1)) > 0 {
		w.seeking = true
		w.seek = ar.New(0)
		ar.Set(w.seek, p.Start)
		ar.Set(w.seq, p.Start)
	}
	if p.Count != nil && !ar.IsZero(p.Count) {
		w.limited = true
		w.remaining = ar.New(0)
		ar.Set(w.remaining, p.Count)
	}

	// The empty combination sits next to the size-1 end of the walk.
	if p.ShowEmpty && !sizes.Descending() {
		if w.emit(w.window[:0]) {
			return w.retval, w.err
		}
	}

	ncombos := ar.New(0)
	for size := range sizes.All() {
		if err := ar.Binomial(ncombos, n, size); err != nil {
			return w.retval, fmt.Errorf("sizing block of %d from %d items: %w", size, n, err)
		}
		if ar.IsZero(ncombos) {
			return w.retval, fmt.Errorf("sizing block of %d from %d items: %w", size, n, num.ErrOverflow)
		}
		if w.seeking && ar.Cmp(w.seek, ncombos) > 0 {
			ar.Sub(w.seek, ncombos)
			if log.Enabled(trace.LogLevelVerbose) {
				log.Debugf("seek: skipped block of size %d (%s combinations)", size, pretty(ar, ncombos))
			}
			continue
		}
		if log.Enabled(trace.LogLevelVerbose) {
			log.Debugf("block of size %d: %s combinations", size, pretty(ar, ncombos))
		}
		if w.block(size) {
			return w.retval, w.err
		}
	}

	if p.ShowEmpty && sizes.Descending() {
		w.emit(w.window[:0])
	}
	return w.retval, w.err
}

// block walks every combination of the given size. It reports true when the
// walk must stop.
func (w *walker[N, T]) block(size uint32) bool {
	position := w.position[:size]
	backstop := w.backstop[:size]
	window := w.window[:size]

	for i := range backstop {
		backstop[i] = w.n - size + uint32(i)
	}
	if w.seeking {
		// The target is inside this block: seek-1 combinations precede it.
		w.ar.Dec(w.seek)
		if err := w.place(position, w.seek); err != nil {
			w.err = fmt.Errorf("seeking into block of %d from %d items: %w", size, w.n, err)
			return true
		}
		w.seeking = false
	} else {
		for i := range position {
			position[i] = uint32(i)
		}
	}
	for i, p := range position {
		window[i] = w.items[p]
	}
	if w.emit(window) {
		return true
	}

	last := int(size) - 1
	for {
		j := last
		for j >= 0 && position[j] == backstop[j] {
			j--
		}
		if j < 0 {
			return false
		}
		seed := position[j]
		for m := j; m <= last; m++ {
			position[m] = seed + uint32(m-j) + 1
			window[m] = w.items[position[m]]
		}
		if w.emit(window) {
			return true
		}
	}
}

// place sets position to the combination found offset places after the first
// one of its block, consuming offset. Every count involved is bounded by the
// size of the block, so an error here means the backend is inconsistent.
func (w *walker[N, T]) place(position []uint32, offset *N) error {
	k := uint32(len(position))
	tail := w.ar.New(0)
	c := uint32(0)
	for i := uint32(0); i < k; i++ {
		for {
			// combinations that keep slot i at item c
			if err := w.ar.Binomial(tail, w.n-c-1, k-i-1); err != nil {
				return err
			}
			if w.ar.Cmp(offset, tail) < 0 {
				break
			}
			w.ar.Sub(offset, tail)
			c++
		}
		position[i] = c
		c++
	}
	return nil
}

// emit hands one combination to the visitor and applies the count limit. It
// reports true when the walk must stop.
func (w *walker[N, T]) emit(combo []T) bool {
	if w.seeking {
		// Only the empty combination is seen here while seeking; blocks are
		// either skipped whole or entered at their target.
		if !w.ar.IsOne(w.seek) {
			w.ar.Dec(w.seek)
			return false
		}
		w.seeking = false
	}
	if w.emitted {
		if err := w.ar.Inc(w.seq); err != nil {
			w.err = err
			return true
		}
	}
	w.emitted = true

	if w.retval = w.visit(w.seq, combo); w.retval != 0 {
		return true
	}
	if w.limited {
		w.ar.Dec(w.remaining)
		if w.ar.IsZero(w.remaining) {
			return true
		}
	}
	return false
}

func pretty[N any](ar num.Arith[N], x *N) string {
	v, ok := new(big.Int).SetString(ar.Format(x), 10)
	if !ok {
		return ar.Format(x)
	}
	return humanize.BigComma(v)
}
