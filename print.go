package cmb

import (
	"bufio"
	"fmt"
	"math/big"
	"strconv"
)

// Printer writes combinations in the text format of the cmb command:
//
//	[rank " "] prefix item delimiter item ... suffix terminator
//
// Output is buffered; call Flush when done. The first write error is kept and
// every later write is skipped.
type Printer struct {
	w          *bufio.Writer
	delimiter  string
	prefix     string
	suffix     string
	terminator byte
	numbers    bool

	seqbuf []byte
	err    error
}

// NewPrinter returns a Printer formatting as cfg describes and writing to
// cfg.Output.
func NewPrinter(cfg *Config) *Printer {
	cfg = cfg.orDefault()
	p := &Printer{
		w:          bufio.NewWriter(cfg.output()),
		delimiter:  cfg.delimiter(),
		prefix:     cfg.Prefix,
		suffix:     cfg.Suffix,
		terminator: '\n',
		numbers:    cfg.ShowNumbers,
	}
	if cfg.NulTerminate {
		p.terminator = 0
	}
	return p
}

// Err returns the first write error.
func (p *Printer) Err() error {
	return p.err
}

// Flush writes any buffered output.
func (p *Printer) Flush() error {
	if p.err != nil {
		return nil
	}
	if err := p.w.Flush(); err != nil {
		p.err = fmt.Errorf("write combinations: %w", err)
		return p.err
	}
	return nil
}

// PrintAction returns an Action that prints through p. It stops the walk
// with 1 on a write error.
func PrintAction[T any](p *Printer) Action[T] {
	return func(seq uint64, items []T) int {
		if p.numbers {
			p.seqbuf = strconv.AppendUint(p.seqbuf[:0], seq, 10)
		}
		return Print(p, items)
	}
}

// PrintBigAction is PrintAction for CmbBig.
func PrintBigAction[T any](p *Printer) BigAction[T] {
	return func(seq *big.Int, items []T) int {
		if p.numbers {
			p.seqbuf = seq.Append(p.seqbuf[:0], 10)
		}
		return Print(p, items)
	}
}

// Print writes one combination, numbered with the rank last passed to an
// action built on p. It returns 1 once a write has failed, 0 otherwise.
func Print[T any](p *Printer, items []T) int {
	if p.err != nil {
		return 1
	}
	w := p.w
	if p.numbers {
		w.Write(p.seqbuf)
		w.WriteByte(' ')
	}
	w.WriteString(p.prefix)
	for i, item := range items {
		if i > 0 {
			w.WriteString(p.delimiter)
		}
		writeItem(w, item)
	}
	w.WriteString(p.suffix)
	if err := w.WriteByte(p.terminator); err != nil {
		p.err = fmt.Errorf("write combinations: %w", err)
		return 1
	}
	return 0
}

func writeItem[T any](w *bufio.Writer, item T) {
	switch v := any(item).(type) {
	case string:
		w.WriteString(v)
	case []byte:
		w.Write(v)
	case fmt.Stringer:
		w.WriteString(v.String())
	default:
		fmt.Fprint(w, v)
	}
}
