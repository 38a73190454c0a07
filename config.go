package cmb

import (
	"io"
	"math/big"
	"os"

	"github.com/rayozzie/cmb/pkg/walk"
)

// DefaultDelimiter separates the items of a printed combination.
const DefaultDelimiter = " "

// Config selects and formats the combinations of a walk. The zero value
// walks every non-empty combination from the first one and prints them to
// standard output, one per line.
type Config struct {
	// NulTerminate ends printed combinations with NUL instead of newline.
	NulTerminate bool
	// ShowEmpty includes the empty combination.
	ShowEmpty bool
	// ShowNumbers prefixes each printed combination with its rank.
	ShowNumbers bool

	// Delimiter separates printed items; nil means DefaultDelimiter. An
	// empty delimiter concatenates the items.
	Delimiter *string
	Prefix    string
	Suffix    string

	// SizeMin and SizeMax bound the combination size. Zero for both means
	// every size from 1 to the number of items; a single zero bound means 1.
	// SizeMin above SizeMax walks the sizes in descending order.
	SizeMin uint32
	SizeMax uint32

	// Count limits the number of combinations produced; zero means no limit.
	Count uint64
	// Start is the rank of the first combination produced; 0 and 1 both
	// start at the beginning.
	Start uint64

	// CountBig and StartBig override Count and Start for CmbBig. Values
	// below one are treated as unset.
	CountBig *big.Int
	StartBig *big.Int

	// Output receives printed combinations; nil means standard output.
	Output io.Writer
}

var defaultConfig Config

func (c *Config) orDefault() *Config {
	if c == nil {
		return &defaultConfig
	}
	return c
}

func (c *Config) delimiter() string {
	if c.Delimiter == nil {
		return DefaultDelimiter
	}
	return *c.Delimiter
}

func (c *Config) output() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

func (c *Config) params() walk.Params[uint64] {
	p := walk.Params[uint64]{
		SizeMin:   c.SizeMin,
		SizeMax:   c.SizeMax,
		ShowEmpty: c.ShowEmpty,
	}
	if c.Start > 1 {
		start := c.Start
		p.Start = &start
	}
	if c.Count > 0 {
		count := c.Count
		p.Count = &count
	}
	return p
}

func (c *Config) bigParams() walk.Params[big.Int] {
	p := walk.Params[big.Int]{
		SizeMin:   c.SizeMin,
		SizeMax:   c.SizeMax,
		ShowEmpty: c.ShowEmpty,
	}
	switch {
	case c.StartBig != nil:
		if c.StartBig.Cmp(bigOne) > 0 {
			p.Start = new(big.Int).Set(c.StartBig)
		}
	case c.Start > 1:
		p.Start = new(big.Int).SetUint64(c.Start)
	}
	switch {
	case c.CountBig != nil:
		if c.CountBig.Sign() > 0 {
			p.Count = new(big.Int).Set(c.CountBig)
		}
	case c.Count > 0:
		p.Count = new(big.Int).SetUint64(c.Count)
	}
	return p
}

var bigOne = big.NewInt(1)
