package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/rayozzie/cmb"
	"github.com/rayozzie/cmb/pkg/input"
	"github.com/rayozzie/cmb/pkg/rng"
	"github.com/rayozzie/cmb/pkg/trace"
)

const usageText = `Usage:
  cmb [options] [item ...]

Options:
  -0          NUL terminate each combination instead of newline
  -c num      Produce at most num combinations (default: all)
  -d str      Item delimiter (default: " ")
  -e          Show the empty combination
  -i start    Start at rank num, -num from the end, or random
  -k size     Combination sizes: k, min..max or min-max (min > max counts down)
  -n num      Use only the first num items
  -p str      Prefix each combination with str
  -s str      Suffix each combination with str
  -t          Print the total number of combinations and exit
  -N          Prefix each combination with its rank
  -f file     Read items from file, one per line ("-" for stdin)
  -z          Items read with -f are NUL terminated
  -big        Always use arbitrary precision
  -verbose    Enable debug output; -verbose=2 or -verbose=trace adds tracing
  -version    Print the version and exit

Environment:
  CMB_DELIMITER CMB_PREFIX CMB_SUFFIX CMB_NUL CMB_EMPTY CMB_NUMBERS
  CMB_VERBOSE CMB_BIG set defaults for the matching options.
`

// envDefaults are option defaults taken from the environment.
type envDefaults struct {
	Delimiter string `env:"CMB_DELIMITER" envDefault:" "`
	Prefix    string `env:"CMB_PREFIX"`
	Suffix    string `env:"CMB_SUFFIX"`
	Nul       bool   `env:"CMB_NUL"`
	Empty     bool   `env:"CMB_EMPTY"`
	Numbers   bool   `env:"CMB_NUMBERS"`
	Verbose   trace.LogLevel `env:"CMB_VERBOSE"`
	Big       bool   `env:"CMB_BIG"`
}

type options struct {
	cfg       cmb.Config
	delimiter string
	count     string
	start     string
	sizes     string
	limit     uint
	total     bool
	file      string
	nulInput  bool
	big       bool
	verbose   trace.LogLevel
	version   bool
	arguments []string
}

func parseOptions(args []string, environ map[string]string, stderr io.Writer) (*options, error) {
	var defs envDefaults
	if err := env.ParseWithOptions(&defs, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	o := &options{}
	fs := flag.NewFlagSet("cmb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usageText) }
	fs.BoolVar(&o.cfg.NulTerminate, "0", defs.Nul, "NUL terminate combinations")
	fs.StringVar(&o.count, "c", "", "maximum number of combinations")
	fs.StringVar(&o.delimiter, "d", defs.Delimiter, "item delimiter")
	fs.BoolVar(&o.cfg.ShowEmpty, "e", defs.Empty, "show the empty combination")
	fs.StringVar(&o.start, "i", "", "starting rank, -rank from the end, or random")
	fs.StringVar(&o.sizes, "k", "", "combination size or size range")
	fs.UintVar(&o.limit, "n", 0, "use only the first num items")
	fs.StringVar(&o.cfg.Prefix, "p", defs.Prefix, "combination prefix")
	fs.StringVar(&o.cfg.Suffix, "s", defs.Suffix, "combination suffix")
	fs.BoolVar(&o.total, "t", false, "print the total and exit")
	fs.BoolVar(&o.cfg.ShowNumbers, "N", defs.Numbers, "prefix combinations with their rank")
	fs.StringVar(&o.file, "f", "", "read items from file")
	fs.BoolVar(&o.nulInput, "z", false, "items in file are NUL terminated")
	fs.BoolVar(&o.big, "big", defs.Big, "always use arbitrary precision")
	o.verbose = defs.Verbose
	fs.Var(levelFlag{&o.verbose}, "verbose", "enable debug output, or tracing with -verbose=2")
	fs.BoolVar(&o.version, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.arguments = fs.Args()
	o.cfg.Delimiter = &o.delimiter
	if len(o.arguments) == 0 && o.file == "" && !o.cfg.ShowEmpty && !o.version {
		// at least one item is required
		fs.Usage()
		return nil, flag.ErrHelp
	}

	if o.sizes != "" {
		lo, hi, err := cmb.ParseRange(o.sizes)
		if err != nil {
			return nil, fmt.Errorf("invalid -k: %w", err)
		}
		o.cfg.SizeMin, o.cfg.SizeMax = lo, hi
	}
	return o, nil
}

// levelFlag is a boolean-style flag that also takes a level: -verbose,
// -verbose=2 or -verbose=trace.
type levelFlag struct {
	level *trace.LogLevel
}

func (f levelFlag) String() string {
	if f.level == nil {
		return ""
	}
	return f.level.String()
}

func (f levelFlag) Set(s string) error {
	return f.level.UnmarshalText([]byte(s))
}

func (f levelFlag) IsBoolFlag() bool { return true }

// run executes the cmb command and returns the action result that ended the
// walk, which is non-zero only when printing failed.
func run(ctx context.Context, args []string, environ map[string]string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	o, err := parseOptions(args, environ, stderr)
	if err != nil {
		return 0, err
	}
	if o.version {
		fmt.Fprintf(stdout, "cmb %s\n", cmb.Version)
		return 0, nil
	}

	tracer := trace.NewTracerWithLogger("CMB", o.verbose, log.New(stderr, "", log.LstdFlags))
	ctx = trace.WithContext(ctx, tracer)
	tracer.Debugf("log level %s", tracer.Level())

	items := o.arguments
	switch o.file {
	case "":
	case "-":
		items, err = input.ReadItems(ctx, stdin, o.nulInput)
	default:
		items, err = input.ReadFile(ctx, o.file, o.nulInput)
	}
	if err != nil {
		return 0, err
	}
	if o.limit > 0 && uint(len(items)) > o.limit {
		items = items[:o.limit]
	}
	nitems := uint32(len(items))
	o.cfg.Output = stdout

	useBig := o.big
	total, err := cmb.Count(&o.cfg, nitems)
	switch {
	case errors.Is(err, cmb.ErrOverflow):
		tracer.Debugf("total does not fit in 64 bits, using arbitrary precision")
		useBig = true
	case err != nil:
		return 0, err
	}

	if o.total {
		if useBig {
			fmt.Fprintln(stdout, cmb.CountBig(&o.cfg, nitems))
		} else {
			fmt.Fprintln(stdout, total)
		}
		return 0, nil
	}

	start, err := cmb.ParseStart(o.start)
	if err != nil {
		return 0, fmt.Errorf("invalid -i: %w", err)
	}
	var count *big.Int
	if o.count != "" {
		if count, err = cmb.ParseCount(o.count); err != nil {
			return 0, fmt.Errorf("invalid -c: %w", err)
		}
	}
	var src rng.Source
	if start.Random {
		if src, err = rng.NewDefault(); err != nil {
			return 0, err
		}
	}

	if !useBig {
		rank, err := start.Resolve(ctx, total, src)
		switch {
		case errors.Is(err, cmb.ErrOverflow):
			useBig = true
		case err != nil:
			return 0, err
		case count != nil && !count.IsUint64():
			useBig = true
		default:
			if rank > total {
				tracer.Infof("Warning: start %d is past the last of %d combinations", rank, total)
			}
			o.cfg.Start = rank
			if count != nil {
				o.cfg.Count = count.Uint64()
			}
			tracer.Debugf("walking %d items, start %d, count %d", nitems, o.cfg.Start, o.cfg.Count)
			return cmb.Cmb(ctx, &o.cfg, items, nil)
		}
	}

	bigTotal := cmb.CountBig(&o.cfg, nitems)
	rank, err := start.ResolveBig(ctx, bigTotal, src)
	if err != nil {
		return 0, err
	}
	if rank.Cmp(bigTotal) > 0 {
		tracer.Infof("Warning: start %s is past the last of %s combinations", rank, bigTotal)
	}
	o.cfg.StartBig = rank
	o.cfg.CountBig = count
	tracer.Debugf("walking %d items with arbitrary precision, start %s", nitems, rank)
	return cmb.CmbBig(ctx, &o.cfg, items, nil)
}

func main() {
	ret, err := run(context.Background(), os.Args[1:], nil, os.Stdin, os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		trace.NewTracer("cmb", trace.LogLevelNormal).Error(err)
		os.Exit(1)
	}
	os.Exit(ret)
}
