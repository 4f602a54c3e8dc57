package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zpuskas/aupatterns/counter"
	"github.com/zpuskas/aupatterns/pattern"
	"github.com/zpuskas/aupatterns/storage"
)

// command-line options
type options struct {
	side     int           // grid side length
	min, max int           // pattern lengths to consider
	counts   bool          // walk the full grid and report counts
	group    string        // dots to restrict the grid to
	external string        // path of an external counter to sweep with
	internal bool          // sweep combinations with the built-in counter
	random   int           // emit a random pattern of this length
	seed     int64         // seed for random pattern generation
	strict   bool          // reject malformed external counter output
	timeout  time.Duration // per-invocation external counter timeout
	store    bool          // archive results and use the count cache
	verbose  bool          // debug logging
}

var logger *slog.Logger

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("aupatterns", flag.ContinueOnError)
	fs.IntVar(&opts.side, "side", pattern.StandardSideLength, "side length of the dot grid")
	fs.IntVar(&opts.min, "min", pattern.MinScreenLength, "shortest pattern length to count")
	fs.IntVar(&opts.max, "max", 0, "longest pattern length to count (grid size if 0)")
	fs.BoolVar(&opts.counts, "counts", false, "count valid patterns on the whole grid")
	fs.StringVar(&opts.group, "g", "", "count patterns using exactly these `dots`")
	fs.StringVar(&opts.external, "external", "", "sweep combinations through the counter at `path`")
	fs.BoolVar(&opts.internal, "internal", false, "sweep combinations with the built-in counter")
	fs.IntVar(&opts.random, "random", 0, "print a random valid pattern of this `length`")
	fs.Int64Var(&opts.seed, "seed", 0, "seed for -random (time-based if 0)")
	fs.BoolVar(&opts.strict, "strict", false, "reject malformed external counter output")
	fs.DurationVar(&opts.timeout, "timeout", counter.DefaultTimeout, "external counter timeout per combination")
	fs.BoolVar(&opts.store, "store", false, "archive results and use the count cache")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	slog.SetDefault(logger)

	grid, err := pattern.NewGrid(opts.side)
	if err != nil {
		logger.Error("bad grid side", "side", opts.side, "err", err)
		return 2
	}
	if opts.max == 0 || opts.max > grid.PointCount() {
		opts.max = grid.PointCount()
	}
	if opts.min < 1 || opts.min > opts.max {
		logger.Error("bad length range", "min", opts.min, "max", opts.max)
		return 2
	}

	ctx := context.Background()
	if opts.store {
		cacheID, databaseID, err := storage.Connect(ctx)
		if err != nil {
			logger.Error("storage connect failed", "err", err)
			return 1
		}
		logger.Info("storage connected", "cache", cacheID, "database", databaseID)
		defer storage.Close()
	}

	switch {
	case opts.group != "":
		err = groupCounts(out, grid, opts.group)
	case opts.counts:
		err = gridCounts(ctx, out, grid, opts)
	case opts.external != "" || opts.internal:
		err = sweepCombinations(ctx, out, grid, opts)
	case opts.random > 0:
		err = randomPattern(out, grid, opts)
	default:
		err = choiceCounts(out, grid, opts)
	}
	if err != nil {
		logger.Error("run failed", "err", err)
		return 1
	}
	return 0
}

// grouped decimal printing for the big totals
var printer = message.NewPrinter(language.English)

/*

choice counting

*/

// choiceCounts reports how many ways there are to choose each
// number of dots from the grid, without regard to drawing order
// or reachability.
func choiceCounts(out io.Writer, grid *pattern.Grid, opts options) error {
	n := grid.PointCount()
	total := 0
	for k := opts.min; k <= opts.max; k++ {
		choices := pattern.Binomial(n, k)
		fmt.Fprintf(out, "If choosing %d dots out of %d the number of different choices is %d\n",
			k, n, choices)
		total += choices
	}
	printer.Fprintf(out, "Total number of choices: %d\n", total)
	return nil
}

/*

pattern counting

*/

// printCountReport writes per-length counts in the counter
// interchange format, lowest length first, then the total.
func printCountReport(out io.Writer, counts []int, min, max int) {
	total := 0
	for k := min; k <= max && k < len(counts); k++ {
		fmt.Fprintf(out, "Number of patterns for length %d: %d\n", k, counts[k])
		total += counts[k]
	}
	printer.Fprintf(out, "Number of all available patterns: %d\n", total)
}

// groupCounts restricts the grid to the given dots and reports
// the count of valid patterns for every length they allow.  This
// is the contract honored by external counters, so aupatterns
// can serve as one itself.
func groupCounts(out io.Writer, grid *pattern.Grid, digits string) error {
	p, err := pattern.Parse(digits)
	if err != nil {
		return err
	}
	counts, err := grid.CountByLength(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Calculating patterns for dots %s\n", p)
	printCountReport(out, counts, 1, len(counts)-1)
	return nil
}

// gridCounts walks the whole grid and reports the count of
// valid patterns for each length in the configured range.
func gridCounts(ctx context.Context, out io.Writer, grid *pattern.Grid, opts options) error {
	started := time.Now()
	counts, err := grid.CountByLength(pattern.Points(grid.PointCount()))
	if err != nil {
		return err
	}
	printCountReport(out, counts, opts.min, opts.max)
	if opts.store {
		return archiveRun(ctx, "internal", grid, started, counts, opts)
	}
	return nil
}

/*

combination sweeps

*/

// countCombination gets the valid pattern count for one
// combination, from the cache when allowed, then from the given
// counting function.
func countCombination(ctx context.Context, grid *pattern.Grid, p pattern.Pattern,
	opts options, count func(pattern.Pattern) (int, error)) (int, error) {
	digits := p.String()
	if opts.store {
		if n, found, err := storage.CachedCount(grid.SideLength(), digits); err != nil {
			logger.Debug("cache lookup failed", "digits", digits, "err", err)
		} else if found {
			logger.Debug("cache hit", "digits", digits, "count", n)
			return n, nil
		}
	}
	n, err := count(p)
	if err != nil {
		return 0, err
	}
	if opts.store {
		if err := storage.CacheCount(grid.SideLength(), digits, n); err != nil {
			logger.Debug("cache store failed", "digits", digits, "err", err)
		}
	}
	return n, nil
}

// sweepCombinations enumerates every combination of dots for
// each length in the configured range and totals the valid
// pattern counts, one counter invocation per combination.  The
// per-length sums match a whole-grid walk; the sweep exists to
// exercise and cross-check external counters.
func sweepCombinations(ctx context.Context, out io.Writer, grid *pattern.Grid, opts options) error {
	source := "internal"
	count := func(p pattern.Pattern) (int, error) {
		counts, err := grid.CountByLength(p)
		if err != nil {
			return 0, err
		}
		return counts[len(p)], nil
	}
	if opts.external != "" {
		source = opts.external
		d := counter.New(opts.external)
		d.Timeout = opts.timeout
		d.Strict = opts.strict
		d.Logger = logger
		count = func(p pattern.Pattern) (int, error) {
			report, err := d.Count(ctx, p)
			if err != nil {
				return 0, err
			}
			return report.Count, nil
		}
	}

	started := time.Now()
	points := pattern.Points(grid.PointCount())
	counts := make([]int, opts.max+1)
	for k := opts.min; k <= opts.max; k++ {
		combos, err := pattern.Combinations(points, k)
		if err != nil {
			return err
		}
		for _, combo := range combos {
			fmt.Fprintf(out, "Running %s\n", combo)
			n, err := countCombination(ctx, grid, combo, opts, count)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %d\n", combo, n)
			counts[k] += n
		}
		logger.Info("length done", "length", k, "combinations", len(combos), "patterns", counts[k])
	}
	printCountReport(out, counts, opts.min, opts.max)
	if opts.store {
		return archiveRun(ctx, source, grid, started, counts, opts)
	}
	return nil
}

/*

other subcommands

*/

// randomPattern prints one random valid pattern of the
// requested length.
func randomPattern(out io.Writer, grid *pattern.Grid, opts options) error {
	var rng *rand.Rand
	if opts.seed != 0 {
		rng = rand.New(rand.NewSource(opts.seed))
	}
	p, err := grid.RandomPattern(opts.random, rng)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", p)
	return nil
}

// archiveRun saves the counts of a finished sweep or walk.
func archiveRun(ctx context.Context, source string, grid *pattern.Grid,
	started time.Time, counts []int, opts options) error {
	run := &storage.Run{
		Source:     source,
		SideLength: grid.SideLength(),
		Started:    started,
		Counts:     make(map[int]int),
	}
	for k := opts.min; k <= opts.max && k < len(counts); k++ {
		run.Counts[k] = counts[k]
	}
	if err := storage.SaveRun(ctx, run); err != nil {
		return err
	}
	logger.Info("run archived", "id", run.ID, "source", source)
	return nil
}
