package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/MuriData/muri-sectorshape/pkg/sector"
	"github.com/MuriData/muri-sectorshape/pkg/shape"
	"github.com/consensys/gnark/logger"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// options are the global flags shared by every command.
type options struct {
	json bool
	out  io.Writer
	log  zerolog.Logger
}

// commandEntry pairs a command with its one-line description.
type commandEntry struct {
	Run         func(opts *options, args []string) error
	Description string
}

// commandRegistry maps command names to their entries.
var commandRegistry = map[string]commandEntry{
	"list":      {Run: runList, Description: "show every supported sector size and its tree shape"},
	"show":      {Run: runShow, Description: "show the tree shape of the given sector sizes"},
	"canonical": {Run: runCanonical, Description: "compute the canonical shape of any power-of-two size"},
	"verify":    {Run: runVerify, Description: "check the shape registry and dispatcher against the canonical formula"},
}

var commandOrder = []string{"list", "show", "canonical", "verify"}

func main() {
	var jsonOut bool
	var logLevel string

	flagSet := pflag.NewFlagSet("shapes", pflag.ContinueOnError)
	flagSet.BoolVar(&jsonOut, "json", false, "write JSON instead of a table")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	flagSet.Usage = func() { printUsage(flagSet) }

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --log-level %q: %v\n", logLevel, err)
		os.Exit(2)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	logger.Set(log)

	args := flagSet.Args()
	if len(args) == 0 {
		printUsage(flagSet)
		os.Exit(1)
	}

	name := args[0]
	entry, ok := commandRegistry[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", name)
		printUsage(flagSet)
		os.Exit(1)
	}

	opts := &options{json: jsonOut, out: os.Stdout, log: log}
	if err := entry.Run(opts, args[1:]); err != nil {
		log.Fatal().Err(err).Str("command", name).Msg("command failed")
	}
}

// shapeRow is one line of list/show output.
type shapeRow struct {
	Size      sector.Size `json:"size"`
	Bytes     uint64      `json:"bytes"`
	Category  string      `json:"category"`
	Base      int         `json:"base"`
	Sub       int         `json:"sub"`
	Top       int         `json:"top"`
	BaseTrees int         `json:"baseTrees"`
	Canonical bool        `json:"canonical"`
}

func rowFor(s sector.Size) (shapeRow, error) {
	c, ok := shape.Classify(s.Bytes())
	if !ok {
		return shapeRow{}, fmt.Errorf("%w: %d bytes", sector.ErrUnsupportedSectorSize, s.Bytes())
	}
	a := c.Arity()
	return shapeRow{
		Size:      s,
		Bytes:     s.Bytes(),
		Category:  c.String(),
		Base:      a.Base,
		Sub:       a.Sub,
		Top:       a.Top,
		BaseTrees: a.BaseTrees(),
		Canonical: shape.IsCanonical(s.Bytes()),
	}, nil
}

func runList(opts *options, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("list takes no arguments")
	}
	rows := make([]shapeRow, 0, len(sector.Sizes()))
	for _, s := range sector.Sizes() {
		row, err := rowFor(s)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return writeRows(opts, rows)
}

func runShow(opts *options, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show needs at least one sector size")
	}

	var rows []shapeRow
	var failed int
	for _, arg := range args {
		s, err := sector.Parse(arg)
		if err != nil {
			opts.log.Error().Err(err).Str("input", arg).Msg("skipping sector size")
			failed++
			continue
		}
		row, err := rowFor(s)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	if err := writeRows(opts, rows); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d sizes are unsupported", failed, len(args))
	}
	return nil
}

// canonicalRow is one line of canonical output.
type canonicalRow struct {
	Bytes     uint64 `json:"bytes"`
	Base      int    `json:"base"`
	Sub       int    `json:"sub"`
	Top       int    `json:"top"`
	Supported bool   `json:"supported"`
}

func runCanonical(opts *options, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("canonical needs at least one size")
	}

	rows := make([]canonicalRow, 0, len(args))
	for _, arg := range args {
		n, err := humanize.ParseBytes(arg)
		if err != nil {
			return fmt.Errorf("parse size %q: %w", arg, err)
		}
		a, err := shape.CanonicalShape(n)
		if err != nil {
			return err
		}
		_, supported := shape.Classify(n)
		rows = append(rows, canonicalRow{Bytes: n, Base: a.Base, Sub: a.Sub, Top: a.Top, Supported: supported})
	}

	if opts.json {
		return writeJSON(opts.out, rows)
	}
	tw := tabwriter.NewWriter(opts.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BYTES\tHUMAN\tSHAPE\tSUPPORTED")
	for _, r := range rows {
		a := shape.Arity{Base: r.Base, Sub: r.Sub, Top: r.Top}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", humanize.Comma(int64(r.Bytes)), humanize.IBytes(r.Bytes), a, r.Supported)
	}
	return tw.Flush()
}

// dispatchedArity reports the arity of the shape it was instantiated with.
func dispatchedArity[S shape.Shape](sector.Size) (shape.Arity, error) {
	var s S
	return s.Arity(), nil
}

func runVerify(opts *options, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("verify takes no arguments")
	}

	if err := shape.VerifyRegistry(); err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	fns := shape.Funcs[sector.Size, shape.Arity]{
		Base: dispatchedArity[shape.Base],
		Sub2: dispatchedArity[shape.Sub2],
		Sub8: dispatchedArity[shape.Sub8],
		Top2: dispatchedArity[shape.Top2],
	}

	var errs []error
	for _, s := range sector.Sizes() {
		got, err := shape.WithShapeEnum(s, fns, s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s, err))
			continue
		}
		c, _ := shape.Classify(s.Bytes())
		if got != c.Arity() {
			errs = append(errs, fmt.Errorf("%s: dispatched %s, registry %s", s, got, c.Arity()))
			continue
		}
		if shape.IsCanonical(s.Bytes()) {
			want, err := shape.CanonicalShape(s.Bytes())
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", s, err))
				continue
			}
			if got != want {
				errs = append(errs, fmt.Errorf("%s: dispatched %s, canonical %s", s, got, want))
				continue
			}
		}
		opts.log.Debug().Stringer("size", s).Stringer("shape", got).Bool("canonical", shape.IsCanonical(s.Bytes())).Msg("verified")
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	opts.log.Info().Int("sizes", len(sector.Sizes())).Msg("registry and dispatcher agree with the canonical shape")
	return nil
}

func writeRows(opts *options, rows []shapeRow) error {
	if opts.json {
		return writeJSON(opts.out, rows)
	}
	tw := tabwriter.NewWriter(opts.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SIZE\tBYTES\tCATEGORY\tSHAPE\tBASE TREES\tCANONICAL")
	for _, r := range rows {
		a := shape.Arity{Base: r.Base, Sub: r.Sub, Top: r.Top}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%v\n", r.Size, humanize.Comma(int64(r.Bytes)), r.Category, a, r.BaseTrees, r.Canonical)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintln(os.Stderr, `Usage:
  go run ./cmd/shapes [flags] <command> [args]

Commands:`)
	for _, name := range commandOrder {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", name, commandRegistry[name].Description)
	}
	fmt.Fprintln(os.Stderr, `
Sizes may be byte counts (34359738368) or IEC units (32GiB, 512MiB).

Flags:`)
	fmt.Fprint(os.Stderr, flagSet.FlagUsages())
}
