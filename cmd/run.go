package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/bondladder"
	"github.com/etnz/bondladder/recorder"
	"github.com/google/subcommands"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	outDir string
	dbPath string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run a bond-ladder simulation" }
func (*runCmd) Usage() string {
	return `blsim run [-o <dir>] [-db <file>]

  Runs the simulation described by the configuration file over the supplied
  price and cash-flow tables, and writes the valuation series, position
  records and ledger entries.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outDir, "o", "", "Directory to write series.jsonl, positions.jsonl and ledger.jsonl to")
	f.StringVar(&c.dbPath, "db", "", "SQLite database to record the run into")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, market, flows, err := loadInputs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	sim, err := bondladder.NewSimulation(*cfg, market, flows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	res, err := sim.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.outDir != "" {
		if err := c.dump(res); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	rec := c.recorder()
	defer rec.Close()
	runID, err := rec.SaveRun(*cfg, res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording run: %v\n", err)
		return subcommands.ExitFailure
	}
	if runID != "" {
		fmt.Printf("Recorded run %s\n", runID)
	}

	points := res.Series()
	last := points[len(points)-1]
	fmt.Printf("Simulated %d dates; final value %s (market %s, cash %s)\n",
		len(points), last.TotalValue, last.MarketValue, last.Cash)
	return subcommands.ExitSuccess
}

func (c *runCmd) recorder() recorder.Recorder {
	if c.dbPath == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(c.dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, falling back to no recording\n", err)
		return recorder.NewNoopRecorder()
	}
	return rec
}

// dump writes the three result tables as JSONL files in the output directory.
func (c *runCmd) dump(res *bondladder.Result) error {
	if err := os.MkdirAll(c.outDir, 0755); err != nil {
		return err
	}
	writers := []struct {
		name   string
		encode func(f *os.File) error
	}{
		{"series.jsonl", func(f *os.File) error { return bondladder.EncodeSeries(f, res.Series()) }},
		{"positions.jsonl", func(f *os.File) error { return bondladder.EncodePositions(f, res.Positions) }},
		{"ledger.jsonl", func(f *os.File) error { return bondladder.EncodeLedger(f, res.Ledger) }},
	}
	for _, w := range writers {
		f, err := os.Create(filepath.Join(c.outDir, w.name))
		if err != nil {
			return err
		}
		if err := w.encode(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
