package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bondladder/renderer"
	"github.com/google/subcommands"
)

// positionsCmd holds the flags for the 'positions' subcommand.
type positionsCmd struct {
	instrument string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display the position history of an instrument" }
func (*positionsCmd) Usage() string {
	return `blsim positions -i <instrument>

  Replays the simulation and displays the daily position records of one
  instrument.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.instrument, "i", "", "Instrument id to report on")
}

func (c *positionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.instrument == "" {
		fmt.Fprintln(os.Stderr, "Error: -i <instrument> is required")
		return subcommands.ExitUsageError
	}
	res, status := replay(ctx)
	if res == nil {
		return status
	}
	records := res.Positions.ForInstrument(c.instrument)
	if len(records) == 0 {
		fmt.Fprintf(os.Stderr, "No records for instrument %q\n", c.instrument)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PositionsMarkdown(c.instrument, records))
	return subcommands.ExitSuccess
}
