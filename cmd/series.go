package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bondladder"
	"github.com/etnz/bondladder/renderer"
	"github.com/google/subcommands"
)

// seriesCmd holds the flags for the 'series' subcommand.
type seriesCmd struct {
	ledger bool
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "display the portfolio value time series" }
func (*seriesCmd) Usage() string {
	return `blsim series [-ledger]

  Replays the simulation and displays the daily portfolio valuation.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.ledger, "ledger", false, "display the cash ledger instead of the valuation series")
}

func (c *seriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, status := replay(ctx)
	if res == nil {
		return status
	}
	if c.ledger {
		printMarkdown(renderer.LedgerMarkdown(res.Ledger))
	} else {
		printMarkdown(renderer.SeriesMarkdown(res.Series()))
	}
	return subcommands.ExitSuccess
}

// replay loads the inputs and re-runs the simulation. The replay is
// deterministic, so reports need no stored state.
func replay(ctx context.Context) (*bondladder.Result, subcommands.ExitStatus) {
	cfg, market, flows, err := loadInputs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	sim, err := bondladder.NewSimulation(*cfg, market, flows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	res, err := sim.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return res, subcommands.ExitSuccess
}
