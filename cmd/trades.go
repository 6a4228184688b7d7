package cmd

import (
	"context"
	"flag"

	"github.com/etnz/bondladder/renderer"
	"github.com/google/subcommands"
)

// tradesCmd holds the flags for the 'trades' subcommand.
type tradesCmd struct{}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "display the trade log of a simulation" }
func (*tradesCmd) Usage() string {
	return `blsim trades

  Replays the simulation and displays every buy and sell it generated.
`
}

func (c *tradesCmd) SetFlags(*flag.FlagSet) {}

func (c *tradesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, status := replay(ctx)
	if res == nil {
		return status
	}
	printMarkdown(renderer.TradesMarkdown(res.Positions))
	return subcommands.ExitSuccess
}
