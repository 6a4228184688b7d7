// Package cmd implements the CLI application to run and inspect bond-ladder
// simulations.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/bondladder"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "simulation")

	c.Register(&seriesCmd{}, "reports")
	c.Register(&tradesCmd{}, "reports")
	c.Register(&positionsCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "simulation.yaml", "Path to the simulation configuration file (YAML)")
var instrumentsFile = flag.String("instruments", "instruments.jsonl", "Path to the instrument metadata table (JSONL)")
var pricesFile = flag.String("prices", "prices.jsonl", "Path to the price observation table (JSONL)")
var cashflowsFile = flag.String("cashflows", "cashflows.jsonl", "Path to the cash-flow event table (JSONL)")

// loadInputs decodes the configuration and the three data tables from the
// app's default file locations.
func loadInputs() (*bondladder.Config, *bondladder.MarketData, *bondladder.CashFlows, error) {
	cfg, err := bondladder.LoadConfig(*configFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config %q: %w", *configFile, err)
	}

	instruments, err := os.Open(*instrumentsFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening instruments table: %w", err)
	}
	defer instruments.Close()
	prices, err := os.Open(*pricesFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening prices table: %w", err)
	}
	defer prices.Close()

	market, err := bondladder.DecodeMarketData(instruments, prices, cfg.Currency)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading market data: %w", err)
	}

	cashflows, err := os.Open(*cashflowsFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening cash-flow table: %w", err)
	}
	defer cashflows.Close()

	flows, err := bondladder.DecodeCashFlows(cashflows, cfg.Currency)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading cash flows: %w", err)
	}
	return cfg, market, flows, nil
}

// printMarkdown renders a markdown document to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
