package bondladder

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all the parameters of a simulation run.
type Config struct {
	// Currency denominates prices, cash flows and the ledger.
	Currency string `yaml:"currency"`
	// InitialWealth is the cash the ledger opens with on the start date.
	InitialWealth float64 `yaml:"initial_wealth"`
	// Start is the first simulated date.
	Start Date `yaml:"start"`
	// Band is the eligible remaining-maturity window in days.
	Band Band `yaml:"band"`
	// ExcludedKinds lists instrument kinds that are never eligible.
	ExcludedKinds []string `yaml:"excluded_kinds"`
	// Grid is the desired-maturity grid for the initial allocation.
	Grid MaturityGrid `yaml:"grid"`
	// TransactionCost is the fixed per-unit cost, added on buys and
	// subtracted on sells.
	TransactionCost float64 `yaml:"transaction_cost"`
	// GraceDays widens the sell trigger: a position is unwound once its
	// remaining maturity drops below Band.MinDays+GraceDays.
	GraceDays int `yaml:"grace_days"`
	// MaxDates bounds the number of simulated dates; 0 means all trading
	// dates available in the price history.
	MaxDates int `yaml:"max_dates"`
}

// yaml tags on Band fields.
func (b *Band) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		MinDays int `yaml:"min_days"`
		MaxDays int `yaml:"max_days"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	b.MinDays, b.MaxDays = raw.MinDays, raw.MaxDays
	return nil
}

// LoadConfig reads a simulation configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for the constraints the engine relies on.
func (c *Config) Validate() error {
	var errs error
	if c.Currency == "" {
		errs = errors.Join(errs, errors.New("currency is missing"))
	}
	if c.InitialWealth <= 0 {
		errs = errors.Join(errs, fmt.Errorf("initial wealth must be positive, got %v", c.InitialWealth))
	}
	if c.Start.IsZero() {
		errs = errors.Join(errs, errors.New("start date is missing"))
	}
	if c.Band.MinDays >= c.Band.MaxDays {
		errs = errors.Join(errs, fmt.Errorf("maturity band must have min < max, got [%d, %d]", c.Band.MinDays, c.Band.MaxDays))
	}
	if c.TransactionCost < 0 {
		errs = errors.Join(errs, fmt.Errorf("transaction cost must be non-negative, got %v", c.TransactionCost))
	}
	if c.GraceDays < 0 {
		errs = errors.Join(errs, fmt.Errorf("grace days must be non-negative, got %d", c.GraceDays))
	}
	if c.Grid.Points <= 0 || c.Grid.StepMonths <= 0 {
		errs = errors.Join(errs, fmt.Errorf("grid must have positive points and step, got %+v", c.Grid))
	}
	for _, k := range c.ExcludedKinds {
		if _, err := ParseKind(k); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// Excluded returns the excluded kinds as typed values. Validate must have
// succeeded first.
func (c *Config) Excluded() []Kind {
	kinds := make([]Kind, 0, len(c.ExcludedKinds))
	for _, s := range c.ExcludedKinds {
		k, err := ParseKind(s)
		if err != nil {
			continue
		}
		kinds = append(kinds, k)
	}
	return kinds
}

// Wealth returns the initial wealth as Money in the configured currency.
func (c *Config) Wealth() Money { return M(c.InitialWealth, c.Currency) }

// Cost returns the per-unit transaction cost as Money.
func (c *Config) Cost() Money { return M(c.TransactionCost, c.Currency) }

// TriggerDays returns the remaining-maturity threshold below which a held
// position must be unwound.
func (c *Config) TriggerDays() int { return c.Band.MinDays + c.GraceDays }
