package bondladder

import "sort"

// MaturityGrid describes the desired-maturity grid: Points target dates
// spaced StepMonths apart, the first one StartMonths after the observation
// date. For example {StartMonths: 87, StepMonths: 3, Points: 12} spans
// 7y3m to 10y out in quarterly steps.
type MaturityGrid struct {
	StartMonths int `yaml:"start_months"`
	StepMonths  int `yaml:"step_months"`
	Points      int `yaml:"points"`
}

// Dates materializes the grid as target maturity dates relative to 'on'.
func (g MaturityGrid) Dates(on Date) []Date {
	dates := make([]Date, 0, g.Points)
	for i := 0; i < g.Points; i++ {
		dates = append(dates, on.AddMonth(g.StartMonths+i*g.StepMonths))
	}
	return dates
}

// SelectUniverse picks, for each grid point, the eligible instrument whose
// maturity is the greatest one strictly before the grid point. This is a
// last-value-before-threshold selection, not a nearest-neighbor search.
// Two grid points resolving to the same instrument collapse into one
// candidate. The eligible quotes must be sorted by maturity ascending, as
// returned by MarketData.Eligible.
//
// A grid point with no preceding eligible instrument fails with
// NoEligibleTargetError: the ladder cannot be built as configured.
func SelectUniverse(eligible []Quote, grid []Date) ([]Quote, error) {
	selected := make([]Quote, 0, len(grid))
	for _, g := range grid {
		// Index of the first quote with maturity >= g; the candidate is the
		// one just before it.
		i := sort.Search(len(eligible), func(i int) bool {
			return !eligible[i].Instrument.Matures().Before(g)
		})
		if i == 0 {
			return nil, NoEligibleTargetError{Date: g, Want: "grid point maturity"}
		}
		q := eligible[i-1]
		if n := len(selected); n > 0 && selected[n-1].Instrument.ID() == q.Instrument.ID() {
			continue
		}
		selected = append(selected, q)
	}
	return selected, nil
}
