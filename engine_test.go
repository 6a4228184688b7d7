package bondladder

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// run executes a simulation over the shared test market and fails the test
// on any error.
func run(t *testing.T, cfg Config) *Result {
	t.Helper()
	m, flows := testMarket()
	sim, err := NewSimulation(cfg, m, flows)
	if err != nil {
		t.Fatal(err)
	}
	res, err := sim.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestSimulation_InitialAllocation(t *testing.T) {
	res := run(t, testConfig())

	// On the first date the grid points 2025-01-02 and 2026-01-02 select A
	// and B; 10000 split two ways buys 50 units of each at 100.00.
	recs := res.Positions.On(MustParse("2024-01-02"))
	if len(recs) != 2 {
		t.Fatalf("first date holds %d positions, want 2", len(recs))
	}
	for i, want := range []string{"A", "B"} {
		rec := recs[i]
		if rec.Instrument != want {
			t.Errorf("position %d is %s, want %s", i, rec.Instrument, want)
		}
		if !rec.Opening.IsZero() || !rec.Ordered.Equal(Q(50)) {
			t.Errorf("%s: opening %s ordered %s, want 0 and 50", want, rec.Opening, rec.Ordered)
		}
		if !rec.TradePrice.Equal(USD(100)) {
			t.Errorf("%s: trade price %s, want USD 100.00", want, rec.TradePrice)
		}
	}

	closing, ok := res.Ledger.ClosingCash(MustParse("2024-01-02"))
	if !ok || !closing.IsZero() {
		t.Errorf("closing cash after the initial allocation = %s, want 0", closing)
	}
}

func TestSimulation_RollForward(t *testing.T) {
	res := run(t, testConfig())

	// The second date trades nothing: B's remaining life is 725 days and A's
	// is 360, neither below the 360-day trigger. B pays its 0.50 coupon.
	on := MustParse("2024-01-03")
	for _, rec := range res.Positions.On(on) {
		if !rec.Ordered.IsZero() {
			t.Errorf("%s ordered %s on a no-trade date", rec.Instrument, rec.Ordered)
		}
		if !rec.Opening.Equal(Q(50)) {
			t.Errorf("%s opening %s, want the prior closing of 50", rec.Instrument, rec.Opening)
		}
		want := USD(0)
		if rec.Instrument == "B" {
			want = USD(25) // 0.50 x 50 units
		}
		if !rec.Coupon.Equal(want) {
			t.Errorf("%s coupon %s, want %s", rec.Instrument, rec.Coupon, want)
		}
	}

	entries := res.Ledger.Entries()
	if len(entries) != 3 {
		t.Fatalf("ledger has %d entries, want 3", len(entries))
	}
	e := entries[1]
	if !e.Coupons.Equal(USD(25)) || !e.Transactions.IsZero() {
		t.Errorf("no-trade entry: coupons %s transactions %s, want 25.00 and 0", e.Coupons, e.Transactions)
	}
}

func TestSimulation_TriggeredRoll(t *testing.T) {
	res := run(t, testConfig())

	// On the third date A has 359 days left and breaches the trigger: the
	// run sells all 50 units at 99.00 (99.25 less the 0.25 cost) and buys
	// the longest eligible instrument C with the 4950 proceeds plus the 25
	// opening cash: floor(4975 / 100.00) = 49 units at 100.00.
	on := MustParse("2024-01-04")
	recs := res.Positions.On(on)
	if len(recs) != 3 {
		t.Fatalf("third date has %d records, want 3", len(recs))
	}
	byID := make(map[string]PositionRecord, len(recs))
	for _, rec := range recs {
		byID[rec.Instrument] = rec
	}

	sell := byID["A"]
	if !sell.Ordered.Equal(Q(-50)) || !sell.TradePrice.Equal(USD(99)) {
		t.Errorf("sell A: ordered %s at %s, want -50 at USD 99.00", sell.Ordered, sell.TradePrice)
	}
	if !sell.Closing().IsZero() {
		t.Errorf("A closing %s after a full unwind, want 0", sell.Closing())
	}

	buy := byID["C"]
	if !buy.Ordered.Equal(Q(49)) || !buy.TradePrice.Equal(USD(100)) {
		t.Errorf("buy C: ordered %s at %s, want 49 at USD 100.00", buy.Ordered, buy.TradePrice)
	}

	hold := byID["B"]
	if !hold.Ordered.IsZero() || !hold.Opening.Equal(Q(50)) {
		t.Errorf("B: opening %s ordered %s, want 50 and 0", hold.Opening, hold.Ordered)
	}

	// Net cash moved: 4950 released less 4900 spent.
	e := res.Ledger.Entries()[2]
	if !e.Transactions.Equal(USD(50)) {
		t.Errorf("trade entry transactions %s, want USD 50.00", e.Transactions)
	}
	if !e.Closing().Equal(USD(75)) {
		t.Errorf("final closing cash %s, want USD 75.00", e.Closing())
	}
}

func TestSimulation_Series(t *testing.T) {
	res := run(t, testConfig())

	want := []struct {
		date   string
		market float64
		cash   float64
		total  float64
	}{
		{"2024-01-02", 9975, 0, 9975},
		{"2024-01-03", 10000, 25, 10025},
		{"2024-01-04", 9887.75, 75, 9962.75},
	}
	series := res.Series()
	if len(series) != len(want) {
		t.Fatalf("series has %d points, want %d", len(series), len(want))
	}
	for i, w := range want {
		p := series[i]
		if p.Date != MustParse(w.date) {
			t.Errorf("point %d date %s, want %s", i, p.Date, w.date)
		}
		if !p.MarketValue.Equal(USD(w.market)) || !p.Cash.Equal(USD(w.cash)) || !p.TotalValue.Equal(USD(w.total)) {
			t.Errorf("%s: market %s cash %s total %s, want %v %v %v",
				w.date, p.MarketValue, p.Cash, p.TotalValue, w.market, w.cash, w.total)
		}
		if !p.MarketValue.Add(p.Cash).Equal(p.TotalValue) {
			t.Errorf("%s: total %s does not decompose into market + cash", w.date, p.TotalValue)
		}
	}
}

func TestSimulation_Deterministic(t *testing.T) {
	a := run(t, testConfig())
	b := run(t, testConfig())
	if !reflect.DeepEqual(a.Series(), b.Series()) {
		t.Error("two runs over the same inputs produced different series")
	}
	if !reflect.DeepEqual(a.Positions.Records(), b.Positions.Records()) {
		t.Error("two runs over the same inputs produced different position records")
	}
}

func TestSimulation_MaxDates(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDates = 2
	res := run(t, cfg)
	if res.Ledger.Len() != 2 {
		t.Errorf("ledger has %d entries with MaxDates=2, want 2", res.Ledger.Len())
	}
}

func TestSimulation_DataGap(t *testing.T) {
	m, flows := testMarket()
	// D trades on the first two dates only, so rolling it into the third
	// date has no price to mark it with.
	m.Add(testInstrument("D", "2026-06-30", Note))
	if err := m.AddPrice("D", MustParse("2024-01-02"), 99.5); err != nil {
		t.Fatal(err)
	}
	if err := m.AddPrice("D", MustParse("2024-01-03"), 99.5); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.Grid.Points = 3 // the 2027-01-02 point selects D
	sim, err := NewSimulation(cfg, m, flows)
	if err != nil {
		t.Fatal(err)
	}
	_, err = sim.Run(context.Background())
	var gap DataGapError
	if !errors.As(err, &gap) {
		t.Fatalf("Run() error = %v, want DataGapError", err)
	}
	if gap.Instrument != "D" || gap.Date != MustParse("2024-01-04") {
		t.Errorf("gap = %+v, want instrument D on 2024-01-04", gap)
	}
}

func TestSimulation_NoReplacementTarget(t *testing.T) {
	// A market holding a single short instrument: when it breaches the
	// trigger nothing eligible remains to buy.
	m := NewMarketData("USD")
	m.Add(testInstrument("A", "2024-12-28", Note))
	days := []Date{MustParse("2024-01-02"), MustParse("2024-01-03"), MustParse("2024-01-04")}
	for _, d := range days {
		if err := m.AddPrice("A", d, 100); err != nil {
			t.Fatal(err)
		}
	}

	cfg := testConfig()
	cfg.Grid.Points = 1
	sim, err := NewSimulation(cfg, m, NewCashFlows("USD"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = sim.Run(context.Background())
	var noTarget NoEligibleTargetError
	if !errors.As(err, &noTarget) {
		t.Fatalf("Run() error = %v, want NoEligibleTargetError", err)
	}
}

func TestSimulation_Canceled(t *testing.T) {
	m, flows := testMarket()
	sim, err := NewSimulation(testConfig(), m, flows)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sim.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() with a canceled context = %v, want context.Canceled", err)
	}
}
