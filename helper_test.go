package bondladder

// USD is a helper for tests to create dollar money from const.
func USD(v float64) Money { return M(v, "USD") }

// testConfig returns a small, valid configuration shared by engine tests:
// a 360-1800 day band, a two-point yearly grid and a 0.25 per-unit cost.
func testConfig() Config {
	return Config{
		Currency:        "USD",
		InitialWealth:   10000,
		Start:           MustParse("2024-01-02"),
		Band:            Band{MinDays: 360, MaxDays: 1800},
		Grid:            MaturityGrid{StartMonths: 12, StepMonths: 12, Points: 2},
		TransactionCost: 0.25,
		GraceDays:       0,
	}
}

// testInstrument builds an instrument with neutral coupon terms.
func testInstrument(id string, matures string, kind Kind) Instrument {
	return NewInstrument(id, MustParse("2020-01-15"), MustParse(matures), 0.04, 6, "ACT/ACT", kind)
}

// testMarket builds the three-instrument market the engine tests replay:
//
//	A matures 2024-12-28 (remaining 361d on start, breaches the trigger on
//	the third date), B matures 2025-12-28, C matures 2028-06-30 (the
//	replacement target). Three trading dates: 2024-01-02 .. 2024-01-04.
func testMarket() (*MarketData, *CashFlows) {
	m := NewMarketData("USD")
	m.Add(testInstrument("A", "2024-12-28", Note))
	m.Add(testInstrument("B", "2025-12-28", Note))
	m.Add(testInstrument("C", "2028-06-30", Note))

	prices := map[string][]float64{
		//    01-02  01-03  01-04
		"A": {99.75, 100.0, 99.25},
		"B": {99.75, 100.0, 100.0},
		"C": {100.0, 100.0, 99.75},
	}
	days := []Date{MustParse("2024-01-02"), MustParse("2024-01-03"), MustParse("2024-01-04")}
	for id, series := range prices {
		for i, p := range series {
			if err := m.AddPrice(id, days[i], p); err != nil {
				panic(err)
			}
		}
	}

	flows := NewCashFlows("USD")
	flows.Add("B", MustParse("2024-01-03"), 0.5)
	return m, flows
}
