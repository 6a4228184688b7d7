package bondladder

import (
	"context"
	"fmt"
	"log"
	"maps"
	"slices"
)

// Simulation replays a bond-ladder strategy over a historical price and
// cash-flow history, one trading date at a time. The position history and
// cash ledger are owned by the run and returned in the Result; the engine
// keeps no ambient mutable state between runs.
type Simulation struct {
	cfg     Config
	market  *MarketData
	flows   *CashFlows
	exclude []Kind
}

// NewSimulation validates the configuration and binds it to the externally
// supplied market data and cash-flow tables.
func NewSimulation(cfg Config, market *MarketData, flows *CashFlows) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if market.Currency() != cfg.Currency {
		return nil, fmt.Errorf("market data currency %q does not match config currency %q", market.Currency(), cfg.Currency)
	}
	return &Simulation{
		cfg:     cfg,
		market:  market,
		flows:   flows,
		exclude: cfg.Excluded(),
	}, nil
}

// Result holds the complete output of a run: the full position record and
// ledger histories, from which the valuation series is derived.
type Result struct {
	Positions *PositionHistory
	Ledger    *CashLedger
}

// Run executes the simulation over every trading date available in the price
// history from the configured start date (bounded by MaxDates when set).
// Dates are processed strictly in order; each date's transition is atomic, so
// cancellation is only honored between dates.
func (s *Simulation) Run(ctx context.Context) (*Result, error) {
	days := s.market.TradingDays(s.cfg.Start, s.cfg.MaxDates)
	if len(days) == 0 {
		return nil, fmt.Errorf("no trading dates on or after %s in the price history", s.cfg.Start)
	}

	ledger := NewCashLedger(s.cfg.Wealth())
	history := NewPositionHistory()
	holdings := make(map[string]Quantity) // closing units by instrument id

	if err := s.initialize(days[0], ledger, history, holdings); err != nil {
		return nil, fmt.Errorf("initial allocation on %s: %w", days[0], err)
	}
	for _, on := range days[1:] {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("run canceled before %s: %w", on, ctx.Err())
		default:
		}
		if err := s.step(on, ledger, history, holdings); err != nil {
			return nil, err
		}
	}
	log.Printf("simulated %d dates, %d position records", ledger.Len(), history.Len())
	return &Result{Positions: history, Ledger: ledger}, nil
}

// initialize builds the ladder on the start date: one instrument per
// desired-maturity grid point, funded with the equal-split rule.
func (s *Simulation) initialize(on Date, ledger *CashLedger, history *PositionHistory, holdings map[string]Quantity) error {
	eligible := s.market.Eligible(on, s.cfg.Band, s.exclude...)
	universe, err := SelectUniverse(eligible, s.cfg.Grid.Dates(on))
	if err != nil {
		return err
	}
	orders, _, err := EqualSplit(ledger.Available(), s.cfg.Cost(), universe)
	if err != nil {
		return err
	}

	transactions := M(0, s.cfg.Currency)
	for i, o := range orders {
		if o.Units.IsZero() {
			continue
		}
		history.Append(PositionRecord{
			Date:       on,
			Instrument: o.Instrument,
			Opening:    Q(0),
			Ordered:    o.Units,
			Price:      universe[i].Price,
			Coupon:     M(0, s.cfg.Currency),
			TradePrice: o.TradePrice,
		})
		holdings[o.Instrument] = o.Units
		transactions = transactions.Add(o.CashFlow())
	}
	return ledger.Record(on, M(0, s.cfg.Currency), transactions)
}

// step advances the simulation by one date: roll forward, accrue coupons,
// check the sell trigger, trade if it fired, and append the date's records.
func (s *Simulation) step(on Date, ledger *CashLedger, history *PositionHistory, holdings map[string]Quantity) error {
	ids := slices.Sorted(maps.Keys(holdings))

	// Look up everything first so the date's transition is atomic: nothing
	// is appended until every lookup has succeeded.
	coupons := M(0, s.cfg.Currency)
	records := make([]PositionRecord, 0, len(ids)+1)
	var triggered []string
	prices := make(map[string]Money, len(ids))
	for _, id := range ids {
		price, ok := s.market.Price(id, on)
		if !ok {
			return DataGapError{Date: on, Instrument: id}
		}
		prices[id] = price

		inst, _ := s.market.Instrument(id)
		if inst.RemainingDays(on) < s.cfg.TriggerDays() {
			triggered = append(triggered, id)
		}
	}

	transactions := M(0, s.cfg.Currency)
	if len(triggered) == 0 {
		// No-trade branch: every position carries forward; the trade price
		// field mirrors the market price.
		for _, id := range ids {
			coupon := s.flows.PaymentOn(id, on).Mul(holdings[id])
			coupons = coupons.Add(coupon)
			records = append(records, PositionRecord{
				Date:       on,
				Instrument: id,
				Opening:    holdings[id],
				Ordered:    Q(0),
				Price:      prices[id],
				Coupon:     coupon,
				TradePrice: prices[id],
			})
		}
		history.Append(records...)
		return ledger.Record(on, coupons, transactions)
	}

	// Trade branch: unwind every triggered position in full, then fund a
	// single replacement buy with the released cash plus the ledger's
	// available cash for the date.
	released := M(0, s.cfg.Currency)
	for _, id := range ids {
		units := holdings[id]
		coupon := s.flows.PaymentOn(id, on).Mul(units)
		coupons = coupons.Add(coupon)

		rec := PositionRecord{
			Date:       on,
			Instrument: id,
			Opening:    units,
			Ordered:    Q(0),
			Price:      prices[id],
			Coupon:     coupon,
			TradePrice: prices[id],
		}
		if slices.Contains(triggered, id) {
			sellPrice := prices[id].Sub(s.cfg.Cost())
			rec.Ordered = units.Neg()
			rec.TradePrice = sellPrice
			released = released.Add(sellPrice.Mul(units))
			log.Printf("%s: sell %s x %s at %s", on, units, id, sellPrice)
		}
		records = append(records, rec)
	}

	target, ok := s.buyTarget(on)
	if !ok {
		return NoEligibleTargetError{Date: on, Want: "replacement buy"}
	}
	budget := released.Add(ledger.Available())
	units, err := UnitsFor(budget, target.Price, s.cfg.Cost(), on, target.Instrument.ID())
	if err != nil {
		return err
	}
	buyPrice := target.Price.Add(s.cfg.Cost())
	transactions = released.Sub(buyPrice.Mul(units))

	if !units.IsZero() {
		targetID := target.Instrument.ID()
		if i := slices.IndexFunc(records, func(r PositionRecord) bool { return r.Instrument == targetID }); i >= 0 {
			// The replacement is an instrument already held: fold the buy
			// into its record for the date.
			records[i].Ordered = records[i].Ordered.Add(units)
			records[i].TradePrice = buyPrice
		} else {
			records = append(records, PositionRecord{
				Date:       on,
				Instrument: targetID,
				Opening:    Q(0),
				Ordered:    units,
				Price:      target.Price,
				Coupon:     M(0, s.cfg.Currency),
				TradePrice: buyPrice,
			})
		}
		log.Printf("%s: buy %s x %s at %s", on, units, targetID, buyPrice)
	}

	// Commit the date: update holdings, then append records and the ledger
	// entry together.
	for _, rec := range records {
		closing := rec.Closing()
		if closing.IsZero() {
			delete(holdings, rec.Instrument)
		} else {
			holdings[rec.Instrument] = closing
		}
	}
	history.Append(records...)
	return ledger.Record(on, coupons, transactions)
}

// buyTarget returns the instrument in the date's eligible market with the
// greatest maturity. Ties break on the lowest instrument id, so the
// selection is reproducible.
func (s *Simulation) buyTarget(on Date) (Quote, bool) {
	eligible := s.market.Eligible(on, s.cfg.Band, s.exclude...)
	if len(eligible) == 0 {
		return Quote{}, false
	}
	// Eligible is sorted by maturity then id: the winner is the first quote
	// of the trailing same-maturity group.
	last := eligible[len(eligible)-1].Instrument.Matures()
	for _, q := range eligible {
		if q.Instrument.Matures() == last {
			return q, true
		}
	}
	return eligible[len(eligible)-1], true
}
