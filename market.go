package bondladder

import (
	"fmt"
	"slices"
	"sort"
)

// Band is the eligible remaining-maturity window, in days.
type Band struct {
	MinDays int
	MaxDays int
}

// Contains reports whether a remaining maturity of 'days' lies in the band.
func (b Band) Contains(days int) bool { return days >= b.MinDays && days <= b.MaxDays }

// Quote is a single price observation of an instrument on a date.
type Quote struct {
	Instrument Instrument
	Date       Date
	Price      Money
}

// MarketData holds the externally supplied instrument reference data and the
// daily price observations the simulation replays. It is read-only within the
// engine: the core never mutates it after loading.
type MarketData struct {
	currency    string
	instruments map[string]Instrument
	prices      map[string]map[Date]Money // by instrument id, then date
	days        []Date                    // sorted unique trading dates
	daysIndex   map[Date]struct{}
}

// NewMarketData returns an empty market data collection whose prices are
// denominated in the given currency.
func NewMarketData(currency string) *MarketData {
	return &MarketData{
		currency:    currency,
		instruments: make(map[string]Instrument),
		prices:      make(map[string]map[Date]Money),
		daysIndex:   make(map[Date]struct{}),
	}
}

// Currency returns the currency all prices are denominated in.
func (m *MarketData) Currency() string { return m.currency }

// Add declares an instrument's reference data. Re-adding an id replaces it.
func (m *MarketData) Add(inst Instrument) {
	m.instruments[inst.ID()] = inst
}

// Instrument returns the instrument declared with this id, or false if unknown.
func (m *MarketData) Instrument(id string) (Instrument, bool) {
	inst, ok := m.instruments[id]
	return inst, ok
}

// AddPrice records a price observation for an instrument on a trading date.
func (m *MarketData) AddPrice(id string, on Date, price float64) error {
	if _, ok := m.instruments[id]; !ok {
		return fmt.Errorf("price for undeclared instrument %q on %s", id, on)
	}
	series, ok := m.prices[id]
	if !ok {
		series = make(map[Date]Money)
		m.prices[id] = series
	}
	series[on] = M(price, m.currency)
	if _, seen := m.daysIndex[on]; !seen {
		m.daysIndex[on] = struct{}{}
		i := sort.Search(len(m.days), func(i int) bool { return !m.days[i].Before(on) })
		m.days = slices.Insert(m.days, i, on)
	}
	return nil
}

// Price returns the price observed for an instrument on a date.
func (m *MarketData) Price(id string, on Date) (Money, bool) {
	series, ok := m.prices[id]
	if !ok {
		return Money{}, false
	}
	p, ok := series[on]
	return p, ok
}

// TradingDays returns the trading dates observed in the price history, on or
// after 'from', in chronological order. A non-positive max means all of them.
func (m *MarketData) TradingDays(from Date, max int) []Date {
	i := sort.Search(len(m.days), func(i int) bool { return !m.days[i].Before(from) })
	days := m.days[i:]
	if max > 0 && len(days) > max {
		days = days[:max]
	}
	return slices.Clone(days)
}

// Eligible returns the quotes observed on a date whose instrument's remaining
// maturity lies in the band and whose kind is not excluded. Eligibility is
// observation-date dependent, so it is recomputed for every date. The result
// is sorted by maturity ascending, then by id, to keep selection deterministic.
func (m *MarketData) Eligible(on Date, band Band, excluded ...Kind) []Quote {
	var quotes []Quote
	for id, series := range m.prices {
		price, ok := series[on]
		if !ok {
			continue
		}
		inst := m.instruments[id]
		if slices.Contains(excluded, inst.Kind()) {
			continue
		}
		if !band.Contains(inst.RemainingDays(on)) {
			continue
		}
		quotes = append(quotes, Quote{Instrument: inst, Date: on, Price: price})
	}
	sort.Slice(quotes, func(i, j int) bool {
		a, b := quotes[i].Instrument, quotes[j].Instrument
		if a.Matures() != b.Matures() {
			return a.Matures().Before(b.Matures())
		}
		return a.ID() < b.ID()
	})
	return quotes
}
