package bondladder

import "slices"

// PositionRecord is one instrument's state on one date: the units held at
// the open, the units ordered during the day (signed), the market unit
// price, the coupon cash the position paid that day, and the trade price
// when a transaction occurred. On a no-trade day the trade price mirrors
// the market price.
type PositionRecord struct {
	Date       Date
	Instrument string
	Opening    Quantity
	Ordered    Quantity
	Price      Money
	Coupon     Money
	TradePrice Money
}

// Closing returns the units held at the end of the record's date.
func (r PositionRecord) Closing() Quantity { return r.Opening.Add(r.Ordered) }

// Traded reports whether a transaction occurred on the record's date.
func (r PositionRecord) Traded() bool { return !r.Ordered.IsZero() }

// PositionHistory is the append-only record of every (instrument, date)
// position the engine produced, in date order. Records are created exactly
// once per date and never retroactively modified.
type PositionHistory struct {
	records []PositionRecord
}

// NewPositionHistory creates an empty history.
func NewPositionHistory() *PositionHistory {
	return &PositionHistory{records: make([]PositionRecord, 0)}
}

// Append adds a date's records to the history.
func (h *PositionHistory) Append(recs ...PositionRecord) {
	h.records = append(h.records, recs...)
}

// On returns the records for a single date, in the order they were appended.
func (h *PositionHistory) On(on Date) []PositionRecord {
	var out []PositionRecord
	for _, r := range h.records {
		if r.Date == on {
			out = append(out, r)
		}
	}
	return out
}

// ForInstrument returns the records of a single instrument, in date order.
func (h *PositionHistory) ForInstrument(id string) []PositionRecord {
	var out []PositionRecord
	for _, r := range h.records {
		if r.Instrument == id {
			out = append(out, r)
		}
	}
	return out
}

// Records returns all records in the order they were appended.
func (h *PositionHistory) Records() []PositionRecord { return slices.Clone(h.records) }

// Len returns the number of records in the history.
func (h *PositionHistory) Len() int { return len(h.records) }

// MarshalJSON implements the json.Marshaler interface for a position record.
func (r PositionRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", r.Date)
	w.Append("instrument", r.Instrument)
	w.Append("opening", r.Opening)
	w.Append("ordered", r.Ordered)
	w.Append("price", r.Price)
	w.Optional("coupon", r.Coupon)
	w.Append("tradePrice", r.TradePrice)
	return w.MarshalJSON()
}
