package bondladder

// cashFlowKey identifies a single payment event.
type cashFlowKey struct {
	id string
	on Date
}

// CashFlows is a sparse lookup of coupon payment events keyed by
// (instrument id, date). Payment amounts are per unit held; the schedule is
// computed externally from the instrument terms and the business-day calendar.
type CashFlows struct {
	currency string
	events   map[cashFlowKey]Money
}

// NewCashFlows returns an empty cash-flow table in the given currency.
func NewCashFlows(currency string) *CashFlows {
	return &CashFlows{
		currency: currency,
		events:   make(map[cashFlowKey]Money),
	}
}

// Add records a per-unit payment for an instrument on a date.
func (c *CashFlows) Add(id string, on Date, amount float64) {
	c.events[cashFlowKey{id: id, on: on}] = M(amount, c.currency)
}

// PaymentOn returns the per-unit payment for an instrument on a date.
// The absence of an event contributes zero.
func (c *CashFlows) PaymentOn(id string, on Date) Money {
	if p, ok := c.events[cashFlowKey{id: id, on: on}]; ok {
		return p
	}
	return M(0, c.currency)
}

// Len returns the number of payment events in the table.
func (c *CashFlows) Len() int { return len(c.events) }
