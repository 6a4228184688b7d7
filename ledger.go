package bondladder

import "slices"

// LedgerEntry is one date's cash bookkeeping record: the cash available at
// the open, the coupons received during the day, and the net cash flow of
// the day's transactions. Closing cash is derived, never stored.
type LedgerEntry struct {
	Date         Date
	Opening      Money
	Coupons      Money
	Transactions Money
}

// Closing returns the cash position at the end of the entry's date.
func (e LedgerEntry) Closing() Money {
	return e.Opening.Add(e.Coupons).Add(e.Transactions)
}

// CashLedger is the append-only sequence of one ledger entry per simulated
// date, in strictly increasing date order with no gaps in the recorded run.
// The opening cash of every entry equals the closing cash of the previous
// one; the first entry opens with the initial wealth.
type CashLedger struct {
	initial Money
	entries []LedgerEntry
}

// NewCashLedger creates an empty ledger seeded with the initial wealth.
func NewCashLedger(initial Money) *CashLedger {
	return &CashLedger{initial: initial}
}

// Available returns the cash available at the open of the next date to be
// recorded: the closing cash of the last entry, or the initial wealth when
// nothing has been recorded yet.
func (l *CashLedger) Available() Money {
	if len(l.entries) == 0 {
		return l.initial
	}
	return l.entries[len(l.entries)-1].Closing()
}

// Record appends the entry for a date. The opening cash is derived from the
// ledger itself, so the recurrence invariant holds by construction; a
// duplicate or out-of-order date fails with LedgerConsistencyError.
func (l *CashLedger) Record(on Date, coupons, transactions Money) error {
	if n := len(l.entries); n > 0 && !l.entries[n-1].Date.Before(on) {
		return LedgerConsistencyError{Date: on, Reason: "entry date not after the previous entry"}
	}
	l.entries = append(l.entries, LedgerEntry{
		Date:         on,
		Opening:      l.Available(),
		Coupons:      coupons,
		Transactions: transactions,
	})
	return nil
}

// OpeningCash returns the opening cash recorded for a date.
func (l *CashLedger) OpeningCash(on Date) (Money, bool) {
	for _, e := range l.entries {
		if e.Date == on {
			return e.Opening, true
		}
	}
	return Money{}, false
}

// ClosingCash returns the closing cash for a recorded date.
func (l *CashLedger) ClosingCash(on Date) (Money, bool) {
	for _, e := range l.entries {
		if e.Date == on {
			return e.Closing(), true
		}
	}
	return Money{}, false
}

// Entries returns the recorded entries in date order.
func (l *CashLedger) Entries() []LedgerEntry { return slices.Clone(l.entries) }

// Len returns the number of recorded entries.
func (l *CashLedger) Len() int { return len(l.entries) }

// MarshalJSON implements the json.Marshaler interface for a ledger entry.
func (e LedgerEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", e.Date)
	w.Append("opening", e.Opening)
	w.Append("coupons", e.Coupons)
	w.Append("transactions", e.Transactions)
	return w.MarshalJSON()
}
