package bondladder

import "fmt"

// DataGapError reports a held instrument with no price on a date it is held.
// The run aborts at that date: a held instrument must always have a price on
// a trading date.
type DataGapError struct {
	Date       Date
	Instrument string
}

func (e DataGapError) Error() string {
	return fmt.Sprintf("%s: no price for held instrument %q", e.Date, e.Instrument)
}

// NoEligibleTargetError reports that the universe selection or the
// replacement-buy search found no candidate.
type NoEligibleTargetError struct {
	Date Date
	Want string // description of what was searched for
}

func (e NoEligibleTargetError) Error() string {
	return fmt.Sprintf("%s: no eligible instrument for %s", e.Date, e.Want)
}

// LedgerConsistencyError reports an append that would violate the ledger
// invariants: duplicate or out-of-order date, or a broken opening-cash
// recurrence. It indicates an engine logic bug, not a data problem.
type LedgerConsistencyError struct {
	Date   Date
	Reason string
}

func (e LedgerConsistencyError) Error() string {
	return fmt.Sprintf("%s: ledger consistency violated: %s", e.Date, e.Reason)
}

// NonFiniteOrderError reports a unit count derived from a non-positive trade
// price, or one that came out negative or fractional. It signals a
// configuration or data error (e.g. a transaction cost larger than the price).
type NonFiniteOrderError struct {
	Date       Date
	Instrument string
	TradePrice Money
}

func (e NonFiniteOrderError) Error() string {
	return fmt.Sprintf("%s: cannot size order for %q at trade price %s", e.Date, e.Instrument, e.TradePrice)
}
