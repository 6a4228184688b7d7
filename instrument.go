package bondladder

import "fmt"

// Kind classifies an instrument by its issuance type.
type Kind int

const (
	// Note is a medium-term coupon-bearing instrument.
	Note Kind = iota
	// Bond is a long-term coupon-bearing instrument.
	Bond
)

func (k Kind) String() string {
	switch k {
	case Note:
		return "note"
	case Bond:
		return "bond"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "note":
		return Note, nil
	case "bond":
		return Bond, nil
	default:
		return 0, fmt.Errorf("unknown instrument kind: %q", s)
	}
}

// Instrument represents the immutable reference data of a single bond issue.
// Coupon schedule dates are computed by an external calendar collaborator;
// the core only reads the terms.
type Instrument struct {
	id      string
	issued  Date
	matures Date
	rate    float64 // annual coupon rate, e.g. 0.045 for 4.5%
	period  int     // coupon period in months
	basis   string  // day-count basis, e.g. "ACT/ACT"
	kind    Kind
}

// NewInstrument creates the reference data record of a bond issue.
func NewInstrument(id string, issued, matures Date, rate float64, period int, basis string, kind Kind) Instrument {
	return Instrument{
		id:      id,
		issued:  issued,
		matures: matures,
		rate:    rate,
		period:  period,
		basis:   basis,
		kind:    kind,
	}
}

// ID returns the unique identifier of the instrument.
func (i Instrument) ID() string { return i.id }

// Issued returns the issue date.
func (i Instrument) Issued() Date { return i.issued }

// Matures returns the maturity date.
func (i Instrument) Matures() Date { return i.matures }

// Rate returns the annual coupon rate.
func (i Instrument) Rate() float64 { return i.rate }

// Period returns the coupon period in months.
func (i Instrument) Period() int { return i.period }

// Basis returns the day-count basis tag.
func (i Instrument) Basis() string { return i.basis }

// Kind returns the issuance type of the instrument.
func (i Instrument) Kind() Kind { return i.kind }

// RemainingDays returns the number of days from 'on' to the maturity date.
func (i Instrument) RemainingDays(on Date) int { return on.DaysUntil(i.matures) }
