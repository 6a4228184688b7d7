package bondladder

import (
	"errors"
	"testing"
)

func TestCashLedger_Record(t *testing.T) {
	l := NewCashLedger(USD(10000))

	if got := l.Available(); !got.Equal(USD(10000)) {
		t.Fatalf("Available() before any entry = %s, want the initial wealth", got)
	}

	if err := l.Record(MustParse("2024-01-02"), USD(0), USD(-9975)); err != nil {
		t.Fatal(err)
	}
	if err := l.Record(MustParse("2024-01-03"), USD(25), USD(0)); err != nil {
		t.Fatal(err)
	}

	// Opening cash on date t equals opening(t-1) + coupons(t-1) + transactions(t-1).
	opening, ok := l.OpeningCash(MustParse("2024-01-03"))
	if !ok || !opening.Equal(USD(25)) {
		t.Errorf("OpeningCash(01-03) = %s, want USD 25.00", opening)
	}
	closing, ok := l.ClosingCash(MustParse("2024-01-03"))
	if !ok || !closing.Equal(USD(50)) {
		t.Errorf("ClosingCash(01-03) = %s, want USD 50.00", closing)
	}
	if got := l.Available(); !got.Equal(USD(50)) {
		t.Errorf("Available() = %s, want USD 50.00", got)
	}
}

func TestCashLedger_RecordOutOfOrder(t *testing.T) {
	testCases := []struct {
		name string
		next string
	}{
		{name: "duplicate date", next: "2024-01-03"},
		{name: "date before the last entry", next: "2024-01-02"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewCashLedger(USD(1000))
			if err := l.Record(MustParse("2024-01-03"), USD(0), USD(0)); err != nil {
				t.Fatal(err)
			}
			err := l.Record(MustParse(tc.next), USD(0), USD(0))
			var lce LedgerConsistencyError
			if !errors.As(err, &lce) {
				t.Fatalf("Record(%s) error = %v, want LedgerConsistencyError", tc.next, err)
			}
			if l.Len() != 1 {
				t.Errorf("a failed append must not grow the ledger, got %d entries", l.Len())
			}
		})
	}
}

func TestLedgerEntry_Closing(t *testing.T) {
	e := LedgerEntry{
		Date:         MustParse("2024-01-03"),
		Opening:      USD(25),
		Coupons:      USD(12.5),
		Transactions: USD(-30),
	}
	if got := e.Closing(); !got.Equal(USD(7.5)) {
		t.Errorf("Closing() = %s, want USD 7.50", got)
	}
}
