package bondladder

import "testing"

func TestPositionRecord_Closing(t *testing.T) {
	rec := PositionRecord{Opening: Q(50), Ordered: Q(-50)}
	if !rec.Closing().IsZero() {
		t.Errorf("Closing() = %s, want 0", rec.Closing())
	}
	if !rec.Traded() {
		t.Error("Traded() = false for a non-zero order")
	}
	held := PositionRecord{Opening: Q(50), Ordered: Q(0)}
	if held.Traded() {
		t.Error("Traded() = true for a zero order")
	}
}

func TestPositionHistory_Lookups(t *testing.T) {
	h := NewPositionHistory()
	d1, d2 := MustParse("2024-01-02"), MustParse("2024-01-03")
	h.Append(
		PositionRecord{Date: d1, Instrument: "A", Ordered: Q(50)},
		PositionRecord{Date: d1, Instrument: "B", Ordered: Q(50)},
		PositionRecord{Date: d2, Instrument: "A", Opening: Q(50)},
	)

	if got := h.On(d1); len(got) != 2 {
		t.Errorf("On(%s) = %d records, want 2", d1, len(got))
	}
	if got := h.ForInstrument("A"); len(got) != 2 {
		t.Errorf("ForInstrument(A) = %d records, want 2", len(got))
	}
	if got := h.ForInstrument("C"); len(got) != 0 {
		t.Errorf("ForInstrument(C) = %d records, want 0", len(got))
	}
}
