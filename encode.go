package bondladder

import (
	"encoding/json"
	"fmt"
	"io"
)

// encodeJSONL writes one JSON object per line.
func encodeJSONL[T any](w io.Writer, rows []T) error {
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("could not encode row %v: %w", row, err)
		}
	}
	return nil
}

// EncodeSeries writes the valuation time series as JSONL, suitable for
// external reporting or plotting.
func EncodeSeries(w io.Writer, points []ValuationPoint) error {
	return encodeJSONL(w, points)
}

// EncodePositions writes the full position record history as JSONL.
func EncodePositions(w io.Writer, h *PositionHistory) error {
	return encodeJSONL(w, h.Records())
}

// EncodeLedger writes the full cash ledger as JSONL.
func EncodeLedger(w io.Writer, l *CashLedger) error {
	return encodeJSONL(w, l.Entries())
}
