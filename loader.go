package bondladder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// instrumentRow is the JSONL encoding of one instrument's reference data.
type instrumentRow struct {
	ID      string  `json:"id"`
	Issued  Date    `json:"issued"`
	Matures Date    `json:"matures"`
	Rate    float64 `json:"rate"`
	Period  int     `json:"period"`
	Basis   string  `json:"basis"`
	Kind    string  `json:"kind"`
}

// priceRow is the JSONL encoding of one price observation.
type priceRow struct {
	ID    string  `json:"id"`
	Date  Date    `json:"date"`
	Price float64 `json:"price"`
}

// cashFlowRow is the JSONL encoding of one per-unit payment event.
type cashFlowRow struct {
	ID     string  `json:"id"`
	Date   Date    `json:"date"`
	Amount float64 `json:"amount"`
}

// lines iterates the non-empty lines of a JSONL stream.
func lines(r io.Reader, fn func(line []byte) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// DecodeMarketData reads the instrument metadata table and the price
// observation table from JSONL streams and returns the in-memory market data
// the engine replays. Prices are denominated in the given currency.
func DecodeMarketData(instruments, prices io.Reader, currency string) (*MarketData, error) {
	m := NewMarketData(currency)
	err := lines(instruments, func(line []byte) error {
		var row instrumentRow
		if err := json.Unmarshal(line, &row); err != nil {
			return fmt.Errorf("could not decode instrument line %q: %w", string(line), err)
		}
		kind, err := ParseKind(row.Kind)
		if err != nil {
			return fmt.Errorf("instrument %q: %w", row.ID, err)
		}
		m.Add(NewInstrument(row.ID, row.Issued, row.Matures, row.Rate, row.Period, row.Basis, kind))
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = lines(prices, func(line []byte) error {
		var row priceRow
		if err := json.Unmarshal(line, &row); err != nil {
			return fmt.Errorf("could not decode price line %q: %w", string(line), err)
		}
		return m.AddPrice(row.ID, row.Date, row.Price)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeCashFlows reads the pre-computed cash-flow event table from a JSONL
// stream. Amounts are per unit held, denominated in the given currency.
func DecodeCashFlows(r io.Reader, currency string) (*CashFlows, error) {
	c := NewCashFlows(currency)
	err := lines(r, func(line []byte) error {
		var row cashFlowRow
		if err := json.Unmarshal(line, &row); err != nil {
			return fmt.Errorf("could not decode cash flow line %q: %w", string(line), err)
		}
		c.Add(row.ID, row.Date, row.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
