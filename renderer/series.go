// Package renderer turns simulation results into markdown reports.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/bondladder"
	md "github.com/nao1215/markdown"
)

// SeriesMarkdown renders the portfolio value time series as a markdown table.
func SeriesMarkdown(points []bondladder.ValuationPoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Value")
	if len(points) > 0 {
		first, last := points[0], points[len(points)-1]
		doc.PlainTextf("%s to %s, %d dates.", first.Date, last.Date, len(points))
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Market Value", "Cash", "Total"},
		Rows:   [][]string{},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			p.Date.String(),
			p.MarketValue.String(),
			p.Cash.String(),
			p.TotalValue.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// LedgerMarkdown renders the cash ledger as a markdown table.
func LedgerMarkdown(l *bondladder.CashLedger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Cash Ledger")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Opening", "Coupons", "Transactions", "Closing"},
		Rows:   [][]string{},
	}
	for _, e := range l.Entries() {
		table.Rows = append(table.Rows, []string{
			e.Date.String(),
			e.Opening.String(),
			e.Coupons.SignedString(),
			e.Transactions.SignedString(),
			e.Closing().String(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// PositionsMarkdown renders the full record history of one instrument.
func PositionsMarkdown(id string, records []bondladder.PositionRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Positions for %s", id))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Opening", "Ordered", "Price", "Coupon", "Trade Price"},
		Rows:   [][]string{},
	}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			r.Date.String(),
			r.Opening.String(),
			r.Ordered.String(),
			r.Price.String(),
			r.Coupon.SignedString(),
			r.TradePrice.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
