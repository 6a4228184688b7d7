package renderer

import (
	"bytes"

	"github.com/etnz/bondladder"
	md "github.com/nao1215/markdown"
)

// TradesMarkdown renders the trade log: every position record on which a
// transaction occurred, in date order.
func TradesMarkdown(h *bondladder.PositionHistory) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trades")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Side", "Instrument", "Units", "Trade Price"},
		Rows:   [][]string{},
	}
	for _, r := range h.Records() {
		if !r.Traded() {
			continue
		}
		side := "buy"
		units := r.Ordered
		if units.IsNegative() {
			side = "sell"
			units = units.Neg()
		}
		table.Rows = append(table.Rows, []string{
			r.Date.String(),
			side,
			r.Instrument,
			units.String(),
			r.TradePrice.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
