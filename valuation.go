package bondladder

// ValuationPoint is one date of the portfolio value time series.
type ValuationPoint struct {
	Date        Date
	MarketValue Money
	Cash        Money
	TotalValue  Money
}

// Series aggregates the run's histories into the portfolio value time
// series: for every simulated date, the market value of all positions with
// positive closing units plus the ledger's closing cash. It is a pure
// function over the accumulated histories.
func (r *Result) Series() []ValuationPoint {
	entries := r.Ledger.Entries()
	points := make([]ValuationPoint, 0, len(entries))
	for _, e := range entries {
		market := M(0, e.Opening.Currency())
		for _, rec := range r.Positions.On(e.Date) {
			if closing := rec.Closing(); closing.IsPositive() {
				market = market.Add(rec.Price.Mul(closing))
			}
		}
		cash := e.Closing()
		points = append(points, ValuationPoint{
			Date:        e.Date,
			MarketValue: market,
			Cash:        cash,
			TotalValue:  market.Add(cash),
		})
	}
	return points
}

// MarshalJSON implements the json.Marshaler interface for a valuation point.
func (p ValuationPoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", p.Date)
	w.Append("marketValue", p.MarketValue)
	w.Append("cash", p.Cash)
	w.Append("totalValue", p.TotalValue)
	return w.MarshalJSON()
}
