package bondladder

// Order is an integer-unit instruction to trade an instrument. Units are
// positive for a buy and negative for a sell; TradePrice already includes
// the per-unit transaction cost.
type Order struct {
	Instrument string
	Units      Quantity
	TradePrice Money
}

// CashFlow returns the signed cash movement the order causes: negative for a
// buy, positive for a sell.
func (o Order) CashFlow() Money { return o.TradePrice.Mul(o.Units).Neg() }

// UnitsFor sizes a single buy: the number of whole units of an instrument
// priced at 'price' that 'cash' can fund once the per-unit transaction cost
// is added. Negative available cash funds zero units. A non-positive trade
// price cannot size an order and fails with NonFiniteOrderError.
func UnitsFor(cash Money, price, cost Money, on Date, id string) (Quantity, error) {
	trade := price.Add(cost)
	if !trade.IsPositive() {
		return Q(0), NonFiniteOrderError{Date: on, Instrument: id, TradePrice: trade}
	}
	if cash.IsNegative() {
		return Q(0), nil
	}
	return cash.DivPrice(trade).Floor(), nil
}

// EqualSplit allocates available cash across candidates with the sequential
// greedy equal-split rule: each candidate in turn gets an equal share of the
// cash remaining, rounded down to whole units at its buy trade price
// (market price plus transaction cost). There is no re-optimization; cash a
// candidate cannot use rolls into the shares of the ones after it.
//
// The total spent never exceeds the available cash; the explicit leftover is
// carried by the caller into the ledger's transaction entry.
func EqualSplit(cash Money, cost Money, candidates []Quote) (orders []Order, leftover Money, err error) {
	remaining := cash
	orders = make([]Order, 0, len(candidates))
	for i, q := range candidates {
		share := remaining.Div(Q(len(candidates) - i))
		units, err := UnitsFor(share, q.Price, cost, q.Date, q.Instrument.ID())
		if err != nil {
			return nil, cash, err
		}
		trade := q.Price.Add(cost)
		orders = append(orders, Order{
			Instrument: q.Instrument.ID(),
			Units:      units,
			TradePrice: trade,
		})
		remaining = remaining.Sub(trade.Mul(units))
	}
	return orders, remaining, nil
}
