package cgt

// Pool is a Section 104 pool: every share of a holding not matched by another rule,
// valued at their average cost in GBP.
type Pool struct {
	Quantity Quantity
	Average  Money // cost per share in GBP
}

// Cost returns the total allowable cost of the pool.
func (p Pool) Cost() Money { return p.Average.Mul(p.Quantity) }

// add credits quantity shares bought for cost into the pool.
func (p Pool) add(quantity Quantity, cost Money) Pool {
	p.Quantity = p.Quantity.Add(quantity)
	return p.average(quantity, cost)
}

// average folds the cost of quantity shares, already credited to the pool, into the average.
func (p Pool) average(quantity Quantity, cost Money) Pool {
	if p.Quantity.IsZero() {
		return p
	}
	previous := p.Average.Mul(p.Quantity.Sub(quantity))
	p.Average = previous.Add(cost).Div(p.Quantity)
	return p
}
