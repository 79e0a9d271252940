package core

import "github.com/shopspring/decimal"

// CurrentBalance returns initial + Σ(entry amounts) using exact decimal
// arithmetic. An empty entry set yields the initial balance unchanged.
func CurrentBalance(initial decimal.Decimal, entries []Entry) decimal.Decimal {
	balance := initial
	for _, e := range entries {
		balance = balance.Add(e.Amount)
	}
	return balance
}
