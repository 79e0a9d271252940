// Package core holds the ledger domain model: wallets, categories,
// transactions, and the pure balance and aggregation logic over them.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a signed decimal amount from user input. It accepts both
// dot (12.34) and comma (12,34) decimal separators. Money amounts stay in
// exact decimal form; they are never round-tripped through binary floats.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
