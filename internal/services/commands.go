// Package services holds the write-path use cases (transactions, transfers,
// wallet and category management) and the read-path aggregation over them.
package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionCommand is a validated single-entry write. The transfer
// category is rejected here; paired legs go through CreateTransferCommand.
type CreateTransactionCommand struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  int64
	WalletID    int64
}

type UpdateTransactionCommand struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  int64
	WalletID    int64
}

// CreateTransferCommand describes a wallet-to-wallet transfer. FromAmount and
// ToAmount are independent magnitudes: a cross-currency transfer records what
// left one wallet and what arrived in the other without converting here.
type CreateTransferCommand struct {
	CategoryID   int64
	FromWalletID int64
	ToWalletID   int64
	FromAmount   decimal.Decimal
	ToAmount     decimal.Decimal
	Description  string
	Date         time.Time
}

type CreateWalletCommand struct {
	Name           string
	InitialBalance decimal.Decimal
	Currency       string
}

type UpdateWalletCommand struct {
	Name           string
	InitialBalance decimal.Decimal
	Currency       string
}
