package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryKind distinguishes user-defined categories from the single
// system-managed transfer category each user owns.
type CategoryKind string

const (
	CategoryRegular  CategoryKind = "regular"
	CategoryTransfer CategoryKind = "transfer"
)

// TransferCategoryName is the display name of the system transfer category.
const TransferCategoryName = "Transfer"

var (
	ErrNotFound               = errors.New("not found")
	ErrForbidden              = errors.New("operation not allowed for this user")
	ErrEmptyName              = errors.New("name cannot be empty")
	ErrNameTooLong            = errors.New("name too long (max 255 characters)")
	ErrDescriptionTooLong     = errors.New("description too long (max 255 characters)")
	ErrZeroDate               = errors.New("date cannot be zero")
	ErrZeroAmount             = errors.New("amount cannot be zero")
	ErrUnsupportedCurrency    = errors.New("unsupported currency code")
	ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")
	ErrSystemCategory         = errors.New("system category cannot be modified or deleted")
	ErrTransferCategory       = errors.New("transfer category requires the transfer operation")
	ErrNotTransferCategory    = errors.New("category is not the transfer category")
	ErrSameWallet             = errors.New("source and destination wallets must be different")
	ErrTransferLegImmutable   = errors.New("wallet and category of a transfer leg cannot be changed")
)

type User struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type Wallet struct {
	ID             int64
	Name           string
	InitialBalance decimal.Decimal
	Currency       string
	UserID         int64
}

func (w Wallet) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return ErrEmptyName
	}
	if len(w.Name) > 255 {
		return ErrNameTooLong
	}
	if w.InitialBalance.IsNegative() {
		return ErrNegativeInitialBalance
	}
	if !IsSupportedCurrency(w.Currency) {
		return ErrUnsupportedCurrency
	}
	return nil
}

type Category struct {
	ID     int64
	Name   string
	Kind   CategoryKind
	UserID int64
}

// IsTransfer reports whether this is the system transfer category.
func (c Category) IsTransfer() bool {
	return c.Kind == CategoryTransfer
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 255 {
		return ErrNameTooLong
	}
	return nil
}

// Transaction is a single ledger row. A positive amount is an inflow, a
// negative amount an outflow. The two legs of a wallet-to-wallet transfer
// share a non-empty TransferID.
type Transaction struct {
	ID          int64
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	TransferID  string
	CategoryID  int64
	WalletID    int64
}

// IsTransferLeg reports whether the transaction is one half of a transfer.
func (t Transaction) IsTransferLeg() bool {
	return t.TransferID != ""
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if t.Amount.IsZero() {
		return ErrZeroAmount
	}
	if len(t.Description) > 255 {
		return ErrDescriptionTooLong
	}
	return nil
}

// Entry is a transaction joined with the category data aggregation needs.
type Entry struct {
	Transaction
	CategoryName string
	CategoryKind CategoryKind
}

// WalletLedger is a wallet eagerly loaded with all of its entries.
type WalletLedger struct {
	Wallet
	Entries []Entry
}
