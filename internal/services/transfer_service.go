package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"finledger/internal/amqp"
	"finledger/internal/core"
	"finledger/internal/storage"
)

// TransferService creates the paired debit/credit transactions that make up
// a wallet-to-wallet transfer. Both legs are written all-or-nothing; no
// single-leg transfer is ever observable.
type TransferService struct {
	store  *storage.Repository
	events *amqp.Client
}

func NewTransferService(store *storage.Repository, events *amqp.Client) *TransferService {
	return &TransferService{store: store, events: events}
}

// CreateTransfer validates the command and writes both legs in one database
// transaction: -abs(FromAmount) on the source wallet, +abs(ToAmount) on the
// destination, sharing category, date, description, and a fresh transfer id.
func (s *TransferService) CreateTransfer(ctx context.Context, userID int64, cmd CreateTransferCommand) (core.Transaction, core.Transaction, error) {
	var none core.Transaction

	category, err := s.store.GetCategory(ctx, cmd.CategoryID)
	if err != nil {
		return none, none, fmt.Errorf("load category: %w", err)
	}
	if category.UserID != userID {
		return none, none, core.ErrForbidden
	}
	if !category.IsTransfer() {
		return none, none, core.ErrNotTransferCategory
	}

	if cmd.FromWalletID == cmd.ToWalletID {
		return none, none, core.ErrSameWallet
	}
	if cmd.FromAmount.IsZero() || cmd.ToAmount.IsZero() {
		return none, none, core.ErrZeroAmount
	}
	if cmd.Date.IsZero() {
		return none, none, core.ErrZeroDate
	}
	if len(cmd.Description) > 255 {
		return none, none, core.ErrDescriptionTooLong
	}

	for _, walletID := range []int64{cmd.FromWalletID, cmd.ToWalletID} {
		wallet, err := s.store.GetWallet(ctx, walletID)
		if err != nil {
			return none, none, fmt.Errorf("load wallet %d: %w", walletID, err)
		}
		if wallet.UserID != userID {
			return none, none, core.ErrForbidden
		}
	}

	transferID := uuid.NewString()
	description := strings.TrimSpace(cmd.Description)

	out := core.Transaction{
		Amount:      cmd.FromAmount.Abs().Neg(),
		Description: description,
		Date:        cmd.Date,
		TransferID:  transferID,
		CategoryID:  cmd.CategoryID,
		WalletID:    cmd.FromWalletID,
	}
	in := core.Transaction{
		Amount:      cmd.ToAmount.Abs(),
		Description: description,
		Date:        cmd.Date,
		TransferID:  transferID,
		CategoryID:  cmd.CategoryID,
		WalletID:    cmd.ToWalletID,
	}

	out, in, err = s.store.CreateTransferLegs(ctx, out, in)
	if err != nil {
		return none, none, fmt.Errorf("write transfer legs: %w", err)
	}

	slog.InfoContext(ctx, "Transfer created",
		"transfer_id", transferID,
		"user_id", userID,
		"from_wallet", cmd.FromWalletID,
		"to_wallet", cmd.ToWalletID,
		"from_amount", out.Amount.String(),
		"to_amount", in.Amount.String())

	publishEvent(ctx, s.events, amqp.NewLedgerEvent(
		amqp.EventTransferCreated, userID, []int64{out.ID, in.ID}, transferID))

	return out, in, nil
}
