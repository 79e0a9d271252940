package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"finledger/internal/amqp"
	"finledger/internal/core"
	"finledger/internal/storage"
)

// TransactionService handles ordinary single-entry transactions. Transfer
// legs are linked rows: deleting one removes both, and a leg's wallet and
// category can never change so the pair stays a single logical unit.
type TransactionService struct {
	store  *storage.Repository
	events *amqp.Client
}

func NewTransactionService(store *storage.Repository, events *amqp.Client) *TransactionService {
	return &TransactionService{store: store, events: events}
}

// Create writes a single-entry transaction. Using the transfer category here
// is rejected; transfers go through the TransferService.
func (s *TransactionService) Create(ctx context.Context, userID int64, cmd CreateTransactionCommand) (core.Transaction, error) {
	category, err := s.store.GetCategory(ctx, cmd.CategoryID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load category: %w", err)
	}
	if category.UserID != userID {
		return core.Transaction{}, core.ErrForbidden
	}
	if category.IsTransfer() {
		return core.Transaction{}, core.ErrTransferCategory
	}

	if err := s.checkWalletOwned(ctx, userID, cmd.WalletID); err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		Amount:      cmd.Amount,
		Description: strings.TrimSpace(cmd.Description),
		Date:        cmd.Date,
		CategoryID:  cmd.CategoryID,
		WalletID:    cmd.WalletID,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	t, err = s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction created",
		"id", t.ID,
		"user_id", userID,
		"wallet_id", t.WalletID,
		"amount", t.Amount.String())

	publishEvent(ctx, s.events, amqp.NewLedgerEvent(
		amqp.EventTransactionCreated, userID, []int64{t.ID}, ""))

	return t, nil
}

// Update edits a transaction. For a transfer leg only description, date, and
// the leg's own magnitude may change; description and date propagate to the
// other leg, and the amount keeps the leg's sign.
func (s *TransactionService) Update(ctx context.Context, userID, id int64, cmd UpdateTransactionCommand) error {
	t, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	if cmd.Date.IsZero() {
		return core.ErrZeroDate
	}
	if cmd.Amount.IsZero() {
		return core.ErrZeroAmount
	}
	if len(cmd.Description) > 255 {
		return core.ErrDescriptionTooLong
	}

	if t.IsTransferLeg() {
		if cmd.CategoryID != t.CategoryID || cmd.WalletID != t.WalletID {
			return core.ErrTransferLegImmutable
		}
		amount := cmd.Amount.Abs()
		if t.Amount.IsNegative() {
			amount = amount.Neg()
		}
		if err := s.store.UpdateTransferLegs(ctx, t.ID, t.TransferID, amount,
			strings.TrimSpace(cmd.Description), cmd.Date); err != nil {
			return fmt.Errorf("update transfer legs: %w", err)
		}
	} else {
		category, err := s.store.GetCategory(ctx, cmd.CategoryID)
		if err != nil {
			return fmt.Errorf("load category: %w", err)
		}
		if category.UserID != userID {
			return core.ErrForbidden
		}
		if category.IsTransfer() {
			return core.ErrTransferCategory
		}
		if err := s.checkWalletOwned(ctx, userID, cmd.WalletID); err != nil {
			return err
		}

		t.Amount = cmd.Amount
		t.Description = strings.TrimSpace(cmd.Description)
		t.Date = cmd.Date
		t.CategoryID = cmd.CategoryID
		t.WalletID = cmd.WalletID
		if err := s.store.UpdateTransaction(ctx, t); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
	}

	publishEvent(ctx, s.events, amqp.NewLedgerEvent(
		amqp.EventTransactionUpdated, userID, []int64{t.ID}, t.TransferID))

	return nil
}

// Delete removes a transaction. Deleting a transfer leg removes both legs
// atomically so no orphan half of a transfer survives.
func (s *TransactionService) Delete(ctx context.Context, userID, id int64) error {
	t, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	if t.IsTransferLeg() {
		if err := s.store.DeleteTransferLegs(ctx, t.TransferID); err != nil {
			return fmt.Errorf("delete transfer: %w", err)
		}
		slog.InfoContext(ctx, "Transfer deleted", "transfer_id", t.TransferID, "user_id", userID)
		publishEvent(ctx, s.events, amqp.NewLedgerEvent(
			amqp.EventTransferDeleted, userID, []int64{t.ID}, t.TransferID))
		return nil
	}

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id, "user_id", userID)
	publishEvent(ctx, s.events, amqp.NewLedgerEvent(
		amqp.EventTransactionDeleted, userID, []int64{id}, ""))
	return nil
}

func (s *TransactionService) loadOwned(ctx context.Context, userID, id int64) (core.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load transaction: %w", err)
	}
	if err := s.checkWalletOwned(ctx, userID, t.WalletID); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func (s *TransactionService) checkWalletOwned(ctx context.Context, userID, walletID int64) error {
	wallet, err := s.store.GetWallet(ctx, walletID)
	if err != nil {
		return fmt.Errorf("load wallet: %w", err)
	}
	if wallet.UserID != userID {
		return core.ErrForbidden
	}
	return nil
}
