package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"finledger/internal/core"
	"finledger/internal/storage"
)

// WalletService manages wallets: per-user unique names, non-negative initial
// balances, and currencies from the fixed supported set.
type WalletService struct {
	store *storage.Repository
}

func NewWalletService(store *storage.Repository) *WalletService {
	return &WalletService{store: store}
}

func (s *WalletService) Create(ctx context.Context, userID int64, cmd CreateWalletCommand) (core.Wallet, error) {
	wallet := core.Wallet{
		Name:           strings.TrimSpace(cmd.Name),
		InitialBalance: cmd.InitialBalance,
		Currency:       cmd.Currency,
		UserID:         userID,
	}
	if err := wallet.Validate(); err != nil {
		return core.Wallet{}, err
	}

	wallet, err := s.store.CreateWallet(ctx, wallet)
	if err != nil {
		return core.Wallet{}, fmt.Errorf("create wallet: %w", err)
	}

	slog.InfoContext(ctx, "Wallet created",
		"id", wallet.ID, "user_id", userID, "currency", wallet.Currency)
	return wallet, nil
}

func (s *WalletService) Update(ctx context.Context, userID, id int64, cmd UpdateWalletCommand) error {
	wallet, err := s.store.GetWallet(ctx, id)
	if err != nil {
		return fmt.Errorf("load wallet: %w", err)
	}
	if wallet.UserID != userID {
		return core.ErrForbidden
	}

	wallet.Name = strings.TrimSpace(cmd.Name)
	wallet.InitialBalance = cmd.InitialBalance
	wallet.Currency = cmd.Currency
	if err := wallet.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateWallet(ctx, wallet); err != nil {
		return fmt.Errorf("update wallet: %w", err)
	}
	return nil
}

// Delete removes a wallet and, by cascade, all of its transactions.
func (s *WalletService) Delete(ctx context.Context, userID, id int64) error {
	wallet, err := s.store.GetWallet(ctx, id)
	if err != nil {
		return fmt.Errorf("load wallet: %w", err)
	}
	if wallet.UserID != userID {
		return core.ErrForbidden
	}

	if err := s.store.DeleteWallet(ctx, id); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	slog.InfoContext(ctx, "Wallet deleted", "id", id, "user_id", userID)
	return nil
}

func (s *WalletService) List(ctx context.Context, userID int64) ([]core.Wallet, error) {
	return s.store.ListWallets(ctx, userID)
}
