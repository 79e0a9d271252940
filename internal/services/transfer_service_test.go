package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finledger/internal/core"
	"finledger/internal/storage"
)

type fixture struct {
	repo     *storage.Repository
	user     core.User
	checking core.Wallet
	savings  core.Wallet
	food     core.Category
	transfer core.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	user, err := repo.CreateUser(ctx, "alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	checking, err := repo.CreateWallet(ctx, core.Wallet{
		Name: "Checking", InitialBalance: decimal.NewFromInt(1000), Currency: "USD", UserID: user.ID,
	})
	if err != nil {
		t.Fatalf("create checking: %v", err)
	}
	savings, err := repo.CreateWallet(ctx, core.Wallet{
		Name: "Savings", InitialBalance: decimal.Zero, Currency: "EUR", UserID: user.ID,
	})
	if err != nil {
		t.Fatalf("create savings: %v", err)
	}

	food, err := repo.CreateCategory(ctx, core.Category{
		Name: "Food", Kind: core.CategoryRegular, UserID: user.ID,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	categories, err := repo.ListCategories(ctx, user.ID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	var transfer core.Category
	for _, c := range categories {
		if c.IsTransfer() {
			transfer = c
		}
	}
	if transfer.ID == 0 {
		t.Fatal("transfer category missing")
	}

	return &fixture{repo: repo, user: user, checking: checking, savings: savings, food: food, transfer: transfer}
}

func (f *fixture) transferCommand() CreateTransferCommand {
	return CreateTransferCommand{
		CategoryID:   f.transfer.ID,
		FromWalletID: f.checking.ID,
		ToWalletID:   f.savings.ID,
		FromAmount:   decimal.NewFromInt(500),
		ToAmount:     decimal.RequireFromString("425.50"),
		Description:  "monthly savings",
		Date:         time.Date(2025, time.March, 6, 0, 0, 0, 0, time.UTC),
	}
}

func countTransactions(t *testing.T, f *fixture) int {
	t.Helper()
	ledgers, err := f.repo.ListWalletLedgers(context.Background(), f.user.ID)
	if err != nil {
		t.Fatalf("list ledgers: %v", err)
	}
	n := 0
	for _, l := range ledgers {
		n += len(l.Entries)
	}
	return n
}

func TestCreateTransferWritesBothLegs(t *testing.T) {
	f := newFixture(t)
	svc := NewTransferService(f.repo, nil)

	out, in, err := svc.CreateTransfer(context.Background(), f.user.ID, f.transferCommand())
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}

	if !out.Amount.Equal(decimal.NewFromInt(-500)) {
		t.Fatalf("outgoing leg amount: %s", out.Amount)
	}
	if !in.Amount.Equal(decimal.RequireFromString("425.50")) {
		t.Fatalf("incoming leg amount: %s", in.Amount)
	}
	if out.TransferID == "" || out.TransferID != in.TransferID {
		t.Fatalf("legs must share a transfer id: %q vs %q", out.TransferID, in.TransferID)
	}
	if out.WalletID != f.checking.ID || in.WalletID != f.savings.ID {
		t.Fatal("legs landed in wrong wallets")
	}
	if countTransactions(t, f) != 2 {
		t.Fatalf("expected exactly 2 rows, got %d", countTransactions(t, f))
	}
}

func TestCreateTransferNormalizesSigns(t *testing.T) {
	f := newFixture(t)
	svc := NewTransferService(f.repo, nil)

	cmd := f.transferCommand()
	// Sloppy client signs: the service enforces -out/+in regardless.
	cmd.FromAmount = decimal.NewFromInt(-500)
	cmd.ToAmount = decimal.RequireFromString("-425.50")

	out, in, err := svc.CreateTransfer(context.Background(), f.user.ID, cmd)
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}
	if !out.Amount.IsNegative() || !in.Amount.IsPositive() {
		t.Fatalf("sign normalization failed: out=%s in=%s", out.Amount, in.Amount)
	}
}

func TestCreateTransferValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewTransferService(f.repo, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateTransferCommand)
		want   error
	}{
		{"regular category", func(c *CreateTransferCommand) { c.CategoryID = f.food.ID }, core.ErrNotTransferCategory},
		{"same wallet", func(c *CreateTransferCommand) { c.ToWalletID = c.FromWalletID }, core.ErrSameWallet},
		{"zero from amount", func(c *CreateTransferCommand) { c.FromAmount = decimal.Zero }, core.ErrZeroAmount},
		{"zero to amount", func(c *CreateTransferCommand) { c.ToAmount = decimal.Zero }, core.ErrZeroAmount},
		{"zero date", func(c *CreateTransferCommand) { c.Date = time.Time{} }, core.ErrZeroDate},
		{"missing category", func(c *CreateTransferCommand) { c.CategoryID = 9999 }, core.ErrNotFound},
		{"missing wallet", func(c *CreateTransferCommand) { c.ToWalletID = 9999 }, core.ErrNotFound},
	}
	for _, tc := range cases {
		cmd := f.transferCommand()
		tc.mutate(&cmd)
		_, _, err := svc.CreateTransfer(ctx, f.user.ID, cmd)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	// No validation failure may leave a stray leg behind.
	if n := countTransactions(t, f); n != 0 {
		t.Fatalf("validation failures wrote %d rows", n)
	}
}

func TestCreateTransferForeignUser(t *testing.T) {
	f := newFixture(t)
	svc := NewTransferService(f.repo, nil)

	stranger, err := f.repo.CreateUser(context.Background(), "bob")
	if err != nil {
		t.Fatalf("create stranger: %v", err)
	}

	_, _, err = svc.CreateTransfer(context.Background(), stranger.ID, f.transferCommand())
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("foreign user: got %v, want %v", err, core.ErrForbidden)
	}
}
