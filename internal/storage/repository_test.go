package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finledger/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustUser(t *testing.T, repo *Repository, name string) core.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), name)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustWallet(t *testing.T, repo *Repository, userID int64, name, currency string) core.Wallet {
	t.Helper()
	w, err := repo.CreateWallet(context.Background(), core.Wallet{
		Name: name, InitialBalance: decimal.NewFromInt(100), Currency: currency, UserID: userID,
	})
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	return w
}

func mustCategory(t *testing.T, repo *Repository, userID int64, name string) core.Category {
	t.Helper()
	c, err := repo.CreateCategory(context.Background(), core.Category{
		Name: name, Kind: core.CategoryRegular, UserID: userID,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

func transferCategory(t *testing.T, repo *Repository, userID int64) core.Category {
	t.Helper()
	categories, err := repo.ListCategories(context.Background(), userID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	for _, c := range categories {
		if c.IsTransfer() {
			return c
		}
	}
	t.Fatal("user has no transfer category")
	return core.Category{}
}

func TestCreateUserBootstrapsTransferCategory(t *testing.T) {
	repo := newTestRepo(t)
	user := mustUser(t, repo, "alice")

	if user.ID == 0 {
		t.Fatal("expected assigned user id")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	tc := transferCategory(t, repo, user.ID)
	if tc.Name != core.TransferCategoryName {
		t.Fatalf("transfer category name: got %s", tc.Name)
	}

	loaded, err := repo.GetUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !loaded.CreatedAt.Equal(user.CreatedAt.Truncate(time.Second)) {
		t.Fatalf("created_at round trip: stored %v, loaded %v", user.CreatedAt, loaded.CreatedAt)
	}

	if _, err := repo.GetUser(context.Background(), 9999); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("missing user: got %v", err)
	}
}

func TestWalletCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := mustUser(t, repo, "alice")

	w := mustWallet(t, repo, user.ID, "Checking", "USD")

	loaded, err := repo.GetWallet(ctx, w.ID)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if loaded.Name != "Checking" || !loaded.InitialBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("wallet round trip: %+v", loaded)
	}

	loaded.Name = "Main Checking"
	loaded.InitialBalance = decimal.RequireFromString("250.75")
	if err := repo.UpdateWallet(ctx, loaded); err != nil {
		t.Fatalf("update wallet: %v", err)
	}
	reloaded, err := repo.GetWallet(ctx, w.ID)
	if err != nil {
		t.Fatalf("reload wallet: %v", err)
	}
	if reloaded.Name != "Main Checking" || !reloaded.InitialBalance.Equal(decimal.RequireFromString("250.75")) {
		t.Fatalf("wallet update lost: %+v", reloaded)
	}

	if err := repo.DeleteWallet(ctx, w.ID); err != nil {
		t.Fatalf("delete wallet: %v", err)
	}
	if _, err := repo.GetWallet(ctx, w.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("deleted wallet: got %v", err)
	}
}

func TestDuplicateWalletName(t *testing.T) {
	repo := newTestRepo(t)
	user := mustUser(t, repo, "alice")
	other := mustUser(t, repo, "bob")

	mustWallet(t, repo, user.ID, "Checking", "USD")

	_, err := repo.CreateWallet(context.Background(), core.Wallet{
		Name: "Checking", InitialBalance: decimal.Zero, Currency: "USD", UserID: user.ID,
	})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate name for same user: got %v", err)
	}

	// Same name under a different user is fine.
	mustWallet(t, repo, other.ID, "Checking", "USD")
}

func TestDuplicateCategoryName(t *testing.T) {
	repo := newTestRepo(t)
	user := mustUser(t, repo, "alice")
	mustCategory(t, repo, user.ID, "Food")

	_, err := repo.CreateCategory(context.Background(), core.Category{
		Name: "Food", Kind: core.CategoryRegular, UserID: user.ID,
	})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate category: got %v", err)
	}
}

func TestTransactionCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := mustUser(t, repo, "alice")
	wallet := mustWallet(t, repo, user.ID, "Checking", "USD")
	category := mustCategory(t, repo, user.ID, "Food")

	date := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	created, err := repo.CreateTransaction(ctx, core.Transaction{
		Amount:      decimal.RequireFromString("-12.50"),
		Description: "groceries",
		Date:        date,
		CategoryID:  category.ID,
		WalletID:    wallet.ID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	loaded, err := repo.GetTransaction(ctx, created.ID)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if !loaded.Amount.Equal(decimal.RequireFromString("-12.50")) || !loaded.Date.Equal(date) {
		t.Fatalf("transaction round trip: %+v", loaded)
	}
	if loaded.IsTransferLeg() {
		t.Fatal("ordinary transaction must not look like a transfer leg")
	}

	loaded.Amount = decimal.RequireFromString("-15")
	loaded.Description = "groceries and snacks"
	if err := repo.UpdateTransaction(ctx, loaded); err != nil {
		t.Fatalf("update transaction: %v", err)
	}
	reloaded, err := repo.GetTransaction(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload transaction: %v", err)
	}
	if reloaded.Description != "groceries and snacks" {
		t.Fatalf("update lost: %+v", reloaded)
	}

	if err := repo.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("deleted transaction: got %v", err)
	}
}

func TestCascadeDeleteWalletRemovesTransactions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := mustUser(t, repo, "alice")
	wallet := mustWallet(t, repo, user.ID, "Checking", "USD")
	category := mustCategory(t, repo, user.ID, "Food")

	tx, err := repo.CreateTransaction(ctx, core.Transaction{
		Amount:     decimal.NewFromInt(-5),
		Date:       time.Now(),
		CategoryID: category.ID,
		WalletID:   wallet.ID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := repo.DeleteWallet(ctx, wallet.ID); err != nil {
		t.Fatalf("delete wallet: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected cascade delete, got %v", err)
	}
}

func TestCascadeDeleteCategoryRemovesTransactions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := mustUser(t, repo, "alice")
	wallet := mustWallet(t, repo, user.ID, "Checking", "USD")
	category := mustCategory(t, repo, user.ID, "Food")

	tx, err := repo.CreateTransaction(ctx, core.Transaction{
		Amount:     decimal.NewFromInt(-5),
		Date:       time.Now(),
		CategoryID: category.ID,
		WalletID:   wallet.ID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := repo.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected cascade delete, got %v", err)
	}
}

func TestTransferLegs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := mustUser(t, repo, "alice")
	from := mustWallet(t, repo, user.ID, "Checking", "USD")
	to := mustWallet(t, repo, user.ID, "Savings", "USD")
	tc := transferCategory(t, repo, user.ID)

	date := time.Date(2025, time.March, 6, 0, 0, 0, 0, time.UTC)
	out := core.Transaction{
		Amount: decimal.NewFromInt(-500), Date: date, TransferID: "tid-1",
		CategoryID: tc.ID, WalletID: from.ID,
	}
	in := core.Transaction{
		Amount: decimal.NewFromInt(500), Date: date, TransferID: "tid-1",
		CategoryID: tc.ID, WalletID: to.ID,
	}

	out, in, err := repo.CreateTransferLegs(ctx, out, in)
	if err != nil {
		t.Fatalf("create transfer legs: %v", err)
	}
	if out.ID == 0 || in.ID == 0 || out.ID == in.ID {
		t.Fatalf("bad leg ids: %d, %d", out.ID, in.ID)
	}

	// Shared update propagates description and date; amount hits one leg.
	newDate := date.AddDate(0, 0, 1)
	err = repo.UpdateTransferLegs(ctx, out.ID, "tid-1", decimal.NewFromInt(-450), "moved savings", newDate)
	if err != nil {
		t.Fatalf("update transfer legs: %v", err)
	}

	outLeg, err := repo.GetTransaction(ctx, out.ID)
	if err != nil {
		t.Fatalf("reload out leg: %v", err)
	}
	inLeg, err := repo.GetTransaction(ctx, in.ID)
	if err != nil {
		t.Fatalf("reload in leg: %v", err)
	}
	if !outLeg.Amount.Equal(decimal.NewFromInt(-450)) {
		t.Fatalf("out leg amount: %s", outLeg.Amount)
	}
	if !inLeg.Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("in leg amount must be untouched: %s", inLeg.Amount)
	}
	for _, leg := range []core.Transaction{outLeg, inLeg} {
		if leg.Description != "moved savings" || !leg.Date.Equal(newDate) {
			t.Fatalf("shared fields not propagated: %+v", leg)
		}
	}

	if err := repo.DeleteTransferLegs(ctx, "tid-1"); err != nil {
		t.Fatalf("delete transfer legs: %v", err)
	}
	for _, id := range []int64{out.ID, in.ID} {
		if _, err := repo.GetTransaction(ctx, id); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("leg %d should be gone, got %v", id, err)
		}
	}
}

func TestListWalletLedgers(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := mustUser(t, repo, "alice")
	checking := mustWallet(t, repo, user.ID, "Checking", "USD")
	savings := mustWallet(t, repo, user.ID, "Savings", "EUR")
	food := mustCategory(t, repo, user.ID, "Food")

	_, err := repo.CreateTransaction(ctx, core.Transaction{
		Amount: decimal.NewFromInt(-20), Date: time.Now(), CategoryID: food.ID, WalletID: checking.ID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	ledgers, err := repo.ListWalletLedgers(ctx, user.ID)
	if err != nil {
		t.Fatalf("list ledgers: %v", err)
	}
	if len(ledgers) != 2 {
		t.Fatalf("expected 2 ledgers, got %d", len(ledgers))
	}

	// Wallets come back name-sorted.
	if ledgers[0].Name != "Checking" || ledgers[1].Name != "Savings" {
		t.Fatalf("ledger order: %s, %s", ledgers[0].Name, ledgers[1].Name)
	}
	if len(ledgers[0].Entries) != 1 {
		t.Fatalf("checking entries: %d", len(ledgers[0].Entries))
	}
	if got := ledgers[0].Entries[0]; got.CategoryName != "Food" || got.CategoryKind != core.CategoryRegular {
		t.Fatalf("entry category join: %+v", got)
	}
	if len(ledgers[1].Entries) != 0 {
		t.Fatalf("savings should have no entries, got %d", len(ledgers[1].Entries))
	}
	if ledgers[1].ID != savings.ID {
		t.Fatalf("savings ledger id mismatch")
	}

	// Another user's data stays invisible.
	stranger := mustUser(t, repo, "bob")
	strangers, err := repo.ListWalletLedgers(ctx, stranger.ID)
	if err != nil {
		t.Fatalf("list stranger ledgers: %v", err)
	}
	if len(strangers) != 0 {
		t.Fatalf("expected no ledgers for stranger, got %d", len(strangers))
	}
}

func TestTransactionsInRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := mustUser(t, repo, "alice")
	wallet := mustWallet(t, repo, user.ID, "Checking", "USD")
	food := mustCategory(t, repo, user.ID, "Food")

	for _, d := range []time.Time{
		time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
	} {
		if _, err := repo.CreateTransaction(ctx, core.Transaction{
			Amount: decimal.NewFromInt(-1), Date: d, CategoryID: food.ID, WalletID: wallet.ID,
		}); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	entries, err := repo.TransactionsInRange(ctx, user.ID, from, to)
	if err != nil {
		t.Fatalf("range query: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries in [from, to), got %d", len(entries))
	}
	for _, e := range entries {
		if e.Date.Before(from) || !e.Date.Before(to) {
			t.Fatalf("entry outside window: %v", e.Date)
		}
	}
}

func TestAppendAudit(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.AppendAudit(context.Background(), "transaction.created", []byte(`{"user_id":1}`))
	if err != nil {
		t.Fatalf("append audit: %v", err)
	}
}
