// Package storage is the SQLite persistence layer for users, wallets,
// categories, and transactions, including the transactional paired-leg
// writes transfers depend on.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finledger/internal/core"

	_ "modernc.org/sqlite"
)

// ErrDuplicateName is returned when a per-user unique name is taken.
var ErrDuplicateName = errors.New("name already in use")

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Cascade deletes rely on foreign keys being enforced on every connection.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser inserts a user together with their system transfer category,
// which exists for the whole lifetime of the account.
func (r *Repository) CreateUser(ctx context.Context, name string) (core.User, error) {
	user := core.User{Name: name, CreatedAt: time.Now().UTC()}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.User{}, fmt.Errorf("begin create user: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (name, created_at) VALUES (?, ?)`,
		name, formatTime(user.CreatedAt))
	if err != nil {
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	user.ID, err = res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("user id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO categories (name, kind, user_id) VALUES (?, ?, ?)`,
		core.TransferCategoryName, core.CategoryTransfer, user.ID)
	if err != nil {
		return core.User{}, fmt.Errorf("insert transfer category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.User{}, fmt.Errorf("commit create user: %w", err)
	}
	return user, nil
}

func (r *Repository) GetUser(ctx context.Context, id int64) (core.User, error) {
	var user core.User
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM users WHERE id = ?`, id).
		Scan(&user.ID, &user.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	user.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return core.User{}, fmt.Errorf("parse user created_at: %w", err)
	}
	return user, nil
}

func (r *Repository) CreateWallet(ctx context.Context, w core.Wallet) (core.Wallet, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO wallets (name, initial_balance, currency, user_id) VALUES (?, ?, ?, ?)`,
		w.Name, w.InitialBalance.String(), w.Currency, w.UserID)
	if err != nil {
		return core.Wallet{}, mapConstraint(fmt.Errorf("insert wallet: %w", err))
	}
	w.ID, err = res.LastInsertId()
	if err != nil {
		return core.Wallet{}, fmt.Errorf("wallet id: %w", err)
	}
	return w, nil
}

func (r *Repository) GetWallet(ctx context.Context, id int64) (core.Wallet, error) {
	var w core.Wallet
	var initial string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, initial_balance, currency, user_id FROM wallets WHERE id = ?`, id).
		Scan(&w.ID, &w.Name, &initial, &w.Currency, &w.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Wallet{}, core.ErrNotFound
	}
	if err != nil {
		return core.Wallet{}, fmt.Errorf("get wallet: %w", err)
	}
	w.InitialBalance, err = decimal.NewFromString(initial)
	if err != nil {
		return core.Wallet{}, fmt.Errorf("parse wallet initial balance: %w", err)
	}
	return w, nil
}

func (r *Repository) UpdateWallet(ctx context.Context, w core.Wallet) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE wallets SET name = ?, initial_balance = ?, currency = ? WHERE id = ?`,
		w.Name, w.InitialBalance.String(), w.Currency, w.ID)
	if err != nil {
		return mapConstraint(fmt.Errorf("update wallet: %w", err))
	}
	return nil
}

// DeleteWallet removes a wallet; its transactions go with it via cascade.
func (r *Repository) DeleteWallet(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wallets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	return nil
}

func (r *Repository) ListWallets(ctx context.Context, userID int64) ([]core.Wallet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, initial_balance, currency, user_id FROM wallets WHERE user_id = ? ORDER BY name`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []core.Wallet
	for rows.Next() {
		var w core.Wallet
		var initial string
		if err := rows.Scan(&w.ID, &w.Name, &initial, &w.Currency, &w.UserID); err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		if w.InitialBalance, err = decimal.NewFromString(initial); err != nil {
			return nil, fmt.Errorf("parse wallet initial balance: %w", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func (r *Repository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, kind, user_id) VALUES (?, ?, ?)`,
		c.Name, c.Kind, c.UserID)
	if err != nil {
		return core.Category{}, mapConstraint(fmt.Errorf("insert category: %w", err))
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("category id: %w", err)
	}
	return c, nil
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, kind, user_id FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Kind, &c.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *Repository) RenameCategory(ctx context.Context, id int64, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return mapConstraint(fmt.Errorf("rename category: %w", err))
	}
	return nil
}

// DeleteCategory removes a category; its transactions go with it via cascade.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *Repository) ListCategories(ctx context.Context, userID int64) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, kind, user_id FROM categories WHERE user_id = ? ORDER BY kind DESC, name`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &c.UserID); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *Repository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (amount, description, date, transfer_id, category_id, wallet_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Amount.String(), t.Description, formatTime(t.Date), t.TransferID, t.CategoryID, t.WalletID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction id: %w", err)
	}
	return t, nil
}

func (r *Repository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, amount, description, date, transfer_id, category_id, wallet_id
		 FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	return t, err
}

func (r *Repository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET amount = ?, description = ?, date = ?, category_id = ?, wallet_id = ?
		 WHERE id = ?`,
		t.Amount.String(), t.Description, formatTime(t.Date), t.CategoryID, t.WalletID, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// CreateTransferLegs writes both legs of a transfer as a single transaction:
// either both rows commit or neither does.
func (r *Repository) CreateTransferLegs(ctx context.Context, out, in core.Transaction) (core.Transaction, core.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, core.Transaction{}, fmt.Errorf("begin transfer: %w", err)
	}
	defer tx.Rollback()

	insert := func(t core.Transaction) (core.Transaction, error) {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (amount, description, date, transfer_id, category_id, wallet_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			t.Amount.String(), t.Description, formatTime(t.Date), t.TransferID, t.CategoryID, t.WalletID)
		if err != nil {
			return core.Transaction{}, err
		}
		t.ID, err = res.LastInsertId()
		return t, err
	}

	if out, err = insert(out); err != nil {
		return core.Transaction{}, core.Transaction{}, fmt.Errorf("insert outgoing leg: %w", err)
	}
	if in, err = insert(in); err != nil {
		return core.Transaction{}, core.Transaction{}, fmt.Errorf("insert incoming leg: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Transaction{}, core.Transaction{}, fmt.Errorf("commit transfer: %w", err)
	}
	return out, in, nil
}

// DeleteTransferLegs removes both legs sharing a transfer id.
func (r *Repository) DeleteTransferLegs(ctx context.Context, transferID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE transfer_id = ?`, transferID); err != nil {
		return fmt.Errorf("delete transfer legs: %w", err)
	}
	return nil
}

// UpdateTransferLegs applies shared fields (description, date) to both legs
// and the new amount to the addressed leg only, atomically.
func (r *Repository) UpdateTransferLegs(ctx context.Context, legID int64, transferID string, amount decimal.Decimal, description string, date time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET description = ?, date = ? WHERE transfer_id = ?`,
		description, formatTime(date), transferID); err != nil {
		return fmt.Errorf("update shared leg fields: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET amount = ? WHERE id = ?`,
		amount.String(), legID); err != nil {
		return fmt.Errorf("update leg amount: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer update: %w", err)
	}
	return nil
}

// ListWalletLedgers loads all of a user's wallets eagerly joined with their
// transactions and category data, the read the aggregation pass runs on.
func (r *Repository) ListWalletLedgers(ctx context.Context, userID int64) ([]core.WalletLedger, error) {
	wallets, err := r.ListWallets(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.amount, t.description, t.date, t.transfer_id, t.category_id, t.wallet_id,
		        c.name, c.kind
		 FROM transactions t
		 JOIN wallets w ON w.id = t.wallet_id
		 LEFT JOIN categories c ON c.id = t.category_id
		 WHERE w.user_id = ?
		 ORDER BY t.date, t.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	byWallet := make(map[int64][]core.Entry)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		byWallet[entry.WalletID] = append(byWallet[entry.WalletID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}

	ledgers := make([]core.WalletLedger, len(wallets))
	for i, w := range wallets {
		ledgers[i] = core.WalletLedger{Wallet: w, Entries: byWallet[w.ID]}
	}
	return ledgers, nil
}

// TransactionsInRange returns a user's entries with date in [from, to).
func (r *Repository) TransactionsInRange(ctx context.Context, userID int64, from, to time.Time) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.amount, t.description, t.date, t.transfer_id, t.category_id, t.wallet_id,
		        c.name, c.kind
		 FROM transactions t
		 JOIN wallets w ON w.id = t.wallet_id
		 LEFT JOIN categories c ON c.id = t.category_id
		 WHERE w.user_id = ? AND t.date >= ? AND t.date < ?
		 ORDER BY t.date, t.id`,
		userID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("list transactions in range: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AppendAudit records a ledger event in the audit trail.
func (r *Repository) AppendAudit(ctx context.Context, event string, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (event, payload, recorded_at) VALUES (?, ?, ?)`,
		event, string(payload), formatTime(time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var amount, date string
	err := row.Scan(&t.ID, &amount, &t.Description, &date, &t.TransferID, &t.CategoryID, &t.WalletID)
	if err != nil {
		return core.Transaction{}, err
	}
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction amount: %w", err)
	}
	if t.Date, err = parseTime(date); err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date: %w", err)
	}
	return t, nil
}

func scanEntry(row rowScanner) (core.Entry, error) {
	var e core.Entry
	var amount, date string
	var catName, catKind sql.NullString
	err := row.Scan(&e.ID, &amount, &e.Description, &date, &e.TransferID, &e.CategoryID, &e.WalletID,
		&catName, &catKind)
	if err != nil {
		return core.Entry{}, fmt.Errorf("scan ledger entry: %w", err)
	}
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Entry{}, fmt.Errorf("parse entry amount: %w", err)
	}
	if e.Date, err = parseTime(date); err != nil {
		return core.Entry{}, fmt.Errorf("parse entry date: %w", err)
	}
	e.CategoryName = catName.String
	e.CategoryKind = core.CategoryKind(catKind.String)
	if e.CategoryKind == "" {
		e.CategoryKind = core.CategoryRegular
	}
	return e, nil
}

// Times are stored as fixed-width UTC RFC3339 so that lexicographic string
// comparison in SQL matches chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func mapConstraint(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateName
	}
	return err
}
