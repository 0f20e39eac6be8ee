package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"ekspence/internal/core"
	"ekspence/internal/state"

	_ "modernc.org/sqlite"
)

const settingSpendingLimit = "spending_limit"

// SQLiteRepository persists the full application state. Each Save call
// rewrites its table inside a transaction, mirroring the controller's
// whole-collection replacement discipline: the table always holds one
// complete snapshot, never a partial one.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
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

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads the complete stored snapshot. Dates are stored as YYYY-MM-DD
// text and parsed back without any timezone shift.
func (r *SQLiteRepository) Load(ctx context.Context) (state.Snapshot, error) {
	var snap state.Snapshot

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, from_account, to_account, category, amount
		 FROM transactions ORDER BY position`)
	if err != nil {
		return snap, fmt.Errorf("load transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tx core.Transaction
		var rawDate string
		if err := rows.Scan(&tx.ID, &rawDate, &tx.Description, &tx.FromAccount, &tx.ToAccount, &tx.Category, &tx.Amount); err != nil {
			return snap, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Date, err = core.ParseDate(rawDate)
		if err != nil {
			return snap, fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
		snap.Transactions = append(snap.Transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate transactions: %w", err)
	}

	accRows, err := r.db.QueryContext(ctx,
		`SELECT name, type, currency FROM accounts ORDER BY position`)
	if err != nil {
		return snap, fmt.Errorf("load accounts: %w", err)
	}
	defer accRows.Close()

	for accRows.Next() {
		var acc core.Account
		if err := accRows.Scan(&acc.Name, &acc.Type, &acc.Currency); err != nil {
			return snap, fmt.Errorf("scan account: %w", err)
		}
		snap.Accounts = append(snap.Accounts, acc)
	}
	if err := accRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate accounts: %w", err)
	}

	catRows, err := r.db.QueryContext(ctx,
		`SELECT name, list FROM categories ORDER BY list, position`)
	if err != nil {
		return snap, fmt.Errorf("load categories: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var name, list string
		if err := catRows.Scan(&name, &list); err != nil {
			return snap, fmt.Errorf("scan category: %w", err)
		}
		if list == "income" {
			snap.Categories.Income = append(snap.Categories.Income, name)
		} else {
			snap.Categories.Expense = append(snap.Categories.Expense, name)
		}
	}
	if err := catRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate categories: %w", err)
	}

	var limit string
	err = r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, settingSpendingLimit).Scan(&limit)
	switch {
	case err == sql.ErrNoRows:
		// No override stored.
	case err != nil:
		return snap, fmt.Errorf("load settings: %w", err)
	default:
		v, perr := strconv.ParseFloat(limit, 64)
		if perr != nil {
			slog.WarnContext(ctx, "Ignoring unparseable spending limit", "value", limit)
		} else {
			snap.Settings.SpendingLimit = v
		}
	}

	slog.InfoContext(ctx, "State loaded from SQLite",
		"transactions", len(snap.Transactions),
		"accounts", len(snap.Accounts))
	return snap, nil
}

func (r *SQLiteRepository) SaveTransactions(ctx context.Context, txns []core.Transaction) error {
	return r.rewrite(ctx, "transactions", func(dbTx *sql.Tx) error {
		stmt, err := dbTx.PrepareContext(ctx,
			`INSERT INTO transactions (id, date, description, from_account, to_account, category, amount, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range txns {
			if _, err := stmt.ExecContext(ctx,
				t.ID, t.Date.String(), t.Description, t.FromAccount, t.ToAccount, t.Category, t.Amount, i); err != nil {
				return fmt.Errorf("insert transaction %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) SaveAccounts(ctx context.Context, accounts []core.Account) error {
	return r.rewrite(ctx, "accounts", func(dbTx *sql.Tx) error {
		stmt, err := dbTx.PrepareContext(ctx,
			`INSERT INTO accounts (name, type, currency, position) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, a := range accounts {
			if _, err := stmt.ExecContext(ctx, a.Name, string(a.Type), a.Currency, i); err != nil {
				return fmt.Errorf("insert account %s: %w", a.Name, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) SaveCategories(ctx context.Context, cats core.Categories) error {
	return r.rewrite(ctx, "categories", func(dbTx *sql.Tx) error {
		stmt, err := dbTx.PrepareContext(ctx,
			`INSERT INTO categories (name, list, position) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, name := range cats.Expense {
			if _, err := stmt.ExecContext(ctx, name, "expense", i); err != nil {
				return fmt.Errorf("insert expense category %s: %w", name, err)
			}
		}
		for i, name := range cats.Income {
			if _, err := stmt.ExecContext(ctx, name, "income", i); err != nil {
				return fmt.Errorf("insert income category %s: %w", name, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) SaveSettings(ctx context.Context, settings core.Settings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingSpendingLimit, strconv.FormatFloat(settings.SpendingLimit, 'f', -1, 64))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// rewrite deletes a table's contents and refills it atomically.
func (r *SQLiteRepository) rewrite(ctx context.Context, table string, fill func(*sql.Tx) error) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rewrite of %s: %w", table, err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := fill(dbTx); err != nil {
		return fmt.Errorf("fill %s: %w", table, err)
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit rewrite of %s: %w", table, err)
	}
	return nil
}
