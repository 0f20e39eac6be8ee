package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ekspence/internal/core"
)

func openTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ekspence.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadEmptyDatabase(t *testing.T) {
	repo := openTestRepository(t)

	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Transactions) != 0 || len(snap.Accounts) != 0 {
		t.Errorf("fresh database is not empty: %+v", snap)
	}
	if snap.Settings.SpendingLimit != 0 {
		t.Errorf("spending limit = %v, want 0", snap.Settings.SpendingLimit)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	txns := []core.Transaction{
		{ID: "t1", Date: core.NewDate(2025, time.November, 5), Description: "Salary", FromAccount: "Employer", ToAccount: "DSK", Category: "Salary", Amount: 1000},
		{ID: "t2", Date: core.NewDate(2025, time.November, 9), Description: "Groceries", FromAccount: "DSK", ToAccount: "T Market", Category: "Food", Amount: 52.40},
	}
	accounts := []core.Account{
		{Name: "DSK", Type: core.AccountFiat, Currency: "BGN"},
		{Name: "Cash", Type: core.AccountCash, Currency: "BGN"},
	}
	cats := core.Categories{
		Expense: []string{"Food", "Bills"},
		Income:  []string{"Salary"},
	}

	if err := repo.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("SaveTransactions: %v", err)
	}
	if err := repo.SaveAccounts(ctx, accounts); err != nil {
		t.Fatalf("SaveAccounts: %v", err)
	}
	if err := repo.SaveCategories(ctx, cats); err != nil {
		t.Fatalf("SaveCategories: %v", err)
	}
	if err := repo.SaveSettings(ctx, core.Settings{SpendingLimit: 700}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(snap.Transactions))
	}
	// Insertion order survives the rewrite.
	if snap.Transactions[0].ID != "t1" || snap.Transactions[1].ID != "t2" {
		t.Errorf("transaction order = %s, %s", snap.Transactions[0].ID, snap.Transactions[1].ID)
	}
	if got := snap.Transactions[0].Date.String(); got != "2025-11-05" {
		t.Errorf("date round trip = %s, want 2025-11-05", got)
	}
	if snap.Transactions[1].Amount != 52.40 {
		t.Errorf("amount = %v, want 52.40", snap.Transactions[1].Amount)
	}
	if len(snap.Accounts) != 2 || snap.Accounts[0].Name != "DSK" || snap.Accounts[1].Type != core.AccountCash {
		t.Errorf("accounts = %+v", snap.Accounts)
	}
	if len(snap.Categories.Expense) != 2 || len(snap.Categories.Income) != 1 {
		t.Errorf("categories = %+v", snap.Categories)
	}
	if snap.Settings.SpendingLimit != 700 {
		t.Errorf("spending limit = %v, want 700", snap.Settings.SpendingLimit)
	}
}

func TestSaveReplacesWholeTable(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	first := []core.Transaction{
		{ID: "t1", Date: core.NewDate(2025, time.November, 5), FromAccount: "Employer", ToAccount: "DSK", Category: "Salary", Amount: 1000},
	}
	second := []core.Transaction{
		{ID: "t2", Date: core.NewDate(2025, time.November, 9), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 40},
	}
	if err := repo.SaveTransactions(ctx, first); err != nil {
		t.Fatalf("SaveTransactions: %v", err)
	}
	if err := repo.SaveTransactions(ctx, second); err != nil {
		t.Fatalf("SaveTransactions: %v", err)
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Transactions) != 1 || snap.Transactions[0].ID != "t2" {
		t.Errorf("rewrite left %+v, want only t2", snap.Transactions)
	}
}
