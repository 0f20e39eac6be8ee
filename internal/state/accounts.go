package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ekspence/internal/core"
)

func findAccount(accounts []core.Account, name string) int {
	for i, a := range accounts {
		if a.Name == name {
			return i
		}
	}
	return -1
}

func accountNameTaken(accounts []core.Account, name string) bool {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, a := range accounts {
		if strings.ToLower(strings.TrimSpace(a.Name)) == needle {
			return true
		}
	}
	return false
}

// AddAccount registers a new account. Names are unique case-insensitively so
// a differently-cased duplicate cannot slip past the internal-account
// matching rule. A non-zero opening balance seeds a synthetic income
// transaction dated today.
func (a *App) AddAccount(ctx context.Context, acc core.Account, openingBalance float64, openingDate core.Date) error {
	if err := acc.Validate(); err != nil {
		return fmt.Errorf("add account: %w", err)
	}

	a.mu.Lock()
	if accountNameTaken(a.accounts, acc.Name) {
		a.mu.Unlock()
		return fmt.Errorf("add account %q: %w", acc.Name, core.ErrDuplicateName)
	}

	nextAccounts := make([]core.Account, 0, len(a.accounts)+1)
	nextAccounts = append(nextAccounts, a.accounts...)
	nextAccounts = append(nextAccounts, acc)
	a.accounts = nextAccounts

	var nextTxns []core.Transaction
	if openingBalance > 0 {
		opening := core.Transaction{
			ID:          uuid.NewString(),
			Date:        openingDate,
			Description: "Opening Balance",
			FromAccount: core.OpeningBalanceSource,
			ToAccount:   acc.Name,
			Category:    "Income",
			Amount:      openingBalance,
		}
		nextTxns = make([]core.Transaction, 0, len(a.txns)+1)
		nextTxns = append(nextTxns, a.txns...)
		nextTxns = append(nextTxns, opening)
		a.txns = nextTxns
	}
	a.mu.Unlock()

	a.persistAccounts(ctx)
	if nextTxns != nil {
		a.persistTransactions(ctx)
	}
	a.publish(ctx, "account", acc.Name)
	return nil
}

// UpdateAccount changes type and currency. The name is fixed here; renames
// go through RenameAccount so the cascade cannot be skipped.
func (a *App) UpdateAccount(ctx context.Context, name string, typ core.AccountType, currency string) error {
	updated := core.Account{Name: name, Type: typ, Currency: currency}
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	a.mu.Lock()
	idx := findAccount(a.accounts, name)
	if idx < 0 {
		a.mu.Unlock()
		return fmt.Errorf("update account %q: %w", name, core.ErrNotFound)
	}
	next := copyAccounts(a.accounts)
	next[idx] = updated
	a.accounts = next
	a.mu.Unlock()

	a.persistAccounts(ctx)
	a.publish(ctx, "account", name)
	return nil
}

// RenameAccount updates the registry entry and rewrites every transaction
// leg referencing the old name in one atomic swap, so no aggregate can see
// the registry and the history disagree.
func (a *App) RenameAccount(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("rename account: %w", core.ErrEmptyAccount)
	}

	a.mu.Lock()
	idx := findAccount(a.accounts, oldName)
	if idx < 0 {
		a.mu.Unlock()
		return fmt.Errorf("rename account %q: %w", oldName, core.ErrNotFound)
	}
	if oldName != newName && accountNameTaken(a.accounts, newName) {
		a.mu.Unlock()
		return fmt.Errorf("rename account to %q: %w", newName, core.ErrDuplicateName)
	}

	nextAccounts := copyAccounts(a.accounts)
	nextAccounts[idx].Name = newName

	nextTxns := copyTransactions(a.txns)
	for i, t := range nextTxns {
		if t.FromAccount == oldName {
			nextTxns[i].FromAccount = newName
		}
		if t.ToAccount == oldName {
			nextTxns[i].ToAccount = newName
		}
	}

	a.accounts = nextAccounts
	a.txns = nextTxns
	a.mu.Unlock()

	a.persistAccounts(ctx)
	a.persistTransactions(ctx)
	a.publish(ctx, "account", newName)
	return nil
}

// DeleteAccount removes the account and exactly the transactions where it
// appears on either leg.
func (a *App) DeleteAccount(ctx context.Context, name string) error {
	a.mu.Lock()
	idx := findAccount(a.accounts, name)
	if idx < 0 {
		a.mu.Unlock()
		return fmt.Errorf("delete account %q: %w", name, core.ErrNotFound)
	}

	nextAccounts := make([]core.Account, 0, len(a.accounts)-1)
	nextAccounts = append(nextAccounts, a.accounts[:idx]...)
	nextAccounts = append(nextAccounts, a.accounts[idx+1:]...)

	nextTxns := make([]core.Transaction, 0, len(a.txns))
	for _, t := range a.txns {
		if t.FromAccount == name || t.ToAccount == name {
			continue
		}
		nextTxns = append(nextTxns, t)
	}

	a.accounts = nextAccounts
	a.txns = nextTxns
	a.mu.Unlock()

	a.persistAccounts(ctx)
	a.persistTransactions(ctx)
	a.publish(ctx, "account", name)
	return nil
}
