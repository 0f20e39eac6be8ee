package state

import (
	"context"
	"fmt"
	"strings"

	"ekspence/internal/core"
)

// CategoryList selects which of the two lists an operation targets.
type CategoryList string

const (
	ExpenseCategories CategoryList = "expense"
	IncomeCategories  CategoryList = "income"
)

func (l CategoryList) Validate() error {
	switch l {
	case ExpenseCategories, IncomeCategories:
		return nil
	default:
		return fmt.Errorf("invalid category list %q", string(l))
	}
}

func pick(cats *core.Categories, list CategoryList) *[]string {
	if list == IncomeCategories {
		return &cats.Income
	}
	return &cats.Expense
}

func indexOf(list []string, name string) int {
	for i, v := range list {
		if v == name {
			return i
		}
	}
	return -1
}

func (a *App) AddCategory(ctx context.Context, list CategoryList, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("add category: %w", core.ErrEmptyCategory)
	}
	if err := list.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	next := copyCategories(a.cats)
	target := pick(&next, list)
	if indexOf(*target, name) >= 0 {
		a.mu.Unlock()
		return fmt.Errorf("add category %q: %w", name, core.ErrDuplicateName)
	}
	*target = append(*target, name)
	a.cats = next
	a.mu.Unlock()

	a.persistCategories(ctx)
	a.publish(ctx, "category", name)
	return nil
}

// RemoveCategory drops the name from the list. Existing transactions keep
// their category string; aggregation treats it like any other label.
func (a *App) RemoveCategory(ctx context.Context, list CategoryList, name string) error {
	if err := list.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	next := copyCategories(a.cats)
	target := pick(&next, list)
	idx := indexOf(*target, name)
	if idx < 0 {
		a.mu.Unlock()
		return fmt.Errorf("remove category %q: %w", name, core.ErrNotFound)
	}
	*target = append((*target)[:idx], (*target)[idx+1:]...)
	a.cats = next
	a.mu.Unlock()

	a.persistCategories(ctx)
	a.publish(ctx, "category", name)
	return nil
}

// RenameCategory updates the list entry and rewrites every transaction
// carrying the old name in the same swap. Position in the list is kept.
func (a *App) RenameCategory(ctx context.Context, list CategoryList, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("rename category: %w", core.ErrEmptyCategory)
	}
	if err := list.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	next := copyCategories(a.cats)
	target := pick(&next, list)
	idx := indexOf(*target, oldName)
	if idx < 0 {
		a.mu.Unlock()
		return fmt.Errorf("rename category %q: %w", oldName, core.ErrNotFound)
	}
	if oldName != newName && indexOf(*target, newName) >= 0 {
		a.mu.Unlock()
		return fmt.Errorf("rename category to %q: %w", newName, core.ErrDuplicateName)
	}
	(*target)[idx] = newName

	nextTxns := copyTransactions(a.txns)
	for i, t := range nextTxns {
		if t.Category == oldName {
			nextTxns[i].Category = newName
		}
	}

	a.cats = next
	a.txns = nextTxns
	a.mu.Unlock()

	a.persistCategories(ctx)
	a.persistTransactions(ctx)
	a.publish(ctx, "category", newName)
	return nil
}
