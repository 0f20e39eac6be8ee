package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	AccountFiat    AccountType = "fiat"
	AccountSavings AccountType = "savings"
	AccountCash    AccountType = "cash"
	AccountOther   AccountType = "other"
)

// CategoryTransfer marks a movement between two registered accounts.
const CategoryTransfer = "Transfer"

type (
	AccountType string

	Date struct {
		time.Time
	}

	Transaction struct {
		ID          string  `json:"id"`
		Date        Date    `json:"date"`
		Description string  `json:"description"`
		FromAccount string  `json:"fromAccount"`
		ToAccount   string  `json:"toAccount"`
		Category    string  `json:"category"`
		Amount      float64 `json:"amount"`
	}

	Account struct {
		Name     string      `json:"name"`
		Type     AccountType `json:"type"`
		Currency string      `json:"currency"`
	}

	// Categories holds the two user-editable category lists. Order is
	// presentation order and is preserved by every operation.
	Categories struct {
		Expense []string `json:"expense"`
		Income  []string `json:"income"`
	}

	Settings struct {
		// SpendingLimit of 0 means "derive from income".
		SpendingLimit float64 `json:"spendingLimit"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyAccount    = errors.New("empty account")
	ErrEmptyCategory   = errors.New("empty category")
	ErrUnknownAccount  = errors.New("unknown account")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrNotFound        = errors.New("not found")
	ErrInvalidCurrency = errors.New("invalid currency")
)

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts the canonical YYYY-MM-DD form used in storage and on the
// wire.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (t AccountType) Validate() error {
	switch t {
	case AccountFiat, AccountSavings, AccountCash, AccountOther:
		return nil
	default:
		return fmt.Errorf("invalid account type %q", string(t))
	}
}

// IsTransfer reports whether the transaction is a movement between accounts
// on the category axis. Account-topology classification lives in the ledger
// package and is independent of this.
func (t Transaction) IsTransfer() bool {
	return t.Category == CategoryTransfer
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.FromAccount) == "" || strings.TrimSpace(t.ToAccount) == "" {
		return ErrEmptyAccount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// WithDefaultDescription fills a blank description the way entry forms do.
func (t Transaction) WithDefaultDescription(incomeCategories []string) Transaction {
	if strings.TrimSpace(t.Description) != "" {
		return t
	}
	switch {
	case t.IsTransfer():
		t.Description = fmt.Sprintf("Transfer: %s → %s", t.FromAccount, t.ToAccount)
	case contains(incomeCategories, t.Category):
		t.Description = "Income Entry"
	default:
		t.Description = "Expense Entry"
	}
	return t
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyAccount
	}
	if err := a.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(a.Currency) == "" {
		return ErrInvalidCurrency
	}
	return nil
}

// IsIncome reports whether category belongs to the income list.
func (c Categories) IsIncome(category string) bool {
	return contains(c.Income, category)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
