package ledger

import (
	"testing"
	"time"

	"ekspence/internal/core"
)

func TestAccountIndexMatching(t *testing.T) {
	ix := NewAccountIndex([]core.Account{
		{Name: "DSK", Type: core.AccountFiat, Currency: "BGN"},
		{Name: "DSK Savings", Type: core.AccountSavings, Currency: "BGN"},
	})

	tests := []struct {
		name string
		want bool
	}{
		{"DSK", true},
		{"dsk", true},
		{"  DSK  ", true},
		{"dsk savings", true},
		{"Revolut", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ix.Internal(tt.name); got != tt.want {
			t.Errorf("Internal(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLegs(t *testing.T) {
	ix := NewAccountIndex(sampleAccounts())

	tests := []struct {
		name    string
		tx      core.Transaction
		acc     string
		wantOut Leg
		wantIn  Leg
	}{
		{
			name:   "salary is external income",
			tx:     core.Transaction{FromAccount: "Employer", ToAccount: "DSK", Amount: 100},
			acc:    "DSK",
			wantIn: LegExternalIncome,
		},
		{
			name:    "shop payment is external expense",
			tx:      core.Transaction{FromAccount: "DSK", ToAccount: "T Market", Amount: 100},
			acc:     "DSK",
			wantOut: LegExternalExpense,
		},
		{
			name:    "between registered accounts is transfer out",
			tx:      core.Transaction{FromAccount: "DSK", ToAccount: "DSK Savings", Amount: 100},
			acc:     "DSK",
			wantOut: LegTransferOut,
		},
		{
			name:   "same movement seen from the other side",
			tx:     core.Transaction{FromAccount: "DSK", ToAccount: "DSK Savings", Amount: 100},
			acc:    "DSK Savings",
			wantIn: LegTransferIn,
		},
		{
			name:    "self-transfer counts both sides",
			tx:      core.Transaction{FromAccount: "DSK", ToAccount: "DSK", Amount: 100},
			acc:     "DSK",
			wantOut: LegTransferOut,
			wantIn:  LegTransferIn,
		},
		{
			name: "uninvolved account",
			tx:   core.Transaction{FromAccount: "DSK", ToAccount: "T Market", Amount: 100},
			acc:  "Cash",
		},
		{
			name:    "dangling rename target is external",
			tx:      core.Transaction{FromAccount: "DSK", ToAccount: "Old Account", Amount: 100},
			acc:     "DSK",
			wantOut: LegExternalExpense,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.tx.Date = date(2025, time.November, 1)
			out, in := ix.Legs(tt.tx, tt.acc)
			if out != tt.wantOut || in != tt.wantIn {
				t.Errorf("Legs = (%v, %v), want (%v, %v)", out, in, tt.wantOut, tt.wantIn)
			}
		})
	}
}

func TestNameSet(t *testing.T) {
	s := NewNameSet("Cash", "  DSK USD ")
	if !s.Contains("cash") || !s.Contains("dsk usd") {
		t.Error("NameSet must match case-insensitively and trimmed")
	}
	if s.Contains("DSK") {
		t.Error("NameSet matched a name it does not hold")
	}
	if NewNameSet().Contains("anything") {
		t.Error("empty set contains nothing")
	}
}
