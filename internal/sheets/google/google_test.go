package google

import (
	"testing"
	"time"

	"ekspence/internal/core"
)

func TestTransactionRows(t *testing.T) {
	txns := []core.Transaction{
		{
			ID:          "t1",
			Date:        core.NewDate(2025, time.November, 5),
			Description: "Salary payment",
			FromAccount: "Work",
			ToAccount:   "DSK",
			Category:    "Salary",
			Amount:      1000,
		},
		{
			ID:          "t2",
			Date:        core.NewDate(2025, time.November, 10),
			Description: "Groceries",
			FromAccount: "DSK",
			ToAccount:   "Grocery",
			Category:    "Food",
			Amount:      52.40,
		},
	}

	rows := transactionRows(txns)
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want header plus 2", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][6] != "Amount" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][1] != "2025-11-05" {
		t.Fatalf("date cell = %v, want 2025-11-05", rows[1][1])
	}
	if rows[2][6] != 52.40 {
		t.Fatalf("amount cell = %v, want 52.40", rows[2][6])
	}
}

func TestTransactionRowsEmptyLedger(t *testing.T) {
	rows := transactionRows(nil)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want header only", len(rows))
	}
}
