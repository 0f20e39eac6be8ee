package memory

import (
	"context"
	"testing"
	"time"

	"ekspence/internal/core"
)

func TestReplaceKeepsOwnedCopy(t *testing.T) {
	e := New()
	txns := []core.Transaction{
		{ID: "t1", Date: core.NewDate(2025, time.November, 5), FromAccount: "Work", ToAccount: "DSK", Category: "Salary", Amount: 1000},
	}

	if err := e.ReplaceTransactions(context.Background(), txns); err != nil {
		t.Fatalf("ReplaceTransactions: %v", err)
	}

	txns[0].Amount = 0
	rows := e.Rows()
	if len(rows) != 1 || rows[0].Amount != 1000 {
		t.Fatalf("Rows() = %+v, want original amount 1000", rows)
	}
	if e.Replaces() != 1 {
		t.Fatalf("Replaces() = %d, want 1", e.Replaces())
	}
}

func TestReplaceOverwritesPrevious(t *testing.T) {
	e := New()
	ctx := context.Background()

	_ = e.ReplaceTransactions(ctx, []core.Transaction{{ID: "a"}, {ID: "b"}})
	_ = e.ReplaceTransactions(ctx, []core.Transaction{{ID: "c"}})

	rows := e.Rows()
	if len(rows) != 1 || rows[0].ID != "c" {
		t.Fatalf("Rows() = %+v, want single row c", rows)
	}
}
