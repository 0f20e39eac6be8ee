package ledger

import (
	"testing"
	"time"

	"ekspence/internal/core"
)

func TestBalanceSeriesDailyGranularity(t *testing.T) {
	accounts := []core.Account{{Name: "DSK", Type: core.AccountFiat, Currency: "BGN"}}
	txns := []core.Transaction{
		{Date: date(2025, time.November, 1), FromAccount: "Ext", ToAccount: "DSK", Category: "Income", Amount: 100},
		{Date: date(2025, time.November, 10), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 30},
	}
	now := date(2025, time.November, 10).Time

	points := BalanceSeries(txns, accounts, nil, now)

	// A 10-day span must bucket daily: one point per day, not months or years.
	if len(points) != 10 {
		t.Fatalf("got %d points, want 10", len(points))
	}
	if points[0].Balance != 100 {
		t.Errorf("first bucket balance = %v, want 100", points[0].Balance)
	}
	if last := points[len(points)-1].Balance; last != 70 {
		t.Errorf("last bucket balance = %v, want 70", last)
	}
}

func TestBalanceSeriesMonthlyGranularity(t *testing.T) {
	accounts := []core.Account{{Name: "DSK", Type: core.AccountFiat, Currency: "BGN"}}
	txns := []core.Transaction{
		{Date: date(2025, time.January, 15), FromAccount: "Ext", ToAccount: "DSK", Category: "Income", Amount: 500},
		{Date: date(2025, time.June, 1), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 200},
	}
	now := date(2025, time.December, 31).Time

	points := BalanceSeries(txns, accounts, nil, now)
	if len(points) != 12 {
		t.Fatalf("got %d points, want 12 monthly buckets", len(points))
	}
	if points[0].Label != "Jan-2025" {
		t.Errorf("first label = %q", points[0].Label)
	}
	if points[4].Balance != 500 || points[5].Balance != 300 {
		t.Errorf("May/Jun balances = %v/%v, want 500/300", points[4].Balance, points[5].Balance)
	}
}

func TestBalanceSeriesAccountFilter(t *testing.T) {
	accounts := sampleAccounts()
	txns := sampleTransactions()
	now := date(2025, time.December, 31).Time

	points := BalanceSeries(txns, accounts, []string{"DSK Savings"}, now)
	if len(points) == 0 {
		t.Fatal("empty series")
	}
	if last := points[len(points)-1].Balance; last != 500 {
		t.Errorf("filtered final balance = %v, want 500", last)
	}
}

// A corrupt far-future date must not spin the bucket loop unbounded.
func TestBalanceSeriesIterationCap(t *testing.T) {
	accounts := []core.Account{{Name: "DSK", Type: core.AccountFiat, Currency: "BGN"}}
	txns := []core.Transaction{
		{Date: date(1500, time.January, 1), FromAccount: "Ext", ToAccount: "DSK", Category: "Income", Amount: 1},
	}
	now := date(2025, time.November, 1).Time

	points := BalanceSeries(txns, accounts, nil, now)
	if len(points) > maxSeriesPoints {
		t.Fatalf("series exceeded cap: %d points", len(points))
	}
}

func TestBalanceSeriesEmpty(t *testing.T) {
	if points := BalanceSeries(nil, sampleAccounts(), nil, time.Now()); points != nil {
		t.Errorf("expected nil series, got %d points", len(points))
	}
}
