package ledger

import (
	"math"
	"testing"
	"time"

	"ekspence/internal/core"
)

func TestMonthlyFlow(t *testing.T) {
	txns := sampleTransactions()
	accounts := sampleAccounts()
	ix := NewAccountIndex(accounts)
	nov := core.Month{Year: 2025, Month: time.November}

	flow := MonthlyFlow(txns, ix, nil, nov)
	if flow.Income != 2000 {
		t.Errorf("Income = %v, want 2000", flow.Income)
	}
	// Transfers between registered accounts stay out of the expense total.
	if flow.Expense != 150 {
		t.Errorf("Expense = %v, want 150", flow.Expense)
	}

	excluded := MonthlyFlow(txns, ix, NewNameSet("DSK"), nov)
	if excluded.Income != 0 || excluded.Expense != 0 {
		t.Errorf("excluding DSK should zero the flow, got %+v", excluded)
	}
}

// End-to-end check of the headline numbers for a single-account month.
func TestSingleAccountScenario(t *testing.T) {
	accounts := []core.Account{{Name: "DSK", Type: core.AccountFiat, Currency: "BGN"}}
	txns := []core.Transaction{
		{ID: "a", Date: date(2025, time.November, 5), FromAccount: "Ext", ToAccount: "DSK", Category: "Salary", Amount: 1000},
		{ID: "b", Date: date(2025, time.November, 9), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 200},
	}
	nov := core.Month{Year: 2025, Month: time.November}
	cats := core.DefaultCategories()

	if got := Balance(txns, "DSK"); got != 800 {
		t.Errorf("balance = %v, want 800", got)
	}

	flow := MonthlyFlow(txns, NewAccountIndex(accounts), nil, nov)
	if flow.Income != 1000 || flow.Expense != 200 {
		t.Errorf("flow = %+v, want income 1000 expense 200", flow)
	}

	health := HealthSummary(FilterPeriod(txns, ForMonth(nov)), cats, nil, ForMonth(nov), date(2025, time.December, 15).Time)
	if math.Abs(health.SavingsRate-80) > 1e-9 {
		t.Errorf("savings rate = %v, want 80", health.SavingsRate)
	}
}

// A movement from an account to itself shows up on both sides of that
// account's activity and leaves its net and balance untouched.
func TestAccountBreakdownSelfTransfer(t *testing.T) {
	accounts := []core.Account{{Name: "DSK", Type: core.AccountFiat, Currency: "BGN"}}
	txns := []core.Transaction{
		{ID: "a", Date: date(2025, time.November, 3), FromAccount: "DSK", ToAccount: "DSK", Category: "Transfer", Amount: 100},
	}
	nov := core.Month{Year: 2025, Month: time.November}

	breakdown := AccountBreakdown(txns, accounts, nov)
	if len(breakdown) != 1 {
		t.Fatalf("got %d activities, want 1", len(breakdown))
	}
	act := breakdown[0]
	if act.TransfersOut != 100 || act.TransfersIn != 100 {
		t.Errorf("transfers out/in = %v/%v, want 100/100", act.TransfersOut, act.TransfersIn)
	}
	if act.Net != 0 {
		t.Errorf("net = %v, want 0", act.Net)
	}
	if act.Income != 0 || act.Expense != 0 {
		t.Errorf("income/expense = %v/%v, want 0/0", act.Income, act.Expense)
	}
	if act.Balance != 0 {
		t.Errorf("balance = %v, want 0", act.Balance)
	}
}

func TestHealthSummaryGuards(t *testing.T) {
	cats := core.DefaultCategories()
	nov := core.Month{Year: 2025, Month: time.November}

	// No income: savings rate must be 0, not NaN or -Inf.
	h := HealthSummary([]core.Transaction{
		{Date: date(2025, time.November, 3), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 50},
	}, cats, nil, ForMonth(nov), date(2025, time.December, 1).Time)
	if h.SavingsRate != 0 {
		t.Errorf("SavingsRate with zero income = %v, want 0", h.SavingsRate)
	}
	if math.IsNaN(h.DailyBurn) || math.IsInf(h.DailyBurn, 0) {
		t.Errorf("DailyBurn = %v", h.DailyBurn)
	}
}

func TestHealthSummaryBurnDenominator(t *testing.T) {
	cats := core.DefaultCategories()
	txns := []core.Transaction{
		{Date: date(2025, time.November, 1), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 300},
	}
	nov := core.Month{Year: 2025, Month: time.November}

	tests := []struct {
		name string
		p    Period
		now  time.Time
		want float64
	}{
		{"running month uses days elapsed", ForMonth(nov), date(2025, time.November, 10).Time, 30},
		{"closed month uses full day count", ForMonth(nov), date(2025, time.December, 20).Time, 10},
		{"all time uses 365", AllTime(), date(2025, time.December, 20).Time, 300.0 / 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HealthSummary(txns, cats, nil, tt.p, tt.now)
			if math.Abs(h.DailyBurn-tt.want) > 1e-9 {
				t.Errorf("DailyBurn = %v, want %v", h.DailyBurn, tt.want)
			}
		})
	}
}

func TestCategoryBreakdown(t *testing.T) {
	cats := core.DefaultCategories()
	txns := []core.Transaction{
		{Date: date(2025, time.November, 3), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 300},
		{Date: date(2025, time.November, 5), FromAccount: "DSK", ToAccount: "ePay", Category: "Bills", Amount: 100},
		{Date: date(2025, time.November, 6), FromAccount: "Employer", ToAccount: "DSK", Category: "Salary", Amount: 2000},
		{Date: date(2025, time.November, 8), FromAccount: "DSK", ToAccount: "Cash", Category: "Transfer", Amount: 50},
	}

	b := CategoryBreakdown(txns, cats, nil)
	if b.Total != 400 {
		t.Fatalf("Total = %v, want 400", b.Total)
	}
	if len(b.Shares) != 2 || b.Shares[0].Category != "Food" {
		t.Fatalf("Shares = %+v", b.Shares)
	}

	var pct float64
	for _, s := range b.Shares {
		pct += s.Percentage
	}
	if math.Abs(pct-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", pct)
	}
}

func TestCategoryBreakdownEmptyPeriod(t *testing.T) {
	b := CategoryBreakdown(nil, core.DefaultCategories(), nil)
	if b.Total != 0 {
		t.Fatalf("Total = %v", b.Total)
	}
	for _, s := range b.Shares {
		if s.Percentage != 0 || math.IsNaN(s.Percentage) {
			t.Errorf("Percentage = %v, want 0", s.Percentage)
		}
	}
}

func TestCategoryAverages(t *testing.T) {
	cats := core.DefaultCategories()
	dec := core.Month{Year: 2025, Month: time.December}
	txns := []core.Transaction{
		// Two earlier months of Food history: 100 and 200.
		{Date: date(2025, time.October, 10), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 100},
		{Date: date(2025, time.November, 10), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 200},
		// Selected month spends 450 on Food and must not feed the baseline.
		{Date: date(2025, time.December, 10), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 450},
		// Category with no history averages against 0.
		{Date: date(2025, time.December, 12), FromAccount: "DSK", ToAccount: "Jysk", Category: "Household", Amount: 80},
	}

	comparisons := CategoryAverages(txns, cats, nil, dec)
	if len(comparisons) != 2 {
		t.Fatalf("got %d comparisons, want 2", len(comparisons))
	}

	food := comparisons[0]
	if food.Category != "Food" || food.Current != 450 || math.Abs(food.Average-150) > 1e-9 {
		t.Errorf("Food = %+v, want current 450 average 150", food)
	}
	if math.Abs(food.Diff-300) > 1e-9 {
		t.Errorf("Food diff = %v, want 300", food.Diff)
	}

	household := comparisons[1]
	if household.Average != 0 || household.Diff != 80 {
		t.Errorf("Household = %+v, want average 0 diff 80", household)
	}
}

func TestMonthlySpendTrend(t *testing.T) {
	cats := core.DefaultCategories()
	var txns []core.Transaction
	// Nine months of spending, Jan..Sep 2025, 100 each.
	for m := time.January; m <= time.September; m++ {
		txns = append(txns, core.Transaction{
			Date: date(2025, m, 15), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 100,
		})
	}

	all := MonthlySpendTrend(txns, cats, nil, nil, AllTime())
	if len(all) != 9 {
		t.Fatalf("all-time trend has %d months, want 9", len(all))
	}

	// Month mode cuts at the selected month and keeps the last 6.
	jun := core.Month{Year: 2025, Month: time.June}
	got := MonthlySpendTrend(txns, cats, nil, nil, ForMonth(jun))
	if len(got) != 6 {
		t.Fatalf("trend has %d months, want 6", len(got))
	}
	if got[0].Month != (core.Month{Year: 2025, Month: time.January}) || got[5].Month != jun {
		t.Errorf("trend range = %s..%s", got[0].Month.Label(), got[5].Month.Label())
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Month.SortKey() >= got[i].Month.SortKey() {
			t.Fatalf("trend not chronological at %d", i)
		}
	}
}

func TestMonthlySpendTrendAccountFilter(t *testing.T) {
	cats := core.DefaultCategories()
	txns := []core.Transaction{
		{Date: date(2025, time.November, 1), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 100},
		{Date: date(2025, time.November, 2), FromAccount: "Revolut", ToAccount: "Shop", Category: "Food", Amount: 40},
	}

	trend := MonthlySpendTrend(txns, cats, nil, []string{"Revolut"}, AllTime())
	if len(trend) != 1 || trend[0].Amount != 40 {
		t.Errorf("filtered trend = %+v, want single month of 40", trend)
	}
}

func TestTopExpenses(t *testing.T) {
	cats := core.DefaultCategories()
	txns := []core.Transaction{
		{ID: "a", Date: date(2025, time.November, 1), FromAccount: "DSK", ToAccount: "Jysk", Category: "Household", Amount: 152},
		{ID: "b", Date: date(2025, time.November, 2), FromAccount: "DSK", ToAccount: "Shop", Category: "Food", Amount: 21.59},
		{ID: "c", Date: date(2025, time.November, 3), FromAccount: "Employer", ToAccount: "DSK", Category: "Salary", Amount: 2083.14},
		{ID: "d", Date: date(2025, time.November, 4), FromAccount: "DSK", ToAccount: "Cash", Category: "Transfer", Amount: 500},
		{ID: "e", Date: date(2025, time.November, 5), FromAccount: "DSK", ToAccount: "Lev Ins", Category: "Car", Amount: 114.04},
	}

	top := TopExpenses(txns, cats, 5)
	if len(top) != 3 {
		t.Fatalf("got %d expenses, want 3 (income and transfer excluded)", len(top))
	}
	if top[0].ID != "a" || top[1].ID != "e" || top[2].ID != "b" {
		t.Errorf("order = %s %s %s", top[0].ID, top[1].ID, top[2].ID)
	}

	if got := TopExpenses(txns, cats, 2); len(got) != 2 {
		t.Errorf("cap at n: got %d", len(got))
	}
}

func TestAvailableMonthsNewestFirst(t *testing.T) {
	txns := []core.Transaction{
		{Date: date(2025, time.February, 1), FromAccount: "a", ToAccount: "b", Amount: 1},
		{Date: date(2026, time.January, 1), FromAccount: "a", ToAccount: "b", Amount: 1},
		{Date: date(2025, time.December, 1), FromAccount: "a", ToAccount: "b", Amount: 1},
		{Date: date(2025, time.December, 9), FromAccount: "a", ToAccount: "b", Amount: 1},
	}
	months := AvailableMonths(txns)
	want := []string{"Jan-2026", "Dec-2025", "Feb-2025"}
	if len(months) != len(want) {
		t.Fatalf("got %d months, want %d", len(months), len(want))
	}
	for i, m := range months {
		if m.Label() != want[i] {
			t.Errorf("months[%d] = %s, want %s", i, m.Label(), want[i])
		}
	}
}

func TestSpendingLimit(t *testing.T) {
	flow := Flow{Income: 2000}
	if got := SpendingLimit(core.Settings{}, flow); math.Abs(got-1400) > 1e-9 {
		t.Errorf("auto limit = %v, want 1400", got)
	}
	if got := SpendingLimit(core.Settings{SpendingLimit: 900}, flow); got != 900 {
		t.Errorf("override = %v, want 900", got)
	}
}
