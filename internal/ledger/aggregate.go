package ledger

import (
	"sort"
	"time"

	"ekspence/internal/core"
)

// Period selects either one calendar month or the whole history.
type Period struct {
	Month core.Month
	All   bool
}

func ForMonth(m core.Month) Period { return Period{Month: m} }
func AllTime() Period              { return Period{All: true} }

func (p Period) Contains(d core.Date) bool {
	return p.All || p.Month.Contains(d)
}

func (p Period) Label() string {
	if p.All {
		return "All Time"
	}
	return p.Month.Label()
}

// FilterPeriod returns the transactions dated inside the period.
func FilterPeriod(txns []core.Transaction, p Period) []core.Transaction {
	if p.All {
		return txns
	}
	var out []core.Transaction
	for _, t := range txns {
		if p.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// FilterAccounts keeps transactions touching at least one of the named
// accounts on either leg. An empty filter keeps everything.
func FilterAccounts(txns []core.Transaction, names []string) []core.Transaction {
	if len(names) == 0 {
		return txns
	}
	set := NewNameSet(names...)
	var out []core.Transaction
	for _, t := range txns {
		if set.Contains(t.FromAccount) || set.Contains(t.ToAccount) {
			out = append(out, t)
		}
	}
	return out
}

// Flow is the dashboard's monthly external income and expense. Classification
// is by account topology: a leg counts only when it crosses the boundary
// between an active registered account and an external counterparty.
type Flow struct {
	Income  float64
	Expense float64
}

func MonthlyFlow(txns []core.Transaction, ix *AccountIndex, excluded NameSet, month core.Month) Flow {
	var f Flow
	for _, t := range txns {
		if !month.Contains(t.Date) {
			continue
		}
		if ix.Internal(t.FromAccount) && !excluded.Contains(t.FromAccount) && !ix.Internal(t.ToAccount) {
			f.Expense += t.Amount
		}
		if ix.Internal(t.ToAccount) && !excluded.Contains(t.ToAccount) && !ix.Internal(t.FromAccount) {
			f.Income += t.Amount
		}
	}
	return f
}

// AccountActivity is one account's month broken down by leg classification.
type AccountActivity struct {
	Account      core.Account
	Balance      float64
	Income       float64
	Expense      float64
	TransfersOut float64
	TransfersIn  float64
	TotalOutflow float64
	Net          float64
}

// AccountBreakdown computes per-account activity for the month plus each
// account's lifetime balance.
func AccountBreakdown(txns []core.Transaction, accounts []core.Account, month core.Month) []AccountActivity {
	ix := NewAccountIndex(accounts)
	balances := Balances(txns, accounts)

	out := make([]AccountActivity, 0, len(accounts))
	for _, acc := range accounts {
		activity := AccountActivity{Account: acc, Balance: balances[acc.Name]}
		for _, t := range txns {
			if !month.Contains(t.Date) {
				continue
			}
			out, in := ix.Legs(t, acc.Name)
			switch out {
			case LegExternalExpense:
				activity.Expense += t.Amount
			case LegTransferOut:
				activity.TransfersOut += t.Amount
			}
			switch in {
			case LegExternalIncome:
				activity.Income += t.Amount
			case LegTransferIn:
				activity.TransfersIn += t.Amount
			}
		}
		activity.TotalOutflow = activity.Expense + activity.TransfersOut
		activity.Net = activity.Income - activity.Expense - activity.TransfersOut + activity.TransfersIn
		out = append(out, activity)
	}
	return out
}

// Health is the analytics summary for a period. Unlike Flow it classifies by
// category: income when the category is on the income list, expense for
// everything else except transfers.
type Health struct {
	Income      float64
	Expense     float64
	Net         float64
	SavingsRate float64
	DailyBurn   float64
}

// HealthSummary expects txns already narrowed to the period (and any account
// filter). now anchors the burn-rate denominator for the running month.
func HealthSummary(txns []core.Transaction, cats core.Categories, excluded NameSet, p Period, now time.Time) Health {
	var h Health
	for _, t := range txns {
		if excluded.Contains(t.FromAccount) {
			continue
		}
		switch {
		case cats.IsIncome(t.Category):
			h.Income += t.Amount
		case !t.IsTransfer():
			h.Expense += t.Amount
		}
	}
	h.Net = h.Income - h.Expense
	if h.Income > 0 {
		h.SavingsRate = h.Net / h.Income * 100
	}

	days := 365
	if !p.All {
		if p.Month == core.MonthOf(now) {
			days = now.Day()
		} else {
			days = p.Month.Days()
		}
	}
	if days < 1 {
		days = 1
	}
	h.DailyBurn = h.Expense / float64(days)
	return h
}

type CategoryShare struct {
	Category   string
	Amount     float64
	Percentage float64
}

type Breakdown struct {
	Shares []CategoryShare
	Total  float64
}

// CategoryBreakdown totals the period's spending per category, skipping
// income categories and transfers, sorted by amount descending. Percentages
// are 0 rather than NaN when the period has no spending.
func CategoryBreakdown(txns []core.Transaction, cats core.Categories, excluded NameSet) Breakdown {
	totals := make(map[string]float64)
	var total float64
	for _, t := range txns {
		if cats.IsIncome(t.Category) || t.IsTransfer() || excluded.Contains(t.FromAccount) {
			continue
		}
		totals[t.Category] += t.Amount
		total += t.Amount
	}

	shares := make([]CategoryShare, 0, len(totals))
	for cat, amount := range totals {
		share := CategoryShare{Category: cat, Amount: amount}
		if total > 0 {
			share.Percentage = amount / total * 100
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})
	return Breakdown{Shares: shares, Total: total}
}

// CategoryComparison holds one category's current-month spending against its
// habit baseline.
type CategoryComparison struct {
	Category string
	Current  float64
	Average  float64
	Diff     float64
}

// CategoryAverages compares the selected month's per-category spending with
// the average over every other month that has spending in that category. The
// selected month never feeds its own baseline.
func CategoryAverages(all []core.Transaction, cats core.Categories, excluded NameSet, month core.Month) []CategoryComparison {
	spendable := func(t core.Transaction) bool {
		return !cats.IsIncome(t.Category) && !t.IsTransfer() && !excluded.Contains(t.FromAccount)
	}

	// Per-category totals keyed by month, selected month kept apart.
	history := make(map[string]map[core.Month]float64)
	current := make(map[string]float64)
	for _, t := range all {
		if !spendable(t) {
			continue
		}
		m := core.MonthOf(t.Date.Time)
		if m == month {
			current[t.Category] += t.Amount
			continue
		}
		if history[t.Category] == nil {
			history[t.Category] = make(map[core.Month]float64)
		}
		history[t.Category][m] += t.Amount
	}

	out := make([]CategoryComparison, 0, len(current))
	for cat, amount := range current {
		var avg float64
		if months := history[cat]; len(months) > 0 {
			var sum float64
			for _, v := range months {
				sum += v
			}
			avg = sum / float64(len(months))
		}
		out = append(out, CategoryComparison{
			Category: cat,
			Current:  amount,
			Average:  avg,
			Diff:     amount - avg,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Current != out[j].Current {
			return out[i].Current > out[j].Current
		}
		return out[i].Category < out[j].Category
	})
	return out
}

type MonthAmount struct {
	Month  core.Month
	Amount float64
}

// MonthlySpendTrend is the historical spending-per-month series behind the
// trend chart. With an account filter it keeps transactions touching the
// selected accounts; without one it applies the exclusion set. In month mode
// the series is cut at the selected month and shows the last 6 entries, in
// all-time mode the last 12.
func MonthlySpendTrend(all []core.Transaction, cats core.Categories, excluded NameSet, accountFilter []string, p Period) []MonthAmount {
	filterSet := NewNameSet(accountFilter...)

	totals := make(map[core.Month]float64)
	for _, t := range all {
		if cats.IsIncome(t.Category) || t.IsTransfer() {
			continue
		}
		if len(filterSet) > 0 {
			if !filterSet.Contains(t.FromAccount) && !filterSet.Contains(t.ToAccount) {
				continue
			}
		} else if excluded.Contains(t.FromAccount) {
			continue
		}
		totals[core.MonthOf(t.Date.Time)] += t.Amount
	}

	months := make([]core.Month, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].SortKey() < months[j].SortKey()
	})

	limit := 12
	if !p.All {
		limit = 6
		for i, m := range months {
			if m == p.Month {
				months = months[:i+1]
				break
			}
		}
	}
	if len(months) > limit {
		months = months[len(months)-limit:]
	}

	out := make([]MonthAmount, 0, len(months))
	for _, m := range months {
		out = append(out, MonthAmount{Month: m, Amount: totals[m]})
	}
	return out
}

// TopExpenses picks the n largest non-income, non-transfer transactions from
// the already filtered period.
func TopExpenses(txns []core.Transaction, cats core.Categories, n int) []core.Transaction {
	var out []core.Transaction
	for _, t := range txns {
		if cats.IsIncome(t.Category) || t.IsTransfer() {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// AvailableMonths lists every month that has at least one transaction,
// newest first.
func AvailableMonths(txns []core.Transaction) []core.Month {
	seen := make(map[core.Month]struct{})
	for _, t := range txns {
		seen[core.MonthOf(t.Date.Time)] = struct{}{}
	}
	months := make([]core.Month, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].SortKey() > months[j].SortKey()
	})
	return months
}

// SpendingLimit resolves the monthly spending limit: the explicit override
// when set, otherwise 70% of the month's external income.
func SpendingLimit(settings core.Settings, flow Flow) float64 {
	if settings.SpendingLimit > 0 {
		return settings.SpendingLimit
	}
	return flow.Income * 0.7
}
