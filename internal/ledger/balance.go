package ledger

import (
	"time"

	"ekspence/internal/core"
)

// Balance is the lifetime running balance of one account: every inbound leg
// adds, every outbound leg subtracts, over the full transaction history.
// Name comparison is exact because balances are only asked for registered
// (canonical) names.
func Balance(txns []core.Transaction, account string) float64 {
	var balance float64
	for _, t := range txns {
		if t.ToAccount == account {
			balance += t.Amount
		}
		if t.FromAccount == account {
			balance -= t.Amount
		}
	}
	return balance
}

// BalanceAsOf is Balance restricted to transactions dated on or before asOf.
func BalanceAsOf(txns []core.Transaction, account string, asOf time.Time) float64 {
	var balance float64
	for _, t := range txns {
		if t.Date.After(asOf) {
			continue
		}
		if t.ToAccount == account {
			balance += t.Amount
		}
		if t.FromAccount == account {
			balance -= t.Amount
		}
	}
	return balance
}

// Balances computes every registered account's balance in one pass over the
// history.
func Balances(txns []core.Transaction, accounts []core.Account) map[string]float64 {
	balances := make(map[string]float64, len(accounts))
	for _, a := range accounts {
		balances[a.Name] = 0
	}
	for _, t := range txns {
		if _, ok := balances[t.ToAccount]; ok {
			balances[t.ToAccount] += t.Amount
		}
		if _, ok := balances[t.FromAccount]; ok {
			balances[t.FromAccount] -= t.Amount
		}
	}
	return balances
}

// NetWorth sums the balances of all non-excluded accounts. Transfers between
// two registered accounts cancel out of the sum, so only external flows move
// it.
func NetWorth(txns []core.Transaction, accounts []core.Account, excluded NameSet) float64 {
	balances := Balances(txns, accounts)
	var total float64
	for _, a := range accounts {
		if excluded.Contains(a.Name) {
			continue
		}
		total += balances[a.Name]
	}
	return total
}
