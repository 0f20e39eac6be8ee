// Package ledger derives financial state from the raw transaction and
// account collections. Everything here is a pure function over an immutable
// snapshot; callers recompute on demand instead of maintaining indexes.
package ledger

import (
	"strings"

	"ekspence/internal/core"
)

// Leg is the role one account plays in a single transaction.
type Leg int

const (
	LegNone Leg = iota
	LegExternalIncome
	LegExternalExpense
	LegTransferIn
	LegTransferOut
)

func canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AccountIndex answers "is this name a registered account" with the matching
// rule used everywhere: case-insensitive, whitespace-trimmed. Built once per
// computation from the registry snapshot.
type AccountIndex struct {
	names map[string]struct{}
}

func NewAccountIndex(accounts []core.Account) *AccountIndex {
	names := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		names[canonical(a.Name)] = struct{}{}
	}
	return &AccountIndex{names: names}
}

// Internal reports whether name matches a registered account. Unknown or
// blank names are external counterparties, including names left dangling by
// a partially applied rename.
func (ix *AccountIndex) Internal(name string) bool {
	_, ok := ix.names[canonical(name)]
	return ok
}

// Legs classifies the outbound and inbound side of tx from the point of view
// of account, each on its own. Both legs internal means transfer; an external
// counterparty on the other side means income or expense. A self-transfer
// (both sides the same account) yields a transfer out and a transfer in of
// the same amount, so the two sides cancel instead of collapsing into one.
// LegNone on both sides when the account is not involved.
func (ix *AccountIndex) Legs(tx core.Transaction, account string) (out, in Leg) {
	out, in = LegNone, LegNone
	if tx.FromAccount == account {
		if ix.Internal(tx.ToAccount) {
			out = LegTransferOut
		} else {
			out = LegExternalExpense
		}
	}
	if tx.ToAccount == account {
		if ix.Internal(tx.FromAccount) {
			in = LegTransferIn
		} else {
			in = LegExternalIncome
		}
	}
	return out, in
}

// NameSet is a case-insensitive set of account names, used for the
// dashboard's exclusion filter.
type NameSet map[string]struct{}

func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		s[canonical(n)] = struct{}{}
	}
	return s
}

func (s NameSet) Contains(name string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[canonical(name)]
	return ok
}
