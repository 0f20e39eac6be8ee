package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ekspence/internal/core"
	"ekspence/internal/ledger"
)

type accountActivityResponse struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Currency     string  `json:"currency"`
	Balance      float64 `json:"balance"`
	Income       float64 `json:"income"`
	Expense      float64 `json:"expense"`
	TransfersOut float64 `json:"transfersOut"`
	TransfersIn  float64 `json:"transfersIn"`
	TotalOutflow float64 `json:"totalOutflow"`
	Net          float64 `json:"net"`
}

type dashboardResponse struct {
	Month           string                    `json:"month"`
	NetWorth        float64                   `json:"netWorth"`
	Income          float64                   `json:"income"`
	Expense         float64                   `json:"expense"`
	SpendingLimit   float64                   `json:"spendingLimit"`
	Balances        map[string]float64        `json:"balances"`
	Accounts        []accountActivityResponse `json:"accounts"`
	AvailableMonths []string                  `json:"availableMonths"`
}

// handleDashboard assembles the month overview: net worth, external flow,
// per-account activity and the effective spending limit. Excluded accounts
// come from the exclude query parameter.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	key := r.URL.RequestURI()
	if payload, found := s.dashboardCache.Get(key); found {
		slog.DebugContext(r.Context(), "Dashboard cache hit", "key", key)
		writeRawJSON(w, http.StatusOK, payload)
		return
	}

	p, err := parsePeriod(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.All {
		writeJSONError(w, http.StatusBadRequest, "dashboard requires a month, not period=all")
		return
	}
	excluded := excludedAccounts(r)

	snap := s.app.Snapshot()
	ix := ledger.NewAccountIndex(snap.Accounts)
	flow := ledger.MonthlyFlow(snap.Transactions, ix, excluded, p.Month)

	resp := dashboardResponse{
		Month:         p.Month.Label(),
		NetWorth:      ledger.NetWorth(snap.Transactions, snap.Accounts, excluded),
		Income:        flow.Income,
		Expense:       flow.Expense,
		SpendingLimit: ledger.SpendingLimit(snap.Settings, flow),
		Balances:      ledger.Balances(snap.Transactions, snap.Accounts),
		Accounts:      []accountActivityResponse{},
	}
	for _, a := range ledger.AccountBreakdown(snap.Transactions, snap.Accounts, p.Month) {
		resp.Accounts = append(resp.Accounts, accountActivityResponse{
			Name:         a.Account.Name,
			Type:         string(a.Account.Type),
			Currency:     a.Account.Currency,
			Balance:      a.Balance,
			Income:       a.Income,
			Expense:      a.Expense,
			TransfersOut: a.TransfersOut,
			TransfersIn:  a.TransfersIn,
			TotalOutflow: a.TotalOutflow,
			Net:          a.Net,
		})
	}
	resp.AvailableMonths = monthLabels(ledger.AvailableMonths(snap.Transactions))

	payload, err := json.Marshal(resp)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.dashboardCache.Set(key, payload)
	writeRawJSON(w, http.StatusOK, payload)
}

// handleMonths lists every month with recorded activity, newest first.
func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Snapshot()
	writeJSON(w, http.StatusOK, monthLabels(ledger.AvailableMonths(snap.Transactions)))
}

func monthLabels(months []core.Month) []string {
	labels := make([]string, 0, len(months))
	for _, m := range months {
		labels = append(labels, m.Label())
	}
	return labels
}
