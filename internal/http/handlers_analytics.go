package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"ekspence/internal/core"
	"ekspence/internal/ledger"
)

type healthResponse struct {
	Period      string  `json:"period"`
	Income      float64 `json:"income"`
	Expense     float64 `json:"expense"`
	Net         float64 `json:"net"`
	SavingsRate float64 `json:"savingsRate"`
	DailyBurn   float64 `json:"dailyBurn"`
}

type categoryShareResponse struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type breakdownResponse struct {
	Total  float64                 `json:"total"`
	Shares []categoryShareResponse `json:"shares"`
}

type categoryComparisonResponse struct {
	Category string  `json:"category"`
	Current  float64 `json:"current"`
	Average  float64 `json:"average"`
	Diff     float64 `json:"diff"`
}

type monthAmountResponse struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type seriesPointResponse struct {
	Label   string    `json:"label"`
	Date    core.Date `json:"date"`
	Balance float64   `json:"balance"`
}

type insightsRequest struct {
	Month string `json:"month"`
}

type insightsResponse struct {
	Insights string `json:"insights"`
}

// serveAnalytics memoizes a derived analytics payload by request URI.
func (s *Server) serveAnalytics(w http.ResponseWriter, r *http.Request, build func() (any, error)) {
	key := r.URL.RequestURI()
	if payload, found := s.analyticsCache.Get(key); found {
		slog.DebugContext(r.Context(), "Analytics cache hit", "key", key)
		writeRawJSON(w, http.StatusOK, payload)
		return
	}

	resp, err := build()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.analyticsCache.Set(key, payload)
	writeRawJSON(w, http.StatusOK, payload)
}

// periodTransactions narrows the ledger to the requested period and optional
// account filter.
func periodTransactions(r *http.Request, txns []core.Transaction, p ledger.Period) []core.Transaction {
	if !p.All {
		txns = ledger.FilterPeriod(txns, p)
	}
	if accounts := parseNameList(r, "accounts"); len(accounts) > 0 {
		txns = ledger.FilterAccounts(txns, accounts)
	}
	return txns
}

func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	s.serveAnalytics(w, r, func() (any, error) {
		p, err := parsePeriod(r)
		if err != nil {
			return nil, err
		}
		snap := s.app.Snapshot()
		h := ledger.HealthSummary(periodTransactions(r, snap.Transactions, p),
			snap.Categories, excludedAccounts(r), p, time.Now())
		return healthResponse{
			Period:      p.Label(),
			Income:      h.Income,
			Expense:     h.Expense,
			Net:         h.Net,
			SavingsRate: h.SavingsRate,
			DailyBurn:   h.DailyBurn,
		}, nil
	})
}

func (s *Server) handleAnalyticsBreakdown(w http.ResponseWriter, r *http.Request) {
	s.serveAnalytics(w, r, func() (any, error) {
		p, err := parsePeriod(r)
		if err != nil {
			return nil, err
		}
		snap := s.app.Snapshot()
		b := ledger.CategoryBreakdown(periodTransactions(r, snap.Transactions, p),
			snap.Categories, excludedAccounts(r))
		resp := breakdownResponse{Total: b.Total, Shares: []categoryShareResponse{}}
		for _, sh := range b.Shares {
			resp.Shares = append(resp.Shares, categoryShareResponse{
				Category:   sh.Category,
				Amount:     sh.Amount,
				Percentage: sh.Percentage,
			})
		}
		return resp, nil
	})
}

// handleAnalyticsAverages compares the selected month against each
// category's habitual spending. Only meaningful for a single month.
func (s *Server) handleAnalyticsAverages(w http.ResponseWriter, r *http.Request) {
	s.serveAnalytics(w, r, func() (any, error) {
		p, err := parsePeriod(r)
		if err != nil {
			return nil, err
		}
		if p.All {
			return []categoryComparisonResponse{}, nil
		}
		snap := s.app.Snapshot()
		txns := snap.Transactions
		if accounts := parseNameList(r, "accounts"); len(accounts) > 0 {
			txns = ledger.FilterAccounts(txns, accounts)
		}
		resp := []categoryComparisonResponse{}
		for _, c := range ledger.CategoryAverages(txns, snap.Categories, excludedAccounts(r), p.Month) {
			resp = append(resp, categoryComparisonResponse{
				Category: c.Category,
				Current:  c.Current,
				Average:  c.Average,
				Diff:     c.Diff,
			})
		}
		return resp, nil
	})
}

func (s *Server) handleAnalyticsTrend(w http.ResponseWriter, r *http.Request) {
	s.serveAnalytics(w, r, func() (any, error) {
		p, err := parsePeriod(r)
		if err != nil {
			return nil, err
		}
		snap := s.app.Snapshot()
		trend := ledger.MonthlySpendTrend(snap.Transactions, snap.Categories,
			excludedAccounts(r), parseNameList(r, "accounts"), p)
		resp := []monthAmountResponse{}
		for _, m := range trend {
			resp = append(resp, monthAmountResponse{Month: m.Month.Label(), Amount: m.Amount})
		}
		return resp, nil
	})
}

func (s *Server) handleAnalyticsTop(w http.ResponseWriter, r *http.Request) {
	s.serveAnalytics(w, r, func() (any, error) {
		p, err := parsePeriod(r)
		if err != nil {
			return nil, err
		}
		snap := s.app.Snapshot()
		top := ledger.TopExpenses(periodTransactions(r, snap.Transactions, p), snap.Categories, 5)
		if top == nil {
			top = []core.Transaction{}
		}
		return top, nil
	})
}

func (s *Server) handleAnalyticsSeries(w http.ResponseWriter, r *http.Request) {
	s.serveAnalytics(w, r, func() (any, error) {
		snap := s.app.Snapshot()
		points := ledger.BalanceSeries(snap.Transactions, snap.Accounts,
			parseNameList(r, "accounts"), time.Now())
		resp := []seriesPointResponse{}
		for _, pt := range points {
			resp = append(resp, seriesPointResponse{Label: pt.Label, Date: pt.Date, Balance: pt.Balance})
		}
		return resp, nil
	})
}

// handleAnalyticsInsights asks the language model for a narrative read of
// the selected month. Not cached: the generator output is not deterministic.
func (s *Server) handleAnalyticsInsights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	month := core.MonthOf(time.Now())
	if req.Month != "" {
		parsed, err := core.ParseMonth(req.Month)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		month = parsed
	}

	snap := s.app.Snapshot()
	spending := make([]core.Transaction, 0)
	for _, tx := range ledger.FilterPeriod(snap.Transactions, ledger.ForMonth(month)) {
		if snap.Categories.IsIncome(tx.Category) || tx.IsTransfer() {
			continue
		}
		spending = append(spending, tx)
	}
	text := s.insights.SpendingInsights(r.Context(), spending, month.Label())
	writeJSON(w, http.StatusOK, insightsResponse{Insights: text})
}
