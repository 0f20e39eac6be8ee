package http

import (
	"log/slog"
	"net/http"

	"ekspence/internal/core"
	"ekspence/internal/ledger"
)

type transactionRequest struct {
	Date        core.Date `json:"date"`
	Description string    `json:"description"`
	FromAccount string    `json:"fromAccount"`
	ToAccount   string    `json:"toAccount"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
}

func (req transactionRequest) toTransaction() core.Transaction {
	return core.Transaction{
		Date:        req.Date,
		Description: sanitizeInput(req.Description),
		FromAccount: sanitizeInput(req.FromAccount),
		ToAccount:   sanitizeInput(req.ToAccount),
		Category:    sanitizeInput(req.Category),
		Amount:      req.Amount,
	}
}

// handleListTransactions returns the ledger, optionally narrowed to a period
// and an account filter.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	p, err := parsePeriod(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := s.app.Snapshot()
	txns := snap.Transactions
	if !p.All {
		txns = ledger.FilterPeriod(txns, p)
	}
	if accounts := parseNameList(r, "accounts"); len(accounts) > 0 {
		txns = ledger.FilterAccounts(txns, accounts)
	}
	if txns == nil {
		txns = []core.Transaction{}
	}

	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.app.AddTransaction(r.Context(), req.toTransaction())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	slog.InfoContext(r.Context(), "Transaction created",
		"id", created.ID, "category", created.Category, "amount", created.Amount)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx := req.toTransaction()
	tx.ID = r.PathValue("id")
	if err := s.app.UpdateTransaction(r.Context(), tx); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	// Echo the stored record so defaulted fields come back filled
	for _, stored := range s.app.Snapshot().Transactions {
		if stored.ID == tx.ID {
			tx = stored
			break
		}
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.app.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}
