package http

import (
	"log/slog"
	"net/http"
	"time"

	"ekspence/internal/core"
	"ekspence/internal/ledger"
)

type createAccountRequest struct {
	Name           string           `json:"name"`
	Type           core.AccountType `json:"type"`
	Currency       string           `json:"currency"`
	OpeningBalance float64          `json:"openingBalance"`
	OpeningDate    *core.Date       `json:"openingDate"`
}

type updateAccountRequest struct {
	Type     core.AccountType `json:"type"`
	Currency string           `json:"currency"`
}

type renameAccountRequest struct {
	NewName string `json:"newName"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Snapshot()
	if snap.Accounts == nil {
		snap.Accounts = []core.Account{}
	}
	writeJSON(w, http.StatusOK, snap.Accounts)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	acc := core.Account{
		Name:     sanitizeInput(req.Name),
		Type:     req.Type,
		Currency: sanitizeInput(req.Currency),
	}
	openingDate := core.Date{Time: time.Now().UTC().Truncate(24 * time.Hour)}
	if req.OpeningDate != nil {
		openingDate = *req.OpeningDate
	}

	if err := s.app.AddAccount(r.Context(), acc, req.OpeningBalance, openingDate); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	slog.InfoContext(r.Context(), "Account created",
		"account", acc.Name, "type", string(acc.Type), "opening_balance", req.OpeningBalance)
	writeJSON(w, http.StatusCreated, acc)
}

// handleAccountBalances returns every registered account's lifetime balance
// from transaction replay.
func (s *Server) handleAccountBalances(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Snapshot()
	writeJSON(w, http.StatusOK, ledger.Balances(snap.Transactions, snap.Accounts))
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := r.PathValue("name")
	if err := s.app.UpdateAccount(r.Context(), name, req.Type, sanitizeInput(req.Currency)); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusOK, core.Account{Name: name, Type: req.Type, Currency: req.Currency})
}

func (s *Server) handleRenameAccount(w http.ResponseWriter, r *http.Request) {
	var req renameAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	oldName := r.PathValue("name")
	newName := sanitizeInput(req.NewName)
	if err := s.app.RenameAccount(r.Context(), oldName, newName); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	slog.InfoContext(r.Context(), "Account renamed", "from", oldName, "to", newName)
	writeJSON(w, http.StatusOK, map[string]string{"name": newName})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.app.DeleteAccount(r.Context(), name); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	slog.InfoContext(r.Context(), "Account deleted", "account", name)
	w.WriteHeader(http.StatusNoContent)
}
