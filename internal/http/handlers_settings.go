package http

import (
	"net/http"

	"ekspence/internal/core"
)

func (s *Server) handleGetSpendingLimit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Settings())
}

func (s *Server) handlePutSpendingLimit(w http.ResponseWriter, r *http.Request) {
	var req core.Settings
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.app.SetSpendingLimit(r.Context(), req.SpendingLimit); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusOK, s.app.Settings())
}
