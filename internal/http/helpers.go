package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ekspence/internal/core"
	"ekspence/internal/ledger"
)

type contextKey string

const requestIDKey contextKey = "request_id"

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encoding failed", "error", err)
	}
}

// writeRawJSON writes an already-marshaled payload.
func writeRawJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		slog.Error("Response write failed", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps core sentinel errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrDuplicateName):
		status = http.StatusConflict
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyAccount),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrUnknownAccount),
		errors.Is(err, core.ErrInvalidCurrency):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Handler error", "error", err, "url", r.URL.Path)
		writeJSONError(w, status, "internal error")
		return
	}
	writeJSONError(w, status, err.Error())
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// parsePeriod reads the period selection from query parameters. "period=all"
// selects the whole history; otherwise "month" carries a label like
// "Nov-2025", defaulting to the current month.
func parsePeriod(r *http.Request) (ledger.Period, error) {
	if strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("period")), "all") {
		return ledger.AllTime(), nil
	}
	label := strings.TrimSpace(r.URL.Query().Get("month"))
	if label == "" {
		return ledger.ForMonth(core.MonthOf(time.Now())), nil
	}
	m, err := core.ParseMonth(label)
	if err != nil {
		return ledger.Period{}, err
	}
	return ledger.ForMonth(m), nil
}

// parseNameList reads a query parameter that may repeat or carry a
// comma-separated list, with blanks removed.
func parseNameList(r *http.Request, key string) []string {
	var names []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if name := strings.TrimSpace(part); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// excludedAccounts reads the account exclusion filter shared by the
// dashboard and analytics endpoints.
func excludedAccounts(r *http.Request) ledger.NameSet {
	return ledger.NewNameSet(parseNameList(r, "exclude")...)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
