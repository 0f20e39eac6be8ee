package http

import (
	"net/http"
	"time"
)

// handleHealth performs a basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleReady performs a readiness check with dependency details.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.app == nil {
		checks["state"] = "failed: state not wired"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		snap := s.app.Snapshot()
		checks["state"] = map[string]any{
			"status":       "ok",
			"transactions": len(snap.Transactions),
			"accounts":     len(snap.Accounts),
		}
	}

	checks["cache"] = map[string]any{
		"dashboard_entries": s.dashboardCache.Size(),
		"analytics_entries": s.analyticsCache.Size(),
		"status":            "ok",
	}

	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.activeClients(),
		"status":         "ok",
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}
