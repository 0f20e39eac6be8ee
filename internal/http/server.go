// Package http exposes the ledger over a JSON API.
package http

import (
	"container/list"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"ekspence/internal/auth"
	"ekspence/internal/insights"
	"ekspence/internal/state"
)

// lruCache is a TTL cache with size-based eviction, used to memoize derived
// dashboard and analytics payloads between mutations.
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

func newLRUCache[T any](maxSize int, ttl time.Duration) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *lruCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

func (c *lruCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Purge drops every entry. Any mutation of the ledger invalidates all
// derived payloads at once, so per-key deletion buys nothing here.
func (c *lruCache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

// Size reports the number of cached entries, expired or not.
func (c *lruCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *lruCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

// CleanExpired removes all expired entries and reports how many were dropped.
func (c *lruCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var toRemove []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		item := elem.Value.(*cacheItem[T])
		if now.After(item.expiresAt) {
			toRemove = append(toRemove, elem)
		}
	}
	for _, elem := range toRemove {
		c.removeElement(elem)
	}
	return len(toRemove)
}

type Server struct {
	http.Server

	app      *state.App
	insights *insights.Generator
	verifier auth.Verifier

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// Derived read payloads, keyed by request URI, purged on every mutation.
	dashboardCache *lruCache[[]byte]
	analyticsCache *lruCache[[]byte]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
// The insights generator may be nil when no API key is configured.
func NewServer(addr string, app *state.App, gen *insights.Generator, verifier auth.Verifier, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		app:              app,
		insights:         gen,
		verifier:         verifier,
		rateLimiter:      newRateLimiter(),
		metrics:          &securityMetrics{},
		dashboardCache:   newLRUCache[[]byte](100, cacheTTL),
		analyticsCache:   newLRUCache[[]byte](200, cacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/transactions", s.protect(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.protect(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.protect(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.protect(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/accounts", s.protect(s.handleListAccounts))
	mux.HandleFunc("POST /api/accounts", s.protect(s.handleCreateAccount))
	mux.HandleFunc("GET /api/accounts/balances", s.protect(s.handleAccountBalances))
	mux.HandleFunc("PUT /api/accounts/{name}", s.protect(s.handleUpdateAccount))
	mux.HandleFunc("POST /api/accounts/{name}/rename", s.protect(s.handleRenameAccount))
	mux.HandleFunc("DELETE /api/accounts/{name}", s.protect(s.handleDeleteAccount))

	mux.HandleFunc("GET /api/categories", s.protect(s.handleListCategories))
	mux.HandleFunc("POST /api/categories/{list}", s.protect(s.handleAddCategory))
	mux.HandleFunc("POST /api/categories/{list}/rename", s.protect(s.handleRenameCategory))
	mux.HandleFunc("DELETE /api/categories/{list}/{name}", s.protect(s.handleRemoveCategory))

	mux.HandleFunc("GET /api/dashboard", s.protect(s.handleDashboard))
	mux.HandleFunc("GET /api/months", s.protect(s.handleMonths))

	mux.HandleFunc("GET /api/analytics/summary", s.protect(s.handleAnalyticsSummary))
	mux.HandleFunc("GET /api/analytics/breakdown", s.protect(s.handleAnalyticsBreakdown))
	mux.HandleFunc("GET /api/analytics/averages", s.protect(s.handleAnalyticsAverages))
	mux.HandleFunc("GET /api/analytics/trend", s.protect(s.handleAnalyticsTrend))
	mux.HandleFunc("GET /api/analytics/top", s.protect(s.handleAnalyticsTop))
	mux.HandleFunc("GET /api/analytics/series", s.protect(s.handleAnalyticsSeries))
	mux.HandleFunc("POST /api/analytics/insights", s.protect(s.handleAnalyticsInsights))

	mux.HandleFunc("GET /api/settings/spending-limit", s.protect(s.handleGetSpendingLimit))
	mux.HandleFunc("PUT /api/settings/spending-limit", s.protect(s.handlePutSpendingLimit))

	return s
}

// startCacheCleanup runs periodic cleanup for both payload caches.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			dashCleaned := s.dashboardCache.CleanExpired()
			analyticsCleaned := s.analyticsCache.CleanExpired()
			if dashCleaned > 0 || analyticsCleaned > 0 {
				slog.Debug("Cache cleanup completed",
					"dashboard_entries_removed", dashCleaned,
					"analytics_entries_removed", analyticsCleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// invalidateDerived drops every memoized read payload. Called after each
// successful mutation.
func (s *Server) invalidateDerived() {
	s.dashboardCache.Purge()
	s.analyticsCache.Purge()
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// protect wraps an API handler with request logging, security headers, rate
// limiting on mutating methods, and bearer-token authentication.
func (s *Server) protect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		if detectSuspiciousRequest(r, s.metrics) {
			slog.WarnContext(ctx, "Suspicious request pattern",
				"request_id", requestID, "client_ip", clientIP, "url", r.URL.String())
		}

		if mutating(r.Method) && !s.rateLimiter.allow(clientIP, s.metrics) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if s.verifier != nil && !s.verifier.Authenticated(r) {
			slog.WarnContext(ctx, "Unauthorized request",
				"request_id", requestID, "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("WWW-Authenticate", `Bearer realm="ekspence"`)
			writeJSONError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
