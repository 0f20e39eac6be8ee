// Package auth is the session gate in front of the API. The data model has
// no per-user partitioning: one shared token either opens the whole ledger
// or none of it.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Verifier answers whether a request is authenticated.
type Verifier interface {
	Authenticated(r *http.Request) bool
}

// TokenVerifier checks the Authorization bearer token against a single
// configured secret. An empty secret disables the gate, matching a local
// single-user deployment.
type TokenVerifier struct {
	token string
}

func NewTokenVerifier(token string) *TokenVerifier {
	return &TokenVerifier{token: token}
}

func (v *TokenVerifier) Authenticated(r *http.Request) bool {
	if v.token == "" {
		return true
	}
	header := r.Header.Get("Authorization")
	presented, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(v.token)) == 1
}
