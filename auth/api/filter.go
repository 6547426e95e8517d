// Package api contains the access-control filters applied in front of
// per-user resource routes: first the token gate, then the ownership
// gate. Both are pure functions of the request and the realm's token
// service, safe for any level of concurrency.
package api

import (
	"context"
	"net/http"
	"regexp"

	"github.com/julienschmidt/httprouter"
	"github.com/reamslin/messagely/auth"
	"github.com/reamslin/messagely/internal/logutil"
)

type (
	// SecurityRealm gates sensitive handlers behind token verification
	// and, optionally, resource ownership.
	SecurityRealm struct {
		tokens *auth.TokenService
	}

	ctxKey byte
)

const (
	subjectKey = ctxKey(1)

	// OwnerParam is the route parameter the ownership gate compares the
	// token subject against.
	OwnerParam = "username"
)

var (
	bearerTokenRE = regexp.MustCompile(`^Bearer ([^\s]+)$`)
)

func NewRealm(tokens *auth.TokenService) *SecurityRealm {
	return &SecurityRealm{tokens: tokens}
}

// Protect rejects any request that does not carry a valid bearer token
// and binds the token subject to the request context before handing the
// request to sensitive.
func (s *SecurityRealm) Protect(sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := s.checkToken(r)
		if !ok {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		sensitive.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
	})
}

// ProtectOwner is Protect plus the ownership gate: the token subject
// must equal the :username route parameter, otherwise the request stops
// with a 403 and never reaches sensitive.
func (s *SecurityRealm) ProtectOwner(sensitive http.Handler) http.Handler {
	return s.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := httprouter.ParamsFromContext(r.Context()).ByName(OwnerParam)
		subject, _ := Subject(r.Context())
		if subject != owner {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		sensitive.ServeHTTP(w, r)
	}))
}

func (s *SecurityRealm) checkToken(r *http.Request) (string, bool) {
	log := logutil.GetOrDefault(r.Context())
	groups := bearerTokenRE.FindStringSubmatch(r.Header.Get("Authorization"))
	if len(groups) == 0 {
		return "", false
	}
	subject, err := s.tokens.Verify(groups[1])
	if err != nil {
		// one log line, no token material
		log.Debug().Msg("Rejecting request carrying an invalid token")
		return "", false
	}
	return subject, true
}

// WithSubject binds the authenticated username to ctx.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// Subject returns the username bound by Protect, if any.
func Subject(ctx context.Context) (string, bool) {
	v := ctx.Value(subjectKey)
	if v == nil {
		return "", false
	}
	return v.(string), true
}
