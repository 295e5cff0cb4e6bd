// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session carries the caller's session presence through a request.
// It is a presence check only: a non-empty session identifier counts as
// authenticated. The recommendation pipeline never reads it; only the HTTP
// surface uses it to gate routes.
package session

import (
	"context"
	"net/http"
	"strings"
)

const (
	// CookieName is the cookie that carries the session identifier.
	CookieName = "session"
	// HeaderName is the header alternative for non-browser clients.
	HeaderName = "X-Session-Id"
)

// Session describes the caller of one request.
type Session struct {
	ID            string
	Authenticated bool
}

type ctxKey struct{}

// FromRequest reads the session from the cookie, falling back to the header.
func FromRequest(r *http.Request) Session {
	id := ""
	if c, err := r.Cookie(CookieName); err == nil {
		id = strings.TrimSpace(c.Value)
	}
	if id == "" {
		id = strings.TrimSpace(r.Header.Get(HeaderName))
	}
	return Session{ID: id, Authenticated: id != ""}
}

// WithContext returns a copy of ctx carrying s.
func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, or an anonymous session.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(ctxKey{}).(Session)
	return s
}

// Inject stores the request's session in its context for downstream handlers.
func Inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), FromRequest(r))))
	})
}

// Require answers 401 for requests without an authenticated session. It
// reads the session injected by Inject.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !FromContext(r.Context()).Authenticated {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication required"}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
