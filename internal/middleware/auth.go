package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lfarias/grana/internal/identity"
)

type Middleware struct {
	Verifier identity.Verifier
}

func NewMiddleware(verifier identity.Verifier) *Middleware {
	return &Middleware{Verifier: verifier}
}

type contextKey string

const sessionKey contextKey = "session"

// Auth verifies the bearer token and puts the resulting session on the
// request context.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		session, err := m.Verifier.Verify(r.Context(), parts[1])
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithSession puts a session on the context directly, bypassing token
// verification. Handler tests use it.
func WithSession(ctx context.Context, session identity.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// Session extracts the verified session; zero value when absent.
func Session(ctx context.Context) identity.Session {
	s, _ := ctx.Value(sessionKey).(identity.Session)
	return s
}

// UID is shorthand for the verified caller's user id.
func UID(ctx context.Context) string {
	return Session(ctx).UserID
}
