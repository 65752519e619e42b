package mw

import (
	"encoding/json"
	"net/http"

	"github.com/abodsh/edufiles/internal/logger"
	"github.com/abodsh/edufiles/internal/session"
)

// LoadUser resolves the request's session, if any, and stashes the
// identity in the context. Anonymous requests pass through untouched.
func LoadUser(guard *session.Guard, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := guard.Current(r.Context(), r)
			if err != nil {
				log.Warn("session lookup failed", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if u != nil {
				r = r.WithContext(session.WithUser(r.Context(), u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects anonymous requests with a 401. It expects LoadUser
// to have run earlier in the chain.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session.UserFrom(r.Context()) == nil {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "sign in required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin sends non-admin visitors back to the home page instead of
// erroring. The admin area simply does not exist for them.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := session.UserFrom(r.Context())
			if u == nil || !u.IsAdmin() {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
