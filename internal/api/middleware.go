package api

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/session"
)

const sessionCookie = "sb_session"

type sessionCtxKey struct{}

// SessionMiddleware attaches the caller's storefront session, issuing a
// fresh one (empty basket) when the cookie is missing or expired.
func SessionMiddleware(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var s *session.Session

			if cookie, err := r.Cookie(sessionCookie); err == nil {
				s, _ = sessions.Get(cookie.Value)
			}
			if s == nil {
				s = sessions.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    s.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromContext(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionCtxKey{}).(*session.Session)
	return s
}

// AdminAuthMiddleware checks a shared token header. This is a weak gate
// by the original design, not a security boundary.
func AdminAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Admin-Token")
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid admin token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
