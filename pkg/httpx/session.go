package httpx

import (
	"net/http"
	"time"

	"github.com/republichq/republic/pkg/jwtx"
	"github.com/republichq/republic/pkg/slogx"
)

const SessionCookieName = "session"

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

// SetSessionCookie writes the signed session token.
func SetSessionCookie(w http.ResponseWriter, token string, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireSession lets the request through only with a valid session cookie.
// Anonymous callers are redirected to loginPath.
func RequireSession(v jwtx.Verifier, loginPath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			claims, err := v.Verify(cookie.Value)
			if err != nil {
				log.Info("rejected session cookie", "err", err)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			userID, _ := claims.UserID() // Verify already checked the subject
			ctx := WithUser(r.Context(), userID, claims.UserType)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
