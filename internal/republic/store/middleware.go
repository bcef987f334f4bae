package store

import (
	"net/http"

	"github.com/republichq/republic/pkg/slogx"
)

// ScopeMiddleware gives every request its own scope on st and releases it
// when the handler returns, panics included.
func ScopeMiddleware(st Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, release := WithScope(r.Context(), st)
			defer func() {
				if err := release(); err != nil {
					slogx.FromContext(ctx).Warn("release request connection", "err", err)
				}
			}()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
