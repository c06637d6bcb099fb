package middleware

import (
	"net/http"

	"redacao_service/internal/ctxdata"
)

// NewIdentityMiddleware copies the caller identity the edge proxy
// resolved into the request context. Requests without headers pass
// through anonymously; each operation decides what it requires.
func NewIdentityMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if email := r.Header.Get("X-User-Email"); email != "" {
				ctx = ctxdata.WithUserEmail(ctx, email)
			}
			if role := r.Header.Get("X-User-Role"); role != "" {
				ctx = ctxdata.WithUserRole(ctx, role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
