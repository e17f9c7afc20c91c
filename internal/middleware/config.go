package middleware

import (
	"net/http"

	"github.com/templui/goalnote/internal/config"
	"github.com/templui/goalnote/internal/ctxkeys"
)

// Config middleware adds the sanitized app configuration to the request context.
// Secrets and the database connection string are excluded.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), cfg.Sanitized())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
