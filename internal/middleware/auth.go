package middleware

import (
	"net/http"

	"github.com/templui/goalnote/internal/ctxkeys"
	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/render"
)

// Authenticator resolves the owner from an Authorization header value
type Authenticator interface {
	Authenticate(header string) (model.OwnerID, error)
}

// RequireAuth rejects requests without a valid access token and puts the
// token's owner into the request context
func RequireAuth(auth Authenticator) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			owner, err := auth.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				render.Error(w, r, err)
				return
			}

			ctx := ctxkeys.WithOwner(r.Context(), owner)
			next(w, r.WithContext(ctx))
		}
	}
}
