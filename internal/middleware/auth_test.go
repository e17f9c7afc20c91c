package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goalnote/internal/ctxkeys"
	"github.com/templui/goalnote/internal/service"
)

func protected(t *testing.T) http.HandlerFunc {
	tokens := service.NewTokenService("secret", time.Minute, time.Hour)
	auth := service.NewAuthService(nil, tokens)

	return RequireAuth(auth)(func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ctxkeys.Owner(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(owner.String()))
	})
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Detail
}

func TestRequireAuth(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Minute, time.Hour)
	access, err := tokens.Issue(7, service.TokenTypeAccess)
	require.NoError(t, err)
	refresh, err := tokens.Issue(7, service.TokenTypeRefresh)
	require.NoError(t, err)
	expired, err := service.NewTokenService("secret", -time.Minute, time.Hour).Issue(7, service.TokenTypeAccess)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		detail string
	}{
		{name: "missing header", status: http.StatusUnauthorized, detail: "Authorization header is missing"},
		{name: "malformed header", header: "Token " + access, status: http.StatusUnauthorized, detail: "Invalid authorization header format. Use 'Bearer <token>'"},
		{name: "garbage token", header: "Bearer nope", status: http.StatusUnauthorized, detail: "Could not validate token"},
		{name: "expired token", header: "Bearer " + expired, status: http.StatusUnauthorized, detail: "Token has expired"},
		{name: "refresh token", header: "Bearer " + refresh, status: http.StatusUnauthorized, detail: "Invalid token type"},
		{name: "valid", header: "bearer " + access, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/goals", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected(t)(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.detail != "" {
				assert.Equal(t, tt.detail, detail(t, rec))
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			} else {
				assert.Equal(t, "7", rec.Body.String())
			}
		})
	}
}
