package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/votekeeper/internal/server/handlers"
	"github.com/iudanet/votekeeper/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

func testJWTConfig() handlers.JWTConfig {
	return handlers.JWTConfig{
		Secret:   []byte("test-secret-key"),
		TokenTTL: 15 * time.Minute,
	}
}

// subjectHandler проверяет subject администратора в контексте
func subjectHandler(t *testing.T, expected string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := handlers.GetAdminSubject(r.Context())
		require.True(t, ok, "admin subject should be in context")
		assert.Equal(t, expected, subject)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	cfg := testJWTConfig()
	token, err := handlers.GenerateAdminToken(cfg, "returning-officer")
	require.NoError(t, err)

	handler := AuthMiddleware(setupTestLogger(), cfg)(subjectHandler(t, "returning-officer"))

	for _, scheme := range []string{"Bearer ", "bearer "} {
		req := httptest.NewRequest(http.MethodPost, "/api/parties", nil)
		req.Header.Set("Authorization", scheme+token)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cfg := testJWTConfig()

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, handlers.AdminClaims{
		Role: handlers.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "votekeeper",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString(cfg.Secret)
	require.NoError(t, err)

	otherSecret, err := handlers.GenerateAdminToken(handlers.JWTConfig{Secret: []byte("other")}, "ops")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{name: "missing header", header: "", message: "missing token"},
		{name: "no scheme", header: "token-only", message: "invalid token format"},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", message: "invalid token format"},
		{name: "empty bearer", header: "Bearer ", message: "invalid token format"},
		{name: "garbage token", header: "Bearer not.a.jwt", message: "invalid token"},
		{name: "expired", header: "Bearer " + expired, message: "invalid token"},
		{name: "wrong secret", header: "Bearer " + otherSecret, message: "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := AuthMiddleware(setupTestLogger(), cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodPut, "/api/candidates/c1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")

			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}
