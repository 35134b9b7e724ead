package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
)

func newEchoHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthnMiddleware_ValidToken(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret")
	require.NoError(t, err)
	token, _, err := tokens.IssueAccessToken(42, auth.RoleUser)
	require.NoError(t, err)

	var got auth.Identity
	handler := NewAuthnMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		require.True(t, ok)
		got = identity
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/task/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, auth.RoleUser, got.Role)
}

func TestAuthnMiddleware_FailuresAreUniform(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret")
	require.NoError(t, err)

	now := time.Now().Add(-time.Hour)
	expired, err2 := auth.NewTokenService("test-secret", auth.WithClock(func() time.Time { return now }))
	require.NoError(t, err2)
	expiredToken, _, err := expired.IssueAccessToken(1, auth.RoleUser)
	require.NoError(t, err)

	other, err := auth.NewTokenService("other-secret")
	require.NoError(t, err)
	forgedToken, _, err := other.IssueAccessToken(1, auth.RoleAdmin)
	require.NoError(t, err)

	handler := NewAuthnMiddleware(tokens)(newEchoHandler(t))

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage", "Bearer not.a.token"},
		{"expired", "Bearer " + expiredToken},
		{"wrong signature", "Bearer " + forgedToken},
	}
	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/task/1", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}

	// Every failure mode writes the identical body.
	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}

func TestAuthnMiddleware_SkipsPublicRoutes(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret")
	require.NoError(t, err)
	handler := NewAuthnMiddleware(tokens)(newEchoHandler(t))

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health"},
		{http.MethodPost, "/api/auth/login"},
		{http.MethodPost, "/api/auth/refresh"},
		{http.MethodPost, "/api/user"},
		{http.MethodOptions, "/api/task"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}

	// Non-POST on /api/user is still authenticated.
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthnMiddleware_CustomSkipper(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret")
	require.NoError(t, err)
	handler := NewAuthnMiddleware(tokens, WithSkipper(func(r *http.Request) bool {
		return r.URL.Path == "/open"
	}))(newEchoHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The custom skipper replaces the default one entirely.
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
