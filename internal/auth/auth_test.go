package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreenwebsolutions/onboarding/internal/auth"
)

const secret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken(secret, 42, "a@b.com", "admin")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := auth.GenerateToken(secret, 1, "a@b.com", "user")
	require.NoError(t, err)

	_, err = auth.ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := auth.ValidateToken(secret, "not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, auth.CheckPassword("hunter22", hash))
	assert.False(t, auth.CheckPassword("wrong", hash))
}

func gatedHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		claims := auth.GetUser(r.Context())
		require.NotNil(t, claims)
		w.WriteHeader(http.StatusOK)
	})
	return auth.Gate(secret)(next), &reached
}

func TestGateAPIUnauthenticated(t *testing.T) {
	h, reached := gatedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestGatePageRedirects(t *testing.T) {
	h, reached := gatedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/onboarding", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, *reached)
}

func TestGateBearerToken(t *testing.T) {
	h, reached := gatedHandler(t)
	token, err := auth.GenerateToken(secret, 1, "a@b.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
}

func TestGateSessionCookie(t *testing.T) {
	h, reached := gatedHandler(t)
	token, err := auth.GenerateToken(secret, 1, "a@b.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/onboarding", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
}

func TestGateInvalidToken(t *testing.T) {
	h, reached := gatedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/form", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}
