package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/utilities"
)

func TestLogoutSuccess(t *testing.T) {
	accessToken, err := GetAccessToken(t, newHandler(), database.TestUser1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	store := newStore(t)
	logoutController := NewLogoutController(store, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request, err = http.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	require.NoError(t, err)
	c.Request.Header.Set("Authorization", "Bearer "+accessToken)

	// what RequireAuth would have attached
	claims, err := testTokens.Validate(accessToken)
	require.NoError(t, err)
	c.Set(utilities.ContextClaimsKey, claims)

	logoutController.LogoutHandler(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Successfully logged out", resp["message"])

	revoked, err := store.IsBlacklisted(accessToken)
	assert.NoError(t, err)
	assert.True(t, revoked, "Token should be blacklisted after logout")

	store.mu.RLock()
	assert.Equal(t, claims.ExpiresAt.Time, store.blacklist[accessToken])
	store.mu.RUnlock()
}

func TestLogoutMissingToken(t *testing.T) {
	logoutController := NewLogoutController(newStore(t), nil)

	rec, resp, err := utilities.SimulateAPICall(logoutController.LogoutHandler, "/api/auth/logout", http.MethodPost, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, resp["error"], "authorization header")
}

func TestLogoutMissingClaims(t *testing.T) {
	logoutController := NewLogoutController(newStore(t), nil)

	h := http.Header{}
	h.Set("Authorization", "Bearer some.token.value")
	rec, resp, err := utilities.SimulateAPICall(logoutController.LogoutHandler, "/api/auth/logout", http.MethodPost, nil, h)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token claims", resp["error"])
}
