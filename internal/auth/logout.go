package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/utilities"
)

// LogoutController handles user logout by blacklisting JWT tokens
type LogoutController struct {
	BlacklistStore JwtBlacklistStore
	Log            *AuthLogger
}

// NewLogoutController creates a new instance of LogoutController
func NewLogoutController(blacklistStore JwtBlacklistStore, logger *AuthLogger) *LogoutController {
	return &LogoutController{
		BlacklistStore: blacklistStore,
		Log:            logger,
	}
}

// LogoutHandler revokes the presented token until it expires
// @Summary Logout
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Missing or revoked token"
// @Failure 500 {object} utilities.ErrorResponse "Blacklist store error"
// @Router /auth/logout [post]
func (lc *LogoutController) LogoutHandler(c *gin.Context) {
	tokenString, err := utilities.ExtractBearerToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Message: "Access denied", Error: err.Error()})
		return
	}

	claims, err := ClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Message: "Access denied", Error: err.Error()})
		return
	}

	if err := lc.BlacklistStore.AddToBlacklist(tokenString, claims.ExpiresAt.Time); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Message: "Failed to logout", Error: err.Error()})
		return
	}

	lc.Log.LogAuthAttempt(slog.LevelInfo, "Logout", StatusSuccess, claims.Username, "logout")
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Successfully logged out"})
}

// ClaimsFromContext returns the claims attached by the authentication middleware
func ClaimsFromContext(c *gin.Context) (*Claims, error) {
	claims, ok := c.Get(utilities.ContextClaimsKey)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	realClaims, ok := claims.(*Claims)
	if !ok || realClaims.ExpiresAt == nil {
		return nil, errors.New("invalid token claims type")
	}
	return realClaims, nil
}
