package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/utilities"
)

// JwtBlacklistCheck rejects tokens revoked by logout. It runs after RequireAuth.
func JwtBlacklistCheck(bl auth.JwtBlacklistStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: "Access denied",
			})
			return
		}

		isBlacklisted, err := bl.IsBlacklisted(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Message: "Failed to validate token",
				Error:   err.Error(),
			})
			return
		}

		if isBlacklisted {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: "Token has been revoked",
			})
			return
		}

		ctx.Next()
	}
}
