// Package middleware contain utilities middleware code
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/utilities"
)

// RequireAuth validates the Bearer token in the Authorization header and attaches
// the caller identity and the token claims to the context.
// A missing header is 401, a token that fails verification is 403.
func RequireAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: "Access denied",
			})
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			msg := auth.ErrInvalidToken.Error()
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = auth.ErrTokenExpired.Error()
			}
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Message: msg,
			})
			return
		}

		ctx.Set(utilities.ContextClaimsKey, claims)
		ctx.Set(utilities.ContextUserKey, claims.Identity())
		ctx.Next()
	}
}
