package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

// CheckRole will protect endpoint from user that is not of the required role
func CheckRole(required model.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractIdentity(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: "Access denied",
				Error:   err.Error(),
			})
			return
		}

		if !user.Role.Valid() || user.Role != required {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Message: "Access denied",
			})
			return
		}

		ctx.Next()
	}
}
