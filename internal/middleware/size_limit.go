package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/utilities"
)

// SizeLimit rejects request bodies larger than maxBodyBytes with 413.
// Bodies without a declared length are cut off while being read.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBodyBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
				Message: "Request body too large",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}
