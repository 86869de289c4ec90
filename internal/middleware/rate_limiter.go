package middleware

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/utilities"
)

func keyFunc(c *gin.Context) string {
	user, err := utilities.ExtractIdentity(c)
	if err != nil {
		return "ip: " + c.ClientIP()
	}
	return "user: " + user.ID.String()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.Header("Retry-After", info.ResetTime.UTC().Format(http.TimeFormat))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, utilities.ErrorResponse{
		Message: "Too many requests. Please try again later.",
	})
}

// RateLimiter allows reqPerSec requests per second per user, or per client IP before login
func RateLimiter(reqPerSec uint) gin.HandlerFunc {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: reqPerSec,
	})

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc:      keyFunc,
		ErrorHandler: errorHandler,
	})
}
