package middleware

import "github.com/gin-gonic/gin"

// SafeHeader sets response headers suited to a JSON only API
func SafeHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		h.Del("X-Powered-By")
		if gin.Mode() == gin.ReleaseMode {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		c.Next()
	}
}
