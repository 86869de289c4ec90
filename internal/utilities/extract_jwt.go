package utilities

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrMissingBearer is returned when the Authorization header carries no bearer token
var ErrMissingBearer = errors.New("Invalid authorization header")

// ExtractBearerToken returns the token part of "Authorization: Bearer <token>".
func ExtractBearerToken(c *gin.Context) (string, error) {
	const bearerSchema = "Bearer "
	authHeader := c.GetHeader("Authorization")

	if len(authHeader) <= len(bearerSchema) || !strings.EqualFold(authHeader[:len(bearerSchema)], bearerSchema) {
		return "", ErrMissingBearer
	}

	token := strings.TrimSpace(authHeader[len(bearerSchema):])
	if token == "" {
		return "", ErrMissingBearer
	}
	return token, nil
}
