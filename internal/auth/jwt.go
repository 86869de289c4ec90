// Package auth issue and verify access tokens and serve the authentication endpoints.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"jobboard-backend/internal/model"
)

var (
	// ErrTokenExpired means the token was valid but its exp has passed
	ErrTokenExpired = errors.New("Access token expired")
	// ErrInvalidToken covers bad signature, signing method, issuer or payload
	ErrInvalidToken = errors.New("Invalid token")
)

// Claims is the payload of an access token
type Claims struct {
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the caller identity carried by the claims
func (c *Claims) Identity() model.Identity {
	return model.Identity{ID: c.ID, Username: c.Username, Role: c.Role}
}

// TokenIssuer signs and verifies HS256 access tokens
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer; tokens expire ttl after issue
func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate signs a token for user
func (ti *TokenIssuer) Generate(user model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ti.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("Failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses encoded and returns its claims.
// The error is ErrTokenExpired or ErrInvalidToken.
func (ti *TokenIssuer) Validate(encoded string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(encoded, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid || !claims.VerifyIssuer(ti.issuer, true) || !claims.Role.Valid() || claims.ID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
