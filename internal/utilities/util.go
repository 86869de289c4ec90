// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"reflect"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/model"
)

// ContextUserKey is the gin context key holding the caller's model.Identity
const ContextUserKey = "user"

// ContextClaimsKey is the gin context key holding the parsed token claims
const ContextClaimsKey = "claims"

// ErrorResponse is the body of every failed request.
// Error carries the underlying cause when there is one.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse type for swagger docs
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractIdentity extracts the authenticated caller from Gin context.
// It does not abort the request; the caller decides how to respond.
func ExtractIdentity(c *gin.Context) (model.Identity, error) {
	u, ok := c.Get(ContextUserKey)
	if !ok || u == nil {
		return model.Identity{}, errors.New("User information not provided")
	}

	id, ok := u.(model.Identity)
	if !ok {
		return model.Identity{}, errors.New("Failed to assert type")
	}
	return id, nil
}

// MergeNonEmpty copies every non-zero field of src into the field of dst with the same name.
// Both arguments must be pointers to structs.
func MergeNonEmpty(dst, src interface{}) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src).Elem()

	for i := 0; i < sv.NumField(); i++ {
		sf := sv.Field(i)
		if !sf.IsZero() {
			df := dv.FieldByName(sv.Type().Field(i).Name)
			if df.IsValid() && df.CanSet() {
				df.Set(sf)
			}
		}
	}
}
