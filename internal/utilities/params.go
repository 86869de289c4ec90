package utilities

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseID reads a positive integer path parameter.
// It answers 400 and returns false when the parameter is not one.
func ParseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid " + param})
		return 0, false
	}
	return uint(id), true
}

// ParseUUID reads a UUID path parameter.
// It answers 400 and returns false when the parameter is not one.
func ParseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
