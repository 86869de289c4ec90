// Package user provides HTTP handlers for account management.
package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

const recency = "created_at DESC, id DESC"

// UserController handles user related endpoints
type UserController struct {
	DB *database.DBinstanceStruct
}

// NewUserController creates a new instance of UserController
func NewUserController(db *database.DBinstanceStruct) *UserController {
	return &UserController{
		DB: db,
	}
}

// ListUsers returns every account, newest first
// @Summary List users
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} model.UserListResponse
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token or not admin"
// @Failure 404 {object} utilities.ErrorResponse "Requested page is empty"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users [get]
func (uc *UserController) ListUsers(c *gin.Context) {
	p := utilities.ParsePagination(c)

	users, total, err := database.Paginate[model.User](uc.DB.WithContext(c.Request.Context()), p.Offset(), p.Limit, recency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "No users found"})
		return
	}

	c.JSON(http.StatusOK, model.UserListResponse{
		Users:    users,
		PageMeta: p.Meta(total),
	})
}

// GetMe returns the caller's profile
// @Summary Get my profile
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.User
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/me [get]
func (uc *UserController) GetMe(c *gin.Context) {
	identity, err := utilities.ExtractIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Message: "Access denied", Error: err.Error()})
		return
	}

	user, ok := uc.findUser(c, identity.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe changes the non-empty fields of the caller's profile
// @Summary Update my profile
// @Description Empty fields are left untouched, a new password is hashed before storing
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body model.EditableUserInfo true "Fields to change"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid field or nothing to update"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 409 {object} utilities.ErrorResponse "Username or email already exists"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/me [put]
func (uc *UserController) UpdateMe(c *gin.Context) {
	identity, err := utilities.ExtractIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Message: "Access denied", Error: err.Error()})
		return
	}

	var info model.EditableUserInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "Invalid profile information",
			Error:   err.Error(),
		})
		return
	}
	if info == (model.EditableUserInfo{}) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Message: "No fields to update"})
		return
	}

	if info.Password != "" {
		hashed, err := utilities.HashPassword(info.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Message: "Failed to hash password",
				Error:   err.Error(),
			})
			return
		}
		info.Password = hashed
	}

	user, ok := uc.findUser(c, identity.ID)
	if !ok {
		return
	}
	utilities.MergeNonEmpty(&user, &info)

	err = uc.DB.WithContext(c.Request.Context()).Model(&user).
		Select("full_name", "username", "email", "phone_number", "password").
		Updates(&user).Error
	if err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{Message: "Username or email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.UserResponse{
		Message: "Profile updated successfully",
		User:    user,
	})
}

// DeleteMe deletes the caller's account together with their applications
// @Summary Delete my account
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error, nothing was deleted"
// @Router /users [delete]
func (uc *UserController) DeleteMe(c *gin.Context) {
	identity, err := utilities.ExtractIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Message: "Access denied", Error: err.Error()})
		return
	}
	uc.deleteUser(c, identity.ID)
}

// DeleteUser deletes any account together with its applications
// @Summary Delete a user
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param userId path string true "User id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid user id"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token or not admin"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error, nothing was deleted"
// @Router /users/{userId} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := utilities.ParseUUID(c, "userId")
	if !ok {
		return
	}
	uc.deleteUser(c, id)
}

func (uc *UserController) deleteUser(c *gin.Context, id uuid.UUID) {
	if err := uc.DB.DeleteUserCascade(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to delete user",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "User deleted successfully"})
}

func (uc *UserController) findUser(c *gin.Context, id uuid.UUID) (model.User, bool) {
	var user model.User
	if err := uc.DB.WithContext(c.Request.Context()).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "User not found"})
			return user, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to fetch user",
			Error:   err.Error(),
		})
		return user, false
	}
	return user, true
}
