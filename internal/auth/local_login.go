package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

const minPasswordLength = 8

// LocalAuthHandler serves username/password registration and login.
type LocalAuthHandler struct {
	DB     *database.DBinstanceStruct
	Tokens *TokenIssuer
	Log    *AuthLogger
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler.
func NewLocalAuthHandler(db *database.DBinstanceStruct, tokens *TokenIssuer, logger *AuthLogger) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB:     db,
		Tokens: tokens,
		Log:    logger,
	}
}

type registerInfo struct {
	FullName        string `json:"fullName" binding:"required"`
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
}

type loginInfo struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler creates a regular user account
// @Summary Register a new user
// @Description Username and email must be unique, password must be at least 8 characters long
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Account information"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing field or password mismatch"
// @Failure 409 {object} utilities.ErrorResponse "Username or email already exists"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (lh *LocalAuthHandler) RegisterHandler(c *gin.Context) {
	lh.register(c, model.RoleUser)
}

// RegisterAdminHandler creates an admin account, only an admin may call it
// @Summary Register a new admin
// @Tags Auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token of an admin"
// @Param Info body registerInfo true "Account information"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing field or password mismatch"
// @Failure 401 {object} utilities.ErrorResponse "Unauthenticated"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not admin"
// @Failure 409 {object} utilities.ErrorResponse "Username or email already exists"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register-admin [post]
func (lh *LocalAuthHandler) RegisterAdminHandler(c *gin.Context) {
	lh.register(c, model.RoleAdmin)
}

func (lh *LocalAuthHandler) register(c *gin.Context, role model.Role) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "All fields are required",
			Error:   err.Error(),
		})
		return
	}

	if info.Password != info.ConfirmPassword {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Message: "Passwords do not match"})
		return
	}

	if len(info.Password) < minPasswordLength {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: fmt.Sprintf("Password should be at least %d characters", minPasswordLength),
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to hash password",
			Error:   err.Error(),
		})
		return
	}

	user := model.User{
		FullName:    info.FullName,
		Username:    info.Username,
		Email:       info.Email,
		Password:    hashedPassword,
		PhoneNumber: info.PhoneNumber,
		Role:        role,
	}

	if err := lh.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			lh.Log.LogAuthAttempt(slog.LevelWarn, "Local", StatusFail, info.Username, "register: duplicate username or email")
			c.JSON(http.StatusConflict, utilities.ErrorResponse{Message: "Username or email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to create user",
			Error:   err.Error(),
		})
		return
	}

	lh.Log.LogAuthAttempt(slog.LevelInfo, "Local", StatusSuccess, user.Username, "register as "+string(role))
	c.JSON(http.StatusCreated, model.UserResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

// LoginHandler verifies credentials and issues an access token
// @Summary Login with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} utilities.ErrorResponse "Username or password missing"
// @Failure 401 {object} utilities.ErrorResponse "Invalid username or password"
// @Failure 500 {object} utilities.ErrorResponse "Database or token error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "Username and password are required",
			Error:   err.Error(),
		})
		return
	}

	var user model.User
	err := lh.DB.WithContext(c.Request.Context()).Where("username = ?", info.Username).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// same answer and same bcrypt work as a wrong password
		user.Password = utilities.DummyHash()
	case err != nil:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to retrieve user",
			Error:   err.Error(),
		})
		return
	}

	matched := utilities.VerifyPassword(user.Password, info.Password)
	if err != nil || !matched {
		lh.Log.LogAuthAttempt(slog.LevelWarn, "Local", StatusFail, info.Username, "login: invalid credentials")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Message: "Invalid username or password"})
		return
	}

	token, err := lh.Tokens.Generate(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to generate access token",
			Error:   err.Error(),
		})
		return
	}

	lh.Log.LogAuthAttempt(slog.LevelInfo, "Local", StatusSuccess, user.Username, "login")
	c.JSON(http.StatusOK, model.LoginResponse{
		Token: token,
		User:  user,
	})
}
