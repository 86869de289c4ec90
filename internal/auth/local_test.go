package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error
var testTokens = NewTokenIssuer("test-secret", "job-board", 5*time.Hour)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
	os.Exit(code)
}

func newHandler() *LocalAuthHandler {
	return NewLocalAuthHandler(testDB, testTokens, nil)
}

func registerPayload(username, email string) map[string]string {
	return map[string]string{
		"fullName":        "Test Person",
		"username":        username,
		"email":           email,
		"password":        "password123",
		"confirmPassword": "password123",
		"phoneNumber":     "0812345678",
	}
}

func TestRegisterSuccess(t *testing.T) {
	handler := newHandler()

	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/api/auth/register", http.MethodPost,
		registerPayload("register_ok", "register_ok@example.com"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	user, ok := resp["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "register_ok", user["username"])
	assert.Equal(t, string(model.RoleUser), user["role"])
	assert.NotContains(t, user, "password")

	var stored model.User
	require.NoError(t, testDB.Where("username = ?", "register_ok").First(&stored).Error)
	assert.NotEqual(t, "password123", stored.Password)
	assert.True(t, utilities.VerifyPassword(stored.Password, "password123"))
}

func TestRegisterDuplicate(t *testing.T) {
	handler := newHandler()

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"same username", registerPayload(database.TestUser1.Username, "fresh_dup1@example.com")},
		{"same email", registerPayload("fresh_dup2", database.TestUser1.Email)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/api/auth/register", http.MethodPost, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, http.StatusConflict, rec.Code)
			assert.Equal(t, "Username or email already exists", resp["message"])
		})
	}
}

func TestRegisterOnlyOnce(t *testing.T) {
	handler := newHandler()
	payload := registerPayload("once_only", "once_only@example.com")

	rec, _, err := utilities.SimulateAPICall(handler.RegisterHandler, "/api/auth/register", http.MethodPost, payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _, err = utilities.SimulateAPICall(handler.RegisterHandler, "/api/auth/register", http.MethodPost, payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	handler := newHandler()

	missing := registerPayload("missing_phone", "missing_phone@example.com")
	delete(missing, "phoneNumber")

	badEmail := registerPayload("bad_email", "not-an-email")

	mismatch := registerPayload("mismatch", "mismatch@example.com")
	mismatch["confirmPassword"] = "password124"

	short := registerPayload("short_pw", "short_pw@example.com")
	short["password"], short["confirmPassword"] = "abc", "abc"

	tests := []struct {
		name    string
		payload map[string]string
		message string
	}{
		{"missing field", missing, "All fields are required"},
		{"invalid email", badEmail, "All fields are required"},
		{"password mismatch", mismatch, "Passwords do not match"},
		{"password too short", short, "Password should be at least 8 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/api/auth/register", http.MethodPost, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, resp["message"])
		})
	}
}

func TestRegisterAdmin(t *testing.T) {
	handler := newHandler()

	rec, resp, err := utilities.SimulateAPICall(handler.RegisterAdminHandler, "/api/auth/register-admin", http.MethodPost,
		registerPayload("second_admin", "second_admin@example.com"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	user := resp["user"].(map[string]interface{})
	assert.Equal(t, string(model.RoleAdmin), user["role"])
}

func TestLoginSuccess(t *testing.T) {
	handler := newHandler()

	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/api/auth/login", http.MethodPost, map[string]string{
		"username": database.TestAdminUser.Username,
		"password": database.TestSeedPassword,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	token, ok := resp["token"].(string)
	require.True(t, ok)

	claims, err := testTokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, database.TestAdminUser.ID, claims.ID)
	assert.Equal(t, model.RoleAdmin, claims.Role)

	user := resp["user"].(map[string]interface{})
	assert.Equal(t, database.TestAdminUser.Username, user["username"])
}

func TestLoginFailuresLookAlike(t *testing.T) {
	handler := newHandler()

	_, wrongPw, err := utilities.SimulateAPICall(handler.LoginHandler, "/api/auth/login", http.MethodPost, map[string]string{
		"username": database.TestUser1.Username,
		"password": "wrong-password",
	})
	require.NoError(t, err)

	rec, unknown, err := utilities.SimulateAPICall(handler.LoginHandler, "/api/auth/login", http.MethodPost, map[string]string{
		"username": "nobody_here",
		"password": "wrong-password",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username or password", unknown["message"])
	assert.Equal(t, wrongPw, unknown)
}

func TestLoginMissingFields(t *testing.T) {
	handler := newHandler()

	rec, _, err := utilities.SimulateAPICall(handler.LoginHandler, "/api/auth/login", http.MethodPost, map[string]string{
		"username": "someone",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAccessToken(t *testing.T) {
	token, err := GetAccessToken(t, newHandler(), database.TestUser2.Username, database.TestSeedPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = GetAccessToken(t, newHandler(), database.TestUser2.Username, "nope")
	assert.Error(t, err)
}

func TestLoginUnknownUserComparesPassword(t *testing.T) {
	handler := newHandler()

	hashed := utilities.DummyHash()
	start := time.Now()
	utilities.VerifyPassword(hashed, "wrong-password")
	compare := time.Since(start)

	start = time.Now()
	rec, _, err := utilities.SimulateAPICall(handler.LoginHandler, "/api/auth/login", http.MethodPost, map[string]string{
		"username": "nobody_timed",
		"password": "wrong-password",
	})
	elapsed := time.Since(start)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.GreaterOrEqual(t, elapsed, compare/2)
}
