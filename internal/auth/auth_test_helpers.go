package auth

import (
	"fmt"
	"net/http"
	"testing"

	"jobboard-backend/internal/utilities"
)

// GetAccessToken logs in through handler and returns the issued token.
func GetAccessToken(
	t *testing.T,
	handler *LocalAuthHandler,
	username string,
	password string,
) (string, error) {
	t.Helper()
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/api/auth/login", http.MethodPost, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login Failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	token, ok := resp["token"].(string)
	if !ok {
		return "", fmt.Errorf("login Failed: no token in response: %s", rec.Body.String())
	}
	return token, nil
}
