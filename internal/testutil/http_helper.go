// Package testutil provides utility functions for testing HTTP handlers.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/model"
)

// MakeJSONRequest sends body as JSON through r and decodes the JSON answer.
// An empty authToken sends no Authorization header, a nil body sends no body.
func MakeJSONRequest(body interface{}, authToken string, r *gin.Engine, endpoint string, method string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req, _ := http.NewRequest(method, endpoint, reader)
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)

	return rec, resp
}

// IssueToken signs an access token for user, failing the test on error
func IssueToken(t *testing.T, tokens *auth.TokenIssuer, user model.User) string {
	t.Helper()
	token, err := tokens.Generate(user)
	require.NoError(t, err)
	return token
}

// Items returns the list stored under key in a decoded response
func Items(t *testing.T, resp map[string]interface{}, key string) []map[string]interface{} {
	t.Helper()
	raw, ok := resp[key].([]interface{})
	require.True(t, ok, "response has no %q list: %v", key, resp)

	items := make([]map[string]interface{}, 0, len(raw))
	for _, v := range raw {
		item, ok := v.(map[string]interface{})
		require.True(t, ok)
		items = append(items, item)
	}
	return items
}
