package auth

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAuthAttemptWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "auth.log")
	l := NewAuthLogger(true, path)

	l.LogAuthAttempt(slog.LevelInfo, "Local", StatusSuccess, "alice", "login")
	l.LogAuthAttempt(slog.LevelWarn, "Local", StatusFail, "", "bad password")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 2)

	assert.Equal(t, "INFO", records[0]["level"])
	assert.Equal(t, "Local", records[0]["authType"])
	assert.Equal(t, StatusSuccess, records[0]["status"])
	assert.Equal(t, "alice", records[0]["identifier"])
	assert.Equal(t, "login", records[0]["msg"])

	assert.Equal(t, "WARN", records[1]["level"])
	assert.NotContains(t, records[1], "identifier")
}

func TestLogAuthAttemptDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.log")

	NewAuthLogger(false, path).LogAuthAttempt(slog.LevelInfo, "Local", StatusSuccess, "alice", "login")
	var nilLogger *AuthLogger
	nilLogger.LogAuthAttempt(slog.LevelInfo, "Local", StatusSuccess, "alice", "login")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
