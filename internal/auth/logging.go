package auth

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Audit status values
const (
	StatusSuccess = "Success"
	StatusFail    = "Fail"
)

// AuthLogger appends one JSON record per authentication attempt to a file.
// A nil or disabled logger drops every record.
type AuthLogger struct {
	enabled bool
	path    string
	mu      sync.Mutex
}

// NewAuthLogger creates an AuthLogger writing to path when enabled
func NewAuthLogger(enabled bool, path string) *AuthLogger {
	return &AuthLogger{enabled: enabled, path: path}
}

// LogAuthAttempt records an attempt.
// authType: Local|Logout, status: Success|Fail, identifier: username or user id.
// Failures to write are ignored so logging never fails a request.
func (l *AuthLogger) LogAuthAttempt(level slog.Level, authType, status, identifier, message string) {
	if l == nil || !l.enabled {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	attrs := []slog.Attr{
		slog.String("authType", authType),
		slog.String("status", status),
	}
	if identifier != "" {
		attrs = append(attrs, slog.String("identifier", identifier))
	}
	slog.New(slog.NewJSONHandler(f, nil)).LogAttrs(context.Background(), level, message, attrs...)
}
