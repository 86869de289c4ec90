package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-backend/internal/database"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "sqlite")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, "job-board", c.JWTIssuer)
	assert.Equal(t, 5*time.Hour, c.TokenTTL)
	assert.Equal(t, 5, c.RateLimitPerSecond)
	assert.Equal(t, "log/auth.log", c.AuthLogPath)
	assert.Equal(t, database.DriverSQLite, c.DB.Driver)
	assert.Equal(t, "job_board.db", c.DB.Path)
	assert.Equal(t, 5*time.Second, c.DB.BusyTimeout)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadPostgresParts(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USERNAME", "jobs")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_DATABASE", "jobs")
	t.Setenv("DB_USE_CONNECTION_STR", "false")

	c, err := Load()
	require.NoError(t, err)

	dsn, err := c.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://jobs:pw@localhost:5432/jobs?sslmode=disable", dsn)
}

func TestLoadIncompletePostgres(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USE_CONNECTION_STR", "false")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadAdminPair(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestAllowOrigins(t *testing.T) {
	c := App{AllowOrigin: "http://localhost:3000, https://jobs.example.com,,"}
	assert.Equal(t, []string{"http://localhost:3000", "https://jobs.example.com"}, c.AllowOrigins())
}
