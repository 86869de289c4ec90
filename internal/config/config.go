// Package config load application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"

	"jobboard-backend/internal/database"
)

// App holds every setting the API server needs.
type App struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	AllowOrigin string `envconfig:"ALLOW_ORIGIN" default:"*"`

	// JWT
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer string        `envconfig:"JWT_ISSUER" default:"job-board"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"5h"`

	RateLimitPerSecond int `envconfig:"RATE_LIMIT_REQUESTS_PER_SECOND" default:"5"`

	// Auth audit log
	Logging     bool   `envconfig:"LOGGING" default:"false"`
	AuthLogPath string `envconfig:"AUTH_LOG_PATH" default:"log/auth.log"`

	// Bootstrap admin
	AdminUsername string `envconfig:"ADMIN_USERNAME"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	DB database.DBConfig `envconfig:"DB"`
}

// Load reads configuration from the process environment and validates it.
func Load() (App, error) {
	var c App
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c App) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.RateLimitPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS_PER_SECOND must be positive, got %d", c.RateLimitPerSecond)
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return c.DB.Validate()
}

// AllowOrigins splits ALLOW_ORIGIN into individual origins.
func (c App) AllowOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
