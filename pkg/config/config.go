package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const devSecretPlaceholder = "dev-secret-change-in-production"

// Config holds all process-wide settings. It is populated once at startup
// and read-only afterwards.
type Config struct {
	Environment string        `envconfig:"ENVIRONMENT" default:"development"`
	Port        string        `envconfig:"PORT" default:"3000"`
	PostgresDSN string        `envconfig:"POSTGRES_DSN"`
	JWTSecret   string        `envconfig:"JWT_SECRET"`
	JWTExpiry   time.Duration `envconfig:"JWT_EXPIRES_IN" default:"24h"`

	// UserAccessPolicy selects the strategy for viewing another user's
	// profile: "overlap" (shared organisation) or "exact" (self only).
	UserAccessPolicy string `envconfig:"USER_ACCESS_POLICY" default:"overlap"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	Debug          bool     `envconfig:"DEBUG" default:"false"`
}

// Load reads the environment-specific .env file (if present) and then
// populates Config from the environment.
func Load() (*Config, error) {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	switch env {
	case "production":
		loadEnvFile(".env.production")
	default:
		loadEnvFile(".env.local")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = devSecretPlaceholder
	}

	return &cfg, nil
}

// Validate enforces the operational preconditions. A missing signing secret
// or store in production is fatal at startup, not a per-request error.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive")
	}
	if c.IsProduction() {
		if c.JWTSecret == "" || c.JWTSecret == devSecretPlaceholder {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN must be set in production")
		}
	}
	return nil
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// loadEnvFile loads KEY=VALUE pairs from filename into the environment.
// Existing variables win; a missing file is not an error.
func loadEnvFile(filename string) {
	file, err := os.Open(filename)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if len(value) >= 2 {
			if (strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) ||
				(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
				value = value[1 : len(value)-1]
			}
		}

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
