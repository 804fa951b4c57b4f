// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slices"
)

// ErrInvalid is wrapped by the error returned from Validate.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// HTTP server
	APIURL           string
	Port             string
	GinMode          string
	CORSAllowOrigins []string
	EnablePprof      bool
	ShutdownTimeout  time.Duration

	// Logging. Empty means human readable in debug mode, JSON otherwise.
	LogFormat string

	// Storage
	DatabaseURL string
	RedisURL    string

	// Provisioned user profile
	DefaultUserName  string
	DefaultUserEmail string
}

// Load reads the configuration from the environment. Values from a .env
// file in the working directory are loaded first, but never override
// variables that are already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:           getEnv("API_URL", ""),
		Port:             getEnv("PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "release"),
		CORSAllowOrigins: strings.Fields(getEnv("CORS_ALLOW_ORIGINS", "")),
		EnablePprof:      getEnvBool("ENABLE_PPROF", false),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		LogFormat: getEnv("LOG_FORMAT", ""),

		DatabaseURL: getEnv("DATABASE_URL", "data/expense-tracker.db"),
		RedisURL:    getEnv("REDIS_URL", ""),

		DefaultUserName:  getEnv("DEFAULT_USER_NAME", "Expense Tracker User"),
		DefaultUserEmail: getEnv("DEFAULT_USER_EMAIL", "user@example.com"),
	}
}

// Validate checks the configuration and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if c.APIURL == "" {
		problems = append(problems, "API_URL must be set")
	} else if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("API_URL '%s' must be an absolute URL", c.APIURL))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	modes := []string{"debug", "release", "test"}
	if !slices.Contains(modes, c.GinMode) {
		problems = append(problems, fmt.Sprintf("invalid GIN_MODE '%s': must be one of %v", c.GinMode, modes))
	}

	formats := []string{"", "human", "json"}
	if !slices.Contains(formats, c.LogFormat) {
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT '%s': must be 'human' or 'json'", c.LogFormat))
	}

	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL cannot be empty")
	}

	if c.RedisURL != "" {
		if u, err := url.Parse(c.RedisURL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			problems = append(problems, fmt.Sprintf("invalid REDIS_URL '%s': scheme must be 'redis' or 'rediss'", c.RedisURL))
		}
	}

	if strings.TrimSpace(c.DefaultUserName) == "" {
		problems = append(problems, "DEFAULT_USER_NAME cannot be empty")
	}

	if c.DefaultUserEmail != "" {
		if _, err := mail.ParseAddress(c.DefaultUserEmail); err != nil {
			problems = append(problems, fmt.Sprintf("invalid DEFAULT_USER_EMAIL '%s'", c.DefaultUserEmail))
		}
	}

	if c.ShutdownTimeout <= 0 {
		problems = append(problems, "SHUTDOWN_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}

	return nil
}

// URL returns the parsed API_URL. Call Validate first.
func (c *Config) URL() *url.URL {
	u, _ := url.Parse(c.APIURL)
	return u
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
