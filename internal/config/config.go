package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string `validate:"required,numeric"`

	APIBaseURL string        `validate:"required,url"`
	APITimeout time.Duration `validate:"gt=0"`

	SessionBackend string        `validate:"oneof=memory redis sql"`
	SessionTTL     time.Duration `validate:"gt=0"`
	CookieSecure   bool

	RedisAddr string `validate:"required_if=SessionBackend redis"`
	RedisDB   int    `validate:"gte=0"`

	SQLDriver string `validate:"omitempty,oneof=mysql postgres"`
	SQLDSN    string `validate:"required_if=SessionBackend sql"`

	IdempTTLSecs int `validate:"gte=0"`

	CORSOrigins []string
	LogLevel    string `validate:"oneof=trace debug info warn error"`
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getDuration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := time.ParseDuration(v); err == nil {
			return n
		}
	}
	return d
}

func getInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment, after merging an optional .env file from
// the working directory. Variables already set win over the file.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:        getenv("APP_PORT", "8080"),
		APIBaseURL:     getenv("API_BASE_URL", "https://localhost:7001/api"),
		APITimeout:     getDuration("API_TIMEOUT", 15*time.Second),
		SessionBackend: getenv("SESSION_BACKEND", "memory"),
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),
		CookieSecure:   getenv("COOKIE_SECURE", "true") != "false",
		RedisAddr:      getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:        getInt("REDIS_DB", 0),
		SQLDriver:      getenv("SQL_DRIVER", "mysql"),
		SQLDSN:         os.Getenv("SQL_DSN"),
		IdempTTLSecs:   getInt("IDEMPOTENCY_TTL_SECONDS", 300),
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
	}
	for _, o := range strings.Split(getenv("CORS_ORIGINS", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			c.CORSOrigins = append(c.CORSOrigins, o)
		}
	}
	return c
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return fmt.Errorf("invalid config %s: failed %q", ve[0].Field(), ve[0].Tag())
		}
		return err
	}
	return nil
}

// IdempotencyTTL is zero when idempotency is disabled.
func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}
