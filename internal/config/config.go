package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Exchange rate API
	RateAPIBaseURL  string
	RateAPIKey      string
	RateFreshWindow time.Duration
	RateStaleWindow time.Duration
	RateRefreshWait time.Duration

	// AMQP (optional; empty URL disables event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8082"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/finledger.db"),

		RateAPIBaseURL:  getEnv("RATE_API_BASE_URL", "https://v6.exchangerate-api.com"),
		RateAPIKey:      getEnv("RATE_API_KEY", ""),
		RateFreshWindow: getEnvDuration("RATE_FRESH_WINDOW", 2*time.Hour),
		RateStaleWindow: getEnvDuration("RATE_STALE_WINDOW", 24*time.Hour),
		RateRefreshWait: getEnvDuration("RATE_REFRESH_WAIT", 5*time.Second),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finledger"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	}

	if parsed, err := url.Parse(c.RateAPIBaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("invalid rate API base URL '%s': %v", c.RateAPIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid rate API URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.RateFreshWindow < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid rate fresh window %v: must be at least 1 minute", c.RateFreshWindow))
	}
	if c.RateStaleWindow < c.RateFreshWindow {
		errs = append(errs, fmt.Sprintf("invalid rate stale window %v: must not be shorter than the fresh window %v",
			c.RateStaleWindow, c.RateFreshWindow))
	}
	if c.RateRefreshWait < time.Second || c.RateRefreshWait > time.Minute {
		errs = append(errs, fmt.Sprintf("invalid rate refresh wait %v: must be between 1s and 1m", c.RateRefreshWait))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
