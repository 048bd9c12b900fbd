package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// Logging
	LogLevel slog.Level

	// Database
	SQLiteDBPath string

	// Backend selection: "memory" or "sqlite"
	DataBackend string

	// AMQP; empty URL disables event publishing entirely
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Advisor worker
	AdvisorWindow   string
	AdvisorInterval time.Duration

	// Classifier: "keyword" or "gemini"
	ClassifierBackend string
	GeminiModel       string
}

func Load() *Config {
	return &Config{
		LogLevel: getEnvLevel("LOG_LEVEL", slog.LevelInfo),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/budgetwise.db"),
		DataBackend:  getEnv("DATA_BACKEND", "memory"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "budgetwise"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "insight_alerts"),

		AdvisorWindow:   getEnv("ADVISOR_WINDOW", "month"),
		AdvisorInterval: getEnvDuration("ADVISOR_INTERVAL", 6*time.Hour),

		ClassifierBackend: getEnv("CLASSIFIER_BACKEND", "keyword"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	switch c.DataBackend {
	case "memory", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend %q: must be memory or sqlite", c.DataBackend))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory %q: %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL %q: %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	switch c.AdvisorWindow {
	case "week", "month", "all":
	default:
		errs = append(errs, fmt.Sprintf("invalid advisor window %q: must be week, month or all", c.AdvisorWindow))
	}
	if c.AdvisorInterval < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid advisor interval %v: must be at least 1 minute", c.AdvisorInterval))
	} else if c.AdvisorInterval > 7*24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid advisor interval %v: must be at most 7 days", c.AdvisorInterval))
	}

	switch c.ClassifierBackend {
	case "keyword", "gemini":
	default:
		errs = append(errs, fmt.Sprintf("invalid classifier backend %q: must be keyword or gemini", c.ClassifierBackend))
	}
	if c.ClassifierBackend == "gemini" && c.GeminiModel == "" {
		errs = append(errs, "Gemini model name cannot be empty when using gemini classifier")
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

func getEnvLevel(key string, defaultValue slog.Level) slog.Level {
	switch strings.ToLower(os.Getenv(key)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return defaultValue
}
