package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Auth     AuthConfig
	AI       AIConfig
	Wizard   WizardConfig
	History  HistoryConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// AuthConfig groups the profile session settings.
type AuthConfig struct {
	Session SessionConfig
}

// SessionConfig controls the session cookie binding a browser to its wizard.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// AIConfig describes how to reach the analysis and image generation service.
type AIConfig struct {
	APIKey     string
	Model      string
	ImageModel string
	BaseURL    string
}

// WizardConfig bounds the external calls made by the decoration wizard.
type WizardConfig struct {
	AnalysisTimeout  time.Duration
	VariationTimeout time.Duration
	MaxImageBytes    int
}

// HistoryConfig sizes the per-owner history record.
type HistoryConfig struct {
	Limit    int
	MaxBytes int
}

const (
	defaultAnalysisTimeout  = 2 * time.Minute
	defaultVariationTimeout = 3 * time.Minute
	defaultMaxImageBytes    = 10 << 20
	defaultHistoryLimit     = 5
	defaultHistoryMaxBytes  = 4 << 20
)

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 0),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 0),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 0),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 0),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
	}

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	cfg.Auth = AuthConfig{
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
			CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "lumina_session"),
			CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
			CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), true),
		},
	}

	cfg.AI = AIConfig{
		APIKey: firstNonEmpty(
			os.Getenv("OPENAI_API_KEY"),
			os.Getenv("API_KEY"),
			"",
		),
		Model:      strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
		ImageModel: strings.TrimSpace(os.Getenv("OPENAI_IMAGE_MODEL")),
		BaseURL:    strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
	}

	cfg.Wizard = WizardConfig{
		AnalysisTimeout:  parseDurationWithDefault(os.Getenv("ANALYSIS_TIMEOUT"), defaultAnalysisTimeout),
		VariationTimeout: parseDurationWithDefault(os.Getenv("VARIATION_TIMEOUT"), defaultVariationTimeout),
		MaxImageBytes:    parseIntWithDefault(os.Getenv("MAX_IMAGE_BYTES"), defaultMaxImageBytes),
	}

	cfg.History = HistoryConfig{
		Limit:    parseIntWithDefault(os.Getenv("HISTORY_LIMIT"), defaultHistoryLimit),
		MaxBytes: parseIntWithDefault(os.Getenv("HISTORY_MAX_BYTES"), defaultHistoryMaxBytes),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.History.Limit <= 0 {
		return Config{}, fmt.Errorf("history limit must be positive, got %d", cfg.History.Limit)
	}
	if cfg.Wizard.MaxImageBytes <= 0 {
		return Config{}, fmt.Errorf("max image bytes must be positive, got %d", cfg.Wizard.MaxImageBytes)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
