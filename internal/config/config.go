package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"
)

const (
	defaultServerPort  = 8080
	defaultOMDbBaseURL = "https://www.omdbapi.com/"
)

// Config represents the main application configuration
type Config struct {
	// Upstream movie database
	OMDb OMDbConfig `yaml:"omdb"`

	// Web frontend
	Server ServerConfig `yaml:"server"`

	// Optional Telegram frontend
	Telegram *TelegramConfig `yaml:"telegram,omitempty"`

	// Outgoing HTTP
	HTTP HTTPConfig `yaml:"http"`

	// Application settings
	App AppConfig `yaml:"app"`
}

// OMDbConfig holds OMDb API configuration
type OMDbConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// ServerConfig holds the web server settings
type ServerConfig struct {
	Port int `yaml:"port"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string  `yaml:"bot_token"`
	AllowedUserIDs []int64 `yaml:"allowed_user_ids,omitempty"`
}

// HTTPConfig holds outgoing request settings
type HTTPConfig struct {
	// Timeout of zero keeps the transport default.
	Timeout time.Duration `yaml:"timeout"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	LogLevel string `yaml:"log_level"` // "debug", "info", "warn", "error"
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load loads configuration from a YAML file with environment variable overrides.
// A missing file is not an error: configuration may come entirely from the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides overrides config values with environment variables
func (c *Config) applyEnvOverrides() {
	// OMDb
	if v := os.Getenv("MOVIEBUDDY_OMDB_API_KEY"); v != "" {
		c.OMDb.APIKey = v
	}
	if v := os.Getenv("MOVIEBUDDY_OMDB_BASE_URL"); v != "" {
		c.OMDb.BaseURL = v
	}

	// Server
	if v := os.Getenv("MOVIEBUDDY_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}

	// Telegram
	if v := os.Getenv("MOVIEBUDDY_TELEGRAM_BOT_TOKEN"); v != "" {
		if c.Telegram == nil {
			c.Telegram = &TelegramConfig{}
		}
		c.Telegram.BotToken = v
	}
	if c.Telegram != nil {
		if v := os.Getenv("MOVIEBUDDY_TELEGRAM_ALLOWED_USER_IDS"); v != "" {
			c.Telegram.AllowedUserIDs = parseIDList(v)
		}
	}

	// HTTP
	if v := os.Getenv("MOVIEBUDDY_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTP.Timeout = d
		}
	}

	// App
	if v := os.Getenv("MOVIEBUDDY_LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}
}

// parseIDList parses a comma-separated list of Telegram user ids, skipping junk.
func parseIDList(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.OMDb.APIKey == "" {
		return errors.New("omdb.api_key is required")
	}
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = defaultOMDbBaseURL
	}
	if err := validateURL(c.OMDb.BaseURL, "omdb.base_url"); err != nil {
		return err
	}

	if c.Server.Port == 0 {
		c.Server.Port = defaultServerPort
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Telegram != nil && c.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is required")
	}

	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative, got %s", c.HTTP.Timeout)
	}

	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if _, ok := parseLevel(c.App.LogLevel); !ok {
		return fmt.Errorf("app.log_level must be one of debug, info, warn, error; got %q", c.App.LogLevel)
	}

	return nil
}

func validateURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", field)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing host", field)
	}
	return nil
}
