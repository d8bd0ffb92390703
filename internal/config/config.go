package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Token store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config aggregates runtime configuration for the console and the CLI.
// Leaf fields use split_words rather than envconfig tags: a tag would make
// TOKEN_STORE_PATH fall back to $PATH.
type Config struct {
	App    AppConfig    `envconfig:"APP"`
	API    APIConfig    `envconfig:"API"`
	Store  StoreConfig  `envconfig:"TOKEN_STORE"`
	Redis  RedisConfig  `envconfig:"REDIS"`
	Logger LoggerConfig `envconfig:"LOG"`
}

// AppConfig controls console server behavior.
type AppConfig struct {
	Name           string        `split_words:"true" default:"hr-console"`
	Env            string        `split_words:"true" default:"development"`
	Host           string        `split_words:"true" default:"127.0.0.1"`
	Port           string        `split_words:"true" default:"3000"`
	Version        string        `split_words:"true" default:"dev"`
	RequestTimeout time.Duration `split_words:"true" default:"30s"`
}

// APIConfig points the gateway at the HR backend.
type APIConfig struct {
	BaseURL   string        `split_words:"true" default:"http://localhost:5114/api"`
	LoginPath string        `split_words:"true" default:"/Authentication/Login"`
	Timeout   time.Duration `split_words:"true" default:"15s"`
}

// StoreConfig selects where the session token lives.
type StoreConfig struct {
	Backend string `split_words:"true" default:"file"`
	Path    string `split_words:"true"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr      string `split_words:"true" default:"127.0.0.1:6379"`
	Password  string `split_words:"true"`
	DB        int    `split_words:"true" default:"0"`
	KeyPrefix string `split_words:"true" default:"hr-console:session"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `split_words:"true" default:"info"`
}

// Load reads configuration from the environment (and .env when present),
// applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreFile, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("config: unknown TOKEN_STORE_BACKEND %q", c.Store.Backend)
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("config: API_BASE_URL must be an http(s) URL, got %q", c.API.BaseURL)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction returns true when the console runs in production.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// SessionFilePath returns the file token store location. Checks
// TOKEN_STORE_PATH, then HR_CONSOLE_SESSION_FILE, then
// $XDG_CONFIG_HOME/hr-console/session.json (or ~/.config).
func (s StoreConfig) SessionFilePath() string {
	if s.Path != "" {
		return s.Path
	}
	if envPath := os.Getenv("HR_CONSOLE_SESSION_FILE"); envPath != "" {
		return envPath
	}
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "hr-console-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "hr-console", "session.json")
}
