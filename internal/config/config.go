package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sevigo/review-warden/internal/logger"
)

// Config holds the application's configuration values.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	GitHub     GitHubConfig     `mapstructure:"github"`
	Database   DBConfig         `mapstructure:"database"`
	Logging    logger.Config    `mapstructure:"logging"`
	MaxWorkers int              `mapstructure:"max_workers"`
	Assignment AssignmentConfig `mapstructure:"assignment"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// GitHubConfig holds GitHub App credentials and the optional personal token used by the CLI.
type GitHubConfig struct {
	AppID          int64  `mapstructure:"app_id"`
	WebhookSecret  string `mapstructure:"webhook_secret"`
	PrivateKeyPath string `mapstructure:"private_key_path"`
	Token          string `mapstructure:"token"`

	// Transient API failures are retried with Fibonacci backoff.
	MaxRetries        uint64        `mapstructure:"max_retries"`
	InitialRetryDelay time.Duration `mapstructure:"initial_retry_delay"`
	MaxRetryDelay     time.Duration `mapstructure:"max_retry_delay"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// AssignmentConfig controls what happens on GitHub after reviewers are chosen.
type AssignmentConfig struct {
	RequestReviews bool `mapstructure:"request_reviews"`
	CheckRun       bool `mapstructure:"check_run"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("github.app_id", 0)
	v.SetDefault("github.webhook_secret", "")
	v.SetDefault("github.token", "")
	v.SetDefault("github.private_key_path", "keys/review-warden.private-key.pem")
	v.SetDefault("github.max_retries", 3)
	v.SetDefault("github.initial_retry_delay", time.Second)
	v.SetDefault("github.max_retry_delay", 10*time.Second)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "warden")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "review_warden")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.conn_max_idle_time", 5*time.Minute)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("max_workers", 5)
	v.SetDefault("assignment.request_reviews", true)
	v.SetDefault("assignment.check_run", true)
}

const envFile = ".env"

// loadEnvFile exports variables from .env that are not already set in the
// process environment. A missing file is not an error.
func loadEnvFile(path string) {
	envMap, err := godotenv.Read(path)
	if err != nil {
		return
	}
	for k, val := range envMap {
		if _, exists := os.LookupEnv(k); !exists {
			_ = os.Setenv(k, val)
		}
	}
}

// LoadConfig reads config.yaml (if present), .env and RW_* environment
// variables, applies defaults and validates required fields.
func LoadConfig() (*Config, error) {
	loadEnvFile(envFile)

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/review-warden")

	v.SetEnvPrefix("RW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment")
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields every entry point depends on.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host must be set")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database.database must be set")
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must not be negative, got %d", c.MaxWorkers)
	}
	return nil
}

// ValidateServer checks the fields only the webhook server needs.
func (c *Config) ValidateServer() error {
	if c.GitHub.AppID == 0 {
		return fmt.Errorf("github.app_id must be set")
	}
	if c.GitHub.WebhookSecret == "" {
		return fmt.Errorf("github.webhook_secret must be set")
	}
	return nil
}
