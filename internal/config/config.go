package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the client configuration loaded from files and environment variables.
type Config struct {
	AppName          string        `mapstructure:"app_name"`
	Env              string        `mapstructure:"app_env"`
	LogLevel         string        `mapstructure:"log_level"`
	APIBaseURL       string        `mapstructure:"api_base_url"`
	RequestTimeoutMs int64         `mapstructure:"request_timeout_ms"`
	RequestTimeout   time.Duration `mapstructure:"-"`
	ToastDurationMs  int64         `mapstructure:"toast_duration_ms"`
	ToastDuration    time.Duration `mapstructure:"-"`
	LoginPath        string        `mapstructure:"login_path"`
	NotifiersFile    string        `mapstructure:"notifiers_file"`

	CredentialStore      string        `mapstructure:"credential_store"`
	CredentialPath       string        `mapstructure:"credential_path"`
	CredentialKey        string        `mapstructure:"credential_key"`
	CredentialTTLSeconds int64         `mapstructure:"credential_ttl_seconds"`
	CredentialTTL        time.Duration `mapstructure:"-"`
}

// legacyBaseURLKey is the variable name the browser build used for the API address.
const legacyBaseURLKey = "VITE_API_BASE_URL"

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "gallery-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "http://localhost:8080/api")
	v.SetDefault("request_timeout_ms", 10000)
	v.SetDefault("toast_duration_ms", 3000)
	v.SetDefault("login_path", "/login")
	v.SetDefault("notifiers_file", "")
	v.SetDefault("credential_store", "bbolt")
	v.SetDefault("credential_path", "./data/credentials.db")
	v.SetDefault("credential_key", "authToken")
	v.SetDefault("credential_ttl_seconds", int64((7*24*time.Hour)/time.Second))

	v.AutomaticEnv()
	if err := v.BindEnv("api_base_url", "API_BASE_URL", legacyBaseURLKey); err != nil {
		return nil, fmt.Errorf("bind api_base_url: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url is required")
	}
	if cfg.RequestTimeoutMs <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_ms (must be positive milliseconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutMs) * time.Millisecond

	if cfg.ToastDurationMs < 0 {
		return nil, fmt.Errorf("invalid toast_duration_ms (must not be negative)")
	}
	cfg.ToastDuration = time.Duration(cfg.ToastDurationMs) * time.Millisecond

	if strings.TrimSpace(cfg.CredentialKey) == "" {
		return nil, fmt.Errorf("credential_key is required")
	}
	if cfg.CredentialTTLSeconds < 0 {
		return nil, fmt.Errorf("invalid credential_ttl_seconds (must not be negative)")
	}
	cfg.CredentialTTL = time.Duration(cfg.CredentialTTLSeconds) * time.Second

	return &cfg, nil
}
