package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration of the route generator binary.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	OpenRoute OpenRouteConfig `mapstructure:"openroute"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	// 0.0.0.0 for Docker, 127.0.0.1 for local
	Address         string        `mapstructure:"address"`
	Port            int           `mapstructure:"port"`
	BasePath        string        `mapstructure:"base_path"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// OpenRouteConfig configures the isochrone and directions services.
type OpenRouteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Profile string        `mapstructure:"profile"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	MaxVariants int `mapstructure:"max_variants"`

	// Decimal places cache keys are rounded to; -1 keeps exact keys
	KeyPrecision int `mapstructure:"key_precision"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from defaults, an optional config.yaml and the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_path", "/api")
	v.SetDefault("server.read_timeout", 10*time.Second)
	// Generation makes two upstream calls, so writes need more room than reads
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("openroute.base_url", "https://api.openrouteservice.org")
	v.SetDefault("openroute.api_key", "")
	v.SetDefault("openroute.profile", "foot-walking")
	v.SetDefault("openroute.timeout", 30*time.Second)
	v.SetDefault("cache.max_variants", 6)
	v.SetDefault("cache.key_precision", 6)
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// OUTANDBACK_OPENROUTE_API_KEY -> openroute.api_key
	v.SetEnvPrefix("OUTANDBACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		errs = append(errs, "server.base_path must start with /")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.OpenRoute.BaseURL == "" {
		errs = append(errs, "openroute.base_url is required")
	}
	if c.OpenRoute.Profile == "" {
		errs = append(errs, "openroute.profile is required")
	}
	if c.OpenRoute.Timeout <= 0 {
		errs = append(errs, "openroute.timeout must be positive")
	}
	if c.Cache.MaxVariants <= 0 {
		errs = append(errs, fmt.Sprintf("cache.max_variants must be positive, got %d", c.Cache.MaxVariants))
	}
	if c.Cache.KeyPrecision < -1 || c.Cache.KeyPrecision > 12 {
		errs = append(errs, fmt.Sprintf("cache.key_precision must be -1 (exact) or 0-12, got %d", c.Cache.KeyPrecision))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Address, s.Port)
}
