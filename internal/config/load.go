package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// InsecureDefaultJWTSecret is the fallback signing secret used when no secret
// is configured. It exists so the service can start in local development; any
// real deployment must override it via LIBRIS_AUTH_JWT_SECRET.
const InsecureDefaultJWTSecret = "my_secret_key_123"

// Load reads configuration from environment variables (LIBRIS_ prefix) and an
// optional config.yaml in the working directory. Environment variables take
// precedence over file values. Returns a validated Config or an error.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults keep the service bootable with nothing but a database URL.
	// Every key needs a default (even an empty one): AutomaticEnv only
	// resolves keys viper already knows about, and database.url arrives
	// from the environment alone.
	v.SetDefault("database.url", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("auth.jwt_secret", InsecureDefaultJWTSecret)
	v.SetDefault("auth.token_lifetime_minutes", 30)
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("auth.protect_book_writes", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LIBRIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// UsingInsecureSecret reports whether the config still carries the built-in
// development signing secret.
func (c *Config) UsingInsecureSecret() bool {
	return c.Auth.JWTSecret == InsecureDefaultJWTSecret
}
