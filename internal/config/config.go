package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Auth    AuthConfig    `toml:"auth"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type StorageConfig struct {
	// Type selects the storage backend: "memory" or "redis"
	Type string `toml:"type"`
	// RedisURL is required when Type is "redis"
	RedisURL string `toml:"redis_url"`
}

type AuthConfig struct {
	// TokenSecret signs session tokens; required
	TokenSecret string `toml:"token_secret"`
	// TokenTTL bounds token lifetime ("72h"); empty means tokens never expire
	TokenTTL string `toml:"token_ttl"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{Type: "memory"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads config from the given path, expanding environment variables,
// then applies environment overrides. An empty path yields defaults plus
// overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		// Expand environment variables (${VAR} syntax)
		expanded := expandEnvVars(string(data))

		if _, err := toml.Decode(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR} with environment variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}

// applyEnvOverrides lets the environment win over the file
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("WATCHVAULT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("WATCHVAULT_STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("WATCHVAULT_REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := os.Getenv("WATCHVAULT_TOKEN_SECRET"); v != "" {
		c.Auth.TokenSecret = v
	}
	if v := os.Getenv("WATCHVAULT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks that required config fields are present and valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Storage.Type != "memory" && c.Storage.Type != "redis" {
		return fmt.Errorf("storage.type must be 'memory' or 'redis'")
	}
	if c.Storage.Type == "redis" && c.Storage.RedisURL == "" {
		return fmt.Errorf("storage.redis_url is required when storage.type is 'redis'")
	}
	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("auth.token_secret is required")
	}
	if _, err := c.TokenTTL(); err != nil {
		return fmt.Errorf("auth.token_ttl: %w", err)
	}
	return nil
}

// TokenTTL parses the configured token lifetime; zero means unbounded
func (c *Config) TokenTTL() (time.Duration, error) {
	if c.Auth.TokenTTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Auth.TokenTTL)
}
