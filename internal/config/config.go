// Package config loads the marketplace service configuration from a YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Duration adds YAML and env decoding of Go duration strings like "15s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Decode implements envdecode.Decoder.
func (d *Duration) Decode(raw string) error {
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full service configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Storage      StorageConfig      `yaml:"storage"`
	Seed         SeedConfig         `yaml:"seed"`
	Celebrations CelebrationsConfig `yaml:"celebrations"`
	Remote       RemoteConfig       `yaml:"remote"`
	LogLevel     string             `yaml:"log_level" env:"LOG_LEVEL"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host              string        `yaml:"host" env:"SERVER_HOST"`
	Port              int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout       Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout      Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	CORSOrigins       []string      `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
	RequestsPerSecond int           `yaml:"requests_per_second" env:"SERVER_REQUESTS_PER_SECOND"`
	RateBurst         int           `yaml:"rate_burst" env:"SERVER_RATE_BURST"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	// Backend is one of "memory", "file", "redis", "postgres".
	Backend string `yaml:"backend" env:"STORAGE_BACKEND"`

	FileDir string `yaml:"file_dir" env:"STORAGE_FILE_DIR"`

	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`

	PostgresDSN string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
}

// SeedConfig points at the optional JSON fixture files loaded at startup.
type SeedConfig struct {
	AppsFile        string `yaml:"apps_file" env:"SEED_APPS_FILE"`
	DealsFile       string `yaml:"deals_file" env:"SEED_DEALS_FILE"`
	SubmissionsFile string `yaml:"submissions_file" env:"SEED_SUBMISSIONS_FILE"`
}

// CelebrationsConfig configures the background celebration evaluator.
type CelebrationsConfig struct {
	Schedule string `yaml:"schedule" env:"CELEBRATIONS_SCHEDULE"`
}

// RemoteConfig configures the optional upstream marketplace API.
type RemoteConfig struct {
	BaseURL string        `yaml:"base_url" env:"REMOTE_BASE_URL"`
	Timeout Duration `yaml:"timeout" env:"REMOTE_TIMEOUT"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       Duration(15 * time.Second),
			WriteTimeout:      Duration(15 * time.Second),
			ShutdownTimeout:   Duration(10 * time.Second),
			CORSOrigins:       []string{"*"},
			RequestsPerSecond: 50,
			RateBurst:         100,
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
		Celebrations: CelebrationsConfig{
			Schedule: "@every 1m",
		},
		Remote: RemoteConfig{
			Timeout: Duration(30 * time.Second),
		},
		LogLevel: "info",
	}
}

// Load reads the configuration file at path, then applies environment
// variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, falling back to defaults plus
// environment overrides when the file is missing.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	cfg := Default()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if err := envdecode.Decode(cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	switch c.Storage.Backend {
	case "memory":
	case "file":
		if c.Storage.FileDir == "" {
			return fmt.Errorf("storage backend %q requires file_dir", c.Storage.Backend)
		}
	case "redis":
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage backend %q requires redis_addr", c.Storage.Backend)
		}
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage backend %q requires postgres_dsn", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// ListenAddr formats the host and port for net.Listen.
func (c *ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
