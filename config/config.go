package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port                   int    `yaml:"port" validate:"gt=0,lt=65536"`
	Environment            string `yaml:"environment" validate:"oneof=development production"`
	LogLevel               string `yaml:"log_level" validate:"oneof=debug info warn error"`
	ReadTimeoutSeconds     int    `yaml:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds    int    `yaml:"write_timeout_seconds" validate:"gte=0"`
	IdleTimeoutSeconds     int    `yaml:"idle_timeout_seconds" validate:"gte=0"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds" validate:"gte=0"`

	ReadTimeout     time.Duration `yaml:"-"`
	WriteTimeout    time.Duration `yaml:"-"`
	IdleTimeout     time.Duration `yaml:"-"`
	ShutdownTimeout time.Duration `yaml:"-"`
}

// IsDevelopment reports whether the service runs in the development environment.
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == "development"
}

// UpstreamConfig describes the activity API this service relays to.
// BaseAddress and ActivityPath are only checked when the live client is built.
type UpstreamConfig struct {
	UseMock                         bool   `yaml:"use_mock"`
	BaseAddress                     string `yaml:"base_address"`
	ActivityPath                    string `yaml:"activity_path"`
	HTTPProxy                       string `yaml:"http_proxy"`
	TimeoutSeconds                  int    `yaml:"timeout_seconds" validate:"gte=0"`
	PooledConnectionLifetimeMinutes int    `yaml:"pooled_connection_lifetime_minutes" validate:"gte=0"`

	Timeout                  time.Duration `yaml:"-"` // Ignored by YAML parser
	PooledConnectionLifetime time.Duration `yaml:"-"`
}

// CORSConfig holds the cross-origin allow-list.
type CORSConfig struct {
	AllowAnyOrigin bool     `yaml:"allow_any_origin"`
	AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,required"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct-level constraints of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := lookupEnv("SERVER_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		} else {
			log.Printf("ignoring SERVER_PORT=%q: %v", v, err)
		}
	}
	if v, ok := lookupEnv("UPSTREAM_USE_MOCK"); ok {
		if useMock, err := strconv.ParseBool(v); err == nil {
			cfg.Upstream.UseMock = useMock
		} else {
			log.Printf("ignoring UPSTREAM_USE_MOCK=%q: %v", v, err)
		}
	}
	if v, ok := lookupEnv("UPSTREAM_BASE_ADDRESS"); ok {
		cfg.Upstream.BaseAddress = v
	}
	if v, ok := lookupEnv("UPSTREAM_ACTIVITY_PATH"); ok {
		cfg.Upstream.ActivityPath = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Environment == "" {
		cfg.Server.Environment = "production"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 15
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 60
	}
	if cfg.Server.ShutdownTimeoutSeconds <= 0 {
		cfg.Server.ShutdownTimeoutSeconds = 5
	}
	cfg.Server.ReadTimeout = seconds(cfg.Server.ReadTimeoutSeconds)
	cfg.Server.WriteTimeout = seconds(cfg.Server.WriteTimeoutSeconds)
	cfg.Server.IdleTimeout = seconds(cfg.Server.IdleTimeoutSeconds)
	cfg.Server.ShutdownTimeout = seconds(cfg.Server.ShutdownTimeoutSeconds)

	if cfg.Upstream.TimeoutSeconds <= 0 {
		cfg.Upstream.TimeoutSeconds = 10
	}
	cfg.Upstream.Timeout = seconds(cfg.Upstream.TimeoutSeconds)

	if cfg.Upstream.PooledConnectionLifetimeMinutes <= 0 {
		cfg.Upstream.PooledConnectionLifetimeMinutes = 15
	}
	cfg.Upstream.PooledConnectionLifetime = time.Duration(cfg.Upstream.PooledConnectionLifetimeMinutes) * time.Minute
}

func lookupEnv(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value, true
	}
	return "", false
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
