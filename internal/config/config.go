// Package config loads the server configuration. Values are layered:
// built-in defaults, then an optional YAML file, then FINTRACK_* environment
// variables. A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

const envPrefix = "FINTRACK_"

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPPort          int            `koanf:"http_port"`
	AllowedOrigins    []string       `koanf:"allowed_origins"`
	LogLevel          string         `koanf:"log_level"`
	Backend           string         `koanf:"backend"`
	Workers           int            `koanf:"workers"`
	RecurringInterval time.Duration  `koanf:"recurring_interval"`
	MigrationsPath    string         `koanf:"migrations_path"`
	Postgres          PostgresConfig `koanf:"postgres"`
	AMQP              AMQPConfig     `koanf:"amqp"`
}

type PostgresConfig struct {
	Address  string `koanf:"address"`
	Port     string `koanf:"port"`
	DB       string `koanf:"db"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`
}

// AMQPConfig points at the broker transaction events are published to. An
// empty URL turns publishing off.
type AMQPConfig struct {
	URL      string `koanf:"url"`
	Exchange string `koanf:"exchange"`
}

// In all cases the defaults match the docker compose setup.
func defaults() map[string]any {
	return map[string]any{
		"http_port":          8080,
		"allowed_origins":    []string{"http://localhost:5173"},
		"log_level":          "info",
		"backend":            BackendPostgres,
		"workers":            4,
		"recurring_interval": "1h",
		"migrations_path":    "file://migrations",
		"postgres.address":   "localhost",
		"postgres.port":      "5433",
		"postgres.db":        "postgres",
		"postgres.username":  "postgres",
		"postgres.password":  "testpassword",
		"postgres.sslmode":   "disable",
		"amqp.exchange":      "fintrack.transactions",
	}
}

// Load reads the configuration. path names an optional YAML file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// listKeys are read from the environment as comma separated lists.
var listKeys = map[string]bool{
	"allowed_origins": true,
}

// envKey maps FINTRACK_POSTGRES__ADDRESS to postgres.address.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func envValue(key, value string) (string, any) {
	key = envKey(key)
	if !listKeys[key] {
		return key, value
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("http_port %d out of range", c.HTTPPort))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Workers < 1 {
		errs = append(errs, errors.New("workers must be at least 1"))
	}
	if c.RecurringInterval < 0 {
		errs = append(errs, errors.New("recurring_interval must not be negative"))
	}

	switch c.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Postgres.Address == "" {
			errs = append(errs, errors.New("postgres.address is required"))
		}
		if c.Postgres.DB == "" {
			errs = append(errs, errors.New("postgres.db is required"))
		}
		if c.Postgres.Username == "" {
			errs = append(errs, errors.New("postgres.username is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}

	if c.AMQP.URL != "" && c.AMQP.Exchange == "" {
		errs = append(errs, errors.New("amqp.exchange is required when amqp.url is set"))
	}

	return errors.Join(errs...)
}

// PostgresDSN builds the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Postgres.Username, c.Postgres.Password),
		Host:     net.JoinHostPort(c.Postgres.Address, c.Postgres.Port),
		Path:     "/" + c.Postgres.DB,
		RawQuery: url.Values{"sslmode": {c.Postgres.SSLMode}}.Encode(),
	}
	return u.String()
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
