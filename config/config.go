// Package config loads service settings from defaults, a TOML file, a .env
// file and the process environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/blogem/weblog/authenticator"
	"github.com/blogem/weblog/database"
	"github.com/blogem/weblog/dispatcher"
	"github.com/blogem/weblog/identity"
)

// PathEnv names the variable holding the config file path
const PathEnv = "WEBLOG_CONFIG"

// DefaultPath is used when PathEnv is unset
const DefaultPath = "weblog.toml"

type Config struct {
	Server     ServerConfig      `toml:"server"`
	Database   DatabaseConfig    `toml:"database"`
	Auth       AuthConfig        `toml:"auth"`
	Dispatcher DispatcherConfig  `toml:"dispatcher"`
	Resolver   ResolverConfig    `toml:"resolver"`
	Log        LogConfig         `toml:"log"`
	Cache      CacheConfig       `toml:"cache"`
	Operations map[string]string `toml:"operations"`
}

type ServerConfig struct {
	Port           string        `toml:"port"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

type DatabaseConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

type AuthConfig struct {
	RequireToken bool   `toml:"require_token"`
	TokenHeader  string `toml:"token_header"`
	TokenPrefix  string `toml:"token_prefix"`
	JWTSecret    string `toml:"jwt_secret"`
	OIDCIssuer   string `toml:"oidc_issuer"`
	OIDCClientID string `toml:"oidc_client_id"`
}

type DispatcherConfig struct {
	Workers       int           `toml:"workers"`
	MaxWorkers    int           `toml:"max_workers"`
	QueueCapacity int           `toml:"queue_capacity"`
	Overflow      string        `toml:"overflow"`
	ShutdownGrace time.Duration `toml:"shutdown_grace"`
	JobTimeout    time.Duration `toml:"job_timeout"`
}

type ResolverConfig struct {
	Order []string `toml:"order"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type CacheConfig struct {
	Size int `toml:"size"`
}

func DefaultConfig() *Config {
	d := dispatcher.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			RequestTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: database.DriverSQLite,
			DSN:    "weblog.db",
		},
		Auth: AuthConfig{
			RequireToken: true,
			TokenHeader:  "Authorization",
			TokenPrefix:  "Bearer ",
		},
		Dispatcher: DispatcherConfig{
			Workers:       d.WorkerCount,
			MaxWorkers:    d.MaxWorkers,
			QueueCapacity: d.QueueCapacity,
			Overflow:      string(d.Overflow),
			ShutdownGrace: d.ShutdownGrace,
			JobTimeout:    d.JobTimeout,
		},
		Resolver: ResolverConfig{
			Order: []string{string(identity.SourceToken), string(identity.SourceForm), string(identity.SourceArgs)},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Cache: CacheConfig{
			Size: 1024,
		},
	}
}

// Load reads the config file at path, then applies .env and environment
// overrides. A missing config file or .env file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the config file path from the environment
func Path() string {
	if path := os.Getenv(PathEnv); path != "" {
		return path
	}
	return DefaultPath
}

func (c *Config) applyEnv() {
	override := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}

	override("PORT", &c.Server.Port)
	override("DATABASE_DRIVER", &c.Database.Driver)
	override("DATABASE_DSN", &c.Database.DSN)
	override("JWT_SECRET", &c.Auth.JWTSecret)
	override("OIDC_ISSUER", &c.Auth.OIDCIssuer)
	override("OIDC_CLIENT_ID", &c.Auth.OIDCClientID)
	override("LOG_LEVEL", &c.Log.Level)
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverSQLite, database.DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}

	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if c.Server.RequestTimeout < 0 {
		return errors.New("server request_timeout must not be negative")
	}

	if c.Auth.OIDCIssuer != "" && c.Auth.OIDCClientID == "" {
		return errors.New("auth oidc_client_id is required with oidc_issuer")
	}
	if c.Auth.RequireToken && c.Auth.JWTSecret == "" && c.Auth.OIDCIssuer == "" {
		return errors.New("auth require_token needs jwt_secret or oidc_issuer")
	}

	if err := c.DispatcherSettings().Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Resolver.Order))
	for _, source := range c.Resolver.Order {
		switch identity.Source(source) {
		case identity.SourceToken, identity.SourceForm, identity.SourceArgs:
		default:
			return fmt.Errorf("unknown resolver source %q", source)
		}
		if seen[source] {
			return fmt.Errorf("resolver source %q listed twice", source)
		}
		seen[source] = true
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}

	if c.Cache.Size < 0 {
		return errors.New("cache size must not be negative")
	}

	for route := range c.Operations {
		method, pattern, ok := strings.Cut(route, " ")
		if !ok || method == "" || !strings.HasPrefix(pattern, "/") {
			return fmt.Errorf("operation %q must look like \"METHOD /route\"", route)
		}
	}

	return nil
}

// DispatcherSettings converts the [dispatcher] section
func (c *Config) DispatcherSettings() dispatcher.Config {
	return dispatcher.Config{
		WorkerCount:   c.Dispatcher.Workers,
		MaxWorkers:    c.Dispatcher.MaxWorkers,
		QueueCapacity: c.Dispatcher.QueueCapacity,
		Overflow:      dispatcher.OverflowPolicy(c.Dispatcher.Overflow),
		ShutdownGrace: c.Dispatcher.ShutdownGrace,
		JobTimeout:    c.Dispatcher.JobTimeout,
	}
}

// ResolverSettings converts the [resolver] and [auth] sections
func (c *Config) ResolverSettings() identity.Config {
	order := make([]identity.Source, 0, len(c.Resolver.Order))
	for _, source := range c.Resolver.Order {
		order = append(order, identity.Source(source))
	}
	return identity.Config{
		TokenPrefix: c.Auth.TokenPrefix,
		Order:       order,
	}
}

// AuthenticatorSettings converts the [auth] section
func (c *Config) AuthenticatorSettings() authenticator.Config {
	return authenticator.Config{
		Secret:    c.Auth.JWTSecret,
		IssuerURL: c.Auth.OIDCIssuer,
		ClientID:  c.Auth.OIDCClientID,
	}
}

// NewLogger builds the process logger from the [log] section
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(c.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	if c.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
