// Package config loads chainalign settings from defaults, an optional YAML file,
// CHAINALIGN_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. CHAINALIGN_SERVER_ADDR.
const EnvPrefix = "CHAINALIGN"

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendFile   = "file"
)

// Config holds all configuration options for chainalign.
type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Server   ServerConfig  `mapstructure:"server"`
	Catalog  CatalogConfig `mapstructure:"catalog"`
	Store    StoreConfig   `mapstructure:"store"`
	Redis    RedisConfig   `mapstructure:"redis"`
	Service  ServiceConfig `mapstructure:"service"`
	MCP      MCPConfig     `mapstructure:"mcp"`
	Library  LibraryConfig `mapstructure:"library"`
}

// ServerConfig configures the reference session service.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Seed int64  `mapstructure:"seed"` // 0 seeds from the clock
}

// CatalogConfig selects where units come from. Path wins over URL; with neither
// the built-in catalog is used.
type CatalogConfig struct {
	Path     string        `mapstructure:"path"`
	URL      string        `mapstructure:"url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// StoreConfig selects the session store backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

// RedisConfig configures the redis store and locker.
type RedisConfig struct {
	Addr   string        `mapstructure:"addr"`
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
	Lock   bool          `mapstructure:"lock"`
}

// ServiceConfig points the client commands at a session service.
type ServiceConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MCPConfig configures the MCP server transport.
type MCPConfig struct {
	Transport string `mapstructure:"transport"` // "stdio" or "sse"
	Addr      string `mapstructure:"addr"`
	BaseURL   string `mapstructure:"base_url"`
}

// LibraryConfig locates the repository of named chain sets.
type LibraryConfig struct {
	Dir string `mapstructure:"dir"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LogLevel: "info",
		Server:   ServerConfig{Addr: ":8000"},
		Catalog:  CatalogConfig{CacheTTL: 5 * time.Minute},
		Store:    StoreConfig{Backend: BackendMemory, Dir: ".chainalign/sessions"},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "chainalign:session:",
			TTL:    24 * time.Hour,
			Lock:   true,
		},
		Service: ServiceConfig{URL: "http://localhost:8000", Timeout: 30 * time.Second},
		MCP:     MCPConfig{Transport: "stdio", Addr: ":8080", BaseURL: "http://localhost:8080"},
		Library: LibraryConfig{Dir: ".chainalign/library"},
	}
}

// New returns a viper instance primed with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()

	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.seed", d.Server.Seed)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("catalog.url", d.Catalog.URL)
	v.SetDefault("catalog.cache_ttl", d.Catalog.CacheTTL)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.dir", d.Store.Dir)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.prefix", d.Redis.Prefix)
	v.SetDefault("redis.ttl", d.Redis.TTL)
	v.SetDefault("redis.lock", d.Redis.Lock)
	v.SetDefault("service.url", d.Service.URL)
	v.SetDefault("service.timeout", d.Service.Timeout)
	v.SetDefault("mcp.transport", d.MCP.Transport)
	v.SetDefault("mcp.addr", d.MCP.Addr)
	v.SetDefault("mcp.base_url", d.MCP.BaseURL)
	v.SetDefault("library.dir", d.Library.Dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads cfgFile (or .chainalign/config.yaml when empty and present) into v and
// decodes the result. A missing default config file is not an error.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".chainalign")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no component can act on.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendRedis, BackendFile:
	default:
		return fmt.Errorf("invalid store backend %q (want memory, redis or file)", c.Store.Backend)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("invalid mcp transport %q (want stdio or sse)", c.MCP.Transport)
	}
	if c.Catalog.CacheTTL < 0 {
		return fmt.Errorf("catalog cache ttl must not be negative")
	}
	return nil
}
