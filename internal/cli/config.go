package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Cache and store backend names accepted in config files.
const (
	backendFile   = "file"
	backendRedis  = "redis"
	backendNone   = "none"
	backendMemory = "memory"
	backendMongo  = "mongo"
)

// Config is the on-disk CLI configuration, read from
// ~/.config/heatsheet/config.toml. Every field has a working default;
// a missing file is not an error.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Render RenderConfig `toml:"render"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	Metrics bool   `toml:"metrics"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // file, redis, none
	Dir      string `toml:"dir"`     // file backend; empty means XDG default
	Addr     string `toml:"addr"`    // redis backend
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects the sheet store backend.
type StoreConfig struct {
	Backend    string `toml:"backend"` // memory, mongo
	URI        string `toml:"uri"`     // mongo backend
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// RenderConfig holds default draw options.
type RenderConfig struct {
	Format   string `toml:"format"`
	Document bool   `toml:"document"`
	Title    string `toml:"title"`
	Plain    bool   `toml:"plain"`
	Indent   bool   `toml:"indent"`
}

// defaultConfig returns a config with all defaults applied.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080", Metrics: true},
		Cache:  CacheConfig{Backend: backendFile},
		Store:  StoreConfig{Backend: backendMemory},
	}
}

// loadConfig reads the config file at path, or the default location
// when path is empty. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	switch cfg.Cache.Backend {
	case "", backendFile, backendRedis, backendNone:
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be 'file', 'redis', or 'none')", cfg.Cache.Backend)
	}
	switch cfg.Store.Backend {
	case "", backendMemory, backendMongo:
	default:
		return nil, fmt.Errorf("unknown store backend %q (must be 'memory' or 'mongo')", cfg.Store.Backend)
	}
	return cfg, nil
}
