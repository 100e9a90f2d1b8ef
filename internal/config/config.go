package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap/zapcore"
)

// ConfigPathEnv names the environment variable holding an optional YAML config path.
const ConfigPathEnv = "PROJTRACK_CONFIG_PATH"

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Dataset DatasetConfig `yaml:"dataset"`
	Log     LogConfig     `yaml:"log"`
	MCP     MCPConfig     `yaml:"mcp"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" env:"PROJTRACK_SERVER_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"PROJTRACK_SERVER_PORT" env-default:"8000"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"PROJTRACK_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// StoreConfig selects the query backend. "memory" scans the generated slice;
// "sqlite" loads it into a SQLite database at DSN.
type StoreConfig struct {
	Driver string `yaml:"driver" env:"PROJTRACK_STORE_DRIVER" env-default:"memory"`
	DSN    string `yaml:"dsn" env:"PROJTRACK_STORE_DSN" env-default:":memory:"`
}

// DatasetConfig controls generation. A zero seed picks a random one.
type DatasetConfig struct {
	Count       int    `yaml:"count" env:"PROJTRACK_DATASET_COUNT" env-default:"50"`
	Seed        uint64 `yaml:"seed" env:"PROJTRACK_DATASET_SEED" env-default:"0"`
	CatalogPath string `yaml:"catalog_path" env:"PROJTRACK_CATALOG_PATH"`
}

// LogConfig controls logging. Logs go to stderr unless Path is set, in
// which case they go to a size-capped file.
type LogConfig struct {
	Level  string `yaml:"level" env:"PROJTRACK_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"PROJTRACK_LOG_FORMAT" env-default:"json"`
	Path   string `yaml:"path" env:"PROJTRACK_LOG_PATH"`
}

// MCPConfig controls the MCP endpoint, which is served unless disabled.
type MCPConfig struct {
	Disabled bool `yaml:"disabled" env:"PROJTRACK_MCP_DISABLED"`
}

// Load reads configuration from an optional YAML file and environment
// variables. An empty path falls back to PROJTRACK_CONFIG_PATH; environment
// variables override file values.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %s", c.Server.ShutdownTimeout)
	}
	switch c.Store.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("invalid store driver %q", c.Store.Driver)
	}
	if c.Dataset.Count < 0 {
		return fmt.Errorf("invalid dataset count %d", c.Dataset.Count)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
