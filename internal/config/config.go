package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address   string `mapstructure:"address"`
	Port      int    `mapstructure:"port"`
	Mode      string `mapstructure:"mode"`
	Templates string `mapstructure:"templates"`
	Static    string `mapstructure:"static"`
}

// BackendConfig selects where investments are persisted: "remote" for the
// document store, "local" for the single-key blob.
type BackendConfig struct {
	Kind string `mapstructure:"kind"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type RemoteConfig struct {
	ETFCollection   string `mapstructure:"etf_collection"`
	StockCollection string `mapstructure:"stock_collection"`
}

type LocalConfig struct {
	Dir           string `mapstructure:"dir"`
	Key           string `mapstructure:"key"`
	EncryptionKey string `mapstructure:"encryption_key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Remote    RemoteConfig    `mapstructure:"remote"`
	Local     LocalConfig     `mapstructure:"local"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

const (
	BackendRemote = "remote"
	BackendLocal  = "local"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.templates", "web/templates/*")
	v.SetDefault("server.static", "./web/static")

	v.SetDefault("backend.kind", BackendRemote)

	v.SetDefault("database.path", "data/investments.db")
	v.SetDefault("database.log_mode", false)

	v.SetDefault("remote.etf_collection", "Etfs")
	v.SetDefault("remote.stock_collection", "Acciones")

	v.SetDefault("local.dir", "data/local")
	v.SetDefault("local.key", "investments")
	v.SetDefault("local.encryption_key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("rate_limit.rps", 20)
	v.SetDefault("rate_limit.burst", 40)
}

// Load reads the configuration file at path ("config.yaml" in the working
// directory when empty). A missing file is fine: defaults apply, then
// environment overrides such as INVEST_SERVER_PORT=9000. A .env file in the
// working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("INVEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	c.Backend.Kind = strings.ToLower(strings.TrimSpace(c.Backend.Kind))
	switch c.Backend.Kind {
	case BackendRemote, BackendLocal:
	default:
		return fmt.Errorf("backend.kind must be %q or %q, got %q", BackendRemote, BackendLocal, c.Backend.Kind)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Remote.ETFCollection == c.Remote.StockCollection {
		return fmt.Errorf("remote collections must differ, both are %q", c.Remote.ETFCollection)
	}
	return nil
}
