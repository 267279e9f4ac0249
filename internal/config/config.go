package config

import (
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/mongo-toolkit/internal/conn"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/paths"
	"github.com/thoreinstein/mongo-toolkit/internal/redact"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "MONGO_TOOLKIT"

// Config represents the top-level configuration structure.
type Config struct {
	Version                int                `mapstructure:"version" yaml:"version"`
	URI                    string             `mapstructure:"uri" yaml:"uri"`
	Database               string             `mapstructure:"database" yaml:"database"`
	AppName                string             `mapstructure:"app_name" yaml:"app_name"`
	ServerSelectionTimeout time.Duration      `mapstructure:"server_selection_timeout" yaml:"server_selection_timeout"`
	Options                map[string]float64 `mapstructure:"options" yaml:"options,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version:                1,
		Database:               "admin",
		AppName:                conn.DefaultAppName,
		ServerSelectionTimeout: conn.DefaultServerSelectionTimeout,
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("uri", d.URI)
	viper.SetDefault("database", d.Database)
	viper.SetDefault("app_name", d.AppName)
	viper.SetDefault("server_selection_timeout", d.ServerSelectionTimeout)
	viper.SetDefault("options", map[string]float64{})
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load; defaults apply
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// Used returns the path of the configuration file that was read, or an
// empty string when only defaults and environment apply.
func Used() string {
	return viper.ConfigFileUsed()
}

// Masked returns a copy of c safe to display: credentials in the URI are
// replaced.
func (c *Config) Masked() *Config {
	out := *c
	out.URI = redact.MaskURI(c.URI)
	return &out
}

// ConnOptions returns the connection settings of c.
func (c *Config) ConnOptions() conn.Options {
	return conn.Options{
		URI:                    c.URI,
		Database:               c.Database,
		AppName:                c.AppName,
		ServerSelectionTimeout: c.ServerSelectionTimeout,
	}
}
