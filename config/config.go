// Package config loads the fsdriver configuration file.
//
// A configuration names any number of storages, each decoded into a
// driver.Config, plus the logging settings of the CLI.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (FSDRIVER_*)
//  2. Configuration file (YAML)
//  3. Default values
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jmgilman/go/fsdriver/driver"
	"github.com/jmgilman/go/fsdriver/errors"
)

// EnvPrefix prefixes the environment variables that override file values.
// Example: FSDRIVER_LOGGING_LEVEL=debug
const EnvPrefix = "FSDRIVER"

// Config is the complete fsdriver configuration.
type Config struct {
	// Logging controls log output
	Logging LoggingConfig `mapstructure:"logging"`

	// DefaultStorage names the storage used when none is selected
	DefaultStorage string `mapstructure:"default_storage"`

	// Storages lists the configured storages
	Storages []StorageConfig `mapstructure:"storages" validate:"required,min=1,dive"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum level logged
	// Valid values: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Format selects the encoder
	// Valid values: json, console
	Format string `mapstructure:"format" validate:"required,oneof=json console"`

	// Output is stdout, stderr or a file path
	Output string `mapstructure:"output" validate:"required"`
}

// StorageConfig is one named storage.
type StorageConfig struct {
	// Name selects the storage on the command line
	Name string `mapstructure:"name" validate:"required"`

	driver.Config `mapstructure:",squash"`
}

// Load reads the configuration at configPath, or the default location when
// configPath is empty. A missing file is not an error: defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to unmarshal config")
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "configuration validation failed")
	}
	return &cfg, nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys must be known to viper for AutomaticEnv to apply on Unmarshal.
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.format", defaultLogFormat)
	v.SetDefault("logging.output", defaultLogOutput)
	v.SetDefault("default_storage", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(GetConfigDir())
	v.AddConfigPath(".")
	v.SetConfigName("fsdriver")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) || stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, errors.CodeInvalidConfig, "failed to read config file")
	}
	return nil
}

// GetConfigDir returns $XDG_CONFIG_HOME/fsdriver, ~/.config/fsdriver, or
// the current directory when neither can be determined.
func GetConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fsdriver")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "fsdriver")
}

// Storage returns the storage called name. An empty name selects the
// default storage.
func (c *Config) Storage(name string) (StorageConfig, error) {
	if name == "" {
		name = c.DefaultStorage
	}
	for _, s := range c.Storages {
		if s.Name == name {
			return s, nil
		}
	}
	return StorageConfig{}, errors.WithContext(
		errors.New(errors.CodeInvalidConfig, fmt.Sprintf("storage %q is not configured", name)),
		"storage", name,
	)
}

// Names returns the configured storage names in file order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Storages))
	for _, s := range c.Storages {
		names = append(names, s.Name)
	}
	return names
}
