package config

import (
	"strings"

	"github.com/jmgilman/go/fsdriver/driver"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
	defaultLogOutput = "stderr"

	// DefaultStorageName is the storage created when none is configured.
	DefaultStorageName = "fileadmin"
)

// ApplyDefaults fills in unset values. Explicit values are kept.
//
// Without any storage a local storage called "fileadmin" rooted at
// ./fileadmin is added. Without a default storage the first one is used.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)

	if len(cfg.Storages) == 0 {
		cfg.Storages = []StorageConfig{{
			Name: DefaultStorageName,
			Config: driver.Config{
				Type: driver.TypeLocal,
				Path: DefaultStorageName,
			},
		}}
	}
	for i := range cfg.Storages {
		applyStorageDefaults(&cfg.Storages[i])
	}

	if cfg.DefaultStorage == "" {
		cfg.DefaultStorage = cfg.Storages[0].Name
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = defaultLogLevel
	}
	cfg.Level = strings.ToLower(cfg.Level)
	if cfg.Format == "" {
		cfg.Format = defaultLogFormat
	}
	if cfg.Output == "" {
		cfg.Output = defaultLogOutput
	}
}

func applyStorageDefaults(s *StorageConfig) {
	if s.StorageID == "" {
		s.StorageID = s.Name
	}
	if s.Options == nil {
		s.Options = make(map[string]any)
	}
}
