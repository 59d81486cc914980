package driver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jmgilman/go/fsdriver/errors"
	"github.com/jmgilman/go/fsdriver/fs/badger"
	"github.com/jmgilman/go/fsdriver/fs/billy"
	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/fs/instrumented"
	"github.com/jmgilman/go/fsdriver/fs/minio"
	"github.com/jmgilman/go/fsdriver/fs/s3"
)

// NewBackend creates the backend cfg describes. Badger logs through logger.
func NewBackend(cfg Config, logger *zap.Logger) (core.Backend, error) {
	backend, err := newBackend(cfg, logger)
	if err != nil {
		return nil, errors.WithContext(
			errors.Wrapf(err, errors.CodeInvalidConfig, "failed to create %s backend", cfg.Type),
			"type", cfg.Type,
		)
	}
	if cfg.Metrics {
		backend = instrumented.New(backend, instrumented.DefaultMetrics(), cfg.StorageID)
	}
	return backend, nil
}

func newBackend(cfg Config, logger *zap.Logger) (core.Backend, error) {
	switch cfg.Type {
	case TypeLocal:
		return billy.NewLocal(cfg.Path)
	case TypeMemory:
		return billy.NewMemory(), nil
	case TypeMinio:
		var mc minio.Config
		if err := decode(cfg.Options, &mc); err != nil {
			return nil, fmt.Errorf("failed to decode minio options: %w", err)
		}
		return minio.New(mc)
	case TypeS3:
		var sc s3.Config
		if err := decode(cfg.Options, &sc); err != nil {
			return nil, fmt.Errorf("failed to decode s3 options: %w", err)
		}
		return s3.New(sc)
	case TypeBadger:
		bc := badger.Config{Path: cfg.Path}
		if err := decode(cfg.Options, &bc); err != nil {
			return nil, fmt.Errorf("failed to decode badger options: %w", err)
		}
		bc.Logger = logger
		return badger.New(bc)
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Type)
	}
}

// NewFromConfig decodes m, creates its backend and returns a driver for it.
// opts are applied after the settings taken from m.
func NewFromConfig(m map[string]any, opts ...Option) (*Driver, error) {
	cfg, err := DecodeConfig(m)
	if err != nil {
		return nil, err
	}
	return NewFromStorageConfig(cfg, opts...)
}

// NewFromStorageConfig creates the backend of a decoded configuration and
// returns a driver for it.
func NewFromStorageConfig(cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	caps, err := cfg.CapabilitySet()
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	backend, err := NewBackend(cfg, o.logger)
	if err != nil {
		return nil, err
	}

	all := append([]Option{
		WithStorageID(cfg.StorageID),
		WithEntryPath(cfg.EntryPath),
		WithCapabilities(caps),
	}, opts...)
	return New(backend, all...), nil
}
