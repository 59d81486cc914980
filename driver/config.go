package driver

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/jmgilman/go/fsdriver/errors"
)

// Backend types understood by NewBackend.
const (
	TypeLocal  = "local"
	TypeMemory = "memory"
	TypeMinio  = "minio"
	TypeS3     = "s3"
	TypeBadger = "badger"
)

// Config describes one storage.
type Config struct {
	// Type selects the backend
	Type string `mapstructure:"type" validate:"required,oneof=local memory minio s3 badger"`

	// Path is the root directory of local storages and the database
	// directory of badger storages
	Path string `mapstructure:"path" validate:"required_if=Type local"`

	// EntryPath places the storage root inside the backend
	EntryPath string `mapstructure:"entry_path"`

	// StorageID is reported in file and folder information
	StorageID string `mapstructure:"storage_id"`

	// Capabilities restricts the storage. Empty keeps all capabilities.
	Capabilities []string `mapstructure:"capabilities" validate:"dive,oneof=browsable public writable"`

	// Metrics records Prometheus metrics for backend calls
	Metrics bool `mapstructure:"metrics"`

	// Options holds backend specific settings, decoded into the backend's
	// own configuration type
	Options map[string]any `mapstructure:"options"`
}

var validate = validator.New()

// decode decodes input into out, converting duration strings.
func decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	return decoder.Decode(input)
}

// DecodeConfig decodes and validates a configuration map.
func DecodeConfig(m map[string]any) (Config, error) {
	var cfg Config
	if err := decode(m, &cfg); err != nil {
		return Config{}, errors.Wrap(err, errors.CodeInvalidConfig, "failed to decode storage configuration")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(formatValidationError(err), errors.CodeInvalidConfig, "invalid storage configuration")
	}
	return nil
}

// CapabilitySet returns the configured capabilities.
func (c Config) CapabilitySet() (Capabilities, error) {
	if len(c.Capabilities) == 0 {
		return DefaultCapabilities, nil
	}
	caps, err := ParseCapabilities(c.Capabilities)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeInvalidConfig, "invalid storage configuration")
	}
	return caps, nil
}

// formatValidationError reports the first failed field.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		e := validationErrs[0]
		value := e.Value()
		if v := reflect.ValueOf(value); v.Kind() == reflect.String && v.Len() == 0 {
			value = "<empty>"
		}
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)", e.Namespace(), e.Tag(), value)
	}
	return err
}
