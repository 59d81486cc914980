package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct tags and the rules tags cannot express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return validateCustomRules(cfg)
}

func validateCustomRules(cfg *Config) error {
	names := make(map[string]bool, len(cfg.Storages))
	for i, s := range cfg.Storages {
		if names[s.Name] {
			return fmt.Errorf("storages[%d]: duplicate storage name %q", i, s.Name)
		}
		names[s.Name] = true
	}

	if !names[cfg.DefaultStorage] {
		return fmt.Errorf("default_storage: storage %q is not configured", cfg.DefaultStorage)
	}
	return nil
}

// formatValidationError reports the first failed field.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)", e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
