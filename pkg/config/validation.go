package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// Uses go-playground/validator for declarative validation via struct tags,
// with additional custom validation for rules that cannot be expressed in
// tags.
//
// Note: Log level normalization is handled in ApplyDefaults, not here.
// Validation accepts both uppercase and lowercase log levels.
//
// Returns an error describing the first validation failure.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	return validateCustomRules(cfg)
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	// The filesystem store needs a base path before any operation can run.
	if cfg.Store.Type == "filesystem" {
		if path, _ := cfg.Store.Filesystem["path"].(string); path == "" {
			return fmt.Errorf("store.filesystem: path is required")
		}
	}

	// The S3 store cannot build a client without a bucket and region.
	if cfg.Store.Type == "s3" {
		if bucket, _ := cfg.Store.S3["bucket"].(string); bucket == "" {
			return fmt.Errorf("store.s3: bucket is required")
		}
		if region, _ := cfg.Store.S3["region"].(string); region == "" {
			return fmt.Errorf("store.s3: region is required")
		}
	}

	// The badger cache needs somewhere to live unless it is in-memory.
	if cfg.Cache.Type == "badger" {
		inMemory, _ := cfg.Cache.Badger["in_memory"].(bool)
		if path, _ := cfg.Cache.Badger["path"].(string); path == "" && !inMemory {
			return fmt.Errorf("cache.badger: path is required unless in_memory is set")
		}
	}

	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
