package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{
		Store: StoreConfig{Type: "memory"},
	}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	require.NoError(t, Validate(validConfig()))
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	assert.Error(t, Validate(cfg))

	cfg.Logging.Level = "debug"
	assert.NoError(t, Validate(cfg))
}

func TestValidate_StoreType(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Type = "ftp"
	assert.Error(t, Validate(cfg))
}

func TestValidate_FilesystemRequiresPath(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Type = "filesystem"
	assert.ErrorContains(t, Validate(cfg), "path is required")

	cfg.Store.Filesystem["path"] = "/var/lib/driftfs"
	assert.NoError(t, Validate(cfg))
}

func TestValidate_S3RequiresBucketAndRegion(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Type = "s3"
	assert.ErrorContains(t, Validate(cfg), "bucket is required")

	cfg.Store.S3["bucket"] = "archive"
	assert.ErrorContains(t, Validate(cfg), "region is required")

	cfg.Store.S3["region"] = "eu-west-1"
	assert.NoError(t, Validate(cfg))
}

func TestValidate_BadgerCacheRequiresPath(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Type = "badger"
	assert.ErrorContains(t, Validate(cfg), "path is required")

	cfg.Cache.Badger["in_memory"] = true
	assert.NoError(t, Validate(cfg))
}

func TestValidate_SerializerFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Serializer.Format = "protobuf"
	assert.Error(t, Validate(cfg))

	for _, format := range []string{"json", "yaml", "xdr"} {
		cfg.Serializer.Format = format
		assert.NoError(t, Validate(cfg), "format %s should validate", format)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "filesystem", cfg.Store.Type)
	assert.Equal(t, "none", cfg.Cache.Type)
	assert.Equal(t, "json", cfg.Serializer.Format)
	assert.NotNil(t, cfg.Store.Filesystem)
	assert.NotNil(t, cfg.Store.Memory)
	assert.NotNil(t, cfg.Store.S3)
	assert.NotNil(t, cfg.Cache.Badger)
}

func TestApplyDefaults_NormalizesLevel(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "warn"}}
	ApplyDefaults(cfg)
	assert.Equal(t, "WARN", cfg.Logging.Level)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging:    LoggingConfig{Level: "ERROR", Output: "stderr"},
		Store:      StoreConfig{Type: "s3"},
		Cache:      CacheConfig{Type: "memory"},
		Serializer: SerializerConfig{Format: "xdr"},
	}
	ApplyDefaults(cfg)

	assert.Equal(t, "ERROR", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "s3", cfg.Store.Type)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, "xdr", cfg.Serializer.Format)
}
