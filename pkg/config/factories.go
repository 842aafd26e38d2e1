package config

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mitchellh/mapstructure"

	"github.com/driftfs/driftfs/internal/logger"
	"github.com/driftfs/driftfs/pkg/cache"
	cachebadger "github.com/driftfs/driftfs/pkg/cache/badger"
	cachememory "github.com/driftfs/driftfs/pkg/cache/memory"
	"github.com/driftfs/driftfs/pkg/codec"
	codecjson "github.com/driftfs/driftfs/pkg/codec/json"
	codecxdr "github.com/driftfs/driftfs/pkg/codec/xdr"
	codecyaml "github.com/driftfs/driftfs/pkg/codec/yaml"
	"github.com/driftfs/driftfs/pkg/store"
	storefs "github.com/driftfs/driftfs/pkg/store/fs"
	storememory "github.com/driftfs/driftfs/pkg/store/memory"
	stores3 "github.com/driftfs/driftfs/pkg/store/s3"
)

// Build assembles the full store configuration bundle described by cfg:
// the file store, the optional cache, the serializer, and the default
// directory.
//
// When cfg.DefaultDirectory is empty a fresh unique working directory is
// reserved on the store.
func Build(ctx context.Context, cfg *Config) (store.Configuration, error) {
	s, err := CreateFileStore(ctx, &cfg.Store)
	if err != nil {
		return store.Configuration{}, err
	}

	bundle := store.NewConfiguration(s)
	if cfg.DefaultDirectory != "" {
		bundle = bundle.WithDefaultDirectory(cfg.DefaultDirectory)
	}

	c, err := CreateCache(ctx, &cfg.Cache)
	if err != nil {
		return store.Configuration{}, err
	}
	if c != nil {
		bundle = bundle.WithCache(c)
	}

	serializer, err := CreateSerializer(&cfg.Serializer)
	if err != nil {
		return store.Configuration{}, err
	}
	bundle = bundle.WithSerializer(serializer)

	return bundle, nil
}

// CreateFileStore creates a file store based on configuration.
//
// This factory uses the Type field to determine which backend to create,
// then decodes the type-specific configuration from the corresponding map
// and passes it to the backend's constructor.
//
// Supported types:
//   - "filesystem": local filesystem storage rooted at a base directory
//   - "memory": in-process storage, ephemeral
//   - "s3": Amazon S3 or compatible object storage
func CreateFileStore(ctx context.Context, cfg *StoreConfig) (store.FileStore, error) {
	switch cfg.Type {
	case "filesystem":
		return createFilesystemStore(ctx, cfg.Filesystem)
	case "memory":
		return storememory.NewMemoryFileStore(ctx)
	case "s3":
		return createS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown file store type: %q (supported: filesystem, memory, s3)", cfg.Type)
	}
}

// createFilesystemStore creates a filesystem-backed file store.
func createFilesystemStore(ctx context.Context, options map[string]any) (store.FileStore, error) {
	type filesystemStoreConfig struct {
		Path string `mapstructure:"path"`
	}

	var storeCfg filesystemStoreConfig
	if err := mapstructure.Decode(options, &storeCfg); err != nil {
		return nil, fmt.Errorf("failed to decode filesystem store config: %w", err)
	}

	if storeCfg.Path == "" {
		return nil, fmt.Errorf("filesystem store: path is required")
	}

	s, err := storefs.NewFileSystemStore(ctx, storeCfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem store: %w", err)
	}

	return s, nil
}

// createS3Store creates an S3-backed file store.
func createS3Store(ctx context.Context, options map[string]any) (store.FileStore, error) {
	type s3StoreConfig struct {
		Region          string `mapstructure:"region"`
		Bucket          string `mapstructure:"bucket"`
		KeyPrefix       string `mapstructure:"key_prefix"`
		Endpoint        string `mapstructure:"endpoint"`
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
		PartSize        int64  `mapstructure:"part_size"`
		MaxRetries      int    `mapstructure:"max_retries"`
	}

	var storeCfg s3StoreConfig
	if err := mapstructure.Decode(options, &storeCfg); err != nil {
		return nil, fmt.Errorf("failed to decode S3 store config: %w", err)
	}

	if storeCfg.Bucket == "" {
		return nil, fmt.Errorf("S3 store: bucket is required")
	}
	if storeCfg.Region == "" {
		return nil, fmt.Errorf("S3 store: region is required")
	}

	// ========================================================================
	// Step 1: Build AWS Config
	// ========================================================================

	var configOptions []func(*awsConfig.LoadOptions) error

	configOptions = append(configOptions, awsConfig.WithRegion(storeCfg.Region))

	// Custom endpoint support for MinIO, Localstack, etc.
	if storeCfg.Endpoint != "" {
		//nolint:staticcheck // TODO: migrate to BaseEndpoint when AWS SDK v2 stabilizes the new API
		customResolver := aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				//nolint:staticcheck // TODO: migrate to BaseEndpoint when AWS SDK v2 stabilizes the new API
				return aws.Endpoint{
					URL:               storeCfg.Endpoint,
					HostnameImmutable: true,
					Source:            aws.EndpointSourceCustom,
				}, nil
			},
		)
		//nolint:staticcheck // TODO: migrate to BaseEndpoint when AWS SDK v2 stabilizes the new API
		configOptions = append(configOptions, awsConfig.WithEndpointResolverWithOptions(customResolver))
	}

	// Static credentials if provided, otherwise the default credential chain.
	if storeCfg.AccessKeyID != "" && storeCfg.SecretAccessKey != "" {
		credProvider := credentials.NewStaticCredentialsProvider(
			storeCfg.AccessKeyID,
			storeCfg.SecretAccessKey,
			"",
		)
		configOptions = append(configOptions, awsConfig.WithCredentialsProvider(credProvider))
	}

	// Retry more aggressively than the AWS default of 3; transient S3
	// failures (502, 503, timeouts) are common enough to warrant it.
	maxRetries := storeCfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 10
	}
	configOptions = append(configOptions, awsConfig.WithRetryer(func() aws.Retryer {
		return retry.NewStandard(func(o *retry.StandardOptions) {
			o.MaxAttempts = maxRetries
		})
	}))

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// ========================================================================
	// Step 2: Create S3 Client
	// ========================================================================

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		// Path-style addressing for MinIO/Localstack compatibility.
		if storeCfg.Endpoint != "" {
			o.UsePathStyle = true
		}
	})

	// ========================================================================
	// Step 3: Create S3 File Store
	// ========================================================================

	s, err := stores3.NewS3FileStore(ctx, stores3.Config{
		Client:    client,
		Bucket:    storeCfg.Bucket,
		KeyPrefix: storeCfg.KeyPrefix,
		PartSize:  storeCfg.PartSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 store: %w", err)
	}

	logger.Info("S3 store initialized: bucket=%s, region=%s, prefix=%s",
		storeCfg.Bucket, storeCfg.Region, storeCfg.KeyPrefix)

	return s, nil
}

// CreateCache creates a cache based on configuration.
//
// Supported types:
//   - "none": no cache; returns nil
//   - "memory": in-process map cache, ephemeral
//   - "badger": BadgerDB-backed cache, persistent
func CreateCache(ctx context.Context, cfg *CacheConfig) (cache.Cache, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "memory":
		return cachememory.NewMemoryCache(), nil
	case "badger":
		return createBadgerCache(ctx, cfg.Badger)
	default:
		return nil, fmt.Errorf("unknown cache type: %q (supported: none, memory, badger)", cfg.Type)
	}
}

// createBadgerCache creates a BadgerDB-backed cache.
func createBadgerCache(ctx context.Context, options map[string]any) (cache.Cache, error) {
	type badgerCacheConfig struct {
		Path     string        `mapstructure:"path"`
		InMemory bool          `mapstructure:"in_memory"`
		TTL      time.Duration `mapstructure:"ttl"`
	}

	var cacheCfg badgerCacheConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &cacheCfg,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build badger cache decoder: %w", err)
	}
	if err := decoder.Decode(options); err != nil {
		return nil, fmt.Errorf("failed to decode badger cache config: %w", err)
	}

	if cacheCfg.Path == "" && !cacheCfg.InMemory {
		return nil, fmt.Errorf("badger cache: path is required unless in_memory is set")
	}

	c, err := cachebadger.NewBadgerCache(ctx, cachebadger.Config{
		Path:     cacheCfg.Path,
		InMemory: cacheCfg.InMemory,
		TTL:      cacheCfg.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create badger cache: %w", err)
	}

	return c, nil
}

// CreateSerializer creates a serializer based on configuration.
//
// Supported formats: json, yaml, xdr.
func CreateSerializer(cfg *SerializerConfig) (codec.Serializer, error) {
	switch cfg.Format {
	case "", "json":
		return codecjson.NewSerializer(), nil
	case "yaml":
		return codecyaml.NewSerializer(), nil
	case "xdr":
		return codecxdr.NewSerializer(), nil
	default:
		return nil, fmt.Errorf("unknown serializer format: %q (supported: json, yaml, xdr)", cfg.Format)
	}
}
