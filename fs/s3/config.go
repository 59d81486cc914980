// Package s3 provides an Amazon S3 implementation of core.Backend built on
// the AWS SDK for Go v2.
package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	defaultMaxRetries        = 10
	defaultRenameConcurrency = 10
	defaultTimeout           = 30 * time.Second

	// maxDeleteBatch is the DeleteObjects request limit.
	maxDeleteBatch = 1000
)

// Config holds S3 backend configuration.
type Config struct {
	// Bucket is the S3 bucket name
	Bucket string `mapstructure:"bucket"`

	// Region is the AWS region of the bucket
	Region string `mapstructure:"region"`

	// Endpoint overrides the service endpoint (MinIO, Localstack, ...).
	// Path-style addressing is used whenever it is set.
	Endpoint string `mapstructure:"endpoint"`

	// AccessKeyID and SecretAccessKey select static credentials.
	// When empty the default credential chain is used.
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`

	// Prefix is an optional prefix for all object keys
	Prefix string `mapstructure:"prefix"`

	// ForcePathStyle enables path-style addressing without a custom endpoint
	ForcePathStyle bool `mapstructure:"force_path_style"`

	// MaxRetries bounds attempts for transient failures
	// Default: 10
	MaxRetries int `mapstructure:"max_retries"`

	// MaxRenameConcurrency limits concurrent copies during directory rename
	// Default: 10
	MaxRenameConcurrency int `mapstructure:"max_rename_concurrency"`

	// Timeout bounds every call made against the service
	// Default: 30s
	Timeout time.Duration `mapstructure:"timeout"`

	// PublicBaseURL is prepended to object keys to build public URLs.
	// When empty, virtual-hosted URLs on amazonaws.com are used.
	PublicBaseURL string `mapstructure:"public_base_url"`

	// CreateBucket creates the bucket on startup when it does not exist
	CreateBucket bool `mapstructure:"create_bucket"`

	// Client is an optional pre-configured S3 client
	Client *s3.Client `mapstructure:"-"`
}

func (c *Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if c.Client == nil && c.Region == "" {
		return fmt.Errorf("region is required when client is not provided")
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return fmt.Errorf("access key id and secret access key must be set together")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative")
	}
	if c.MaxRenameConcurrency < 0 {
		return fmt.Errorf("max rename concurrency must not be negative")
	}
	return nil
}

// newClient builds an S3 client from the configuration.
func (c *Config) newClient(ctx context.Context) (*s3.Client, error) {
	if c.Client != nil {
		return c.Client, nil
	}

	configOptions := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(c.Region),
	}

	if c.AccessKeyID != "" {
		configOptions = append(configOptions, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}

	maxRetries := c.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	configOptions = append(configOptions, awsConfig.WithRetryer(func() aws.Retryer {
		return retry.NewStandard(func(o *retry.StandardOptions) {
			o.MaxAttempts = maxRetries
		})
	}))

	cfg, err := awsConfig.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
		if c.ForcePathStyle {
			o.UsePathStyle = true
		}
	}), nil
}
