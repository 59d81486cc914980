// Package minio provides a MinIO/S3-compatible implementation of core.Backend.
package minio

import (
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
)

const (
	defaultPartSize          = 16 * 1024 * 1024
	defaultRenameConcurrency = 10
	defaultTimeout           = 30 * time.Second
)

// Config holds MinIO backend configuration.
type Config struct {
	// Endpoint is the MinIO server address (e.g., "localhost:9000")
	Endpoint string `mapstructure:"endpoint"`

	// Bucket is the S3 bucket name
	Bucket string `mapstructure:"bucket"`

	// AccessKey is the access key ID for authentication
	AccessKey string `mapstructure:"access_key"`

	// SecretKey is the secret access key for authentication
	SecretKey string `mapstructure:"secret_key"`

	// UseSSL enables HTTPS connections
	UseSSL bool `mapstructure:"use_ssl"`

	// Region is the bucket region; empty lets the client discover it
	Region string `mapstructure:"region"`

	// Prefix is an optional prefix for all object keys (for namespacing)
	Prefix string `mapstructure:"prefix"`

	// Client is an optional pre-configured MinIO client
	// If provided, Endpoint/AccessKey/SecretKey are ignored
	Client *minio.Client `mapstructure:"-"`

	// MultipartThreshold is the part size used for multipart uploads
	// Default: 16MB
	MultipartThreshold int64 `mapstructure:"multipart_threshold"`

	// MaxRenameConcurrency limits concurrent copies during directory rename
	// Default: 10
	MaxRenameConcurrency int `mapstructure:"max_rename_concurrency"`

	// Timeout bounds every call made against the server
	// Default: 30s
	Timeout time.Duration `mapstructure:"timeout"`

	// PublicBaseURL is prepended to object keys to build public URLs.
	// When empty, path-style URLs on Endpoint are used.
	PublicBaseURL string `mapstructure:"public_base_url"`

	// CreateBucket creates the bucket on startup when it does not exist
	CreateBucket bool `mapstructure:"create_bucket"`
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + Bucket + AccessKey + SecretKey) must be provided.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if c.MultipartThreshold < 0 {
		return fmt.Errorf("multipart threshold must not be negative")
	}
	if c.MaxRenameConcurrency < 0 {
		return fmt.Errorf("max rename concurrency must not be negative")
	}

	if c.Client != nil {
		return nil
	}

	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return fmt.Errorf("access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is required when client is not provided")
	}

	return nil
}
