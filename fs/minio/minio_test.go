package minio

import (
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/fs/minio/internal/errs"
)

// TestConfigValidation tests Config.validate() with various scenarios.
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config with credentials",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
		},
		{
			name: "valid config with client",
			config: Config{
				Client: &minio.Client{},
				Bucket: "test-bucket",
			},
		},
		{
			name: "missing bucket",
			config: Config{
				Endpoint:  "localhost:9000",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "bucket is required",
		},
		{
			name: "missing endpoint without client",
			config: Config{
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "endpoint is required when client is not provided",
		},
		{
			name: "missing access key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "access key is required when client is not provided",
		},
		{
			name: "missing secret key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "secret key is required when client is not provided",
		},
		{
			name: "negative rename concurrency",
			config: Config{
				Client:               &minio.Client{},
				Bucket:               "test-bucket",
				MaxRenameConcurrency: -1,
			},
			wantErr: true,
			errMsg:  "max rename concurrency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestNew tests the New constructor.
func TestNew(t *testing.T) {
	t.Run("invalid config returns error", func(t *testing.T) {
		b, err := New(Config{Endpoint: "localhost:9000"})
		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("defaults", func(t *testing.T) {
		b, err := New(Config{Client: &minio.Client{}, Bucket: "test-bucket"})
		require.NoError(t, err)
		assert.Equal(t, "test-bucket", b.bucket)
		assert.Equal(t, "", b.layout.Prefix())
		assert.Equal(t, uint64(defaultPartSize), b.partSize)
		assert.Equal(t, defaultRenameConcurrency, b.renameConcurrency)
		assert.Equal(t, defaultTimeout, b.timeout)
		assert.Equal(t, core.BackendTypeRemote, b.Type())
	})

	t.Run("overrides", func(t *testing.T) {
		b, err := New(Config{
			Client:               &minio.Client{},
			Bucket:               "test-bucket",
			Prefix:               "/tenant/files/",
			MultipartThreshold:   64 * 1024 * 1024,
			MaxRenameConcurrency: 3,
			Timeout:              5 * time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, "tenant/files", b.layout.Prefix())
		assert.Equal(t, uint64(64*1024*1024), b.partSize)
		assert.Equal(t, 3, b.renameConcurrency)
		assert.Equal(t, 5*time.Second, b.timeout)
	})

	t.Run("builds client from credentials", func(t *testing.T) {
		b, err := New(Config{
			Endpoint:  "localhost:9000",
			Bucket:    "test-bucket",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
		})
		require.NoError(t, err)
		require.NotNil(t, b.client)
	})
}

func TestPublicURL(t *testing.T) {
	t.Run("path style on endpoint", func(t *testing.T) {
		b, err := New(Config{
			Endpoint:  "localhost:9000",
			Bucket:    "assets",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Prefix:    "site",
		})
		require.NoError(t, err)

		url, ok := b.PublicURL("img/logo.png")
		require.True(t, ok)
		assert.Equal(t, "http://localhost:9000/assets/site/img/logo.png", url)
	})

	t.Run("public base url", func(t *testing.T) {
		b, err := New(Config{
			Client:        &minio.Client{},
			Bucket:        "assets",
			PublicBaseURL: "https://cdn.example.com/",
		})
		require.NoError(t, err)

		url, ok := b.PublicURL("/a.txt")
		require.True(t, ok)
		assert.Equal(t, "https://cdn.example.com/a.txt", url)
	})

	t.Run("root has no url", func(t *testing.T) {
		b, err := New(Config{Client: &minio.Client{}, Bucket: "assets", PublicBaseURL: "https://cdn"})
		require.NoError(t, err)

		_, ok := b.PublicURL("/")
		assert.False(t, ok)
	})
}

func TestTranslateError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, errs.Translate(nil))
	})

	t.Run("NoSuchKey maps to ErrNotExist", func(t *testing.T) {
		err := errs.Translate(minio.ErrorResponse{Code: "NoSuchKey"})
		assert.ErrorIs(t, err, core.ErrNotExist)
	})

	t.Run("NoSuchBucket maps to ErrNotExist", func(t *testing.T) {
		err := errs.Translate(minio.ErrorResponse{Code: "NoSuchBucket"})
		assert.ErrorIs(t, err, core.ErrNotExist)
	})

	t.Run("AccessDenied maps to ErrPermission", func(t *testing.T) {
		err := errs.Translate(minio.ErrorResponse{Code: "AccessDenied"})
		assert.ErrorIs(t, err, core.ErrPermission)
	})

	t.Run("other MinIO errors are wrapped", func(t *testing.T) {
		err := errs.Translate(minio.ErrorResponse{Code: "InternalError", Message: "Something went wrong"})
		assert.Contains(t, err.Error(), "minio:")
		assert.Contains(t, err.Error(), "Something went wrong")
	})

	t.Run("path errors", func(t *testing.T) {
		err := errs.PathError("read", "a.txt", core.ErrNotExist)
		assert.ErrorIs(t, err, core.ErrNotExist)
		assert.Nil(t, errs.PathError("read", "a.txt", nil))
		assert.Contains(t, errs.PathErrorf("rename", "a", "bad %s", "move").Error(), "bad move")
	})
}
