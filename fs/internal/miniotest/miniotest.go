// Package miniotest starts MinIO containers for integration tests of the
// object-store backends.
package miniotest

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// AccessKey is the root user of started containers.
	AccessKey = "minioadmin"
	// SecretKey is the root password of started containers.
	SecretKey = "minioadmin"
	// Bucket is a bucket name tests may create.
	Bucket = "test-bucket"
)

var counter atomic.Int64

// Start runs a MinIO container for the lifetime of t and returns its
// host:port endpoint. The test is skipped in short mode or when no
// container provider is available.
func Start(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     AccessKey,
			"MINIO_ROOT_PASSWORD": SecretKey,
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "failed to start MinIO container")

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get container endpoint")

	return endpoint
}

// UniquePrefix returns a key prefix no other caller in this process receives,
// so backends sharing a bucket start empty.
func UniquePrefix(name string) string {
	return fmt.Sprintf("%s-%d", name, counter.Add(1))
}
