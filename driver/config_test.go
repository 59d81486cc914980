package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jmgilman/go/fsdriver/errors"
	"github.com/jmgilman/go/fsdriver/fs/badger"
	"github.com/jmgilman/go/fsdriver/fs/billy"
	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/fs/instrumented"
)

func TestDecodeConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name:  "memory",
			input: map[string]any{"type": "memory"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, TypeMemory, cfg.Type)
				assert.False(t, cfg.Metrics)
			},
		},
		{
			name: "local with every field",
			input: map[string]any{
				"type":         "local",
				"path":         "/srv/files",
				"entry_path":   "/site",
				"storage_id":   "1",
				"capabilities": []any{"browsable", "public"},
				"metrics":      "true",
			},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "/srv/files", cfg.Path)
				assert.Equal(t, "/site", cfg.EntryPath)
				assert.Equal(t, "1", cfg.StorageID)
				assert.Equal(t, []string{"browsable", "public"}, cfg.Capabilities)
				assert.True(t, cfg.Metrics)
			},
		},
		{
			name:  "backend options kept raw",
			input: map[string]any{"type": "s3", "options": map[string]any{"bucket": "b", "timeout": "5s"}},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "b", cfg.Options["bucket"])
			},
		},
		{name: "missing type", input: map[string]any{}, wantErr: true},
		{name: "unknown type", input: map[string]any{"type": "ftp"}, wantErr: true},
		{name: "local without path", input: map[string]any{"type": "local"}, wantErr: true},
		{name: "unknown capability", input: map[string]any{"type": "memory", "capabilities": []string{"fly"}}, wantErr: true},
		{name: "wrong shape", input: map[string]any{"type": "memory", "options": "nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := DecodeConfig(tt.input)
			if tt.wantErr {
				requireCode(t, err, errors.CodeInvalidConfig)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestCapabilitySet(t *testing.T) {
	caps, err := Config{Type: TypeMemory}.CapabilitySet()
	require.NoError(t, err)
	assert.Equal(t, DefaultCapabilities, caps)

	caps, err = Config{Type: TypeMemory, Capabilities: []string{"writable"}}.CapabilitySet()
	require.NoError(t, err)
	assert.Equal(t, CapabilityWritable, caps)
}

func TestNewBackend(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("memory", func(t *testing.T) {
		b, err := NewBackend(Config{Type: TypeMemory}, logger)
		require.NoError(t, err)
		assert.IsType(t, &billy.Backend{}, b)
		assert.Equal(t, core.BackendTypeMemory, b.Type())
	})

	t.Run("local", func(t *testing.T) {
		b, err := NewBackend(Config{Type: TypeLocal, Path: t.TempDir()}, logger)
		require.NoError(t, err)
		assert.Equal(t, core.BackendTypeLocal, b.Type())
	})

	t.Run("badger in memory", func(t *testing.T) {
		b, err := NewBackend(Config{Type: TypeBadger, Options: map[string]any{"in_memory": true}}, logger)
		require.NoError(t, err)
		assert.IsType(t, &badger.Backend{}, b)
		require.NoError(t, b.(*badger.Backend).Close())
	})

	t.Run("metrics wraps backend", func(t *testing.T) {
		b, err := NewBackend(Config{Type: TypeMemory, Metrics: true, StorageID: "m"}, logger)
		require.NoError(t, err)
		inst, ok := b.(*instrumented.Backend)
		require.True(t, ok)
		assert.IsType(t, &billy.Backend{}, inst.Unwrap())
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		_, err := NewBackend(Config{Type: TypeS3, Options: map[string]any{"region": "eu-west-1"}}, logger)
		requireCode(t, err, errors.CodeInvalidConfig)
	})

	t.Run("minio without endpoint", func(t *testing.T) {
		_, err := NewBackend(Config{Type: TypeMinio, Options: map[string]any{"bucket": "b"}}, logger)
		requireCode(t, err, errors.CodeInvalidConfig)
	})
}

func TestNewFromConfig(t *testing.T) {
	d, err := NewFromConfig(map[string]any{
		"type":         "local",
		"path":         t.TempDir(),
		"storage_id":   "42",
		"entry_path":   "sites/main",
		"capabilities": []string{"browsable", "writable"},
	}, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	assert.Equal(t, CapabilityBrowsable|CapabilityWritable, d.Capabilities())

	id, err := d.CreateFolder("docs", "/", false)
	require.NoError(t, err)
	info, err := d.GetFolderInfoByIdentifier(id)
	require.NoError(t, err)
	assert.Equal(t, "42", info.StorageID)

	ok, err := d.Backend().IsDir("sites/main/docs")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = NewFromConfig(map[string]any{"type": "local"})
	requireCode(t, err, errors.CodeInvalidConfig)
}
