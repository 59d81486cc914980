package instrumented

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsdriver/fs/billy"
	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/fs/fstest"
)

// bare hides the optional capabilities of the memory backend.
type bare struct {
	core.Backend
}

func TestInstrumentedConformance(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	fstest.TestSuite(t, func() core.Backend {
		return New(billy.NewMemory(), m, "conformance")
	})
}

func TestMetricsRecorded(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	b := New(billy.NewMemory(), m, "fileadmin")

	require.NoError(t, b.Write("a.txt", []byte("hello")))
	_, err := b.Read("a.txt")
	require.NoError(t, err)
	_, err = b.Read("missing.txt")
	require.Error(t, err)
	require.Error(t, b.DeleteDir(""))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("fileadmin", "write", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("fileadmin", "read", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("fileadmin", "read", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("fileadmin", "delete_dir", "error")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.bytes.WithLabelValues("fileadmin", "write")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.bytes.WithLabelValues("fileadmin", "read")))
}

func TestMissingCapabilities(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	b := New(bare{billy.NewMemory()}, m, "bare")
	require.NoError(t, b.Write("dir/a.txt", []byte("a")))

	_, err := b.MimeType("dir/a.txt")
	assert.True(t, errors.Is(err, core.ErrUnsupported))

	_, err = b.ListRecursive("dir")
	assert.True(t, errors.Is(err, core.ErrUnsupported))

	_, ok := b.PublicURL("dir/a.txt")
	assert.False(t, ok)

	require.NoError(t, core.CopyFile(b, "dir/a.txt", "dir/b.txt"))
	data, err := b.Read("dir/b.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)

	entries, err := core.Walk(b, "")
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	assert.NoError(t, b.Close())
	assert.Equal(t, core.BackendTypeMemory, b.Type())
}

func TestDefaultMetricsSingleton(t *testing.T) {
	assert.Same(t, DefaultMetrics(), DefaultMetrics())
}
