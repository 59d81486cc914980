package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsdriver/errors"
)

func TestGetFileInfoByIdentifier(t *testing.T) {
	d := newDriver(t, WithStorageID("fileadmin"))
	before := time.Now().Add(-time.Second)
	_, err := d.SetFileContents("/docs/readme.txt", []byte("hello world"))
	require.NoError(t, err)

	t.Run("all properties", func(t *testing.T) {
		info, err := d.GetFileInfoByIdentifier("/docs/readme.txt")
		require.NoError(t, err)

		assert.Equal(t, AllProperties, info.Properties)
		assert.Equal(t, int64(11), info.Size)
		assert.Equal(t, "readme.txt", info.Name)
		assert.Equal(t, "/docs/readme.txt", info.Identifier)
		assert.Equal(t, "fileadmin", info.StorageID)
		assert.Equal(t, d.HashIdentifier("/docs/readme.txt"), info.IdentifierHash)
		assert.Equal(t, d.HashIdentifier("/docs/"), info.FolderHash)
		assert.Equal(t, "text/plain; charset=utf-8", info.MimeType)
		assert.True(t, info.MTime.After(before))
		assert.Equal(t, info.MTime, info.CTime)
		assert.Equal(t, info.MTime, info.ATime)
	})

	t.Run("requested properties only", func(t *testing.T) {
		info, err := d.GetFileInfoByIdentifier("docs/readme.txt", PropertyName, PropertySize)
		require.NoError(t, err)

		assert.Equal(t, []string{PropertyName, PropertySize}, info.Properties)
		assert.Equal(t, "readme.txt", info.Name)
		assert.Equal(t, int64(11), info.Size)
		assert.Empty(t, info.Identifier)
		assert.Empty(t, info.MimeType)
		assert.True(t, info.MTime.IsZero())

		assert.Equal(t, map[string]any{
			PropertyName: "readme.txt",
			PropertySize: int64(11),
		}, info.Map())
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := d.GetFileInfoByIdentifier("/docs/readme.txt", PropertyName, "owner")
		requireCode(t, err, errors.CodeInvalidArgument)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := d.GetFileInfoByIdentifier("/docs/missing.txt")
		requireCode(t, err, errors.CodeNotFound)
	})

	t.Run("folder is not a file", func(t *testing.T) {
		_, err := d.GetFileInfoByIdentifier("/docs/")
		requireCode(t, err, errors.CodeNotFound)
	})
}

func TestFileInfoMapTimes(t *testing.T) {
	ts := time.Unix(1700000000, 500)
	info := FileInfo{
		MTime:      ts,
		ATime:      ts,
		CTime:      ts,
		Properties: []string{PropertyMTime, PropertyATime, PropertyCTime, PropertyStorage},
		StorageID:  "s",
	}
	assert.Equal(t, map[string]any{
		PropertyMTime:   int64(1700000000),
		PropertyATime:   int64(1700000000),
		PropertyCTime:   int64(1700000000),
		PropertyStorage: "s",
	}, info.Map())
}
