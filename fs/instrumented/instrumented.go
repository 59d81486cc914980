package instrumented

import (
	"io"
	"time"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// Compile-time interface checks.
var (
	_ core.Backend          = (*Backend)(nil)
	_ core.RecursiveLister  = (*Backend)(nil)
	_ core.MimeTypeDetector = (*Backend)(nil)
	_ core.PublicURLer      = (*Backend)(nil)
	_ core.Copier           = (*Backend)(nil)
	_ io.Closer             = (*Backend)(nil)
)

// Backend records metrics around an inner backend.
//
// It implements every optional capability. Capabilities the inner backend
// lacks report core.ErrUnsupported (or false for PublicURL), which callers
// treat as absent.
type Backend struct {
	inner   core.Backend
	metrics *Metrics
	storage string
}

// New wraps inner. storage labels every sample.
func New(inner core.Backend, metrics *Metrics, storage string) *Backend {
	return &Backend{inner: inner, metrics: metrics, storage: storage}
}

// Unwrap returns the wrapped backend.
func (b *Backend) Unwrap() core.Backend {
	return b.inner
}

func (b *Backend) done(op string, start time.Time, err error) {
	b.metrics.observe(b.storage, op, start, err)
}

// Type returns the inner backend's type.
func (b *Backend) Type() core.BackendType {
	return b.inner.Type()
}

// The core.Backend methods below delegate to the inner backend and record
// one sample each.

func (b *Backend) Exists(p string) (ok bool, err error) {
	defer func(start time.Time) { b.done("exists", start, err) }(time.Now())
	return b.inner.Exists(p)
}

func (b *Backend) Metadata(p string) (e core.Entry, err error) {
	defer func(start time.Time) { b.done("metadata", start, err) }(time.Now())
	return b.inner.Metadata(p)
}

func (b *Backend) IsDir(p string) (ok bool, err error) {
	defer func(start time.Time) { b.done("is_dir", start, err) }(time.Now())
	return b.inner.IsDir(p)
}

func (b *Backend) IsFile(p string) (ok bool, err error) {
	defer func(start time.Time) { b.done("is_file", start, err) }(time.Now())
	return b.inner.IsFile(p)
}

func (b *Backend) Read(p string) (data []byte, err error) {
	defer func(start time.Time) {
		b.done("read", start, err)
		if err == nil {
			b.metrics.addBytes(b.storage, "read", len(data))
		}
	}(time.Now())
	return b.inner.Read(p)
}

func (b *Backend) Write(p string, data []byte) (err error) {
	defer func(start time.Time) {
		b.done("write", start, err)
		if err == nil {
			b.metrics.addBytes(b.storage, "write", len(data))
		}
	}(time.Now())
	return b.inner.Write(p, data)
}

func (b *Backend) Delete(p string) (err error) {
	defer func(start time.Time) { b.done("delete", start, err) }(time.Now())
	return b.inner.Delete(p)
}

func (b *Backend) CreateDir(p string) (err error) {
	defer func(start time.Time) { b.done("create_dir", start, err) }(time.Now())
	return b.inner.CreateDir(p)
}

func (b *Backend) DeleteDir(p string) (err error) {
	defer func(start time.Time) { b.done("delete_dir", start, err) }(time.Now())
	return b.inner.DeleteDir(p)
}

func (b *Backend) List(p string) (entries []core.Entry, err error) {
	defer func(start time.Time) { b.done("list", start, err) }(time.Now())
	return b.inner.List(p)
}

func (b *Backend) Rename(oldPath, newPath string) (err error) {
	defer func(start time.Time) { b.done("rename", start, err) }(time.Now())
	return b.inner.Rename(oldPath, newPath)
}

func (b *Backend) Size(p string) (n int64, err error) {
	defer func(start time.Time) { b.done("size", start, err) }(time.Now())
	return b.inner.Size(p)
}

// ListRecursive delegates to the inner RecursiveLister.
func (b *Backend) ListRecursive(p string) (entries []core.Entry, err error) {
	defer func(start time.Time) { b.done("list_recursive", start, err) }(time.Now())
	rl, ok := b.inner.(core.RecursiveLister)
	if !ok {
		return nil, core.PathError("walk", p, core.ErrUnsupported)
	}
	return rl.ListRecursive(p)
}

// MimeType delegates to the inner MimeTypeDetector.
func (b *Backend) MimeType(p string) (mtype string, err error) {
	defer func(start time.Time) { b.done("mimetype", start, err) }(time.Now())
	d, ok := b.inner.(core.MimeTypeDetector)
	if !ok {
		return "", core.PathError("mimetype", p, core.ErrUnsupported)
	}
	return d.MimeType(p)
}

// Copy delegates to the inner Copier.
func (b *Backend) Copy(srcPath, dstPath string) (err error) {
	defer func(start time.Time) { b.done("copy", start, err) }(time.Now())
	c, ok := b.inner.(core.Copier)
	if !ok {
		return core.PathError("copy", srcPath, core.ErrUnsupported)
	}
	return c.Copy(srcPath, dstPath)
}

// PublicURL delegates to the inner PublicURLer. It is not measured.
func (b *Backend) PublicURL(p string) (string, bool) {
	u, ok := b.inner.(core.PublicURLer)
	if !ok {
		return "", false
	}
	return u.PublicURL(p)
}

// Close closes the inner backend when it holds resources.
func (b *Backend) Close() error {
	if c, ok := b.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
