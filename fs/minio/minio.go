package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/fs/internal/objkey"
	"github.com/jmgilman/go/fsdriver/fs/minio/internal/errs"
)

const dirContentType = "application/x-directory"

// Compile-time interface checks.
var (
	_ core.Backend          = (*Backend)(nil)
	_ core.RecursiveLister  = (*Backend)(nil)
	_ core.MimeTypeDetector = (*Backend)(nil)
	_ core.PublicURLer      = (*Backend)(nil)
	_ core.Copier           = (*Backend)(nil)
)

// Backend implements core.Backend for MinIO/S3-compatible storage.
//
// Directories are zero-byte marker objects ending in "/" and also exist
// implicitly while any object lies below them.
type Backend struct {
	client            *minio.Client
	bucket            string
	layout            objkey.Layout
	partSize          uint64
	renameConcurrency int
	timeout           time.Duration
	publicBaseURL     string
}

// New creates a MinIO-backed backend.
// Returns error if configuration is invalid or the bucket cannot be prepared.
func New(cfg Config) (*Backend, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	m := &Backend{
		client:            client,
		bucket:            cfg.Bucket,
		layout:            objkey.NewLayout(cfg.Prefix),
		partSize:          uint64(cfg.MultipartThreshold),
		renameConcurrency: cfg.MaxRenameConcurrency,
		timeout:           cfg.Timeout,
		publicBaseURL:     strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
	if m.partSize == 0 {
		m.partSize = defaultPartSize
	}
	if m.renameConcurrency == 0 {
		m.renameConcurrency = defaultRenameConcurrency
	}
	if m.timeout == 0 {
		m.timeout = defaultTimeout
	}

	if cfg.CreateBucket {
		if err := m.ensureBucket(cfg.Region); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Backend) ensureBucket(region string) error {
	ctx, cancel := m.context()
	defer cancel()

	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", m.bucket, errs.Translate(err))
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", m.bucket, errs.Translate(err))
	}
	return nil
}

// context returns a context bounded by the configured timeout.
func (m *Backend) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

// Type returns BackendTypeRemote.
func (m *Backend) Type() core.BackendType {
	return core.BackendTypeRemote
}

// statFile returns the object stored at p. The boolean is false when no
// file object exists there.
func (m *Backend) statFile(ctx context.Context, p string) (minio.ObjectInfo, bool, error) {
	if p == "" {
		return minio.ObjectInfo{}, false, nil
	}
	info, err := m.client.StatObject(ctx, m.bucket, m.layout.Key(p), minio.StatObjectOptions{})
	if err != nil {
		err = errs.Translate(err)
		if errors.Is(err, core.ErrNotExist) {
			return minio.ObjectInfo{}, false, nil
		}
		return minio.ObjectInfo{}, false, err
	}
	return info, true, nil
}

// dirExists reports whether a marker or any object lies below p.
func (m *Backend) dirExists(ctx context.Context, p string) (bool, error) {
	if p == "" {
		return true, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    m.layout.DirKey(p),
		Recursive: true,
		MaxKeys:   1,
	}) {
		if object.Err != nil {
			return false, errs.Translate(object.Err)
		}
		return true, nil
	}
	return false, nil
}

// Exists reports whether a file or directory exists at p.
func (m *Backend) Exists(p string) (bool, error) {
	_, err := m.Metadata(p)
	if errors.Is(err, core.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Metadata returns the entry at p.
func (m *Backend) Metadata(p string) (core.Entry, error) {
	p = objkey.Normalize(p)
	ctx, cancel := m.context()
	defer cancel()

	info, ok, err := m.statFile(ctx, p)
	if err != nil {
		return core.Entry{}, errs.PathError("stat", p, err)
	}
	if ok {
		return core.Entry{Path: p, Type: core.EntryFile, Size: info.Size, Timestamp: info.LastModified}, nil
	}

	isDir, err := m.dirExists(ctx, p)
	if err != nil {
		return core.Entry{}, errs.PathError("stat", p, err)
	}
	if !isDir {
		return core.Entry{}, errs.PathError("stat", p, core.ErrNotExist)
	}
	return core.Entry{Path: p, Type: core.EntryDir}, nil
}

// IsDir reports whether p is an existing directory.
func (m *Backend) IsDir(p string) (bool, error) {
	e, err := m.Metadata(p)
	if errors.Is(err, core.ErrNotExist) {
		return false, nil
	}
	return err == nil && e.IsDir(), err
}

// IsFile reports whether p is an existing file.
func (m *Backend) IsFile(p string) (bool, error) {
	e, err := m.Metadata(p)
	if errors.Is(err, core.ErrNotExist) {
		return false, nil
	}
	return err == nil && !e.IsDir(), err
}

// Read returns the contents of the file at p.
func (m *Backend) Read(p string) ([]byte, error) {
	p = objkey.Normalize(p)
	ctx, cancel := m.context()
	defer cancel()

	info, ok, err := m.statFile(ctx, p)
	if err != nil {
		return nil, errs.PathError("read", p, err)
	}
	if !ok {
		return nil, errs.PathError("read", p, m.missingFileErr(ctx, p))
	}

	obj, err := m.client.GetObject(ctx, m.bucket, m.layout.Key(p), minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.PathError("read", p, errs.Translate(err))
	}
	defer func() {
		_ = obj.Close()
	}()

	buf := make([]byte, info.Size)
	if _, err := io.ReadFull(obj, buf); err != nil {
		return nil, errs.PathError("read", p, errs.Translate(err))
	}
	return buf, nil
}

// missingFileErr distinguishes a directory from an absent entry for file
// operations.
func (m *Backend) missingFileErr(ctx context.Context, p string) error {
	if isDir, err := m.dirExists(ctx, p); err != nil {
		return err
	} else if isDir {
		return core.ErrIsDir
	}
	return core.ErrNotExist
}

// Write stores data at p. Parent directories are implicit.
func (m *Backend) Write(p string, data []byte) error {
	p = objkey.Normalize(p)
	if p == "" {
		return errs.PathError("write", p, core.ErrIsDir)
	}

	ctx, cancel := m.context()
	defer cancel()

	_, err := m.client.PutObject(ctx, m.bucket, m.layout.Key(p), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: mimetype.Detect(data).String(),
			PartSize:    m.partSize,
		})
	if err != nil {
		return errs.PathError("write", p, errs.Translate(err))
	}
	return nil
}

// Delete removes the file at p.
func (m *Backend) Delete(p string) error {
	p = objkey.Normalize(p)
	ctx, cancel := m.context()
	defer cancel()

	_, ok, err := m.statFile(ctx, p)
	if err != nil {
		return errs.PathError("delete", p, err)
	}
	if !ok {
		return errs.PathError("delete", p, m.missingFileErr(ctx, p))
	}

	if err := m.client.RemoveObject(ctx, m.bucket, m.layout.Key(p), minio.RemoveObjectOptions{}); err != nil {
		return errs.PathError("delete", p, errs.Translate(err))
	}
	return nil
}

// CreateDir writes a directory marker for p. Parents are implicit.
func (m *Backend) CreateDir(p string) error {
	p = objkey.Normalize(p)
	if p == "" {
		return nil
	}

	ctx, cancel := m.context()
	defer cancel()

	if _, ok, err := m.statFile(ctx, p); err != nil {
		return errs.PathError("mkdir", p, err)
	} else if ok {
		return errs.PathError("mkdir", p, core.ErrExist)
	}

	_, err := m.client.PutObject(ctx, m.bucket, m.layout.DirKey(p), bytes.NewReader(nil), 0,
		minio.PutObjectOptions{ContentType: dirContentType})
	if err != nil {
		return errs.PathError("mkdir", p, errs.Translate(err))
	}
	return nil
}

// DeleteDir removes every object below p, including its marker.
func (m *Backend) DeleteDir(p string) error {
	p = objkey.Normalize(p)
	if p == "" {
		return errs.PathError("rmdir", p, core.ErrPermission)
	}

	ctx, cancel := m.context()
	defer cancel()

	if _, ok, err := m.statFile(ctx, p); err != nil {
		return errs.PathError("rmdir", p, err)
	} else if ok {
		return errs.PathError("rmdir", p, core.ErrNotDir)
	}
	exists, err := m.dirExists(ctx, p)
	if err != nil {
		return errs.PathError("rmdir", p, err)
	}
	if !exists {
		return errs.PathError("rmdir", p, core.ErrNotExist)
	}

	if err := m.removePrefix(ctx, m.layout.DirKey(p)); err != nil {
		return errs.PathError("rmdir", p, errs.Translate(err))
	}
	return nil
}

// removePrefix deletes every object whose key starts with prefix using the
// batch delete API.
func (m *Backend) removePrefix(ctx context.Context, prefix string) error {
	objectsCh := make(chan minio.ObjectInfo, 100)

	var listErr error
	go func() {
		defer close(objectsCh)
		for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
			Prefix:    prefix,
			Recursive: true,
		}) {
			if object.Err != nil {
				listErr = object.Err
				return
			}
			objectsCh <- object
		}
	}()

	errorCh := m.client.RemoveObjects(ctx, m.bucket, objectsCh, minio.RemoveObjectsOptions{})

	var firstErr error
	for rErr := range errorCh {
		if rErr.Err != nil && firstErr == nil {
			firstErr = rErr.Err
		}
	}

	if listErr != nil {
		return listErr
	}
	return firstErr
}

// List returns the direct children of the directory at p.
func (m *Backend) List(p string) ([]core.Entry, error) {
	return m.list("list", p, false)
}

// ListRecursive returns every entry below the directory at p.
func (m *Backend) ListRecursive(p string) ([]core.Entry, error) {
	return m.list("walk", p, true)
}

func (m *Backend) list(op, p string, recursive bool) ([]core.Entry, error) {
	p = objkey.Normalize(p)
	ctx, cancel := m.context()
	defer cancel()

	if _, ok, err := m.statFile(ctx, p); err != nil {
		return nil, errs.PathError(op, p, err)
	} else if ok {
		return nil, errs.PathError(op, p, core.ErrNotDir)
	}

	dirKey := m.layout.DirKey(p)
	var objects []objkey.Object
	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    dirKey,
		Recursive: recursive,
	}) {
		if object.Err != nil {
			return nil, errs.PathError(op, p, errs.Translate(object.Err))
		}
		objects = append(objects, objkey.Object{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}

	if p != "" && len(objects) == 0 {
		return nil, errs.PathError(op, p, core.ErrNotExist)
	}

	if recursive {
		return objkey.TreeEntries(p, dirKey, objects), nil
	}
	return objkey.ChildEntries(p, dirKey, objects), nil
}

// Rename moves a file or directory from oldPath to newPath.
// In S3/MinIO, this is implemented as copy + delete.
//
// IMPORTANT: This operation is NOT atomic. If an error occurs during
// the copy phase, some objects may have been copied. If an error occurs
// during the delete phase, objects will exist at both old and new paths.
//
// For directories, this uses a bounded worker pool for parallel copies
// followed by batch deletion.
func (m *Backend) Rename(oldPath, newPath string) error {
	oldPath, newPath = objkey.Normalize(oldPath), objkey.Normalize(newPath)
	if oldPath == newPath {
		return nil
	}

	ctx, cancel := m.context()
	defer cancel()

	if exists, err := m.exists(ctx, newPath); err != nil {
		return errs.PathError("rename", newPath, err)
	} else if exists {
		return errs.PathError("rename", newPath, core.ErrExist)
	}

	_, isFile, err := m.statFile(ctx, oldPath)
	if err != nil {
		return errs.PathError("rename", oldPath, err)
	}
	if isFile {
		return m.renameFile(ctx, oldPath, newPath)
	}

	if oldPath == "" || strings.HasPrefix(newPath, oldPath+"/") {
		return errs.PathErrorf("rename", oldPath, "cannot move a directory into itself")
	}

	oldDirKey := m.layout.DirKey(oldPath)
	copied, err := m.parallelCopy(ctx, oldDirKey, m.layout.DirKey(newPath))
	if err != nil {
		return errs.PathError("rename", oldPath, errs.Translate(err))
	}
	if len(copied) == 0 {
		return errs.PathError("rename", oldPath, core.ErrNotExist)
	}

	if err := m.removeKeys(ctx, copied); err != nil {
		return errs.PathError("rename", oldPath, errs.Translate(err))
	}
	return nil
}

// exists reports whether p is a file or a directory.
func (m *Backend) exists(ctx context.Context, p string) (bool, error) {
	if _, ok, err := m.statFile(ctx, p); err != nil || ok {
		return ok, err
	}
	return m.dirExists(ctx, p)
}

// renameFile renames a single object.
func (m *Backend) renameFile(ctx context.Context, oldPath, newPath string) error {
	if err := m.copyObject(ctx, m.layout.Key(oldPath), m.layout.Key(newPath)); err != nil {
		return errs.PathError("rename", oldPath, errs.Translate(err))
	}

	err := m.client.RemoveObject(ctx, m.bucket, m.layout.Key(oldPath), minio.RemoveObjectOptions{})
	if err != nil {
		return errs.PathError("rename", oldPath, errs.Translate(err))
	}
	return nil
}

func (m *Backend) copyObject(ctx context.Context, srcKey, dstKey string) error {
	src := minio.CopySrcOptions{Bucket: m.bucket, Object: srcKey}
	dst := minio.CopyDestOptions{Bucket: m.bucket, Object: dstKey}
	_, err := m.client.CopyObject(ctx, dst, src)
	return err
}

func (m *Backend) removeKeys(ctx context.Context, keys []string) error {
	toDelete := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		toDelete <- minio.ObjectInfo{Key: key}
	}
	close(toDelete)

	for rErr := range m.client.RemoveObjects(ctx, m.bucket, toDelete, minio.RemoveObjectsOptions{}) {
		if rErr.Err != nil {
			return rErr.Err
		}
	}
	return nil
}

// parallelCopy copies objects from old to new prefix using a worker pool.
// Returns the list of successfully copied object keys for cleanup.
func (m *Backend) parallelCopy(ctx context.Context, oldPrefix, newPrefix string) ([]string, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(m.renameConcurrency)

	var copiedMu sync.Mutex
	var copied []string

	for object := range m.client.ListObjects(egCtx, m.bucket, minio.ListObjectsOptions{
		Prefix:    oldPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			_ = eg.Wait()
			return copied, object.Err
		}

		objectKey := object.Key
		eg.Go(func() error {
			newKey := objkey.MoveTarget(oldPrefix, newPrefix, objectKey)
			if err := m.copyObject(egCtx, objectKey, newKey); err != nil {
				return fmt.Errorf("copy object %s to %s: %w", objectKey, newKey, err)
			}

			copiedMu.Lock()
			copied = append(copied, objectKey)
			copiedMu.Unlock()

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return copied, fmt.Errorf("parallel copy failed: %w", err)
	}

	return copied, nil
}

// Size returns the size in bytes of the file at p.
func (m *Backend) Size(p string) (int64, error) {
	p = objkey.Normalize(p)
	ctx, cancel := m.context()
	defer cancel()

	info, ok, err := m.statFile(ctx, p)
	if err != nil {
		return 0, errs.PathError("size", p, err)
	}
	if !ok {
		return 0, errs.PathError("size", p, m.missingFileErr(ctx, p))
	}
	return info.Size, nil
}

// Copy copies the file at srcPath to dstPath on the server.
func (m *Backend) Copy(srcPath, dstPath string) error {
	srcPath, dstPath = objkey.Normalize(srcPath), objkey.Normalize(dstPath)
	ctx, cancel := m.context()
	defer cancel()

	if _, ok, err := m.statFile(ctx, srcPath); err != nil {
		return errs.PathError("copy", srcPath, err)
	} else if !ok {
		return errs.PathError("copy", srcPath, m.missingFileErr(ctx, srcPath))
	}

	if err := m.copyObject(ctx, m.layout.Key(srcPath), m.layout.Key(dstPath)); err != nil {
		return errs.PathError("copy", srcPath, errs.Translate(err))
	}
	return nil
}

// MimeType returns the content type stored with the object at p.
func (m *Backend) MimeType(p string) (string, error) {
	p = objkey.Normalize(p)
	ctx, cancel := m.context()
	defer cancel()

	info, ok, err := m.statFile(ctx, p)
	if err != nil {
		return "", errs.PathError("mimetype", p, err)
	}
	if !ok {
		return "", errs.PathError("mimetype", p, m.missingFileErr(ctx, p))
	}
	if info.ContentType == "" {
		return "application/octet-stream", nil
	}
	return info.ContentType, nil
}

// PublicURL returns the URL of the object at p. Objects are only reachable
// when the bucket policy allows anonymous reads.
func (m *Backend) PublicURL(p string) (string, bool) {
	p = objkey.Normalize(p)
	if p == "" {
		return "", false
	}

	key := m.layout.Key(p)
	if m.publicBaseURL != "" {
		return m.publicBaseURL + "/" + key, true
	}

	return m.client.EndpointURL().JoinPath(m.bucket, key).String(), true
}
