package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/fs/internal/objkey"
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

// Backend implements core.Backend on an S3 bucket.
//
// The key layout matches the MinIO backend, so a bucket written by one can
// be served by the other.
type Backend struct {
	client            *s3.Client
	bucket            string
	region            string
	layout            objkey.Layout
	renameConcurrency int
	timeout           time.Duration
	publicBaseURL     string
}

// New creates an S3-backed backend.
func New(cfg Config) (*Backend, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	b := &Backend{
		bucket:            cfg.Bucket,
		region:            cfg.Region,
		layout:            objkey.NewLayout(cfg.Prefix),
		renameConcurrency: cfg.MaxRenameConcurrency,
		timeout:           cfg.Timeout,
		publicBaseURL:     strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
	if b.renameConcurrency == 0 {
		b.renameConcurrency = defaultRenameConcurrency
	}
	if b.timeout == 0 {
		b.timeout = defaultTimeout
	}
	if b.publicBaseURL == "" && cfg.Endpoint != "" {
		b.publicBaseURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	ctx, cancel := b.context()
	defer cancel()

	client, err := cfg.newClient(ctx)
	if err != nil {
		return nil, err
	}
	b.client = client

	if cfg.CreateBucket {
		if err := b.ensureBucket(ctx); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (b *Backend) ensureBucket(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(b.bucket)})
	if err == nil {
		return nil
	}
	if !errors.Is(translate(err), core.ErrNotExist) {
		return fmt.Errorf("failed to check bucket %s: %w", b.bucket, translate(err))
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(b.bucket)}
	if b.region != "" && b.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(b.region),
		}
	}
	if _, err := b.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", b.bucket, translate(err))
	}
	return nil
}

func (b *Backend) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.timeout)
}

// Type returns BackendTypeRemote.
func (b *Backend) Type() core.BackendType {
	return core.BackendTypeRemote
}

// head returns the metadata of the file object at p. The boolean is false
// when no file object exists there.
func (b *Backend) head(ctx context.Context, p string) (*s3.HeadObjectOutput, bool, error) {
	if p == "" {
		return nil, false, nil
	}
	out, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.layout.Key(p)),
	})
	if err != nil {
		err = translate(err)
		if errors.Is(err, core.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return out, true, nil
}

// dirExists reports whether a marker or any object lies below p.
func (b *Backend) dirExists(ctx context.Context, p string) (bool, error) {
	if p == "" {
		return true, nil
	}
	out, err := b.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(b.bucket),
		Prefix:  aws.String(b.layout.DirKey(p)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, translate(err)
	}
	return len(out.Contents) > 0, nil
}

func (b *Backend) missingFileErr(ctx context.Context, p string) error {
	isDir, err := b.dirExists(ctx, p)
	switch {
	case err != nil:
		return err
	case isDir:
		return core.ErrIsDir
	default:
		return core.ErrNotExist
	}
}

// Exists reports whether a file or directory exists at p.
func (b *Backend) Exists(p string) (bool, error) {
	_, err := b.Metadata(p)
	if errors.Is(err, core.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Metadata returns the entry at p.
func (b *Backend) Metadata(p string) (core.Entry, error) {
	p = objkey.Normalize(p)
	ctx, cancel := b.context()
	defer cancel()

	out, ok, err := b.head(ctx, p)
	if err != nil {
		return core.Entry{}, pathError("stat", p, err)
	}
	if ok {
		return core.Entry{
			Path:      p,
			Type:      core.EntryFile,
			Size:      aws.ToInt64(out.ContentLength),
			Timestamp: aws.ToTime(out.LastModified),
		}, nil
	}

	isDir, err := b.dirExists(ctx, p)
	if err != nil {
		return core.Entry{}, pathError("stat", p, err)
	}
	if !isDir {
		return core.Entry{}, pathError("stat", p, core.ErrNotExist)
	}
	return core.Entry{Path: p, Type: core.EntryDir}, nil
}

// IsDir reports whether p is an existing directory.
func (b *Backend) IsDir(p string) (bool, error) {
	e, err := b.Metadata(p)
	if errors.Is(err, core.ErrNotExist) {
		return false, nil
	}
	return err == nil && e.IsDir(), err
}

// IsFile reports whether p is an existing file.
func (b *Backend) IsFile(p string) (bool, error) {
	e, err := b.Metadata(p)
	if errors.Is(err, core.ErrNotExist) {
		return false, nil
	}
	return err == nil && !e.IsDir(), err
}

// Read returns the contents of the file at p.
func (b *Backend) Read(p string) ([]byte, error) {
	p = objkey.Normalize(p)
	ctx, cancel := b.context()
	defer cancel()

	if p == "" {
		return nil, pathError("read", p, core.ErrIsDir)
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.layout.Key(p)),
	})
	if err != nil {
		err = translate(err)
		if errors.Is(err, core.ErrNotExist) {
			err = b.missingFileErr(ctx, p)
		}
		return nil, pathError("read", p, err)
	}
	defer func() {
		_ = out.Body.Close()
	}()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, pathError("read", p, translate(err))
	}
	return data, nil
}

// Write stores data at p. Parent directories are implicit.
func (b *Backend) Write(p string, data []byte) error {
	p = objkey.Normalize(p)
	if p == "" {
		return pathError("write", p, core.ErrIsDir)
	}

	ctx, cancel := b.context()
	defer cancel()

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(b.layout.Key(p)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(mimetype.Detect(data).String()),
	})
	if err != nil {
		return pathError("write", p, translate(err))
	}
	return nil
}

// Delete removes the file at p.
func (b *Backend) Delete(p string) error {
	p = objkey.Normalize(p)
	ctx, cancel := b.context()
	defer cancel()

	if _, ok, err := b.head(ctx, p); err != nil {
		return pathError("delete", p, err)
	} else if !ok {
		return pathError("delete", p, b.missingFileErr(ctx, p))
	}

	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.layout.Key(p)),
	})
	if err != nil {
		return pathError("delete", p, translate(err))
	}
	return nil
}

// CreateDir writes a directory marker for p.
func (b *Backend) CreateDir(p string) error {
	p = objkey.Normalize(p)
	if p == "" {
		return nil
	}

	ctx, cancel := b.context()
	defer cancel()

	if _, ok, err := b.head(ctx, p); err != nil {
		return pathError("mkdir", p, err)
	} else if ok {
		return pathError("mkdir", p, core.ErrExist)
	}

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(b.layout.DirKey(p)),
		Body:          bytes.NewReader(nil),
		ContentLength: aws.Int64(0),
		ContentType:   aws.String(dirContentType),
	})
	if err != nil {
		return pathError("mkdir", p, translate(err))
	}
	return nil
}

// DeleteDir removes every object below p, including its marker.
func (b *Backend) DeleteDir(p string) error {
	p = objkey.Normalize(p)
	if p == "" {
		return pathError("rmdir", p, core.ErrPermission)
	}

	ctx, cancel := b.context()
	defer cancel()

	if _, ok, err := b.head(ctx, p); err != nil {
		return pathError("rmdir", p, err)
	} else if ok {
		return pathError("rmdir", p, core.ErrNotDir)
	}

	keys, err := b.listKeys(ctx, b.layout.DirKey(p))
	if err != nil {
		return pathError("rmdir", p, err)
	}
	if len(keys) == 0 {
		return pathError("rmdir", p, core.ErrNotExist)
	}
	if err := b.deleteKeys(ctx, keys); err != nil {
		return pathError("rmdir", p, err)
	}
	return nil
}

// listKeys returns every key starting with prefix.
func (b *Backend) listKeys(ctx context.Context, prefix string) ([]string, error) {
	objects, err := b.listObjects(ctx, prefix, false)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(objects))
	for i, o := range objects {
		keys[i] = o.Key
	}
	return keys, nil
}

// listObjects pages through every key below prefix. With delimited set,
// nested keys collapse into common prefixes, which are returned as
// objects whose key ends in "/".
func (b *Backend) listObjects(ctx context.Context, prefix string, delimited bool) ([]objkey.Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(prefix),
	}
	if delimited {
		input.Delimiter = aws.String("/")
	}

	var objects []objkey.Object
	paginator := s3.NewListObjectsV2Paginator(b.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, translate(err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			objects = append(objects, objkey.Object{
				Key:          *obj.Key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
		for _, cp := range page.CommonPrefixes {
			if cp.Prefix != nil {
				objects = append(objects, objkey.Object{Key: *cp.Prefix})
			}
		}
	}
	return objects, nil
}

// deleteKeys removes keys in batches of at most maxDeleteBatch.
func (b *Backend) deleteKeys(ctx context.Context, keys []string) error {
	for i := 0; i < len(keys); i += maxDeleteBatch {
		end := min(i+maxDeleteBatch, len(keys))

		objects := make([]types.ObjectIdentifier, 0, end-i)
		for _, key := range keys[i:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
		}

		out, err := b.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(b.bucket),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return translate(err)
		}
		if len(out.Errors) > 0 {
			e := out.Errors[0]
			return fmt.Errorf("s3: delete %s: %s", aws.ToString(e.Key), aws.ToString(e.Message))
		}
	}
	return nil
}

// List returns the direct children of the directory at p.
func (b *Backend) List(p string) ([]core.Entry, error) {
	return b.list("list", p, false)
}

// ListRecursive returns every entry below the directory at p.
func (b *Backend) ListRecursive(p string) ([]core.Entry, error) {
	return b.list("walk", p, true)
}

func (b *Backend) list(op, p string, recursive bool) ([]core.Entry, error) {
	p = objkey.Normalize(p)
	ctx, cancel := b.context()
	defer cancel()

	if _, ok, err := b.head(ctx, p); err != nil {
		return nil, pathError(op, p, err)
	} else if ok {
		return nil, pathError(op, p, core.ErrNotDir)
	}

	dirKey := b.layout.DirKey(p)
	objects, err := b.listObjects(ctx, dirKey, !recursive)
	if err != nil {
		return nil, pathError(op, p, err)
	}
	if p != "" && len(objects) == 0 {
		return nil, pathError(op, p, core.ErrNotExist)
	}

	if recursive {
		return objkey.TreeEntries(p, dirKey, objects), nil
	}
	return objkey.ChildEntries(p, dirKey, objects), nil
}

// Rename moves a file or directory. S3 has no rename, so objects are
// copied then deleted; a failure part way through leaves both copies.
func (b *Backend) Rename(oldPath, newPath string) error {
	oldPath, newPath = objkey.Normalize(oldPath), objkey.Normalize(newPath)
	if oldPath == newPath {
		return nil
	}

	ctx, cancel := b.context()
	defer cancel()

	if _, ok, err := b.head(ctx, newPath); err != nil {
		return pathError("rename", newPath, err)
	} else if ok {
		return pathError("rename", newPath, core.ErrExist)
	}
	if exists, err := b.dirExists(ctx, newPath); err != nil {
		return pathError("rename", newPath, err)
	} else if exists {
		return pathError("rename", newPath, core.ErrExist)
	}

	_, isFile, err := b.head(ctx, oldPath)
	if err != nil {
		return pathError("rename", oldPath, err)
	}
	if isFile {
		oldKey := b.layout.Key(oldPath)
		if err := b.copyObject(ctx, oldKey, b.layout.Key(newPath)); err != nil {
			return pathError("rename", oldPath, translate(err))
		}
		if err := b.deleteKeys(ctx, []string{oldKey}); err != nil {
			return pathError("rename", oldPath, err)
		}
		return nil
	}

	if oldPath == "" || strings.HasPrefix(newPath, oldPath+"/") {
		return pathError("rename", oldPath, fmt.Errorf("cannot move a directory into itself"))
	}

	oldDirKey := b.layout.DirKey(oldPath)
	keys, err := b.listKeys(ctx, oldDirKey)
	if err != nil {
		return pathError("rename", oldPath, err)
	}
	if len(keys) == 0 {
		return pathError("rename", oldPath, core.ErrNotExist)
	}

	copied, err := b.parallelCopy(ctx, keys, oldDirKey, b.layout.DirKey(newPath))
	if err != nil {
		return pathError("rename", oldPath, err)
	}
	if err := b.deleteKeys(ctx, copied); err != nil {
		return pathError("rename", oldPath, err)
	}
	return nil
}

// parallelCopy copies keys from oldPrefix to newPrefix with bounded
// concurrency and returns the keys that were copied.
func (b *Backend) parallelCopy(ctx context.Context, keys []string, oldPrefix, newPrefix string) ([]string, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(b.renameConcurrency)

	var mu sync.Mutex
	copied := make([]string, 0, len(keys))

	for _, key := range keys {
		eg.Go(func() error {
			newKey := objkey.MoveTarget(oldPrefix, newPrefix, key)
			if err := b.copyObject(egCtx, key, newKey); err != nil {
				return fmt.Errorf("copy object %s to %s: %w", key, newKey, translate(err))
			}
			mu.Lock()
			copied = append(copied, key)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return copied, err
	}
	return copied, nil
}

func (b *Backend) copyObject(ctx context.Context, srcKey, dstKey string) error {
	_, err := b.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(b.bucket),
		CopySource: aws.String(b.bucket + "/" + url.PathEscape(srcKey)),
		Key:        aws.String(dstKey),
	})
	return err
}

// Size returns the size in bytes of the file at p.
func (b *Backend) Size(p string) (int64, error) {
	p = objkey.Normalize(p)
	ctx, cancel := b.context()
	defer cancel()

	out, ok, err := b.head(ctx, p)
	if err != nil {
		return 0, pathError("size", p, err)
	}
	if !ok {
		return 0, pathError("size", p, b.missingFileErr(ctx, p))
	}
	return aws.ToInt64(out.ContentLength), nil
}

// Copy copies the file at srcPath to dstPath on the server.
func (b *Backend) Copy(srcPath, dstPath string) error {
	srcPath, dstPath = objkey.Normalize(srcPath), objkey.Normalize(dstPath)
	ctx, cancel := b.context()
	defer cancel()

	if _, ok, err := b.head(ctx, srcPath); err != nil {
		return pathError("copy", srcPath, err)
	} else if !ok {
		return pathError("copy", srcPath, b.missingFileErr(ctx, srcPath))
	}

	if err := b.copyObject(ctx, b.layout.Key(srcPath), b.layout.Key(dstPath)); err != nil {
		return pathError("copy", srcPath, translate(err))
	}
	return nil
}

// MimeType returns the content type stored with the object at p.
func (b *Backend) MimeType(p string) (string, error) {
	p = objkey.Normalize(p)
	ctx, cancel := b.context()
	defer cancel()

	out, ok, err := b.head(ctx, p)
	if err != nil {
		return "", pathError("mimetype", p, err)
	}
	if !ok {
		return "", pathError("mimetype", p, b.missingFileErr(ctx, p))
	}
	if ct := aws.ToString(out.ContentType); ct != "" {
		return ct, nil
	}
	return "application/octet-stream", nil
}

// PublicURL returns the URL of the object at p.
func (b *Backend) PublicURL(p string) (string, bool) {
	p = objkey.Normalize(p)
	if p == "" {
		return "", false
	}

	key := b.layout.Key(p)
	if b.publicBaseURL != "" {
		return b.publicBaseURL + "/" + key, true
	}
	if b.region == "" {
		return "", false
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.region, key), true
}
