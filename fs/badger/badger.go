package badger

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/fs/internal/objkey"
)

// Compile-time interface checks.
var (
	_ core.Backend          = (*Backend)(nil)
	_ core.RecursiveLister  = (*Backend)(nil)
	_ core.MimeTypeDetector = (*Backend)(nil)
	_ core.Copier           = (*Backend)(nil)
)

// Config holds Badger backend configuration.
type Config struct {
	// Path is the database directory. Required unless InMemory is set.
	Path string `mapstructure:"path"`

	// InMemory keeps the whole store in memory
	InMemory bool `mapstructure:"in_memory"`

	// Logger receives Badger's own log output at warning level and above.
	// Badger logging is discarded when nil.
	Logger *zap.Logger `mapstructure:"-"`
}

// Backend implements core.Backend on BadgerDB.
type Backend struct {
	db  *badger.DB
	mu  sync.Mutex
	now func() time.Time
}

// New opens the store described by cfg.
func New(cfg Config) (*Backend, error) {
	if cfg.Path == "" && !cfg.InMemory {
		return nil, fmt.Errorf("invalid config: path is required unless in_memory is set")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if cfg.Logger != nil {
		opts = opts.WithLogger(newZapLogger(cfg.Logger)).WithLoggingLevel(badger.WARNING)
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", cfg.Path, err)
	}
	return &Backend{db: db, now: time.Now}, nil
}

// Close releases the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Type returns BackendTypeKV.
func (b *Backend) Type() core.BackendType {
	return core.BackendTypeKV
}

func pathError(op, p string, err error) error {
	if err == nil {
		return nil
	}
	return &fs.PathError{Op: op, Path: p, Err: err}
}

// get returns the record at p. The root is a directory without a record.
func get(txn *badger.Txn, p string) (record, error) {
	if p == "" {
		return record{kind: kindDir}, nil
	}
	item, err := txn.Get(entryKey(p))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return record{}, core.ErrNotExist
	}
	if err != nil {
		return record{}, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return record{}, err
	}
	return decodeRecord(val)
}

// ensureParents creates the missing ancestors of p as directories.
func (b *Backend) ensureParents(txn *badger.Txn, p string, at time.Time) error {
	dir := path.Dir(p)
	if dir == "." {
		return nil
	}
	rec, err := get(txn, dir)
	switch {
	case errors.Is(err, core.ErrNotExist):
		if err := b.ensureParents(txn, dir, at); err != nil {
			return err
		}
		return txn.Set(entryKey(dir), encodeRecord(kindDir, at, nil))
	case err != nil:
		return err
	case rec.kind != kindDir:
		return core.ErrNotDir
	}
	return nil
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
	var e core.Entry
	err := b.db.View(func(txn *badger.Txn) error {
		rec, err := get(txn, p)
		if err != nil {
			return err
		}
		e = rec.entry(p)
		return nil
	})
	return e, pathError("stat", p, err)
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

// readFile returns the record of the file at p.
func (b *Backend) readFile(op, p string) (record, error) {
	var rec record
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = get(txn, p)
		if err == nil && rec.kind == kindDir {
			err = core.ErrIsDir
		}
		return err
	})
	return rec, pathError(op, p, err)
}

// Read returns the contents of the file at p.
func (b *Backend) Read(p string) ([]byte, error) {
	p = objkey.Normalize(p)
	rec, err := b.readFile("read", p)
	if err != nil {
		return nil, err
	}
	return rec.data, nil
}

// Size returns the size in bytes of the file at p.
func (b *Backend) Size(p string) (int64, error) {
	p = objkey.Normalize(p)
	rec, err := b.readFile("size", p)
	if err != nil {
		return 0, err
	}
	return int64(len(rec.data)), nil
}

// MimeType detects the content type of the file at p.
func (b *Backend) MimeType(p string) (string, error) {
	p = objkey.Normalize(p)
	rec, err := b.readFile("mimetype", p)
	if err != nil {
		return "", err
	}
	return mimetype.Detect(rec.data).String(), nil
}

// Write stores data at p, creating parent directories.
func (b *Backend) Write(p string, data []byte) error {
	p = objkey.Normalize(p)
	if p == "" {
		return pathError("write", p, core.ErrIsDir)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.db.Update(func(txn *badger.Txn) error {
		rec, err := get(txn, p)
		if err == nil && rec.kind == kindDir {
			return core.ErrIsDir
		}
		if err != nil && !errors.Is(err, core.ErrNotExist) {
			return err
		}
		now := b.now()
		if err := b.ensureParents(txn, p, now); err != nil {
			return err
		}
		return txn.Set(entryKey(p), encodeRecord(kindFile, now, data))
	})
	return pathError("write", p, err)
}

// Delete removes the file at p.
func (b *Backend) Delete(p string) error {
	p = objkey.Normalize(p)

	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.db.Update(func(txn *badger.Txn) error {
		rec, err := get(txn, p)
		if err != nil {
			return err
		}
		if rec.kind == kindDir {
			return core.ErrIsDir
		}
		return txn.Delete(entryKey(p))
	})
	return pathError("delete", p, err)
}

// CreateDir creates the directory at p and its parents.
func (b *Backend) CreateDir(p string) error {
	p = objkey.Normalize(p)
	if p == "" {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.db.Update(func(txn *badger.Txn) error {
		rec, err := get(txn, p)
		if err == nil {
			if rec.kind == kindDir {
				return nil
			}
			return core.ErrExist
		}
		if !errors.Is(err, core.ErrNotExist) {
			return err
		}
		now := b.now()
		if err := b.ensureParents(txn, p, now); err != nil {
			return err
		}
		return txn.Set(entryKey(p), encodeRecord(kindDir, now, nil))
	})
	return pathError("mkdir", p, err)
}

// scan returns the keys and values below p, in key order.
func (b *Backend) scan(p string, values bool) (keys, vals [][]byte, err error) {
	err = b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = values
		opts.Prefix = childPrefix(p)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			keys = append(keys, item.KeyCopy(nil))
			if values {
				val, err := item.ValueCopy(nil)
				if err != nil {
					return err
				}
				vals = append(vals, val)
			}
		}
		return nil
	})
	return keys, vals, err
}

// DeleteDir removes the directory at p and everything below it.
func (b *Backend) DeleteDir(p string) error {
	p = objkey.Normalize(p)
	if p == "" {
		return pathError("rmdir", p, core.ErrPermission)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireDir(p); err != nil {
		return pathError("rmdir", p, err)
	}

	keys, _, err := b.scan(p, false)
	if err != nil {
		return pathError("rmdir", p, err)
	}

	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range append(keys, entryKey(p)) {
		if err := wb.Delete(key); err != nil {
			return pathError("rmdir", p, err)
		}
	}
	return pathError("rmdir", p, wb.Flush())
}

// requireDir returns ErrNotExist or ErrNotDir unless p is a directory.
func (b *Backend) requireDir(p string) error {
	return b.db.View(func(txn *badger.Txn) error {
		rec, err := get(txn, p)
		if err != nil {
			return err
		}
		if rec.kind != kindDir {
			return core.ErrNotDir
		}
		return nil
	})
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
	if err := b.requireDir(p); err != nil {
		return nil, pathError(op, p, err)
	}

	keys, vals, err := b.scan(p, true)
	if err != nil {
		return nil, pathError(op, p, err)
	}

	prefix := len(childPrefix(p)) - len(keyPrefix)
	entries := make([]core.Entry, 0, len(keys))
	for i, key := range keys {
		child := keyPath(key)
		if !recursive && strings.Contains(child[prefix:], "/") {
			continue
		}
		rec, err := decodeRecord(vals[i])
		if err != nil {
			return nil, pathError(op, child, err)
		}
		entries = append(entries, rec.entry(child))
	}
	slices.SortFunc(entries, func(a, b core.Entry) int { return strings.Compare(a.Path, b.Path) })
	return entries, nil
}

// Rename moves a file or directory from oldPath to newPath. Directory
// moves are applied in a write batch and are not atomic.
func (b *Backend) Rename(oldPath, newPath string) error {
	oldPath, newPath = objkey.Normalize(oldPath), objkey.Normalize(newPath)
	if oldPath == newPath {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var isDir bool
	err := b.db.Update(func(txn *badger.Txn) error {
		if _, err := get(txn, newPath); err == nil {
			return core.ErrExist
		} else if !errors.Is(err, core.ErrNotExist) {
			return err
		}
		rec, err := get(txn, oldPath)
		if err != nil {
			return err
		}
		if rec.kind == kindDir {
			isDir = true
			if oldPath == "" || strings.HasPrefix(newPath, oldPath+"/") {
				return fmt.Errorf("cannot move a directory into itself")
			}
		}
		if err := b.ensureParents(txn, newPath, b.now()); err != nil {
			return err
		}
		if !isDir {
			if err := txn.Set(entryKey(newPath), encodeRecord(rec.kind, rec.modTime, rec.data)); err != nil {
				return err
			}
			return txn.Delete(entryKey(oldPath))
		}
		return nil
	})
	if err != nil || !isDir {
		return pathError("rename", oldPath, err)
	}

	return pathError("rename", oldPath, b.moveTree(oldPath, newPath))
}

// moveTree rewrites the directory at oldPath and everything below it
// under newPath.
func (b *Backend) moveTree(oldPath, newPath string) error {
	keys, vals, err := b.scan(oldPath, true)
	if err != nil {
		return err
	}
	var rootVal []byte
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKey(oldPath))
		if err != nil {
			return err
		}
		rootVal, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return err
	}

	wb := b.db.NewWriteBatch()
	defer wb.Cancel()

	keys = append(keys, entryKey(oldPath))
	vals = append(vals, rootVal)
	for i, key := range keys {
		target := newPath + strings.TrimPrefix(keyPath(key), oldPath)
		if err := wb.Set(entryKey(target), vals[i]); err != nil {
			return err
		}
		if err := wb.Delete(key); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Copy copies the file at srcPath to dstPath.
func (b *Backend) Copy(srcPath, dstPath string) error {
	srcPath, dstPath = objkey.Normalize(srcPath), objkey.Normalize(dstPath)
	if dstPath == "" {
		return pathError("copy", dstPath, core.ErrIsDir)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.db.Update(func(txn *badger.Txn) error {
		rec, err := get(txn, srcPath)
		if err != nil {
			return err
		}
		if rec.kind == kindDir {
			return core.ErrIsDir
		}
		if dst, err := get(txn, dstPath); err == nil && dst.kind == kindDir {
			return core.ErrIsDir
		}
		now := b.now()
		if err := b.ensureParents(txn, dstPath, now); err != nil {
			return err
		}
		return txn.Set(entryKey(dstPath), encodeRecord(kindFile, now, rec.data))
	})
	return pathError("copy", srcPath, err)
}
