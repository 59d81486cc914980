package billy

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// Compile-time interface checks.
var (
	_ core.Backend          = (*Backend)(nil)
	_ core.RecursiveLister  = (*Backend)(nil)
	_ core.MimeTypeDetector = (*Backend)(nil)
)

var errMoveIntoSelf = errors.New("cannot move a directory into itself")

// Backend adapts a billy.Filesystem to core.Backend.
type Backend struct {
	bfs billy.Filesystem
	typ core.BackendType
	cfg config

	// memfs storage is not synchronized.
	mu sync.RWMutex

	// mtimes holds write times for backends whose filesystem does not track
	// them. nil when the filesystem reports real modification times.
	mtimes map[string]time.Time
}

// Option configures backend creation.
type Option func(*config)

type config struct {
	fileMode os.FileMode
	dirMode  os.FileMode
}

func defaultConfig() config {
	return config{fileMode: 0o644, dirMode: 0o755}
}

// WithFileMode sets the permission bits of newly written files.
func WithFileMode(mode os.FileMode) Option {
	return func(c *config) { c.fileMode = mode }
}

// WithDirMode sets the permission bits of newly created directories.
func WithDirMode(mode os.FileMode) Option {
	return func(c *config) { c.dirMode = mode }
}

// NewLocal creates a backend rooted at root on the local disk.
// The root directory is created if it does not exist.
func NewLocal(root string, opts ...Option) (*Backend, error) {
	if root == "" {
		return nil, core.PathError("open", root, fs.ErrInvalid)
	}

	b := newBackend(osfs.New(root), core.BackendTypeLocal, opts)
	if err := b.bfs.MkdirAll("/", b.cfg.dirMode); err != nil {
		return nil, translate("mkdir", root, err)
	}
	return b, nil
}

// NewMemory creates an empty in-memory backend.
func NewMemory(opts ...Option) *Backend {
	b := newBackend(memfs.New(), core.BackendTypeMemory, opts)
	b.mtimes = make(map[string]time.Time)
	return b
}

// Wrap adapts an existing billy filesystem, such as a chroot of another
// filesystem, reporting typ as its backend type.
func Wrap(bfs billy.Filesystem, typ core.BackendType, opts ...Option) *Backend {
	return newBackend(bfs, typ, opts)
}

func newBackend(bfs billy.Filesystem, typ core.BackendType, opts []Option) *Backend {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Backend{bfs: bfs, typ: typ, cfg: cfg}
}

// Unwrap returns the underlying billy.Filesystem.
func (b *Backend) Unwrap() billy.Filesystem {
	return b.bfs
}

// Type returns the backend type given at construction.
func (b *Backend) Type() core.BackendType {
	return b.typ
}

// normalize converts a backend path to slash form without leading or
// trailing slashes. The root is "".
func normalize(p string) string {
	p = path.Clean("/" + filepath.ToSlash(p))
	return strings.Trim(p, "/")
}

// full returns the billy path for a normalized backend path.
func full(p string) string {
	return "/" + p
}

// translate maps billy and os errors onto the core sentinels.
func translate(op, p string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		return core.PathError(op, p, core.ErrNotExist)
	case errors.Is(err, os.ErrExist):
		return core.PathError(op, p, core.ErrExist)
	case errors.Is(err, os.ErrPermission):
		return core.PathError(op, p, core.ErrPermission)
	default:
		return core.PathError(op, p, err)
	}
}

func (b *Backend) stat(op, p string) (os.FileInfo, error) {
	info, err := b.bfs.Stat(full(p))
	if err != nil {
		return nil, translate(op, p, err)
	}
	return info, nil
}

func (b *Backend) entry(p string, info os.FileInfo) core.Entry {
	e := core.Entry{Path: p, Timestamp: info.ModTime()}
	if info.IsDir() {
		e.Type = core.EntryDir
	} else {
		e.Type = core.EntryFile
		e.Size = info.Size()
	}
	if b.mtimes != nil {
		e.Timestamp = b.mtimes[p]
	}
	return e
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
	p = normalize(p)

	b.mu.RLock()
	defer b.mu.RUnlock()

	info, err := b.stat("stat", p)
	if err != nil {
		return core.Entry{}, err
	}
	return b.entry(p, info), nil
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
	p = normalize(p)

	b.mu.RLock()
	defer b.mu.RUnlock()

	info, err := b.stat("read", p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, core.PathError("read", p, core.ErrIsDir)
	}

	data, err := util.ReadFile(b.bfs, full(p))
	if err != nil {
		return nil, translate("read", p, err)
	}
	return data, nil
}

// Write stores data at p, creating parent directories as needed.
func (b *Backend) Write(p string, data []byte) error {
	p = normalize(p)
	if p == "" {
		return core.PathError("write", p, core.ErrIsDir)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.write(p, data)
}

func (b *Backend) write(p string, data []byte) error {
	if info, err := b.bfs.Stat(full(p)); err == nil && info.IsDir() {
		return core.PathError("write", p, core.ErrIsDir)
	}
	if err := b.mkdirAll(path.Dir(full(p))); err != nil {
		return translate("write", p, err)
	}
	if err := util.WriteFile(b.bfs, full(p), data, b.cfg.fileMode); err != nil {
		return translate("write", p, err)
	}
	if b.mtimes != nil {
		b.mtimes[p] = time.Now()
	}
	return nil
}

func (b *Backend) mkdirAll(dir string) error {
	if info, err := b.bfs.Stat(dir); err == nil {
		if !info.IsDir() {
			return core.ErrNotDir
		}
		return nil
	}
	return b.bfs.MkdirAll(dir, b.cfg.dirMode)
}

// Delete removes the file at p.
func (b *Backend) Delete(p string) error {
	p = normalize(p)

	b.mu.Lock()
	defer b.mu.Unlock()

	info, err := b.stat("delete", p)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return core.PathError("delete", p, core.ErrIsDir)
	}
	if err := b.bfs.Remove(full(p)); err != nil {
		return translate("delete", p, err)
	}
	if b.mtimes != nil {
		delete(b.mtimes, p)
	}
	return nil
}

// CreateDir creates the directory at p and any missing parents.
func (b *Backend) CreateDir(p string) error {
	p = normalize(p)
	if p == "" {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.mkdirAll(full(p)); err != nil {
		return translate("mkdir", p, err)
	}
	return nil
}

// DeleteDir removes the directory at p and everything below it.
// The root itself cannot be removed.
func (b *Backend) DeleteDir(p string) error {
	p = normalize(p)
	if p == "" {
		return core.PathError("rmdir", p, core.ErrPermission)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	info, err := b.stat("rmdir", p)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return core.PathError("rmdir", p, core.ErrNotDir)
	}
	if err := util.RemoveAll(b.bfs, full(p)); err != nil {
		return translate("rmdir", p, err)
	}
	b.forgetTree(p)
	return nil
}

// List returns the direct children of the directory at p.
func (b *Backend) List(p string) ([]core.Entry, error) {
	p = normalize(p)

	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.list("list", p)
}

func (b *Backend) list(op, p string) ([]core.Entry, error) {
	info, err := b.stat(op, p)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, core.PathError(op, p, core.ErrNotDir)
	}

	infos, err := b.bfs.ReadDir(full(p))
	if err != nil {
		return nil, translate(op, p, err)
	}

	entries := make([]core.Entry, 0, len(infos))
	for _, fi := range infos {
		entries = append(entries, b.entry(core.Join(p, fi.Name()), fi))
	}
	slices.SortFunc(entries, func(a, c core.Entry) int { return strings.Compare(a.Path, c.Path) })
	return entries, nil
}

// ListRecursive returns every entry below the directory at p.
func (b *Backend) ListRecursive(p string) ([]core.Entry, error) {
	p = normalize(p)

	b.mu.RLock()
	defer b.mu.RUnlock()

	var all []core.Entry
	if err := b.walk(p, func(e core.Entry) { all = append(all, e) }); err != nil {
		return nil, err
	}
	slices.SortFunc(all, func(a, c core.Entry) int { return strings.Compare(a.Path, c.Path) })
	return all, nil
}

func (b *Backend) walk(p string, fn func(core.Entry)) error {
	entries, err := b.list("walk", p)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fn(e)
		if e.IsDir() {
			if err := b.walk(e.Path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Rename moves a file or directory from oldPath to newPath.
// The destination must not exist.
func (b *Backend) Rename(oldPath, newPath string) error {
	oldPath, newPath = normalize(oldPath), normalize(newPath)
	if oldPath == newPath {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	info, err := b.stat("rename", oldPath)
	if err != nil {
		return err
	}
	if _, err := b.bfs.Stat(full(newPath)); err == nil {
		return core.PathError("rename", newPath, core.ErrExist)
	}
	if info.IsDir() && (oldPath == "" || strings.HasPrefix(newPath, oldPath+"/")) {
		return core.PathError("rename", newPath, errMoveIntoSelf)
	}
	if err := b.mkdirAll(path.Dir(full(newPath))); err != nil {
		return translate("rename", newPath, err)
	}

	if b.typ == core.BackendTypeLocal {
		if err := b.bfs.Rename(full(oldPath), full(newPath)); err != nil {
			return translate("rename", oldPath, err)
		}
		return nil
	}

	if err := b.move(oldPath, newPath, info.IsDir()); err != nil {
		return translate("rename", oldPath, err)
	}
	return nil
}

// move relocates a file or tree one entry at a time.
func (b *Backend) move(oldPath, newPath string, dir bool) error {
	if !dir {
		data, err := util.ReadFile(b.bfs, full(oldPath))
		if err != nil {
			return err
		}
		mtime, tracked := b.mtimes[oldPath]
		if err := b.write(newPath, data); err != nil {
			return err
		}
		if tracked {
			b.mtimes[newPath] = mtime
		}
		if err := b.bfs.Remove(full(oldPath)); err != nil {
			return err
		}
		delete(b.mtimes, oldPath)
		return nil
	}

	if err := b.bfs.MkdirAll(full(newPath), b.cfg.dirMode); err != nil {
		return err
	}
	infos, err := b.bfs.ReadDir(full(oldPath))
	if err != nil {
		return err
	}
	for _, fi := range infos {
		if err := b.move(core.Join(oldPath, fi.Name()), core.Join(newPath, fi.Name()), fi.IsDir()); err != nil {
			return err
		}
	}
	return b.bfs.Remove(full(oldPath))
}

func (b *Backend) forgetTree(p string) {
	for k := range b.mtimes {
		if k == p || strings.HasPrefix(k, p+"/") {
			delete(b.mtimes, k)
		}
	}
}

// Size returns the size in bytes of the file at p.
func (b *Backend) Size(p string) (int64, error) {
	e, err := b.Metadata(p)
	if err != nil {
		return 0, err
	}
	if e.IsDir() {
		return 0, core.PathError("size", e.Path, core.ErrIsDir)
	}
	return e.Size, nil
}

// MimeType detects the MIME type of the file at p from its content.
func (b *Backend) MimeType(p string) (string, error) {
	p = normalize(p)

	b.mu.RLock()
	defer b.mu.RUnlock()

	f, err := b.bfs.Open(full(p))
	if err != nil {
		return "", translate("mimetype", p, err)
	}
	defer func() { _ = f.Close() }()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", translate("mimetype", p, err)
	}
	return mtype.String(), nil
}
