package core

import (
	"time"
)

//go:generate go run github.com/matryer/moq@v0.5.3 -pkg mocks -out mocks/backend.go . Backend

// BackendType represents the kind of storage behind a Backend.
type BackendType int

const (
	// BackendTypeUnknown indicates the backend type is unknown or unspecified.
	BackendTypeUnknown BackendType = iota
	// BackendTypeLocal indicates a disk-backed backend.
	BackendTypeLocal
	// BackendTypeMemory indicates an in-memory backend.
	BackendTypeMemory
	// BackendTypeRemote indicates a remote object store such as S3 or MinIO.
	BackendTypeRemote
	// BackendTypeKV indicates an embedded key/value store.
	BackendTypeKV
)

// String returns a string representation of the BackendType.
func (t BackendType) String() string {
	switch t {
	case BackendTypeLocal:
		return "local"
	case BackendTypeMemory:
		return "memory"
	case BackendTypeRemote:
		return "remote"
	case BackendTypeKV:
		return "kv"
	default:
		return "unknown"
	}
}

// EntryType distinguishes files from directories.
type EntryType int

const (
	// EntryFile is a regular file.
	EntryFile EntryType = iota
	// EntryDir is a directory.
	EntryDir
)

// String returns "file" or "dir".
func (t EntryType) String() string {
	if t == EntryDir {
		return "dir"
	}
	return "file"
}

// Entry describes a single file or directory in a backend.
//
// Backends expose one timestamp per entry. For object stores it is the last
// modification time. Directories report a zero size and, where the backend
// keeps no directory metadata, a zero timestamp.
type Entry struct {
	// Path is relative to the backend root, without leading or trailing slash.
	Path      string
	Type      EntryType
	Size      int64
	Timestamp time.Time
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Type == EntryDir
}

// Backend is the storage port the driver depends on.
//
// Paths are relative to the backend root. Failures wrap the sentinels of this
// package in *fs.PathError so callers can use errors.Is.
//
// Implementations must be safe for concurrent use.
type Backend interface {
	// Exists reports whether a file or directory exists at path.
	Exists(path string) (bool, error)

	// Metadata returns the entry at path.
	// Returns ErrNotExist if nothing exists there.
	Metadata(path string) (Entry, error)

	// IsDir reports whether path is an existing directory.
	IsDir(path string) (bool, error)

	// IsFile reports whether path is an existing file.
	IsFile(path string) (bool, error)

	// Read returns the contents of the file at path.
	// Returns ErrNotExist if the file does not exist.
	Read(path string) ([]byte, error)

	// Write stores data at path, replacing any existing file.
	// Missing parent directories are created.
	Write(path string, data []byte) error

	// Delete removes the file at path.
	// Returns ErrNotExist if the file does not exist.
	Delete(path string) error

	// CreateDir creates the directory at path and any missing parents.
	// Creating an existing directory is not an error.
	CreateDir(path string) error

	// DeleteDir removes the directory at path and everything below it.
	// Returns ErrNotExist if the directory does not exist.
	DeleteDir(path string) error

	// List returns the direct children of the directory at path, sorted by
	// path. Returns ErrNotExist if the directory does not exist.
	List(path string) ([]Entry, error)

	// Rename moves a file or a whole directory from oldPath to newPath.
	Rename(oldPath, newPath string) error

	// Size returns the size in bytes of the file at path.
	Size(path string) (int64, error)

	// Type returns the kind of storage behind the backend.
	Type() BackendType
}

// RecursiveLister is implemented by backends that can enumerate a subtree
// natively. Entries are sorted by path and do not include path itself.
type RecursiveLister interface {
	ListRecursive(path string) ([]Entry, error)
}

// MimeTypeDetector is implemented by backends that can detect the MIME type
// of a file from its content.
type MimeTypeDetector interface {
	MimeType(path string) (string, error)
}

// PublicURLer is implemented by backends whose entries are reachable by URL.
// The boolean is false when no URL can be produced for path.
type PublicURLer interface {
	PublicURL(path string) (string, bool)
}

// Copier is implemented by backends that can copy a file without
// transferring its content through the caller.
type Copier interface {
	Copy(srcPath, dstPath string) error
}
