// Package billy provides go-billy-backed implementations of core.Backend for
// local disks and in-memory trees.
//
// The local backend wraps osfs rooted at a directory; every backend path is
// resolved inside that directory. The memory backend wraps memfs and is
// intended for tests and scratch storage.
//
// Usage:
//
//	// Local storage rooted at /srv/fileadmin
//	backend, err := billy.NewLocal("/srv/fileadmin")
//
//	// In-memory storage
//	backend := billy.NewMemory()
//	err := backend.Write("docs/readme.txt", []byte("hello"))
//
//	// Unwrap for code that works with billy directly
//	bfs := backend.Unwrap()
//
// # Memory Backend
//
// memfs reports the current time as every file's modification time, so the
// memory backend records write times itself. Directory moves are performed
// entry by entry because memfs renames by key prefix.
//
// # Thread Safety
//
// Backend instances are safe for concurrent use by multiple goroutines.
package billy
