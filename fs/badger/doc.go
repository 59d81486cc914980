// Package badger provides a core.Backend that stores a file tree in a
// BadgerDB key-value store.
//
// Every file and directory is one key. The value carries the entry type,
// its modification time and, for files, the content. Writing a file
// creates any missing parent directories.
//
// Usage:
//
//	// Persistent store
//	backend, err := badger.New(badger.Config{Path: "/var/lib/fsdriver"})
//	defer backend.Close()
//
//	// In-memory store for tests
//	backend, err := badger.New(badger.Config{InMemory: true})
//
// Mutations are serialized by the backend; reads run against Badger
// snapshots and may proceed concurrently.
package badger
