// Package core defines the storage backend port used by the driver.
//
// A backend is a hierarchical key/blob store addressed by slash-separated
// paths relative to its root. Paths never carry a leading or trailing slash
// and the empty path names the root. The driver owns identifier
// canonicalization and talks to backends only through the Backend interface,
// so local disks, in-memory trees, object stores and key/value stores are
// interchangeable.
//
// # Design Philosophy
//
//   - Zero dependencies: only the Go standard library
//   - Narrow port: every backend implements the same small surface
//   - Optional capabilities: type assertions expose backend-specific features
//   - Stdlib compatibility: failures wrap io/fs sentinels in *fs.PathError
//
// # Optional Capabilities
//
//   - RecursiveLister: enumerate a whole subtree in one call
//   - MimeTypeDetector: content-based MIME type detection
//   - PublicURLer: publicly reachable URLs for entries
//   - Copier: server-side copies
//   - io.Closer: backends holding resources that must be released
//
// # Usage Example
//
//	if err := backend.Write("docs/readme.txt", []byte("hello")); err != nil {
//	    return err
//	}
//	entries, err := backend.List("docs")
//
//	if lister, ok := backend.(core.RecursiveLister); ok {
//	    all, err := lister.ListRecursive("docs")
//	}
//
// # Implementations
//
//   - github.com/jmgilman/go/fsdriver/fs/billy - local disk and memory
//   - github.com/jmgilman/go/fsdriver/fs/minio - MinIO and S3-compatible stores
//   - github.com/jmgilman/go/fsdriver/fs/s3 - Amazon S3 via aws-sdk-go-v2
//   - github.com/jmgilman/go/fsdriver/fs/badger - embedded badger key/value store
//   - github.com/jmgilman/go/fsdriver/fs/instrumented - Prometheus metrics decorator
package core
