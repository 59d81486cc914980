// Package identifier canonicalizes and validates the path strings the driver
// uses to name files and folders.
//
// An identifier is always absolute. Folder identifiers end with a slash, file
// identifiers never do, and the root is "/". Canonicalization is idempotent:
// feeding a canonical identifier back in returns it unchanged.
//
//	identifier.CanonicalizeFolder(`a\b//c/../`) // "/a/b/"
//	identifier.CanonicalizeFile("/a/./b.txt")    // "/a/b.txt"
//	identifier.IsWithin("/a/", "/a/b.txt")       // true
//
// Backends address entries by relative paths without leading or trailing
// slashes. ToBackendPath and FromBackendPath convert between the two forms.
package identifier
