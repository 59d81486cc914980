package identifier

import (
	"path"
	"strings"
)

// Root is the identifier of the storage root.
const Root = "/"

// clean converts backslashes, collapses repeated slashes and resolves dot
// segments. The result is rooted and has no trailing slash except for Root.
// ".." segments above the root are dropped.
func clean(raw string) string {
	raw = strings.ReplaceAll(raw, "\\", "/")
	return path.Clean("/" + raw)
}

// CanonicalizeFolder returns the canonical folder identifier for raw.
// The empty string and any all-slash input canonicalize to Root.
func CanonicalizeFolder(raw string) string {
	p := clean(raw)
	if p == Root {
		return Root
	}
	return p + "/"
}

// CanonicalizeFile returns the canonical file identifier for raw.
func CanonicalizeFile(raw string) string {
	return clean(raw)
}

// IsFolder reports whether id is written in folder form.
func IsFolder(id string) bool {
	return strings.HasSuffix(id, "/")
}

// IsWithin reports whether candidate equals container or lies below it.
// Both are compared in file form, so "/a" and "/a/" name the same container.
// Every identifier is within Root.
func IsWithin(container, candidate string) bool {
	c := CanonicalizeFile(container)
	id := CanonicalizeFile(candidate)
	if c == id {
		return true
	}
	if c != Root {
		c += "/"
	}
	return strings.HasPrefix(id, c)
}

// Parent returns the folder identifier containing id. The parent of Root is
// Root.
func Parent(id string) string {
	p := clean(id)
	if p == Root {
		return Root
	}
	return CanonicalizeFolder(path.Dir(p))
}

// Base returns the last segment of id, or "" for Root.
func Base(id string) string {
	p := clean(id)
	if p == Root {
		return ""
	}
	return path.Base(p)
}

// Join returns the file identifier of name inside folder.
func Join(folder, name string) string {
	return CanonicalizeFile(CanonicalizeFolder(folder) + name)
}

// JoinFolder returns the folder identifier of name inside folder.
func JoinFolder(folder, name string) string {
	return CanonicalizeFolder(CanonicalizeFolder(folder) + name)
}

// ToBackendPath strips the slashes a backend does not expect from id.
// Root maps to the empty path.
func ToBackendPath(id string) string {
	return strings.Trim(clean(id), "/")
}

// FromBackendPath turns a backend-relative path back into an identifier,
// in folder form when dir is set.
func FromBackendPath(p string, dir bool) string {
	if dir {
		return CanonicalizeFolder(p)
	}
	return CanonicalizeFile(p)
}
