package driver

import (
	stderrors "errors"

	"github.com/jmgilman/go/fsdriver/errors"
	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/identifier"
)

// FilterFunc decides whether a listed identifier is kept.
type FilterFunc func(id string) bool

// ListOptions are the listing parameters of the folder listing operations.
//
// Only Recursive has an effect, and only on backends implementing
// core.RecursiveLister. Pagination, filtering and sorting are accepted for
// interface compatibility and not applied: results are maps, which carry
// no order.
type ListOptions struct {
	Start         int
	NumberOfItems int
	Recursive     bool
	Filters       []FilterFunc
	Sort          string
	SortReverse   bool
}

// GetFilesInFolder returns the files inside the folder id, keyed and valued
// by identifier.
func (d *Driver) GetFilesInFolder(id string, opts ListOptions) (map[string]string, error) {
	return d.list("list_files", id, opts, core.EntryFile)
}

// GetFoldersInFolder returns the folders inside the folder id, keyed and
// valued by identifier.
func (d *Driver) GetFoldersInFolder(id string, opts ListOptions) (map[string]string, error) {
	return d.list("list_folders", id, opts, core.EntryDir)
}

// CountFilesInFolder returns the number of entries GetFilesInFolder returns.
func (d *Driver) CountFilesInFolder(id string, opts ListOptions) (int, error) {
	files, err := d.GetFilesInFolder(id, opts)
	return len(files), err
}

// CountFoldersInFolder returns the number of entries GetFoldersInFolder
// returns.
func (d *Driver) CountFoldersInFolder(id string, opts ListOptions) (int, error) {
	folders, err := d.GetFoldersInFolder(id, opts)
	return len(folders), err
}

func (d *Driver) list(op, id string, opts ListOptions, typ core.EntryType) (map[string]string, error) {
	id = identifier.CanonicalizeFolder(id)

	entries, err := d.entries(d.path(id), opts.Recursive)
	if err != nil {
		return nil, d.failure(op, id, errors.CodeOperationFailed, err, "listing folder failed")
	}

	out := make(map[string]string)
	for _, e := range entries {
		if e.Type != typ {
			continue
		}
		child := d.identifierOf(e.Path, e.IsDir())
		out[child] = child
	}
	return out, nil
}

// entries lists p, recursing only when the backend lists recursively
// itself. The root folder always exists, so a missing entry path lists as
// empty.
func (d *Driver) entries(p string, recursive bool) ([]core.Entry, error) {
	entries, err := d.listBackend(p, recursive)
	if err != nil && p == d.entryPath && stderrors.Is(err, core.ErrNotExist) {
		return nil, nil
	}
	return entries, err
}

func (d *Driver) listBackend(p string, recursive bool) ([]core.Entry, error) {
	if recursive {
		if rl, ok := d.backend.(core.RecursiveLister); ok {
			entries, err := rl.ListRecursive(p)
			if !stderrors.Is(err, core.ErrUnsupported) {
				return entries, err
			}
		}
	}
	return d.backend.List(p)
}
