package driver

import (
	"io/fs"

	"go.uber.org/zap"

	"github.com/jmgilman/go/fsdriver/errors"
	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/identifier"
)

// ImportFolder copies the tree below srcRoot in src into the folder id,
// creating it when missing. Existing files with the same names are
// overwritten. Use "." as srcRoot to import all of src.
//
// Example:
//
//	err := d.ImportFolder(os.DirFS("./seed"), ".", "/user_upload/")
func (d *Driver) ImportFolder(src fs.FS, srcRoot, id string) error {
	const op = "import_folder"
	id = identifier.CanonicalizeFolder(id)

	if err := core.CopyFromFS(src, d.backend, srcRoot, d.path(id)); err != nil {
		return d.failure(op, id, errors.CodeOperationFailed, err, "importing folder failed")
	}

	d.logger.Debug("folder imported", zap.String("identifier", id), zap.String("source", srcRoot))
	return nil
}
