package driver

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jmgilman/go/fsdriver/errors"
	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/identifier"
)

// Driver performs file and folder operations against one backend.
type Driver struct {
	backend      core.Backend
	storageID    string
	entryPath    string
	capabilities Capabilities
	logger       *zap.Logger
	tempDir      string
	extractor    *extractor
}

// New creates a driver for backend.
func New(backend core.Backend, opts ...Option) *Driver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := &Driver{
		backend:      backend,
		storageID:    o.storageID,
		entryPath:    core.Join(o.entryPath),
		capabilities: o.capabilities,
		logger:       o.logger.With(zap.String("storage", o.storageID)),
		tempDir:      o.tempDir,
	}
	d.extractor = &extractor{d: d}
	return d
}

// Backend returns the backend the driver operates on.
func (d *Driver) Backend() core.Backend {
	return d.backend
}

// Close closes the backend when it holds resources.
func (d *Driver) Close() error {
	if c, ok := d.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// path maps an identifier onto its backend path.
func (d *Driver) path(id string) string {
	return core.Join(d.entryPath, identifier.ToBackendPath(id))
}

// identifierOf maps a backend path back onto an identifier.
func (d *Driver) identifierOf(p string, dir bool) string {
	if d.entryPath != "" {
		p = strings.TrimPrefix(strings.TrimPrefix(p, d.entryPath), "/")
	}
	return identifier.FromBackendPath(p, dir)
}

// GetRootLevelFolder returns the identifier of the storage root.
func (d *Driver) GetRootLevelFolder() string {
	return identifier.Root
}

// Capabilities returns the current capability set.
func (d *Driver) Capabilities() Capabilities {
	return d.capabilities
}

// HasCapability reports whether every bit of c is enabled.
func (d *Driver) HasCapability(c Capabilities) bool {
	return d.capabilities.Has(c)
}

// MergeConfigurationCapabilities intersects the driver's capabilities with
// caps and returns the result.
func (d *Driver) MergeConfigurationCapabilities(caps Capabilities) Capabilities {
	d.capabilities &= caps
	return d.capabilities
}

// FolderExists reports whether id names an existing folder. The root always
// exists.
func (d *Driver) FolderExists(id string) bool {
	id = identifier.CanonicalizeFolder(id)
	if id == identifier.Root {
		return true
	}
	ok, err := d.backend.IsDir(d.path(id))
	if err != nil {
		d.logger.Debug("folder existence check failed", zap.String("identifier", id), zap.Error(err))
	}
	return ok
}

// FileExists reports whether id names an existing file. Folders are not
// files.
func (d *Driver) FileExists(id string) bool {
	id = identifier.CanonicalizeFile(id)
	if id == identifier.Root {
		return false
	}
	ok, err := d.backend.IsFile(d.path(id))
	if err != nil {
		d.logger.Debug("file existence check failed", zap.String("identifier", id), zap.Error(err))
	}
	return ok
}

// FileExistsInFolder reports whether folderID contains a file called name.
func (d *Driver) FileExistsInFolder(name, folderID string) bool {
	return d.FileExists(d.GetFileInFolder(name, folderID))
}

// FolderExistsInFolder reports whether folderID contains a folder called name.
func (d *Driver) FolderExistsInFolder(name, folderID string) bool {
	return d.FolderExists(d.GetFolderInFolder(name, folderID))
}

// GetFileInFolder returns the identifier of the file name inside folderID.
func (d *Driver) GetFileInFolder(name, folderID string) string {
	return identifier.CanonicalizeFile(folderID + "/" + name)
}

// GetFolderInFolder returns the identifier of the folder name inside folderID.
func (d *Driver) GetFolderInFolder(name, folderID string) string {
	return identifier.CanonicalizeFolder(folderID + "/" + name)
}

// IsWithin reports whether id equals containerID or lies below it.
func (d *Driver) IsWithin(containerID, id string) bool {
	return identifier.IsWithin(containerID, id)
}

// HashIdentifier returns the SHA-1 of the canonical file form of id.
func (d *Driver) HashIdentifier(id string) string {
	sum := sha1.Sum([]byte(identifier.CanonicalizeFile(id)))
	return hex.EncodeToString(sum[:])
}

// Permissions are the access flags of a file or folder.
type Permissions struct {
	Read  bool `json:"r"`
	Write bool `json:"w"`
}

// GetPermissions returns the permissions of id. Everything is readable and
// writable unless the storage is read-only.
func (d *Driver) GetPermissions(id string) Permissions {
	return Permissions{Read: true, Write: d.HasCapability(CapabilityWritable)}
}

// sanitize trims surrounding slashes from name and sanitizes it.
func (d *Driver) sanitize(op, name string) (string, error) {
	clean, err := identifier.SanitizeFileName(strings.Trim(name, "/"))
	if err != nil {
		d.logger.Warn("invalid name", zap.String("operation", op), zap.String("name", name))
		return "", errors.WithContextMap(err, map[string]interface{}{
			"operation": op,
			"name":      name,
		})
	}
	return clean, nil
}

// CreateFolder creates the folder name inside parentID and returns its
// identifier. Without recursive the parent must already exist.
func (d *Driver) CreateFolder(name, parentID string, recursive bool) (string, error) {
	const op = "create_folder"
	parentID = identifier.CanonicalizeFolder(parentID)

	clean, err := d.sanitize(op, name)
	if err != nil {
		return "", err
	}
	id := identifier.JoinFolder(parentID, clean)

	if !recursive && !d.FolderExists(parentID) {
		return "", d.failure(op, id, errors.CodeOperationFailed, core.ErrNotExist, "parent folder does not exist")
	}
	if err := d.backend.CreateDir(d.path(id)); err != nil {
		return "", d.failure(op, id, errors.CodeOperationFailed, err, "creating folder failed")
	}

	d.logger.Debug("folder created", zap.String("identifier", id))
	return id, nil
}

// DeleteFolder removes the folder id. Without recursive the folder must be
// empty.
func (d *Driver) DeleteFolder(id string, recursive bool) error {
	const op = "delete_folder"
	id = identifier.CanonicalizeFolder(id)

	if id == identifier.Root {
		return d.failure(op, id, errors.CodeOperationFailed, core.ErrPermission, "deleting the root folder is not allowed")
	}
	if !recursive {
		empty, err := d.IsFolderEmpty(id)
		if err != nil {
			return d.failure(op, id, errors.CodeOperationFailed, err, "deleting folder failed")
		}
		if !empty {
			return d.failure(op, id, errors.CodeOperationFailed, nil, "folder is not empty")
		}
	}
	if err := d.backend.DeleteDir(d.path(id)); err != nil {
		return d.failure(op, id, errors.CodeOperationFailed, err, "deleting folder failed")
	}

	d.logger.Debug("folder deleted", zap.String("identifier", id), zap.Bool("recursive", recursive))
	return nil
}

// IsFolderEmpty reports whether the folder id has no children.
func (d *Driver) IsFolderEmpty(id string) (bool, error) {
	id = identifier.CanonicalizeFolder(id)
	entries, err := d.entries(d.path(id), false)
	if err != nil {
		return false, d.failure("is_folder_empty", id, missingCode(err), err, "listing folder failed")
	}
	return len(entries) == 0, nil
}

// RenameFolder renames the folder id to newName inside its parent. It
// returns a mapping of every affected identifier to its new value. When the
// rename fails the folder is mapped to itself and no error is raised.
func (d *Driver) RenameFolder(id, newName string) map[string]string {
	const op = "rename_folder"
	id = identifier.CanonicalizeFolder(id)
	identity := map[string]string{id: id}

	if id == identifier.Root {
		return identity
	}
	clean, err := d.sanitize(op, newName)
	if err != nil {
		return identity
	}

	target := identifier.JoinFolder(identifier.Parent(id), clean)
	mapping, err := d.moveFolder(id, target)
	if err != nil {
		_ = d.failure(op, id, targetCode(err), err, "renaming folder failed")
		return identity
	}

	d.logger.Debug("folder renamed", zap.String("identifier", id), zap.String("target", target))
	return mapping
}

// moveFolder renames the folder src to dst and maps the identifiers of the
// folder and everything below it.
func (d *Driver) moveFolder(src, dst string) (map[string]string, error) {
	if src == dst {
		return map[string]string{src: dst}, nil
	}
	if identifier.IsWithin(src, dst) {
		return nil, fmt.Errorf("cannot move %s into itself", src)
	}

	srcPath := d.path(src)
	entries, err := core.Walk(d.backend, srcPath)
	if err != nil {
		return nil, err
	}
	if err := d.backend.Rename(srcPath, d.path(dst)); err != nil {
		return nil, err
	}

	mapping := map[string]string{src: dst}
	for _, e := range entries {
		oldID := d.identifierOf(e.Path, e.IsDir())
		mapping[oldID] = dst + strings.TrimPrefix(oldID, src)
	}
	return mapping, nil
}

// CreateFile creates an empty file name inside parentID and returns its
// identifier.
func (d *Driver) CreateFile(name, parentID string) (string, error) {
	const op = "create_file"
	if !identifier.IsValidFileName(strings.TrimLeft(name, "/")) {
		d.logger.Warn("invalid name", zap.String("operation", op), zap.String("name", name))
		return "", errors.WithContextMap(
			errors.Newf(errors.CodeInvalidName, "invalid characters in file name %q", name),
			map[string]interface{}{"operation": op, "name": name},
		)
	}

	clean, err := d.sanitize(op, name)
	if err != nil {
		return "", err
	}
	id := identifier.Join(parentID, clean)

	if err := d.backend.Write(d.path(id), nil); err != nil {
		return "", d.failure(op, id, errors.CodeOperationFailed, err, "creating file failed")
	}

	d.logger.Debug("file created", zap.String("identifier", id))
	return id, nil
}

// AddFile copies the local file localPath into targetFolderID under
// newName, or its own name when newName is empty, and returns the new
// identifier.
//
// With removeOriginal the local file is removed only once the new file is
// confirmed to exist. If that removal fails the identifier is returned
// together with the error.
func (d *Driver) AddFile(localPath, targetFolderID, newName string, removeOriginal bool) (string, error) {
	const op = "add_file"
	if newName == "" {
		newName = filepath.Base(localPath)
	}
	clean, err := d.sanitize(op, newName)
	if err != nil {
		return "", err
	}
	id := identifier.Join(targetFolderID, clean)

	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", d.failure(op, id, errors.CodeOperationFailed, err, "reading local file failed")
	}
	if err := d.backend.Write(d.path(id), data); err != nil {
		return "", d.failure(op, id, errors.CodeOperationFailed, err, "writing file failed")
	}
	if !d.FileExists(id) {
		return "", d.failure(op, id, errors.CodeOperationFailed, nil, "file not present after write")
	}

	if removeOriginal {
		if err := os.Remove(localPath); err != nil {
			return id, d.failure(op, id, errors.CodeOperationFailed, err, "removing local file failed")
		}
	}

	d.logger.Debug("file added",
		zap.String("identifier", id),
		zap.String("source", localPath),
		zap.Int("size", len(data)),
	)
	return id, nil
}

// ReplaceFile overwrites the existing file id with the contents of the
// local file localPath.
func (d *Driver) ReplaceFile(id, localPath string) error {
	const op = "replace_file"
	id = identifier.CanonicalizeFile(id)

	if !d.FileExists(id) {
		return d.failure(op, id, errors.CodeNotFound, core.ErrNotExist, "file does not exist")
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return d.failure(op, id, errors.CodeOperationFailed, err, "reading local file failed")
	}
	if err := d.backend.Write(d.path(id), data); err != nil {
		return d.failure(op, id, errors.CodeOperationFailed, err, "replacing file failed")
	}

	d.logger.Debug("file replaced", zap.String("identifier", id), zap.String("source", localPath))
	return nil
}

// RenameFile renames the file id to newName inside its folder and returns
// the new identifier. An existing target is never overwritten.
func (d *Driver) RenameFile(id, newName string) (string, error) {
	const op = "rename_file"
	id = identifier.CanonicalizeFile(id)

	clean, err := d.sanitize(op, newName)
	if err != nil {
		return "", err
	}
	target := identifier.Join(identifier.Parent(id), clean)
	if target == id {
		return id, nil
	}

	if d.FileExists(target) {
		return "", d.failure(op, target, errors.CodeExistingTarget, core.ErrExist, "target file already exists")
	}
	if err := d.backend.Rename(d.path(id), d.path(target)); err != nil {
		return "", d.failure(op, id, targetCode(err), err, "renaming file failed")
	}

	d.logger.Debug("file renamed", zap.String("identifier", id), zap.String("target", target))
	return target, nil
}

// DeleteFile removes the file id.
func (d *Driver) DeleteFile(id string) error {
	const op = "delete_file"
	id = identifier.CanonicalizeFile(id)

	if err := d.backend.Delete(d.path(id)); err != nil {
		return d.failure(op, id, errors.CodeOperationFailed, err, "deleting file failed")
	}

	d.logger.Debug("file deleted", zap.String("identifier", id))
	return nil
}

// fileTarget resolves the destination of a copy or move of the file id
// into folderID. An empty name keeps the source name.
func (d *Driver) fileTarget(op, id, folderID, name string) (string, error) {
	if !d.FileExists(id) {
		return "", d.failure(op, id, errors.CodeNotFound, core.ErrNotExist, "file does not exist")
	}
	if name == "" {
		name = identifier.Base(id)
	}
	clean, err := d.sanitize(op, name)
	if err != nil {
		return "", err
	}
	target := identifier.Join(folderID, clean)
	if d.FileExists(target) || d.FolderExists(target) {
		return "", d.failure(op, target, errors.CodeExistingTarget, core.ErrExist, "target already exists")
	}
	return target, nil
}

// CopyFileWithinStorage copies the file id into targetFolderID as fileName
// and returns the identifier of the copy.
func (d *Driver) CopyFileWithinStorage(id, targetFolderID, fileName string) (string, error) {
	const op = "copy_file"
	id = identifier.CanonicalizeFile(id)

	target, err := d.fileTarget(op, id, targetFolderID, fileName)
	if err != nil {
		return "", err
	}
	if err := core.CopyFile(d.backend, d.path(id), d.path(target)); err != nil {
		return "", d.failure(op, id, errors.CodeOperationFailed, err, "copying file failed")
	}

	d.logger.Debug("file copied", zap.String("identifier", id), zap.String("target", target))
	return target, nil
}

// MoveFileWithinStorage moves the file id into targetFolderID as newName
// and returns the new identifier.
func (d *Driver) MoveFileWithinStorage(id, targetFolderID, newName string) (string, error) {
	const op = "move_file"
	id = identifier.CanonicalizeFile(id)

	target, err := d.fileTarget(op, id, targetFolderID, newName)
	if err != nil {
		return "", err
	}
	if err := d.backend.Rename(d.path(id), d.path(target)); err != nil {
		return "", d.failure(op, id, targetCode(err), err, "moving file failed")
	}

	d.logger.Debug("file moved", zap.String("identifier", id), zap.String("target", target))
	return target, nil
}

// folderTarget resolves the destination of a copy or move of the folder
// src into targetFolderID.
func (d *Driver) folderTarget(op, src, targetFolderID, name string) (string, error) {
	if src == identifier.Root || !d.FolderExists(src) {
		return "", d.failure(op, src, errors.CodeNotFound, core.ErrNotExist, "folder does not exist")
	}
	if name == "" {
		name = identifier.Base(src)
	}
	clean, err := d.sanitize(op, name)
	if err != nil {
		return "", err
	}
	target := identifier.JoinFolder(targetFolderID, clean)
	if identifier.IsWithin(src, target) {
		return "", d.failure(op, src, errors.CodeInvalidArgument, nil, "cannot copy or move a folder into itself")
	}
	if d.FolderExists(target) || d.FileExists(target) {
		return "", d.failure(op, target, errors.CodeExistingTarget, core.ErrExist, "target already exists")
	}
	return target, nil
}

// CopyFolderWithinStorage copies the folder src and everything below it
// into targetFolderID as newName.
func (d *Driver) CopyFolderWithinStorage(src, targetFolderID, newName string) error {
	const op = "copy_folder"
	src = identifier.CanonicalizeFolder(src)

	target, err := d.folderTarget(op, src, targetFolderID, newName)
	if err != nil {
		return err
	}
	if err := core.CopyTree(d.backend, d.path(src), d.path(target)); err != nil {
		return d.failure(op, src, errors.CodeOperationFailed, err, "copying folder failed")
	}

	d.logger.Debug("folder copied", zap.String("identifier", src), zap.String("target", target))
	return nil
}

// MoveFolderWithinStorage moves the folder src into targetFolderID as
// newName and returns a mapping of every affected identifier. Unlike
// RenameFolder, failures are returned as errors.
func (d *Driver) MoveFolderWithinStorage(src, targetFolderID, newName string) (map[string]string, error) {
	const op = "move_folder"
	src = identifier.CanonicalizeFolder(src)

	target, err := d.folderTarget(op, src, targetFolderID, newName)
	if err != nil {
		return nil, err
	}
	mapping, err := d.moveFolder(src, target)
	if err != nil {
		return nil, d.failure(op, src, targetCode(err), err, "moving folder failed")
	}

	d.logger.Debug("folder moved", zap.String("identifier", src), zap.String("target", target))
	return mapping, nil
}

// GetFileContents returns the contents of the file id.
func (d *Driver) GetFileContents(id string) ([]byte, error) {
	id = identifier.CanonicalizeFile(id)
	data, err := d.backend.Read(d.path(id))
	if err != nil {
		return nil, d.failure("get_contents", id, missingCode(err), err, "reading file failed")
	}
	return data, nil
}

// DumpFileContents writes the contents of the file id to w and returns the
// number of bytes written.
func (d *Driver) DumpFileContents(id string, w io.Writer) (int64, error) {
	data, err := d.GetFileContents(id)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, bytes.NewReader(data))
	if err != nil {
		return n, d.failure("dump_contents", identifier.CanonicalizeFile(id), errors.CodeOperationFailed, err, "writing contents failed")
	}
	return n, nil
}

// SetFileContents replaces the contents of the file id and returns its
// size as reported by the backend afterwards.
func (d *Driver) SetFileContents(id string, data []byte) (int64, error) {
	const op = "set_contents"
	id = identifier.CanonicalizeFile(id)
	p := d.path(id)

	if err := d.backend.Write(p, data); err != nil {
		return 0, d.failure(op, id, errors.CodeOperationFailed, err, "writing file failed")
	}
	size, err := d.backend.Size(p)
	if err != nil {
		return 0, d.failure(op, id, errors.CodeOperationFailed, err, "reading size after write failed")
	}

	d.logger.Debug("file contents set", zap.String("identifier", id), zap.Int64("size", size))
	return size, nil
}

// Hash returns the lowercase hex digest of the file id using algorithm
// "sha1" or "md5". The digest covers the name, size, modification time and
// identifier of the file, not its contents.
func (d *Driver) Hash(id, algorithm string) (string, error) {
	var h hash.Hash
	switch algorithm {
	case "sha1":
		h = sha1.New()
	case "md5":
		h = md5.New()
	default:
		return "", d.failure("hash", identifier.CanonicalizeFile(id), errors.CodeInvalidArgument, nil,
			fmt.Sprintf("hash algorithm %q is not supported", algorithm))
	}

	info, err := d.GetFileInfoByIdentifier(id, PropertyName, PropertySize, PropertyMTime, PropertyIdentifier)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(h, "%s-%d-%d-%s", info.Name, info.Size, info.MTime.Unix(), info.Identifier)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// GetFileInfoByIdentifier returns the requested properties of the file id,
// or all of them when none are named.
func (d *Driver) GetFileInfoByIdentifier(id string, properties ...string) (FileInfo, error) {
	id = identifier.CanonicalizeFile(id)
	return d.extractor.extract(d.path(id), identifier.Parent(id), properties)
}

// FolderInfo describes a folder.
type FolderInfo struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	StorageID  string `json:"storage"`
}

// GetFolderInfoByIdentifier describes the folder id.
func (d *Driver) GetFolderInfoByIdentifier(id string) (FolderInfo, error) {
	id = identifier.CanonicalizeFolder(id)
	if !d.FolderExists(id) {
		return FolderInfo{}, d.failure("folder_info", id, errors.CodeNotFound, core.ErrNotExist, "folder does not exist")
	}
	return FolderInfo{
		Identifier: id,
		Name:       identifier.Base(id),
		StorageID:  d.storageID,
	}, nil
}

// GetDefaultFolder returns the folder new files go to, creating it on
// first use.
func (d *Driver) GetDefaultFolder() (string, error) {
	id := identifier.JoinFolder(identifier.Root, DefaultFolderName)
	if d.FolderExists(id) {
		return id, nil
	}
	return d.CreateFolder(DefaultFolderName, identifier.Root, true)
}

// GetFileForLocalProcessing copies the file id to a new temporary file and
// returns its path. The caller owns the copy and must remove it. The copy
// is made whether or not writable is set.
func (d *Driver) GetFileForLocalProcessing(id string, writable bool) (string, error) {
	const op = "local_copy"
	data, err := d.GetFileContents(id)
	if err != nil {
		return "", err
	}
	id = identifier.CanonicalizeFile(id)

	f, err := os.CreateTemp(d.tempDir, "fsdriver-*-"+strings.ReplaceAll(identifier.Base(id), "*", "_"))
	if err != nil {
		return "", d.failure(op, id, errors.CodeOperationFailed, err, "creating temporary file failed")
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", d.failure(op, id, errors.CodeOperationFailed, err, "writing temporary file failed")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", d.failure(op, id, errors.CodeOperationFailed, err, "writing temporary file failed")
	}

	d.logger.Debug("local copy created",
		zap.String("identifier", id),
		zap.String("path", f.Name()),
		zap.Bool("writable", writable),
	)
	return f.Name(), nil
}

// GetPublicURL returns the public URL of id, or "/" when the backend cannot
// address it or the storage is not public.
func (d *Driver) GetPublicURL(id string) string {
	if !d.HasCapability(CapabilityPublic) {
		return identifier.Root
	}
	if u, ok := d.backend.(core.PublicURLer); ok {
		if url, ok := u.PublicURL(d.path(id)); ok {
			return url
		}
	}
	return identifier.Root
}
