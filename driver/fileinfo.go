package driver

import (
	stderrors "errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/jmgilman/go/fsdriver/errors"
	"github.com/jmgilman/go/fsdriver/fs/core"
	"github.com/jmgilman/go/fsdriver/identifier"
)

// File information property names.
const (
	PropertySize           = "size"
	PropertyATime          = "atime"
	PropertyMTime          = "mtime"
	PropertyCTime          = "ctime"
	PropertyMimeType       = "mimetype"
	PropertyName           = "name"
	PropertyIdentifier     = "identifier"
	PropertyIdentifierHash = "identifier_hash"
	PropertyStorage        = "storage"
	PropertyFolderHash     = "folder_hash"
)

// AllProperties lists every property in the order they are extracted when
// none are requested.
var AllProperties = []string{
	PropertySize,
	PropertyATime,
	PropertyMTime,
	PropertyCTime,
	PropertyMimeType,
	PropertyName,
	PropertyIdentifier,
	PropertyIdentifierHash,
	PropertyStorage,
	PropertyFolderHash,
}

// DefaultMimeType is reported when the backend cannot detect content types.
const DefaultMimeType = "application/octet-stream"

// FileInfo describes a file. Only the fields named in Properties were
// extracted; the others hold zero values.
type FileInfo struct {
	Size           int64
	ATime          time.Time
	MTime          time.Time
	CTime          time.Time
	MimeType       string
	Name           string
	Identifier     string
	IdentifierHash string
	StorageID      string
	FolderHash     string

	// Properties lists the extracted properties in request order.
	Properties []string
}

// Map returns the extracted properties keyed by name. Times are Unix
// seconds.
func (fi FileInfo) Map() map[string]any {
	out := make(map[string]any, len(fi.Properties))
	for _, p := range fi.Properties {
		switch p {
		case PropertySize:
			out[p] = fi.Size
		case PropertyATime:
			out[p] = fi.ATime.Unix()
		case PropertyMTime:
			out[p] = fi.MTime.Unix()
		case PropertyCTime:
			out[p] = fi.CTime.Unix()
		case PropertyMimeType:
			out[p] = fi.MimeType
		case PropertyName:
			out[p] = fi.Name
		case PropertyIdentifier:
			out[p] = fi.Identifier
		case PropertyIdentifierHash:
			out[p] = fi.IdentifierHash
		case PropertyStorage:
			out[p] = fi.StorageID
		case PropertyFolderHash:
			out[p] = fi.FolderHash
		}
	}
	return out
}

// extractor composes FileInfo from one backend metadata lookup.
type extractor struct {
	d *Driver
}

// extract describes the file at backend path p inside the folder
// containerID.
func (x *extractor) extract(p, containerID string, properties []string) (FileInfo, error) {
	const op = "file_info"
	d := x.d
	id := identifier.Join(containerID, identifier.Base("/"+p))

	if len(properties) == 0 {
		properties = AllProperties
	}
	for _, prop := range properties {
		if !slices.Contains(AllProperties, prop) {
			return FileInfo{}, d.failure(op, id, errors.CodeInvalidArgument, nil,
				fmt.Sprintf("file information %q is not available", prop))
		}
	}

	entry, err := d.backend.Metadata(p)
	if err != nil {
		return FileInfo{}, d.failure(op, id, missingCode(err), err, "file does not exist")
	}
	if entry.IsDir() {
		return FileInfo{}, d.failure(op, id, errors.CodeNotFound, core.ErrIsDir, "file does not exist")
	}

	info := FileInfo{Properties: slices.Clone(properties)}
	for _, prop := range properties {
		switch prop {
		case PropertySize:
			info.Size = entry.Size
		case PropertyATime:
			info.ATime = entry.Timestamp
		case PropertyMTime:
			info.MTime = entry.Timestamp
		case PropertyCTime:
			info.CTime = entry.Timestamp
		case PropertyMimeType:
			info.MimeType = x.mimeType(p)
		case PropertyName:
			info.Name = identifier.Base(id)
		case PropertyIdentifier:
			info.Identifier = id
		case PropertyIdentifierHash:
			info.IdentifierHash = d.HashIdentifier(id)
		case PropertyStorage:
			info.StorageID = d.storageID
		case PropertyFolderHash:
			info.FolderHash = d.HashIdentifier(identifier.Parent(id))
		}
	}
	return info, nil
}

// mimeType asks the backend for the content type of p, falling back to
// DefaultMimeType.
func (x *extractor) mimeType(p string) string {
	detector, ok := x.d.backend.(core.MimeTypeDetector)
	if !ok {
		return DefaultMimeType
	}
	mtype, err := detector.MimeType(p)
	if err != nil {
		if !stderrors.Is(err, core.ErrUnsupported) {
			x.d.logger.Debug("mime type detection failed", zap.String("path", p), zap.Error(err))
		}
		return DefaultMimeType
	}
	return mtype
}
