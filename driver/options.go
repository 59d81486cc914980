package driver

import (
	"go.uber.org/zap"
)

// DefaultFolderName is the folder GetDefaultFolder creates below the root.
const DefaultFolderName = "user_upload"

type options struct {
	storageID    string
	entryPath    string
	capabilities Capabilities
	logger       *zap.Logger
	tempDir      string
}

func defaultOptions() options {
	return options{
		capabilities: DefaultCapabilities,
		logger:       zap.NewNop(),
	}
}

// Option configures a Driver.
type Option func(*options)

// WithStorageID sets the storage identifier reported in file and folder
// information.
func WithStorageID(id string) Option {
	return func(o *options) {
		o.storageID = id
	}
}

// WithEntryPath places the storage root at path inside the backend.
func WithEntryPath(path string) Option {
	return func(o *options) {
		o.entryPath = path
	}
}

// WithCapabilities restricts the driver to caps. The result is the
// intersection with DefaultCapabilities.
func WithCapabilities(caps Capabilities) Option {
	return func(o *options) {
		o.capabilities = DefaultCapabilities & caps
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTempDir sets the directory for local copies made by
// GetFileForLocalProcessing. The default is os.TempDir().
func WithTempDir(dir string) Option {
	return func(o *options) {
		o.tempDir = dir
	}
}
