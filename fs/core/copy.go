package core

import (
	"errors"
	"io/fs"
	"path"
	"strings"
)

// CopyFile copies the file at srcPath to dstPath inside b.
// Backends implementing Copier copy natively. Others, and copiers that
// report ErrUnsupported, are copied through Read and Write.
func CopyFile(b Backend, srcPath, dstPath string) error {
	if c, ok := b.(Copier); ok {
		if err := c.Copy(srcPath, dstPath); !errors.Is(err, ErrUnsupported) {
			return err
		}
	}

	data, err := b.Read(srcPath)
	if err != nil {
		return err
	}
	return b.Write(dstPath, data)
}

// CopyTree copies the directory at srcPath and everything below it to
// dstPath inside b. Empty directories are recreated.
//
// Example:
//
//	err := core.CopyTree(backend, "templates/base", "sites/new")
func CopyTree(b Backend, srcPath, dstPath string) error {
	if err := b.CreateDir(dstPath); err != nil {
		return err
	}

	entries, err := b.List(srcPath)
	if err != nil {
		return err
	}

	for _, e := range entries {
		target := Join(dstPath, path.Base(e.Path))
		if e.IsDir() {
			err = CopyTree(b, e.Path, target)
		} else {
			err = CopyFile(b, e.Path, target)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CopyFromFS copies all files from a read-only filesystem (typically
// embed.FS or an os.DirFS) into dst below dstRoot, preserving the directory
// structure.
//
// The srcRoot parameter specifies the root directory in the source filesystem
// to copy from. Use "." to copy the entire source filesystem.
//
// Example:
//
//	//go:embed seed/*
//	var seedFS embed.FS
//
//	err := core.CopyFromFS(seedFS, backend, "seed", "user_upload")
func CopyFromFS(src fs.FS, dst Backend, srcRoot, dstRoot string) error {
	return fs.WalkDir(src, srcRoot, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := filePath
		if srcRoot != "." && srcRoot != "" {
			rel = strings.TrimPrefix(strings.TrimPrefix(filePath, srcRoot), "/")
		}
		target := Join(dstRoot, rel)

		if d.IsDir() {
			return dst.CreateDir(target)
		}

		data, err := fs.ReadFile(src, filePath)
		if err != nil {
			return err
		}
		return dst.Write(target, data)
	})
}

// Join joins backend path segments, dropping empty ones. The result has no
// leading or trailing slash.
func Join(elem ...string) string {
	p := path.Join(elem...)
	p = strings.Trim(p, "/")
	if p == "." {
		return ""
	}
	return p
}
