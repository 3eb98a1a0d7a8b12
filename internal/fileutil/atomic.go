// Package fileutil writes generated files without exposing partial content.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists is returned by WriteNew when the target is already present
var ErrExists = errors.New("file already exists")

// WriteFileAtomic writes data to a temp file next to filename and renames it
// into place, so readers see either the old file or the complete new one.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// WriteNew writes filename atomically unless it already exists and force is
// false, in which case it returns ErrExists.
func WriteNew(filename string, data []byte, perm os.FileMode, force bool) error {
	if !force {
		_, err := os.Stat(filename)
		switch {
		case err == nil:
			return fmt.Errorf("%s: %w", filename, ErrExists)
		case !errors.Is(err, fs.ErrNotExist):
			return err
		}
	}
	return WriteFileAtomic(filename, data, perm)
}
