package barrel

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"autobarrel/pkg/errors"
)

// Writer persists barrel content.
type Writer interface {
	// Create writes a new file and refuses to touch an existing one.
	Create(dir, name, content string) (string, error)
	// Replace overwrites the full content of an existing file.
	Replace(path, content string) error
}

// FileWriter writes barrels to the local file system.
type FileWriter struct {
	DirPerm  os.FileMode
	FilePerm os.FileMode
	logger   *zap.Logger
}

// NewFileWriter returns a writer using 0755 directories and 0644 files.
func NewFileWriter(logger *zap.Logger) *FileWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWriter{DirPerm: 0755, FilePerm: 0644, logger: logger}
}

// Create makes dir if needed, then writes name inside it. The existence
// check and the create are one atomic open, so an existing file is never
// modified.
func (w *FileWriter) Create(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, w.DirPerm); err != nil {
		return "", errors.Mark(errors.Wrapf(err, "failed to create directory %s", dir), errors.ErrWriteFailure)
	}

	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, w.FilePerm)
	if err != nil {
		if os.IsExist(err) {
			return "", errors.WithHint(
				errors.Wrapf(errors.ErrWriteConflict, "%s", path),
				"use update to regenerate an existing barrel")
		}
		return "", errors.Mark(errors.Wrapf(err, "failed to create %s", path), errors.ErrWriteFailure)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return "", errors.Mark(errors.Wrapf(err, "failed to write %s", path), errors.ErrWriteFailure)
	}
	if err := f.Close(); err != nil {
		return "", errors.Mark(errors.Wrapf(err, "failed to close %s", path), errors.ErrWriteFailure)
	}

	w.logger.Debug("Created barrel", zap.String("path", path), zap.Int("bytes", len(content)))
	return path, nil
}

// Replace overwrites path, keeping its permission bits.
func (w *FileWriter) Replace(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrNotFound, "%s", path)
		}
		return errors.Mark(errors.Wrapf(err, "failed to stat %s", path), errors.ErrWriteFailure)
	}
	if info.IsDir() {
		return errors.Wrapf(errors.ErrInvalidTarget, "%s is a directory", path)
	}

	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return errors.Mark(errors.Wrapf(err, "failed to write %s", path), errors.ErrWriteFailure)
	}

	w.logger.Debug("Replaced barrel", zap.String("path", path), zap.Int("bytes", len(content)))
	return nil
}
