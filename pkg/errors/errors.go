// Package errors provides error handling for autobarrel.
//
// It re-exports github.com/cockroachdb/errors and declares the sentinel
// errors every barrel operation reports. Wrap a sentinel to add context
// while keeping it matchable with Is:
//
//	return errors.Wrapf(errors.ErrWriteConflict, "%s", path)
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New           = crdb.New
	Newf          = crdb.Newf
	Wrap          = crdb.Wrap
	Wrapf         = crdb.Wrapf
	WithStack     = crdb.WithStack
	WithMessage   = crdb.WithMessage
	WithMessagef  = crdb.WithMessagef
	Mark          = crdb.Mark
	CombineErrors = crdb.CombineErrors
)

// User-facing hints
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors for the barrel operations.
var (
	// ErrInvalidTarget: no folder given, or the folder is outside the workspace.
	ErrInvalidTarget = New("invalid target")

	// ErrNoFiles is returned by the assembler when discovery found nothing.
	// Callers refine it into ErrFolderEmpty or ErrNoMatches.
	ErrNoFiles = New("no files found")

	// ErrFolderEmpty indicates the target folder holds no files at all.
	ErrFolderEmpty = New("folder is empty")

	// ErrNoMatches indicates files exist but none matched the include/exclude patterns.
	ErrNoMatches = New("no files matched the configured patterns")

	// ErrDiscovery indicates the file system walk or a pattern failed.
	ErrDiscovery = New("file discovery failed")

	// ErrWriteConflict indicates create was asked to write over an existing file.
	ErrWriteConflict = New("file already exists")

	// ErrWriteFailure indicates a directory or file could not be written.
	ErrWriteFailure = New("write failed")

	// ErrNotFound indicates the barrel file to update does not exist.
	ErrNotFound = New("not found")

	// ErrInvalidConfig indicates settings failed validation.
	ErrInvalidConfig = New("invalid configuration")
)

// IsWarning reports whether err belongs to the conditions shown to the
// user as warnings rather than errors.
func IsWarning(err error) bool {
	return err != nil && IsAny(err, ErrFolderEmpty, ErrNoMatches, ErrWriteConflict, ErrDiscovery)
}

// Hint returns the flattened user hints attached to err, or "".
func Hint(err error) string {
	if err == nil {
		return ""
	}
	return FlattenHints(err)
}
