// internal/importer/errors.go
package importer

import "errors"

var (
	// ErrSourceNotFound indicates the file to rename does not exist.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrCopyFailed indicates the file copy operation failed.
	ErrCopyFailed = errors.New("failed to copy file")

	// ErrDestinationExists indicates the destination file already exists.
	ErrDestinationExists = errors.New("destination file already exists")

	// ErrPathTraversal indicates a rendered name would escape the output directory.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrNothingToUndo indicates the history has no entry to undo.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates no undone entry is available to re-apply.
	ErrNothingToRedo = errors.New("nothing to redo")
)
