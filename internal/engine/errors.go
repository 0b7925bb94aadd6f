package engine

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/danieljhkim/nameswap/internal/resolve"
)

var (
	// ErrNotFound indicates an input path (or journal record) does not exist.
	ErrNotFound = resolve.ErrNotFound

	// ErrSamePath indicates both inputs resolve to the same entry.
	ErrSamePath = resolve.ErrSamePath

	// ErrNoParent indicates an input is a filesystem root.
	ErrNoParent = resolve.ErrNoParent

	// ErrRelativePath indicates relative input was refused.
	ErrRelativePath = resolve.ErrRelativePath

	// ErrConflict indicates a final destination is already taken.
	ErrConflict = errors.New("conflict detected")

	// ErrDestinationExists indicates a rename found its destination occupied.
	ErrDestinationExists = errors.New("destination exists")

	// ErrPermission indicates a rename was refused by the filesystem.
	ErrPermission = errors.New("permission denied")

	// ErrRename indicates a rename failed for an unclassified reason.
	ErrRename = errors.New("rename failed")

	// ErrBusy indicates another exchange holds the lock.
	ErrBusy = errors.New("another exchange is in progress")

	// ErrNotRecoverable indicates a journal record has no applied steps to undo.
	ErrNotRecoverable = errors.New("nothing to recover")

	// ErrJournalDisabled indicates the engine runs without a journal.
	ErrJournalDisabled = errors.New("journal is disabled")
)

// Classify wraps a rename failure with the engine sentinel for its class:
// ErrPermission, ErrDestinationExists or ErrRename.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermission, err)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %w", ErrDestinationExists, err)
	default:
		return fmt.Errorf("%w: %w", ErrRename, err)
	}
}
