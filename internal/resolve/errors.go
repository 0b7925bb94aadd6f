package resolve

import "errors"

var (
	// ErrNotFound indicates an input path does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrSamePath indicates both inputs resolve to the same entry.
	ErrSamePath = errors.New("paths refer to the same entry")

	// ErrNoParent indicates an input resolves to a root with no parent directory.
	ErrNoParent = errors.New("entry has no parent directory")

	// ErrRelativePath indicates relative input was refused.
	ErrRelativePath = errors.New("relative path not allowed")
)
