//go:build !linux

package fsops

import (
	"os"
)

// renameNoReplace checks the destination before renaming. The check and the
// rename are not atomic on these platforms.
func renameNoReplace(oldpath, newpath string) error {
	if _, err := os.Lstat(newpath); err == nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrExist}
	}
	return os.Rename(oldpath, newpath)
}
