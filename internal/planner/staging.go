package planner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/danieljhkim/nameswap/internal/fsops"
)

// LegacyStagingBase is the fixed staging base name used by legacy staging
// mode.
const LegacyStagingBase = "1C6FD285BEDCC274F"

// stagingPrefix starts every generated staging name.
const stagingPrefix = ".nameswap-"

// maxStagingAttempts bounds how often RandomStager redraws a taken name.
const maxStagingAttempts = 8

// ErrStagingUnavailable indicates no free staging name could be reserved.
var ErrStagingUnavailable = errors.New("no free staging name")

// Stager produces the transient name an entry is parked under.
type Stager interface {
	// StagingPath returns a staging path in dir carrying ext.
	StagingPath(dir, ext string) (string, error)
}

// FixedStager always returns the legacy reserved name. It is unsafe when two
// exchanges run in the same directory at once.
type FixedStager struct{}

// StagingPath returns dir/1C6FD285BEDCC274F<ext>.
func (FixedStager) StagingPath(dir, ext string) (string, error) {
	return filepath.Join(dir, LegacyStagingBase+ext), nil
}

// RandomStager draws a fresh name per call and verifies it is free.
type RandomStager struct {
	fs    fsops.FS
	newID func() string
}

// NewRandomStager creates a RandomStager that checks candidates against fs.
func NewRandomStager(fs fsops.FS) *RandomStager {
	return &RandomStager{
		fs: fs,
		newID: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
	}
}

// StagingPath returns dir/.nameswap-<id><ext> for an id not yet taken in dir.
func (s *RandomStager) StagingPath(dir, ext string) (string, error) {
	for attempt := 0; attempt < maxStagingAttempts; attempt++ {
		candidate := filepath.Join(dir, stagingPrefix+s.newID()+ext)
		exists, err := s.fs.Exists(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check staging path %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w in %s after %d attempts", ErrStagingUnavailable, dir, maxStagingAttempts)
}

// IsStagingName reports whether name looks like a staging name produced by
// either stager.
func IsStagingName(name string) bool {
	return strings.HasPrefix(name, stagingPrefix) || strings.HasPrefix(name, LegacyStagingBase)
}
