package planner

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/nameswap/internal/fsops"
	"github.com/danieljhkim/nameswap/internal/naming"
	"github.com/danieljhkim/nameswap/internal/resolve"
)

// BuildExchangePlan computes final and staging paths for both entries and
// records a conflict for every final destination that already exists and is
// not one of the two entries being exchanged.
func BuildExchangePlan(
	pair *resolve.Pair,
	meta1, meta2 naming.Metadata,
	stager Stager,
	fs fsops.FS,
) (*ExchangePlan, error) {
	staging1, err := stager.StagingPath(meta1.Parent, meta1.Ext)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve staging path for %s: %w", pair.First.Path, err)
	}
	staging2, err := stager.StagingPath(meta2.Parent, meta2.Ext)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve staging path for %s: %w", pair.Second.Path, err)
	}

	plan := &ExchangePlan{
		First: RenamePlan{
			OriginalPath: pair.First.Path,
			FinalPath:    filepath.Join(meta1.Parent, meta2.Stem+meta1.Ext),
			StagingPath:  staging1,
		},
		Second: RenamePlan{
			OriginalPath: pair.Second.Path,
			FinalPath:    filepath.Join(meta2.Parent, meta1.Stem+meta2.Ext),
			StagingPath:  staging2,
		},
		Conflicts: []Conflict{},
	}

	if plan.First.FinalPath == plan.Second.FinalPath {
		plan.AddConflict(Conflict{
			Path:   plan.First.FinalPath,
			Entry:  1,
			Reason: "both entries would be renamed to the same path",
		})
		return plan, nil
	}

	for n, dest := range []string{plan.First.FinalPath, plan.Second.FinalPath} {
		conflict, err := checkDestination(fs, dest, n+1, pair)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			plan.AddConflict(*conflict)
		}
	}

	return plan, nil
}

// checkDestination returns a Conflict if dest exists and is not one of the
// entries being exchanged. The exchanged entries vacate their own paths
// during the swap, so those destinations are expected.
func checkDestination(fs fsops.FS, dest string, entry int, pair *resolve.Pair) (*Conflict, error) {
	if dest == pair.First.Path || dest == pair.Second.Path {
		return nil, nil
	}

	exists, err := fs.Exists(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to check destination %s: %w", dest, err)
	}
	if !exists {
		return nil, nil
	}

	return &Conflict{
		Path:   dest,
		Entry:  entry,
		Reason: "destination already exists and is not part of the exchange",
	}, nil
}
