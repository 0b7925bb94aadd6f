package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/nameswap/internal/config"
	"github.com/danieljhkim/nameswap/internal/engine"
	"github.com/danieljhkim/nameswap/internal/journal"
)

var (
	swapDryRun      bool
	swapRollback    bool
	swapLegacyCodes bool
	swapBaseDir     string
	swapRelative    string
	swapStaging     string
)

var swapCmd = &cobra.Command{
	Use:   "swap <path1> <path2>",
	Short: "Exchange the names of two entries",
	Long: `Exchange the base names of two files or directories.

Each entry keeps its extension and its parent directory. Directory names
have no extension: the whole name is exchanged.

The exit status is the result code of the exchange:
  0    exchanged
  1    an input path does not exist
  2    invalid input (same entry, a filesystem root, refused relative path)
  3    a destination name is already taken
  4    permission denied
  255  any other failure

Code 4 is not part of the legacy contract, which reported permission
failures as 2. Pass --legacy-codes (or set legacy_codes: true) for callers
that only know codes 0 to 3 and 255.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(swapOverrides(cmd))
		if err != nil {
			return err
		}

		result, err := eng.Exchange(context.Background(), &engine.ExchangeRequest{
			Path1:  args[0],
			Path2:  args[1],
			DryRun: swapDryRun,
		})
		return reportExchange(result, err)
	},
}

// swapOverrides applies the exchange flags the user set explicitly.
func swapOverrides(cmd *cobra.Command) func(*config.Settings) {
	flags := cmd.Flags()
	return func(s *config.Settings) {
		if flags.Changed("rollback") {
			s.Rollback = swapRollback
		}
		if flags.Changed("legacy-codes") {
			s.LegacyCodes = swapLegacyCodes
		}
		if flags.Changed("base-dir") {
			s.BaseDir = swapBaseDir
		}
		if flags.Changed("relative") {
			s.Relative = swapRelative
		}
		if flags.Changed("staging") {
			s.Staging = swapStaging
		}
	}
}

// reportExchange prints the outcome of an exchange and converts a failure
// into an ExitError carrying its result code.
func reportExchange(result *engine.ExchangeResult, err error) error {
	if jsonOutput {
		if jsonErr := outputJSON(result); jsonErr != nil {
			return jsonErr
		}
	} else {
		printExchange(result, err)
	}

	if err != nil {
		return &ExitError{Code: int(result.Code), Err: err}
	}
	return nil
}

func printExchange(result *engine.ExchangeResult, err error) {
	if result.Plan != nil && result.Plan.HasConflicts() {
		PrintSection("Conflicts Detected")
		for _, conflict := range result.Plan.Conflicts {
			PrintError(fmt.Sprintf("%s: %s", conflict.Path, conflict.Reason))
		}
		fmt.Println()
		return
	}

	if result.DryRun {
		if err != nil {
			return
		}
		PrintSection("Dry Run")
		PrintLabelValue("Strategy", fmt.Sprintf("%s (entry %d first)", result.Strategy.Kind, result.Strategy.FirstToExecute))
		PrintInfo(fmt.Sprintf("Would perform %s", PrintCount(len(result.Steps), "rename", "renames")))
		rows := make([][]string, 0, len(result.Steps))
		for i, step := range result.Steps {
			rows = append(rows, []string{fmt.Sprintf("%d", i+1), string(step.Kind), step.From, step.To})
		}
		PrintTable([]string{"#", "KIND", "FROM", "TO"}, rows)
		return
	}

	for _, outcome := range result.Outcomes {
		line := fmt.Sprintf("%s -> %s", outcome.Step.From, outcome.Step.To)
		switch outcome.Status {
		case journal.StepApplied:
			PrintInfo("SUCCESS " + line)
		case journal.StepUndone:
			PrintWarning("UNDONE  " + line)
		case journal.StepSkipped:
			PrintInfo("SKIPPED " + line)
		case journal.StepFailed:
			PrintError("FAILED  " + line + ": " + outcome.Error)
		}
	}

	if err != nil {
		if result.RolledBack {
			PrintWarning("Applied renames were rolled back")
		} else if result.JournalID != "" && len(result.Outcomes) > 1 {
			PrintWarning(fmt.Sprintf("Exchange left incomplete. Run 'nameswap recover %s' to undo it.", result.JournalID))
		}
		return
	}

	PrintSuccess(fmt.Sprintf("Exchanged %s and %s", filepath.Base(result.Pair.First.Path), filepath.Base(result.Pair.Second.Path)))
	finals := finalPaths(result)
	PrintLabelValue("First", finals[1])
	PrintLabelValue("Second", finals[2])
	if result.JournalID != "" {
		PrintLabelValue("Journal ID", result.JournalID)
	}
}

// finalPaths returns where each entry ended up. Nested exchanges move the
// inner entry under its ancestor's new name, so the executed steps are used
// rather than the plan.
func finalPaths(result *engine.ExchangeResult) map[int]string {
	finals := map[int]string{
		1: result.Plan.First.FinalPath,
		2: result.Plan.Second.FinalPath,
	}
	for _, outcome := range result.Outcomes {
		if outcome.Status == journal.StepApplied || outcome.Status == journal.StepSkipped {
			finals[outcome.Step.Entry] = outcome.Step.To
		}
	}
	return finals
}

func addExchangeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&swapBaseDir, "base-dir", "", "Directory relative paths are resolved against (default: the executable's directory)")
	cmd.Flags().StringVar(&swapRelative, "relative", "basename", "Relative path handling: basename, join or reject")
	cmd.Flags().StringVar(&swapStaging, "staging", "random", "Staging name: random or fixed")
}

func init() {
	swapCmd.Flags().BoolVar(&swapDryRun, "dry-run", false, "Show the renames without performing them")
	swapCmd.Flags().BoolVar(&swapRollback, "rollback", false, "Undo applied renames if a later rename fails")
	swapCmd.Flags().BoolVar(&swapLegacyCodes, "legacy-codes", false, "Report permission failures as code 2")
	addExchangeFlags(swapCmd)
}
