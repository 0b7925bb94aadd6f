package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/nameswap/internal/engine"
)

var recoverCmd = &cobra.Command{
	Use:   "recover <id>",
	Short: "Undo the applied renames of an incomplete exchange",
	Long: `Undo the renames an interrupted or failed exchange already performed,
restoring both entries to their original names. Use 'nameswap history' to
find the exchange ID.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(nil)
		if err != nil {
			return err
		}

		result, err := eng.Recover(context.Background(), &engine.RecoverRequest{ID: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		for _, step := range result.Undone {
			PrintInfo(fmt.Sprintf("UNDONE  %s -> %s", step.To, step.From))
		}
		PrintSuccess(fmt.Sprintf("Recovered exchange %s (%s undone)", result.Record.ID, PrintCount(len(result.Undone), "rename", "renames")))
		return nil
	},
}
