package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/nameswap/internal/engine"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded exchanges",
	Long: `List journaled exchanges, newest first.

Exchanges with status 'failed' that still have applied renames can be
undone with 'nameswap recover <id>'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(nil)
		if err != nil {
			return err
		}

		records, err := eng.History(&engine.HistoryRequest{Limit: historyLimit})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(records)
		}

		if len(records) == 0 {
			PrintEmptyState("No exchanges recorded")
			return nil
		}

		PrintSection(fmt.Sprintf("History (%s)", PrintCount(len(records), "exchange", "exchanges")))
		rows := make([][]string, 0, len(records))
		for _, record := range records {
			status := string(record.Status)
			if record.Incomplete() {
				status += " (recoverable)"
			}
			rows = append(rows, []string{
				record.ID,
				record.StartedAt.Local().Format("2006-01-02 15:04:05"),
				status,
				fmt.Sprintf("%d", record.Code),
				record.First,
				record.Second,
			})
		}
		PrintTable([]string{"ID", "STARTED", "STATUS", "CODE", "FIRST", "SECOND"}, rows)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of exchanges to show (0 for all)")
}
