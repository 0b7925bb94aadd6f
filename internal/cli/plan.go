package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/nameswap/internal/engine"
)

var planCmd = &cobra.Command{
	Use:   "plan <path1> <path2>",
	Short: "Show the renames an exchange would perform",
	Long: `Resolve both paths, check every destination and print the renames
'swap' would perform, in order, without touching the filesystem.

The exit status is the result code 'swap' would report for a rejected
exchange.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(swapOverrides(cmd))
		if err != nil {
			return err
		}

		result, err := eng.Exchange(context.Background(), &engine.ExchangeRequest{
			Path1:  args[0],
			Path2:  args[1],
			DryRun: true,
		})
		return reportExchange(result, err)
	},
}

func init() {
	addExchangeFlags(planCmd)
}
