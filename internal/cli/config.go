package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the settings nameswap runs with, after applying config.yaml and
NAMESWAP_* environment variables. The settings section is a valid config.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, settings, err := loadSettings()
		if err != nil {
			return err
		}

		if jsonOutput {
			text, err := formatJSON(map[string]interface{}{
				"paths":    paths,
				"settings": settings,
			})
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		}

		text, err := settings.YAML()
		if err != nil {
			return err
		}
		PrintSection("Paths")
		PrintLabelValue("Root", paths.Root)
		PrintLabelValue("Config", paths.Config)
		PrintLabelValue("Journal", paths.Journal)
		PrintLabelValue("Lock", paths.Lock)
		PrintSection("Settings")
		fmt.Print(text)
		return nil
	},
}
