package commands

import (
	"time"

	"github.com/riskibarqy/pfr-scraper/internal/app"
	"github.com/riskibarqy/pfr-scraper/internal/usecase"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(condenseCmd)
}

var condenseCmd = &cobra.Command{
	Use:   "condense",
	Short: "Merges the per-player files in DATA_DIR into a timestamped corpus in OUTPUT_DIR.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withRuntime(cmd, nil, func(rt *app.Runtime) error {
			result, err := rt.NewCondenseService().Run(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			printCondenseResult(cmd, result)
			return nil
		})
	},
}

func printCondenseResult(cmd *cobra.Command, result usecase.CondenseResult) {
	t := newTable(cmd.OutOrStdout())
	t.SetTitle("corpus")
	t.AppendHeader(tableRow("file", "records"))
	t.AppendRow(tableRow(result.ProfilesPath, result.ProfilesWritten))
	t.AppendRow(tableRow(result.GamesPath, result.GamesWritten))
	t.Render()
}
