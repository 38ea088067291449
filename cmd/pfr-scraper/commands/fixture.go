package commands

import (
	"github.com/riskibarqy/pfr-scraper/internal/app"
	"github.com/riskibarqy/pfr-scraper/internal/usecase"
	"github.com/spf13/cobra"
)

var fixtureCmd = &cobra.Command{
	Use:   "fixture <input.json> <app> <model> <primary-key> <output.json>",
	Short: "Converts a JSON array of objects into a Django loaddata fixture.",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, nil, func(rt *app.Runtime) error {
			result, err := rt.NewFixtureService().Run(cmd.Context(), usecase.FixtureInput{
				InputPath:  args[0],
				App:        args[1],
				Model:      args[2],
				PrimaryKey: args[3],
				OutputPath: args[4],
			})
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(tableRow("fixture", "records"))
			t.AppendRow(tableRow(result.OutputPath, result.Records))
			t.Render()
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(fixtureCmd)
}
