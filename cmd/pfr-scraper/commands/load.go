package commands

import (
	"github.com/riskibarqy/pfr-scraper/internal/app"
	"github.com/riskibarqy/pfr-scraper/internal/usecase"
	"github.com/spf13/cobra"
)

var loadInput usecase.LoadInput

func init() {
	loadCmd.Flags().StringVar(&loadInput.ProfilesPath, "profiles", "", "profiles corpus file (default: newest in OUTPUT_DIR)")
	loadCmd.Flags().StringVar(&loadInput.GamesPath, "games", "", "games corpus file (default: newest in OUTPUT_DIR)")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load [--profiles <file> --games <file>]",
	Short: "Replaces the export database contents with a condensed corpus.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withRuntime(cmd, nil, func(rt *app.Runtime) error {
			svc, err := rt.NewLoadService(cmd.Context())
			if err != nil {
				return err
			}
			result, err := svc.Run(cmd.Context(), loadInput)
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout())
			t.SetTitle("load (" + rt.Config.DBDriver + ")")
			t.AppendHeader(tableRow("file", "loaded", "duplicates dropped"))
			t.AppendRow(tableRow(result.ProfilesPath, result.ProfilesLoaded, 0))
			t.AppendRow(tableRow(result.GamesPath, result.GamesLoaded, result.GamesDropped))
			t.Render()
			return nil
		})
	},
}
