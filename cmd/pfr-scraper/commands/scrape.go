package commands

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/app"
	"github.com/riskibarqy/pfr-scraper/internal/config"
	"github.com/riskibarqy/pfr-scraper/internal/usecase"
	"github.com/spf13/cobra"
)

type scrapeFlags struct {
	letters      string
	workers      int
	startID      int64
	clear        bool
	skipCondense bool
}

func init() {
	rootCmd.AddCommand(newScrapeCmd())
}

func newScrapeCmd() *cobra.Command {
	var flags scrapeFlags

	cmd := &cobra.Command{
		Use:   "scrape [--letters A,B] [--workers N] [--start-id N] [--clear]",
		Short: "Scrapes every player under the given letters and condenses the results.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, flags.apply(cmd), func(rt *app.Runtime) error {
				svc, err := rt.NewScrapeService(cmd.Context())
				if err != nil {
					return err
				}

				cfg := rt.Config
				result, err := svc.Run(cmd.Context(), usecase.ScrapeInput{
					Letters:      cfg.ScrapeLetters,
					Workers:      cfg.ScrapeWorkers,
					StartID:      cfg.StartPlayerID,
					ClearOldData: cfg.ClearOldData,
					SkipCondense: flags.skipCondense,
				})
				if err == nil || errors.Is(err, context.Canceled) {
					printScrapeResult(cmd, result)
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&flags.letters, "letters", "", "comma separated last-name initials, or ALL (overrides SCRAPE_LETTERS)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "concurrent players (overrides SCRAPE_WORKERS)")
	cmd.Flags().Int64Var(&flags.startID, "start-id", 0, "first player id to assign (overrides START_PLAYER_ID)")
	cmd.Flags().BoolVar(&flags.clear, "clear", false, "remove per-player files of earlier runs first (overrides CLEAR_OLD_DATA)")
	cmd.Flags().BoolVar(&flags.skipCondense, "skip-condense", false, "leave per-player files without writing the corpus")
	return cmd
}

// apply returns a config override that only touches values whose flag was set.
func (f *scrapeFlags) apply(cmd *cobra.Command) func(*config.Config) error {
	return func(cfg *config.Config) error {
		flags := cmd.Flags()
		if flags.Changed("letters") {
			letters, err := config.ParseLetters(f.letters)
			if err != nil {
				return err
			}
			cfg.ScrapeLetters = letters
		}
		if flags.Changed("workers") {
			cfg.ScrapeWorkers = f.workers
		}
		if flags.Changed("start-id") {
			cfg.StartPlayerID = f.startID
		}
		if flags.Changed("clear") {
			cfg.ClearOldData = f.clear
		}
		return nil
	}
}

func printScrapeResult(cmd *cobra.Command, result usecase.ScrapeResult) {
	t := newTable(cmd.OutOrStdout())
	t.SetTitle("scrape")
	t.AppendHeader(tableRow("run", "letters", "failed letters", "players", "done", "failed", "games", "next id", "duration"))
	t.AppendRow(tableRow(
		result.RunID,
		result.LettersScraped,
		result.LettersFailed,
		result.PlayersQueued,
		result.PlayersDone,
		result.PlayersFailed,
		result.GamesSaved,
		result.NextPlayerID,
		result.Duration.Round(time.Millisecond).String(),
	))
	t.Render()

	if result.Condense != nil {
		printCondenseResult(cmd, *result.Condense)
	}
}
