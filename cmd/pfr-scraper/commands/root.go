package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/riskibarqy/pfr-scraper/internal/app"
	"github.com/riskibarqy/pfr-scraper/internal/config"
	"github.com/spf13/cobra"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130

	shutdownTimeout = 10 * time.Second
)

var rootCmd = &cobra.Command{
	Use:           "pfr-scraper",
	Short:         "pfr-scraper collects player profiles and game logs from pro-football-reference.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the command line and maps the outcome to a process exit code.
func ExecuteContext(ctx context.Context) int {
	return exitCode(rootCmd.ExecuteContext(ctx), os.Stderr)
}

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "interrupted")
		return exitInterrupted
	default:
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
}

// withRuntime loads configuration, lets override adjust it, and hands a started
// runtime to fn. The runtime is closed even when fn fails.
func withRuntime(cmd *cobra.Command, override func(*config.Config) error, fn func(*app.Runtime) error) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if override != nil {
		if err := override(&cfg); err != nil {
			return err
		}
	}

	rt, err := app.NewRuntime(cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), shutdownTimeout)
		defer cancel()
		if closeErr := rt.Close(closeCtx); closeErr != nil {
			rt.Logger.Warn("shutdown incomplete", "error", closeErr)
		}
	}()

	return fn(rt)
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func tableRow(cells ...any) table.Row {
	return table.Row(cells)
}
