package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-stats/internal/config"
	"github.com/naka-gawa/repo-stats/internal/gateway"
	"github.com/naka-gawa/repo-stats/internal/report"
	"github.com/naka-gawa/repo-stats/internal/usecase"
)

const dotenvFile = ".env"

// newLogger creates a logger writing to w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func runStats(cmd *cobra.Command, args []string) error {
	// Arguments are valid past this point; don't print usage for API failures.
	cmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	verbose, _ := cmd.Flags().GetBool("verbose")
	level := log.WarnLevel // Default: only warnings such as truncated history.
	if verbose {
		level = log.DebugLevel
	}
	logger := newLogger(cmd.ErrOrStderr(), level)

	configPath, _ := cmd.Flags().GetString("config")
	allExt, _ := cmd.Flags().GetBool("all-ext")

	cfg, err := config.Load(configPath, dotenvFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Inject dependencies and run the main business logic.
	githubGateway, err := gateway.NewGitHubGateway(cfg.GatewayOptions(), logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	aggregator := usecase.NewAggregator(githubGateway, logger)

	opts := usecase.Options{
		Extensions:    cfg.Extensions,
		AllExtensions: allExt,
	}
	return aggregator.Run(ctx, args[0], opts, report.NewPrinter(cmd.OutOrStdout()))
}
