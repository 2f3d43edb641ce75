package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mtvnnb/vie-driver-license-test-anki/internal/app"
	"github.com/mtvnnb/vie-driver-license-test-anki/internal/config"
	"github.com/mtvnnb/vie-driver-license-test-anki/internal/logger"
)

type options struct {
	configPath string
	overrides  config.Config
	headed     bool
	install    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "quizdeck",
		Short: "Scrape the driving theory quiz and build an Anki deck",
		Long: "quizdeck scrapes every question of the online driving theory quiz, saves the\n" +
			"questions as JSON and turns them into a semicolon-separated Anki deck.\n" +
			"Without a subcommand it runs both steps.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app.App) error { return a.All(ctx) })
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./config.yaml or ./config/config.yaml)")
	flags.StringVar(&opts.overrides.QuizURL, "url", "", "quiz page URL")
	flags.IntVar(&opts.overrides.TotalQuestions, "questions", 0, "number of questions to scrape")
	flags.StringVar(&opts.overrides.ImageDir, "images", "", "directory for downloaded images")
	flags.StringVar(&opts.overrides.DataPath, "data", "", "intermediate JSON file")
	flags.StringVar(&opts.overrides.DeckPath, "deck", "", "Anki CSV output file")
	flags.StringVar(&opts.overrides.LogFile, "log-file", "", "run log file")
	flags.DurationVar(&opts.overrides.Browser.WaitTimeout, "timeout", 0, "bound for every browser wait")
	flags.BoolVar(&opts.headed, "headed", false, "show the browser window")
	flags.BoolVar(&opts.install, "install-browsers", false, "download Chromium before scraping")

	root.AddCommand(
		&cobra.Command{
			Use:   "scrape",
			Short: "Scrape the quiz into the JSON data file",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, opts, func(ctx context.Context, a *app.App) error { return a.Scrape(ctx) })
			},
		},
		&cobra.Command{
			Use:   "generate",
			Short: "Generate the Anki deck from the JSON data file",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, opts, func(_ context.Context, a *app.App) error { return a.Generate() })
			},
		},
		&cobra.Command{
			Use:   "all",
			Short: "Scrape, then generate",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, opts, func(ctx context.Context, a *app.App) error { return a.All(ctx) })
			},
		},
	)
	return root
}

func run(cmd *cobra.Command, opts *options, step func(context.Context, *app.App) error) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Override(opts.overrides); err != nil {
		return err
	}
	if opts.headed {
		cfg.Browser.Headless = false
	}
	if opts.install {
		cfg.Browser.InstallBrowsers = true
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	a := app.New(cfg, afero.NewOsFs(), log, cmd.OutOrStdout(), app.PlaywrightFactory)

	start := time.Now()
	err = step(cmd.Context(), a)
	log.Info("finished", zap.String("step", cmd.Name()), zap.Duration("elapsed", time.Since(start)))
	return err
}
