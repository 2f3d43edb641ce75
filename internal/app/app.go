// Package app wires the scrape and generate steps together. The two steps
// share nothing but the intermediate JSON file.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rodaine/table"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mtvnnb/vie-driver-license-test-anki/internal/config"
	"github.com/mtvnnb/vie-driver-license-test-anki/internal/deck"
	"github.com/mtvnnb/vie-driver-license-test-anki/internal/export"
	"github.com/mtvnnb/vie-driver-license-test-anki/internal/webscraper"
	"github.com/mtvnnb/vie-driver-license-test-anki/pkg/domain"
)

// DriverFactory opens a browser session. The caller owns the returned driver.
type DriverFactory func(cfg *config.Config) (webscraper.Driver, error)

// PlaywrightFactory launches Chromium through Playwright.
func PlaywrightFactory(cfg *config.Config) (webscraper.Driver, error) {
	return webscraper.NewPlaywrightDriver(webscraper.PlaywrightOptions{
		Headless:          cfg.Browser.Headless,
		NavigationTimeout: cfg.Browser.WaitTimeout,
		InstallBrowsers:   cfg.Browser.InstallBrowsers,
	})
}

type App struct {
	cfg       *config.Config
	fs        afero.Fs
	log       *zap.Logger
	out       io.Writer // summary table and import instructions
	newDriver DriverFactory
}

func New(cfg *config.Config, fs afero.Fs, log *zap.Logger, out io.Writer, newDriver DriverFactory) *App {
	return &App{cfg: cfg, fs: fs, log: log, out: out, newDriver: newDriver}
}

// Scrape extracts every question and saves the records to the data file.
// The browser session is released on every return path.
func (a *App) Scrape(ctx context.Context) error {
	a.log.Info("starting scraper", zap.String("url", a.cfg.QuizURL))

	if err := a.fs.MkdirAll(a.cfg.ImageDir, 0o755); err != nil {
		a.log.Error("could not create image directory", zap.String("dir", a.cfg.ImageDir), zap.Error(err))
		return fmt.Errorf("creating image dir: %w", err)
	}
	a.log.Info("image download directory ensured", zap.String("dir", a.cfg.ImageDir))

	driver, err := a.newDriver(a.cfg)
	if err != nil {
		a.log.Error("could not start browser", zap.Error(err))
		return fmt.Errorf("starting browser: %w", err)
	}
	defer func() {
		if err := driver.Close(); err != nil {
			a.log.Error("error releasing browser", zap.Error(err))
		}
		a.log.Info("scraper resources have been cleaned up")
	}()

	images := webscraper.NewImageDownloader(a.fs, a.cfg.ImageDir, a.cfg.HTTP.Timeout, a.cfg.HTTP.UserAgent)
	extractor := webscraper.NewExtractor(driver, images, webscraper.ScraperOptions{
		URL:                a.cfg.QuizURL,
		TotalQuestions:     a.cfg.TotalQuestions,
		WaitTimeout:        a.cfg.Browser.WaitTimeout,
		PollInterval:       a.cfg.Browser.PollInterval,
		OptionClickTimeout: a.cfg.Browser.OptionClickTimeout,
	}, a.log)

	records, err := extractor.Run(ctx)
	if err != nil {
		a.log.Error("critical error during scraping", zap.Error(err))
		return err
	}
	if len(records) == 0 {
		a.log.Warn("scraper finished but no data was extracted")
		return nil
	}
	a.log.Info("extracted questions", zap.Int("count", len(records)), zap.Int("total", a.cfg.TotalQuestions))

	if err := export.NewJSONExporter(a.fs, a.log).Export(records, a.cfg.DataPath); err != nil {
		a.log.Error("could not save records", zap.Error(err))
		return err
	}
	a.printResults(records)
	return nil
}

// Generate builds the Anki deck from the data file written by Scrape.
func (a *App) Generate() error {
	records, err := export.LoadRecords(a.fs, a.cfg.DataPath)
	if err != nil {
		if errors.Is(err, export.ErrInputNotFound) {
			a.log.Error("input file not found, cannot generate Anki deck; run the scrape step first",
				zap.String("path", a.cfg.DataPath))
		} else {
			a.log.Error("could not load quiz data", zap.String("path", a.cfg.DataPath), zap.Error(err))
		}
		return err
	}
	a.log.Info("loaded questions", zap.String("path", a.cfg.DataPath), zap.Int("count", len(records)))

	formatter := deck.NewFormatter(a.fs, a.log)
	if err := export.NewCSVExporter(a.fs, formatter, a.log).Export(records, a.cfg.DeckPath); err != nil {
		if errors.Is(err, export.ErrNoRecords) {
			a.log.Error("no quiz data loaded, aborting CSV generation", zap.String("path", a.cfg.DataPath))
		} else {
			a.log.Error("error writing the CSV file", zap.Error(err))
		}
		return err
	}
	a.printInstructions()
	return nil
}

// All scrapes and then generates. A failed scrape does not prevent
// generating from a data file left by an earlier run.
func (a *App) All(ctx context.Context) error {
	scrapeErr := a.Scrape(ctx)
	if err := ctx.Err(); err != nil {
		return errors.Join(scrapeErr, err)
	}
	return errors.Join(scrapeErr, a.Generate())
}

func (a *App) printResults(records []domain.QuestionRecord) {
	tbl := table.New("Question", "Image", "Options", "Correct Answer").WithWriter(a.out)
	for _, rec := range records {
		image := "-"
		if rec.ImageLocalPath != nil {
			image = "yes"
		}
		answer := deck.StripCheckmark(domain.Value(rec.CorrectAnswerText))
		if answer == "" {
			answer = "-"
		}
		tbl.AddRow(rec.QuestionNumber, image, len(rec.AllAnswerOptionsText), answer)
	}
	tbl.Print()
}

func (a *App) printInstructions() {
	fmt.Fprintf(a.out, `
--- Next Steps for Anki Import ---
1. Open Anki.
2. Go to File -> Import.
3. Select the file: '%s'.
4. In the Anki Import window:
   - Note Type: 'Basic'
   - Fields separated by: '; Semicolon'
   - CHECK 'Allow HTML in fields'
5. Copy all images from the '%s' folder into your Anki media folder
   (the 'collection.media' folder inside your Anki2 profile).
6. Click 'Import'.
`, a.cfg.DeckPath, a.cfg.ImageDir)
}
