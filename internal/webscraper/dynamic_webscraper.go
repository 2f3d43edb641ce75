package webscraper

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightDriver drives a single Chromium page through Playwright.
type PlaywrightDriver struct {
	pwClient *playwright.Playwright // The Playwright client to use
	browser  playwright.Browser     // The Playwright browser to use
	page     playwright.Page        // The only page; every question is scraped here
}

// PlaywrightOptions configures the browser launch.
type PlaywrightOptions struct {
	Headless          bool
	NavigationTimeout time.Duration
	InstallBrowsers   bool // download the Chromium build if it is missing
}

func NewPlaywrightDriver(opts PlaywrightOptions) (*PlaywrightDriver, error) {
	pwOptions := playwright.RunOptions{
		SkipInstallBrowsers: !opts.InstallBrowsers,
		Browsers:            []string{"chromium"},
	}
	if opts.InstallBrowsers {
		if err := playwright.Install(&pwOptions); err != nil {
			return nil, fmt.Errorf("installing Playwright browsers: %w", err)
		}
	}

	pw, err := playwright.Run(&pwOptions)
	if err != nil {
		return nil, fmt.Errorf("creating Playwright client: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launching Playwright browser: %w", err)
	}

	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("opening page: %w", err)
	}

	timeout := opts.NavigationTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	page.SetDefaultNavigationTimeout(milliseconds(timeout))
	page.SetDefaultTimeout(milliseconds(timeout))

	return &PlaywrightDriver{pwClient: pw, browser: browser, page: page}, nil
}

func (d *PlaywrightDriver) Navigate(url string) error {
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return wrapPlaywrightErr(err)
}

func (d *PlaywrightDriver) Click(selector string, timeout time.Duration) error {
	err := d.page.Locator(selector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(milliseconds(timeout)),
	})
	return wrapPlaywrightErr(err)
}

func (d *PlaywrightDriver) Count(selector string) (int, error) {
	n, err := d.page.Locator(selector).Count()
	return n, wrapPlaywrightErr(err)
}

func (d *PlaywrightDriver) Content() (string, error) {
	content, err := d.page.Content()
	return content, wrapPlaywrightErr(err)
}

func (d *PlaywrightDriver) URL() string {
	return d.page.URL()
}

// Close shuts the browser down and stops the Playwright client. It is safe to call twice.
func (d *PlaywrightDriver) Close() error {
	var errs []error
	if d.browser != nil {
		if err := d.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
		}
		d.browser = nil
	}
	if d.pwClient != nil {
		if err := d.pwClient.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stopping Playwright client: %w", err))
		}
		d.pwClient = nil
	}
	return errors.Join(errs...)
}

func wrapPlaywrightErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
