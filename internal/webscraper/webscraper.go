package webscraper

import (
	"errors"
	"time"
)

var (
	// ErrTimeout is wrapped by Driver implementations when an action did not complete in time.
	ErrTimeout = errors.New("timed out")
	// ErrPageLoad means the quiz page never rendered; nothing can be scraped.
	ErrPageLoad = errors.New("quiz page did not load")
	// ErrNavigation means a question's anchor could not be activated.
	ErrNavigation = errors.New("question navigation failed")
)

// Driver is the browser surface the extractor needs. Selectors are CSS.
// Implementations own the browser session; Close must release it.
type Driver interface {
	// Navigate opens url in the current page.
	Navigate(url string) error
	// Click clicks the first element matching selector once it is actionable.
	Click(selector string, timeout time.Duration) error
	// Count returns how many elements currently match selector.
	Count(selector string) (int, error)
	// Content returns the serialized DOM of the current page.
	Content() (string, error)
	// URL returns the address of the current page.
	URL() string
	Close() error
}

// ScraperOptions configures an Extractor.
type ScraperOptions struct {
	URL                string
	TotalQuestions     int
	WaitTimeout        time.Duration
	PollInterval       time.Duration
	OptionClickTimeout time.Duration
	Markup             Markup
}

func (o ScraperOptions) withDefaults() ScraperOptions {
	if o.WaitTimeout <= 0 {
		o.WaitTimeout = DefaultTimeout
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.OptionClickTimeout <= 0 {
		o.OptionClickTimeout = DefaultOptionClickTimeout
	}
	if o.Markup == (Markup{}) {
		o.Markup = DefaultMarkup
	}
	return o
}
