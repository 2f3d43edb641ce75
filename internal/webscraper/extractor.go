package webscraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mtvnnb/vie-driver-license-test-anki/pkg/domain"
)

// questionState tracks how far a single question got.
type questionState int

const (
	stateNavigated questionState = iota
	stateRevealing
	stateRevealed
	stateFailed
)

func (s questionState) String() string {
	switch s {
	case stateNavigated:
		return "navigated"
	case stateRevealing:
		return "revealing"
	case stateRevealed:
		return "revealed"
	case stateFailed:
		return "failed"
	}
	return fmt.Sprintf("questionState(%d)", int(s))
}

// Extractor walks the quiz one question at a time. It is the only user of
// its Driver and ImageFetcher and is not safe for concurrent use.
type Extractor struct {
	driver  Driver
	images  ImageFetcher
	options ScraperOptions
	log     *zap.Logger
}

func NewExtractor(driver Driver, images ImageFetcher, options ScraperOptions, log *zap.Logger) *Extractor {
	return &Extractor{
		driver:  driver,
		images:  images,
		options: options.withDefaults(),
		log:     log,
	}
}

// Run scrapes questions 1..TotalQuestions in order. Questions whose
// navigation or extraction fails are logged and left out. ErrPageLoad is
// returned, with no records, if the quiz never renders.
func (e *Extractor) Run(ctx context.Context) ([]domain.QuestionRecord, error) {
	e.log.Info("navigating to quiz", zap.String("url", e.options.URL))
	if err := e.driver.Navigate(e.options.URL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := e.waitPresent(ctx, e.options.Markup.LoadMarker, e.options.WaitTimeout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	e.log.Info("page loaded successfully")

	records := make([]domain.QuestionRecord, 0, e.options.TotalQuestions)
	for n := 1; n <= e.options.TotalQuestions; n++ {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		rec, err := e.scrapeQuestion(ctx, n)
		if err != nil {
			e.log.Error("skipping question", zap.Int("question", n), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// scrapeQuestion moves one question through navigated, revealing and
// revealed. Any error it returns means the question is dropped; field-level
// problems are logged and leave defaults instead.
func (e *Extractor) scrapeQuestion(ctx context.Context, n int) (domain.QuestionRecord, error) {
	e.log.Info("processing question", zap.Int("question", n))
	rec := domain.NewQuestionRecord(n)

	state := stateNavigated
	anchor := fmt.Sprintf(e.options.Markup.AnchorFormat, n)
	if err := e.driver.Click(anchor, e.options.WaitTimeout); err != nil {
		return rec, e.fail(&state, n, fmt.Errorf("%w: %s: %v", ErrNavigation, anchor, err))
	}
	if err := sleep(ctx, e.options.PollInterval); err != nil {
		return rec, e.fail(&state, n, err)
	}

	snap, err := e.snapshot()
	if err != nil {
		return rec, e.fail(&state, n, err)
	}
	rec.QuestionText = snap.QuestionText()
	if rec.QuestionText == "" {
		rec.QuestionText = fmt.Sprintf("Question %d", n)
	}
	rec.ImageLocalPath = e.image(ctx, n, snap)

	state = stateRevealing
	revealed, err := e.reveal(ctx, n)
	if err != nil {
		return rec, e.fail(&state, n, err)
	}

	state = stateRevealed
	if !revealed {
		return rec, nil
	}
	snap, err = e.snapshot()
	if err != nil {
		return rec, e.fail(&state, n, err)
	}
	rec.CorrectAnswerText = domain.StringPtr(snap.CorrectAnswer())
	rec.AllAnswerOptionsText = snap.Options()
	rec.IncorrectAnswerTexts = snap.IncorrectAnswers()
	rec.Explanation = domain.StringPtr(snap.Explanation())
	return rec, nil
}

// reveal clicks the answer options in display order until the page marks
// one as correct. It reports false when the answer container never showed
// up, in which case the answer fields stay absent.
func (e *Extractor) reveal(ctx context.Context, n int) (bool, error) {
	m := e.options.Markup
	if err := e.waitPresent(ctx, m.AnswerContainer, e.options.WaitTimeout); err != nil {
		if errors.Is(err, ErrTimeout) {
			e.log.Error("timed out waiting for the answer container", zap.Int("question", n))
			return false, nil
		}
		return false, err
	}

	count, err := e.driver.Count(m.AnswerOption)
	if err != nil {
		return false, err
	}
	for i := 1; i <= count; i++ {
		option := fmt.Sprintf(m.OptionFormat, i)
		if err := e.driver.Click(option, e.options.OptionClickTimeout); err != nil {
			e.log.Warn("could not click answer option, it might be stale or non-interactive",
				zap.Int("question", n), zap.Int("option", i), zap.Error(err))
			continue
		}
		correct, err := e.driver.Count(m.Correct)
		if err != nil {
			return false, err
		}
		if correct > 0 {
			e.log.Info("correct answer revealed", zap.Int("question", n), zap.Int("option", i))
			break
		}
	}
	return true, nil
}

// image downloads the question image if there is one. Every failure here is
// confined to the image field.
func (e *Extractor) image(ctx context.Context, n int, snap *Snapshot) *string {
	src, found := snap.ImageSource()
	if !found {
		e.log.Info("no image found", zap.Int("question", n))
		return nil
	}
	if src == "" {
		e.log.Warn("image element found but src is empty", zap.Int("question", n))
		return nil
	}
	path, err := e.images.Fetch(ctx, n, e.driver.URL(), src)
	if err != nil {
		e.log.Error("failed to download image", zap.Int("question", n), zap.String("src", src), zap.Error(err))
		return nil
	}
	e.log.Info("image downloaded", zap.Int("question", n), zap.String("path", path))
	return &path
}

func (e *Extractor) snapshot() (*Snapshot, error) {
	content, err := e.driver.Content()
	if err != nil {
		return nil, fmt.Errorf("reading page content: %w", err)
	}
	return NewSnapshot(content, e.options.Markup)
}

func (e *Extractor) fail(state *questionState, n int, err error) error {
	e.log.Debug("question failed", zap.Int("question", n), zap.Stringer("state", *state))
	*state = stateFailed
	return err
}

// waitPresent polls until selector matches at least one element or timeout elapses.
func (e *Extractor) waitPresent(ctx context.Context, selector string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		n, err := e.driver.Count(selector)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: waiting for %s", ErrTimeout, selector)
		}
		if err := sleep(ctx, e.options.PollInterval); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
