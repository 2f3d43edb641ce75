// Package deck renders scraped questions as two-sided Anki cards.
package deck

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mtvnnb/vie-driver-license-test-anki/pkg/domain"
)

const (
	FrontHeader = "Front (Question)"
	BackHeader  = "Back (Answer & Explanation)"

	// NoAnswer is the back of a card whose question revealed nothing.
	NoAnswer = "No correct answer or explanation found."

	lineBreak = "<br>"
)

// Card is one row of the deck file. The csv tags double as the header row.
type Card struct {
	Front string `csv:"Front (Question)"`
	Back  string `csv:"Back (Answer & Explanation)"`
}

var optionNumber = regexp.MustCompile(`^\d+\.\s*`)

// Formatter turns records into cards. It only reads the filesystem, to check
// that referenced images exist.
type Formatter struct {
	fs  afero.Fs
	log *zap.Logger
}

func NewFormatter(fs afero.Fs, log *zap.Logger) *Formatter {
	return &Formatter{fs: fs, log: log}
}

// Cards renders every record, keeping input order.
func (f *Formatter) Cards(records []domain.QuestionRecord) []Card {
	cards := make([]Card, 0, len(records))
	for _, rec := range records {
		cards = append(cards, Card{Front: f.Front(rec), Back: f.Back(rec)})
	}
	return cards
}

// Front renders the question, its image when the file is present, and the
// options renumbered from 1.
func (f *Formatter) Front(rec domain.QuestionRecord) string {
	text := rec.QuestionText
	if text == "" {
		text = fmt.Sprintf("Question %d", rec.QuestionNumber)
	}
	parts := []string{text}

	if img := domain.Value(rec.ImageLocalPath); img != "" {
		if f.imageExists(img) {
			parts = append(parts, fmt.Sprintf(`<br><img src="%s">`, filepath.Base(img)))
		} else {
			f.log.Warn("image file not found, skipping",
				zap.String("path", img), zap.Int("question", rec.QuestionNumber))
		}
	}

	if len(rec.AllAnswerOptionsText) > 0 {
		parts = append(parts, "<br><b>Options:</b>")
		options := make([]string, 0, len(rec.AllAnswerOptionsText))
		for i, option := range rec.AllAnswerOptionsText {
			options = append(options, fmt.Sprintf("%d. %s", i+1, CleanOption(option)))
		}
		parts = append(parts, strings.Join(options, lineBreak))
	}

	return strings.Join(parts, lineBreak)
}

// Back renders the correct answer and the explanation, or NoAnswer when both are empty.
func (f *Formatter) Back(rec domain.QuestionRecord) string {
	var parts []string
	if answer := StripCheckmark(domain.Value(rec.CorrectAnswerText)); answer != "" {
		parts = append(parts, "<b>Correct Answer:</b> "+answer)
	}
	if explanation := domain.Value(rec.Explanation); explanation != "" {
		parts = append(parts, "<b>Explanation:</b> "+explanation)
	}
	if len(parts) == 0 {
		return NoAnswer
	}
	return strings.Join(parts, lineBreak)
}

func (f *Formatter) imageExists(path string) bool {
	ok, err := afero.Exists(f.fs, path)
	if err != nil {
		f.log.Warn("checking image file", zap.String("path", path), zap.Error(err))
		return false
	}
	return ok
}

// StripCheckmark removes the ✔️ decoration the quiz adds to revealed answers.
func StripCheckmark(s string) string {
	s = strings.ReplaceAll(s, "✔️", "")
	s = strings.ReplaceAll(s, "✔", "")
	return strings.TrimSpace(s)
}

// CleanOption strips the checkmark and any "N. " numbering the page put in front of an option.
func CleanOption(s string) string {
	return optionNumber.ReplaceAllString(StripCheckmark(s), "")
}
