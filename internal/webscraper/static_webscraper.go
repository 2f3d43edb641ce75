package webscraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Snapshot is a parsed copy of the page DOM at one moment.
// Reading fields from a snapshot never touches the live browser.
type Snapshot struct {
	doc    *goquery.Document
	markup Markup
}

// NewSnapshot parses serialized page content.
func NewSnapshot(content string, markup Markup) (*Snapshot, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse page content: %w", err)
	}
	return &Snapshot{doc: goquery.NewDocumentFromNode(root), markup: markup}, nil
}

// QuestionText returns the prompt text, or "" when the element is missing.
func (s *Snapshot) QuestionText() string {
	return elementText(s.doc.Find(s.markup.QuestionText).First())
}

// ImageSource reports whether the question has an image element and its raw src.
func (s *Snapshot) ImageSource() (src string, found bool) {
	img := s.doc.Find(s.markup.Image).First()
	if img.Length() == 0 {
		return "", false
	}
	src, _ = img.Attr("src")
	return strings.TrimSpace(src), true
}

// CorrectAnswer returns the text of the first element marked correct, or "".
func (s *Snapshot) CorrectAnswer() string {
	return elementText(s.doc.Find(s.markup.Correct).First())
}

// Options returns the text of every displayed option, in display order.
func (s *Snapshot) Options() []string {
	return texts(s.doc.Find(s.markup.Answer))
}

// IncorrectAnswers returns the text of every element marked incorrect.
func (s *Snapshot) IncorrectAnswers() []string {
	return texts(s.doc.Find(s.markup.Incorrect))
}

// Explanation joins every explanation element with a single space.
func (s *Snapshot) Explanation() string {
	return strings.Join(texts(s.doc.Find(s.markup.Explanation)), " ")
}

// texts collects non-empty element texts. The result is never nil.
func texts(sel *goquery.Selection) []string {
	result := []string{}
	sel.Each(func(_ int, el *goquery.Selection) {
		if t := elementText(el); t != "" {
			result = append(result, t)
		}
	})
	return result
}

func elementText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return strings.Join(strings.Fields(sel.Text()), " ")
}
