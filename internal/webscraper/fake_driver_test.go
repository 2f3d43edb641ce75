package webscraper

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"
)

// fakeQuestion describes how the quiz page renders one question.
type fakeQuestion struct {
	text          string
	imageSrc      string // "" means no image element
	emptyImageSrc bool   // image element without src
	options       []string
	correct       int // 1-based; 0 means the page never reveals an answer
	explanation   []string
	noContainer   bool
	unclickable   map[int]bool // option clicks that fail
	contentErr    error        // returned by Content while this question is shown
}

// fakeDriver renders a quiz page from fakeQuestions and reacts to clicks the
// way the real page does: clicking the correct option marks it, clicking a
// wrong one marks that option incorrect.
type fakeDriver struct {
	url        string
	loaded     bool
	questions  map[int]*fakeQuestion
	missing    map[int]bool // anchors that never become clickable
	current    int
	clicked    map[int][]int // question -> options clicked in order
	wrong      map[int]bool
	revealed   bool
	navigated  []string
	closeCalls int
}

func newFakeDriver(questions map[int]*fakeQuestion) *fakeDriver {
	return &fakeDriver{
		url:       "https://quiz.example.com/theory/600.html",
		loaded:    true,
		questions: questions,
		missing:   map[int]bool{},
		clicked:   map[int][]int{},
		wrong:     map[int]bool{},
	}
}

func (d *fakeDriver) Navigate(url string) error {
	d.navigated = append(d.navigated, url)
	return nil
}

func (d *fakeDriver) Click(selector string, timeout time.Duration) error {
	var n int
	if _, err := fmt.Sscanf(selector, DefaultMarkup.AnchorFormat, &n); err == nil && strings.HasPrefix(selector, "#cau") && !strings.Contains(selector, " ") {
		if d.missing[n] || d.questions[n] == nil {
			return fmt.Errorf("%w: %s not clickable after %s", ErrTimeout, selector, timeout)
		}
		d.current = n
		d.revealed = false
		d.wrong = map[int]bool{}
		return nil
	}

	var i int
	if _, err := fmt.Sscanf(selector, DefaultMarkup.OptionFormat, &i); err == nil {
		q := d.questions[d.current]
		d.clicked[d.current] = append(d.clicked[d.current], i)
		if q.unclickable[i] {
			return errors.New("element is not attached to the DOM")
		}
		if i == q.correct {
			d.revealed = true
		} else {
			d.wrong[i] = true
		}
		return nil
	}
	return fmt.Errorf("unexpected click on %q", selector)
}

func (d *fakeDriver) Count(selector string) (int, error) {
	q := d.questions[d.current]
	switch selector {
	case DefaultMarkup.LoadMarker:
		if d.loaded {
			return 1, nil
		}
		return 0, nil
	case DefaultMarkup.AnswerContainer:
		if q == nil || q.noContainer {
			return 0, nil
		}
		return 1, nil
	case DefaultMarkup.AnswerOption:
		if q == nil || q.noContainer {
			return 0, nil
		}
		return len(q.options), nil
	case DefaultMarkup.Correct:
		if d.revealed {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("unexpected count of %q", selector)
}

func (d *fakeDriver) Content() (string, error) {
	q := d.questions[d.current]
	if q == nil {
		return "<html><body></body></html>", nil
	}
	if q.contentErr != nil {
		return "", q.contentErr
	}

	var b strings.Builder
	b.WriteString("<html><body><div id=\"cauhoiquiz\">")
	if q.text != "" {
		fmt.Fprintf(&b, "<h3>\n  %s\n</h3>", html.EscapeString(q.text))
	}
	if q.imageSrc != "" {
		fmt.Fprintf(&b, "<img class=\"question-image-huy\" src=\"%s\">", q.imageSrc)
	} else if q.emptyImageSrc {
		b.WriteString("<img class=\"question-image-huy\">")
	}
	b.WriteString("</div>")
	if !q.noContainer {
		b.WriteString("<div id=\"cautraloiquiz\">")
		for i, opt := range q.options {
			class := "answer-huy"
			text := fmt.Sprintf("%d. %s", i+1, opt)
			switch {
			case d.revealed && i+1 == q.correct:
				class += " correct-huy"
				text = fmt.Sprintf("%d. ✔️%s", i+1, opt)
			case d.wrong[i+1]:
				class += " incorrect-huy"
			}
			fmt.Fprintf(&b, "<label class=\"%s\"><span>%s</span></label>", class, html.EscapeString(text))
		}
		b.WriteString("</div>")
	}
	if d.revealed {
		for _, e := range q.explanation {
			fmt.Fprintf(&b, "<p class=\"explanation-text\">%s</p>", html.EscapeString(e))
		}
	}
	b.WriteString("</body></html>")
	return b.String(), nil
}

func (d *fakeDriver) URL() string {
	return d.url
}

func (d *fakeDriver) Close() error {
	d.closeCalls++
	return nil
}
