package webscraper

import "time"

const (
	DefaultTimeout            = 10 * time.Second       // bound for every wait
	DefaultPollInterval       = 200 * time.Millisecond // how often a wait re-checks
	DefaultOptionClickTimeout = time.Second            // bound for clicking a single answer option
)

// Markup is the DOM addressing scheme of the quiz page.
type Markup struct {
	LoadMarker      string // present once the quiz has rendered
	AnchorFormat    string // per-question navigation anchor, formatted with the question number
	QuestionText    string
	Image           string
	AnswerContainer string
	AnswerOption    string // clickable options inside the container
	OptionFormat    string // the i-th clickable option, 1-based
	Answer          string // every displayed option
	Correct         string
	Incorrect       string
	Explanation     string
}

// DefaultMarkup matches taplai.com's 600-question driving theory quiz.
var DefaultMarkup = Markup{
	LoadMarker:      ".answer-huy",
	AnchorFormat:    "#cau%d",
	QuestionText:    "#cauhoiquiz h3",
	Image:           ".question-image-huy",
	AnswerContainer: "#cautraloiquiz",
	AnswerOption:    "#cautraloiquiz > label",
	OptionFormat:    "#cautraloiquiz > label:nth-of-type(%d)",
	Answer:          ".answer-huy",
	Correct:         ".answer-huy.correct-huy",
	Incorrect:       ".incorrect-huy",
	Explanation:     ".explanation-text",
}
