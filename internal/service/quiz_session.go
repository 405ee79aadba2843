package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/stemsi/chemistry-web/internal/model"
)

var (
	ErrInvalidOption   = errors.New("option index out of range")
	ErrUnknownAction   = errors.New("unknown quiz action")
	ErrControllerState = errors.New("quiz controller has no session")
)

// QuizState is the controller's position in the quiz flow.
type QuizState string

const (
	QuizIdle      QuizState = "idle"
	QuizAnswering QuizState = "answering"
	QuizReviewing QuizState = "reviewing"
)

// QuizAction names a user command.
type QuizAction string

const (
	ActionSelectSize   QuizAction = "select_size"
	ActionSelectOption QuizAction = "select_option"
	ActionNext         QuizAction = "next"
	ActionPrevious     QuizAction = "previous"
	ActionSubmit       QuizAction = "submit"
	ActionRevealHint   QuizAction = "reveal_hint"
	ActionRestart      QuizAction = "restart"
)

// QuizCommand is one user event fed to the controller.
type QuizCommand struct {
	Action QuizAction `json:"action"`
	Bank   string     `json:"bank,omitempty"`
	Option int        `json:"option"`
}

// ─── Session ────────────────────────────────────────────────────────

// QuizSession is the mutable state of one quiz attempt. It is created by
// select_size and dropped by restart.
type QuizSession struct {
	bank    model.QuizBank
	current int
	answers map[int]int
	hints   map[int]bool
}

func newQuizSession(bank model.QuizBank) *QuizSession {
	return &QuizSession{
		bank:    bank,
		answers: make(map[int]int),
		hints:   make(map[int]bool),
	}
}

// BankID returns the id of the bank the session was started from.
func (s *QuizSession) BankID() string { return s.bank.ID }

// Current returns the 0-based index of the question on screen.
func (s *QuizSession) Current() int { return s.current }

// Len returns the number of questions.
func (s *QuizSession) Len() int { return len(s.bank.Questions) }

// Answer returns the recorded option for question i.
func (s *QuizSession) Answer(i int) (int, bool) {
	a, ok := s.answers[i]
	return a, ok
}

// HintRevealed reports whether the hint of question i has been shown.
func (s *QuizSession) HintRevealed(i int) bool { return s.hints[i] }

func (s *QuizSession) isLast() bool { return s.current == len(s.bank.Questions)-1 }

func (s *QuizSession) selectOption(i int) error {
	q := s.bank.Questions[s.current]
	if i < 0 || i >= len(q.Options) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, i)
	}
	s.answers[s.current] = i
	return nil
}

func (s *QuizSession) revealHint() {
	if s.bank.Questions[s.current].HasHint() {
		s.hints[s.current] = true
	}
}

// ─── Scoring ────────────────────────────────────────────────────────

// Tier is the display bucket of a final percentage.
type Tier struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

var (
	TierExcellent = Tier{Key: "excellent", Label: "Excellent!", Emoji: "🎉"}
	TierGood      = Tier{Key: "good", Label: "Good Job!", Emoji: "👍"}
	TierFair      = Tier{Key: "fair", Label: "Not Bad! Keep Learning!", Emoji: "📚"}
	TierPractice  = Tier{Key: "practice", Label: "Keep Practicing!", Emoji: "💪"}
)

// TierFor maps a percentage to its tier. Lower bounds are inclusive.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= 90:
		return TierExcellent
	case percentage >= 70:
		return TierGood
	case percentage >= 50:
		return TierFair
	default:
		return TierPractice
	}
}

// QuizScore is the outcome of a submitted quiz.
type QuizScore struct {
	Score      int  `json:"score"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	Tier       Tier `json:"tier"`
}

// ScoreAnswers counts answers equal to the key. Unanswered questions are
// wrong. It never looks at anything but the full answer map.
func ScoreAnswers(questions []model.Question, answers map[int]int) QuizScore {
	score := 0
	for i, q := range questions {
		if a, ok := answers[i]; ok && a == q.CorrectIndex {
			score++
		}
	}
	pct := 0
	if len(questions) > 0 {
		pct = int(math.Round(100 * float64(score) / float64(len(questions))))
	}
	return QuizScore{
		Score:      score,
		Total:      len(questions),
		Percentage: pct,
		Tier:       TierFor(pct),
	}
}

// ─── Views ──────────────────────────────────────────────────────────

// NotAnswered is shown in the review for skipped questions.
const NotAnswered = "Not answered"

type OptionView struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

type QuestionView struct {
	BankID        string       `json:"bank_id"`
	Position      int          `json:"position"`
	Total         int          `json:"total"`
	Text          string       `json:"text"`
	Options       []OptionView `json:"options"`
	HintAvailable bool         `json:"hint_available"`
	HintVisible   bool         `json:"hint_visible"`
	Hint          string       `json:"hint,omitempty"`
	CanPrevious   bool         `json:"can_previous"`
	IsLast        bool         `json:"is_last"`
	Answered      int          `json:"answered"`
}

type ReviewItem struct {
	Position      int    `json:"position"`
	Question      string `json:"question"`
	YourAnswer    string `json:"your_answer"`
	Answered      bool   `json:"answered"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
}

type ReviewView struct {
	QuizScore
	BankID string       `json:"bank_id"`
	Items  []ReviewItem `json:"items"`
}

type IdleView struct {
	Banks []model.QuizBankSummary `json:"banks"`
}

// QuizView is what the controller renders after every command. Exactly one
// of Idle, Question and Review is set, matching State.
type QuizView struct {
	State    QuizState     `json:"state"`
	Idle     *IdleView     `json:"idle,omitempty"`
	Question *QuestionView `json:"question,omitempty"`
	Review   *ReviewView   `json:"review,omitempty"`
}

func (s *QuizSession) questionView() *QuestionView {
	q := s.bank.Questions[s.current]
	selected, hasAnswer := s.answers[s.current]

	opts := make([]OptionView, len(q.Options))
	for i, text := range q.Options {
		opts[i] = OptionView{Index: i, Text: text, Selected: hasAnswer && selected == i}
	}

	v := &QuestionView{
		BankID:        s.bank.ID,
		Position:      s.current + 1,
		Total:         len(s.bank.Questions),
		Text:          q.Text,
		Options:       opts,
		HintAvailable: q.HasHint(),
		HintVisible:   s.hints[s.current],
		CanPrevious:   s.current > 0,
		IsLast:        s.isLast(),
		Answered:      len(s.answers),
	}
	if v.HintVisible {
		v.Hint = q.Hint
	}
	return v
}

func (s *QuizSession) reviewView() *ReviewView {
	items := make([]ReviewItem, len(s.bank.Questions))
	for i, q := range s.bank.Questions {
		item := ReviewItem{
			Position:    i + 1,
			Question:    q.Text,
			YourAnswer:  NotAnswered,
			Explanation: q.Explanation,
		}
		if a, ok := s.answers[i]; ok {
			item.Answered = true
			item.YourAnswer = q.Options[a]
			item.Correct = a == q.CorrectIndex
		}
		if !item.Correct {
			item.CorrectAnswer = q.Options[q.CorrectIndex]
		}
		items[i] = item
	}
	return &ReviewView{
		QuizScore: ScoreAnswers(s.bank.Questions, s.answers),
		BankID:    s.bank.ID,
		Items:     items,
	}
}

// ─── Controller ─────────────────────────────────────────────────────

// BankResolver finds the bank for a select_size command.
type BankResolver interface {
	Resolve(bankID string) model.QuizBank
	Summaries() []model.QuizBankSummary
}

// QuizController owns exactly one session at a time and applies commands
// to it. It is not safe for concurrent use; each client gets its own.
type QuizController struct {
	banks   BankResolver
	state   QuizState
	session *QuizSession
	review  *ReviewView
}

// NewQuizController returns a controller in the Idle state.
func NewQuizController(banks BankResolver) *QuizController {
	return &QuizController{banks: banks, state: QuizIdle}
}

// State returns the current state.
func (c *QuizController) State() QuizState { return c.state }

// Session returns the active session, or nil when idle.
func (c *QuizController) Session() *QuizSession { return c.session }

// Dispatch applies one command and returns the resulting view. Commands
// whose precondition does not hold leave the state unchanged.
func (c *QuizController) Dispatch(cmd QuizCommand) (QuizView, error) {
	var err error

	switch cmd.Action {
	case ActionSelectSize:
		if c.state == QuizIdle {
			c.start(cmd.Bank)
		}
	case ActionSelectOption:
		if c.state == QuizAnswering {
			err = c.session.selectOption(cmd.Option)
		}
	case ActionNext:
		if c.state == QuizAnswering {
			if c.session.isLast() {
				c.submit()
			} else {
				c.session.current++
			}
		}
	case ActionPrevious:
		if c.state == QuizAnswering && c.session.current > 0 {
			c.session.current--
		}
	case ActionSubmit:
		if c.state == QuizAnswering {
			c.submit()
		}
	case ActionRevealHint:
		if c.state == QuizAnswering {
			c.session.revealHint()
		}
	case ActionRestart:
		if c.state == QuizReviewing {
			c.reset()
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}

	return c.View(), err
}

// View renders the current state without changing it.
func (c *QuizController) View() QuizView {
	switch c.state {
	case QuizAnswering:
		return QuizView{State: c.state, Question: c.session.questionView()}
	case QuizReviewing:
		return QuizView{State: c.state, Review: c.review}
	default:
		return QuizView{State: QuizIdle, Idle: &IdleView{Banks: c.banks.Summaries()}}
	}
}

// Result returns the score of a submitted quiz.
func (c *QuizController) Result() (QuizScore, error) {
	if c.state != QuizReviewing {
		return QuizScore{}, ErrControllerState
	}
	return c.review.QuizScore, nil
}

func (c *QuizController) start(bankID string) {
	bank := c.banks.Resolve(bankID)
	if len(bank.Questions) == 0 {
		return
	}
	c.session = newQuizSession(bank)
	c.review = nil
	c.state = QuizAnswering
}

func (c *QuizController) submit() {
	c.review = c.session.reviewView()
	c.state = QuizReviewing
}

func (c *QuizController) reset() {
	c.session = nil
	c.review = nil
	c.state = QuizIdle
}
