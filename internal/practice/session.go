package practice

import (
	"errors"
	"strings"

	"github.com/vytor/wortflash/internal/models"
)

var (
	ErrNoQuestions     = errors.New("practice: no questions")
	ErrSessionComplete = errors.New("practice: session already complete")
	ErrNotAnswered     = errors.New("practice: current question not answered")
	ErrAnswerKind      = errors.New("practice: answer does not fit question type")
)

// Answer is either an option index or free text.
type Answer struct {
	option int
	text   string
	isText bool
}

// ChoiceAnswer selects option i of a choice question.
func ChoiceAnswer(i int) Answer { return Answer{option: i} }

// TextAnswer is the typed answer to a fill-blank question.
func TextAnswer(s string) Answer { return Answer{text: s, isText: true} }

// Result is the final score of a completed session.
type Result struct {
	Word           string
	Score          int
	TotalQuestions int
}

// Option configures a Session.
type Option func(*Session)

// WithCompletionHandler registers fn to receive the final result. It is called exactly once.
func WithCompletionHandler(fn func(Result)) Option {
	return func(s *Session) {
		s.onComplete = fn
	}
}

// Session runs one quiz over a fixed list of questions.
//
// States: in progress at (index, answered) until Advance is called on the
// last answered question, then complete. Score only grows in Submit.
type Session struct {
	word       string
	questions  []models.Question
	index      int
	score      int
	answered   bool
	correct    bool
	complete   bool
	onComplete func(Result)
}

// NewSession starts a session at the first question.
func NewSession(word string, questions []models.Question, opts ...Option) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	s := &Session{
		word:      word,
		questions: append([]models.Question(nil), questions...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit grades the answer to the current question. A second call on the same
// question changes nothing and reports the first outcome.
func (s *Session) Submit(a Answer) (bool, error) {
	if s.complete {
		return false, ErrSessionComplete
	}
	if s.answered {
		return s.correct, nil
	}

	q := s.questions[s.index]
	if err := models.ValidateQuestion(q); err != nil {
		return false, err
	}

	var correct bool
	switch v := q.(type) {
	case *models.FillBlankQuestion:
		if !a.isText {
			return false, ErrAnswerKind
		}
		correct = normalize(a.text) == normalize(v.Answer)
	case *models.ChoiceQuestion:
		if a.isText {
			return false, ErrAnswerKind
		}
		correct = a.option == v.CorrectIndex
	default:
		return false, ErrAnswerKind
	}

	if correct {
		s.score++
	}
	s.correct = correct
	s.answered = true
	return correct, nil
}

// Skip marks a misconfigured question as answered incorrectly so the session
// can move on. Valid questions cannot be skipped.
func (s *Session) Skip() error {
	if s.complete {
		return ErrSessionComplete
	}
	if s.answered {
		return nil
	}
	if err := models.ValidateQuestion(s.questions[s.index]); err == nil {
		return ErrNotAnswered
	}
	s.answered = true
	s.correct = false
	return nil
}

// Advance moves to the next question, or completes the session when the last
// question has been answered. The returned Result is non-nil only on completion.
func (s *Session) Advance() (*Result, error) {
	if s.complete {
		return nil, ErrSessionComplete
	}
	if !s.answered {
		return nil, ErrNotAnswered
	}

	if s.index+1 < len(s.questions) {
		s.index++
		s.answered = false
		s.correct = false
		return nil, nil
	}

	s.complete = true
	res := Result{Word: s.word, Score: s.score, TotalQuestions: len(s.questions)}
	if s.onComplete != nil {
		s.onComplete(res)
	}
	return &res, nil
}

func (s *Session) Word() string     { return s.word }
func (s *Session) Index() int       { return s.index }
func (s *Session) Total() int       { return len(s.questions) }
func (s *Session) Score() int       { return s.score }
func (s *Session) IsAnswered() bool { return s.answered }
func (s *Session) IsComplete() bool { return s.complete }

// LastCorrect reports the outcome of the current question once answered.
func (s *Session) LastCorrect() bool { return s.answered && s.correct }

// Current returns the question being asked. After completion it stays on the last one.
func (s *Session) Current() models.Question { return s.questions[s.index] }

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
