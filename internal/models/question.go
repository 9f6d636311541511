package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vytor/wortflash/internal/errors"
)

// QuestionType is the wire tag of a quiz item.
type QuestionType string

const (
	MultipleChoice     QuestionType = "multiple_choice"
	FillBlank          QuestionType = "fill_blank"
	MeaningSelection   QuestionType = "meaning_selection"
	SentenceCompletion QuestionType = "sentence_completion"
)

// IsChoice reports whether answers to this type are option indexes.
func (t QuestionType) IsChoice() bool {
	switch t {
	case MultipleChoice, MeaningSelection, SentenceCompletion:
		return true
	}
	return false
}

// Question is one quiz item. The concrete type is either *ChoiceQuestion
// or *FillBlankQuestion.
type Question interface {
	QuestionID() int
	Type() QuestionType
	Prompt() string
	question()
}

// ChoiceQuestion is answered by picking an option index. Kind is one of
// MultipleChoice, MeaningSelection or SentenceCompletion.
type ChoiceQuestion struct {
	ID           int
	Kind         QuestionType
	Text         string
	Options      []string
	CorrectIndex int
}

func (q *ChoiceQuestion) QuestionID() int    { return q.ID }
func (q *ChoiceQuestion) Type() QuestionType { return q.Kind }
func (q *ChoiceQuestion) Prompt() string     { return q.Text }
func (*ChoiceQuestion) question()            {}

// FillBlankQuestion is answered with free text.
type FillBlankQuestion struct {
	ID     int
	Text   string
	Answer string
	Hint   string
}

func (q *FillBlankQuestion) QuestionID() int  { return q.ID }
func (*FillBlankQuestion) Type() QuestionType { return FillBlank }
func (q *FillBlankQuestion) Prompt() string   { return q.Text }
func (*FillBlankQuestion) question()          {}

// ValidateQuestion checks that q carries the fields its type needs to be answerable.
func ValidateQuestion(q Question) error {
	switch v := q.(type) {
	case *ChoiceQuestion:
		if len(v.Options) == 0 {
			return &errors.ConfigurationError{QuestionID: v.ID, Reason: "choice question has no options"}
		}
		if v.CorrectIndex < 0 || v.CorrectIndex >= len(v.Options) {
			return &errors.ConfigurationError{
				QuestionID: v.ID,
				Reason:     fmt.Sprintf("correct answer %d outside %d options", v.CorrectIndex, len(v.Options)),
			}
		}
	case *FillBlankQuestion:
		if strings.TrimSpace(v.Answer) == "" {
			return &errors.ConfigurationError{QuestionID: v.ID, Reason: "fill-blank question has no answer"}
		}
	case nil:
		return &errors.ConfigurationError{Reason: "missing question"}
	}
	return nil
}

// wireQuestion is the flat JSON shape shared with the function server.
type wireQuestion struct {
	ID            int             `json:"id"`
	Type          QuestionType    `json:"type"`
	Question      string          `json:"question"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Hint          string          `json:"hint,omitempty"`
}

// DecodeQuestion parses one question from its wire form.
func DecodeQuestion(data []byte) (Question, error) {
	var w wireQuestion
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}

	answer := bytes.TrimSpace(w.CorrectAnswer)
	switch {
	case w.Type == FillBlank:
		text, err := answerText(answer)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", w.ID, err)
		}
		return &FillBlankQuestion{ID: w.ID, Text: w.Question, Answer: text, Hint: w.Hint}, nil
	case w.Type.IsChoice():
		// A non-integer answer leaves the question unanswerable; ValidateQuestion reports it.
		idx := -1
		if err := json.Unmarshal(answer, &idx); err != nil {
			idx = -1
		}
		return &ChoiceQuestion{ID: w.ID, Kind: w.Type, Text: w.Question, Options: w.Options, CorrectIndex: idx}, nil
	default:
		return nil, fmt.Errorf("question %d: unknown type %q", w.ID, w.Type)
	}
}

func answerText(raw []byte) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String(), nil
	}
	return "", fmt.Errorf("fill_blank correctAnswer must be a string")
}

// MarshalQuestion encodes q in its wire form.
func MarshalQuestion(q Question) ([]byte, error) {
	var w wireQuestion
	switch v := q.(type) {
	case *ChoiceQuestion:
		answer, _ := json.Marshal(v.CorrectIndex)
		w = wireQuestion{ID: v.ID, Type: v.Kind, Question: v.Text, Options: v.Options, CorrectAnswer: answer}
	case *FillBlankQuestion:
		answer, _ := json.Marshal(v.Answer)
		w = wireQuestion{ID: v.ID, Type: FillBlank, Question: v.Text, CorrectAnswer: answer, Hint: v.Hint}
	default:
		return nil, fmt.Errorf("marshal question: unsupported type %T", q)
	}
	return json.Marshal(w)
}

// QuestionList is a JSON-friendly slice of questions.
type QuestionList []Question

// UnmarshalJSON decodes each element with DecodeQuestion.
func (l *QuestionList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(QuestionList, 0, len(raw))
	for _, r := range raw {
		q, err := DecodeQuestion(r)
		if err != nil {
			return err
		}
		out = append(out, q)
	}
	*l = out
	return nil
}

// MarshalJSON encodes each element with MarshalQuestion.
func (l QuestionList) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(l))
	for _, q := range l {
		b, err := MarshalQuestion(q)
		if err != nil {
			return nil, err
		}
		raw = append(raw, b)
	}
	return json.Marshal(raw)
}

// QuestionSet is the body returned by the practice endpoint.
type QuestionSet struct {
	Questions QuestionList `json:"questions"`
}
