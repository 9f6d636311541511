package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wortflash/internal/errors"
	"github.com/vytor/wortflash/internal/models"
)

const sampleQuestions = `{
  "questions": [
    {"id": 1, "type": "multiple_choice", "question": "Which article?", "options": ["der", "die", "das"], "correctAnswer": 2},
    {"id": 2, "type": "fill_blank", "question": "Ich ___ gern Bücher.", "correctAnswer": "lese", "hint": "to read"},
    {"id": 3, "type": "meaning_selection", "question": "What does 'Buch' mean?", "options": ["Book", "Table"], "correctAnswer": 0},
    {"id": 4, "type": "sentence_completion", "question": "Das ___ ist dick.", "options": ["Buch", "Katze"], "correctAnswer": 0}
  ]
}`

func TestQuestionSet_DecodesEveryVariant(t *testing.T) {
	var set models.QuestionSet
	require.NoError(t, json.Unmarshal([]byte(sampleQuestions), &set))
	require.Len(t, set.Questions, 4)

	choice, ok := set.Questions[0].(*models.ChoiceQuestion)
	require.True(t, ok)
	assert.Equal(t, models.MultipleChoice, choice.Kind)
	assert.Equal(t, 2, choice.CorrectIndex)

	blank, ok := set.Questions[1].(*models.FillBlankQuestion)
	require.True(t, ok)
	assert.Equal(t, "lese", blank.Answer)
	assert.Equal(t, "to read", blank.Hint)

	assert.Equal(t, models.MeaningSelection, set.Questions[2].Type())
	assert.Equal(t, models.SentenceCompletion, set.Questions[3].Type())

	for _, q := range set.Questions {
		assert.NoError(t, models.ValidateQuestion(q), "question %d", q.QuestionID())
	}
}

func TestQuestionList_WireFormatIsStable(t *testing.T) {
	var set models.QuestionSet
	require.NoError(t, json.Unmarshal([]byte(sampleQuestions), &set))

	encoded, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, sampleQuestions, string(encoded))
}

func TestDecodeQuestion_UnknownTypeFails(t *testing.T) {
	_, err := models.DecodeQuestion([]byte(`{"id": 9, "type": "essay", "question": "?"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "essay")
}

func TestDecodeQuestion_LenientAnswers(t *testing.T) {
	t.Run("numeric fill blank answer kept as text", func(t *testing.T) {
		q, err := models.DecodeQuestion([]byte(`{"id": 1, "type": "fill_blank", "question": "2+2=", "correctAnswer": 4}`))
		require.NoError(t, err)
		assert.Equal(t, "4", q.(*models.FillBlankQuestion).Answer)
	})

	t.Run("string index makes choice unanswerable", func(t *testing.T) {
		q, err := models.DecodeQuestion([]byte(`{"id": 2, "type": "multiple_choice", "question": "?", "options": ["a"], "correctAnswer": "0"}`))
		require.NoError(t, err)
		assert.Equal(t, -1, q.(*models.ChoiceQuestion).CorrectIndex)
		assert.Error(t, models.ValidateQuestion(q))
	})
}

func TestValidateQuestion_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		q    models.Question
	}{
		{"no options", &models.ChoiceQuestion{ID: 1, Kind: models.MultipleChoice, Text: "?"}},
		{"index out of range", &models.ChoiceQuestion{ID: 2, Kind: models.MeaningSelection, Options: []string{"a", "b"}, CorrectIndex: 2}},
		{"negative index", &models.ChoiceQuestion{ID: 3, Kind: models.SentenceCompletion, Options: []string{"a"}, CorrectIndex: -1}},
		{"empty fill blank answer", &models.FillBlankQuestion{ID: 4, Text: "?"}},
		{"whitespace fill blank answer", &models.FillBlankQuestion{ID: 5, Text: "?", Answer: "  \t "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := models.ValidateQuestion(tt.q)
			var cfgErr *errors.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.q.QuestionID(), cfgErr.QuestionID)
		})
	}
}

func TestUserProfile_Recompute(t *testing.T) {
	p := models.NewUserProfile()
	p.PracticeHistory = append(p.PracticeHistory,
		models.PracticeResult{Word: "Buch", Score: 7, TotalQuestions: 10},
		models.PracticeResult{Word: "Hund", Score: 5, TotalQuestions: 5},
		models.PracticeResult{Word: "leer", Score: 0, TotalQuestions: 0},
	)

	p.Recompute()

	assert.Equal(t, 3, p.TotalPractices)
	assert.InDelta(t, (7.0+10.0+0.0)/3, p.AverageScore, 1e-9)
}
