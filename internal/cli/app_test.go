package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wortflash/internal/chat"
	"github.com/vytor/wortflash/internal/cli"
	"github.com/vytor/wortflash/internal/errors"
	"github.com/vytor/wortflash/internal/models"
	"github.com/vytor/wortflash/internal/repository/memory"
	"github.com/vytor/wortflash/internal/services"
	"github.com/vytor/wortflash/internal/testutil"
	"github.com/vytor/wortflash/internal/testutil/mocks"
)

var buch = models.WordData{
	Word:           "Buch",
	TurkishMeaning: "kitap",
	EnglishMeaning: "book",
	PartOfSpeech:   "noun",
	Article:        models.StringPtr("das"),
	PluralForm:     models.StringPtr("Bücher"),
	ExampleSentences: []models.ExampleSentence{
		{German: "Das Buch ist neu.", Turkish: "Kitap yeni.", English: "The book is new."},
	},
}

type harness struct {
	learner   *mocks.MockLearner
	requester *mocks.MockChatRequester
	profiles  services.ProfileService
	quota     services.ChatQuotaService
	out       *bytes.Buffer
}

func newHarness() *harness {
	repo := memory.NewKeyValueRepository()
	clock := testutil.NewClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local))
	return &harness{
		learner:   new(mocks.MockLearner),
		requester: new(mocks.MockChatRequester),
		profiles:  services.NewProfileService(repo, clock),
		quota:     services.NewChatQuotaService(repo, clock),
		out:       &bytes.Buffer{},
	}
}

func (h *harness) run(t *testing.T, input ...string) string {
	t.Helper()
	app := cli.New(strings.NewReader(strings.Join(input, "\n")+"\n"), h.out, cli.Deps{
		Learner:  h.learner,
		Chat:     chat.NewSession(h.requester, h.quota),
		Profiles: h.profiles,
		Quota:    h.quota,
	}, cli.WithColors(false))
	require.NoError(t, app.Run(context.Background()))
	return h.out.String()
}

func TestApp_SearchPrintsCard(t *testing.T) {
	h := newHarness()
	h.learner.On("LookupWord", mock.Anything, "Buch").Return(buch, nil)

	out := h.run(t, "Buch", "/exit")

	assert.Contains(t, out, "das Buch")
	assert.Contains(t, out, "plural:  Bücher")
	assert.Contains(t, out, "1. Das Buch ist neu.")
	assert.Contains(t, out, "Tschüss!")
}

func TestApp_LookupFailureIsTransient(t *testing.T) {
	h := newHarness()
	h.learner.On("LookupWord", mock.Anything, "Buch").Return(models.WordData{}, errors.NewLookupError("boom", nil)).Once()
	h.learner.On("LookupWord", mock.Anything, "Buch").Return(buch, nil).Once()

	out := h.run(t, "/search Buch", "/search Buch")

	assert.Contains(t, out, "Lookup failed, please try again.")
	assert.Contains(t, out, "das Buch")
}

func TestApp_PracticeRecordsResult(t *testing.T) {
	h := newHarness()
	h.learner.On("LookupWord", mock.Anything, "Buch").Return(buch, nil)
	h.learner.On("GeneratePracticeQuestions", mock.Anything, buch).Return([]models.Question{
		&models.ChoiceQuestion{ID: 1, Kind: models.MultipleChoice, Text: "Article of Buch?", Options: []string{"der", "die", "das"}, CorrectIndex: 2},
		&models.FillBlankQuestion{ID: 2, Text: "Ich ___ ein Buch.", Answer: "lese", Hint: "to read"},
		&models.ChoiceQuestion{ID: 3, Kind: models.MeaningSelection, Text: "Buch means?", Options: []string{"Book", "Table"}, CorrectIndex: 0},
	}, nil)

	out := h.run(t, "Buch", "/practice", "x", "3", " LESE ", "2", "/profile")

	assert.Contains(t, out, "Type the number of an option.")
	assert.Contains(t, out, "Richtig!")
	assert.Contains(t, out, "Falsch. The answer was: Book")
	assert.Contains(t, out, "Score: 2/3")
	assert.Contains(t, out, "★★★★★★★☆☆☆")

	p := h.profiles.GetProfile(context.Background())
	require.Equal(t, 1, p.TotalPractices)
	assert.Equal(t, "Buch", p.PracticeHistory[0].Word)
	assert.Equal(t, 2, p.PracticeHistory[0].Score)
	assert.Equal(t, 3, p.PracticeHistory[0].TotalQuestions)
	assert.InDelta(t, 6.67, p.AverageScore, 0.01)
	assert.Contains(t, out, "practices:     1")
}

func TestApp_PracticeSkipAndQuit(t *testing.T) {
	h := newHarness()
	h.learner.On("LookupWord", mock.Anything, "Buch").Return(buch, nil)
	h.learner.On("GeneratePracticeQuestions", mock.Anything, buch).Return([]models.Question{
		&models.ChoiceQuestion{ID: 1, Kind: models.MultipleChoice, Text: "broken"},
		&models.FillBlankQuestion{ID: 2, Text: "Ich ___ ein Buch.", Answer: "lese"},
	}, nil)

	out := h.run(t, "Buch", "/practice", "1", "/skip", "/skip", "/quit")

	assert.Contains(t, out, "This question is broken")
	assert.Contains(t, out, "Skipped.")
	assert.Contains(t, out, "Only broken questions can be skipped.")
	assert.Contains(t, out, "Practice abandoned.")
	assert.Equal(t, 0, h.profiles.GetProfile(context.Background()).TotalPractices)
}

func TestApp_PracticeNeedsAWord(t *testing.T) {
	h := newHarness()
	out := h.run(t, "/practice")
	assert.Contains(t, out, "Look up a word first")
	h.learner.AssertNotCalled(t, "GeneratePracticeQuestions", mock.Anything, mock.Anything)
}

func TestApp_ChatQuota(t *testing.T) {
	h := newHarness()
	h.requester.On("SendChatMessage", mock.Anything, mock.Anything, mock.Anything).Return("Gut gemacht!", nil)

	input := []string{}
	for i := 0; i < services.DailyChatLimit+1; i++ {
		input = append(input, "/chat Hallo")
	}
	out := h.run(t, append(input, "/quota")...)

	assert.Equal(t, services.DailyChatLimit, strings.Count(out, "tutor: Gut gemacht!"))
	assert.Contains(t, out, "4/5 chat messages left today.")
	assert.Contains(t, out, "Daily limit reached.")
	assert.Contains(t, out, "0/5 chat messages left today.")
	h.requester.AssertNumberOfCalls(t, "SendChatMessage", services.DailyChatLimit)
}

func TestApp_UnknownCommandAndHelp(t *testing.T) {
	h := newHarness()
	out := h.run(t, "/dance", "/help")
	assert.Contains(t, out, "Unknown command /dance")
	assert.Contains(t, out, "/practice")
}

func TestApp_ChoiceOutOfRangeIsAskedAgain(t *testing.T) {
	h := newHarness()
	h.learner.On("LookupWord", mock.Anything, "Buch").Return(buch, nil)
	h.learner.On("GeneratePracticeQuestions", mock.Anything, buch).Return([]models.Question{
		&models.ChoiceQuestion{ID: 1, Kind: models.MultipleChoice, Text: "Article of Buch?", Options: []string{"der", "die", "das"}, CorrectIndex: 2},
	}, nil)

	out := h.run(t, "Buch", "/practice", "0", "9", "3")

	assert.Equal(t, 2, strings.Count(out, "Type a number between 1 and 3."))
	assert.Contains(t, out, "Richtig!")
	assert.Contains(t, out, "Score: 1/1")
	assert.Equal(t, 1, h.profiles.GetProfile(context.Background()).PracticeHistory[0].Score)
}
