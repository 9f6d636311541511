package assistant

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wortflash/internal/gateway"
	"github.com/vytor/wortflash/internal/models"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"chatter around object", "Sure! Here it is:\n{\"a\":1}\nHope that helps.", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, got)
		})
	}

	_, err := extractJSON("Entschuldigung, das weiß ich nicht.")
	assert.ErrorIs(t, err, errNoJSON)

	_, err = extractJSON("{ broken")
	assert.ErrorIs(t, err, errNoJSON)
}

func TestBuildChatMessages_WindowAndRoles(t *testing.T) {
	var history []models.ChatTurn
	for i := 1; i <= 8; i++ {
		role := models.RoleUser
		if i%2 == 0 {
			role = models.Role("model")
		}
		history = append(history, models.ChatTurn{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}

	msgs := buildChatMessages("Was heißt Buch?", history)

	require.Len(t, msgs, 1+historyWindow+1)
	assert.Equal(t, gateway.RoleSystem, msgs[0].Role)
	assert.Equal(t, "turn 3", msgs[1].Content)
	assert.Equal(t, gateway.RoleUser, msgs[1].Role)
	assert.Equal(t, gateway.RoleAssistant, msgs[2].Role, "unknown roles are sent as assistant")
	assert.Equal(t, gateway.Message{Role: gateway.RoleUser, Content: "Was heißt Buch?"}, msgs[len(msgs)-1])
}

func TestPracticePrompt_MentionsWordAndCount(t *testing.T) {
	p := practicePrompt(models.WordContext{Word: "Buch", PartOfSpeech: "noun", Article: models.StringPtr("das")}, 7)

	assert.Contains(t, p, "Generate exactly 7 practice questions")
	assert.Contains(t, p, `"Buch" (noun)`)
	assert.Contains(t, p, "- Article: das")
	assert.Contains(t, p, "- Plural: N/A")
}
