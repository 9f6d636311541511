package models

import "time"

// Role is the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of an open chat transcript. Not persisted.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Turn strips a message down to what the tutor needs as history.
func (m ChatMessage) Turn() ChatTurn {
	return ChatTurn{Role: m.Role, Content: m.Content}
}

// ChatTurn is a history entry sent along with a chat request.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of a chat call.
type ChatRequest struct {
	Message             string     `json:"message" validate:"required,max=2000"`
	ConversationHistory []ChatTurn `json:"conversationHistory" validate:"max=50,dive"`
}

// ChatReply is the body returned by the chat endpoint.
type ChatReply struct {
	Response string `json:"response"`
}

// ChatUsage counts chat turns for one calendar day (YYYY-MM-DD).
type ChatUsage struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// LookupRequest is the body of a word lookup call.
type LookupRequest struct {
	Word string `json:"word" validate:"required,max=100"`
}
