package gateway

import "context"

// Roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a completion prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer sends a prompt to a language model and returns the text of the reply.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Ensure both providers implement the interface
var (
	_ Completer = (*Client)(nil)
	_ Completer = (*AnthropicClient)(nil)
)
