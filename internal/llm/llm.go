package llm

import "context"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of an ordered chat history.
type Message struct {
	Role    Role
	Content string
}

// Options tune a single generation request.
type Options struct {
	Temperature float64
	MaxTokens   int
	// Structured asks the backend for JSON-only output when it supports it.
	// Callers must still validate the returned text.
	Structured bool
}

// Client turns an ordered message history into generated text for one
// concrete backend model. Implementations are stateless and safe for
// concurrent use.
type Client interface {
	Generate(ctx context.Context, messages []Message, opts Options) (string, error)
	Model() string
}
