package relomate

import "context"

// IntroMessage opens every new chat session, whatever the surface.
const IntroMessage = "Hi there! I'm your Apartment Relocation Assistant.\n\n" +
	"Tell me your monthly rent budget and a place you're interested in, " +
	"or ask me to compare two metros like 'Compare Seattle and Austin'."

// Message roles used by the chat surfaces.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat transcript entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chatter produces an assistant reply for a single user message. Each turn
// is independent; implementations hold no conversational state.
type Chatter interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Polisher rephrases a computed draft answer into conversational prose
// using a pre-trained text-generation model. Callers fall back to the
// draft when Polish fails.
type Polisher interface {
	Polish(ctx context.Context, question, draft string) (string, error)
}
