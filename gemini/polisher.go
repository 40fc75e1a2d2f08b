// Package gemini implements relomate.Polisher using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/relomate/relomate"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Polisher implements relomate.Polisher at compile time.
var _ relomate.Polisher = (*Polisher)(nil)

// Polisher rephrases computed answers using Google Gemini. Calls are rate
// limited with a token bucket of 1 request per second.
type Polisher struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

// NewPolisher creates a new Polisher for the given model.
func NewPolisher(client *genai.Client, model string) *Polisher {
	if model == "" {
		model = DefaultModel
	}
	return &Polisher{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

// Polish rewrites the draft answer as conversational prose.
func (p *Polisher) Polish(ctx context.Context, question, draft string) (string, error) {
	if strings.TrimSpace(draft) == "" {
		return "", relomate.Errorf(relomate.EINVALID, "draft required")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	prompt := BuildUserPrompt(question, draft)
	config := BuildConfig()

	result, err := p.client.Models.GenerateContent(ctx, p.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", relomate.Errorf(relomate.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a friendly apartment relocation assistant. Rewrite the draft answer as natural conversational prose. Keep every number, metro name, and ranking exactly as given. Do not invent data that is not in the draft.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the question and the
// computed draft answer.
func BuildUserPrompt(question, draft string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<question>%s</question>\n", question)
	fmt.Fprintf(&sb, "<draft>\n%s\n</draft>\n\n", draft)
	sb.WriteString("Rewrite the draft as the reply to the question.")
	return sb.String()
}
