// Package ollama implements relomate.Polisher against a local Ollama
// runtime using the non-streaming /api/chat endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/relomate/relomate"
)

// DefaultHost is the standard local Ollama address.
const DefaultHost = "http://127.0.0.1:11434"

const systemPrompt = "You are a friendly apartment relocation assistant. Rewrite the draft answer as natural conversational prose. Keep every number, metro name, and ranking exactly as given. Do not invent data that is not in the draft."

// Ensure Polisher implements relomate.Polisher at compile time.
var _ relomate.Polisher = (*Polisher)(nil)

// Polisher rephrases computed answers using a local Ollama model.
type Polisher struct {
	httpClient *http.Client
	host       string
	model      string
}

// NewPolisher creates a new Polisher targeting the given host
// (e.g. http://127.0.0.1:11434) and model.
func NewPolisher(host, model string) *Polisher {
	if host == "" {
		host = DefaultHost
	}
	return &Polisher{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		host:       strings.TrimRight(host, "/"),
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// Polish rewrites the draft answer as conversational prose.
func (p *Polisher) Polish(ctx context.Context, question, draft string) (string, error) {
	if p.model == "" {
		return "", relomate.Errorf(relomate.EINVALID, "ollama model required")
	}
	if strings.TrimSpace(draft) == "" {
		return "", relomate.Errorf(relomate.EINVALID, "draft required")
	}

	body, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("<question>%s</question>\n<draft>\n%s\n</draft>\n\nRewrite the draft as the reply to the question.", question, draft)},
		},
		Stream:  false,
		Options: map[string]any{"temperature": 0.4},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", relomate.Errorf(relomate.EUNAVAILABLE, "ollama request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", relomate.Errorf(relomate.EUNAVAILABLE, "ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var result chatResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", relomate.Errorf(relomate.EINTERNAL, "failed to decode ollama response: %v", err)
	}
	if strings.TrimSpace(result.Message.Content) == "" {
		return "", relomate.Errorf(relomate.EINTERNAL, "ollama returned an empty completion")
	}

	return result.Message.Content, nil
}
