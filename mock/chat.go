package mock

import (
	"context"

	"github.com/relomate/relomate"
)

var _ relomate.Chatter = (*Chatter)(nil)

// Chatter is a mock implementation of relomate.Chatter.
type Chatter struct {
	ChatFn func(ctx context.Context, message string) (string, error)
}

func (c *Chatter) Chat(ctx context.Context, message string) (string, error) {
	return c.ChatFn(ctx, message)
}

var _ relomate.Polisher = (*Polisher)(nil)

// Polisher is a mock implementation of relomate.Polisher.
type Polisher struct {
	PolishFn func(ctx context.Context, question, draft string) (string, error)
}

func (p *Polisher) Polish(ctx context.Context, question, draft string) (string, error) {
	return p.PolishFn(ctx, question, draft)
}
