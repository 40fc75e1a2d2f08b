// Package slog provides logging decorators for the domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/relomate/relomate"
)

// Ensure LoggingChatter implements relomate.Chatter.
var _ relomate.Chatter = (*LoggingChatter)(nil)

// LoggingChatter wraps a Chatter with per-turn logging.
type LoggingChatter struct {
	next   relomate.Chatter
	logger *slog.Logger
}

// NewLoggingChatter creates a new LoggingChatter.
func NewLoggingChatter(next relomate.Chatter, logger *slog.Logger) *LoggingChatter {
	return &LoggingChatter{next: next, logger: logger}
}

// Chat delegates to the wrapped Chatter and logs the turn.
func (c *LoggingChatter) Chat(ctx context.Context, message string) (string, error) {
	begin := time.Now()
	reply, err := c.next.Chat(ctx, message)
	attrs := []any{
		"intent", string(relomate.ClassifyMessage(message).Intent),
		"message_len", len(message),
		"reply_len", len(reply),
		"duration", time.Since(begin),
	}
	if err != nil {
		attrs = append(attrs, "error", err)
		c.logger.Error("chat turn failed", attrs...)
		return reply, err
	}
	c.logger.Info("chat turn", attrs...)
	return reply, nil
}
