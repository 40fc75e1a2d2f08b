package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/relomate/relomate"
)

// Ensure LoggingPolisher implements relomate.Polisher.
var _ relomate.Polisher = (*LoggingPolisher)(nil)

// LoggingPolisher wraps a Polisher with call logging. Failures are logged
// at warn level because callers degrade to the unpolished draft.
type LoggingPolisher struct {
	next   relomate.Polisher
	logger *slog.Logger
}

// NewLoggingPolisher creates a new LoggingPolisher.
func NewLoggingPolisher(next relomate.Polisher, logger *slog.Logger) *LoggingPolisher {
	return &LoggingPolisher{next: next, logger: logger}
}

// Polish delegates to the wrapped Polisher and logs the call.
func (p *LoggingPolisher) Polish(ctx context.Context, question, draft string) (string, error) {
	begin := time.Now()
	polished, err := p.next.Polish(ctx, question, draft)
	if err != nil {
		p.logger.Warn("polish failed, falling back to draft",
			"error", err,
			"duration", time.Since(begin),
		)
		return polished, err
	}
	p.logger.Info("polish",
		"draft_len", len(draft),
		"polished_len", len(polished),
		"duration", time.Since(begin),
	)
	return polished, nil
}
