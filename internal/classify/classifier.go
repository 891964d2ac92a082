package classify

import (
	"context"
	"log/slog"
)

// Oracle answers classification queries against a language model. An error
// indicates the oracle could not produce a usable result, including timeouts
// and responses that fail to parse.
type Oracle interface {
	Classify(ctx context.Context, content, sourceHint string) (Result, error)
}

// Classifier combines an optional oracle with deterministic heuristics.
type Classifier struct {
	oracle Oracle
	logger *slog.Logger
}

func New(oracle Oracle, logger *slog.Logger) *Classifier {
	return &Classifier{
		oracle: oracle,
		logger: logger,
	}
}

// Classify never fails: oracle errors and Unknown oracle results fall through
// to the keyword heuristics, which always yield a concrete format and intent.
func (c *Classifier) Classify(ctx context.Context, content, sourceHint string) Result {
	if c.oracle != nil {
		result, err := c.oracle.Classify(ctx, content, sourceHint)
		if err != nil {
			c.logger.Warn("oracle classification failed, using heuristics", "error", err)
		} else if result.Format != FormatUnknown {
			return result
		}
	}
	return Fallback(content, sourceHint)
}
