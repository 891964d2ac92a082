// Package oracle adapts a go-agents chat model into the advisory
// classification queries the pipeline issues. Every query runs under its own
// deadline and returns an error on failure; callers are expected to fall back
// to deterministic behavior rather than propagate oracle errors.
package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/courier/internal/classify"
	"github.com/JaimeStill/courier/pkg/formatting"
)

type classificationResponse struct {
	Format string `json:"format"`
	Intent string `json:"intent"`
}

// Adapter issues classification and intent queries against a configured
// agent. A fresh agent is created per query so transport state never leaks
// across calls.
type Adapter struct {
	config *Config
	logger *slog.Logger

	classifyTimeout  time.Duration
	intentTimeout    time.Duration
	pdfIntentTimeout time.Duration
}

// New constructs an Adapter from a finalized Config.
func New(config *Config, logger *slog.Logger) (*Adapter, error) {
	classifyTimeout, err := time.ParseDuration(config.ClassifyTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse classify timeout: %w", err)
	}

	intentTimeout, err := time.ParseDuration(config.IntentTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse intent timeout: %w", err)
	}

	pdfIntentTimeout, err := time.ParseDuration(config.PDFIntentTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse pdf intent timeout: %w", err)
	}

	return &Adapter{
		config:           config,
		logger:           logger,
		classifyTimeout:  classifyTimeout,
		intentTimeout:    intentTimeout,
		pdfIntentTimeout: pdfIntentTimeout,
	}, nil
}

// Classify asks the model for a format and intent judgment on content.
// Responses that fail to parse as the expected JSON object are errors.
func (o *Adapter) Classify(ctx context.Context, content, sourceHint string) (classify.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, o.classifyTimeout)
	defer cancel()

	a, err := agent.New(&o.config.Agent)
	if err != nil {
		return classify.Result{}, fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, classifyPrompt(content, sourceHint))
	if err != nil {
		return classify.Result{}, fmt.Errorf("classification query: %w", err)
	}

	parsed, err := formatting.Parse[classificationResponse](resp.Content())
	if err != nil {
		return classify.Result{}, fmt.Errorf("parse classification: %w", err)
	}

	result := classify.Result{
		Format: classify.ParseFormat(parsed.Format),
		Intent: classify.ParseIntent(parsed.Intent),
	}

	o.logger.Debug(
		"oracle classification",
		"format", result.Format,
		"intent", result.Intent,
	)

	return result, nil
}

// DetectIntent asks the model to pick one intent label from vocabulary for
// the given text. Answers outside the vocabulary resolve to "other".
func (o *Adapter) DetectIntent(ctx context.Context, text string, vocabulary []string) (string, error) {
	return o.detectIntent(ctx, text, vocabulary, o.intentTimeout)
}

// DetectPDFIntent behaves like DetectIntent but runs under the shorter
// deadline used for extracted PDF text, where the query is a late-stage
// tiebreaker rather than the primary signal.
func (o *Adapter) DetectPDFIntent(ctx context.Context, text string, vocabulary []string) (string, error) {
	return o.detectIntent(ctx, text, vocabulary, o.pdfIntentTimeout)
}

func (o *Adapter) detectIntent(ctx context.Context, text string, vocabulary []string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	a, err := agent.New(&o.config.Agent)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, intentPrompt(text, vocabulary))
	if err != nil {
		return "", fmt.Errorf("intent query: %w", err)
	}

	label := normalizeLabel(resp.Content())
	if !slices.Contains(vocabulary, label) {
		o.logger.Debug("oracle intent outside vocabulary", "label", label)
		return "other", nil
	}

	return label, nil
}

// normalizeLabel reduces a model answer to a bare lower-case label: first
// whitespace-delimited token with surrounding quotes and punctuation removed.
func normalizeLabel(content string) string {
	fields := strings.Fields(strings.ToLower(content))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], "\"'`.,:;")
}
