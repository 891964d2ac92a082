// Package pipeline wires classification, extraction, validation, and audit
// logging into the single routing entry point consumed by the transport
// layer. The pipeline holds no mutable state of its own and is safe to
// invoke concurrently; the audit log is the only shared resource.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/courier/internal/audit"
	"github.com/JaimeStill/courier/internal/classify"
	"github.com/JaimeStill/courier/internal/extract"
	"github.com/JaimeStill/courier/internal/validate"
)

// jsonIntentVocabulary bounds the oracle query used to resolve the intent of
// JSON payloads from their raw_text field.
var jsonIntentVocabulary = []string{"invoice", "rfq", "complaint", "other"}

// IntentOracle answers the narrow intent-only queries issued during JSON and
// PDF processing.
type IntentOracle interface {
	DetectIntent(ctx context.Context, text string, vocabulary []string) (string, error)
	extract.IntentOracle
}

// Input is one document presented for routing. Content carries textual
// input; Raw carries binary document content for PDF extraction. Format,
// when set, overrides the classified format the way a transport endpoint
// dedicated to one input kind does.
type Input struct {
	Content        string
	Raw            []byte
	Format         classify.Format
	SourceHint     string
	Sender         string
	ConversationID string
}

func (in Input) content() string {
	if in.Content != "" {
		return in.Content
	}
	return string(in.Raw)
}

func (in Input) hint() string {
	if in.SourceHint != "" {
		return in.SourceHint
	}
	if in.Format != "" {
		return string(in.Format)
	}
	if content := in.content(); len(content) < 1000 {
		return content
	}
	return "Unknown"
}

// Pipeline routes raw input through classification, extraction, and
// validation, appending every outcome to the audit log.
type Pipeline struct {
	classifier *classify.Classifier
	intents    IntentOracle
	extractor  extract.TextExtractor
	registry   *validate.Registry
	audit      audit.System
	logger     *slog.Logger
}

// New constructs a Pipeline. intents and extractor may be nil: without an
// intent oracle, intent resolution stops at the deterministic layers, and
// without a text extractor, binary PDF content fails with an extraction
// sentinel.
func New(
	classifier *classify.Classifier,
	intents IntentOracle,
	extractor extract.TextExtractor,
	registry *validate.Registry,
	auditLog audit.System,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		intents:    intents,
		extractor:  extractor,
		registry:   registry,
		audit:      auditLog,
		logger:     logger.With("system", "pipeline"),
	}
}

// Route classifies input, extracts format-specific attributes, validates
// them against the resolved intent, and appends the outcome to the audit
// log. Every successful call produces exactly one audit entry; error
// returns produce none. Oracle failures never surface here: they resolve
// to heuristic classification.
func (p *Pipeline) Route(ctx context.Context, in Input) (any, error) {
	content := in.content()

	cls := p.classifier.Classify(ctx, content, in.hint())

	format := in.Format
	if format == "" || format == classify.FormatUnknown {
		format = cls.Format
	}

	p.logger.Info(
		"input classified",
		"format", format,
		"intent", cls.Intent,
	)

	switch format {
	case classify.FormatEmail:
		return p.routeEmail(ctx, in, content, cls)
	case classify.FormatJSON:
		return p.routeJSON(ctx, in, content, cls)
	case classify.FormatPDF:
		return p.routePDF(ctx, in, content, cls)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func (p *Pipeline) routeEmail(ctx context.Context, in Input, content string, cls classify.Result) (any, error) {
	email := extract.ParseEmail(content)

	payload := email.Payload()
	payload["intent"] = cls.Intent.Key()

	result := p.registry.Route(payload)

	sender := in.Sender
	if sender == "" {
		sender = email.Sender
	}

	if err := p.append(ctx, "Email", in, sender, cls, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Pipeline) routeJSON(ctx context.Context, in Input, content string, cls classify.Result) (any, error) {
	// Callers see only the bare sentinel; the decode detail stays in the log.
	payload, err := extract.ParseJSON(content)
	if err != nil {
		p.logger.Warn("json parse failed", "error", err)
		return nil, extract.ErrMalformedJSON
	}

	payload["intent"] = p.resolveJSONIntent(ctx, payload, cls.Intent.Key())

	result := p.registry.Route(payload)

	if err := p.append(ctx, "JSON", in, in.Sender, cls, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Pipeline) routePDF(ctx context.Context, in Input, content string, cls classify.Result) (any, error) {
	text := content
	if !extract.LooksLikeText(text) {
		text = p.extractText(ctx, in, content)
	}

	if strings.HasPrefix(text, extract.ErrorSentinel) {
		return nil, &ExtractionError{Sentinel: text}
	}

	record := p.processPDF(ctx, text, cls)

	if err := p.append(ctx, "PDF", in, in.Sender, cls, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (p *Pipeline) extractText(ctx context.Context, in Input, content string) string {
	if p.extractor == nil {
		return fmt.Sprintf("%s Failed to read PDF: no text extraction capability", extract.ErrorSentinel)
	}

	data := in.Raw
	if data == nil {
		data = []byte(content)
	}
	return p.extractor.Extract(ctx, data)
}

// resolveJSONIntent picks the intent a JSON payload validates against:
// the payload's own recognized intent key, else a recognized classified
// intent, else a bounded oracle query over the raw_text field, else Other.
func (p *Pipeline) resolveJSONIntent(ctx context.Context, payload map[string]any, classified string) string {
	if explicit := extract.ExplicitIntent(payload); explicit != "" {
		if explicit == "other" || p.registry.Known(explicit) {
			return explicit
		}
	}

	if p.registry.Known(classified) {
		return classified
	}

	if raw := validate.RawText(payload); raw != "" && p.intents != nil {
		intent, err := p.intents.DetectIntent(ctx, raw, jsonIntentVocabulary)
		if err == nil {
			return intent
		}
		p.logger.Warn("json intent query failed", "error", err)
	}

	return "other"
}

// processPDF resolves a PDF intent and validates the matching payload. A
// recognized classified intent wins; otherwise the layered text detection
// decides. Invoice text additionally yields pattern-extracted fields.
func (p *Pipeline) processPDF(ctx context.Context, text string, cls classify.Result) *PDFRecord {
	intent := cls.Intent.Key()
	if !p.registry.Known(intent) {
		intent = extract.DetectPDFIntent(ctx, text, p.intents)
	}

	var payload map[string]any
	if intent == "invoice" {
		payload = extract.ExtractInvoiceFields(text).Payload(text)
	} else {
		payload = map[string]any{"raw_text": text}
	}
	payload["intent"] = intent

	return &PDFRecord{
		Classification: cls,
		Content:        text,
		Intent:         intent,
		Result:         p.registry.Route(payload),
	}
}

func (p *Pipeline) append(
	ctx context.Context,
	source string,
	in Input,
	sender string,
	cls classify.Result,
	result any,
) error {
	entry := &audit.Entry{
		Source: source,
		Data: audit.Data{
			Classification: cls,
			Result:         result,
		},
	}

	if sender != "" {
		entry.Sender = &sender
	}
	if in.ConversationID != "" {
		entry.ConversationID = &in.ConversationID
	}

	if err := p.audit.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}
