package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// ErrorSentinel prefixes the literal string a text extractor returns when it
// cannot decode a document. The pipeline short-circuits on it.
const ErrorSentinel = "[ERROR]"

// TextExtractor decodes binary document content into text. Failures are
// reported in-band as an ErrorSentinel-prefixed string, never as an error.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) string
}

// IntentOracle answers narrow intent-only queries over extracted text.
type IntentOracle interface {
	DetectPDFIntent(ctx context.Context, text string, vocabulary []string) (string, error)
}

// pdfTextMarkers distinguish already-extracted text from binary content.
var pdfTextMarkers = []string{"invoice", "date", "vendor", "amount"}

var pdfInvoiceTerms = []string{
	"invoice", "bill", "payment", "amount", "total", "subtotal",
	"tax", "due", "balance", "payable", "charges", "fee", "cost",
	"price", "payment terms", "net amount", "gross amount", "vat",
	"gst", "taxable", "line item", "item", "quantity", "unit price",
	"extended price", "shipping", "handling",
}

var pdfRFQTerms = []string{
	"request for quote", "rfq", "quotation request", "price quote",
	"request for proposal", "rfp", "request for bid", "rfq number",
	"quote request", "bidding", "tender", "proposal request",
}

// PDFIntentVocabulary bounds the oracle query used during layered intent
// detection over extracted PDF text.
var PDFIntentVocabulary = []string{"invoice", "rfq", "complaint", "regulation", "other"}

var (
	invoiceNoPattern     = regexp.MustCompile(`(?i)invoice\s*(?:no|#|number)[:\s]*(\w+)`)
	invoiceIDPattern     = regexp.MustCompile(`(?i)invoice no[:\s]*([A-Z0-9-]+)`)
	invoiceDatePattern   = regexp.MustCompile(`(?i)date[:\s]*([\d\-/]+)`)
	invoiceVendorPattern = regexp.MustCompile(`(?i)vendor[:\s]*(.+)`)
	invoiceAmountPattern = regexp.MustCompile(`(?i)amount[:\s]*\$?([\d,.]+)`)
)

// LooksLikeText reports whether input is already extracted document text
// rather than binary content: it must span multiple lines and mention at
// least one common document marker.
func LooksLikeText(input string) bool {
	if !strings.Contains(input, "\n") {
		return false
	}

	lower := strings.ToLower(input)
	for _, marker := range pdfTextMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// DetectPDFIntent resolves the intent of extracted PDF text through layered
// checks, cheapest first: invoice term density, an explicit invoice-number
// pattern beside an amount term, RFQ terms, a bounded oracle query, and a
// final invoice-plus-currency fallback. The result is always a member of
// PDFIntentVocabulary.
func DetectPDFIntent(ctx context.Context, text string, oracle IntentOracle) string {
	lower := strings.ToLower(strings.TrimSpace(text))

	hits := 0
	for _, term := range pdfInvoiceTerms {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	if hits >= 3 {
		return "invoice"
	}

	if invoiceNoPattern.MatchString(lower) && containsAny(lower, "amount", "total", "subtotal", "tax") {
		return "invoice"
	}

	for _, term := range pdfRFQTerms {
		if strings.Contains(lower, term) {
			return "rfq"
		}
	}

	if oracle != nil {
		sample := text
		if runes := []rune(sample); len(runes) > 1000 {
			sample = string(runes[:1000]) + "..."
		}
		if intent, err := oracle.DetectPDFIntent(ctx, sample, PDFIntentVocabulary); err == nil && intent != "other" {
			return intent
		}
	}

	if containsAny(lower, "invoice", "bill", "payment") && containsAny(lower, "amount", "total", "$") {
		return "invoice"
	}

	return "other"
}

// InvoiceFields are the structured values recoverable from invoice text.
// Absent fields are nil so downstream validation flags them as missing.
type InvoiceFields struct {
	InvoiceID *string
	Date      *string
	Vendor    *string
	Amount    *float64
}

// ExtractInvoiceFields pattern-matches invoice attributes out of extracted
// text. Amounts have currency symbols and thousands separators stripped; an
// unparseable amount is treated as absent.
func ExtractInvoiceFields(text string) InvoiceFields {
	var fields InvoiceFields

	if m := invoiceIDPattern.FindStringSubmatch(text); m != nil {
		fields.InvoiceID = nonEmpty(m[1])
	}
	if m := invoiceDatePattern.FindStringSubmatch(text); m != nil {
		fields.Date = nonEmpty(m[1])
	}
	if m := invoiceVendorPattern.FindStringSubmatch(text); m != nil {
		fields.Vendor = nonEmpty(strings.TrimSpace(m[1]))
	}
	if m := invoiceAmountPattern.FindStringSubmatch(text); m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			fields.Amount = &amount
		}
	}

	return fields
}

// Payload maps the extracted fields into the attribute form the invoice
// validator consumes, with the source text carried under raw_text.
func (f InvoiceFields) Payload(text string) map[string]any {
	payload := map[string]any{
		"invoice_id": nil,
		"date":       nil,
		"vendor":     nil,
		"amount":     nil,
		"raw_text":   text,
	}

	if f.InvoiceID != nil {
		payload["invoice_id"] = *f.InvoiceID
	}
	if f.Date != nil {
		payload["date"] = *f.Date
	}
	if f.Vendor != nil {
		payload["vendor"] = *f.Vendor
	}
	if f.Amount != nil {
		payload["amount"] = *f.Amount
	}

	return payload
}

func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
