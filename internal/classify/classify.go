// Package classify implements document format and intent classification.
// Classification prefers an advisory oracle backed by a language model and
// always falls back to deterministic keyword heuristics, so a classification
// result is produced for every input regardless of oracle availability.
package classify

import "strings"

// Format is the structural origin category of an input.
type Format string

// Recognized input formats.
const (
	FormatEmail   Format = "Email"
	FormatJSON    Format = "JSON"
	FormatPDF     Format = "PDF"
	FormatUnknown Format = "Unknown"
)

// Intent is the business purpose category of an input.
type Intent string

// Recognized business intents.
const (
	IntentInvoice    Intent = "Invoice"
	IntentRFQ        Intent = "RFQ"
	IntentComplaint  Intent = "Complaint"
	IntentInquiry    Intent = "Inquiry"
	IntentSupport    Intent = "Support"
	IntentSales      Intent = "Sales"
	IntentRegulation Intent = "Regulation"
	IntentOther      Intent = "Other"
	IntentUnknown    Intent = "Unknown"
)

// Result pairs a detected format with a detected intent. Results are created
// fresh per input and never mutated.
type Result struct {
	Format Format `json:"format"`
	Intent Intent `json:"intent"`
}

// ParseFormat maps a raw format label to a Format, case-insensitively.
// Unrecognized labels map to FormatUnknown.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "email":
		return FormatEmail
	case "json":
		return FormatJSON
	case "pdf":
		return FormatPDF
	default:
		return FormatUnknown
	}
}

// ParseIntent maps a raw intent label to an Intent, case-insensitively.
// Unrecognized labels map to IntentUnknown.
func ParseIntent(s string) Intent {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "invoice":
		return IntentInvoice
	case "rfq":
		return IntentRFQ
	case "complaint":
		return IntentComplaint
	case "inquiry":
		return IntentInquiry
	case "support":
		return IntentSupport
	case "sales":
		return IntentSales
	case "regulation":
		return IntentRegulation
	case "other":
		return IntentOther
	default:
		return IntentUnknown
	}
}

// Key returns the lower-cased intent label used for validator registry
// lookups and payload tagging.
func (i Intent) Key() string {
	return strings.ToLower(string(i))
}
