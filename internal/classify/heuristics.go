package classify

import (
	"encoding/json"
	"strings"
)

// Email intent detection scans these term tables in order and takes the first
// table with any match. Table order is significant: an email mentioning both a
// complaint term and a support term classifies as Complaint.
var emailIntentTables = []struct {
	intent Intent
	terms  []string
}{
	{IntentComplaint, []string{
		"complaint", "dissatisfied", "unhappy", "not satisfied",
		"issue with", "problem with", "not working", "disappointed",
		"poor service", "bad experience", "terrible", "awful", "horrible",
	}},
	{IntentInquiry, []string{
		"information about", "interested in", "would like to know",
		"can you tell me", "looking for", "need more info",
		"more information", "details about", "pricing for",
		"demo", "trial", "free trial", "schedule a call", "set up a meeting",
	}},
	{IntentSupport, []string{
		"help with", "support", "not working", "how to", "question about",
		"trouble with", "having issues", "need help", "can't find",
		"unable to", "having trouble",
	}},
	{IntentSales, []string{
		"quote", "pricing", "price list", "cost of", "how much",
		"discount", "special offer", "promotion", "deal",
		"enterprise plan", "business plan", "pricing plan",
	}},
	{IntentRegulation, []string{
		"regulation", "compliance", "requirement", "standard",
		"gdpr", "ccpa", "hipaa", "pci dss", "iso 27001", "soc 2",
		"data protection", "privacy policy", "legal requirement",
	}},
}

// JSON payloads carrying any of these substrings classify as Invoice or RFQ.
var (
	jsonInvoiceTerms = []string{"invoice_id", "invoice_", "total", "subtotal", "tax_amount"}
	jsonRFQTerms     = []string{"rfq_id", "request for quote", "request_for_quote"}
)

// Fallback classifies content without consulting the oracle. A ".json" source
// hint or content that parses as a JSON object selects the JSON format;
// everything else is treated as Email. Fallback never returns Unknown.
func Fallback(content, sourceHint string) Result {
	if strings.HasSuffix(strings.ToLower(sourceHint), ".json") || looksLikeJSON(content) {
		return Result{Format: FormatJSON, Intent: jsonIntent(content)}
	}
	return Result{Format: FormatEmail, Intent: emailIntent(content)}
}

func looksLikeJSON(content string) bool {
	var payload map[string]any
	return json.Unmarshal([]byte(content), &payload) == nil
}

func jsonIntent(content string) Intent {
	lower := strings.ToLower(content)
	for _, term := range jsonInvoiceTerms {
		if strings.Contains(lower, term) {
			return IntentInvoice
		}
	}
	for _, term := range jsonRFQTerms {
		if strings.Contains(lower, term) {
			return IntentRFQ
		}
	}
	return IntentOther
}

func emailIntent(content string) Intent {
	lower := strings.ToLower(content)
	for _, table := range emailIntentTables {
		for _, term := range table.terms {
			if strings.Contains(lower, term) {
				return table.intent
			}
		}
	}
	return IntentOther
}
