package validate

import (
	"fmt"
	"strings"
)

// Func validates one payload against a single intent's rules.
type Func func(payload map[string]any) Result

// Registry maps resolved intents to their validators. Extending the system
// to a new intent means adding a registry entry, never a dispatch branch.
type Registry struct {
	validators map[string]Func
}

func NewRegistry() *Registry {
	return &Registry{
		validators: map[string]Func{
			"invoice":    Invoice,
			"rfq":        RFQ,
			"complaint":  Complaint,
			"regulation": Regulation,
		},
	}
}

// Known reports whether intent has a dedicated validator.
func (r *Registry) Known(intent string) bool {
	_, ok := r.validators[strings.ToLower(strings.TrimSpace(intent))]
	return ok
}

// Route reads the payload's intent, case-folds it, and dispatches to the
// matching validator. Absent, empty, and "other" intents take the permissive
// default path; explicit but unrecognized intents are flagged as anomalies.
// Route never fails.
func (r *Registry) Route(payload map[string]any) Result {
	intent := ""
	if value, ok := payload["intent"].(string); ok {
		intent = strings.ToLower(strings.TrimSpace(value))
	}

	if validator, ok := r.validators[intent]; ok {
		return validator(payload)
	}

	if intent == "" || intent == "other" {
		return Other(payload)
	}

	return unknownIntent(intent)(payload)
}

// Invoice requires identifying fields and a positive numeric amount. At most
// one amount anomaly is reported per payload.
func Invoice(payload map[string]any) Result {
	result := newResult(payload)
	result.requireFields("invoice_id", "vendor", "amount", "date")

	amount, ok := payload["amount"]
	switch {
	case !ok || amount == nil:
		result.Anomalies = append(result.Anomalies, "Amount missing")
	default:
		if value, numeric := asNumber(amount); !numeric {
			result.Anomalies = append(result.Anomalies, "Amount not numeric")
		} else if value <= 0 {
			result.Anomalies = append(result.Anomalies, "Amount not positive")
		}
	}

	return result
}

// RFQ requires quote request fields and a positive integer quantity.
func RFQ(payload map[string]any) Result {
	result := newResult(payload)
	result.requireFields("rfq_id", "client_name", "product", "quantity", "deadline")

	quantity, ok := payload["quantity"]
	switch {
	case !ok || quantity == nil:
		result.Anomalies = append(result.Anomalies, "Quantity missing")
	default:
		if value, integer := asInteger(quantity); !integer {
			result.Anomalies = append(result.Anomalies, "Quantity not an integer")
		} else if value <= 0 {
			result.Anomalies = append(result.Anomalies, "Quantity not positive")
		}
	}

	return result
}

// Complaint requires ticket fields and a meaningful issue description.
func Complaint(payload map[string]any) Result {
	result := newResult(payload)
	result.requireFields("ticket_id", "customer_name", "issue", "reported_date")

	if issue, ok := payload["issue"].(string); ok && len(strings.TrimSpace(issue)) < 10 {
		result.Anomalies = append(result.Anomalies, "Issue description too short")
	}

	return result
}

// Regulation requires regulatory fields and a substantive description.
func Regulation(payload map[string]any) Result {
	result := newResult(payload)
	result.requireFields("regulation_id", "title", "effective_date", "description")

	if description, ok := payload["description"].(string); ok && len(strings.TrimSpace(description)) < 20 {
		result.Anomalies = append(result.Anomalies, "Description too short")
	}

	return result
}

// Other handles payloads with no dedicated validator. The only expectation
// is a raw_text fallback field.
func Other(payload map[string]any) Result {
	result := newResult(payload)

	if RawText(payload) == "" {
		result.MissingFields = append(result.MissingFields, "raw_text")
	}

	return result
}

func unknownIntent(intent string) Func {
	return func(payload map[string]any) Result {
		result := newResult(payload)
		result.Anomalies = append(result.Anomalies, fmt.Sprintf("Unknown or unsupported intent: %s", intent))
		return result
	}
}

// RawText returns the payload's raw_text value when present as a non-empty
// string.
func RawText(payload map[string]any) string {
	value, ok := payload["raw_text"].(string)
	if !ok {
		return ""
	}
	return value
}
