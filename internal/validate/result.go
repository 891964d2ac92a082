// Package validate holds the per-intent validation rules and the router that
// dispatches payloads to them. Validators annotate: they report missing
// fields and anomalies without ever rewriting payload values, and they never
// fail. Data-quality findings are part of a successful result.
package validate

// Result is the outcome of validating one payload against one intent's
// rules. ProcessedData is the payload as routed, values unmodified.
type Result struct {
	MissingFields []string       `json:"missing_fields"`
	Anomalies     []string       `json:"anomalies"`
	ProcessedData map[string]any `json:"processed_data"`
}

func newResult(payload map[string]any) Result {
	return Result{
		MissingFields: []string{},
		Anomalies:     []string{},
		ProcessedData: payload,
	}
}

// fieldPresent reports whether a required field carries a usable value:
// present, non-nil, and not the empty string.
func fieldPresent(payload map[string]any, field string) bool {
	value, ok := payload[field]
	if !ok || value == nil {
		return false
	}
	if s, isString := value.(string); isString && s == "" {
		return false
	}
	return true
}

func (r *Result) requireFields(fields ...string) {
	for _, field := range fields {
		if !fieldPresent(r.ProcessedData, field) {
			r.MissingFields = append(r.MissingFields, field)
		}
	}
}
