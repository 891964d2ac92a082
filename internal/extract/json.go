package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedJSON reports input that was classified as JSON but does not
// parse as a JSON object.
var ErrMalformedJSON = errors.New("Invalid JSON input")

// ParseJSON decodes content into an attribute payload. Numbers decode as
// json.Number so integer and floating-point values remain distinguishable
// during validation.
func ParseJSON(content string) (map[string]any, error) {
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing content after object", ErrMalformedJSON)
	}

	return payload, nil
}

// ExplicitIntent returns the payload's own intent value, lower-cased, when
// one is present as a non-empty string.
func ExplicitIntent(payload map[string]any) string {
	value, ok := payload["intent"].(string)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(value))
}
