package extract_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/JaimeStill/courier/internal/extract"
)

func TestParseJSON(t *testing.T) {
	t.Run("object decodes with number preservation", func(t *testing.T) {
		payload, err := extract.ParseJSON(`{"quantity": 25, "amount": 99.5}`)
		if err != nil {
			t.Fatalf("ParseJSON error: %v", err)
		}

		quantity, ok := payload["quantity"].(json.Number)
		if !ok {
			t.Fatalf("quantity type = %T, want json.Number", payload["quantity"])
		}
		if _, err := quantity.Int64(); err != nil {
			t.Errorf("quantity not an integer: %v", err)
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := extract.ParseJSON(`{"unterminated": `)
		if !errors.Is(err, extract.ErrMalformedJSON) {
			t.Errorf("error = %v, want ErrMalformedJSON", err)
		}
	})

	t.Run("scalar input", func(t *testing.T) {
		_, err := extract.ParseJSON(`42`)
		if !errors.Is(err, extract.ErrMalformedJSON) {
			t.Errorf("error = %v, want ErrMalformedJSON", err)
		}
	})

	t.Run("trailing content", func(t *testing.T) {
		_, err := extract.ParseJSON(`{"a": 1} {"b": 2}`)
		if !errors.Is(err, extract.ErrMalformedJSON) {
			t.Errorf("error = %v, want ErrMalformedJSON", err)
		}
	})
}

func TestExplicitIntent(t *testing.T) {
	t.Run("lower-cases value", func(t *testing.T) {
		payload := map[string]any{"intent": "Complaint"}
		if got := extract.ExplicitIntent(payload); got != "complaint" {
			t.Errorf("ExplicitIntent = %q, want complaint", got)
		}
	})

	t.Run("absent key", func(t *testing.T) {
		if got := extract.ExplicitIntent(map[string]any{}); got != "" {
			t.Errorf("ExplicitIntent = %q, want empty", got)
		}
	})

	t.Run("non-string value", func(t *testing.T) {
		payload := map[string]any{"intent": 7}
		if got := extract.ExplicitIntent(payload); got != "" {
			t.Errorf("ExplicitIntent = %q, want empty", got)
		}
	})
}
