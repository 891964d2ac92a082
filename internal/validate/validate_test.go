package validate_test

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/JaimeStill/courier/internal/validate"
)

func TestInvoice(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"intent":     "invoice",
			"invoice_id": "INV-001",
			"vendor":     "Dell",
			"amount":     json.Number("100"),
			"date":       "2025-05-31",
		}
	}

	t.Run("valid payload", func(t *testing.T) {
		result := validate.Invoice(base())
		if len(result.MissingFields) != 0 {
			t.Errorf("MissingFields = %v, want empty", result.MissingFields)
		}
		if len(result.Anomalies) != 0 {
			t.Errorf("Anomalies = %v, want empty", result.Anomalies)
		}
	})

	t.Run("zero amount yields exactly one anomaly", func(t *testing.T) {
		payload := base()
		payload["amount"] = json.Number("0")

		result := validate.Invoice(payload)
		if len(result.Anomalies) != 1 || result.Anomalies[0] != "Amount not positive" {
			t.Errorf("Anomalies = %v, want [Amount not positive]", result.Anomalies)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		payload := base()
		payload["amount"] = json.Number("-5.5")

		result := validate.Invoice(payload)
		if len(result.Anomalies) != 1 || result.Anomalies[0] != "Amount not positive" {
			t.Errorf("Anomalies = %v, want [Amount not positive]", result.Anomalies)
		}
	})

	t.Run("non-numeric amount", func(t *testing.T) {
		payload := base()
		payload["amount"] = "a lot"

		result := validate.Invoice(payload)
		if len(result.Anomalies) != 1 || result.Anomalies[0] != "Amount not numeric" {
			t.Errorf("Anomalies = %v, want [Amount not numeric]", result.Anomalies)
		}
	})

	t.Run("boolean amount is not numeric", func(t *testing.T) {
		payload := base()
		payload["amount"] = true

		result := validate.Invoice(payload)
		if len(result.Anomalies) != 1 || result.Anomalies[0] != "Amount not numeric" {
			t.Errorf("Anomalies = %v, want [Amount not numeric]", result.Anomalies)
		}
	})

	t.Run("absent amount", func(t *testing.T) {
		payload := base()
		delete(payload, "amount")

		result := validate.Invoice(payload)
		if !slices.Contains(result.MissingFields, "amount") {
			t.Errorf("MissingFields = %v, want amount", result.MissingFields)
		}
		if len(result.Anomalies) != 1 || result.Anomalies[0] != "Amount missing" {
			t.Errorf("Anomalies = %v, want [Amount missing]", result.Anomalies)
		}
	})

	t.Run("empty string fields are missing", func(t *testing.T) {
		payload := base()
		payload["vendor"] = ""

		result := validate.Invoice(payload)
		if !slices.Contains(result.MissingFields, "vendor") {
			t.Errorf("MissingFields = %v, want vendor", result.MissingFields)
		}
	})
}

func TestRFQ(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"intent":      "rfq",
			"rfq_id":      "RFQ-17",
			"client_name": "Initech",
			"product":     "Laptops",
			"quantity":    json.Number("25"),
			"deadline":    "2025-06-15",
		}
	}

	t.Run("valid payload", func(t *testing.T) {
		result := validate.RFQ(base())
		if len(result.MissingFields)+len(result.Anomalies) != 0 {
			t.Errorf("result = %+v, want clean", result)
		}
	})

	t.Run("integer with fractional part rejected", func(t *testing.T) {
		payload := base()
		payload["quantity"] = json.Number("25.0")

		result := validate.RFQ(payload)
		if len(result.Anomalies) != 1 || result.Anomalies[0] != "Quantity not an integer" {
			t.Errorf("Anomalies = %v, want [Quantity not an integer]", result.Anomalies)
		}
	})

	t.Run("boolean quantity rejected", func(t *testing.T) {
		payload := base()
		payload["quantity"] = true

		result := validate.RFQ(payload)
		if len(result.Anomalies) != 1 || result.Anomalies[0] != "Quantity not an integer" {
			t.Errorf("Anomalies = %v, want [Quantity not an integer]", result.Anomalies)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		payload := base()
		payload["quantity"] = json.Number("0")

		result := validate.RFQ(payload)
		if len(result.Anomalies) != 1 || result.Anomalies[0] != "Quantity not positive" {
			t.Errorf("Anomalies = %v, want [Quantity not positive]", result.Anomalies)
		}
	})

	t.Run("absent quantity", func(t *testing.T) {
		payload := base()
		delete(payload, "quantity")

		result := validate.RFQ(payload)
		if len(result.Anomalies) != 1 || result.Anomalies[0] != "Quantity missing" {
			t.Errorf("Anomalies = %v, want [Quantity missing]", result.Anomalies)
		}
	})
}

func TestComplaint(t *testing.T) {
	t.Run("short issue", func(t *testing.T) {
		result := validate.Complaint(map[string]any{
			"intent":        "complaint",
			"ticket_id":     "T1",
			"customer_name": "A",
			"issue":         "bad",
			"reported_date": "2025-01-01",
		})

		if len(result.MissingFields) != 0 {
			t.Errorf("MissingFields = %v, want empty", result.MissingFields)
		}
		if !slices.Contains(result.Anomalies, "Issue description too short") {
			t.Errorf("Anomalies = %v, want Issue description too short", result.Anomalies)
		}
	})

	t.Run("adequate issue", func(t *testing.T) {
		result := validate.Complaint(map[string]any{
			"ticket_id":     "T1",
			"customer_name": "A",
			"issue":         "The delivered unit arrived with a cracked housing.",
			"reported_date": "2025-01-01",
		})

		if len(result.Anomalies) != 0 {
			t.Errorf("Anomalies = %v, want empty", result.Anomalies)
		}
	})

	t.Run("absent issue reported missing without anomaly", func(t *testing.T) {
		result := validate.Complaint(map[string]any{
			"ticket_id":     "T1",
			"customer_name": "A",
			"reported_date": "2025-01-01",
		})

		if !slices.Contains(result.MissingFields, "issue") {
			t.Errorf("MissingFields = %v, want issue", result.MissingFields)
		}
		if len(result.Anomalies) != 0 {
			t.Errorf("Anomalies = %v, want empty", result.Anomalies)
		}
	})
}

func TestRegulation(t *testing.T) {
	t.Run("short description", func(t *testing.T) {
		result := validate.Regulation(map[string]any{
			"regulation_id":  "REG-9",
			"title":          "Data Retention",
			"effective_date": "2025-03-01",
			"description":    "Too brief",
		})

		if !slices.Contains(result.Anomalies, "Description too short") {
			t.Errorf("Anomalies = %v, want Description too short", result.Anomalies)
		}
	})

	t.Run("adequate description", func(t *testing.T) {
		result := validate.Regulation(map[string]any{
			"regulation_id":  "REG-9",
			"title":          "Data Retention",
			"effective_date": "2025-03-01",
			"description":    "Records must be retained for seven years after account closure.",
		})

		if len(result.Anomalies) != 0 {
			t.Errorf("Anomalies = %v, want empty", result.Anomalies)
		}
	})
}

func TestRoute(t *testing.T) {
	registry := validate.NewRegistry()

	t.Run("dispatches by lower-cased intent", func(t *testing.T) {
		result := registry.Route(map[string]any{
			"intent": "Invoice",
		})

		if !slices.Contains(result.Anomalies, "Amount missing") {
			t.Errorf("Anomalies = %v, want Amount missing", result.Anomalies)
		}
	})

	t.Run("unknown intent never raises", func(t *testing.T) {
		result := registry.Route(map[string]any{"intent": "xyz"})

		if len(result.MissingFields) != 0 {
			t.Errorf("MissingFields = %v, want empty", result.MissingFields)
		}
		if len(result.Anomalies) != 1 || result.Anomalies[0] != "Unknown or unsupported intent: xyz" {
			t.Errorf("Anomalies = %v, want [Unknown or unsupported intent: xyz]", result.Anomalies)
		}
	})

	t.Run("other intent requires raw_text", func(t *testing.T) {
		result := registry.Route(map[string]any{"intent": "other"})

		if !slices.Contains(result.MissingFields, "raw_text") {
			t.Errorf("MissingFields = %v, want raw_text", result.MissingFields)
		}
	})

	t.Run("absent intent takes the other path", func(t *testing.T) {
		result := registry.Route(map[string]any{"raw_text": "free text"})

		if len(result.MissingFields) != 0 {
			t.Errorf("MissingFields = %v, want empty", result.MissingFields)
		}
	})

	t.Run("processed data is the payload unchanged", func(t *testing.T) {
		payload := map[string]any{"intent": "complaint", "issue": "bad"}
		result := registry.Route(payload)

		if result.ProcessedData["issue"] != "bad" {
			t.Errorf("ProcessedData = %v, want issue preserved", result.ProcessedData)
		}
	})
}
