package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/JaimeStill/courier/internal/audit"
	"github.com/JaimeStill/courier/internal/classify"
	"github.com/JaimeStill/courier/internal/extract"
	"github.com/JaimeStill/courier/internal/pipeline"
	"github.com/JaimeStill/courier/internal/validate"
	"github.com/JaimeStill/courier/pkg/pagination"
)

// failingOracle simulates an unreachable language model so routing exercises
// the deterministic heuristics end to end.
type failingOracle struct{}

func (failingOracle) Classify(context.Context, string, string) (classify.Result, error) {
	return classify.Result{}, errors.New("connection refused")
}

// formatOracle returns a fixed classification.
type formatOracle struct {
	result classify.Result
}

func (o formatOracle) Classify(context.Context, string, string) (classify.Result, error) {
	return o.result, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPipeline(t *testing.T, oracle classify.Oracle) (*pipeline.Pipeline, *audit.Memory) {
	t.Helper()

	log := audit.NewMemory(testLogger(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
	p := pipeline.New(
		classify.New(oracle, testLogger()),
		nil,
		nil,
		validate.NewRegistry(),
		log,
		testLogger(),
	)
	return p, log
}

func auditCount(t *testing.T, log *audit.Memory) int {
	t.Helper()

	page, err := log.List(context.Background(), pagination.PageRequest{}, audit.Filters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return page.Total
}

func TestRouteJSONInvoice(t *testing.T) {
	p, log := testPipeline(t, failingOracle{})

	out, err := p.Route(context.Background(), pipeline.Input{
		Content: `{"invoice_id": "INV-001", "vendor": "Dell", "amount": 0, "date": "2025-05-31"}`,
	})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	result, ok := out.(validate.Result)
	if !ok {
		t.Fatalf("result type = %T, want validate.Result", out)
	}
	if len(result.MissingFields) != 0 {
		t.Errorf("MissingFields = %v, want empty", result.MissingFields)
	}
	if len(result.Anomalies) != 1 || result.Anomalies[0] != "Amount not positive" {
		t.Errorf("Anomalies = %v, want [Amount not positive]", result.Anomalies)
	}
	if result.ProcessedData["intent"] != "invoice" {
		t.Errorf("intent = %v, want invoice", result.ProcessedData["intent"])
	}

	if got := auditCount(t, log); got != 1 {
		t.Errorf("audit entries = %d, want 1", got)
	}
}

func TestRouteJSONExplicitIntent(t *testing.T) {
	p, log := testPipeline(t, failingOracle{})

	out, err := p.Route(context.Background(), pipeline.Input{
		Content: `{"intent": "complaint", "ticket_id": "T1", "customer_name": "Ann", "issue": "bad", "reported_date": "2025-01-01"}`,
	})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	result := out.(validate.Result)
	if len(result.Anomalies) != 1 || result.Anomalies[0] != "Issue description too short" {
		t.Errorf("Anomalies = %v, want [Issue description too short]", result.Anomalies)
	}

	if got := auditCount(t, log); got != 1 {
		t.Errorf("audit entries = %d, want 1", got)
	}
}

func TestRouteJSONUnrecognizedExplicitIntent(t *testing.T) {
	p, _ := testPipeline(t, failingOracle{})

	out, err := p.Route(context.Background(), pipeline.Input{
		Content: `{"intent": "xyz"}`,
	})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	// An explicit intent with no validator falls back to Other, which only
	// expects a raw_text field.
	result := out.(validate.Result)
	if len(result.Anomalies) != 0 {
		t.Errorf("Anomalies = %v, want empty", result.Anomalies)
	}
	if len(result.MissingFields) != 1 || result.MissingFields[0] != "raw_text" {
		t.Errorf("MissingFields = %v, want [raw_text]", result.MissingFields)
	}
}

func TestRouteMalformedJSON(t *testing.T) {
	p, log := testPipeline(t, failingOracle{})

	_, err := p.Route(context.Background(), pipeline.Input{
		Content: `{"invoice_id": `,
		Format:  classify.FormatJSON,
	})
	if !errors.Is(err, extract.ErrMalformedJSON) {
		t.Errorf("error = %v, want ErrMalformedJSON", err)
	}
	if err.Error() != "Invalid JSON input" {
		t.Errorf("error message = %q, want the bare sentinel", err.Error())
	}

	if got := auditCount(t, log); got != 0 {
		t.Errorf("audit entries = %d, want 0", got)
	}
}

func TestRouteEmail(t *testing.T) {
	p, log := testPipeline(t, failingOracle{})

	content := "From: John <john@x.com>\n" +
		"Subject: Problem with my last order\n\n" +
		"I am very unhappy with the delivery. Please respond ASAP."

	out, err := p.Route(context.Background(), pipeline.Input{Content: content})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	result := out.(validate.Result)
	if result.ProcessedData["sender"] != "john@x.com" {
		t.Errorf("sender = %v, want john@x.com", result.ProcessedData["sender"])
	}
	if result.ProcessedData["urgency"] != "High" {
		t.Errorf("urgency = %v, want High", result.ProcessedData["urgency"])
	}
	if result.ProcessedData["intent"] != "complaint" {
		t.Errorf("intent = %v, want complaint", result.ProcessedData["intent"])
	}

	page, err := log.List(context.Background(), pagination.PageRequest{}, audit.Filters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(page.Data))
	}

	entry := page.Data[0]
	if entry.Source != "Email" {
		t.Errorf("Source = %q, want Email", entry.Source)
	}
	if entry.Sender == nil || *entry.Sender != "john@x.com" {
		t.Errorf("Sender = %v, want john@x.com", entry.Sender)
	}
}

func TestRouteUnsupportedFormat(t *testing.T) {
	oracle := formatOracle{result: classify.Result{
		Format: classify.Format("XML"),
		Intent: classify.IntentOther,
	}}
	p, log := testPipeline(t, oracle)

	_, err := p.Route(context.Background(), pipeline.Input{Content: "<root/>"})
	if !errors.Is(err, pipeline.ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}

	if got := auditCount(t, log); got != 0 {
		t.Errorf("audit entries = %d, want 0", got)
	}
}

func TestRoutePDFWithoutExtractor(t *testing.T) {
	p, log := testPipeline(t, failingOracle{})

	_, err := p.Route(context.Background(), pipeline.Input{
		Raw:    []byte{0x25, 0x50, 0x44, 0x46, 0x00},
		Format: classify.FormatPDF,
	})

	var extractionErr *pipeline.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("error = %v, want ExtractionError", err)
	}

	if got := auditCount(t, log); got != 0 {
		t.Errorf("audit entries = %d, want 0", got)
	}
}

func TestRoutePDFText(t *testing.T) {
	p, log := testPipeline(t, failingOracle{})

	text := "Invoice No: INV-42\n" +
		"Date: 2025-05-31\n" +
		"Vendor: Dell\n" +
		"Amount: $1,250.00"

	out, err := p.Route(context.Background(), pipeline.Input{
		Content: text,
		Format:  classify.FormatPDF,
	})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	record, ok := out.(*pipeline.PDFRecord)
	if !ok {
		t.Fatalf("result type = %T, want *pipeline.PDFRecord", out)
	}
	if record.Intent != "invoice" {
		t.Errorf("Intent = %q, want invoice", record.Intent)
	}
	if record.ProcessedData["invoice_id"] != "INV-42" {
		t.Errorf("invoice_id = %v, want INV-42", record.ProcessedData["invoice_id"])
	}
	if record.ProcessedData["amount"] != 1250.0 {
		t.Errorf("amount = %v, want 1250", record.ProcessedData["amount"])
	}
	if len(record.MissingFields) != 0 {
		t.Errorf("MissingFields = %v, want empty", record.MissingFields)
	}
	if len(record.Anomalies) != 0 {
		t.Errorf("Anomalies = %v, want empty", record.Anomalies)
	}

	if got := auditCount(t, log); got != 1 {
		t.Errorf("audit entries = %d, want 1", got)
	}
}

func TestRouteAuditRoundTrip(t *testing.T) {
	p, log := testPipeline(t, failingOracle{})

	out, err := p.Route(context.Background(), pipeline.Input{
		Content: `{"invoice_id": "INV-9", "vendor": "Acme", "amount": 42.5, "date": "2025-06-01", "po_number": "PO-77"}`,
	})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	routed := out.(validate.Result)

	page, err := log.List(context.Background(), pagination.PageRequest{}, audit.Filters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(page.Data))
	}

	stored, ok := page.Data[0].Data.Result.(validate.Result)
	if !ok {
		t.Fatalf("stored result type = %T, want validate.Result", page.Data[0].Data.Result)
	}
	if !reflect.DeepEqual(stored.ProcessedData, routed.ProcessedData) {
		t.Errorf("stored ProcessedData = %v, routed = %v", stored.ProcessedData, routed.ProcessedData)
	}
}

func TestRouteAppendsOneEntryPerCall(t *testing.T) {
	p, log := testPipeline(t, failingOracle{})

	inputs := []pipeline.Input{
		{Content: `{"invoice_id": "INV-1", "vendor": "A", "amount": 10, "date": "2025-01-01"}`},
		{Content: "From: a@b.com\nSubject: Hi\n\nJust checking in."},
		{Content: `{"rfq_id": "RFQ-1", "client_name": "B", "product": "Desks", "quantity": 4, "deadline": "2025-02-01"}`},
	}

	for _, in := range inputs {
		if _, err := p.Route(context.Background(), in); err != nil {
			t.Fatalf("Route: %v", err)
		}
	}

	if got := auditCount(t, log); got != len(inputs) {
		t.Errorf("audit entries = %d, want %d", got, len(inputs))
	}
}
