package pipeline

import (
	"github.com/JaimeStill/courier/internal/classify"
	"github.com/JaimeStill/courier/internal/validate"
)

// PDFRecord is the processing outcome for PDF input: the validation result
// enriched with the classification, the extracted text, and the resolved
// intent.
type PDFRecord struct {
	Classification classify.Result `json:"classification"`
	Content        string          `json:"content"`
	Intent         string          `json:"intent"`
	validate.Result
}
