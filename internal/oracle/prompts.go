package oracle

import (
	"fmt"
	"strings"
)

const classifyTemplate = `Classify the following input document.

Determine its format: one of Email, JSON, or PDF.
Determine its intent: one of Invoice, RFQ, Complaint, Regulation, or Other.

Respond with only a JSON object of the form:
{"format": "<format>", "intent": "<intent>"}

Source hint: %s

Input:
%s`

const intentTemplate = `Determine the business intent of the following text.

Respond with exactly one word from this list: %s

Text:
%s`

func classifyPrompt(content, sourceHint string) string {
	if sourceHint == "" {
		sourceHint = "none"
	}
	return fmt.Sprintf(classifyTemplate, sourceHint, content)
}

func intentPrompt(text string, vocabulary []string) string {
	return fmt.Sprintf(intentTemplate, strings.Join(vocabulary, ", "), text)
}
