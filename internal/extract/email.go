// Package extract turns raw input into normalized attribute payloads, one
// extractor per input format. Extractors never validate: they surface what
// the document says and leave data-quality judgments to the validators.
package extract

import (
	"regexp"
	"strings"
)

// Urgency levels derived from email content.
const (
	UrgencyHigh   = "High"
	UrgencyNormal = "Normal"
)

// urgencyPattern matches any urgency indicator as a whole word.
var urgencyPattern = regexp.MustCompile(
	`(?i)\b(urgent|asap|immediately|important|attention|time-sensitive|action required|response needed)\b`,
)

// senderAddrPattern captures an address enclosed in angle brackets.
var senderAddrPattern = regexp.MustCompile(`<([^>]+)>`)

// subjectLeakPattern locates header text leaked into a subject line.
var subjectLeakPattern = regexp.MustCompile(`(?i)\s*(?:To:|Date:|From:)`)

// Email is the normalized form of a raw email message.
type Email struct {
	Sender   string
	Subject  string
	Urgency  string
	Original string
}

// ParseEmail extracts sender, subject, and urgency from raw email text.
// Header lines are scanned until the first blank line. A missing From:
// header yields the sender "Unknown". Urgency is High when any indicator
// term appears as a whole word in the subject or the first 500 characters
// of the body, Normal otherwise; a message with no blank line is scanned
// in full.
func ParseEmail(text string) Email {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	sender := "Unknown"
	subject := ""
	inSubject := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			break
		}

		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "from:"):
			sender = parseSender(line[len("from:"):])
			inSubject = false
		case strings.HasPrefix(lower, "subject:"):
			subject = strings.TrimSpace(line[len("subject:"):])
			inSubject = true
		case inSubject && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")):
			subject += " " + strings.TrimSpace(line)
		default:
			inSubject = false
		}
	}

	subject = truncateLeakedHeaders(subject)

	return Email{
		Sender:   sender,
		Subject:  subject,
		Urgency:  detectUrgency(subject, bodySample(normalized)),
		Original: strings.TrimSpace(text),
	}
}

// Payload returns the attribute mapping the router consumes.
func (e Email) Payload() map[string]any {
	return map[string]any{
		"sender":        e.Sender,
		"subject":       e.Subject,
		"urgency":       e.Urgency,
		"original_text": e.Original,
	}
}

func parseSender(raw string) string {
	sender := strings.TrimSpace(raw)
	if match := senderAddrPattern.FindStringSubmatch(sender); match != nil {
		sender = match[1]
	}
	sender = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "").Replace(sender)
	return strings.TrimSpace(sender)
}

// truncateLeakedHeaders cuts a subject at the first header-like token that
// leaked in while absorbing continuation lines.
func truncateLeakedHeaders(subject string) string {
	if loc := subjectLeakPattern.FindStringIndex(subject); loc != nil {
		subject = subject[:loc[0]]
	}
	return strings.TrimSpace(subject)
}

// bodySample returns the first 500 runes after the first blank line. A
// message with no blank line has no header/body boundary, so the whole text
// is scanned untruncated.
func bodySample(text string) string {
	_, body, found := strings.Cut(text, "\n\n")
	if !found {
		return text
	}

	sample := []rune(body)
	if len(sample) > 500 {
		sample = sample[:500]
	}
	return string(sample)
}

func detectUrgency(subject, sample string) string {
	if urgencyPattern.MatchString(subject + " " + sample) {
		return UrgencyHigh
	}
	return UrgencyNormal
}
