package extract_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/courier/internal/extract"
)

func TestParseEmailSender(t *testing.T) {
	t.Run("bracket address wins over display name", func(t *testing.T) {
		email := extract.ParseEmail("From: John Doe <john@example.com>\nSubject: Hi\n\nBody")
		if email.Sender != "john@example.com" {
			t.Errorf("Sender = %q, want john@example.com", email.Sender)
		}
	})

	t.Run("bare address without brackets", func(t *testing.T) {
		email := extract.ParseEmail("From: jane@example.com\nSubject: Hi\n\nBody")
		if email.Sender != "jane@example.com" {
			t.Errorf("Sender = %q, want jane@example.com", email.Sender)
		}
	})

	t.Run("quotes and brackets stripped", func(t *testing.T) {
		email := extract.ParseEmail("From: \"Jane\" <jane@example.com>\nSubject: Hi\n\nBody")
		if email.Sender != "jane@example.com" {
			t.Errorf("Sender = %q, want jane@example.com", email.Sender)
		}
	})

	t.Run("missing from header yields Unknown", func(t *testing.T) {
		email := extract.ParseEmail("Subject: No sender here\n\nBody")
		if email.Sender != "Unknown" {
			t.Errorf("Sender = %q, want Unknown", email.Sender)
		}
	})

	t.Run("from line after blank line is body text", func(t *testing.T) {
		email := extract.ParseEmail("Subject: Hi\n\nFrom: fake@example.com")
		if email.Sender != "Unknown" {
			t.Errorf("Sender = %q, want Unknown", email.Sender)
		}
	})
}

func TestParseEmailSubject(t *testing.T) {
	t.Run("label stripped", func(t *testing.T) {
		email := extract.ParseEmail("From: a@b.com\nSubject: Quarterly Report\n\nBody")
		if email.Subject != "Quarterly Report" {
			t.Errorf("Subject = %q, want Quarterly Report", email.Subject)
		}
	})

	t.Run("continuation lines absorbed", func(t *testing.T) {
		email := extract.ParseEmail("Subject: Request for\n\tadditional materials\n\nBody")
		if email.Subject != "Request for additional materials" {
			t.Errorf("Subject = %q", email.Subject)
		}
	})

	t.Run("leaked headers truncate subject", func(t *testing.T) {
		email := extract.ParseEmail("Subject: Budget review To: finance@example.com\n\nBody")
		if email.Subject != "Budget review" {
			t.Errorf("Subject = %q, want Budget review", email.Subject)
		}
	})

	t.Run("crlf line endings normalized", func(t *testing.T) {
		email := extract.ParseEmail("From: a@b.com\r\nSubject: CRLF test\r\n\r\nBody")
		if email.Subject != "CRLF test" {
			t.Errorf("Subject = %q, want CRLF test", email.Subject)
		}
	})
}

func TestParseEmailUrgency(t *testing.T) {
	t.Run("term in subject", func(t *testing.T) {
		email := extract.ParseEmail("Subject: URGENT: server down\n\nAll quiet otherwise.")
		if email.Urgency != extract.UrgencyHigh {
			t.Errorf("Urgency = %q, want High", email.Urgency)
		}
	})

	t.Run("term in body window", func(t *testing.T) {
		email := extract.ParseEmail("Subject: Laptops\n\nWe need a quotation for 25 laptops ASAP.")
		if email.Urgency != extract.UrgencyHigh {
			t.Errorf("Urgency = %q, want High", email.Urgency)
		}
	})

	t.Run("whole word match only", func(t *testing.T) {
		email := extract.ParseEmail("Subject: Dept update\n\nThe urgentcare clinic opened today.")
		if email.Urgency != extract.UrgencyNormal {
			t.Errorf("Urgency = %q, want Normal", email.Urgency)
		}
	})

	t.Run("term beyond 500 character window ignored", func(t *testing.T) {
		body := strings.Repeat("a", 550) + " urgent"
		email := extract.ParseEmail("Subject: Long message\n\n" + body)
		if email.Urgency != extract.UrgencyNormal {
			t.Errorf("Urgency = %q, want Normal", email.Urgency)
		}
	})

	t.Run("term at character 450 detected", func(t *testing.T) {
		body := strings.Repeat("a", 450) + " urgent " + strings.Repeat("b", 200)
		email := extract.ParseEmail("Subject: Long message\n\n" + body)
		if email.Urgency != extract.UrgencyHigh {
			t.Errorf("Urgency = %q, want High", email.Urgency)
		}
	})

	t.Run("no blank line scans the full text", func(t *testing.T) {
		text := "Subject: Long message\n" + strings.Repeat("a", 550) + "\nurgent"
		email := extract.ParseEmail(text)
		if email.Urgency != extract.UrgencyHigh {
			t.Errorf("Urgency = %q, want High", email.Urgency)
		}
	})

	t.Run("no terms", func(t *testing.T) {
		email := extract.ParseEmail("Subject: Notes\n\nNothing pressing here.")
		if email.Urgency != extract.UrgencyNormal {
			t.Errorf("Urgency = %q, want Normal", email.Urgency)
		}
	})
}

func TestEmailPayload(t *testing.T) {
	email := extract.ParseEmail("From: a@b.com\nSubject: Hi\n\nBody text")
	payload := email.Payload()

	for _, key := range []string{"sender", "subject", "urgency", "original_text"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("payload missing %q", key)
		}
	}

	if payload["sender"] != "a@b.com" {
		t.Errorf("sender = %v, want a@b.com", payload["sender"])
	}
}
