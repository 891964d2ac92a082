package formatting_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/courier/pkg/formatting"
)

type sample struct {
	Format string `json:"format"`
	Intent string `json:"intent"`
}

func TestParse(t *testing.T) {
	t.Run("direct JSON", func(t *testing.T) {
		got, err := formatting.Parse[sample](`{"format":"Email","intent":"Invoice"}`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Format != "Email" || got.Intent != "Invoice" {
			t.Errorf("Parse = %+v, want {Format:Email Intent:Invoice}", got)
		}
	})

	t.Run("markdown fenced JSON", func(t *testing.T) {
		input := "```json\n{\"format\":\"JSON\",\"intent\":\"RFQ\"}\n```"
		got, err := formatting.Parse[sample](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Format != "JSON" || got.Intent != "RFQ" {
			t.Errorf("Parse = %+v, want {Format:JSON Intent:RFQ}", got)
		}
	})

	t.Run("object embedded in prose", func(t *testing.T) {
		input := `Sure! Here is the classification you asked for:
{"format":"PDF","intent":"Regulation"}
Let me know if you need anything else.`
		got, err := formatting.Parse[sample](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Format != "PDF" || got.Intent != "Regulation" {
			t.Errorf("Parse = %+v, want {Format:PDF Intent:Regulation}", got)
		}
	})

	t.Run("invalid content returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[sample]("not json at all")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("empty string returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[sample]("")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})
}

func TestExtractObject(t *testing.T) {
	t.Run("spans first open to last close", func(t *testing.T) {
		input := `prefix {"a": {"b": 1}} suffix`
		got, ok := formatting.ExtractObject(input)
		if !ok {
			t.Fatal("ExtractObject ok = false, want true")
		}
		if got != `{"a": {"b": 1}}` {
			t.Errorf("ExtractObject = %q", got)
		}
	})

	t.Run("no braces", func(t *testing.T) {
		if _, ok := formatting.ExtractObject("nothing here"); ok {
			t.Error("ExtractObject ok = true, want false")
		}
	})

	t.Run("reversed braces", func(t *testing.T) {
		if _, ok := formatting.ExtractObject("} before {"); ok {
			t.Error("ExtractObject ok = true, want false")
		}
	})
}
