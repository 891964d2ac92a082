package formatting_test

import (
	"testing"

	"github.com/JaimeStill/courier/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"512B", 512},
		{"1KB", 1024},
		{"50MB", 50 * 1024 * 1024},
		{"2GB", 2 * 1024 * 1024 * 1024},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tc.input)
			if err != nil {
				t.Fatalf("ParseBytes(%q) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}

	t.Run("invalid input", func(t *testing.T) {
		if _, err := formatting.ParseBytes("fifty megabytes"); err == nil {
			t.Error("ParseBytes error = nil, want error")
		}
	})
}
