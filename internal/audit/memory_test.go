package audit_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/courier/internal/audit"
	"github.com/JaimeStill/courier/internal/classify"
	"github.com/JaimeStill/courier/pkg/pagination"
)

func testMemory() *audit.Memory {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return audit.NewMemory(logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func appendEntry(t *testing.T, log *audit.Memory, source, sender string) audit.Entry {
	t.Helper()

	entry := audit.Entry{
		Source: source,
		Data: audit.Data{
			Classification: classify.Result{
				Format: classify.FormatEmail,
				Intent: classify.IntentOther,
			},
		},
	}
	if sender != "" {
		entry.Sender = &sender
	}

	if err := log.Append(context.Background(), &entry); err != nil {
		t.Fatalf("Append: %v", err)
	}
	return entry
}

func TestMemoryAppend(t *testing.T) {
	log := testMemory()

	first := appendEntry(t, log, "Email", "a@b.com")
	second := appendEntry(t, log, "JSON", "")

	if first.ID == uuid.Nil {
		t.Error("first.ID not assigned")
	}
	if first.Timestamp.IsZero() {
		t.Error("first.Timestamp not assigned")
	}
	if first.Seq != 1 || second.Seq != 2 {
		t.Errorf("Seq = %d, %d, want 1, 2", first.Seq, second.Seq)
	}
}

func TestMemoryList(t *testing.T) {
	log := testMemory()

	appendEntry(t, log, "Email", "a@b.com")
	appendEntry(t, log, "JSON", "")
	appendEntry(t, log, "Email", "c@d.com")

	t.Run("insertion order", func(t *testing.T) {
		page, err := log.List(context.Background(), pagination.PageRequest{}, audit.Filters{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}

		if page.Total != 3 {
			t.Fatalf("Total = %d, want 3", page.Total)
		}
		for i, entry := range page.Data {
			if entry.Seq != int64(i+1) {
				t.Errorf("Data[%d].Seq = %d, want %d", i, entry.Seq, i+1)
			}
		}
	})

	t.Run("source filter", func(t *testing.T) {
		source := "Email"
		page, err := log.List(context.Background(), pagination.PageRequest{}, audit.Filters{Source: &source})
		if err != nil {
			t.Fatalf("List: %v", err)
		}

		if page.Total != 2 {
			t.Errorf("Total = %d, want 2", page.Total)
		}
	})

	t.Run("sender filter skips entries without a sender", func(t *testing.T) {
		sender := "a@b.com"
		page, err := log.List(context.Background(), pagination.PageRequest{}, audit.Filters{Sender: &sender})
		if err != nil {
			t.Fatalf("List: %v", err)
		}

		if page.Total != 1 {
			t.Fatalf("Total = %d, want 1", page.Total)
		}
		if page.Data[0].Sender == nil || *page.Data[0].Sender != sender {
			t.Errorf("Sender = %v, want %s", page.Data[0].Sender, sender)
		}
	})

	t.Run("search matches sender substring", func(t *testing.T) {
		search := "c@d"
		page, err := log.List(context.Background(), pagination.PageRequest{Search: &search}, audit.Filters{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}

		if page.Total != 1 {
			t.Errorf("Total = %d, want 1", page.Total)
		}
	})
}

func TestMemoryListPagination(t *testing.T) {
	log := testMemory()

	for i := range 5 {
		appendEntry(t, log, "Email", fmt.Sprintf("user%d@b.com", i))
	}

	page, err := log.List(context.Background(), pagination.PageRequest{Page: 2, PageSize: 2}, audit.Filters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if page.Total != 5 {
		t.Errorf("Total = %d, want 5", page.Total)
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
	if len(page.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(page.Data))
	}
	if page.Data[0].Seq != 3 || page.Data[1].Seq != 4 {
		t.Errorf("Seq = %d, %d, want 3, 4", page.Data[0].Seq, page.Data[1].Seq)
	}
}

func TestMemoryFind(t *testing.T) {
	log := testMemory()
	entry := appendEntry(t, log, "PDF", "")

	t.Run("existing entry", func(t *testing.T) {
		found, err := log.Find(context.Background(), entry.ID)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if found.Seq != entry.Seq {
			t.Errorf("Seq = %d, want %d", found.Seq, entry.Seq)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := log.Find(context.Background(), uuid.New()); err != audit.ErrNotFound {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}
