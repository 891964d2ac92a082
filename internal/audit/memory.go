package audit

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/courier/pkg/pagination"
)

// Memory is an in-process System implementation. It backs tests and
// short-lived tooling where durability is not required; listing always
// reflects insertion order.
type Memory struct {
	mu         sync.RWMutex
	entries    []Entry
	seq        int64
	logger     *slog.Logger
	pagination pagination.Config
}

func NewMemory(logger *slog.Logger, pagination pagination.Config) *Memory {
	return &Memory{
		logger:     logger.With("system", "audit"),
		pagination: pagination,
	}
}

func (m *Memory) Handler() *Handler {
	return NewHandler(m, m.logger, m.pagination)
}

func (m *Memory) Append(_ context.Context, entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	entry.Seq = m.seq
	m.entries = append(m.entries, *entry)

	return nil
}

func (m *Memory) List(
	_ context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(m.pagination)

	m.mu.RLock()
	defer m.mu.RUnlock()

	search := ""
	if page.Search != nil {
		search = *page.Search
	}

	matched := make([]Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		if filters.matches(entry) && matchesSearch(entry, search) {
			matched = append(matched, entry)
		}
	}

	total := len(matched)
	start := min(page.Offset(), total)
	end := min(start+page.PageSize, total)

	result := pagination.NewPageResult(matched[start:end], total, page.Page, page.PageSize)
	return &result, nil
}

func (m *Memory) Find(_ context.Context, id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, entry := range m.entries {
		if entry.ID == id {
			found := entry
			return &found, nil
		}
	}

	return nil, ErrNotFound
}

func (f Filters) matches(entry Entry) bool {
	if f.Source != nil && entry.Source != *f.Source {
		return false
	}
	if f.Sender != nil && (entry.Sender == nil || *entry.Sender != *f.Sender) {
		return false
	}
	if f.ConversationID != nil && (entry.ConversationID == nil || *entry.ConversationID != *f.ConversationID) {
		return false
	}
	return true
}

func matchesSearch(entry Entry, search string) bool {
	if search == "" {
		return true
	}

	search = strings.ToLower(search)
	if strings.Contains(strings.ToLower(entry.Source), search) {
		return true
	}
	return entry.Sender != nil && strings.Contains(strings.ToLower(*entry.Sender), search)
}
