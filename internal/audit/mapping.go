package audit

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/JaimeStill/courier/pkg/query"
	"github.com/JaimeStill/courier/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "audit_log", "a").
	Project("id", "ID").
	Project("seq", "Seq").
	Project("timestamp", "Timestamp").
	Project("source", "Source").
	Project("sender", "Sender").
	Project("conversation_id", "ConversationID").
	Project("data", "Data")

// Insertion order is the contractual listing order for the audit log.
var defaultSort = query.SortField{
	Field:      "Seq",
	Descending: false,
}

// Filters contains optional filtering criteria for audit queries. Nil fields
// are ignored. All fields use exact matching.
type Filters struct {
	Source         *string `json:"source,omitempty"`
	Sender         *string `json:"sender,omitempty"`
	ConversationID *string `json:"conversation_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Source", f.Source).
		WhereEquals("Sender", f.Sender).
		WhereEquals("ConversationID", f.ConversationID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("source"); s != "" {
		f.Source = &s
	}

	if s := values.Get("sender"); s != "" {
		f.Sender = &s
	}

	if c := values.Get("conversation_id"); c != "" {
		f.ConversationID = &c
	}

	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	var dataRaw []byte

	err := s.Scan(
		&e.ID,
		&e.Seq,
		&e.Timestamp,
		&e.Source,
		&e.Sender,
		&e.ConversationID,
		&dataRaw,
	)

	if err != nil {
		return e, err
	}

	if len(dataRaw) > 0 {
		if err := json.Unmarshal(dataRaw, &e.Data); err != nil {
			return e, fmt.Errorf("unmarshal data: %w", err)
		}
	}

	return e, nil
}
