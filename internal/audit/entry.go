// Package audit persists every classification and validation outcome to an
// append-only log addressable by sender and conversation. Entries are
// immutable once appended; no update or delete operation exists.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/courier/internal/classify"
)

// Data is the recorded outcome of one pipeline invocation: the
// classification that selected the processing path and the result the
// validator (or PDF processor) produced.
type Data struct {
	Classification classify.Result `json:"classification"`
	Result         any             `json:"result"`
}

// Entry is one audit log record. Seq reflects insertion order and is
// assigned by the store on append.
type Entry struct {
	ID             uuid.UUID `json:"id"`
	Seq            int64     `json:"seq"`
	Timestamp      time.Time `json:"timestamp"`
	Source         string    `json:"source"`
	Sender         *string   `json:"sender,omitempty"`
	ConversationID *string   `json:"conversation_id,omitempty"`
	Data           Data      `json:"data"`
}
