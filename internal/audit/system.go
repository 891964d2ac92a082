package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/courier/pkg/pagination"
)

// System defines the public contract for audit log operations. The log is
// append-only: Append must never silently drop an entry on the success path,
// and no mutation operations are exposed.
type System interface {
	Handler() *Handler

	Append(ctx context.Context, entry *Entry) error

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Entry], error)

	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
}
