package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of mutation an entry records.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Entry is one append-only audit record. Entries are never mutated or
// deleted except via a full database reset.
type Entry struct {
	ID       uuid.UUID
	Entity   string
	EntityID uuid.UUID
	Action   Action
	Metadata map[string]any
	At       time.Time
}
