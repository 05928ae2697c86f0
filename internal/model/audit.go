package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one mutating planning operation. Writes are
// fire-and-forget: a failed audit insert never fails the operation.
type AuditEntry struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Details    string
	CreatedAt  time.Time
}
