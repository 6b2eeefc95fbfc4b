package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdateStatus AuditAction = "UPDATE_STATUS"
	AuditActionDelete       AuditAction = "DELETE"
)

// AuditEntry records a single lifecycle transition. Entries are append-only
// and outlive the item they reference: ItemID is a soft reference that may
// dangle after deletion.
type AuditEntry struct {
	ID        uuid.UUID   `json:"id"`
	ItemID    uuid.UUID   `json:"item_id"`
	Action    AuditAction `json:"action"`
	OldStatus *ItemStatus `json:"old_status,omitempty"` // nil for CREATE
	NewStatus *ItemStatus `json:"new_status,omitempty"` // nil for DELETE
	ActorID   uuid.UUID   `json:"actor_id"`
	CreatedAt time.Time   `json:"created_at"`
}

// AuditLog is the append-only trail. No update or delete is exposed.
type AuditLog interface {
	Record(ctx context.Context, entry *AuditEntry) error
	// ListByItem returns entries for an item, oldest first.
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*AuditEntry, error)
}
