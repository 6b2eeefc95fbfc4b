// Package lifecycle implements the item lifecycle engine: creation guarded
// against duplicate reports, authorized field and status updates, gated
// deletion, and the append-only audit trail written atomically with every
// mutation.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lu-nia/lostfound/internal/domain"
)

// TxRunner scopes an item mutation and its audit append into one storage
// transaction. Either both are applied or neither is.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier receives best-effort item events after a successful commit.
// Implementations must not fail the calling operation.
type Notifier interface {
	ItemCreated(ctx context.Context, item *domain.Item)
	ItemStatusChanged(ctx context.Context, item *domain.Item, old domain.ItemStatus)
	ItemDeleted(ctx context.Context, itemID uuid.UUID)
}

// Service orchestrates the item state machine. It holds no mutable state of
// its own; the repository is the only shared resource, so concurrent requests
// may run it freely.
type Service struct {
	items  domain.ItemRepository
	audit  domain.AuditLog
	tx     TxRunner
	notify Notifier // nil disables events

	now   func() time.Time
	newID func() uuid.UUID
}

// Option customizes a Service.
type Option func(*Service)

// WithNotifier wires an event sink for item mutations.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notify = n }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the item/audit id source.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(items domain.ItemRepository, audit domain.AuditLog, tx TxRunner, opts ...Option) *Service {
	s := &Service{
		items: items,
		audit: audit,
		tx:    tx,
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput holds the fields of a new report.
type CreateInput struct {
	Title        string
	Description  string
	Location     string
	Category     domain.ItemCategory // optional
	ContactPhone string
	LostReport   bool
}

// Create validates the input, rejects near-duplicate reports by the same
// owner, and persists the item together with its CREATE audit entry.
func (s *Service) Create(ctx context.Context, input CreateInput, actor domain.Actor) (*domain.Item, error) {
	if err := validateRequired("title", input.Title); err != nil {
		return nil, fmt.Errorf("lifecycle.Create: %w", err)
	}
	if err := validateRequired("description", input.Description); err != nil {
		return nil, fmt.Errorf("lifecycle.Create: %w", err)
	}
	if err := validateRequired("location", input.Location); err != nil {
		return nil, fmt.Errorf("lifecycle.Create: %w", err)
	}

	now := s.now().UTC()
	item := &domain.Item{
		ID:           s.newID(),
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		Category:     input.Category,
		Status:       domain.InitialStatus(input.LostReport),
		LostReport:   input.LostReport,
		OwnerID:      actor.ID,
		ContactPhone: input.ContactPhone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	existing, err := s.items.ListByOwnerAndType(ctx, actor.ID, input.LostReport)
	if err != nil {
		return nil, fmt.Errorf("lifecycle.Create: %w", err)
	}
	if conflict := FindConflict(item, existing); conflict != nil {
		return nil, fmt.Errorf("lifecycle.Create: %w", &domain.ConflictError{ExistingID: conflict.ID})
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.items.Insert(ctx, item); err != nil {
			return err
		}
		return s.audit.Record(ctx, s.newEntry(item.ID, domain.AuditActionCreate, nil, &item.Status, actor))
	})
	if err != nil {
		return nil, fmt.Errorf("lifecycle.Create: %w", err)
	}

	if s.notify != nil {
		s.notify.ItemCreated(ctx, item)
	}

	return item, nil
}

// UpdateFields applies a partial update. Nil patch fields are untouched. A
// status change is validated against the state machine and logged as one
// UPDATE_STATUS entry; patching the status to its current value is a no-op
// and produces no entry.
func (s *Service) UpdateFields(ctx context.Context, id uuid.UUID, patch domain.ItemPatch, actor domain.Actor) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lifecycle.UpdateFields: %w", err)
	}

	if !CanMutate(actor, item) {
		return nil, fmt.Errorf("lifecycle.UpdateFields: item %s: %w", id, domain.ErrUnauthorized)
	}

	oldStatus := item.Status
	statusChanged := false

	if patch.Title != nil {
		if err := validateRequired("title", *patch.Title); err != nil {
			return nil, fmt.Errorf("lifecycle.UpdateFields: %w", err)
		}
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		if err := validateRequired("description", *patch.Description); err != nil {
			return nil, fmt.Errorf("lifecycle.UpdateFields: %w", err)
		}
		item.Description = *patch.Description
	}
	if patch.Location != nil {
		if err := validateRequired("location", *patch.Location); err != nil {
			return nil, fmt.Errorf("lifecycle.UpdateFields: %w", err)
		}
		item.Location = *patch.Location
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.ContactPhone != nil {
		item.ContactPhone = *patch.ContactPhone
	}
	if patch.Status != nil && *patch.Status != oldStatus {
		if !oldStatus.ValidTransition(*patch.Status) {
			return nil, fmt.Errorf("lifecycle.UpdateFields: %w", &domain.TransitionError{From: oldStatus, To: patch.Status})
		}
		item.Status = *patch.Status
		statusChanged = true
	}

	item.UpdatedAt = s.now().UTC()

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.items.Update(ctx, item); err != nil {
			return err
		}
		if !statusChanged {
			return nil
		}
		return s.audit.Record(ctx, s.newEntry(item.ID, domain.AuditActionUpdateStatus, &oldStatus, &item.Status, actor))
	})
	if err != nil {
		return nil, fmt.Errorf("lifecycle.UpdateFields: %w", err)
	}

	if statusChanged && s.notify != nil {
		s.notify.ItemStatusChanged(ctx, item, oldStatus)
	}

	return item, nil
}

// Delete removes a resolved item. Deleting a still-open lost report is
// forbidden. The DELETE audit entry is written in the same transaction and
// survives the removal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("lifecycle.Delete: %w", err)
	}

	if !CanMutate(actor, item) {
		return fmt.Errorf("lifecycle.Delete: item %s: %w", id, domain.ErrUnauthorized)
	}

	if !item.Status.Deletable() {
		return fmt.Errorf("lifecycle.Delete: %w", &domain.TransitionError{From: item.Status})
	}

	oldStatus := item.Status
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.audit.Record(ctx, s.newEntry(item.ID, domain.AuditActionDelete, &oldStatus, nil, actor)); err != nil {
			return err
		}
		return s.items.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("lifecycle.Delete: %w", err)
	}

	if s.notify != nil {
		s.notify.ItemDeleted(ctx, id)
	}

	return nil
}

// Get returns a single item.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lifecycle.Get: %w", err)
	}
	return item, nil
}

// List returns items matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter domain.ItemFilter) ([]*domain.Item, error) {
	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("lifecycle.List: %w", err)
	}
	return items, nil
}

// Stats aggregates item counts by status.
func (s *Service) Stats(ctx context.Context) (*domain.ItemStats, error) {
	counts, err := s.items.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("lifecycle.Stats: %w", err)
	}

	stats := &domain.ItemStats{
		Lost:    counts[domain.ItemStatusLost],
		Found:   counts[domain.ItemStatusFound],
		Claimed: counts[domain.ItemStatusClaimed],
	}
	stats.Total = stats.Lost + stats.Found + stats.Claimed
	return stats, nil
}

// History returns the audit trail for an item, oldest first. It works for
// deleted items too; the trail outlives the item.
func (s *Service) History(ctx context.Context, itemID uuid.UUID) ([]*domain.AuditEntry, error) {
	entries, err := s.audit.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("lifecycle.History: %w", err)
	}
	return entries, nil
}

func (s *Service) newEntry(itemID uuid.UUID, action domain.AuditAction, old, next *domain.ItemStatus, actor domain.Actor) *domain.AuditEntry {
	return &domain.AuditEntry{
		ID:        s.newID(),
		ItemID:    itemID,
		Action:    action,
		OldStatus: old,
		NewStatus: next,
		ActorID:   actor.ID,
		CreatedAt: s.now().UTC(),
	}
}

func validateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &domain.ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}
