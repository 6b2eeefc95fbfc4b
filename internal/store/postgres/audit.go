package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lu-nia/lostfound/internal/domain"
)

// AuditRepo is the append-only trail. It exposes no update or delete, and
// audit_log.item_id carries no foreign key so entries outlive their item.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Record(ctx context.Context, entry *domain.AuditEntry) error {
	_, err := db(ctx, r.pool).Exec(ctx,
		`INSERT INTO audit_log (id, item_id, action, old_status, new_status, actor_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.ItemID, string(entry.Action),
		statusText(entry.OldStatus), statusText(entry.NewStatus),
		entry.ActorID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("auditRepo.Record: %w", err)
	}

	return nil
}

func (r *AuditRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.AuditEntry, error) {
	rows, err := db(ctx, r.pool).Query(ctx,
		`SELECT id, item_id, action, old_status, new_status, actor_id, created_at
		 FROM audit_log WHERE item_id = $1
		 ORDER BY created_at`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("auditRepo.ListByItem: %w", err)
	}
	defer rows.Close()

	var entries []*domain.AuditEntry
	for rows.Next() {
		var (
			e         domain.AuditEntry
			action    string
			oldStatus *string
			newStatus *string
		)

		if err := rows.Scan(&e.ID, &e.ItemID, &action, &oldStatus, &newStatus, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("auditRepo.ListByItem: scan: %w", err)
		}

		e.Action = domain.AuditAction(action)

		if e.OldStatus, err = parseStatusText(oldStatus); err != nil {
			return nil, fmt.Errorf("auditRepo.ListByItem: %w", err)
		}
		if e.NewStatus, err = parseStatusText(newStatus); err != nil {
			return nil, fmt.Errorf("auditRepo.ListByItem: %w", err)
		}

		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("auditRepo.ListByItem: rows: %w", err)
	}

	return entries, nil
}

func statusText(s *domain.ItemStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func parseStatusText(s *string) (*domain.ItemStatus, error) {
	if s == nil {
		return nil, nil
	}
	parsed, err := domain.ParseItemStatus(*s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
