package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lu-nia/lostfound/internal/domain"
)

type ItemRepo struct {
	pool *pgxpool.Pool
}

func NewItemRepo(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

const itemColumns = `id, title, description, location, category, status, is_lost_report,
	       owner_id, contact_phone, linked_item_id, created_at, updated_at`

func (r *ItemRepo) Insert(ctx context.Context, item *domain.Item) error {
	_, err := db(ctx, r.pool).Exec(ctx,
		`INSERT INTO items (id, title, description, location, category, status, is_lost_report,
		                    owner_id, contact_phone, linked_item_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		item.ID, item.Title, item.Description, item.Location, string(item.Category),
		string(item.Status), item.LostReport, item.OwnerID, item.ContactPhone,
		item.LinkedItemID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("itemRepo.Insert: %w", err)
	}

	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	row := db(ctx, r.pool).QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id)

	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("itemRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("itemRepo.GetByID: %w", err)
	}

	return item, nil
}

func (r *ItemRepo) List(ctx context.Context, filter domain.ItemFilter) ([]*domain.Item, error) {
	var (
		where []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Category != "" {
		where = append(where, "category = "+arg(string(filter.Category)))
	}
	if filter.Status != "" {
		where = append(where, "status = "+arg(string(filter.Status)))
	}
	if filter.Location != "" {
		where = append(where, "location ILIKE "+arg("%"+filter.Location+"%"))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, "(title ILIKE "+p+" OR description ILIKE "+p+")")
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT 1000"

	rows, err := db(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.List: %w", err)
	}
	defer rows.Close()

	return scanItems(rows, "itemRepo.List")
}

func (r *ItemRepo) ListByOwnerAndType(ctx context.Context, ownerID uuid.UUID, lostReport bool) ([]*domain.Item, error) {
	rows, err := db(ctx, r.pool).Query(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE owner_id = $1 AND is_lost_report = $2
		 ORDER BY created_at`,
		ownerID, lostReport,
	)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.ListByOwnerAndType: %w", err)
	}
	defer rows.Close()

	return scanItems(rows, "itemRepo.ListByOwnerAndType")
}

func (r *ItemRepo) Update(ctx context.Context, item *domain.Item) error {
	// id, owner_id and created_at are immutable and deliberately absent.
	tag, err := db(ctx, r.pool).Exec(ctx,
		`UPDATE items SET title = $1, description = $2, location = $3, category = $4,
		        status = $5, contact_phone = $6, linked_item_id = $7, updated_at = $8
		 WHERE id = $9`,
		item.Title, item.Description, item.Location, string(item.Category),
		string(item.Status), item.ContactPhone, item.LinkedItemID, item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("itemRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("itemRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("itemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("itemRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ItemRepo) CountByStatus(ctx context.Context) (map[domain.ItemStatus]int, error) {
	rows, err := db(ctx, r.pool).Query(ctx,
		`SELECT status, count(*) FROM items GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.CountByStatus: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.ItemStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("itemRepo.CountByStatus: scan: %w", err)
		}
		parsed, err := domain.ParseItemStatus(status)
		if err != nil {
			return nil, fmt.Errorf("itemRepo.CountByStatus: %w", err)
		}
		counts[parsed] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("itemRepo.CountByStatus: rows: %w", err)
	}

	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var (
		it       domain.Item
		category string
		status   string
	)

	if err := row.Scan(
		&it.ID, &it.Title, &it.Description, &it.Location, &category, &status,
		&it.LostReport, &it.OwnerID, &it.ContactPhone, &it.LinkedItemID,
		&it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}

	// Enum values stored as text are validated on the way out.
	parsed, err := domain.ParseItemStatus(status)
	if err != nil {
		return nil, err
	}
	it.Status = parsed

	if category != "" {
		cat, err := domain.ParseItemCategory(category)
		if err != nil {
			return nil, err
		}
		it.Category = cat
	}

	return &it, nil
}

func scanItems(rows pgx.Rows, caller string) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return items, nil
}
