// Package postgres implements the domain repositories on top of a pgx
// connection pool. Store.InTx scopes repository calls made inside the
// callback into a single transaction; repositories pick the transaction up
// from the context, so an item mutation and its audit append commit or roll
// back together.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lu-nia/lostfound/internal/domain"
)

type Store struct {
	pool     *pgxpool.Pool
	items    *ItemRepo
	audit    *AuditRepo
	users    *UserRepo
	students *RegisteredStudentRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:     pool,
		items:    NewItemRepo(pool),
		audit:    NewAuditRepo(pool),
		users:    NewUserRepo(pool),
		students: NewRegisteredStudentRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Items() domain.ItemRepository                 { return s.items }
func (s *Store) Audit() domain.AuditLog                       { return s.audit }
func (s *Store) Users() domain.UserRepository                 { return s.users }
func (s *Store) Students() domain.RegisteredStudentRepository { return s.students }

type txKey struct{}

// InTx runs fn inside one transaction. Repository calls that receive the
// returned context join the transaction instead of using the pool.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres.InTx: begin: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !isTxClosed(rbErr) {
			return fmt.Errorf("postgres.InTx: rollback after %w: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres.InTx: commit: %w", err)
	}

	return nil
}

func isTxClosed(err error) bool {
	return errors.Is(err, pgx.ErrTxClosed)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// db resolves the active querier: the enclosing transaction when InTx put one
// in the context, the pool otherwise.
func db(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// Migrate creates the tables if they do not exist yet. AuditEntry.item_id is
// deliberately not a foreign key: the trail must survive item deletion.
func (s *Store) Migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	id             uuid PRIMARY KEY,
	student_number text NOT NULL UNIQUE,
	name           text NOT NULL,
	email          text NOT NULL DEFAULT '',
	password_hash  text NOT NULL,
	role           text NOT NULL DEFAULT 'student',
	created_at     timestamptz NOT NULL,
	updated_at     timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS registered_students (
	student_number text PRIMARY KEY,
	name           text NOT NULL,
	email          text NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS items (
	id             uuid PRIMARY KEY,
	title          text NOT NULL,
	description    text NOT NULL,
	location       text NOT NULL,
	category       text NOT NULL DEFAULT '',
	status         text NOT NULL,
	is_lost_report boolean NOT NULL,
	owner_id       uuid NOT NULL REFERENCES users(id),
	contact_phone  text NOT NULL DEFAULT '',
	linked_item_id uuid,
	created_at     timestamptz NOT NULL,
	updated_at     timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS items_owner_type_idx ON items (owner_id, is_lost_report);
CREATE INDEX IF NOT EXISTS items_status_idx ON items (status);

CREATE TABLE IF NOT EXISTS audit_log (
	id         uuid PRIMARY KEY,
	item_id    uuid NOT NULL,
	action     text NOT NULL,
	old_status text,
	new_status text,
	actor_id   uuid NOT NULL,
	created_at timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS audit_log_item_idx ON audit_log (item_id, created_at);
`

	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres.Migrate: %w", err)
	}
	return nil
}
