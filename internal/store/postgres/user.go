package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lu-nia/lostfound/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := db(ctx, r.pool).Exec(ctx,
		`INSERT INTO users (id, student_number, name, email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.StudentNumber, u.Name, u.Email, u.PasswordHash, string(u.Role),
		u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("userRepo.Create: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("userRepo.Create: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, "userRepo.GetByID", `id = $1`, id)
}

func (r *UserRepo) GetByStudentNumber(ctx context.Context, studentNumber string) (*domain.User, error) {
	return r.getBy(ctx, "userRepo.GetByStudentNumber", `student_number = $1`, studentNumber)
}

func (r *UserRepo) getBy(ctx context.Context, caller, cond string, arg any) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)

	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT id, student_number, name, email, password_hash, role, created_at, updated_at
		 FROM users WHERE `+cond, arg,
	).Scan(&u.ID, &u.StudentNumber, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", caller, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}

	u.Role = domain.Role(role)
	return &u, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := db(ctx, r.pool).Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("userRepo.UpdatePassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.UpdatePassword: %w", domain.ErrNotFound)
	}

	return nil
}

type RegisteredStudentRepo struct {
	pool *pgxpool.Pool
}

func NewRegisteredStudentRepo(pool *pgxpool.Pool) *RegisteredStudentRepo {
	return &RegisteredStudentRepo{pool: pool}
}

func (r *RegisteredStudentRepo) Add(ctx context.Context, s *domain.RegisteredStudent) error {
	_, err := db(ctx, r.pool).Exec(ctx,
		`INSERT INTO registered_students (student_number, name, email)
		 VALUES ($1, $2, $3)`,
		s.StudentNumber, s.Name, s.Email,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("registeredStudentRepo.Add: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("registeredStudentRepo.Add: %w", err)
	}

	return nil
}

func (r *RegisteredStudentRepo) GetByStudentNumber(ctx context.Context, studentNumber string) (*domain.RegisteredStudent, error) {
	var s domain.RegisteredStudent

	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT student_number, name, email FROM registered_students WHERE student_number = $1`,
		studentNumber,
	).Scan(&s.StudentNumber, &s.Name, &s.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("registeredStudentRepo.GetByStudentNumber: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("registeredStudentRepo.GetByStudentNumber: %w", err)
	}

	return &s, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
