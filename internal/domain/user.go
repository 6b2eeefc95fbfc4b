package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID            uuid.UUID `json:"id"`
	StudentNumber string    `json:"student_number"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Actor is the authenticated principal behind a request. The lifecycle engine
// trusts it; credential verification happens in the auth layer.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// RegisteredStudent is an allow-list entry: only students pre-registered by
// the campus administration may create accounts.
type RegisteredStudent struct {
	StudentNumber string `json:"student_number"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByStudentNumber(ctx context.Context, studentNumber string) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type RegisteredStudentRepository interface {
	Add(ctx context.Context, s *RegisteredStudent) error
	GetByStudentNumber(ctx context.Context, studentNumber string) (*RegisteredStudent, error)
}
