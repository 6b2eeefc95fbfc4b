package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/lu-nia/lostfound/internal/domain"
	"github.com/lu-nia/lostfound/internal/lifecycle"
)

// LifecycleService abstracts the item lifecycle engine for handler testing.
// *lifecycle.Service satisfies this interface.
type LifecycleService interface {
	Create(ctx context.Context, input lifecycle.CreateInput, actor domain.Actor) (*domain.Item, error)
	UpdateFields(ctx context.Context, id uuid.UUID, patch domain.ItemPatch, actor domain.Actor) (*domain.Item, error)
	Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]*domain.Item, error)
	Stats(ctx context.Context) (*domain.ItemStats, error)
	History(ctx context.Context, itemID uuid.UUID) ([]*domain.AuditEntry, error)
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, studentNumber, password, name, email string) (*domain.User, error)
	Login(ctx context.Context, studentNumber, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// StudentDirectory abstracts the registered-student allow-list for the admin
// endpoint. domain.RegisteredStudentRepository satisfies this interface.
type StudentDirectory interface {
	Add(ctx context.Context, s *domain.RegisteredStudent) error
}
