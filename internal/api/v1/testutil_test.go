package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/lu-nia/lostfound/internal/domain"
	"github.com/lu-nia/lostfound/internal/lifecycle"
	"github.com/lu-nia/lostfound/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject user/role into context for PostCtx et al.
// ---------------------------------------------------------------------------

func studentCtx(userID uuid.UUID) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserRole, middleware.RoleStudent)
	return ctx
}

func adminCtx(userID uuid.UUID) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserRole, middleware.RoleAdmin)
	return ctx
}

// ---------------------------------------------------------------------------
// Mock LifecycleService
// ---------------------------------------------------------------------------

type mockLifecycleService struct {
	createFunc       func(ctx context.Context, input lifecycle.CreateInput, actor domain.Actor) (*domain.Item, error)
	updateFieldsFunc func(ctx context.Context, id uuid.UUID, patch domain.ItemPatch, actor domain.Actor) (*domain.Item, error)
	deleteFunc       func(ctx context.Context, id uuid.UUID, actor domain.Actor) error
	getFunc          func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	listFunc         func(ctx context.Context, filter domain.ItemFilter) ([]*domain.Item, error)
	statsFunc        func(ctx context.Context) (*domain.ItemStats, error)
	historyFunc      func(ctx context.Context, itemID uuid.UUID) ([]*domain.AuditEntry, error)
}

func (m *mockLifecycleService) Create(ctx context.Context, input lifecycle.CreateInput, actor domain.Actor) (*domain.Item, error) {
	return m.createFunc(ctx, input, actor)
}

func (m *mockLifecycleService) UpdateFields(ctx context.Context, id uuid.UUID, patch domain.ItemPatch, actor domain.Actor) (*domain.Item, error) {
	return m.updateFieldsFunc(ctx, id, patch, actor)
}

func (m *mockLifecycleService) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	return m.deleteFunc(ctx, id, actor)
}

func (m *mockLifecycleService) Get(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return m.getFunc(ctx, id)
}

func (m *mockLifecycleService) List(ctx context.Context, filter domain.ItemFilter) ([]*domain.Item, error) {
	return m.listFunc(ctx, filter)
}

func (m *mockLifecycleService) Stats(ctx context.Context) (*domain.ItemStats, error) {
	return m.statsFunc(ctx)
}

func (m *mockLifecycleService) History(ctx context.Context, itemID uuid.UUID) ([]*domain.AuditEntry, error) {
	return m.historyFunc(ctx, itemID)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc       func(ctx context.Context, studentNumber, password, name, email string) (*domain.User, error)
	loginFunc          func(ctx context.Context, studentNumber, password string) (string, string, error)
	refreshTokenFunc   func(ctx context.Context, refreshToken string) (string, error)
	changePasswordFunc func(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	getUserFunc        func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, studentNumber, password, name, email string) (*domain.User, error) {
	return m.registerFunc(ctx, studentNumber, password, name, email)
}

func (m *mockAuthService) Login(ctx context.Context, studentNumber, password string) (accessToken, refreshToken string, err error) {
	return m.loginFunc(ctx, studentNumber, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	return m.changePasswordFunc(ctx, userID, currentPassword, newPassword)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.getUserFunc(ctx, userID)
}

// ---------------------------------------------------------------------------
// Mock StudentDirectory
// ---------------------------------------------------------------------------

type mockStudentDirectory struct {
	addFunc func(ctx context.Context, s *domain.RegisteredStudent) error
}

func (m *mockStudentDirectory) Add(ctx context.Context, s *domain.RegisteredStudent) error {
	return m.addFunc(ctx, s)
}
