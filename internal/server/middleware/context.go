package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/lu-nia/lostfound/internal/domain"
)

type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUserRole contextKey = "role"
)

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return v, ok
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUserRole).(string)
	return v, ok
}

// ActorFromContext assembles the domain actor the lifecycle engine trusts.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	role, _ := RoleFromContext(ctx)
	return domain.Actor{ID: id, Role: domain.Role(role)}, true
}
