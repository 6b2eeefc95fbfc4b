package lifecycle

import "github.com/lu-nia/lostfound/internal/domain"

// CanMutate decides whether an actor may update or delete an item: the
// reporting owner and admins may, nobody else. The rule is deliberately
// coarse; there is no per-field authorization. It returns a bool rather than
// an error so callers decide how to surface the refusal.
func CanMutate(actor domain.Actor, item *domain.Item) bool {
	return actor.ID == item.OwnerID || actor.Role == domain.RoleAdmin
}
