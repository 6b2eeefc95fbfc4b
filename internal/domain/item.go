package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ItemStatus string

const (
	ItemStatusLost    ItemStatus = "lost"
	ItemStatusFound   ItemStatus = "found"
	ItemStatusClaimed ItemStatus = "claimed"
)

// ParseItemStatus validates a wire-level status string.
func ParseItemStatus(s string) (ItemStatus, error) {
	switch ItemStatus(s) {
	case ItemStatusLost, ItemStatusFound, ItemStatusClaimed:
		return ItemStatus(s), nil
	default:
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown value %q", s)}
	}
}

// ValidTransition checks if an item status change is allowed.
// Allowed: lost->found, lost->claimed, found->claimed, found->lost (a found
// report may be reopened). Claimed is terminal for status updates.
func (s ItemStatus) ValidTransition(to ItemStatus) bool {
	switch s {
	case ItemStatusLost:
		return to == ItemStatusFound || to == ItemStatusClaimed
	case ItemStatusFound:
		return to == ItemStatusLost || to == ItemStatusClaimed
	default:
		return false
	}
}

// Deletable reports whether an item in this status may be removed.
// An open lost report must be resolved before deletion so its audit trail
// stays meaningful for the claimant.
func (s ItemStatus) Deletable() bool {
	return s == ItemStatusFound || s == ItemStatusClaimed
}

type ItemCategory string

const (
	CategoryAccessories ItemCategory = "Accessories"
	CategoryCards       ItemCategory = "Cards"
	CategoryClothing    ItemCategory = "Clothing"
	CategoryElectronics ItemCategory = "Electronics"
	CategoryOthers      ItemCategory = "Others"
)

// ParseItemCategory validates a wire-level category string.
func ParseItemCategory(s string) (ItemCategory, error) {
	switch ItemCategory(s) {
	case CategoryAccessories, CategoryCards, CategoryClothing, CategoryElectronics, CategoryOthers:
		return ItemCategory(s), nil
	default:
		return "", &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown value %q", s)}
	}
}

// Item is a lost-or-found report filed by a student.
type Item struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Location     string       `json:"location"`
	Category     ItemCategory `json:"category,omitempty"`
	Status       ItemStatus   `json:"status"`
	LostReport   bool         `json:"is_lost_report"`
	OwnerID      uuid.UUID    `json:"owner_id"`
	ContactPhone string       `json:"contact_phone,omitempty"`
	LinkedItemID *uuid.UUID   `json:"linked_item_id,omitempty"` // reserved for lost<->found matching, never set yet
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// InitialStatus derives the starting status from the report type.
func InitialStatus(lostReport bool) ItemStatus {
	if lostReport {
		return ItemStatusLost
	}
	return ItemStatusFound
}

// ItemPatch carries a partial update. Nil fields are left untouched.
type ItemPatch struct {
	Title        *string
	Description  *string
	Location     *string
	Category     *ItemCategory
	Status       *ItemStatus
	ContactPhone *string
}

// ItemFilter narrows List queries. Zero values mean "no filter".
type ItemFilter struct {
	Category ItemCategory
	Status   ItemStatus
	Location string // substring, case-insensitive
	Search   string // substring over title and description, case-insensitive
}

type ItemStats struct {
	Total   int `json:"total_items"`
	Lost    int `json:"lost_items"`
	Found   int `json:"found_items"`
	Claimed int `json:"claimed_items"`
}

type ItemRepository interface {
	Insert(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context, filter ItemFilter) ([]*Item, error)
	ListByOwnerAndType(ctx context.Context, ownerID uuid.UUID, lostReport bool) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[ItemStatus]int, error)
}
