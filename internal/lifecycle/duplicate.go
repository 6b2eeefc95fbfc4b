package lifecycle

import (
	"strings"

	"github.com/lu-nia/lostfound/internal/domain"
)

// FindConflict scans a reporter's existing reports for a near-duplicate of
// the candidate: same report type, not yet claimed, and a title that
// case-insensitively contains or is contained by the candidate's. The
// substring match is loose on purpose so "Black Wallet" collides with
// "wallet"; precise text similarity is out of scope. Returns the first
// conflicting report, or nil.
func FindConflict(candidate *domain.Item, existing []*domain.Item) *domain.Item {
	title := strings.ToLower(candidate.Title)

	for _, it := range existing {
		if it.LostReport != candidate.LostReport {
			continue
		}
		if it.Status == domain.ItemStatusClaimed {
			continue
		}

		other := strings.ToLower(it.Title)
		if strings.Contains(other, title) || strings.Contains(title, other) {
			return it
		}
	}

	return nil
}
