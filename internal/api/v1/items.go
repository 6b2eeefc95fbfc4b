package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/lu-nia/lostfound/internal/domain"
	"github.com/lu-nia/lostfound/internal/lifecycle"
	"github.com/lu-nia/lostfound/internal/server/middleware"
)

type CreateItemInput struct {
	Body struct {
		Title        string `json:"title" minLength:"1" maxLength:"200" doc:"Item title"`
		Description  string `json:"description" minLength:"1" maxLength:"2000" doc:"Item description"`
		Location     string `json:"location" minLength:"1" maxLength:"200" doc:"Where the item was lost or found"`
		Category     string `json:"category,omitempty" doc:"Item category"`
		ContactPhone string `json:"contact_phone,omitempty" maxLength:"32" doc:"Contact phone number"`
		LostReport   bool   `json:"is_lost_report" doc:"True for a lost report, false for a found report"`
	}
}

type CreateItemOutput struct {
	Body *domain.Item
}

type ListItemsInput struct {
	Category string `query:"category" doc:"Filter by category"`
	Status   string `query:"status" doc:"Filter by status"`
	Location string `query:"location" doc:"Filter by location substring"`
	Search   string `query:"search" doc:"Search in title and description"`
}

type ListItemsOutput struct {
	Body []*domain.Item
}

type GetItemInput struct {
	ID uuid.UUID `path:"id" doc:"Item ID"`
}

type GetItemOutput struct {
	Body *domain.Item
}

type UpdateItemInput struct {
	ID   uuid.UUID `path:"id" doc:"Item ID"`
	Body struct {
		Title        *string `json:"title,omitempty" maxLength:"200" doc:"Item title"`
		Description  *string `json:"description,omitempty" maxLength:"2000" doc:"Item description"`
		Location     *string `json:"location,omitempty" maxLength:"200" doc:"Location"`
		Category     *string `json:"category,omitempty" doc:"Item category"`
		Status       *string `json:"status,omitempty" doc:"Target status"`
		ContactPhone *string `json:"contact_phone,omitempty" maxLength:"32" doc:"Contact phone number"`
	}
}

type UpdateItemOutput struct {
	Body *domain.Item
}

type DeleteItemInput struct {
	ID uuid.UUID `path:"id" doc:"Item ID"`
}

type ItemStatsOutput struct {
	Body *domain.ItemStats
}

type ItemHistoryInput struct {
	ID uuid.UUID `path:"id" doc:"Item ID"`
}

type ItemHistoryOutput struct {
	Body []*domain.AuditEntry
}

func RegisterItemRoutes(api huma.API, svc LifecycleService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-item",
		Method:      http.MethodPost,
		Path:        "/items",
		Summary:     "Report a lost or found item",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error) {
		actor, ok := middleware.ActorFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		in := lifecycle.CreateInput{
			Title:        input.Body.Title,
			Description:  input.Body.Description,
			Location:     input.Body.Location,
			ContactPhone: input.Body.ContactPhone,
			LostReport:   input.Body.LostReport,
		}
		if input.Body.Category != "" {
			category, err := domain.ParseItemCategory(input.Body.Category)
			if err != nil {
				return nil, huma.Error400BadRequest("unknown category: " + input.Body.Category)
			}
			in.Category = category
		}

		item, err := svc.Create(ctx, in, actor)
		if err != nil {
			return nil, itemError(err, "failed to create item")
		}

		return &CreateItemOutput{Body: item}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-items",
		Method:      http.MethodGet,
		Path:        "/items",
		Summary:     "List items",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
		filter := domain.ItemFilter{
			Location: input.Location,
			Search:   input.Search,
		}
		if input.Category != "" {
			category, err := domain.ParseItemCategory(input.Category)
			if err != nil {
				return nil, huma.Error400BadRequest("unknown category: " + input.Category)
			}
			filter.Category = category
		}
		if input.Status != "" {
			status, err := domain.ParseItemStatus(input.Status)
			if err != nil {
				return nil, huma.Error400BadRequest("unknown status: " + input.Status)
			}
			filter.Status = status
		}

		items, err := svc.List(ctx, filter)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list items", err)
		}

		return &ListItemsOutput{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-item-stats",
		Method:      http.MethodGet,
		Path:        "/items/stats",
		Summary:     "Aggregate item counts by status",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, _ *struct{}) (*ItemStatsOutput, error) {
		stats, err := svc.Stats(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to compute stats", err)
		}

		return &ItemStatsOutput{Body: stats}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-item",
		Method:      http.MethodGet,
		Path:        "/items/{id}",
		Summary:     "Get an item by ID",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, input *GetItemInput) (*GetItemOutput, error) {
		item, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, itemError(err, "failed to get item")
		}

		return &GetItemOutput{Body: item}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-item",
		Method:      http.MethodPatch,
		Path:        "/items/{id}",
		Summary:     "Update item fields or status",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, input *UpdateItemInput) (*UpdateItemOutput, error) {
		actor, ok := middleware.ActorFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		patch := domain.ItemPatch{
			Title:        input.Body.Title,
			Description:  input.Body.Description,
			Location:     input.Body.Location,
			ContactPhone: input.Body.ContactPhone,
		}
		if input.Body.Category != nil {
			category, err := domain.ParseItemCategory(*input.Body.Category)
			if err != nil {
				return nil, huma.Error400BadRequest("unknown category: " + *input.Body.Category)
			}
			patch.Category = &category
		}
		if input.Body.Status != nil {
			status, err := domain.ParseItemStatus(*input.Body.Status)
			if err != nil {
				return nil, huma.Error400BadRequest("unknown status: " + *input.Body.Status)
			}
			patch.Status = &status
		}

		item, err := svc.UpdateFields(ctx, input.ID, patch, actor)
		if err != nil {
			return nil, itemError(err, "failed to update item")
		}

		return &UpdateItemOutput{Body: item}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-item",
		Method:      http.MethodDelete,
		Path:        "/items/{id}",
		Summary:     "Delete a resolved item",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, input *DeleteItemInput) (*struct{}, error) {
		actor, ok := middleware.ActorFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		if err := svc.Delete(ctx, input.ID, actor); err != nil {
			return nil, itemError(err, "failed to delete item")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-item-history",
		Method:      http.MethodGet,
		Path:        "/items/{id}/history",
		Summary:     "Get the audit trail for an item",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, input *ItemHistoryInput) (*ItemHistoryOutput, error) {
		entries, err := svc.History(ctx, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to get item history", err)
		}

		return &ItemHistoryOutput{Body: entries}, nil
	})
}

// itemError maps lifecycle engine errors to HTTP status errors. The typed
// errors carry detail the client needs: the conflicting item ID for duplicate
// reports, the from/to pair for a rejected transition.
func itemError(err error, fallback string) error {
	var (
		validationErr *domain.ValidationError
		conflictErr   *domain.ConflictError
		transitionErr *domain.TransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		return huma.Error400BadRequest(validationErr.Error())
	case errors.As(err, &conflictErr):
		return huma.Error409Conflict("duplicate report: conflicts with item " + conflictErr.ExistingID.String())
	case errors.As(err, &transitionErr):
		return huma.Error409Conflict(transitionErr.Error())
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound("item not found")
	case errors.Is(err, domain.ErrUnauthorized):
		return huma.Error403Forbidden("not the owner of this item")
	default:
		return huma.Error500InternalServerError(fallback, err)
	}
}
