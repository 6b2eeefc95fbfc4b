package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lu-nia/lostfound/internal/domain"
)

type AddRegisteredStudentInput struct {
	Body struct {
		StudentNumber string `json:"student_number" minLength:"1" maxLength:"32" doc:"Campus student number"`
		Name          string `json:"name" minLength:"1" maxLength:"255" doc:"Student name"`
		Email         string `json:"email,omitempty" maxLength:"255" doc:"Student email"`
	}
}

type AddRegisteredStudentOutput struct {
	Body *domain.RegisteredStudent
}

// RegisterAdminRoutes registers admin-only endpoints. The router mounts them
// behind the RequireAdmin middleware.
func RegisterAdminRoutes(api huma.API, students StudentDirectory) {
	huma.Register(api, huma.Operation{
		OperationID: "add-registered-student",
		Method:      http.MethodPost,
		Path:        "/admin/registered-students",
		Summary:     "Add a student number to the sign-up allow-list",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *AddRegisteredStudentInput) (*AddRegisteredStudentOutput, error) {
		student := &domain.RegisteredStudent{
			StudentNumber: input.Body.StudentNumber,
			Name:          input.Body.Name,
			Email:         input.Body.Email,
		}

		if err := students.Add(ctx, student); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("student number already registered")
			}
			return nil, huma.Error500InternalServerError("failed to register student", err)
		}

		return &AddRegisteredStudentOutput{Body: student}, nil
	})
}
