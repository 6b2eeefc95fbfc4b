package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lu-nia/lostfound/internal/auth"
	"github.com/lu-nia/lostfound/internal/domain"
	"github.com/lu-nia/lostfound/internal/server/middleware"
)

type RegisterInput struct {
	Body struct {
		StudentNumber string `json:"student_number" minLength:"1" maxLength:"32" doc:"Campus student number"`
		Password      string `json:"password" minLength:"8" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
		Name          string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Email         string `json:"email" minLength:"3" maxLength:"255" doc:"Email address"`
	}
}

type RegisterOutput struct {
	Body struct {
		User *domain.User `json:"user"`
	}
}

type LoginInput struct {
	Body struct {
		StudentNumber string `json:"student_number" minLength:"1" maxLength:"32" doc:"Campus student number"`
		Password      string `json:"password" minLength:"1" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
	}
}

type LoginOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
	}
}

type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" minLength:"1" doc:"Refresh token"` //nolint:gosec // G117: token refresh DTO
	}
}

type RefreshOutput struct {
	Body struct {
		AccessToken string `json:"access_token"` //nolint:gosec // G117: auth response DTO
	}
}

type MeOutput struct {
	Body *domain.User
}

type ChangePasswordInput struct {
	Body struct {
		CurrentPassword string `json:"current_password" minLength:"1" maxLength:"128" doc:"Current password"` //nolint:gosec // G117: credential DTO
		NewPassword     string `json:"new_password" minLength:"8" maxLength:"128" doc:"New password"`         //nolint:gosec // G117: credential DTO
	}
}

// RegisterAuthRoutes registers the unauthenticated auth endpoints.
// Sign-up is restricted to student numbers on the campus allow-list.
func RegisterAuthRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/auth/register",
		Summary:     "Register a new student account",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
		user, err := authSvc.Register(ctx, input.Body.StudentNumber, input.Body.Password, input.Body.Name, input.Body.Email)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrStudentNotRegistered):
				return nil, huma.Error403Forbidden("student number is not registered with the campus")
			case errors.Is(err, auth.ErrUserAlreadyExists), errors.Is(err, domain.ErrConflict):
				return nil, huma.Error409Conflict("account already exists for this student number")
			default:
				return nil, huma.Error500InternalServerError("failed to register", err)
			}
		}

		out := &RegisterOutput{}
		out.Body.User = user
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with student number and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		accessToken, refreshToken, err := authSvc.Login(ctx, input.Body.StudentNumber, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, huma.Error401Unauthorized("invalid student number or password")
			}
			return nil, huma.Error500InternalServerError("login failed", err)
		}

		out := &LoginOutput{}
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Refresh access token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
		accessToken, err := authSvc.RefreshToken(ctx, input.Body.RefreshToken)
		if err != nil {
			return nil, huma.Error401Unauthorized("invalid or expired refresh token")
		}

		out := &RefreshOutput{}
		out.Body.AccessToken = accessToken
		return out, nil
	})
}

// RegisterAccountRoutes registers the authenticated account endpoints.
func RegisterAccountRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-me",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Get the authenticated user",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, _ *struct{}) (*MeOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		user, err := authSvc.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to get user", err)
		}

		return &MeOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "change-password",
		Method:      http.MethodPost,
		Path:        "/auth/password",
		Summary:     "Change the authenticated user's password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *ChangePasswordInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		err := authSvc.ChangePassword(ctx, userID, input.Body.CurrentPassword, input.Body.NewPassword)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, huma.Error401Unauthorized("current password is incorrect")
			}
			return nil, huma.Error500InternalServerError("failed to change password", err)
		}

		return nil, nil
	})
}
