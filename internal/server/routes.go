package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/lu-nia/lostfound/internal/api/v1"
	"github.com/lu-nia/lostfound/internal/auth"
	"github.com/lu-nia/lostfound/internal/lifecycle"
	"github.com/lu-nia/lostfound/internal/store/postgres"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, items *lifecycle.Service, authSvc *auth.Service) {
	v1.RegisterItemRoutes(api, items)
	v1.RegisterAccountRoutes(api, authSvc)
}

func registerAdminRoutes(api huma.API, store *postgres.Store) {
	v1.RegisterAdminRoutes(api, store.Students())
}
