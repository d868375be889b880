package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/interfaces/httperr"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Countries  Resource[dto.CountryRequest, dto.CountryResponse]
	Genders    Resource[dto.CatalogRequest, dto.CatalogResponse]
	Titles     Resource[dto.CatalogRequest, dto.CatalogResponse]
	IdTypes    Resource[dto.CatalogRequest, dto.CatalogResponse]
	Persons    Resource[dto.PersonRequest, dto.PersonResponse]
	Users      Resource[dto.UserRequest, dto.UserResponse]
	Roles      RoleLister
	AuthUC     Authenticator
	Translator *httperr.Translator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Translator)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token); las escrituras además requieren ADMIN.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	NewResourceHandler(deps.Countries, deps.Translator).mount(protected.Group("/countries"), admin)
	NewResourceHandler(deps.Genders, deps.Translator).mount(protected.Group("/genders"), admin)
	NewResourceHandler(deps.Titles, deps.Translator).mount(protected.Group("/titles"), admin)
	NewResourceHandler(deps.IdTypes, deps.Translator).mount(protected.Group("/id-types"), admin)
	NewResourceHandler(deps.Persons, deps.Translator).mount(protected.Group("/persons"), admin)
	NewResourceHandler(deps.Users, deps.Translator).mount(protected.Group("/users"), admin)

	lookup := NewLookupHandler(deps.Roles, deps.Translator)
	protected.Get("/roles", lookup.Roles)
	protected.Get("/id-numbers/:number", lookup.IdNumber)
}
