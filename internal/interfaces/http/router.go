package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/presales-crm/pkg/jwt"
	"github.com/jhoicas/presales-crm/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      Authenticator
	LeadUC      LeadService
	References  ReferenceLister
	ProjectUC   ProjectService
	UserUC      UserService
	CallUC      CallService
	Tokens      *jwt.Manager
	Validator   *validator.Validator
	LoginLimit  *IPRateLimiter
	HealthCheck fiber.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.Tokens)

	if deps.HealthCheck != nil {
		api.Get("/health", deps.HealthCheck)
	}

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	login := []fiber.Handler{authHandler.Login}
	if deps.LoginLimit != nil {
		login = append([]fiber.Handler{deps.LoginLimit.Handler()}, login...)
	}
	api.Post("/login", login...)
	api.Get("/me", requireAuth, authHandler.Me)

	// Leads: lecturas y borrado públicos; alta y edición con token.
	// Las rutas de catálogos van antes de /:id.
	leadHandler := NewLeadHandler(deps.LeadUC, deps.References, deps.Validator)
	leads := api.Group("/leads")
	leads.Get("/employees", leadHandler.Employees)
	leads.Get("/sources", leadHandler.Sources)
	leads.Get("/statuses", leadHandler.Statuses)
	leads.Get("/projects", leadHandler.Projects)
	leads.Get("/", leadHandler.List)
	leads.Post("/", requireAuth, leadHandler.Create)
	leads.Get("/:id", leadHandler.GetByID)
	leads.Put("/:id", requireAuth, leadHandler.Update)
	leads.Delete("/:id", leadHandler.Delete)

	// Projects
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.Validator)
	projects := api.Group("/projects")
	projects.Get("/", projectHandler.List)
	projects.Post("/", requireAuth, projectHandler.Create)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", requireAuth, projectHandler.Update)
	projects.Put("/:id/status", requireAuth, projectHandler.UpdateStatus)

	// Users (empleados). El alta acepta token opcional para registrar al autor.
	userHandler := NewUserHandler(deps.UserUC, deps.Validator)
	users := api.Group("/users")
	users.Post("/register", OptionalAuth(deps.Tokens), userHandler.Register)
	users.Get("/", requireAuth, userHandler.List)
	users.Get("/:id", requireAuth, userHandler.GetByID)
	// editar empleados o cambiar su estado queda para admin y manager
	manageEmployees := RequireRole(RoleAdmin, RoleManager)
	users.Put("/:id", requireAuth, manageEmployees, userHandler.Update)
	users.Put("/:id/status", requireAuth, manageEmployees, userHandler.UpdateStatus)

	// Calls (protegido)
	callHandler := NewCallHandler(deps.CallUC, deps.Validator)
	calls := api.Group("/calls", requireAuth)
	calls.Post("/start", callHandler.Start)
	calls.Put("/:id/end", callHandler.End)
	calls.Get("/", callHandler.List)
}
