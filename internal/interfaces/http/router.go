package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inspectos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName  string
	AuthUC       AuthService
	OverviewUC   OverviewService
	AgencyUC     AgencyService
	AgentUC      AgentService
	ScrubUC      ScrubService
	HealthChecks map[string]HealthCheck
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(MetricsMiddleware())

	app.Get("/health", Health(deps.ServiceName, deps.HealthChecks))
	app.Get("/metrics", MetricsHandler())

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Panel de márgenes: sólo dueño y administradores
	overviewHandler := NewOverviewHandler(deps.OverviewUC)
	overview := protected.Group("/overview", RequireRole(entity.RoleOwner, entity.RoleAdmin))
	overview.Get("/", overviewHandler.Get)
	overview.Get("/report.pdf", overviewHandler.Report)

	// Agenda del día (todo el equipo)
	protected.Get("/orders/today", overviewHandler.Today)

	partnerHandler := NewPartnerHandler(deps.AgencyUC, deps.AgentUC, deps.ScrubUC)

	// Agencias
	agencies := protected.Group("/agencies")
	agencies.Post("/", partnerHandler.CreateAgency)
	agencies.Get("/", partnerHandler.ListAgencies)
	agencies.Get("/:id", partnerHandler.GetAgency)
	agencies.Put("/:id", partnerHandler.UpdateAgency)
	agencies.Post("/:id/scrub", partnerHandler.ScrubAgency)

	// Agentes (scrub antes de /:id para no capturarlo como id)
	agents := protected.Group("/agents")
	agents.Post("/scrub", partnerHandler.Scrub)
	agents.Post("/", partnerHandler.CreateAgent)
	agents.Get("/:id", partnerHandler.GetAgent)
	agents.Put("/:id", partnerHandler.UpdateAgent)
	agents.Post("/:id/scrub", partnerHandler.ScrubAgent)

	// Herramientas
	protected.Post("/tools/parse-address", ParseAddress)
}
