package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/costealo/ofertas-api/internal/application/auth"
	"github.com/costealo/ofertas-api/internal/application/oferta"
	"github.com/costealo/ofertas-api/internal/application/usecase"
	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CosteoUC   *usecase.CosteoUseCase
	PlanUC     *usecase.PlanUseCase
	OfertaUC   *oferta.QueryUseCase
	PDFUC      *oferta.PDFUseCase
	ActivateUC *oferta.ActivateUseCase
	Sessions   *oferta.SessionStore
	CosteoRepo repository.CosteoRepository
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Planes (público: la página de precios los consulta sin sesión)
	plans := api.Group("/plans")
	planHandler := NewPlanHandler(deps.PlanUC)
	plans.Get("/", planHandler.List)
	plans.Get("/:id", planHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuario autenticado
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)

	// Costeos (protegido)
	costeos := protected.Group("/costeos")
	costeoHandler := NewCosteoHandler(deps.CosteoUC)
	costeos.Post("/", costeoHandler.Create)
	costeos.Get("/", costeoHandler.List)
	costeos.Get("/:id", costeoHandler.GetByID)
	costeos.Put("/:id", costeoHandler.Update)
	costeos.Delete("/:id", costeoHandler.Delete)

	// Ofertas activadas (protegido)
	ofertas := protected.Group("/ofertas")
	ofertaHandler := NewOfertaHandler(deps.OfertaUC, deps.PDFUC)
	ofertas.Get("/export.xml", ofertaHandler.ExportXML)
	ofertas.Get("/", ofertaHandler.List)
	ofertas.Get("/:id", ofertaHandler.GetByID)
	ofertas.Get("/:id/pdf", ofertaHandler.PDF)
	ofertas.Delete("/:id", ofertaHandler.Delete)

	// Wizard de creación (protegido)
	wizard := protected.Group("/wizard")
	wizardHandler := NewWizardHandler(deps.Sessions, deps.CosteoRepo, deps.UserUC, deps.ActivateUC)
	wizard.Post("/", wizardHandler.Start)
	wizard.Get("/:sid", wizardHandler.State)
	wizard.Put("/:sid/estrategia", wizardHandler.SelectStrategy)
	wizard.Put("/:sid/costeo", wizardHandler.SelectCosteo)
	wizard.Put("/:sid/parametros", wizardHandler.UpdateParams)
	wizard.Post("/:sid/siguiente", wizardHandler.Next)
	wizard.Post("/:sid/atras", wizardHandler.Back)
	wizard.Post("/:sid/activar", wizardHandler.Activate)
	wizard.Delete("/:sid", wizardHandler.Cancel)

	// Administración (solo roles privilegiados)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin, entity.RoleSuperadmin))
	admin.Get("/users/:id/ofertas", ofertaHandler.ListForUser)
}
