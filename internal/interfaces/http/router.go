package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/granitflow/granitflow-api/internal/application/analytics"
	"github.com/granitflow/granitflow-api/internal/application/auth"
	"github.com/granitflow/granitflow-api/internal/application/usecase"
	"github.com/granitflow/granitflow-api/internal/application/workflow"
	"github.com/granitflow/granitflow-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CustomerUC  *usecase.CustomerUseCase
	MaterialUC  *usecase.MaterialUseCase
	ProjectUC   *usecase.ProjectUseCase
	ScheduleUC  *usecase.ScheduleUseCase
	QuoteUC     *workflow.QuoteUseCase
	QuotePDFUC  *workflow.QuotePDFUseCase
	OrderUC     *workflow.OrderUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	authGroup = protected.Group("/auth")
	authGroup.Get("/me", authHandler.Me)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleEscritorio), customerHandler.Delete)

	// Materiais e estoque
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleEscritorio), materialHandler.Delete)
	materials.Post("/:id/movements", materialHandler.RegisterMovement)
	materials.Get("/:id/movements", materialHandler.ListMovements)

	// Projetos
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleEscritorio), projectHandler.Delete)
	projects.Post("/:id/materials", projectHandler.AddMaterial)
	projects.Delete("/:id/materials/:materialId", projectHandler.RemoveMaterial)

	// Orçamentos
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.QuotePDFUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleEscritorio), quoteHandler.Delete)
	quotes.Post("/:id/approve", RequireRole(entity.RoleAdmin, entity.RoleEscritorio), quoteHandler.Approve)
	quotes.Post("/:id/reject", RequireRole(entity.RoleAdmin, entity.RoleEscritorio), quoteHandler.Reject)
	quotes.Get("/:id/pdf", quoteHandler.ExportPDF)

	// Ordens de Serviço
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleEscritorio), orderHandler.Delete)
	orders.Post("/from-project/:projectId", RequireRole(entity.RoleAdmin, entity.RoleEscritorio), orderHandler.FromProject)
	orders.Post("/:id/approve", RequireRole(entity.RoleAdmin, entity.RoleEscritorio), orderHandler.Approve)

	// Agenda
	schedule := protected.Group("/schedule")
	scheduleHandler := NewScheduleHandler(deps.ScheduleUC)
	schedule.Post("/", scheduleHandler.Create)
	schedule.Get("/", scheduleHandler.List)
	schedule.Get("/:id", scheduleHandler.GetByID)
	schedule.Put("/:id", scheduleHandler.Update)
	schedule.Delete("/:id", scheduleHandler.Delete)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.GetStats)
}
