package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	"github.com/BruksfildServices01/service-desk/internal/config"
	"github.com/BruksfildServices01/service-desk/internal/dto"
	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/handlers"
	infraRepo "github.com/BruksfildServices01/service-desk/internal/infra/repository"
	"github.com/BruksfildServices01/service-desk/internal/middleware"
	"github.com/BruksfildServices01/service-desk/internal/storage"
	"github.com/BruksfildServices01/service-desk/internal/timezone"
	ucServiceOrder "github.com/BruksfildServices01/service-desk/internal/usecase/serviceorder"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

// Deps reúne o que o main constrói uma vez por processo.
type Deps struct {
	Config    *config.Config
	Workspace *workspace.Workspace
	Business  *infraRepo.BusinessGormRepository
	Storage   storage.Provider
	Audit     *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	cfg := d.Config
	locale := format.ParseLocale(cfg.BusinessLocale)
	display := dto.Display{
		Locale:   locale,
		Location: timezone.Location(cfg.BusinessTimezone),
	}

	exporter := ucServiceOrder.NewExport(d.Workspace, d.Business, cfg.BusinessTimezone, locale)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Business, cfg)
	meHandler := handlers.NewMeHandler(d.Business)
	businessHandler := handlers.NewBusinessHandler(d.Business)

	clientHandler := handlers.NewClientHandler(d.Workspace, d.Audit, display)
	appointmentHandler := handlers.NewAppointmentHandler(d.Workspace, d.Audit, display)
	serviceOrderHandler := handlers.NewServiceOrderHandler(d.Workspace, d.Storage, d.Audit, exporter, display)
	catalogHandler := handlers.NewCatalogHandler(d.Workspace, d.Audit)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.Business)
	eventsHandler := handlers.NewEventsHandler(d.Workspace.Feed)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/business", businessHandler.Get)
			secured.PATCH("/me/business", businessHandler.Update)

			secured.GET("/me/events", eventsHandler.Stream)
			secured.GET("/me/status-colors", handlers.StatusColors)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/suggest", clientHandler.Suggest)
			secured.GET("/me/clients/:id", clientHandler.Get)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.PATCH("/me/clients/:id/toggle-status", clientHandler.ToggleStatus)
			secured.DELETE("/me/clients/:id", clientHandler.Delete)

			// ------------------------------
			// CATALOG
			// ------------------------------
			secured.GET("/me/services", catalogHandler.List)
			secured.POST("/me/services", catalogHandler.Create)
			secured.PATCH("/me/services/:id", catalogHandler.Update)
			secured.DELETE("/me/services/:id", catalogHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.List)
			secured.GET("/me/appointments/services", appointmentHandler.SuggestServices)
			secured.GET("/me/appointments/:id", appointmentHandler.Get)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// SERVICE ORDERS
			// ------------------------------
			secured.GET("/me/service-orders", serviceOrderHandler.List)
			secured.GET("/me/service-orders/export.xlsx", serviceOrderHandler.ExportXlsx)
			secured.POST("/me/service-orders/reconcile", serviceOrderHandler.Reconcile)
			secured.GET("/me/service-orders/:id", serviceOrderHandler.Get)
			secured.POST("/me/service-orders", serviceOrderHandler.Create)
			secured.PATCH("/me/service-orders/:id", serviceOrderHandler.Update)
			secured.DELETE("/me/service-orders/:id", serviceOrderHandler.Delete)

			secured.POST("/me/service-orders/:id/items", serviceOrderHandler.AddItem)
			secured.PUT("/me/service-orders/:id/items/:itemId", serviceOrderHandler.EditItem)
			secured.DELETE("/me/service-orders/:id/items/:itemId", serviceOrderHandler.RemoveItem)

			secured.POST("/me/service-orders/:id/attachment", serviceOrderHandler.UploadAttachment)
			secured.GET("/me/service-orders/:id/attachment", serviceOrderHandler.DownloadAttachment)
			secured.DELETE("/me/service-orders/:id/attachment", serviceOrderHandler.RemoveAttachment)

			secured.GET("/me/service-orders/:id/export.docx", serviceOrderHandler.ExportDocx)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
