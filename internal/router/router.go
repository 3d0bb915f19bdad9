package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/internal/middleware"
	"gstbill/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	logger *zap.Logger,
	verifier service.TokenVerifier,
	healthH *handler.HealthHandler,
	billH *handler.BillHandler,
	gstH *handler.GSTHandler,
	fieldH *handler.FieldHandler,
	entityFieldH *handler.EntityFieldHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public reference data
	gstRoutes := v1.Group("/gst")
	gstRoutes.GET("/states", gstH.ListStates)
	gstRoutes.GET("/states/:code", gstH.GetState)
	gstRoutes.GET("/gstin/:gstin", gstH.ValidateGSTIN)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(verifier))

	bills := protected.Group("/bills")
	bills.POST("/calculate", billH.Calculate)
	bills.POST("/export", billH.Export)

	entities := protected.Group("/entities/:type/:id/fields")
	entities.GET("", entityFieldH.List)
	entities.PUT("", entityFieldH.SetMany)
	entities.GET("/:name", entityFieldH.Get)
	entities.PUT("/:name", entityFieldH.Set)
	entities.DELETE("/:name", entityFieldH.Clear)

	// Admin routes - field definitions
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	fields := admin.Group("/fields")
	fields.GET("", fieldH.List)
	fields.POST("", fieldH.Create)
	fields.POST("/reorder", fieldH.Reorder)
	fields.POST("/migrate-legacy", fieldH.MigrateLegacy)
	fields.GET("/:id", fieldH.Get)
	fields.PUT("/:id", fieldH.Update)
	fields.DELETE("/:id", fieldH.Delete)
	fields.POST("/:id/toggle", fieldH.Toggle)
	fields.GET("/:id/history", fieldH.History)

	return r
}
