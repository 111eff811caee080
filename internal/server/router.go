package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	"github.com/fieldcheck/fieldcheck-backend/internal/handlers"
	"github.com/fieldcheck/fieldcheck-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	ChecklistHandler  *handlers.ChecklistHandler
	InspectionHandler *handlers.InspectionHandler
	LeadHandler       *handlers.LeadHandler
	AllowedOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	manageOnly := cfg.AuthMiddleware.RequireRole(domain.RoleAdmin, domain.RoleDispatcher)
	adminOnly := cfg.AuthMiddleware.RequireRole(domain.RoleAdmin)

	// User
	api.GET("/user", cfg.UserHandler.GetMe)
	api.GET("/users", manageOnly, cfg.UserHandler.ListCompanyUsers)

	// Checklist
	checklist := api.Group("/checklist")
	{
		checklist.GET("/template", cfg.ChecklistHandler.GetTemplate)
		checklist.GET("/responses", cfg.ChecklistHandler.GetResponses)
		checklist.POST("/responses", cfg.ChecklistHandler.SaveResponses)
		checklist.POST("/files", cfg.ChecklistHandler.UploadFile)
		checklist.GET("/files", cfg.ChecklistHandler.ListFiles)
		checklist.DELETE("/files/:id", cfg.ChecklistHandler.DeleteFile)
		checklist.POST("/validate", cfg.ChecklistHandler.Validate)
	}
	api.POST("/admin/checklist/init", adminOnly, cfg.ChecklistHandler.InitDefaultTemplate)

	// Inspections
	inspections := api.Group("/inspections")
	{
		inspections.POST("", manageOnly, cfg.InspectionHandler.Create)
		inspections.GET("", cfg.InspectionHandler.List)
		inspections.GET("/:id", cfg.InspectionHandler.Get)
		inspections.POST("/:id/start", cfg.InspectionHandler.Start)
		inspections.POST("/:id/submit", cfg.InspectionHandler.Submit)
		inspections.POST("/:id/review", adminOnly, cfg.InspectionHandler.Review)
		inspections.POST("/:id/assign-template", manageOnly, cfg.InspectionHandler.AssignTemplate)
	}

	// Leads
	leads := api.Group("/leads")
	{
		leads.POST("", cfg.LeadHandler.Create)
		leads.GET("", cfg.LeadHandler.List)
		leads.GET("/:id", cfg.LeadHandler.Get)
		leads.DELETE("/:id", manageOnly, cfg.LeadHandler.Delete)
	}

	return router
}
