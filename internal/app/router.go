package app

import (
	"github.com/gin-gonic/gin"

	"github.com/fieldcheck/fieldcheck-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:    middleware.Auth,
		UserHandler:       handlers.User,
		ChecklistHandler:  handlers.Checklist,
		InspectionHandler: handlers.Inspection,
		LeadHandler:       handlers.Lead,
		AllowedOrigins:    cfg.AllowedOrigins,
	})
}
