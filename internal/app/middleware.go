package app

import (
	"github.com/fieldcheck/fieldcheck-backend/internal/middleware"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, services.Auth),
	}
}
