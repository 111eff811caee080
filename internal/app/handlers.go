package app

import (
	"github.com/fieldcheck/fieldcheck-backend/internal/handlers"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
)

type Handlers struct {
	User       *handlers.UserHandler
	Checklist  *handlers.ChecklistHandler
	Inspection *handlers.InspectionHandler
	Lead       *handlers.LeadHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		User:       handlers.NewUserHandler(services.User),
		Checklist:  handlers.NewChecklistHandler(services.Template, services.Response, services.File, services.Validation),
		Inspection: handlers.NewInspectionHandler(services.Inspection),
		Lead:       handlers.NewLeadHandler(services.Lead),
	}
}
