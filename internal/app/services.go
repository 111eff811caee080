package app

import (
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/platform/gcp"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
	"github.com/fieldcheck/fieldcheck-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Template   services.TemplateService
	Response   services.ResponseService
	File       services.FileService
	Validation services.ValidationService
	Inspection services.InspectionService
	Lead       services.LeadService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, bucket gcp.BucketService) Services {
	log.Info("Wiring services...")

	validation := services.NewValidationService(db, log, repos.Template, repos.Response, repos.File, repos.Inspection)

	return Services{
		Auth:       services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey),
		User:       services.NewUserService(db, log, repos.User),
		Template:   services.NewTemplateService(db, log, repos.Template),
		Response:   services.NewResponseService(db, log, repos.Response, repos.Template, repos.Inspection),
		File:       services.NewFileService(db, log, repos.File, repos.Inspection, bucket),
		Validation: validation,
		Inspection: services.NewInspectionService(db, log, repos.Inspection, repos.Template, repos.Site, validation),
		Lead:       services.NewLeadService(db, log, repos.Lead),
	}
}
