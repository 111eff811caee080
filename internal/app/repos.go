package app

import (
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/accounts"
	checklistrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/checklist"
	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/crm"
	inspectionrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/inspections"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
)

type Repos struct {
	User       accounts.UserRepo
	Lead       crm.LeadRepo
	Site       crm.SiteRepo
	Template   checklistrepos.TemplateRepo
	Response   checklistrepos.ResponseRepo
	File       checklistrepos.FileRepo
	Inspection inspectionrepos.InspectionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       accounts.NewUserRepo(db, log),
		Lead:       crm.NewLeadRepo(db, log),
		Site:       crm.NewSiteRepo(db, log),
		Template:   checklistrepos.NewTemplateRepo(db, log),
		Response:   checklistrepos.NewResponseRepo(db, log),
		File:       checklistrepos.NewFileRepo(db, log),
		Inspection: inspectionrepos.NewInspectionRepo(db, log),
	}
}
