package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/accounts"
	checklistrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/checklist"
	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/crm"
	inspectionrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/inspections"
	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/testutil"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/requestdata"
)

// testEnv wires real repos and services over the shared test database.
// Tests seed their own company, so rows never collide across tests and no
// transaction rollback is needed.
type testEnv struct {
	db *gorm.DB

	userRepo       accounts.UserRepo
	templateRepo   checklistrepos.TemplateRepo
	responseRepo   checklistrepos.ResponseRepo
	fileRepo       checklistrepos.FileRepo
	inspectionRepo inspectionrepos.InspectionRepo
	siteRepo       crm.SiteRepo
	leadRepo       crm.LeadRepo

	template   TemplateService
	response   ResponseService
	validation ValidationService
	inspection InspectionService
	lead       LeadService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:             db,
		userRepo:       accounts.NewUserRepo(db, log),
		templateRepo:   checklistrepos.NewTemplateRepo(db, log),
		responseRepo:   checklistrepos.NewResponseRepo(db, log),
		fileRepo:       checklistrepos.NewFileRepo(db, log),
		inspectionRepo: inspectionrepos.NewInspectionRepo(db, log),
		siteRepo:       crm.NewSiteRepo(db, log),
		leadRepo:       crm.NewLeadRepo(db, log),
	}
	env.template = NewTemplateService(db, log, env.templateRepo)
	env.response = NewResponseService(db, log, env.responseRepo, env.templateRepo, env.inspectionRepo)
	env.validation = NewValidationService(db, log, env.templateRepo, env.responseRepo, env.fileRepo, env.inspectionRepo)
	env.inspection = NewInspectionService(db, log, env.inspectionRepo, env.templateRepo, env.siteRepo, env.validation)
	env.lead = NewLeadService(db, log, env.leadRepo)
	return env
}

func ctxAs(user *domain.User) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	})
}

func findItemByKey(t *testing.T, items []domain.ChecklistItem, key string) *domain.ChecklistItem {
	t.Helper()
	for i := range items {
		if items[i].ItemKey == key {
			return &items[i]
		}
	}
	t.Fatalf("item %q not found", key)
	return nil
}

func mustUUID(t *testing.T, id *uuid.UUID) uuid.UUID {
	t.Helper()
	if id == nil {
		t.Fatal("expected non-nil id")
	}
	return *id
}
