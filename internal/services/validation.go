package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/checklist"
	checklistrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/checklist"
	inspectionrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/inspections"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/apierr"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/requestdata"
)

type ValidationService interface {
	// Validate runs the submission gate without changing anything. The
	// same check guards Submit, so clients can surface problems early.
	Validate(ctx context.Context, inspectionID uuid.UUID) (*checklist.Result, error)
}

type validationService struct {
	db             *gorm.DB
	log            *logger.Logger
	templateRepo   checklistrepos.TemplateRepo
	responseRepo   checklistrepos.ResponseRepo
	fileRepo       checklistrepos.FileRepo
	inspectionRepo inspectionrepos.InspectionRepo
}

func NewValidationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	templateRepo checklistrepos.TemplateRepo,
	responseRepo checklistrepos.ResponseRepo,
	fileRepo checklistrepos.FileRepo,
	inspectionRepo inspectionrepos.InspectionRepo,
) ValidationService {
	return &validationService{
		db:             db,
		log:            baseLog.With("service", "ValidationService"),
		templateRepo:   templateRepo,
		responseRepo:   responseRepo,
		fileRepo:       fileRepo,
		inspectionRepo: inspectionRepo,
	}
}

func (s *validationService) Validate(ctx context.Context, inspectionID uuid.UUID) (*checklist.Result, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	inspection, err := s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "INSPECTION_NOT_FOUND", err)
		}
		return nil, err
	}
	if inspection.ChecklistTemplateVersionID == nil {
		return nil, apierr.New(http.StatusConflict, "NO_CHECKLIST_ASSIGNED", pkgerrors.ErrConflict)
	}

	result, err := s.run(ctx, rd.CompanyID, inspection)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// run gathers the three inputs of the gate concurrently and evaluates it.
func (s *validationService) run(ctx context.Context, companyID uuid.UUID, inspection *domain.Inspection) (*checklist.Result, error) {
	var (
		items     []domain.ChecklistItem
		responses []*domain.InspectionResponse
		files     []*domain.InspectionFile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.templateRepo.GetItemsByVersionID(dbctx.Context{Ctx: gctx}, companyID, *inspection.ChecklistTemplateVersionID)
		return err
	})
	g.Go(func() error {
		var err error
		responses, err = s.responseRepo.GetByInspectionID(dbctx.Context{Ctx: gctx}, companyID, inspection.ID)
		return err
	})
	g.Go(func() error {
		var err error
		files, err = s.fileRepo.GetByInspectionID(dbctx.Context{Ctx: gctx}, companyID, inspection.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byItem := make(map[uuid.UUID]checklist.Response, len(responses))
	for _, r := range responses {
		byItem[r.ChecklistItemID] = checklist.Response{
			Value: json.RawMessage(r.Value),
			Note:  r.Note,
		}
	}
	views := make([]checklist.File, 0, len(files))
	for _, f := range files {
		views = append(views, checklist.File{ChecklistItemID: f.ChecklistItemID})
	}

	result := checklist.Validate(items, byItem, views)
	return &result, nil
}
