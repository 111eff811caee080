package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/checklist"
	checklistrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/checklist"
	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/crm"
	inspectionrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/inspections"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/apierr"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/requestdata"
)

type CreateInspectionInput struct {
	LeadID      *uuid.UUID `json:"lead_id"`
	SiteID      *uuid.UUID `json:"site_id"`
	AssignedTo  uuid.UUID  `json:"assigned_to" binding:"required"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Notes       string     `json:"notes"`
}

type InspectionService interface {
	Create(ctx context.Context, input CreateInspectionInput) (*domain.Inspection, error)
	// Get resolves the checklist assignment lazily: the first read of an
	// unassigned inspection pins the company's currently active version.
	Get(ctx context.Context, inspectionID uuid.UUID) (*domain.Inspection, error)
	List(ctx context.Context) ([]*domain.Inspection, error)
	Start(ctx context.Context, inspectionID uuid.UUID) (*domain.Inspection, error)
	// Submit runs the gate and, when it passes, moves the inspection to
	// submitted. A failed gate returns the result alongside the error.
	Submit(ctx context.Context, inspectionID uuid.UUID) (*domain.Inspection, *checklist.Result, error)
	Review(ctx context.Context, inspectionID uuid.UUID) (*domain.Inspection, error)
	AssignTemplate(ctx context.Context, inspectionID, versionID uuid.UUID) (*domain.Inspection, error)
}

type inspectionService struct {
	db             *gorm.DB
	log            *logger.Logger
	inspectionRepo inspectionrepos.InspectionRepo
	templateRepo   checklistrepos.TemplateRepo
	siteRepo       crm.SiteRepo
	validation     ValidationService
}

func NewInspectionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	inspectionRepo inspectionrepos.InspectionRepo,
	templateRepo checklistrepos.TemplateRepo,
	siteRepo crm.SiteRepo,
	validation ValidationService,
) InspectionService {
	return &inspectionService{
		db:             db,
		log:            baseLog.With("service", "InspectionService"),
		inspectionRepo: inspectionRepo,
		templateRepo:   templateRepo,
		siteRepo:       siteRepo,
		validation:     validation,
	}
}

func (s *inspectionService) Create(ctx context.Context, input CreateInspectionInput) (*domain.Inspection, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}
	if !rd.CanManage() {
		return nil, apierr.New(http.StatusForbidden, "MANAGER_ONLY", pkgerrors.ErrForbidden)
	}

	inspection := &domain.Inspection{
		CompanyID:   rd.CompanyID,
		LeadID:      input.LeadID,
		SiteID:      input.SiteID,
		ScheduledAt: input.ScheduledAt,
		Status:      domain.InspectionStatusOpen,
		AssignedTo:  input.AssignedTo,
		Notes:       input.Notes,
	}

	if input.SiteID != nil {
		site, err := s.siteRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, *input.SiteID)
		if err != nil {
			if errors.Is(err, pkgerrors.ErrNotFound) {
				return nil, apierr.New(http.StatusBadRequest, "SITE_NOT_FOUND", err)
			}
			return nil, err
		}
		inspection.SiteNameSnapshot = site.Name
		inspection.SiteAddressSnapshot = siteAddress(site)
	}

	// Pin the active checklist up front when one exists; otherwise the
	// first Get resolves it.
	if version, err := s.templateRepo.GetActiveVersion(dbctx.Context{Ctx: ctx}, rd.CompanyID); err == nil {
		inspection.ChecklistTemplateVersionID = &version.ID
	} else if !errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, err
	}

	created, err := s.inspectionRepo.Create(dbctx.Context{Ctx: ctx}, inspection)
	if err != nil {
		return nil, err
	}
	s.log.Info("Created inspection", "inspection_id", created.ID, "assigned_to", created.AssignedTo)
	return created, nil
}

func (s *inspectionService) Get(ctx context.Context, inspectionID uuid.UUID) (*domain.Inspection, error) {
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
	if !rd.CanManage() && inspection.AssignedTo != rd.UserID {
		return nil, apierr.New(http.StatusNotFound, "INSPECTION_NOT_FOUND", pkgerrors.ErrNotFound)
	}

	return s.ensureTemplateAssigned(ctx, rd.CompanyID, inspection)
}

func (s *inspectionService) List(ctx context.Context) ([]*domain.Inspection, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	if rd.CanManage() {
		return s.inspectionRepo.GetByCompanyID(dbctx.Context{Ctx: ctx}, rd.CompanyID)
	}
	return s.inspectionRepo.GetByAssignee(dbctx.Context{Ctx: ctx}, rd.CompanyID, rd.UserID)
}

func (s *inspectionService) Start(ctx context.Context, inspectionID uuid.UUID) (*domain.Inspection, error) {
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
	if !checklist.CanEdit(inspection, rd.UserID, rd.Role) {
		return nil, apierr.New(http.StatusForbidden, "INSPECTION_LOCKED", pkgerrors.ErrForbidden)
	}
	if inspection.Status == domain.InspectionStatusInProgress {
		return inspection, nil
	}

	ok, err := s.inspectionRepo.TransitionStatus(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspection.ID,
		[]domain.InspectionStatus{domain.InspectionStatusOpen},
		map[string]interface{}{"status": domain.InspectionStatusInProgress},
	)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierr.New(http.StatusConflict, "INVALID_STATUS_TRANSITION", pkgerrors.ErrConflict)
	}
	return s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspection.ID)
}

func (s *inspectionService) Submit(ctx context.Context, inspectionID uuid.UUID) (*domain.Inspection, *checklist.Result, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	inspection, err := s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, nil, apierr.New(http.StatusNotFound, "INSPECTION_NOT_FOUND", err)
		}
		return nil, nil, err
	}
	if !checklist.CanSubmit(inspection, rd.UserID, rd.Role) {
		return nil, nil, apierr.New(http.StatusForbidden, "SUBMIT_NOT_ALLOWED", pkgerrors.ErrForbidden)
	}
	if inspection.ChecklistTemplateVersionID == nil {
		return nil, nil, apierr.New(http.StatusConflict, "NO_CHECKLIST_ASSIGNED", pkgerrors.ErrConflict)
	}

	result, err := s.validation.Validate(ctx, inspection.ID)
	if err != nil {
		return nil, nil, err
	}
	if !result.Valid {
		return nil, result, apierr.New(http.StatusBadRequest, "VALIDATION_FAILED", pkgerrors.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	ok, err := s.inspectionRepo.TransitionStatus(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspection.ID,
		[]domain.InspectionStatus{domain.InspectionStatusOpen, domain.InspectionStatusInProgress},
		map[string]interface{}{
			"status":       domain.InspectionStatusSubmitted,
			"submitted_by": rd.UserID,
			"submitted_at": now,
		},
	)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, apierr.New(http.StatusConflict, "ALREADY_SUBMITTED", pkgerrors.ErrConflict)
	}

	s.log.Info("Submitted inspection", "inspection_id", inspection.ID, "submitted_by", rd.UserID)
	updated, err := s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspection.ID)
	if err != nil {
		return nil, nil, err
	}
	return updated, result, nil
}

func (s *inspectionService) Review(ctx context.Context, inspectionID uuid.UUID) (*domain.Inspection, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}
	if !rd.IsAdmin() {
		return nil, apierr.New(http.StatusForbidden, "ADMIN_ONLY", pkgerrors.ErrForbidden)
	}

	ok, err := s.inspectionRepo.TransitionStatus(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID,
		[]domain.InspectionStatus{domain.InspectionStatusSubmitted},
		map[string]interface{}{"status": domain.InspectionStatusReviewed},
	)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, getErr := s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID); errors.Is(getErr, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "INSPECTION_NOT_FOUND", getErr)
		}
		return nil, apierr.New(http.StatusConflict, "INVALID_STATUS_TRANSITION", pkgerrors.ErrConflict)
	}
	return s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID)
}

func (s *inspectionService) AssignTemplate(ctx context.Context, inspectionID, versionID uuid.UUID) (*domain.Inspection, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}
	if !rd.CanManage() {
		return nil, apierr.New(http.StatusForbidden, "MANAGER_ONLY", pkgerrors.ErrForbidden)
	}

	if _, err := s.templateRepo.GetVersionByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, versionID); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusBadRequest, "CHECKLIST_VERSION_NOT_FOUND", err)
		}
		return nil, err
	}

	assigned, err := s.inspectionRepo.AssignTemplateVersion(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID, versionID)
	if err != nil {
		return nil, err
	}

	inspection, err := s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "INSPECTION_NOT_FOUND", err)
		}
		return nil, err
	}
	if !assigned {
		// Assignment is set-once. Re-requesting the version that already
		// won is a no-op; anything else is a conflict.
		if inspection.ChecklistTemplateVersionID == nil || *inspection.ChecklistTemplateVersionID != versionID {
			return nil, apierr.New(http.StatusConflict, "CHECKLIST_ALREADY_ASSIGNED", pkgerrors.ErrConflict)
		}
	}
	return inspection, nil
}

// ensureTemplateAssigned pins the active checklist version the first time
// an unassigned inspection is read. Losing the race is fine; the winner's
// version is picked up on re-read.
func (s *inspectionService) ensureTemplateAssigned(ctx context.Context, companyID uuid.UUID, inspection *domain.Inspection) (*domain.Inspection, error) {
	if inspection.ChecklistTemplateVersionID != nil {
		return inspection, nil
	}

	version, err := s.templateRepo.GetActiveVersion(dbctx.Context{Ctx: ctx}, companyID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return inspection, nil
		}
		return nil, err
	}

	won, err := s.inspectionRepo.AssignTemplateVersion(dbctx.Context{Ctx: ctx}, companyID, inspection.ID, version.ID)
	if err != nil {
		return nil, err
	}
	if !won {
		s.log.Debug("Lost template assignment race", "inspection_id", inspection.ID)
	}
	return s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, companyID, inspection.ID)
}

func siteAddress(site *domain.Site) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{site.AddressLine1, site.AddressLine2, site.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
