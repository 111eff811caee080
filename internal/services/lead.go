package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/crm"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/apierr"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/requestdata"
)

type CreateLeadInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type LeadService interface {
	Create(ctx context.Context, input CreateLeadInput) (*domain.Lead, error)
	Get(ctx context.Context, leadID uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context) ([]*domain.Lead, error)
	Delete(ctx context.Context, leadID uuid.UUID) error
}

type leadService struct {
	db       *gorm.DB
	log      *logger.Logger
	leadRepo crm.LeadRepo
}

func NewLeadService(db *gorm.DB, baseLog *logger.Logger, leadRepo crm.LeadRepo) LeadService {
	return &leadService{
		db:       db,
		log:      baseLog.With("service", "LeadService"),
		leadRepo: leadRepo,
	}
}

func (s *leadService) Create(ctx context.Context, input CreateLeadInput) (*domain.Lead, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}
	if !rd.CanManage() {
		return nil, apierr.New(http.StatusForbidden, "MANAGER_ONLY", pkgerrors.ErrForbidden)
	}

	lead := &domain.Lead{
		CompanyID: rd.CompanyID,
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		Status:    domain.LeadStatusNew,
		Notes:     input.Notes,
	}
	created, err := s.leadRepo.Create(dbctx.Context{Ctx: ctx}, lead)
	if err != nil {
		return nil, err
	}
	s.log.Info("Created lead", "lead_id", created.ID)
	return created, nil
}

func (s *leadService) Get(ctx context.Context, leadID uuid.UUID) (*domain.Lead, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	lead, err := s.leadRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, leadID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "LEAD_NOT_FOUND", err)
		}
		return nil, err
	}
	return lead, nil
}

func (s *leadService) List(ctx context.Context) ([]*domain.Lead, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}
	return s.leadRepo.GetByCompanyID(dbctx.Context{Ctx: ctx}, rd.CompanyID)
}

func (s *leadService) Delete(ctx context.Context, leadID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}
	if !rd.CanManage() {
		return apierr.New(http.StatusForbidden, "MANAGER_ONLY", pkgerrors.ErrForbidden)
	}

	if err := s.leadRepo.DeleteByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, leadID); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return apierr.New(http.StatusNotFound, "LEAD_NOT_FOUND", err)
		}
		return err
	}
	return nil
}
