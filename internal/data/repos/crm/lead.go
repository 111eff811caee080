package crm

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
)

type LeadRepo interface {
	Create(dbc dbctx.Context, lead *domain.Lead) (*domain.Lead, error)
	GetByID(dbc dbctx.Context, companyID, leadID uuid.UUID) (*domain.Lead, error)
	GetByCompanyID(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.Lead, error)
	DeleteByID(dbc dbctx.Context, companyID, leadID uuid.UUID) error
}

type leadRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeadRepo(db *gorm.DB, baseLog *logger.Logger) LeadRepo {
	return &leadRepo{db: db, log: baseLog.With("repo", "LeadRepo")}
}

func (r *leadRepo) Create(dbc dbctx.Context, lead *domain.Lead) (*domain.Lead, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(dbc.Ctx).Create(lead).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *leadRepo) GetByID(dbc dbctx.Context, companyID, leadID uuid.UUID) (*domain.Lead, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var lead domain.Lead
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND company_id = ?", leadID, companyID).
		First(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepo) GetByCompanyID(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.Lead, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var leads []*domain.Lead
	if err := transaction.WithContext(dbc.Ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *leadRepo) DeleteByID(dbc dbctx.Context, companyID, leadID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND company_id = ?", leadID, companyID).
		Delete(&domain.Lead{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
