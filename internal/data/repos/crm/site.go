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

type SiteRepo interface {
	GetByID(dbc dbctx.Context, companyID, siteID uuid.UUID) (*domain.Site, error)
	GetByCompanyID(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.Site, error)
}

type siteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSiteRepo(db *gorm.DB, baseLog *logger.Logger) SiteRepo {
	return &siteRepo{db: db, log: baseLog.With("repo", "SiteRepo")}
}

func (r *siteRepo) GetByID(dbc dbctx.Context, companyID, siteID uuid.UUID) (*domain.Site, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var site domain.Site
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND company_id = ?", siteID, companyID).
		First(&site).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &site, nil
}

func (r *siteRepo) GetByCompanyID(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.Site, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var sites []*domain.Site
	if err := transaction.WithContext(dbc.Ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}
