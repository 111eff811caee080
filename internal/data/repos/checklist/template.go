package checklist

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/checklist"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
)

type TemplateRepo interface {
	GetActiveVersion(dbc dbctx.Context, companyID uuid.UUID) (*domain.ChecklistTemplateVersion, error)
	GetVersionByID(dbc dbctx.Context, companyID, versionID uuid.UUID) (*domain.ChecklistTemplateVersion, error)
	GetItemsByVersionID(dbc dbctx.Context, companyID, versionID uuid.UUID) ([]domain.ChecklistItem, error)
	CreateTemplate(dbc dbctx.Context, template *domain.ChecklistTemplate) (*domain.ChecklistTemplate, error)
	DeleteTemplate(dbc dbctx.Context, companyID, templateID uuid.UUID) error
	CreateVersion(dbc dbctx.Context, version *domain.ChecklistTemplateVersion) (*domain.ChecklistTemplateVersion, error)
	CreateItems(dbc dbctx.Context, items []*domain.ChecklistItem) ([]*domain.ChecklistItem, error)
}

type templateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	return &templateRepo{db: db, log: baseLog.With("repo", "TemplateRepo")}
}

func (r *templateRepo) GetActiveVersion(dbc dbctx.Context, companyID uuid.UUID) (*domain.ChecklistTemplateVersion, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var version domain.ChecklistTemplateVersion
	if err := transaction.WithContext(dbc.Ctx).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("created_at DESC").
		First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.GetItemsByVersionID(dbc, companyID, version.ID)
	if err != nil {
		return nil, err
	}
	version.Items = items
	return &version, nil
}

func (r *templateRepo) GetVersionByID(dbc dbctx.Context, companyID, versionID uuid.UUID) (*domain.ChecklistTemplateVersion, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var version domain.ChecklistTemplateVersion
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND company_id = ?", versionID, companyID).
		First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.GetItemsByVersionID(dbc, companyID, version.ID)
	if err != nil {
		return nil, err
	}
	version.Items = items
	return &version, nil
}

// GetItemsByVersionID returns items in display order: section in the fixed
// enum order, then sort_order, insertion order breaking ties. The section
// ranking lives in Go, not SQL, so the fetch orders by sort_order only and
// the stable section sort happens after.
func (r *templateRepo) GetItemsByVersionID(dbc dbctx.Context, companyID, versionID uuid.UUID) ([]domain.ChecklistItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var items []domain.ChecklistItem
	if err := transaction.WithContext(dbc.Ctx).
		Where("template_version_id = ? AND company_id = ?", versionID, companyID).
		Order("sort_order ASC, created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	checklist.SortItems(items)
	return items, nil
}

func (r *templateRepo) CreateTemplate(dbc dbctx.Context, template *domain.ChecklistTemplate) (*domain.ChecklistTemplate, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(dbc.Ctx).Create(template).Error; err != nil {
		return nil, err
	}
	return template, nil
}

func (r *templateRepo) DeleteTemplate(dbc dbctx.Context, companyID, templateID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(dbc.Ctx).
		Where("id = ? AND company_id = ?", templateID, companyID).
		Delete(&domain.ChecklistTemplate{}).Error
}

func (r *templateRepo) CreateVersion(dbc dbctx.Context, version *domain.ChecklistTemplateVersion) (*domain.ChecklistTemplateVersion, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(dbc.Ctx).Create(version).Error; err != nil {
		return nil, err
	}
	return version, nil
}

func (r *templateRepo) CreateItems(dbc dbctx.Context, items []*domain.ChecklistItem) ([]*domain.ChecklistItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(items) == 0 {
		return []*domain.ChecklistItem{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
