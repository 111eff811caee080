package inspections

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
)

type InspectionRepo interface {
	Create(dbc dbctx.Context, inspection *domain.Inspection) (*domain.Inspection, error)
	GetByID(dbc dbctx.Context, companyID, inspectionID uuid.UUID) (*domain.Inspection, error)
	GetByCompanyID(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.Inspection, error)
	GetByAssignee(dbc dbctx.Context, companyID, userID uuid.UUID) ([]*domain.Inspection, error)
	// AssignTemplateVersion sets checklist_template_version_id only when it
	// is still null. Returns false when another writer got there first (or
	// the inspection is gone); the caller re-reads to pick up the winner.
	AssignTemplateVersion(dbc dbctx.Context, companyID, inspectionID, versionID uuid.UUID) (bool, error)
	// TransitionStatus is a compare-and-swap: the row is updated only while
	// its status is still one of the expected values. Zero rows affected
	// means the caller lost the race or the precondition no longer holds.
	TransitionStatus(dbc dbctx.Context, companyID, inspectionID uuid.UUID, from []domain.InspectionStatus, updates map[string]interface{}) (bool, error)
}

type inspectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInspectionRepo(db *gorm.DB, baseLog *logger.Logger) InspectionRepo {
	return &inspectionRepo{db: db, log: baseLog.With("repo", "InspectionRepo")}
}

func (r *inspectionRepo) Create(dbc dbctx.Context, inspection *domain.Inspection) (*domain.Inspection, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(dbc.Ctx).Create(inspection).Error; err != nil {
		return nil, err
	}
	return inspection, nil
}

func (r *inspectionRepo) GetByID(dbc dbctx.Context, companyID, inspectionID uuid.UUID) (*domain.Inspection, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var inspection domain.Inspection
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND company_id = ?", inspectionID, companyID).
		First(&inspection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &inspection, nil
}

func (r *inspectionRepo) GetByCompanyID(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.Inspection, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var inspections []*domain.Inspection
	if err := transaction.WithContext(dbc.Ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&inspections).Error; err != nil {
		return nil, err
	}
	return inspections, nil
}

func (r *inspectionRepo) GetByAssignee(dbc dbctx.Context, companyID, userID uuid.UUID) ([]*domain.Inspection, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var inspections []*domain.Inspection
	if err := transaction.WithContext(dbc.Ctx).
		Where("company_id = ? AND assigned_to = ?", companyID, userID).
		Order("created_at DESC").
		Find(&inspections).Error; err != nil {
		return nil, err
	}
	return inspections, nil
}

func (r *inspectionRepo) AssignTemplateVersion(dbc dbctx.Context, companyID, inspectionID, versionID uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Model(&domain.Inspection{}).
		Where("id = ? AND company_id = ? AND checklist_template_version_id IS NULL", inspectionID, companyID).
		Updates(map[string]interface{}{
			"checklist_template_version_id": versionID,
			"updated_at":                    time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *inspectionRepo) TransitionStatus(dbc dbctx.Context, companyID, inspectionID uuid.UUID, from []domain.InspectionStatus, updates map[string]interface{}) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now()

	res := transaction.WithContext(dbc.Ctx).
		Model(&domain.Inspection{}).
		Where("id = ? AND company_id = ? AND status IN ?", inspectionID, companyID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
