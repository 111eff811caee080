package checklist

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
)

type ResponseRepo interface {
	Upsert(dbc dbctx.Context, responses []*domain.InspectionResponse) error
	GetByInspectionID(dbc dbctx.Context, companyID, inspectionID uuid.UUID) ([]*domain.InspectionResponse, error)
	DeleteByItemIDs(dbc dbctx.Context, companyID, inspectionID uuid.UUID, itemIDs []uuid.UUID) error
}

type responseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	return &responseRepo{db: db, log: baseLog.With("repo", "ResponseRepo")}
}

// Upsert writes responses idempotently on the
// (company_id, inspection_id, checklist_item_id) key; replaying the same
// batch leaves one row per item with the latest value.
func (r *responseRepo) Upsert(dbc dbctx.Context, responses []*domain.InspectionResponse) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(responses) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"},
				{Name: "inspection_id"},
				{Name: "checklist_item_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"value", "note", "updated_at"}),
		}).
		Create(&responses).Error
}

func (r *responseRepo) GetByInspectionID(dbc dbctx.Context, companyID, inspectionID uuid.UUID) ([]*domain.InspectionResponse, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var responses []*domain.InspectionResponse
	if err := transaction.WithContext(dbc.Ctx).
		Where("inspection_id = ? AND company_id = ?", inspectionID, companyID).
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) DeleteByItemIDs(dbc dbctx.Context, companyID, inspectionID uuid.UUID, itemIDs []uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(itemIDs) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Where("company_id = ? AND inspection_id = ? AND checklist_item_id IN ?", companyID, inspectionID, itemIDs).
		Delete(&domain.InspectionResponse{}).Error
}
