package checklist

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
)

type FileRepo interface {
	Create(dbc dbctx.Context, file *domain.InspectionFile) (*domain.InspectionFile, error)
	GetByID(dbc dbctx.Context, companyID, fileID uuid.UUID) (*domain.InspectionFile, error)
	GetByInspectionID(dbc dbctx.Context, companyID, inspectionID uuid.UUID) ([]*domain.InspectionFile, error)
	DeleteByID(dbc dbctx.Context, companyID, fileID uuid.UUID) error
}

type fileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFileRepo(db *gorm.DB, baseLog *logger.Logger) FileRepo {
	return &fileRepo{db: db, log: baseLog.With("repo", "FileRepo")}
}

func (r *fileRepo) Create(dbc dbctx.Context, file *domain.InspectionFile) (*domain.InspectionFile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(dbc.Ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

func (r *fileRepo) GetByID(dbc dbctx.Context, companyID, fileID uuid.UUID) (*domain.InspectionFile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var file domain.InspectionFile
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND company_id = ?", fileID, companyID).
		First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *fileRepo) GetByInspectionID(dbc dbctx.Context, companyID, inspectionID uuid.UUID) ([]*domain.InspectionFile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var files []*domain.InspectionFile
	if err := transaction.WithContext(dbc.Ctx).
		Where("inspection_id = ? AND company_id = ?", inspectionID, companyID).
		Order("created_at ASC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepo) DeleteByID(dbc dbctx.Context, companyID, fileID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND company_id = ?", fileID, companyID).
		Delete(&domain.InspectionFile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
